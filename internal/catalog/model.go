package catalog

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog record. Price is in the store's base currency;
// DiscountPercent is a whole-number percentage in [0, 100]. Stock is
// advisory only: the cart and checkout never reserve it.
type Product struct {
	ID              uuid.UUID         `json:"id" db:"id"`
	Name            string            `json:"name" db:"name"`
	Description     string            `json:"description" db:"description"`
	Price           decimal.Decimal   `json:"price" db:"price"`
	DiscountPercent int               `json:"discount" db:"discount_percent"`
	Stock           int               `json:"stock" db:"stock"`
	Category        string            `json:"category" db:"category"`
	Subcategory     string            `json:"subcategory,omitempty" db:"subcategory"`
	Tags            []string          `json:"tags" db:"tags"`
	Images          []string          `json:"images" db:"images"`
	Specifications  map[string]string `json:"specifications" db:"specifications"`
	Rating          float64           `json:"rating" db:"rating"`
	Reviews         int               `json:"reviews" db:"reviews"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
}

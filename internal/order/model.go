package order

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
)

func (os OrderStatus) String() string {
	return string(os)
}

// Valid reports whether the value is one of the known statuses.
func (os OrderStatus) Valid() bool {
	switch os {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentBankTransfer   PaymentMethod = "bank"
)

func (pm PaymentMethod) Valid() bool {
	return pm == PaymentCashOnDelivery || pm == PaymentBankTransfer
}

// Address is the shipping destination frozen into the order. AddressLine2 is
// the only optional field.
type Address struct {
	FullName     string `json:"full_name" db:"full_name"`
	AddressLine1 string `json:"address_line1" db:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty" db:"address_line2"`
	City         string `json:"city" db:"city"`
	State        string `json:"state" db:"state"`
	Pincode      string `json:"pincode" db:"pincode"`
	Phone        string `json:"phone" db:"phone"`
}

// OrderItem is a copy of a cart line taken at checkout. It carries its own
// name and price so later catalog changes never affect historical orders.
type OrderItem struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	OrderID         uuid.UUID       `json:"order_id" db:"order_id"`
	ProductID       uuid.UUID       `json:"product_id" db:"product_id"`
	Name            string          `json:"name" db:"name"`
	UnitPrice       decimal.Decimal `json:"price" db:"unit_price"`
	Quantity        int             `json:"quantity" db:"quantity"`
	DiscountPercent int             `json:"discount" db:"discount_percent"`
	SelectedSize    string          `json:"selected_size,omitempty" db:"selected_size"`
	SelectedColor   string          `json:"selected_color,omitempty" db:"selected_color"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// Order is an immutable snapshot of a priced cart. Totals are computed once
// at creation and never recomputed; only Status changes afterwards.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"user_id" db:"user_id"`
	Status          OrderStatus     `json:"status" db:"status"`
	Items           []OrderItem     `json:"items" db:"-"`
	ShippingAddress Address         `json:"shipping_address"`
	PaymentMethod   PaymentMethod   `json:"payment_method" db:"payment_method"`
	Subtotal        decimal.Decimal `json:"subtotal" db:"subtotal"`
	ShippingFee     decimal.Decimal `json:"shipping" db:"shipping_fee"`
	Tax             decimal.Decimal `json:"tax" db:"tax"`
	Total           decimal.Decimal `json:"total" db:"total"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

package transport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/vasiliy-maslov/toolstore/internal/cart"
	"github.com/vasiliy-maslov/toolstore/internal/catalog"
	"github.com/vasiliy-maslov/toolstore/internal/checkout"
	"github.com/vasiliy-maslov/toolstore/internal/currency"
	"github.com/vasiliy-maslov/toolstore/internal/handler"
	"github.com/vasiliy-maslov/toolstore/internal/order"
	"github.com/vasiliy-maslov/toolstore/internal/wishlist"
)

// NewRouter wires repositories, services and handlers together. Everything
// is passed explicitly; there is no ambient shared state.
func NewRouter(pool *pgxpool.Pool, redisClient *redis.Client, sessionTTL time.Duration) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	converter := currency.NewConverter()

	productRepo := catalog.NewRepository(pool)

	cartStore := cart.NewRedisStore(redisClient, sessionTTL)
	cartSvc := cart.NewService(cartStore, productRepo)

	wishlistStore := wishlist.NewRedisStore(redisClient, sessionTTL)

	orderRepo := order.NewRepository(pool)
	orderSvc := order.NewService(orderRepo)

	checkoutSvc := checkout.NewService(cartStore, orderSvc)

	handler.NewProductHandler(productRepo).RegisterRoutes(r)
	handler.NewCartHandler(cartSvc, converter).RegisterRoutes(r)
	handler.NewWishlistHandler(wishlistStore, productRepo).RegisterRoutes(r)
	handler.NewCheckoutHandler(checkoutSvc).RegisterRoutes(r)
	handler.NewOrderHandler(orderSvc, converter).RegisterRoutes(r)

	return r
}

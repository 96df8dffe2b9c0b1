package router

import (
	"net/http"

	"furnistore/internal/handler"
	"furnistore/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
func New(
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	orderHandler *handler.OrderHandler,
	viewedHandler *handler.ViewedHandler,
	addressHandler *handler.AddressHandler,
	catalogHandler *handler.CatalogHandler,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no session required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Cart
	mux.HandleFunc("GET /api/cart", cartHandler.Get)
	mux.HandleFunc("DELETE /api/cart", cartHandler.Clear)
	mux.HandleFunc("POST /api/cart/items", cartHandler.Add)
	mux.HandleFunc("PUT /api/cart/items/{id}", cartHandler.SetQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{id}", cartHandler.Remove)
	mux.HandleFunc("GET /api/cart/total", cartHandler.Total)
	mux.HandleFunc("GET /api/cart/coupon", cartHandler.GetCoupon)
	mux.HandleFunc("POST /api/cart/coupon", cartHandler.SaveCoupon)

	// Checkout
	mux.HandleFunc("GET /api/checkout/quote", checkoutHandler.Quote)
	mux.HandleFunc("POST /api/checkout", checkoutHandler.Submit)

	// Order confirmation
	mux.HandleFunc("GET /api/orders/last", orderHandler.Last)

	// Recently viewed
	mux.HandleFunc("POST /api/viewed", viewedHandler.Record)
	mux.HandleFunc("GET /api/viewed", viewedHandler.List)

	// Catalogue pass-through
	mux.HandleFunc("GET /api/products", catalogHandler.List)
	mux.HandleFunc("GET /api/products/{id}", catalogHandler.Get)
	mux.HandleFunc("GET /api/categories", catalogHandler.Categories)

	// Address cascades
	mux.HandleFunc("GET /api/addresses/provinces", addressHandler.Provinces)
	mux.HandleFunc("GET /api/addresses/provinces/{code}/districts", addressHandler.Districts)
	mux.HandleFunc("GET /api/addresses/districts/{code}/wards", addressHandler.Wards)

	// Apply middleware in order: Recovery -> Logging -> CORS -> Session
	var h http.Handler = mux
	h = middleware.Session(logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}

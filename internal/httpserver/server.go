package httpserver

import (
	"net/http"

	"tindahan-be/internal/cart"
	"tindahan-be/internal/category"
	"tindahan-be/internal/checkout"
	"tindahan-be/internal/inventory"
	"tindahan-be/internal/logger"
	"tindahan-be/internal/middleware"
	"tindahan-be/internal/order"
	"tindahan-be/internal/product"
	"tindahan-be/internal/review"
	"tindahan-be/internal/user"

	"github.com/go-chi/chi/v5"
)

// Handlers bundles the services the HTTP layer exposes.
type Handlers struct {
	Users      user.Service
	Products   product.Service
	Categories category.Repository
	Carts      cart.Service
	Checkout   checkout.Service
	Orders     order.Service
	Reviews    review.Service
	Ledger     inventory.Ledger
}

// NewRouter wires all routes. Reads on the catalog are public; everything
// touching a cart, order, or review requires an authenticated actor.
func NewRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.Authenticate)
	r.Use(middleware.RateLimit)

	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)

	r.Get("/categories", h.handleListCategories)
	r.Get("/products", h.handleListProducts)
	r.Get("/products/featured", h.handleFeaturedProduct)
	r.Get("/products/{id}", h.handleGetProduct)
	r.Get("/products/{id}/reviews", h.handleListProductReviews)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/auth/me", h.handleMe)

		r.Post("/products", h.handleCreateProduct)
		r.Patch("/products/{id}", h.handleUpdateProduct)
		r.Delete("/products/{id}", h.handleDeleteProduct)
		r.Post("/products/{id}/stock", h.handleAdjustStock)

		r.Get("/cart", h.handleGetCart)
		r.Post("/cart", h.handleAddToCart)
		r.Patch("/cart/{productID}", h.handleUpdateCartQuantity)
		r.Delete("/cart/{productID}", h.handleRemoveFromCart)

		r.Post("/checkout", h.handleCheckout)

		r.Get("/orders", h.handleListOrders)
		r.Get("/orders/sales", h.handleListSales)
		r.Get("/orders/{id}", h.handleOrderDetail)
		r.Patch("/orders/{id}/status", h.handleUpdateOrderStatus)

		r.Post("/reviews", h.handleCreateReview)
	})

	return r
}

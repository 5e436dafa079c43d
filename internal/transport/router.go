package transport

import (
	"net/http"

	"amalkitchen-be/internal/identity"
	"amalkitchen-be/internal/logger"
	"amalkitchen-be/internal/middleware"
)

// NewRouter wires the JSON routes and the middleware chain. Staff routes
// sit behind RequireRole; everything passes through request-id, logging,
// metrics, auth resolution and rate limiting.
func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()

	staff := middleware.RequireRole(identity.RoleManager)

	// Storefront.
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /api/cart", h.GetCart)
	mux.HandleFunc("POST /api/cart/items", h.AddCartItem)
	mux.HandleFunc("PUT /api/cart/items/{id}", h.UpdateCartItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.RemoveCartItem)
	mux.HandleFunc("DELETE /api/cart", h.ClearCart)
	mux.HandleFunc("PUT /api/cart/region", h.SetCartRegion)
	mux.HandleFunc("POST /api/checkout", h.Checkout)

	// Identity.
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/signin", h.SignIn)
	mux.HandleFunc("POST /api/auth/signout", h.SignOut)
	mux.HandleFunc("POST /api/auth/magic-link", h.SendMagicLink)
	mux.HandleFunc("GET /api/auth/verify", h.VerifyMagicLink)
	mux.HandleFunc("GET /api/auth/me", h.Me)

	// Staff dashboards.
	mux.Handle("POST /api/orders", staff(http.HandlerFunc(h.CreateWalkIn)))
	mux.Handle("GET /api/orders", staff(http.HandlerFunc(h.ListOrders)))
	mux.Handle("GET /api/orders/{id}", staff(http.HandlerFunc(h.GetOrder)))
	mux.Handle("PATCH /api/orders/{id}/status", staff(http.HandlerFunc(h.UpdateOrderStatus)))
	mux.Handle("PATCH /api/orders/{id}/payment-status", staff(http.HandlerFunc(h.UpdatePaymentStatus)))
	mux.Handle("POST /api/orders/{id}/items", staff(http.HandlerFunc(h.AddOrderItems)))
	mux.Handle("GET /api/reports/summary", staff(http.HandlerFunc(h.Dashboard)))
	mux.Handle("GET /api/reports/prep-sheet", staff(http.HandlerFunc(h.PrepSheet)))

	var handler http.Handler = mux
	handler = middleware.RateLimit(handler)
	handler = middleware.Auth(handler)
	handler = middleware.Metrics(handler)
	handler = logger.LoggingMiddleware(handler)
	handler = logger.RequestIDMiddleware(handler)
	return handler
}

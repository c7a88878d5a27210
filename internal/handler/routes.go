package handler

import (
	"log"
	"net/http"

	"shop_ledger/internal/service"
)

// NewRouter wires every endpoint onto a ServeMux. Method-qualified
// patterns let the mux reject wrong methods with 405 on its own.
func NewRouter(logger *log.Logger, shop *service.ShopService) *http.ServeMux {
	userHandler := NewUserHandler(logger, shop)
	purchaseHandler := NewPurchaseHandler(logger, shop)
	paymentHandler := NewPaymentHandler(logger, shop)
	adminHandler := NewAdminHandler(logger, shop)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /users", userHandler.Register)
	mux.HandleFunc("GET /users/{user_id}", userHandler.Get)
	mux.HandleFunc("POST /purchases", purchaseHandler.Register)
	mux.HandleFunc("GET /purchases/{purchase_id}", purchaseHandler.Get)
	mux.HandleFunc("GET /all-purchases", purchaseHandler.ListOwned)
	mux.HandleFunc("POST /payments", paymentHandler.Register)
	mux.HandleFunc("GET /payments/{payment_id}", paymentHandler.Get)
	mux.HandleFunc("GET /all-payments", paymentHandler.ListOwned)
	mux.HandleFunc("GET /admin/users", adminHandler.ListUsers)
	mux.HandleFunc("GET /admin/paid_purchases", adminHandler.CountPaidPurchases)

	return mux
}

package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"shop_ledger/internal/service"
)

type PaymentHandler struct {
	logger *log.Logger
	shop   *service.ShopService
}

func NewPaymentHandler(logger *log.Logger, shop *service.ShopService) *PaymentHandler {
	return &PaymentHandler{
		logger: logger,
		shop:   shop,
	}
}

type RegisterPaymentPayload struct {
	UserID     *int64 `json:"user_id"`
	PurchaseID *int64 `json:"purchase_id"`
}

type RegisterPaymentResponse struct {
	PaymentID  int64  `json:"payment_id"`
	UserID     int64  `json:"user_id"`
	PurchaseID int64  `json:"purchase_id"`
	Message    string `json:"message"`
}

func (h *PaymentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPaymentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusUnprocessableEntity)
		return
	}
	if payload.UserID == nil {
		http.Error(w, "user_id field is required", http.StatusUnprocessableEntity)
		return
	}
	if payload.PurchaseID == nil {
		http.Error(w, "purchase_id field is required", http.StatusUnprocessableEntity)
		return
	}

	paymentID, err := h.shop.RegisterPayment(*payload.UserID, *payload.PurchaseID)
	if err != nil {
		switch err {
		case service.ErrInvalidPurchase, service.ErrAlreadyPaid:
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "An unexpected error occurred", http.StatusInternalServerError)
		}
		return
	}

	resp := RegisterPaymentResponse{
		PaymentID:  paymentID,
		UserID:     *payload.UserID,
		PurchaseID: *payload.PurchaseID,
		Message:    "Payment registered successfully",
	}
	writeJSON(h.logger, w, http.StatusOK, resp)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(r)
	if !ok {
		http.Error(w, "X-User-Id header is required", http.StatusUnprocessableEntity)
		return
	}
	paymentID, ok := pathID(r, "payment_id")
	if !ok {
		http.Error(w, "Invalid payment id format", http.StatusUnprocessableEntity)
		return
	}

	payment, err := h.shop.GetOwnedPayment(caller, paymentID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, payment)
}

func (h *PaymentHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(r)
	if !ok {
		http.Error(w, "X-User-Id header is required", http.StatusUnprocessableEntity)
		return
	}

	payments, err := h.shop.ListOwnedPayments(caller)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, payments)
}

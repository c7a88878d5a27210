package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"shop_ledger/internal/service"
)

type PurchaseHandler struct {
	logger *log.Logger
	shop   *service.ShopService
}

func NewPurchaseHandler(logger *log.Logger, shop *service.ShopService) *PurchaseHandler {
	return &PurchaseHandler{
		logger: logger,
		shop:   shop,
	}
}

type RegisterPurchasePayload struct {
	UserID   *int64   `json:"user_id"`
	ItemName *string  `json:"item_name"`
	Price    *float64 `json:"price"`
}

type RegisterPurchaseResponse struct {
	PurchaseID int64   `json:"purchase_id"`
	UserID     int64   `json:"user_id"`
	ItemName   string  `json:"item_name"`
	Price      float64 `json:"price"`
	Paid       bool    `json:"paid"`
	Message    string  `json:"message"`
}

func (h *PurchaseHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPurchasePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusUnprocessableEntity)
		return
	}
	if payload.UserID == nil {
		http.Error(w, "user_id field is required", http.StatusUnprocessableEntity)
		return
	}
	if payload.ItemName == nil {
		http.Error(w, "item_name field is required", http.StatusUnprocessableEntity)
		return
	}
	if payload.Price == nil {
		http.Error(w, "price field is required", http.StatusUnprocessableEntity)
		return
	}

	purchaseID, err := h.shop.RegisterPurchase(*payload.UserID, *payload.ItemName, *payload.Price)
	if err != nil {
		switch err {
		case service.ErrInvalidUser:
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "An unexpected error occurred", http.StatusInternalServerError)
		}
		return
	}

	resp := RegisterPurchaseResponse{
		PurchaseID: purchaseID,
		UserID:     *payload.UserID,
		ItemName:   *payload.ItemName,
		Price:      *payload.Price,
		Paid:       false,
		Message:    "Purchase registered successfully",
	}
	writeJSON(h.logger, w, http.StatusOK, resp)
}

func (h *PurchaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(r)
	if !ok {
		http.Error(w, "X-User-Id header is required", http.StatusUnprocessableEntity)
		return
	}
	purchaseID, ok := pathID(r, "purchase_id")
	if !ok {
		http.Error(w, "Invalid purchase id format", http.StatusUnprocessableEntity)
		return
	}

	purchase, err := h.shop.GetOwnedPurchase(caller, purchaseID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, purchase)
}

func (h *PurchaseHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(r)
	if !ok {
		http.Error(w, "X-User-Id header is required", http.StatusUnprocessableEntity)
		return
	}

	purchases, err := h.shop.ListOwnedPurchases(caller)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, purchases)
}

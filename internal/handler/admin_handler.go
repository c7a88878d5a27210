package handler

import (
	"log"
	"net/http"

	"shop_ledger/internal/service"
)

// AdminHandler serves the unauthenticated administrative read paths.
type AdminHandler struct {
	logger *log.Logger
	shop   *service.ShopService
}

func NewAdminHandler(logger *log.Logger, shop *service.ShopService) *AdminHandler {
	return &AdminHandler{
		logger: logger,
		shop:   shop,
	}
}

type PaidPurchasesResponse struct {
	PaidPurchasesCount int `json:"paid_purchases_count"`
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, http.StatusOK, h.shop.AdminListUsers())
}

func (h *AdminHandler) CountPaidPurchases(w http.ResponseWriter, r *http.Request) {
	resp := PaidPurchasesResponse{PaidPurchasesCount: h.shop.AdminCountPaidPurchases()}
	writeJSON(h.logger, w, http.StatusOK, resp)
}

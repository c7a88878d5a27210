package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"shop_ledger/internal/service"
)

type UserHandler struct {
	logger *log.Logger
	shop   *service.ShopService
}

func NewUserHandler(logger *log.Logger, shop *service.ShopService) *UserHandler {
	return &UserHandler{
		logger: logger,
		shop:   shop,
	}
}

type RegisterUserPayload struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type RegisterUserResponse struct {
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterUserPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusUnprocessableEntity)
		return
	}
	if payload.Email == nil {
		http.Error(w, "email field is required", http.StatusUnprocessableEntity)
		return
	}
	if payload.Password == nil {
		http.Error(w, "password field is required", http.StatusUnprocessableEntity)
		return
	}

	userID, err := h.shop.RegisterUser(*payload.Email, *payload.Password)
	if err != nil {
		switch err {
		case service.ErrEmailTaken:
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "An unexpected error occurred", http.StatusInternalServerError)
		}
		return
	}

	resp := RegisterUserResponse{
		UserID:  userID,
		Email:   *payload.Email,
		Message: "User registered successfully",
	}
	writeJSON(h.logger, w, http.StatusOK, resp)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "user_id")
	if !ok {
		http.Error(w, "Invalid user id format", http.StatusUnprocessableEntity)
		return
	}

	user, err := h.shop.GetUser(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, user)
}

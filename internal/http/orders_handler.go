package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/cart"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/orders"
)

type OrdersHandler struct {
	builder *orders.Builder
	carts   *cart.Service
	timeout time.Duration
}

func NewOrdersHandler(builder *orders.Builder, carts *cart.Service, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		builder: builder,
		carts:   carts,
		timeout: timeout,
	}
}

type CreateOrderRequestDTO struct {
	TransactionID string `json:"transaction_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

// CreateOrder verifies the transaction, snapshots the profile's cart
// into an order record and clears the cart.
func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profileID := getProfileID(r.Context())
	userID := getUserID(r.Context())
	if profileID == "" || userID == "" {
		respondError(w, http.StatusBadRequest, "missing_identity",
			"X-Profile-ID and X-User-ID headers are required")
		return
	}

	var req CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.builder.VerifyTransaction(ctx, req.TransactionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if !result.Success {
		respondError(w, http.StatusPaymentRequired, "payment_failed", result.Error)
		return
	}

	snapshot, err := h.carts.Get(ctx, profileID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	record, err := h.builder.CreateOrder(ctx, userID, snapshot, domain.CustomerInfo{
		Name:  req.CustomerName,
		Email: req.CustomerEmail,
	}, req.TransactionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// The cart served its purpose; clearing it is best-effort.
	_ = h.carts.Clear(ctx, profileID)

	respondJSON(w, http.StatusCreated, record)
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserID(r.Context())
	if userID == "" {
		respondError(w, http.StatusBadRequest, "missing_user", "X-User-ID header is required")
		return
	}

	history, err := h.builder.ListOrders(ctx, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if history == nil {
		history = []domain.OrderRecord{}
	}
	respondJSON(w, http.StatusOK, history)
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserID(r.Context())
	if userID == "" {
		respondError(w, http.StatusBadRequest, "missing_user", "X-User-ID header is required")
		return
	}

	orderID := chi.URLParam(r, "order_id")
	record, err := h.builder.GetOrder(ctx, userID, orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

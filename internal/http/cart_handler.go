package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/cart"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/currency"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
)

type CartHandler struct {
	carts     *cart.Service
	converter *currency.Converter
	timeout   time.Duration
}

func NewCartHandler(carts *cart.Service, converter *currency.Converter, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:     carts,
		converter: converter,
		timeout:   timeout,
	}
}

type AddItemRequestDTO struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Platform        string  `json:"platform"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
	ServiceQuantity int     `json:"service_quantity"`
	TargetInput     string  `json:"target_input"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

// CartResponseDTO carries the cart plus the display-time total; the
// conversion is a pure formatting step over the canonical total.
type CartResponseDTO struct {
	Cart           *domain.Cart `json:"cart"`
	Total          float64      `json:"total"`
	DisplayTotal   float64      `json:"display_total"`
	Currency       string       `json:"currency"`
	CurrencySymbol string       `json:"currency_symbol"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profileID := getProfileID(r.Context())
	if profileID == "" {
		respondError(w, http.StatusBadRequest, "missing_profile", "X-Profile-ID header is required")
		return
	}

	c, err := h.carts.Get(ctx, profileID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondCart(w, http.StatusOK, c)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profileID := getProfileID(r.Context())
	if profileID == "" {
		respondError(w, http.StatusBadRequest, "missing_profile", "X-Profile-ID header is required")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id is required")
		return
	}

	c, err := h.carts.AddItem(ctx, profileID, domain.LineItem{
		ID:              req.ID,
		Title:           req.Title,
		Platform:        req.Platform,
		Quantity:        req.Quantity,
		Price:           req.Price,
		ServiceQuantity: req.ServiceQuantity,
		TargetInput:     req.TargetInput,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondCart(w, http.StatusCreated, c)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profileID := getProfileID(r.Context())
	if profileID == "" {
		respondError(w, http.StatusBadRequest, "missing_profile", "X-Profile-ID header is required")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	c, err := h.carts.UpdateQuantity(ctx, profileID, itemID, req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondCart(w, http.StatusOK, c)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profileID := getProfileID(r.Context())
	if profileID == "" {
		respondError(w, http.StatusBadRequest, "missing_profile", "X-Profile-ID header is required")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	c, err := h.carts.RemoveItem(ctx, profileID, itemID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondCart(w, http.StatusOK, c)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profileID := getProfileID(r.Context())
	if profileID == "" {
		respondError(w, http.StatusBadRequest, "missing_profile", "X-Profile-ID header is required")
		return
	}

	if err := h.carts.Clear(ctx, profileID); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) respondCart(w http.ResponseWriter, status int, c *domain.Cart) {
	total := c.Total()
	respondJSON(w, status, CartResponseDTO{
		Cart:           c,
		Total:          total,
		DisplayTotal:   h.converter.Convert(total),
		Currency:       h.converter.Code(),
		CurrencySymbol: h.converter.Symbol(),
	})
}

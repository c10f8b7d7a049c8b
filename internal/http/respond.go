package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/cart"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/catalog"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/orders"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/payment"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/review"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/uploads"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps the services' sentinel errors to HTTP
// status codes; anything unrecognized is an internal error.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidPrice),
		errors.Is(err, cart.ErrMissingTarget),
		errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, review.ErrMissingName),
		errors.Is(err, review.ErrTooManyImages),
		errors.Is(err, uploads.ErrImageTooLarge),
		errors.Is(err, orders.ErrEmptyCart),
		errors.Is(err, orders.ErrMissingTransactionID),
		errors.Is(err, payment.ErrInvalidTransactionID):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, catalog.ErrServiceNotFound),
		errors.Is(err, orders.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, orders.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "request timed out")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

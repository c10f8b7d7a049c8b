package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/review"
)

type ReviewHandler struct {
	reviews *review.Service
	timeout time.Duration
}

func NewReviewHandler(reviews *review.Service, timeout time.Duration) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, timeout: timeout}
}

type SubmitReviewRequestDTO struct {
	UserName string         `json:"user_name"`
	Rating   int            `json:"rating"`
	Comment  string         `json:"comment"`
	Images   []ImageBlobDTO `json:"images,omitempty"`
}

// ImageBlobDTO carries a base64-encoded attachment.
type ImageBlobDTO struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

func (h *ReviewHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	serviceID := chi.URLParam(r, "service_id")
	summary, err := h.reviews.GetSummary(ctx, serviceID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	serviceID := chi.URLParam(r, "service_id")
	reviews, err := h.reviews.ListReviews(ctx, serviceID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	respondJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	serviceID := chi.URLParam(r, "service_id")

	var req SubmitReviewRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	images := make([]review.ImageBlob, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, review.ImageBlob{Filename: img.Filename, Data: img.Data})
	}

	created, err := h.reviews.Submit(ctx, domain.Review{
		ServiceID: serviceID,
		UserName:  req.UserName,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}, images)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *ReviewHandler) CatalogSummaries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	summaries, err := h.reviews.CatalogSummaries(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/history"
)

type HistoryHandler struct {
	tracker *history.Service
	timeout time.Duration
}

func NewHistoryHandler(tracker *history.Service, timeout time.Duration) *HistoryHandler {
	return &HistoryHandler{tracker: tracker, timeout: timeout}
}

type RecordViewRequestDTO struct {
	ServiceID string `json:"service_id"`
	Platform  string `json:"platform"`
}

type ToggleFavoriteRequestDTO struct {
	Category string `json:"category"`
}

func (h *HistoryHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profileID := getProfileID(r.Context())
	if profileID == "" {
		respondError(w, http.StatusBadRequest, "missing_profile", "X-Profile-ID header is required")
		return
	}

	var req RecordViewRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ServiceID == "" {
		respondError(w, http.StatusBadRequest, "invalid_service_id", "service id is required")
		return
	}

	err := h.tracker.RecordView(ctx, profileID, domain.ViewEntry{
		ServiceID: req.ServiceID,
		Platform:  req.Platform,
		ViewedAt:  time.Now(),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HistoryHandler) RecentlyViewed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profileID := getProfileID(r.Context())
	if profileID == "" {
		respondError(w, http.StatusBadRequest, "missing_profile", "X-Profile-ID header is required")
		return
	}

	services, err := h.tracker.RecentlyViewed(ctx, profileID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, services)
}

func (h *HistoryHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profileID := getProfileID(r.Context())
	if profileID == "" {
		respondError(w, http.StatusBadRequest, "missing_profile", "X-Profile-ID header is required")
		return
	}

	services, err := h.tracker.Recommend(ctx, profileID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, services)
}

func (h *HistoryHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profileID := getProfileID(r.Context())
	if profileID == "" {
		respondError(w, http.StatusBadRequest, "missing_profile", "X-Profile-ID header is required")
		return
	}

	var req ToggleFavoriteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Category == "" {
		respondError(w, http.StatusBadRequest, "invalid_category", "category is required")
		return
	}

	favorites, err := h.tracker.ToggleFavoriteCategory(ctx, profileID, req.Category)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"favorites": favorites})
}

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/catalog"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
)

type CatalogHandler struct {
	repo    catalog.Repository
	timeout time.Duration
}

func NewCatalogHandler(repo catalog.Repository, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{repo: repo, timeout: timeout}
}

func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	services, err := h.repo.ListServices(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if services == nil {
		services = []domain.CatalogService{}
	}
	respondJSON(w, http.StatusOK, services)
}

func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "service_id")
	service, err := h.repo.GetService(ctx, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, service)
}

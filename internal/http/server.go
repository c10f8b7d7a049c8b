package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Handlers struct {
	Cart    *CartHandler
	Reviews *ReviewHandler
	History *HistoryHandler
	Orders  *OrdersHandler
	Catalog *CatalogHandler
}

// NewRouter wires the storefront API.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(ProfileMiddleware)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Delete("/", h.Cart.ClearCart)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{item_id}", h.Cart.UpdateQuantity)
			r.Delete("/items/{item_id}", h.Cart.RemoveItem)
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", h.Catalog.ListServices)
			r.Get("/{service_id}", h.Catalog.GetService)
			r.Get("/{service_id}/reviews", h.Reviews.ListReviews)
			r.Get("/{service_id}/reviews/summary", h.Reviews.GetSummary)
			r.Post("/{service_id}/reviews", h.Reviews.Submit)
		})
		r.Get("/reviews/summaries", h.Reviews.CatalogSummaries)

		r.Route("/history", func(r chi.Router) {
			r.Post("/views", h.History.RecordView)
			r.Get("/recent", h.History.RecentlyViewed)
		})
		r.Get("/recommendations", h.History.Recommendations)
		r.Post("/favorites/toggle", h.History.ToggleFavorite)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.Orders.CreateOrder)
			r.Get("/", h.Orders.ListOrders)
			r.Get("/{order_id}", h.Orders.GetOrder)
		})
	})

	return otelhttp.NewHandler(r, "storefront-api")
}

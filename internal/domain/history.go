package domain

import "time"

// ViewEntry records one "viewed service" event. Platform is a
// denormalized copy of the service's platform so frequency scoring
// does not refetch the catalog. ViewedAt is used only for ordering.
type ViewEntry struct {
	ServiceID string    `json:"service_id"`
	Platform  string    `json:"platform"`
	ViewedAt  time.Time `json:"viewed_at"`
}

package events

import "time"

const (
	TopicReviewSubmitted = "review-submitted"
	TopicOrderCreated    = "order-created"
)

// ReviewSubmitted is published after a review row is persisted so
// listing pages can re-fetch their summaries.
type ReviewSubmitted struct {
	ReviewID  string    `json:"review_id"`
	ServiceID string    `json:"service_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderCreated is published after an order record is stored; the
// status worker consumes it to advance pending orders to processing.
type OrderCreated struct {
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

package domain

import "time"

// Review is one submitted review row for a catalog service.
type Review struct {
	ID        string    `json:"id"`
	ServiceID string    `json:"service_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment"`
	Images    []string  `json:"images,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingRow is the minimal shape fetched for aggregation.
type RatingRow struct {
	ServiceID string `json:"service_id"`
	Rating    int    `json:"rating"`
}

// DistributionEntry is one bucket of the five-star histogram.
type DistributionEntry struct {
	Star       int     `json:"star"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// RatingSummary aggregates the rating rows of one service.
// Distribution is always five entries for stars 5,4,3,2,1 in that
// order, including zero-count buckets.
type RatingSummary struct {
	AverageRating float64             `json:"average_rating"`
	ReviewCount   int                 `json:"review_count"`
	Distribution  []DistributionEntry `json:"distribution"`
}

package domain

import "time"

// Tier is a priced quantity bracket for a service,
// e.g. 1000 followers for 12.99 in the canonical currency.
type Tier struct {
	ID       string  `bson:"id" json:"id"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Price    float64 `bson:"price" json:"price"`
}

// CatalogService is one purchasable growth service (followers, views, ...).
// Rating is the denormalized average kept on the catalog document so
// recommendation ranking does not refetch review rows.
type CatalogService struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Platform  string    `bson:"platform" json:"platform"`
	Rating    float64   `bson:"rating" json:"rating"`
	Tiers     []Tier    `bson:"tiers" json:"tiers"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

package domain

import "time"

// LineItem is one entry in the cart: a chosen service tier, the
// quantity of that tier, and the free-text target the boost is
// delivered to (profile URL or handle). ID identifies the
// service+tier combination; Price is a unit-price snapshot taken in
// the canonical currency when the line was added.
type LineItem struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Platform        string    `json:"platform"`
	Quantity        int       `json:"quantity"`
	Price           float64   `json:"price"`
	ServiceQuantity int       `json:"service_quantity"`
	TargetInput     string    `json:"target_input"`
	AddedAt         time.Time `json:"added_at"`
}

// Subtotal is the line's contribution to the cart total.
func (li LineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}

// Cart holds the ordered line items of one browser profile.
type Cart struct {
	ProfileID string     `json:"profile_id"`
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Total returns the sum of price*quantity over all lines in the
// canonical currency. Display-time conversion is applied elsewhere.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending:    {OrderStatusProcessing: true, OrderStatusCancelled: true},
	OrderStatusProcessing: {OrderStatusCompleted: true, OrderStatusCancelled: true},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// CanTransition reports whether from -> to is a legal status change.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

func (s OrderStatus) String() string {
	return string(s)
}

// CustomerInfo is the contact block captured at checkout.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderRecord is the durable record built from a finalized cart and a
// payment confirmation. Items is an immutable snapshot of the cart
// lines at submission time; only Status changes after creation.
type OrderRecord struct {
	OrderID           string       `json:"order_id"`
	UserID            string       `json:"user_id"`
	Items             []LineItem   `json:"items"`
	Total             float64      `json:"total"`
	Status            OrderStatus  `json:"status"`
	TransactionID     string       `json:"transaction_id"`
	Customer          CustomerInfo `json:"customer"`
	CreatedAt         time.Time    `json:"created_at"`
	EstimatedDelivery time.Time    `json:"estimated_delivery"`
}

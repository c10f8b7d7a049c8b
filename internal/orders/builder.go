package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/events"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/payment"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/storage"
)

// DeliveryWindow is added to an order's creation time to form its
// estimated delivery date.
const DeliveryWindow = 7 * 24 * time.Hour

var (
	ErrEmptyCart            = errors.New("cart is empty, nothing to order")
	ErrOrderNotFound        = errors.New("order not found")
	ErrIllegalTransition    = errors.New("illegal order status transition")
	ErrMissingTransactionID = errors.New("transaction id is required")
)

// Builder converts finalized carts into durable order records and
// maintains the per-user order history (most recent first, uncapped).
type Builder struct {
	store     storage.Storage
	verifier  payment.Verifier
	publisher events.Publisher
	log       *zap.Logger
}

func NewBuilder(store storage.Storage, verifier payment.Verifier, publisher events.Publisher, log *zap.Logger) *Builder {
	return &Builder{
		store:     store,
		verifier:  verifier,
		publisher: publisher,
		log:       log,
	}
}

// CreateOrder assembles and persists an order record from the cart
// snapshot and the payment collaborator's transaction id. The record
// starts at pending with delivery estimated a week out; the status
// worker moves it to processing.
func (b *Builder) CreateOrder(ctx context.Context, userID string, snapshot *domain.Cart, customer domain.CustomerInfo, transactionID string) (*domain.OrderRecord, error) {
	if snapshot == nil || len(snapshot.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if transactionID == "" {
		return nil, ErrMissingTransactionID
	}

	items := make([]domain.LineItem, len(snapshot.Items))
	copy(items, snapshot.Items)

	now := time.Now()
	record := &domain.OrderRecord{
		OrderID:           newOrderID(now),
		UserID:            userID,
		Items:             items,
		Total:             snapshot.Total(),
		Status:            domain.OrderStatusPending,
		TransactionID:     transactionID,
		Customer:          customer,
		CreatedAt:         now,
		EstimatedDelivery: now.Add(DeliveryWindow),
	}

	history, err := b.loadHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	history = append([]domain.OrderRecord{*record}, history...)
	if err := b.persistHistory(ctx, userID, history); err != nil {
		return nil, err
	}

	if err := b.publisher.PublishOrderCreated(ctx, events.OrderCreated{
		OrderID:   record.OrderID,
		UserID:    record.UserID,
		Total:     record.Total,
		CreatedAt: record.CreatedAt,
	}); err != nil {
		b.log.Warn("publish order event failed",
			zap.String("order_id", record.OrderID), zap.Error(err))
	}

	return record, nil
}

// ListOrders returns the user's order history, most recent first.
func (b *Builder) ListOrders(ctx context.Context, userID string) ([]domain.OrderRecord, error) {
	return b.loadHistory(ctx, userID)
}

// GetOrder returns one order from the user's history.
func (b *Builder) GetOrder(ctx context.Context, userID, orderID string) (*domain.OrderRecord, error) {
	history, err := b.loadHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range history {
		if history[i].OrderID == orderID {
			return &history[i], nil
		}
	}
	return nil, ErrOrderNotFound
}

// AdvanceStatus rewrites the stored record's status. Only the legal
// transitions of the status machine are accepted.
func (b *Builder) AdvanceStatus(ctx context.Context, userID, orderID string, newStatus domain.OrderStatus) error {
	history, err := b.loadHistory(ctx, userID)
	if err != nil {
		return err
	}

	for i := range history {
		if history[i].OrderID != orderID {
			continue
		}
		if !domain.CanTransition(history[i].Status, newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, history[i].Status, newStatus)
		}
		history[i].Status = newStatus
		return b.persistHistory(ctx, userID, history)
	}
	return ErrOrderNotFound
}

// VerifyTransaction checks the id against the provider's format and
// only then delegates to the payment collaborator; a too-short id
// fails here, before any network I/O.
func (b *Builder) VerifyTransaction(ctx context.Context, transactionID string) (*payment.VerifyResult, error) {
	if len(transactionID) < payment.MinTransactionIDLength {
		return nil, payment.ErrInvalidTransactionID
	}
	return b.verifier.Verify(ctx, transactionID)
}

func (b *Builder) loadHistory(ctx context.Context, userID string) ([]domain.OrderRecord, error) {
	data, err := b.store.Get(ctx, ordersKey(userID))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var history []domain.OrderRecord
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("decode order history: %w", err)
	}
	return history, nil
}

// persistHistory writes the full history list. Unlike cart snapshots
// this write is load-bearing, a failure surfaces to the caller.
func (b *Builder) persistHistory(ctx context.Context, userID string, history []domain.OrderRecord) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshal order history: %w", err)
	}
	if err := b.store.Set(ctx, ordersKey(userID), data); err != nil {
		return fmt.Errorf("persist order history: %w", err)
	}
	return nil
}

// newOrderID is unique with overwhelming probability: millisecond
// timestamp plus a random suffix.
func newOrderID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}

func ordersKey(userID string) string {
	return fmt.Sprintf("orders:%s", userID)
}

package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/storage"
	"go.uber.org/zap"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrMissingTarget   = errors.New("target input is required")
)

// Service maintains the line-item list for each browser profile.
//
// The in-memory cart is authoritative for the lifetime of the
// process; every mutation writes the full snapshot to storage so the
// cart survives restarts. A failed storage write is logged and the
// mutation kept, the next mutation rewrites the whole snapshot anyway.
//
// Duplicate-add policy: adding a line whose service+tier id and
// target input match an existing line merges by incrementing the
// existing quantity, it does not append a second line.
type Service struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
	store storage.Storage
	log   *zap.Logger
}

func NewService(store storage.Storage, log *zap.Logger) *Service {
	return &Service{
		carts: make(map[string]*domain.Cart),
		store: store,
		log:   log,
	}
}

// Get returns the profile's cart, loading it from storage on first
// access. A profile with no stored cart gets an empty one.
func (s *Service) Get(ctx context.Context, profileID string) (*domain.Cart, error) {
	s.mu.RLock()
	if c, ok := s.carts[profileID]; ok {
		snapshot := cloneCart(c)
		s.mu.RUnlock()
		return snapshot, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.loadLocked(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return cloneCart(c), nil
}

// AddItem appends a line item, or merges quantities when a line with
// the same id and target input already exists.
func (s *Service) AddItem(ctx context.Context, profileID string, item domain.LineItem) (*domain.Cart, error) {
	if item.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if item.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if item.TargetInput == "" {
		return nil, ErrMissingTarget
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.loadLocked(ctx, profileID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range c.Items {
		if c.Items[i].ID == item.ID && c.Items[i].TargetInput == item.TargetInput {
			c.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		if item.AddedAt.IsZero() {
			item.AddedAt = time.Now()
		}
		c.Items = append(c.Items, item)
	}

	s.persistLocked(ctx, c)
	return cloneCart(c), nil
}

// UpdateQuantity sets the quantity of the first line with this id.
// A quantity of zero or below removes the line; an unknown id is a
// no-op.
func (s *Service) UpdateQuantity(ctx context.Context, profileID, itemID string, quantity int) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.loadLocked(ctx, profileID)
	if err != nil {
		return nil, err
	}

	for i := range c.Items {
		if c.Items[i].ID != itemID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
		s.persistLocked(ctx, c)
		break
	}
	return cloneCart(c), nil
}

// RemoveItem deletes the first line with this id; no-op if absent.
func (s *Service) RemoveItem(ctx context.Context, profileID, itemID string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.loadLocked(ctx, profileID)
	if err != nil {
		return nil, err
	}

	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			s.persistLocked(ctx, c)
			break
		}
	}
	return cloneCart(c), nil
}

// Clear empties the profile's cart.
func (s *Service) Clear(ctx context.Context, profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.loadLocked(ctx, profileID)
	if err != nil {
		return err
	}
	c.Items = nil
	s.persistLocked(ctx, c)
	return nil
}

// Total returns the cart total in the canonical currency.
func (s *Service) Total(ctx context.Context, profileID string) (float64, error) {
	c, err := s.Get(ctx, profileID)
	if err != nil {
		return 0, err
	}
	return c.Total(), nil
}

// loadLocked returns the in-memory cart for the profile, reading the
// stored snapshot when the profile has not been seen by this process.
// Callers must hold s.mu for writing.
func (s *Service) loadLocked(ctx context.Context, profileID string) (*domain.Cart, error) {
	if c, ok := s.carts[profileID]; ok {
		return c, nil
	}

	c := &domain.Cart{
		ProfileID: profileID,
		CreatedAt: time.Now(),
	}
	data, err := s.store.Get(ctx, cartKey(profileID))
	if err == nil {
		if err2 := json.Unmarshal(data, c); err2 != nil {
			return nil, fmt.Errorf("decode stored cart: %w", err2)
		}
	} else if !errors.Is(err, storage.ErrKeyNotFound) {
		return nil, err
	}

	s.carts[profileID] = c
	return c, nil
}

// persistLocked writes the full cart snapshot. Write failures are
// non-fatal: the in-memory state stays updated and the next mutation
// rewrites the snapshot.
func (s *Service) persistLocked(ctx context.Context, c *domain.Cart) {
	c.UpdatedAt = time.Now()
	data, err := json.Marshal(c)
	if err != nil {
		s.log.Warn("marshal cart snapshot failed", zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, cartKey(c.ProfileID), data); err != nil {
		s.log.Warn("persist cart snapshot failed",
			zap.String("profile_id", c.ProfileID), zap.Error(err))
	}
}

func cloneCart(c *domain.Cart) *domain.Cart {
	out := *c
	out.Items = make([]domain.LineItem, len(c.Items))
	copy(out.Items, c.Items)
	return &out
}

func cartKey(profileID string) string {
	return fmt.Sprintf("cart:%s", profileID)
}

package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingStorage struct {
	mu       sync.Mutex
	setCalls int
}

func (f *failingStorage) Get(context.Context, string) ([]byte, error) {
	return nil, storage.ErrKeyNotFound
}

func (f *failingStorage) Set(context.Context, string, []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	return fmt.Errorf("storage unavailable")
}

func (f *failingStorage) Delete(context.Context, string) error {
	return fmt.Errorf("storage unavailable")
}

func lineItem(id string, price float64, qty int) domain.LineItem {
	return domain.LineItem{
		ID:          id,
		Title:       "Instagram Followers",
		Platform:    "instagram",
		Quantity:    qty,
		Price:       price,
		TargetInput: "@someone",
	}
}

func TestAddItem_Validation(t *testing.T) {
	sut := NewService(storage.NewMemoryStorage(), zap.NewNop())

	_, err := sut.AddItem(context.Background(), "p1", lineItem("a", 10, 0))
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = sut.AddItem(context.Background(), "p1", lineItem("a", -1, 1))
	assert.ErrorIs(t, err, ErrInvalidPrice)

	item := lineItem("a", 10, 1)
	item.TargetInput = ""
	_, err = sut.AddItem(context.Background(), "p1", item)
	assert.ErrorIs(t, err, ErrMissingTarget)
}

func TestAddItem_MergesSameIdentity(t *testing.T) {
	sut := NewService(storage.NewMemoryStorage(), zap.NewNop())

	_, err := sut.AddItem(context.Background(), "p1", lineItem("a", 10, 2))
	require.NoError(t, err)
	c, err := sut.AddItem(context.Background(), "p1", lineItem("a", 10, 3))
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestAddItem_DifferentTargetGetsOwnLine(t *testing.T) {
	sut := NewService(storage.NewMemoryStorage(), zap.NewNop())

	_, err := sut.AddItem(context.Background(), "p1", lineItem("a", 10, 2))
	require.NoError(t, err)

	other := lineItem("a", 10, 1)
	other.TargetInput = "@someone-else"
	c, err := sut.AddItem(context.Background(), "p1", other)
	require.NoError(t, err)

	assert.Len(t, c.Items, 2)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	sut := NewService(storage.NewMemoryStorage(), zap.NewNop())

	_, err := sut.AddItem(context.Background(), "p1", lineItem("a", 10, 2))
	require.NoError(t, err)

	c, err := sut.UpdateQuantity(context.Background(), "p1", "a", 0)
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	total, err := sut.Total(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestUpdateQuantity_UnknownIDIsNoOp(t *testing.T) {
	sut := NewService(storage.NewMemoryStorage(), zap.NewNop())

	_, err := sut.AddItem(context.Background(), "p1", lineItem("a", 10, 2))
	require.NoError(t, err)

	c, err := sut.UpdateQuantity(context.Background(), "p1", "missing", 7)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestTotal_SumsPriceTimesQuantity(t *testing.T) {
	sut := NewService(storage.NewMemoryStorage(), zap.NewNop())

	_, err := sut.AddItem(context.Background(), "p1", lineItem("a", 10, 2))
	require.NoError(t, err)
	_, err = sut.AddItem(context.Background(), "p1", lineItem("b", 5, 3))
	require.NoError(t, err)

	total, err := sut.Total(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 35.0, total)
}

func TestRemoveItem_AbsentIsNoOp(t *testing.T) {
	sut := NewService(storage.NewMemoryStorage(), zap.NewNop())

	_, err := sut.AddItem(context.Background(), "p1", lineItem("a", 10, 2))
	require.NoError(t, err)

	c, err := sut.RemoveItem(context.Background(), "p1", "missing")
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
}

func TestClear_EmptiesCart(t *testing.T) {
	sut := NewService(storage.NewMemoryStorage(), zap.NewNop())

	_, err := sut.AddItem(context.Background(), "p1", lineItem("a", 10, 2))
	require.NoError(t, err)
	require.NoError(t, sut.Clear(context.Background(), "p1"))

	c, err := sut.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestPersistFailure_IsNonFatal(t *testing.T) {
	store := &failingStorage{}
	sut := NewService(store, zap.NewNop())

	c, err := sut.AddItem(context.Background(), "p1", lineItem("a", 10, 2))
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)

	// The next mutation rewrites the full snapshot again.
	_, err = sut.AddItem(context.Background(), "p1", lineItem("b", 5, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, store.setCalls)
}

func TestSnapshot_SurvivesRestart(t *testing.T) {
	store := storage.NewMemoryStorage()
	first := NewService(store, zap.NewNop())

	_, err := first.AddItem(context.Background(), "p1", lineItem("a", 10, 2))
	require.NoError(t, err)

	// A fresh service over the same storage sees the stored snapshot.
	second := NewService(store, zap.NewNop())
	c, err := second.Get(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "a", c.Items[0].ID)

	data, err := store.Get(context.Background(), "cart:p1")
	require.NoError(t, err)
	var stored domain.Cart
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, "p1", stored.ProfileID)
}

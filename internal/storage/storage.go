package storage

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// Storage is the durable key-value store the trackers and the cart
// persist their snapshots to. Writers always write the full updated
// collection for a key, never a partial patch; last writer wins.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

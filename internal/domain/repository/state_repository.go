package repository

import (
	"context"
	"errors"
)

var ErrSlotNotFound = errors.New("slot not found")

// StateRepository is a namespaced key-value store for durable builder state.
// Keys are relative to the repository's namespace; Clear removes every key
// in that namespace and never touches keys owned by anyone else.
type StateRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Package kvstore holds the durable, process-wide key-value storage used for
// settings and derived state (goal, distance unit, weight, streak).
// Keys are global; there is no namespacing or multi-user concern.
package kvstore

import (
	"context"
	"errors"
)

var ErrEmptyKey = errors.New("empty key")

// Store is satisfied by RedisStore and MemoryStore.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes all values or none of them.
	SetMany(ctx context.Context, values map[string]string) error
}

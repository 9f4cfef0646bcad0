// Package savestore provides the key-value persistence used for save slots.
package savestore

import "context"

// Store is a key-value store. Get reports ok=false for a missing key;
// errors are reserved for backend failures.
type Store[T any] interface {
	Get(ctx context.Context, key string) (T, bool, error)
	Put(ctx context.Context, key string, v T) error
	Delete(ctx context.Context, key string) error
}

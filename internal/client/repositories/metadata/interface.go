// Package metadata is a small key/value store in the local SQLite database.
// The CLI keeps values that must outlive a single run here, such as the
// backend session cookies.
package metadata

import (
	"context"
	"errors"
)

// ErrNoValue is returned by Get for an unknown key.
var ErrNoValue = errors.New("metadata: no value")

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

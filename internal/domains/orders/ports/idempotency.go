package ports

import (
	"context"
	"errors"
	"time"
)

// ErrIdempotencyConflict indicates the same key was used with a different order payload.
var ErrIdempotencyConflict = errors.New("idempotency key reused with a different order")

// IdempotencyRecord ties a client-supplied key to the order it created.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	OrderID     string
	CreatedAt   time.Time
}

// IdempotencyStore remembers which order a submission key produced so
// retried submissions replay instead of ordering twice.
type IdempotencyStore interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Save stores the record. When the key already exists the stored record is
	// returned, together with ErrIdempotencyConflict if it differs.
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
}

package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrIdempotencyConflict indicates the same key was reused with a different
// request payload.
var ErrIdempotencyConflict = errors.New("idempotency conflict")

// IdempotencyRecord associates a client-supplied key with the job it created.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	JobID       uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IdempotencyStore persists idempotency keys so retried creates replay the
// original job instead of minting a second one.
type IdempotencyStore interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Save claims the key for the candidate record. When the key is already
	// claimed with the same request hash, the stored record is returned and
	// the caller should converge on its JobID. A claim with a different hash
	// returns the stored record alongside ErrIdempotencyConflict.
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
}

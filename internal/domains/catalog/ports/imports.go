package ports

import (
	"context"
	"errors"
	"time"
)

// ErrImportConflict indicates an idempotency key was reused with a different catalog document.
var ErrImportConflict = errors.New("catalog import conflict")

// ImportRecord remembers the outcome of an import submitted with an idempotency key.
type ImportRecord struct {
	Key           string
	RequestHash   string
	Source        string
	Imported      []string
	RejectedCount int
	CreatedAt     time.Time
}

// ImportLedger persists import outcomes so retried submissions replay instead of re-importing.
type ImportLedger interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*ImportRecord, error)
	// Save persists the record. A key already stored with a different hash yields ErrImportConflict
	// together with the stored record.
	Save(ctx context.Context, record ImportRecord) (*ImportRecord, error)
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
)

var _ ports.ImportLedger = (*ImportLedger)(nil)

// ImportLedger provides an in-memory implementation for development and tests.
type ImportLedger struct {
	mu      sync.RWMutex
	records map[string]ports.ImportRecord
	now     func() time.Time
}

// NewImportLedger constructs an empty in-memory ledger.
func NewImportLedger() *ImportLedger {
	return &ImportLedger{
		records: map[string]ports.ImportRecord{},
		now:     time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (l *ImportLedger) WithClock(now func() time.Time) {
	if now != nil {
		l.now = now
	}
}

// Get returns the stored record for the provided key, or nil when absent.
func (l *ImportLedger) Get(_ context.Context, key string) (*ports.ImportRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	record, ok := l.records[key]
	if !ok {
		return nil, nil
	}
	return copyRecord(record), nil
}

// Save persists the record or returns the existing record if it matches.
func (l *ImportLedger) Save(_ context.Context, record ports.ImportRecord) (*ports.ImportRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, ok := l.records[record.Key]; ok {
		if existing.RequestHash != record.RequestHash {
			return copyRecord(existing), ports.ErrImportConflict
		}
		return copyRecord(existing), nil
	}
	record.CreatedAt = l.now()
	record.Imported = append([]string(nil), record.Imported...)
	l.records[record.Key] = record
	return copyRecord(record), nil
}

func copyRecord(record ports.ImportRecord) *ports.ImportRecord {
	record.Imported = append([]string(nil), record.Imported...)
	return &record
}

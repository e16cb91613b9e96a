package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
)

var _ ports.ImportLedger = (*ImportLedger)(nil)

// ImportLedger persists catalog import outcomes in PostgreSQL.
type ImportLedger struct {
	db *gorm.DB
}

// NewImportLedger wires a PostgreSQL-backed import ledger.
func NewImportLedger(db *gorm.DB) *ImportLedger {
	return &ImportLedger{db: db}
}

// Get loads a record by key, returning nil when absent.
func (l *ImportLedger) Get(ctx context.Context, key string) (*ports.ImportRecord, error) {
	if err := l.ensureDB(); err != nil {
		return nil, err
	}
	var record importRecord
	if err := l.db.WithContext(ctx).First(&record, "idempotency_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.toPort(), nil
}

// Save inserts the record; an existing key with a different hash yields ErrImportConflict.
func (l *ImportLedger) Save(ctx context.Context, record ports.ImportRecord) (*ports.ImportRecord, error) {
	if err := l.ensureDB(); err != nil {
		return nil, err
	}
	dbRecord := importRecord{
		IdempotencyKey: record.Key,
		RequestHash:    record.RequestHash,
		Source:         record.Source,
		Imported:       pq.StringArray(record.Imported),
		RejectedCount:  record.RejectedCount,
	}
	if err := l.db.WithContext(ctx).Create(&dbRecord).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		existing, getErr := l.Get(ctx, record.Key)
		if getErr != nil {
			return nil, getErr
		}
		if existing == nil {
			return nil, err
		}
		if existing.RequestHash != record.RequestHash {
			return existing, ports.ErrImportConflict
		}
		return existing, nil
	}
	return dbRecord.toPort(), nil
}

func (l *ImportLedger) ensureDB() error {
	if l == nil || l.db == nil {
		return errors.New("postgres import ledger not configured")
	}
	return nil
}

type importRecord struct {
	IdempotencyKey string         `gorm:"primaryKey;column:idempotency_key;size:255"`
	RequestHash    string         `gorm:"column:request_hash;size:128"`
	Source         string         `gorm:"column:source"`
	Imported       pq.StringArray `gorm:"column:imported;type:text[]"`
	RejectedCount  int            `gorm:"column:rejected_count"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
}

func (importRecord) TableName() string { return "catalog_imports" }

func (r importRecord) toPort() *ports.ImportRecord {
	return &ports.ImportRecord{
		Key:           r.IdempotencyKey,
		RequestHash:   r.RequestHash,
		Source:        r.Source,
		Imported:      append([]string(nil), r.Imported...),
		RejectedCount: r.RejectedCount,
		CreatedAt:     r.CreatedAt,
	}
}

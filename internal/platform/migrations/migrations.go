package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Carts stay in memory and have no table.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&animalRecord{},
		&importRecord{},
	)
}

// Animal schema mirrors the catalog Postgres adapter.
type animalRecord struct {
	ID            string          `gorm:"primaryKey;column:id;size:128"`
	Name          string          `gorm:"column:name;index"`
	Species       string          `gorm:"column:species"`
	Category      string          `gorm:"column:category;type:varchar(32);index"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(12,2);index"`
	ImageURL      string          `gorm:"column:image_url"`
	Description   string          `gorm:"column:description"`
	CareLevel     string          `gorm:"column:care_level;type:varchar(32)"`
	Size          string          `gorm:"column:size;type:varchar(32)"`
	Lifespan      string          `gorm:"column:lifespan"`
	Habitat       string          `gorm:"column:habitat"`
	Diet          string          `gorm:"column:diet"`
	InStock       bool            `gorm:"column:in_stock"`
	StockQuantity int             `gorm:"column:stock_quantity"`
	SearchTerms   pq.StringArray  `gorm:"column:search_terms;type:text[]"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (animalRecord) TableName() string { return "catalog_animals" }

// Import schema mirrors the catalog import ledger.
type importRecord struct {
	IdempotencyKey string         `gorm:"primaryKey;column:idempotency_key;size:255"`
	RequestHash    string         `gorm:"column:request_hash;size:128"`
	Source         string         `gorm:"column:source"`
	Imported       pq.StringArray `gorm:"column:imported;type:text[]"`
	RejectedCount  int            `gorm:"column:rejected_count"`
	CreatedAt      time.Time      `gorm:"column:created_at;index"`
}

func (importRecord) TableName() string { return "catalog_imports" }

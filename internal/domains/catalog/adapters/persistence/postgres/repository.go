package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/exotica-pets/internal/domains/catalog/domain"
	"github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
	"github.com/Apurer/exotica-pets/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists catalog listings in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type animalRecord struct {
	ID            string          `gorm:"primaryKey;column:id;size:128"`
	Name          string          `gorm:"column:name;index"`
	Species       string          `gorm:"column:species"`
	Category      string          `gorm:"column:category;type:varchar(32);index"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
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

// Save inserts or updates a listing, preserving created_at on conflict.
func (r *Repository) Save(ctx context.Context, animal *domain.Animal) (*projection.Projection[*domain.Animal], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if animal == nil {
		return nil, errors.New("cannot save nil animal")
	}
	if err := animal.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(animal)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "species", "category", "price", "image_url", "description",
				"care_level", "size", "lifespan", "habitat", "diet", "in_stock",
				"stock_quantity", "search_terms", "updated_at",
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a listing by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Animal], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record animalRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection()
}

// Delete removes a listing by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&animalRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// Find translates the filter into SQL predicates.
func (r *Repository) Find(ctx context.Context, filter domain.Filter) ([]*projection.Projection[*domain.Animal], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&animalRecord{})
	if filter.Category != "" {
		query = query.Where("category = ?", string(filter.Category))
	}
	if filter.CareLevel != "" {
		query = query.Where("care_level = ?", string(filter.CareLevel))
	}
	if filter.Size != "" {
		query = query.Where("size = ?", string(filter.Size))
	}
	if !filter.Price.Min.IsZero() {
		query = query.Where("price >= ?", filter.Price.Min)
	}
	if filter.Price.Max.Valid {
		query = query.Where("price <= ?", filter.Price.Max.Decimal)
	}
	if term := strings.ToLower(strings.TrimSpace(filter.Search)); term != "" {
		query = query.Where("EXISTS (SELECT 1 FROM unnest(search_terms) AS term WHERE term LIKE ?)", "%"+escapeLike(term)+"%")
	}
	var records []animalRecord
	if err := query.Order("name ASC").Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*projection.Projection[*domain.Animal], 0, len(records))
	for i := range records {
		p, err := records[i].toProjection()
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

// Count reports the number of listings.
func (r *Repository) Count(ctx context.Context) (int, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&animalRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toRecord(a *domain.Animal) animalRecord {
	return animalRecord{
		ID:            a.ID,
		Name:          a.Name,
		Species:       a.Species,
		Category:      string(a.Category),
		Price:         a.Price,
		ImageURL:      a.ImageURL,
		Description:   a.Description,
		CareLevel:     string(a.CareLevel),
		Size:          string(a.Size),
		Lifespan:      a.Lifespan,
		Habitat:       a.Habitat,
		Diet:          a.Diet,
		InStock:       a.InStock,
		StockQuantity: a.StockQuantity,
		SearchTerms:   pq.StringArray{strings.ToLower(a.Name), strings.ToLower(a.Species)},
	}
}

// toProjection re-validates enum columns so rows written by other tools cannot smuggle unknown values.
func (r animalRecord) toProjection() (*projection.Projection[*domain.Animal], error) {
	animal := &domain.Animal{
		ID:            r.ID,
		Name:          r.Name,
		Species:       r.Species,
		Category:      domain.Category(r.Category),
		Price:         r.Price,
		ImageURL:      r.ImageURL,
		Description:   r.Description,
		CareLevel:     domain.CareLevel(r.CareLevel),
		Size:          domain.Size(r.Size),
		Lifespan:      r.Lifespan,
		Habitat:       r.Habitat,
		Diet:          r.Diet,
		InStock:       r.InStock,
		StockQuantity: r.StockQuantity,
	}
	if err := animal.Validate(); err != nil {
		return nil, err
	}
	return projection.New(animal, r.CreatedAt, r.UpdatedAt), nil
}

func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

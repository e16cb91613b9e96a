package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/Apurer/exotica-pets/internal/domains/catalog/domain"
	"github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
	"github.com/Apurer/exotica-pets/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

const schema = `CREATE TABLE IF NOT EXISTS catalog_animals (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	species TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL,
	price TEXT NOT NULL,
	image_url TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	care_level TEXT NOT NULL,
	size TEXT NOT NULL,
	lifespan TEXT NOT NULL DEFAULT '',
	habitat TEXT NOT NULL DEFAULT '',
	diet TEXT NOT NULL DEFAULT '',
	in_stock INTEGER NOT NULL,
	stock_quantity INTEGER NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

const columns = `id, name, species, category, price, image_url, description, care_level, size,
	lifespan, habitat, diet, in_stock, stock_quantity, created_at, updated_at`

// Repository keeps the catalog in a single-file SQLite database.
type Repository struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open creates the database file and schema when missing.
func Open(path string) (*Repository, error) {
	if path == "" {
		path = "catalog.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection serializes writers and keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create catalog table: %w", err)
	}
	return &Repository{db: db, path: path, now: time.Now}, nil
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Close releases the database handle.
func (r *Repository) Close() error { return r.db.Close() }

// Path returns the configured database path.
func (r *Repository) Path() string { return r.path }

// Save inserts or replaces a listing, keeping the original created_at.
func (r *Repository) Save(ctx context.Context, animal *domain.Animal) (*projection.Projection[*domain.Animal], error) {
	if animal == nil {
		return nil, errors.New("cannot save nil animal")
	}
	if err := animal.Validate(); err != nil {
		return nil, err
	}
	now := r.now().UTC().UnixNano()
	_, err := r.db.ExecContext(ctx, `INSERT INTO catalog_animals(`+columns+`)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, species=excluded.species, category=excluded.category,
			price=excluded.price, image_url=excluded.image_url, description=excluded.description,
			care_level=excluded.care_level, size=excluded.size, lifespan=excluded.lifespan,
			habitat=excluded.habitat, diet=excluded.diet, in_stock=excluded.in_stock,
			stock_quantity=excluded.stock_quantity, updated_at=excluded.updated_at`,
		animal.ID, animal.Name, animal.Species, string(animal.Category), animal.Price.String(),
		animal.ImageURL, animal.Description, string(animal.CareLevel), string(animal.Size),
		animal.Lifespan, animal.Habitat, animal.Diet, animal.InStock, animal.StockQuantity, now, now)
	if err != nil {
		return nil, fmt.Errorf("upsert animal %s: %w", animal.ID, err)
	}
	return r.GetByID(ctx, animal.ID)
}

// GetByID fetches a listing by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Animal], error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM catalog_animals WHERE id = ?`, id)
	p, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	return p, err
}

// Delete removes a listing by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM catalog_animals WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// Find pushes the enum predicates into SQL; price and search use the domain filter
// since prices are stored as exact decimal text.
func (r *Repository) Find(ctx context.Context, filter domain.Filter) ([]*projection.Projection[*domain.Animal], error) {
	var (
		where []string
		args  []any
	)
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, string(filter.Category))
	}
	if filter.CareLevel != "" {
		where = append(where, "care_level = ?")
		args = append(args, string(filter.CareLevel))
	}
	if filter.Size != "" {
		where = append(where, "size = ?")
		args = append(args, string(filter.Size))
	}
	query := `SELECT ` + columns + ` FROM catalog_animals`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select animals: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var list []*projection.Projection[*domain.Animal]
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, err
		}
		if filter.Matches(p.Entity) {
			list = append(list, p)
		}
	}
	return list, rows.Err()
}

// Count reports the number of listings.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_animals`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*projection.Projection[*domain.Animal], error) {
	var (
		a                    domain.Animal
		category, care, size string
		price                string
		created, updated     int64
	)
	if err := s.Scan(&a.ID, &a.Name, &a.Species, &category, &price, &a.ImageURL, &a.Description,
		&care, &size, &a.Lifespan, &a.Habitat, &a.Diet, &a.InStock, &a.StockQuantity, &created, &updated); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("decode price of %s: %w", a.ID, err)
	}
	a.Price = parsed
	a.Category = domain.Category(category)
	a.CareLevel = domain.CareLevel(care)
	a.Size = domain.Size(size)
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("decode animal %s: %w", a.ID, err)
	}
	return projection.New(&a, time.Unix(0, created).UTC(), time.Unix(0, updated).UTC()), nil
}

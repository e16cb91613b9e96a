package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const pingTimeout = 5 * time.Second

// Config returns the GORM settings shared by every connection. Dialect errors are translated
// so adapters can match gorm.ErrDuplicatedKey.
func Config() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// Pool sizes the database/sql pool under GORM. Zero values keep the driver defaults.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// PoolFromEnv reads POSTGRES_MAX_OPEN_CONNS, POSTGRES_MAX_IDLE_CONNS and
// POSTGRES_CONN_MAX_LIFETIME_MINUTES. Malformed values are ignored.
func PoolFromEnv() Pool {
	return Pool{
		MaxOpenConns:    intEnv("POSTGRES_MAX_OPEN_CONNS"),
		MaxIdleConns:    intEnv("POSTGRES_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(intEnv("POSTGRES_CONN_MAX_LIFETIME_MINUTES")) * time.Minute,
	}
}

// Connect opens a PostgreSQL connection via GORM, applies the pool limits and verifies connectivity.
func Connect(ctx context.Context, dsn string, pool Pool) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), Config())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap postgres pool: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// ConnectFromEnv dials PostgreSQL using POSTGRES_DSN and returns the DB plus a cleanup function.
func ConnectFromEnv(ctx context.Context, logger *slog.Logger) (*gorm.DB, func()) {
	return ConnectDSN(ctx, os.Getenv("POSTGRES_DSN"), logger)
}

// ConnectDSN dials dsn with the pool limits from the environment. A missing DSN or a failed
// dial is logged and yields a nil DB, so callers fall back to another catalog store.
func ConnectDSN(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, func()) {
	if logger == nil {
		logger = slog.Default()
	}
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		logger.Info("POSTGRES_DSN not set, postgres catalog disabled")
		return nil, func() {}
	}
	db, err := Connect(ctx, dsn, PoolFromEnv())
	if err != nil {
		logger.Warn("postgres catalog disabled", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, _ := db.DB()
	logger.Info("postgres connection established", slog.Int("max_open_conns", sqlDB.Stats().MaxOpenConnections))
	return db, func() { _ = sqlDB.Close() }
}

func intEnv(key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Apurer/exotica-pets/internal/app/api"
	catalogpostgres "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/persistence/postgres"
	catalogsource "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/source"
	catalogapp "github.com/Apurer/exotica-pets/internal/domains/catalog/application"
	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
	catalogports "github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
	"github.com/Apurer/exotica-pets/internal/platform/migrations"
	platformpostgres "github.com/Apurer/exotica-pets/internal/platform/postgres"
)

type options struct {
	source         string
	idempotencyKey string
	timeout        time.Duration
}

func main() {
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	opts, err := parseFlags(os.Args[1:], cfg)
	if err != nil {
		log.Fatalf("invalid flags: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if err := run(context.Background(), opts, cfg, logger); err != nil {
		logger.Error("catalog import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func parseFlags(args []string, cfg api.Config) (options, error) {
	var opts options
	fs := flag.NewFlagSet("catalog-import", flag.ContinueOnError)
	fs.StringVar(&opts.source, "source", cfg.CatalogSource, "catalog document: a path, an s3://bucket/key URI, or empty for the embedded seed")
	fs.StringVar(&opts.idempotencyKey, "idempotency-key", "", "overrides the idempotency key of the document")
	fs.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall deadline")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.timeout <= 0 {
		return options{}, fmt.Errorf("timeout must be positive, got %s", opts.timeout)
	}
	return opts, nil
}

func run(ctx context.Context, opts options, cfg api.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	db, cleanup := platformpostgres.ConnectDSN(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		return errors.New("POSTGRES_DSN not set or connection failed")
	}
	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("migrate catalog schema: %w", err)
	}
	service := catalogapp.NewService(catalogpostgres.NewRepository(db), catalogapp.WithImportLedger(catalogpostgres.NewImportLedger(db)))
	_, err := importDocument(ctx, service, opts, cfg.S3, logger)
	return err
}

func importDocument(ctx context.Context, service catalogports.Service, opts options, s3 catalogsource.S3Config, logger *slog.Logger) (*catalogtypes.ImportResult, error) {
	src, err := catalogsource.Resolve(ctx, opts.source, s3)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog source: %w", err)
	}
	input, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if key := strings.TrimSpace(opts.idempotencyKey); key != "" {
		input.IdempotencyKey = key
	}
	result, err := service.Import(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("import catalog from %s: %w", src.Describe(), err)
	}
	for _, r := range result.Rejected {
		logger.Warn("catalog record rejected", slog.Int("index", r.Index), slog.String("animal.id", r.ID), slog.String("reason", r.Reason))
	}
	logger.Info("catalog import completed",
		slog.String("source", src.Describe()),
		slog.Int("imported", len(result.Imported)),
		slog.Int("rejected", len(result.Rejected)),
		slog.Bool("replayed", result.Replayed))
	return result, nil
}

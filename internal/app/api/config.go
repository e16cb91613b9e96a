package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	catalogsource "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/source"
)

const (
	defaultCartIdleTTL       = 120 * time.Minute
	defaultCartPurgeInterval = 5 * time.Minute
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	PostgresDSN       string
	CatalogSQLitePath string
	// CatalogSource seeds an empty memory or sqlite catalog: a path, an s3:// URI, or empty for the embedded seed.
	CatalogSource     string
	S3                catalogsource.S3Config
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	CartIdleTTL       time.Duration
	CartPurgeInterval time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		CatalogSQLitePath: strings.TrimSpace(os.Getenv("CATALOG_SQLITE_PATH")),
		CatalogSource:     strings.TrimSpace(os.Getenv("CATALOG_SOURCE")),
		S3: catalogsource.S3Config{
			Region:    envDefault("CATALOG_S3_REGION", os.Getenv("AWS_REGION")),
			Endpoint:  strings.TrimSpace(os.Getenv("CATALOG_S3_ENDPOINT")),
			PathStyle: isTruthy(os.Getenv("CATALOG_S3_PATH_STYLE")),
		},
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		CartIdleTTL:       defaultCartIdleTTL,
		CartPurgeInterval: defaultCartPurgeInterval,
	}
	var err error
	if cfg.CartIdleTTL, err = minutesEnv("CART_IDLE_TTL_MINUTES", defaultCartIdleTTL); err != nil {
		return Config{}, err
	}
	if cfg.CartPurgeInterval, err = minutesEnv("CART_PURGE_INTERVAL_MINUTES", defaultCartPurgeInterval); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func minutesEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return time.Duration(minutes) * time.Minute, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

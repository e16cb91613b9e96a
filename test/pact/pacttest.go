//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "storefront-api"
	ConsumerName = "storefront-web"

	StateCatalogBaseline = "catalog baseline"
	StateAnimalExists    = "animal leopard-gecko exists"
	StateAnimalMissing   = "no animal unicorn"
	StateCartExists      = "an empty cart exists"
)

const (
	ExistingAnimalID = "leopard-gecko"
	MissingAnimalID  = "unicorn"
	ExistingCartID   = "5b0c8f5e-3d4a-4f1e-9c2b-7a6d5e4f3c2b"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront web consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleAnimalPayload provides stable test data for pact interactions.
func ExampleAnimalPayload() map[string]any {
	return map[string]any{
		"id":            ExistingAnimalID,
		"name":          "Gecko Leopardo",
		"species":       "Eublepharis macularius",
		"category":      "reptiles",
		"price":         "45.50",
		"careLevel":     "easy",
		"size":          "small",
		"inStock":       true,
		"stockQuantity": 3,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}

package workflows

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.temporal.io/sdk/temporal"

	catalogmemory "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/exotica-pets/internal/domains/catalog/application"
	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
	"github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
	catalogactivities "github.com/Apurer/exotica-pets/internal/durable/temporal/activities/catalog"
)

func TestBuildCatalogImportWorkflowID(t *testing.T) {
	withKey := buildCatalogImportWorkflowID(catalogtypes.ImportCatalogInput{IdempotencyKey: " nightly "}, "trace")
	again := buildCatalogImportWorkflowID(catalogtypes.ImportCatalogInput{IdempotencyKey: "nightly"}, "other")
	assert.Equal(t, withKey, again)
	assert.True(t, strings.HasPrefix(withKey, "catalog-import-idem-"))
	assert.Len(t, strings.TrimPrefix(withKey, "catalog-import-idem-"), 16)

	assert.Equal(t, "catalog-import-abc", buildCatalogImportWorkflowID(catalogtypes.ImportCatalogInput{}, "abc"))
}

func TestWorkflowTraceComponent(t *testing.T) {
	assert.True(t, strings.HasPrefix(workflowTraceComponent(context.Background()), "fallback-"))

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	ctx, span := tp.Tracer("test").Start(context.Background(), "import")
	defer span.End()
	assert.Equal(t, span.SpanContext().TraceID().String(), workflowTraceComponent(ctx))
}

func TestInlineCatalogWorkflows_DelegatesToService(t *testing.T) {
	svc := catalogapp.NewService(catalogmemory.NewRepository())
	orchestrator := NewInlineCatalogWorkflows(svc)

	result, err := orchestrator.ImportCatalog(context.Background(), catalogtypes.ImportCatalogInput{
		Source: "inline",
		Animals: []catalogtypes.UpsertAnimalInput{{
			ID: "discus", Name: "Pez Disco", Category: "fish", Price: "320",
			CareLevel: "advanced", Size: "medium", InStock: true, StockQuantity: 2,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"discus"}, result.Imported)

	var unset *InlineCatalogWorkflows
	_, err = unset.ImportCatalog(context.Background(), catalogtypes.ImportCatalogInput{})
	require.Error(t, err)
}

func TestTranslateWorkflowError(t *testing.T) {
	conflict := temporal.NewNonRetryableApplicationError("key reused", catalogactivities.ImportConflictErrorType, nil)
	assert.ErrorIs(t, translateWorkflowError(conflict), ports.ErrImportConflict)

	other := errors.New("boom")
	assert.Same(t, other, translateWorkflowError(other))
}

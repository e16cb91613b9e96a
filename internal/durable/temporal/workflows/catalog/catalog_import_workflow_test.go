package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	catalogmemory "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/exotica-pets/internal/domains/catalog/application"
	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
	catalogactivities "github.com/Apurer/exotica-pets/internal/durable/temporal/activities/catalog"
)

func axolotl() catalogtypes.UpsertAnimalInput {
	return catalogtypes.UpsertAnimalInput{
		ID: "axolotl", Name: "Ajolote", Species: "Ambystoma mexicanum", Category: "amphibians",
		Price: "35", CareLevel: "intermediate", Size: "small", InStock: true, StockQuantity: 10,
	}
}

func newEnv(t *testing.T, svc *catalogapp.Service) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(CatalogImportWorkflow)
	env.RegisterActivityWithOptions(catalogactivities.NewActivities(svc).ImportCatalog,
		activity.RegisterOptions{Name: catalogactivities.ImportCatalogActivityName})
	return env
}

func TestCatalogImportWorkflow_ImportsBatch(t *testing.T) {
	repo := catalogmemory.NewRepository()
	env := newEnv(t, catalogapp.NewService(repo))

	bad := axolotl()
	bad.ID = "ghost"
	bad.Category = "spirits"
	env.ExecuteWorkflow(CatalogImportWorkflow, CatalogImportWorkflowInput{
		Command: catalogtypes.ImportCatalogInput{Source: "test", Animals: []catalogtypes.UpsertAnimalInput{axolotl(), bad}},
		TraceID: "trace-1",
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var result catalogtypes.ImportResult
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, []string{"axolotl"}, result.Imported)
	require.Len(t, result.Rejected, 1)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestCatalogImportWorkflow_ConflictIsNotRetried(t *testing.T) {
	svc := catalogapp.NewService(catalogmemory.NewRepository(), catalogapp.WithImportLedger(catalogmemory.NewImportLedger()))
	_, err := svc.Import(context.Background(), catalogtypes.ImportCatalogInput{
		IdempotencyKey: "nightly",
		Animals:        []catalogtypes.UpsertAnimalInput{axolotl()},
	})
	require.NoError(t, err)

	env := newEnv(t, svc)
	changed := axolotl()
	changed.Price = "40"
	env.ExecuteWorkflow(CatalogImportWorkflow, CatalogImportWorkflowInput{
		Command: catalogtypes.ImportCatalogInput{IdempotencyKey: "nightly", Animals: []catalogtypes.UpsertAnimalInput{changed}},
	})

	require.True(t, env.IsWorkflowCompleted())
	wfErr := env.GetWorkflowError()
	require.Error(t, wfErr)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(wfErr, &appErr))
	require.Equal(t, catalogactivities.ImportConflictErrorType, appErr.Type())
}

package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
	catalogactivities "github.com/Apurer/exotica-pets/internal/durable/temporal/activities/catalog"
)

var nonRetryableImportErrors = []string{catalogactivities.ImportConflictErrorType}

// RunCatalogImportSequence executes the ordered set of activities needed to apply a catalog batch.
func RunCatalogImportSequence(ctx workflow.Context, input catalogtypes.ImportCatalogInput) (*catalogtypes.ImportResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("catalog import sequence started", "source", input.Source, "records", len(input.Animals))
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        30 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: nonRetryableImportErrors,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var result catalogtypes.ImportResult
	err := workflow.ExecuteActivity(ctx, catalogactivities.ImportCatalogActivityName, input).Get(ctx, &result)
	if err != nil {
		logger.Error("catalog import sequence failed", "source", input.Source, "error", err)
		return nil, err
	}
	logger.Info("catalog import sequence completed", "source", input.Source,
		"imported", len(result.Imported), "rejected", len(result.Rejected))
	return &result, nil
}

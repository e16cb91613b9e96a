package catalog

import (
	"go.temporal.io/sdk/workflow"

	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
	"github.com/Apurer/exotica-pets/internal/durable/temporal/sequences"
)

const (
	// CatalogImportWorkflowName is the public identifier for registering the workflow.
	CatalogImportWorkflowName = "catalog.workflows.Import"
	// CatalogImportTaskQueue is the queue consumed by the worker processing catalog workflows.
	CatalogImportTaskQueue = "CATALOG_IMPORT"
)

// CatalogImportWorkflowInput captures the batch to apply and the trace that requested it.
type CatalogImportWorkflowInput struct {
	Command catalogtypes.ImportCatalogInput
	TraceID string
}

// CatalogImportWorkflow applies a catalog document durably.
func CatalogImportWorkflow(ctx workflow.Context, input CatalogImportWorkflowInput) (*catalogtypes.ImportResult, error) {
	logger := workflow.GetLogger(ctx)
	source := input.Command.Source
	logger.Info("CatalogImportWorkflow started", withTraceID(input.TraceID, "source", source)...)
	result, err := sequences.RunCatalogImportSequence(ctx, input.Command)
	if err != nil {
		logger.Error("CatalogImportWorkflow failed", withTraceID(input.TraceID, "source", source, "error", err)...)
		return nil, err
	}
	logger.Info("CatalogImportWorkflow completed", withTraceID(input.TraceID, "source", source, "imported", len(result.Imported))...)
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}

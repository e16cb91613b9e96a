package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
	"github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
	catalogactivities "github.com/Apurer/exotica-pets/internal/durable/temporal/activities/catalog"
	catalogworkflows "github.com/Apurer/exotica-pets/internal/durable/temporal/workflows/catalog"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalCatalogWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineCatalogWorkflows)(nil)
)

// TemporalCatalogWorkflows starts catalog workflows on a Temporal cluster.
type TemporalCatalogWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalCatalogWorkflows wires a Temporal client into the orchestrator.
func NewTemporalCatalogWorkflows(c client.Client) *TemporalCatalogWorkflows {
	return &TemporalCatalogWorkflows{client: c, taskQueue: catalogworkflows.CatalogImportTaskQueue}
}

// ImportCatalog starts the import workflow and waits for its result. Resubmitting a batch
// with the same idempotency key attaches to the run already started.
func (o *TemporalCatalogWorkflows) ImportCatalog(ctx context.Context, input catalogtypes.ImportCatalogInput) (*catalogtypes.ImportResult, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal catalog workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildCatalogImportWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		catalogworkflows.CatalogImportWorkflow,
		catalogworkflows.CatalogImportWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var result catalogtypes.ImportResult
			if err := existingRun.Get(ctx, &result); err != nil {
				return nil, translateWorkflowError(err)
			}
			result.Replayed = true
			return &result, nil
		}
		return nil, err
	}
	var result catalogtypes.ImportResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, translateWorkflowError(err)
	}
	return &result, nil
}

// translateWorkflowError restores the port sentinel for failures raised as application errors.
func translateWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() == catalogactivities.ImportConflictErrorType {
		return fmt.Errorf("%w: %s", ports.ErrImportConflict, appErr.Message())
	}
	return err
}

// InlineCatalogWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineCatalogWorkflows struct {
	service ports.Service
}

// NewInlineCatalogWorkflows wraps the catalog service for synchronous execution.
func NewInlineCatalogWorkflows(service ports.Service) *InlineCatalogWorkflows {
	return &InlineCatalogWorkflows{service: service}
}

// ImportCatalog delegates to the application service without durable orchestration.
func (o *InlineCatalogWorkflows) ImportCatalog(ctx context.Context, input catalogtypes.ImportCatalogInput) (*catalogtypes.ImportResult, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline catalog workflows not configured")
	}
	return o.service.Import(ctx, input)
}

func buildCatalogImportWorkflowID(input catalogtypes.ImportCatalogInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("catalog-import-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("catalog-import-%s", traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	// first 16 hex chars keep workflow IDs readable
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}

// pkg/abv_io/context.go

package abv_io

import (
	"context"
	"time"

	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_err"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RuntimeContext carries everything a command body needs for one
// verification run: context, scoped logger, telemetry span, and the run
// ID that stamps every log line and span of the run.
type RuntimeContext struct {
	Ctx        context.Context
	Log        *zap.Logger
	Span       trace.Span
	Timestamp  time.Time
	RunID      string
	Command    string
	Attributes map[string]string
}

// NewContext sets up tracing and logging for one command invocation.
func NewContext(ctx context.Context, cmdName string) *RuntimeContext {
	runID := uuid.New().String()

	ctx, span := telemetry.Start(ctx, cmdName,
		attribute.String("run_id", runID),
	)

	log := logger.GetLogger().With(
		zap.String("command", cmdName),
		zap.String("run_id", runID),
	).Named(cmdName)

	return &RuntimeContext{
		Ctx:        ctx,
		Log:        log,
		Span:       span,
		Timestamp:  time.Now(),
		RunID:      runID,
		Command:    cmdName,
		Attributes: make(map[string]string),
	}
}

// HandlePanic recovers panics, logs them, and converts to an error.
func (rc *RuntimeContext) HandlePanic(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = cerr.AssertionFailedf("panic: %v", r)
		rc.Log.Error("Panic recovered", zap.Any("panic", r))
	}
}

// End logs the outcome, stamps the span, and flushes logs. Expected
// errors (mismatch, skip) log at warn level; harness malfunctions at
// error level.
func (rc *RuntimeContext) End(errPtr *error) {
	defer rc.Span.End()

	duration := time.Since(rc.Timestamp)
	err := *errPtr

	switch {
	case err == nil:
		rc.Log.Info("Command completed", zap.Duration("duration", duration))
	case abv_err.IsExpectedError(err):
		rc.Log.Warn("Command completed with expected error",
			zap.Duration("duration", duration), zap.Error(err))
	default:
		rc.Log.Error("Command failed",
			zap.Duration("duration", duration), zap.Error(err))
	}

	rc.Span.SetAttributes(
		attribute.Bool("success", err == nil),
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("error_kind", classifyError(err)),
	)

	logger.SafeSync()
}

func classifyError(err error) string {
	switch {
	case err == nil:
		return ""
	case abv_err.IsScenarioSkipped(err):
		return "skipped"
	case abv_err.IsMismatch(err):
		return "mismatch"
	case abv_err.IsFixtureError(err):
		return "fixture"
	case abv_err.IsStatusUnavailable(err):
		return "status_unavailable"
	default:
		return "system"
	}
}

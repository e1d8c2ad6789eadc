// pkg/verifier/verifier.go
//
// The outcome verifier: given a retrieved HostStatus and a scenario
// (explicit or inferred), assert every scenario-specific invariant and
// report each mismatched field with its expected and actual value.

package verifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_err"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/hoststatus"
	"github.com/hashicorp/go-multierror"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	// RollbackErrorMarker appears in lastError after the host reverts
	// an update because its health checks failed.
	RollbackErrorMarker = "Failed health-checks"

	// FallbackErrorMarker appears in lastError after firmware booted a
	// previous known-good volume because the updated one failed to boot.
	FallbackErrorMarker = "A/B update failed as host booted from"
)

// Params parameterizes one verification.
type Params struct {
	// Scenario under test; leave ScenarioUnknown to infer it from the
	// status payload's volume label.
	Scenario Scenario

	// ExpectedVolume is the baseline volume label: the volume that was
	// active before the update or fallback, and must still be active.
	ExpectedVolume string

	// UpdateAttempted records whether the fixture attempted an A/B
	// update before the fallback. Only meaningful for uefi-fallback.
	UpdateAttempted bool

	// UefiFallback records whether the host actually booted through
	// UEFI fallback. When false, the fallback scenario is skipped
	// rather than asserted.
	UefiFallback bool

	// BootLevelOnly restricts the fallback verification to the active
	// volume, for fixtures that stop at the boot level and never reach
	// the servicing layer.
	BootLevelOnly bool
}

// Outcome is the overall result of a verification.
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// Finding is one field comparison.
type Finding struct {
	Field    string
	Expected any
	Actual   any
	OK       bool
}

// Report is the full result of a verification: an outcome plus every
// field comparison performed, matched or not.
type Report struct {
	Scenario   Scenario
	Outcome    Outcome
	SkipReason string
	Findings   []Finding
}

// Err converts the report into the harness error taxonomy: nil for a
// pass, ScenarioSkipped for a skip, and one InvariantMismatch per failed
// finding otherwise, aggregated so none is lost.
func (r *Report) Err() error {
	switch r.Outcome {
	case OutcomePassed:
		return nil
	case OutcomeSkipped:
		return abv_err.NewScenarioSkipped(r.SkipReason)
	}
	var result *multierror.Error
	for _, f := range r.Findings {
		if !f.OK {
			result = multierror.Append(result, abv_err.NewMismatch(f.Field, f.Expected, f.Actual))
		}
	}
	return result.ErrorOrNil()
}

// Verify checks status against the scenario's expected shape.
func Verify(ctx context.Context, status *hoststatus.HostStatus, params Params) *Report {
	logger := otelzap.Ctx(ctx)

	// Applicability comes before anything else: an inapplicable fixture
	// combination must produce a skip with zero assertions, not a false
	// negative. The status payload is not read on this path.
	if params.Scenario == ScenarioUefiFallback && !params.UefiFallback {
		logger.Info("Scenario skipped",
			zap.String("scenario", string(params.Scenario)),
			zap.String("reason", "host did not boot via UEFI fallback"))
		return &Report{
			Scenario:   params.Scenario,
			Outcome:    OutcomeSkipped,
			SkipReason: "host did not boot via UEFI fallback",
		}
	}

	r := &Report{Scenario: params.Scenario}

	switch params.Scenario {
	case ScenarioCleanInstall:
		r.expectEqual("servicingState", hoststatus.StateProvisioned, status.ServicingState)
		r.expectEqual("abActiveVolume", params.ExpectedVolume, status.ActiveVolume())
		r.expectNoError(status)

	case ScenarioABUpdateRollback:
		r.expectEqual("servicingState", hoststatus.StateProvisioned, status.ServicingState)
		r.expectEqual("abActiveVolume", params.ExpectedVolume, status.ActiveVolume())
		r.expectErrorContaining(RollbackErrorMarker, status)

	case ScenarioUefiFallback:
		cls := Classify(status.ActiveVolume())
		if params.BootLevelOnly {
			// Boot-level fixtures never reach the servicing layer, so
			// only the active volume is meaningful.
			r.expectEqual("abActiveVolume", params.ExpectedVolume, status.ActiveVolume())
			break
		}
		r.expectEqual("servicingState", hoststatus.StateProvisioned, status.ServicingState)
		r.expectEqual("abActiveVolume", params.ExpectedVolume, cls.Volume)
		if params.UpdateAttempted || cls.UpdateAttempted {
			r.expectErrorContaining(FallbackErrorMarker, status)
		} else {
			r.expectNoError(status)
		}

	default:
		// No explicit scenario: classify from the volume label and
		// verify the attempted-and-reverted or clean-install shape.
		cls := Classify(status.ActiveVolume())
		r.Scenario = cls.Scenario
		r.expectEqual("servicingState", hoststatus.StateProvisioned, status.ServicingState)
		r.expectEqual("abActiveVolume", params.ExpectedVolume, cls.Volume)
		if cls.UpdateAttempted {
			r.expectErrorContaining(FallbackErrorMarker, status)
		} else {
			r.expectNoError(status)
		}
	}

	r.Outcome = OutcomePassed
	for _, f := range r.Findings {
		if !f.OK {
			r.Outcome = OutcomeFailed
			logger.Warn("Invariant mismatch",
				zap.String("scenario", string(r.Scenario)),
				zap.String("field", f.Field),
				zap.Any("expected", f.Expected),
				zap.Any("actual", f.Actual))
		}
	}

	logger.Info("Verification finished",
		zap.String("scenario", string(r.Scenario)),
		zap.String("outcome", string(r.Outcome)),
		zap.Int("findings", len(r.Findings)))
	return r
}

func (r *Report) expectEqual(field string, expected, actual any) {
	r.Findings = append(r.Findings, Finding{
		Field:    field,
		Expected: expected,
		Actual:   actual,
		OK:       expected == actual,
	})
}

func (r *Report) expectNoError(status *hoststatus.HostStatus) {
	r.Findings = append(r.Findings, Finding{
		Field:    "lastError",
		Expected: "no error",
		Actual:   errorActual(status),
		OK:       status.LastError == nil,
	})
}

func (r *Report) expectErrorContaining(marker string, status *hoststatus.HostStatus) {
	text := status.ErrorText()
	r.Findings = append(r.Findings, Finding{
		Field:    "lastError",
		Expected: fmt.Sprintf("error containing %q", marker),
		Actual:   errorActual(status),
		OK:       status.LastError != nil && strings.Contains(text, marker),
	})
}

func errorActual(status *hoststatus.HostStatus) string {
	if status.LastError == nil {
		return "no error"
	}
	return status.ErrorText()
}

// pkg/verifier/verifier_test.go

package verifier

import (
	"context"
	"testing"

	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_err"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/hoststatus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusWith(state hoststatus.ServicingState, volume, lastError string) *hoststatus.HostStatus {
	s := &hoststatus.HostStatus{
		ServicingState: state,
		ABActiveVolume: volume,
	}
	if lastError != "" {
		s.LastError = &hoststatus.HostError{Message: lastError}
	}
	return s
}

func TestVerify_RollbackDetection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	status := statusWith(hoststatus.StateProvisioned, "blue",
		"Failed health-checks on check invoke-rollback-from-script")

	report := Verify(ctx, status, Params{
		Scenario:       ScenarioABUpdateRollback,
		ExpectedVolume: "blue",
	})

	assert.Equal(t, OutcomePassed, report.Outcome)
	require.NoError(t, report.Err())
}

func TestVerify_RollbackVolumeChanged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// The update was committed instead of rolled back: the wrong volume
	// is active, and nothing mentions failed health checks.
	status := statusWith(hoststatus.StateProvisioned, "green", "")

	report := Verify(ctx, status, Params{
		Scenario:       ScenarioABUpdateRollback,
		ExpectedVolume: "blue",
	})

	assert.Equal(t, OutcomeFailed, report.Outcome)
	err := report.Err()
	require.Error(t, err)
	assert.True(t, abv_err.IsMismatch(err))

	// Both mismatches surface, each naming its field with expected and
	// actual values.
	assert.Contains(t, err.Error(), "abActiveVolume")
	assert.Contains(t, err.Error(), "expected blue, actual green")
	assert.Contains(t, err.Error(), "lastError")
}

func TestVerify_RollbackMissingErrorMarker(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	status := statusWith(hoststatus.StateProvisioned, "blue", "disk full")

	report := Verify(ctx, status, Params{
		Scenario:       ScenarioABUpdateRollback,
		ExpectedVolume: "blue",
	})

	assert.Equal(t, OutcomeFailed, report.Outcome)
	assert.Contains(t, report.Err().Error(), RollbackErrorMarker)
}

func TestVerify_CleanInstallBaseline(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	status := statusWith(hoststatus.StateProvisioned, "blue", "")

	report := Verify(ctx, status, Params{
		Scenario:       ScenarioCleanInstall,
		ExpectedVolume: "blue",
	})

	assert.Equal(t, OutcomePassed, report.Outcome)
	require.NoError(t, report.Err())
}

func TestVerify_CleanInstallRejectsAnyError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	status := statusWith(hoststatus.StateProvisioned, "blue", "some stale error")

	report := Verify(ctx, status, Params{
		Scenario:       ScenarioCleanInstall,
		ExpectedVolume: "blue",
	})

	assert.Equal(t, OutcomeFailed, report.Outcome)
	err := report.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected no error")
}

func TestVerify_FallbackPrefixStripping(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// No explicit scenario: the prefixed label alone identifies an
	// attempted-and-reverted update, and equality is asserted against
	// the stripped volume.
	status := statusWith(hoststatus.StateProvisioned, "abupdate-green",
		"A/B update failed as host booted from volume green")

	report := Verify(ctx, status, Params{ExpectedVolume: "green"})

	assert.Equal(t, ScenarioABUpdateRollback, report.Scenario)
	assert.Equal(t, OutcomePassed, report.Outcome)
	require.NoError(t, report.Err())
}

func TestVerify_InferredCleanInstall(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	status := statusWith(hoststatus.StateProvisioned, "green", "")

	report := Verify(ctx, status, Params{ExpectedVolume: "green"})

	assert.Equal(t, ScenarioCleanInstall, report.Scenario)
	assert.Equal(t, OutcomePassed, report.Outcome)
}

func TestVerify_FallbackFull(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	status := statusWith(hoststatus.StateProvisioned, "abupdate-blue",
		"A/B update failed as host booted from volume blue")

	report := Verify(ctx, status, Params{
		Scenario:        ScenarioUefiFallback,
		ExpectedVolume:  "blue",
		UpdateAttempted: true,
		UefiFallback:    true,
	})

	assert.Equal(t, OutcomePassed, report.Outcome)
	require.NoError(t, report.Err())
}

func TestVerify_FallbackWithoutUpdateRequiresNoError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	status := statusWith(hoststatus.StateProvisioned, "blue",
		"A/B update failed as host booted from volume blue")

	report := Verify(ctx, status, Params{
		Scenario:       ScenarioUefiFallback,
		ExpectedVolume: "blue",
		UefiFallback:   true,
	})

	assert.Equal(t, OutcomeFailed, report.Outcome)
	assert.Contains(t, report.Err().Error(), "expected no error")
}

func TestVerify_FallbackBootLevelOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Boot-level fixtures never reach the servicing layer: neither the
	// in-progress state nor the stale error may be asserted.
	status := statusWith(hoststatus.StateProvisioning, "blue", "stale error")

	report := Verify(ctx, status, Params{
		Scenario:       ScenarioUefiFallback,
		ExpectedVolume: "blue",
		UefiFallback:   true,
		BootLevelOnly:  true,
	})

	assert.Equal(t, OutcomePassed, report.Outcome)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, "abActiveVolume", report.Findings[0].Field)
}

func TestVerify_SkipWhenNotUefiFallback(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// A nil status proves the payload is never touched on the skip path.
	report := Verify(ctx, nil, Params{
		Scenario:     ScenarioUefiFallback,
		UefiFallback: false,
	})

	assert.Equal(t, OutcomeSkipped, report.Outcome)
	assert.Empty(t, report.Findings)

	err := report.Err()
	require.Error(t, err)
	assert.True(t, abv_err.IsScenarioSkipped(err))
	assert.Equal(t, 0, abv_err.ExitCode(err))
}

func TestVerify_NestedSchemaVolume(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	status := &hoststatus.HostStatus{
		ServicingState: hoststatus.StateProvisioned,
		Boot:           &hoststatus.BootStatus{ABActiveVolume: "blue"},
	}

	report := Verify(ctx, status, Params{
		Scenario:       ScenarioCleanInstall,
		ExpectedVolume: "blue",
	})

	assert.Equal(t, OutcomePassed, report.Outcome)
}

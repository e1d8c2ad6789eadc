// pkg/hostconfig/inject.go

package hostconfig

import (
	"context"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// FailingScriptCheck returns a health check whose inline script
// unconditionally exits nonzero during an A/B update attempt.
func FailingScriptCheck() Check {
	return Check{
		Name:    "invoke-rollback-from-script",
		RunOn:   []string{TriggerABUpdate},
		Content: "echo 'failure for ab update'\nexit 1",
	}
}

// MissingServicesCheck returns a health check that probes systemd units
// known not to exist, bounded by an explicit timeout.
func MissingServicesCheck() Check {
	return Check{
		Name:           "check-non-existent-service-to-invoke-rollback",
		TimeoutSeconds: 30,
		SystemdServices: []string{
			"non-existent-service1",
			"non-existent-service2",
		},
		RunOn: []string{TriggerABUpdate},
	}
}

// InjectRollbackFailure rewrites the configuration document at path so
// that the next A/B update attempt is guaranteed to fail its health
// checks and roll back. Checks are appended; nothing pre-existing is
// disturbed.
func InjectRollbackFailure(ctx context.Context, path string) error {
	logger := otelzap.Ctx(ctx)

	cfg, err := Load(ctx, path)
	if err != nil {
		return err
	}

	health := cfg.EnsureHealth()
	before := len(health.Checks)
	health.AppendChecks(FailingScriptCheck(), MissingServicesCheck())

	if err := cfg.Save(ctx, path); err != nil {
		return err
	}

	logger.Info("Injected rollback-inducing health checks",
		zap.String("path", path),
		zap.Int("checks_before", before),
		zap.Int("checks_after", len(health.Checks)))
	return nil
}

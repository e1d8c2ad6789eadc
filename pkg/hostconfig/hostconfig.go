// pkg/hostconfig/hostconfig.go
//
// Typed model of the host's declarative configuration document. Only the
// health-check section is modeled; every other key round-trips through
// the inline Extra maps untouched, so the harness can rewrite a config
// it does not fully understand.

package hostconfig

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_err"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_io"
)

// TriggerABUpdate scopes a check to run only during an A/B update attempt.
const TriggerABUpdate = "ab-update"

// HostConfig is the top of the configuration document.
type HostConfig struct {
	Health *Health        `yaml:"health,omitempty"`
	Extra  map[string]any `yaml:",inline"`
}

// Health holds the host's health-check directives.
type Health struct {
	Checks []Check        `yaml:"checks,omitempty"`
	Extra  map[string]any `yaml:",inline"`
}

// Check is one health-check directive. A check is either an inline
// script (Content) or a systemd-service probe (SystemdServices with a
// timeout); the host discriminates on which fields are present.
type Check struct {
	Name            string         `yaml:"name,omitempty"`
	RunOn           []string       `yaml:"run_on,omitempty"`
	Content         string         `yaml:"content,omitempty"`
	TimeoutSeconds  int            `yaml:"timeoutSeconds,omitempty"`
	SystemdServices []string       `yaml:"systemdServices,omitempty"`
	Extra           map[string]any `yaml:",inline"`
}

// Load reads and parses a host configuration document. A document that
// does not parse is a broken fixture, not a transient condition.
func Load(ctx context.Context, path string) (*HostConfig, error) {
	var cfg HostConfig
	if err := abv_io.ReadYAML(ctx, path, &cfg); err != nil {
		return nil, abv_err.NewFixtureError(err, "load host configuration")
	}
	return &cfg, nil
}

// Save overwrites the configuration document in place.
func (c *HostConfig) Save(ctx context.Context, path string) error {
	if err := abv_io.WriteYAML(ctx, path, c); err != nil {
		return abv_err.NewFixtureError(err, "save host configuration")
	}
	return nil
}

// EnsureHealth returns the health section, creating it if the document
// does not have one yet.
func (c *HostConfig) EnsureHealth() *Health {
	if c.Health == nil {
		c.Health = &Health{}
	}
	return c.Health
}

// AppendChecks appends checks to the list. Existing entries are never
// replaced or deduplicated, so repeated injections are cumulative.
func (h *Health) AppendChecks(checks ...Check) {
	h.Checks = append(h.Checks, checks...)
}

// pkg/hoststatus/status.go
//
// Canonical snapshot of a host's servicing state, as reported by the
// host's own status tool. The status schema changed over time: the
// active volume lives at abActiveVolume in the legacy schema and at
// boot.ab_active_volume in the newer one, so both paths are modeled.

package hoststatus

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ServicingState is the host's self-reported lifecycle phase.
type ServicingState string

const (
	StateNotProvisioned ServicingState = "not-provisioned"
	StateProvisioning   ServicingState = "provisioning"
	StateProvisioned    ServicingState = "provisioned"
	StateFailed         ServicingState = "failed"

	// Staged states are transient; a host resting in one after a test
	// run indicates the run never completed.
	StateCleanInstallStaged ServicingState = "clean-install-staged"
	StateABUpdateStaged     ServicingState = "ab-update-staged"
)

// Terminal reports whether the state is a resting state. After any
// completed test scenario the host must be in one of these.
func (s ServicingState) Terminal() bool {
	switch s {
	case StateNotProvisioned, StateProvisioned, StateFailed:
		return true
	}
	return false
}

// HostStatus is the parsed status-query response.
type HostStatus struct {
	ServicingState ServicingState `yaml:"servicingState"`
	ABActiveVolume string         `yaml:"abActiveVolume,omitempty"`
	Boot           *BootStatus    `yaml:"boot,omitempty"`
	LastError      *HostError     `yaml:"lastError,omitempty"`
	Extra          map[string]any `yaml:",inline"`
}

// BootStatus is the newer schema's nested boot section.
type BootStatus struct {
	ABActiveVolume string         `yaml:"ab_active_volume,omitempty"`
	Extra          map[string]any `yaml:",inline"`
}

// ActiveVolume returns the currently booted A/B volume label, preferring
// the newer boot.ab_active_volume path over the legacy top-level field.
func (s *HostStatus) ActiveVolume() string {
	if s.Boot != nil && s.Boot.ABActiveVolume != "" {
		return s.Boot.ABActiveVolume
	}
	return s.ABActiveVolume
}

// ErrorText returns the searchable text of lastError, or "" if absent.
func (s *HostStatus) ErrorText() string {
	if s.LastError == nil {
		return ""
	}
	return s.LastError.String()
}

// HostError is the nullable lastError record. Older hosts report a bare
// string; newer ones a structured object with a message field.
type HostError struct {
	Message string
	Fields  map[string]any
}

func (e *HostError) String() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprint(e.Fields)
}

func (e *HostError) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		e.Message = s
		return nil
	case yaml.MappingNode:
		var m map[string]any
		if err := value.Decode(&m); err != nil {
			return err
		}
		e.Fields = m
		if msg, ok := m["message"].(string); ok {
			e.Message = msg
		}
		return nil
	default:
		return fmt.Errorf("lastError: expected scalar or mapping, got node kind %d", value.Kind)
	}
}

func (e HostError) MarshalYAML() (interface{}, error) {
	if e.Fields != nil {
		return e.Fields, nil
	}
	return e.Message, nil
}

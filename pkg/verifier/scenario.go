// pkg/verifier/scenario.go

package verifier

import "strings"

// Scenario is the harness's notion of what a test run exercised.
type Scenario string

const (
	// ScenarioUnknown asks the verifier to classify the scenario from
	// the status payload itself.
	ScenarioUnknown Scenario = ""

	ScenarioCleanInstall     Scenario = "clean-install"
	ScenarioABUpdateRollback Scenario = "ab-update-rollback"
	ScenarioUefiFallback     Scenario = "uefi-fallback"
)

// UpdateAttemptPrefix marks a volume label left behind by an attempted
// and reverted A/B update. A status payload carrying it means the host
// tried to promote a new volume and came back.
//
// Encoding provenance in the label is a naming-convention coupling we
// would rather see as an explicit field in the status schema; until the
// schema grows one, all prefix parsing lives here.
const UpdateAttemptPrefix = "abupdate-"

// Classification is the result of reading the volume label.
type Classification struct {
	Scenario Scenario

	// Volume is the true active volume, after stripping any
	// update-attempt prefix.
	Volume string

	// UpdateAttempted reports whether the label shows an attempted and
	// reverted update.
	UpdateAttempted bool
}

// Classify derives the scenario from the active-volume label alone, for
// call paths where no explicit scenario flag is available.
func Classify(activeVolume string) Classification {
	if rest, ok := strings.CutPrefix(activeVolume, UpdateAttemptPrefix); ok {
		return Classification{
			Scenario:        ScenarioABUpdateRollback,
			Volume:          rest,
			UpdateAttempted: true,
		}
	}
	return Classification{
		Scenario: ScenarioCleanInstall,
		Volume:   activeVolume,
	}
}

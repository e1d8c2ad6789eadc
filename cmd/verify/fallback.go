// cmd/verify/fallback.go
package verify

import (
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_cli"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_io"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/verifier"
	"github.com/spf13/cobra"
)

var (
	uefiFallback    bool
	bootLevelOnly   bool
	updateAttempted bool
)

// FallbackCmd verifies that UEFI fallback booted the previous volume.
var FallbackCmd = &cobra.Command{
	Use:   "fallback",
	Short: "Verify a UEFI fallback boot to the previous known-good volume",
	Long: `Fallback asserts that firmware booted the previous known-good volume
after the updated one failed to boot. With --boot-level only the active
volume is checked; otherwise the servicing state and last error are
verified too. When the fixture did not boot through UEFI fallback
(--uefi-fallback=false) the scenario is reported as skipped, and no
status assertion is made.`,
	RunE: abv_cli.Wrap(func(rc *abv_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		params := verifier.Params{
			Scenario:        verifier.ScenarioUefiFallback,
			ExpectedVolume:  expectVolume,
			UpdateAttempted: updateAttempted,
			UefiFallback:    uefiFallback,
			BootLevelOnly:   bootLevelOnly,
		}

		// The skip gate fires before the host is even dialed: an
		// inapplicable fixture must not depend on the host being up.
		if !uefiFallback {
			return verifier.Verify(rc.Ctx, nil, params).Err()
		}

		status, err := fetchStatus(rc)
		if err != nil {
			return err
		}

		return verifier.Verify(rc.Ctx, status, params).Err()
	}),
}

func init() {
	FallbackCmd.Flags().BoolVar(&uefiFallback, "uefi-fallback", true,
		"Whether the host actually booted through UEFI fallback")
	FallbackCmd.Flags().BoolVar(&bootLevelOnly, "boot-level", false,
		"Check only the active volume, for fixtures that stop at the boot level")
	FallbackCmd.Flags().BoolVar(&updateAttempted, "update-attempted", false,
		"Whether an A/B update was attempted before the fallback")
}

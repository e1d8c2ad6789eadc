// cmd/verify/rollback.go
package verify

import (
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_cli"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_io"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/verifier"
	"github.com/spf13/cobra"
)

// RollbackCmd verifies that a failed A/B update rolled back cleanly.
var RollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Verify an A/B update rollback after failed health checks",
	Long: `Rollback asserts that the host finished servicing in the provisioned
state, that the active volume is still the pre-update volume, and that
the last error records the failed health checks that triggered the
rollback.`,
	RunE: abv_cli.Wrap(func(rc *abv_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		status, err := fetchStatus(rc)
		if err != nil {
			return err
		}

		report := verifier.Verify(rc.Ctx, status, verifier.Params{
			Scenario:       verifier.ScenarioABUpdateRollback,
			ExpectedVolume: expectVolume,
		})
		return report.Err()
	}),
}

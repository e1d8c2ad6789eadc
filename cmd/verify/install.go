// cmd/verify/install.go
package verify

import (
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_cli"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_io"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/verifier"
	"github.com/spf13/cobra"
)

// InstallCmd verifies a clean install with no attempted update.
var InstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Verify a clean install: provisioned, baseline volume, no error",
	RunE: abv_cli.Wrap(func(rc *abv_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		status, err := fetchStatus(rc)
		if err != nil {
			return err
		}

		report := verifier.Verify(rc.Ctx, status, verifier.Params{
			Scenario:       verifier.ScenarioCleanInstall,
			ExpectedVolume: expectVolume,
		})
		return report.Err()
	}),
}

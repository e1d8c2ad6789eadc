/* cmd/root.go */

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	// Subcommands
	"github.com/CodeMonkeyCybersecurity/abverify/cmd/inject"
	"github.com/CodeMonkeyCybersecurity/abverify/cmd/status"
	"github.com/CodeMonkeyCybersecurity/abverify/cmd/verify"

	// Internal packages
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_err"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/logger"
)

// RootCmd is the base command for abverify.
var RootCmd = &cobra.Command{
	Use:   "abverify",
	Short: "Verification harness for A/B host updates",
	Long: `Abverify injects deliberate failures into a host's configuration, then
inspects the host's reported servicing status to confirm that rollback or
UEFI fallback occurred correctly: active volume, last error, and
servicing state must all match the expected post-failure outcome.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	RootCmd.AddCommand(inject.InjectCmd)
	RootCmd.AddCommand(status.StatusCmd)
	RootCmd.AddCommand(verify.VerifyCmd)
}

// Execute runs the CLI and exits with the taxonomy's exit code:
// 0 pass or skip, 1 invariant mismatch, 2 harness malfunction.
func Execute() {
	RegisterCommands()

	if err := RootCmd.Execute(); err != nil {
		logger.SafeSync()
		os.Exit(abv_err.ExitCode(err))
	}
}

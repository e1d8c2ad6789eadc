/*
Copyright © 2025 CODE MONKEY CYBERSECURITY git@cybermonkey.net.au
*/
// cmd/verify/verify.go
package verify

import (
	"time"

	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_io"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/hoststatus"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/remote"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	sshHost       string
	sshPort       int
	sshUser       string
	sshKeyPath    string
	statusCommand string
	expectVolume  string
	waitTimeout   time.Duration
	waitInterval  time.Duration
)

// VerifyCmd is the parent for the per-scenario verification commands.
var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a host's post-test servicing outcome",
	Long: `Verify retrieves the host's servicing status and asserts the invariants
of one test scenario: clean install, A/B update rollback, or UEFI
fallback. Every mismatched field is reported with its expected and
actual value.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	pf := VerifyCmd.PersistentFlags()
	pf.StringVar(&sshHost, "host", "", "Target host to verify")
	pf.IntVar(&sshPort, "port", 22, "SSH port")
	pf.StringVar(&sshUser, "user", "root", "SSH user")
	pf.StringVar(&sshKeyPath, "key", "", "Path to SSH private key")
	pf.StringVar(&statusCommand, "command", hoststatus.DefaultStatusCommand,
		"Status-query command to run on the host")
	pf.StringVar(&expectVolume, "volume", "", "Expected active volume label")
	pf.DurationVar(&waitTimeout, "wait-timeout", 10*time.Minute, "Give up on the status query after this long")
	pf.DurationVar(&waitInterval, "wait-interval", 15*time.Second, "Delay between status polls")

	VerifyCmd.AddCommand(InstallCmd)
	VerifyCmd.AddCommand(RollbackCmd)
	VerifyCmd.AddCommand(FallbackCmd)
}

// fetchStatus dials the host and polls for a terminal servicing status.
func fetchStatus(rc *abv_io.RuntimeContext) (*hoststatus.HostStatus, error) {
	runner, err := remote.DialSSH(rc.Ctx, remote.SSHConfig{
		Host:    sshHost,
		Port:    sshPort,
		User:    sshUser,
		KeyPath: sshKeyPath,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := runner.Close(); cerr != nil {
			rc.Log.Warn("Failed to close SSH connection", zap.Error(cerr))
		}
	}()

	return hoststatus.WaitFor(rc.Ctx, runner, statusCommand, waitTimeout, waitInterval)
}

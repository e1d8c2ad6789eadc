/*
Copyright © 2025 CODE MONKEY CYBERSECURITY git@cybermonkey.net.au
*/
// cmd/status/status.go
package status

import (
	"fmt"
	"time"

	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_cli"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_io"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/hoststatus"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/remote"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	sshHost       string
	sshPort       int
	sshUser       string
	sshKeyPath    string
	statusCommand string
	wait          bool
	waitTimeout   time.Duration
	waitInterval  time.Duration
)

// StatusCmd retrieves and prints a host's servicing status.
var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Retrieve a host's servicing status over SSH",
	Long: `Status runs the host's status-reporting tool over SSH, parses the
response, and prints the canonical status record to stdout. With --wait
it polls until the host reports a terminal servicing state.`,
	RunE: abv_cli.Wrap(func(rc *abv_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		runner, err := remote.DialSSH(rc.Ctx, remote.SSHConfig{
			Host:    sshHost,
			Port:    sshPort,
			User:    sshUser,
			KeyPath: sshKeyPath,
		})
		if err != nil {
			return err
		}
		defer func() {
			if cerr := runner.Close(); cerr != nil {
				rc.Log.Warn("Failed to close SSH connection", zap.Error(cerr))
			}
		}()

		var status *hoststatus.HostStatus
		if wait {
			status, err = hoststatus.WaitFor(rc.Ctx, runner, statusCommand, waitTimeout, waitInterval)
		} else {
			status, err = hoststatus.Get(rc.Ctx, runner, statusCommand)
		}
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(status)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	}),
}

func init() {
	StatusCmd.Flags().StringVar(&sshHost, "host", "", "Target host to query")
	StatusCmd.Flags().IntVar(&sshPort, "port", 22, "SSH port")
	StatusCmd.Flags().StringVar(&sshUser, "user", "root", "SSH user")
	StatusCmd.Flags().StringVar(&sshKeyPath, "key", "", "Path to SSH private key")
	StatusCmd.Flags().StringVar(&statusCommand, "command", hoststatus.DefaultStatusCommand,
		"Status-query command to run on the host")
	StatusCmd.Flags().BoolVar(&wait, "wait", false, "Poll until the host reports a terminal state")
	StatusCmd.Flags().DurationVar(&waitTimeout, "wait-timeout", 10*time.Minute, "Give up after this long")
	StatusCmd.Flags().DurationVar(&waitInterval, "wait-interval", 15*time.Second, "Delay between polls")
	_ = StatusCmd.MarkFlagRequired("host")
	_ = StatusCmd.MarkFlagRequired("key")
}

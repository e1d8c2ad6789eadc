/*
Copyright © 2025 CODE MONKEY CYBERSECURITY git@cybermonkey.net.au
*/
// cmd/inject/inject.go
package inject

import (
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_cli"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_io"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/hostconfig"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var hostConfigPath string

// InjectCmd configures an auto-rollback failure in a host configuration.
var InjectCmd = &cobra.Command{
	Use:   "inject",
	Short: "Inject rollback-inducing health checks into a host configuration",
	Long: `Inject appends health checks that are guaranteed to fail during the next
A/B update attempt: an inline script that always exits nonzero, and a
probe of systemd services known not to exist. Existing configuration
content is left untouched; the document is rewritten in place.`,
	RunE: abv_cli.Wrap(func(rc *abv_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		rc.Log.Info("Injecting failure profile", zap.String("hostconfig", hostConfigPath))
		return hostconfig.InjectRollbackFailure(rc.Ctx, hostConfigPath)
	}),
}

func init() {
	InjectCmd.Flags().StringVarP(&hostConfigPath, "hostconfig", "t", "",
		"Path to the host configuration file to mutate")
	_ = InjectCmd.MarkFlagRequired("hostconfig")
}

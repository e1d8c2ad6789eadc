// pkg/abv_cli/wrap_test.go

package abv_cli

import (
	"testing"

	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCmd(runE func(cmd *cobra.Command, args []string) error) *cobra.Command {
	cmd := &cobra.Command{Use: "test", RunE: runE}
	// Keep cobra away from the test binary's os.Args.
	cmd.SetArgs([]string{})
	return cmd
}

func TestWrap_PassesRuntimeContext(t *testing.T) {
	var got *abv_io.RuntimeContext

	cmd := newTestCmd(Wrap(func(rc *abv_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		got = rc
		return nil
	}))

	require.NoError(t, cmd.Execute())
	require.NotNil(t, got)
	assert.NotNil(t, got.Ctx)
	assert.NotNil(t, got.Log)
	assert.NotEmpty(t, got.RunID)
	assert.Equal(t, "test", got.Command)
}

func TestWrap_PropagatesError(t *testing.T) {
	sentinel := cerr.New("body failed")

	cmd := newTestCmd(Wrap(func(rc *abv_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		return sentinel
	}))
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestWrap_RecoversPanic(t *testing.T) {
	cmd := newTestCmd(Wrap(func(rc *abv_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		panic("boom")
	}))
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

// pkg/remote/runner.go

package remote

import "context"

// Runner executes a command on a named host and returns its stdout.
// It is the harness's only view of the transport; a failed command
// returns stderr wrapped into the error.
type Runner interface {
	Run(ctx context.Context, command string) (string, error)
}

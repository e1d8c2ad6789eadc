// pkg/hoststatus/retrieve.go

package hoststatus

import (
	"context"
	"time"

	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_err"
	"github.com/CodeMonkeyCybersecurity/abverify/pkg/remote"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultStatusCommand queries the host's servicing status tool.
const DefaultStatusCommand = "trident get"

// Get runs the status query on the host and parses the response.
// Parsing is all-or-nothing: a failed command, unparsable output, or a
// response without a servicing state yields StatusUnavailable, never a
// partial status. Get does not retry; see WaitFor for the caller-side
// polling loop.
func Get(ctx context.Context, runner remote.Runner, command string) (*HostStatus, error) {
	logger := otelzap.Ctx(ctx)
	if command == "" {
		command = DefaultStatusCommand
	}

	out, err := runner.Run(ctx, command)
	if err != nil {
		return nil, abv_err.NewStatusUnavailable(err, "status query failed")
	}

	var status HostStatus
	if err := yaml.Unmarshal([]byte(out), &status); err != nil {
		return nil, abv_err.NewStatusUnavailable(err, "status response did not parse")
	}
	if status.ServicingState == "" {
		return nil, abv_err.NewStatusUnavailable(
			cerr.New("response has no servicingState"), "incomplete status response")
	}

	logger.Debug("Host status retrieved",
		zap.String("servicing_state", string(status.ServicingState)),
		zap.String("active_volume", status.ActiveVolume()),
		zap.Bool("has_error", status.LastError != nil))
	return &status, nil
}

// WaitFor polls Get until the host reports a terminal servicing state or
// the timeout elapses. This is the retry/backoff loop that belongs to
// the caller, kept out of Get on purpose: a host mid-boot answers with
// connection errors or in-progress states, and neither is fatal yet.
func WaitFor(ctx context.Context, runner remote.Runner, command string, timeout, interval time.Duration) (*HostStatus, error) {
	logger := otelzap.Ctx(ctx)
	deadline := time.Now().Add(timeout)

	var lastErr error
	for attempt := 1; ; attempt++ {
		status, err := Get(ctx, runner, command)
		if err == nil && status.ServicingState.Terminal() {
			return status, nil
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = abv_err.NewStatusUnavailable(
				cerr.Newf("host still in state %q", status.ServicingState),
				"servicing not finished")
		}

		if time.Now().After(deadline) {
			return nil, cerr.Wrapf(lastErr, "host did not reach a terminal state within %s", timeout)
		}

		logger.Debug("Host not ready, will retry",
			zap.Int("attempt", attempt),
			zap.Duration("interval", interval),
			zap.Error(lastErr))

		select {
		case <-ctx.Done():
			return nil, cerr.Wrap(ctx.Err(), "status wait canceled")
		case <-time.After(interval):
		}
	}
}

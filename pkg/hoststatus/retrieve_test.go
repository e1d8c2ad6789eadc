// pkg/hoststatus/retrieve_test.go

package hoststatus

import (
	"context"
	"testing"
	"time"

	"github.com/CodeMonkeyCybersecurity/abverify/pkg/abv_err"
	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner replays a scripted sequence of responses, one per call.
type fakeRunner struct {
	responses []response
	calls     int
}

type response struct {
	out string
	err error
}

func (f *fakeRunner) Run(ctx context.Context, command string) (string, error) {
	if f.calls >= len(f.responses) {
		return "", cerr.New("fake runner exhausted")
	}
	r := f.responses[f.calls]
	f.calls++
	return r.out, r.err
}

const provisionedStatus = `
servicingState: provisioned
abActiveVolume: volume-a
`

func TestGet_Success(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	runner := &fakeRunner{responses: []response{{out: provisionedStatus}}}
	status, err := Get(ctx, runner, "")
	require.NoError(t, err)
	assert.Equal(t, StateProvisioned, status.ServicingState)
	assert.Equal(t, "volume-a", status.ActiveVolume())
}

func TestGet_CommandError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	runner := &fakeRunner{responses: []response{{err: cerr.New("connection refused")}}}
	_, err := Get(ctx, runner, "trident get")
	require.Error(t, err)
	assert.True(t, abv_err.IsStatusUnavailable(err))
}

func TestGet_UnparsableOutput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	runner := &fakeRunner{responses: []response{{out: "servicingState: [unclosed"}}}
	_, err := Get(ctx, runner, "trident get")
	require.Error(t, err)
	assert.True(t, abv_err.IsStatusUnavailable(err))
}

func TestGet_IncompleteStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Parses, but carries no servicing state: all-or-nothing means this
	// is unavailable, not a partial result.
	runner := &fakeRunner{responses: []response{{out: "abActiveVolume: volume-a\n"}}}
	_, err := Get(ctx, runner, "trident get")
	require.Error(t, err)
	assert.True(t, abv_err.IsStatusUnavailable(err))
}

func TestWaitFor_RetriesUntilTerminal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	runner := &fakeRunner{responses: []response{
		{err: cerr.New("connection refused")},
		{out: "servicingState: provisioning\nabActiveVolume: volume-a\n"},
		{out: provisionedStatus},
	}}

	status, err := WaitFor(ctx, runner, "", time.Second, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, StateProvisioned, status.ServicingState)
	assert.Equal(t, 3, runner.calls)
}

func TestWaitFor_Timeout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	runner := &fakeRunner{responses: []response{
		{err: cerr.New("connection refused")},
		{err: cerr.New("connection refused")},
	}}

	_, err := WaitFor(ctx, runner, "", time.Millisecond, time.Millisecond)
	require.Error(t, err)
	assert.True(t, abv_err.IsStatusUnavailable(err))
}

func TestWaitFor_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &fakeRunner{responses: []response{
		{err: cerr.New("connection refused")},
		{err: cerr.New("connection refused")},
	}}

	_, err := WaitFor(ctx, runner, "", time.Minute, time.Minute)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

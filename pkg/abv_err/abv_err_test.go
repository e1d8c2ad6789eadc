// pkg/abv_err/abv_err_test.go

package abv_err

import (
	"errors"
	"testing"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureError(t *testing.T) {
	t.Parallel()

	err := NewFixtureError(errors.New("yaml: line 3: mapping values"), "load host configuration")
	require.Error(t, err)
	assert.True(t, IsFixtureError(err))
	assert.False(t, IsStatusUnavailable(err))
	assert.Contains(t, err.Error(), "load host configuration")

	assert.Nil(t, NewFixtureError(nil, "anything"))
}

func TestStatusUnavailable_SurvivesWrapping(t *testing.T) {
	t.Parallel()

	err := NewStatusUnavailable(errors.New("connection refused"), "status query failed")
	wrapped := cerr.Wrap(err, "attempt 3")
	assert.True(t, IsStatusUnavailable(wrapped))
}

func TestMismatch(t *testing.T) {
	t.Parallel()

	err := NewMismatch("abActiveVolume", "blue", "green")
	assert.True(t, IsMismatch(err))
	assert.Equal(t, "invariant mismatch on abActiveVolume: expected blue, actual green", err.Error())

	var m *Mismatch
	require.True(t, errors.As(err, &m))
	assert.Equal(t, "abActiveVolume", m.Field)
	assert.Equal(t, "blue", m.Expected)
	assert.Equal(t, "green", m.Actual)
}

func TestScenarioSkipped(t *testing.T) {
	t.Parallel()

	err := NewScenarioSkipped("host did not boot via UEFI fallback")
	assert.True(t, IsScenarioSkipped(err))
	assert.False(t, IsMismatch(err))
	assert.Contains(t, err.Error(), "UEFI fallback")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"skip", NewScenarioSkipped("not applicable"), 0},
		{"mismatch", NewMismatch("lastError", "no error", "boom"), 1},
		{"fixture", NewFixtureError(errors.New("bad yaml"), "load"), 2},
		{"status", NewStatusUnavailable(errors.New("refused"), "query"), 2},
		{"unknown", errors.New("anything else"), 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestIsExpectedError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsExpectedError(NewMismatch("f", 1, 2)))
	assert.True(t, IsExpectedError(NewScenarioSkipped("n/a")))
	assert.False(t, IsExpectedError(NewFixtureError(errors.New("x"), "y")))
	assert.False(t, IsExpectedError(nil))
}

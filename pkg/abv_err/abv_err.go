// pkg/abv_err/abv_err.go
//
// Error taxonomy for the verification harness. Every failure a check can
// produce falls into one of four kinds, and all of them surface directly
// to the caller; nothing is caught and suppressed internally.

package abv_err

import (
	"errors"
	"fmt"

	cerr "github.com/cockroachdb/errors"
)

var (
	// ErrFixture marks a malformed or unwritable test fixture. Fatal,
	// never retried; it indicates a broken test environment rather than
	// a defect in the system under test.
	ErrFixture = cerr.New("fixture error")

	// ErrStatusUnavailable marks a failed or unparsable host status
	// query. Fatal to the current check; retry policy belongs to the
	// caller.
	ErrStatusUnavailable = cerr.New("host status unavailable")

	// ErrScenarioSkipped marks a scenario that does not apply to the
	// current fixture combination. Distinct from both success and
	// failure.
	ErrScenarioSkipped = cerr.New("scenario not applicable")
)

// NewFixtureError wraps err as a fixture problem.
func NewFixtureError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cerr.Mark(cerr.Wrap(err, msg), ErrFixture)
}

func IsFixtureError(err error) bool {
	return cerr.Is(err, ErrFixture)
}

// NewStatusUnavailable wraps err as a status retrieval failure.
func NewStatusUnavailable(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cerr.Mark(cerr.Wrap(err, msg), ErrStatusUnavailable)
}

func IsStatusUnavailable(err error) bool {
	return cerr.Is(err, ErrStatusUnavailable)
}

// NewScenarioSkipped records why a scenario was skipped.
func NewScenarioSkipped(reason string) error {
	return cerr.Mark(cerr.Newf("scenario not applicable: %s", reason), ErrScenarioSkipped)
}

func IsScenarioSkipped(err error) bool {
	return cerr.Is(err, ErrScenarioSkipped)
}

// Mismatch is one expected-vs-observed difference found by the verifier.
// It names the exact field so the first failing invariant is immediately
// diagnosable from the test report.
type Mismatch struct {
	Field    string
	Expected any
	Actual   any
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("invariant mismatch on %s: expected %v, actual %v", m.Field, m.Expected, m.Actual)
}

// NewMismatch builds an InvariantMismatch for one status field.
func NewMismatch(field string, expected, actual any) error {
	return &Mismatch{Field: field, Expected: expected, Actual: actual}
}

// IsMismatch reports whether err contains at least one invariant mismatch.
func IsMismatch(err error) bool {
	var m *Mismatch
	return errors.As(err, &m)
}

// ExitCode maps an error onto the harness's process exit codes:
// 0 success or skip, 1 invariant mismatch (the normal "test failed"
// outcome), 2 everything else (broken fixture, unreachable host).
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsScenarioSkipped(err):
		return 0
	case IsMismatch(err):
		return 1
	default:
		return 2
	}
}

// IsExpectedError reports whether err is a normal test outcome (mismatch
// or skip) as opposed to a harness malfunction. Expected errors are
// logged at warn level; everything else is an error.
func IsExpectedError(err error) bool {
	return IsMismatch(err) || IsScenarioSkipped(err)
}

package cpanel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyOutput is returned when a collaborator command exits zero but
// writes nothing to stdout.
var ErrEmptyOutput = errors.New("empty output from command")

// ErrFeatureUnavailable signals that the account's hosting plan lacks the
// queried capability. Callers treat it as "no data", not as a failure.
var ErrFeatureUnavailable = errors.New("feature unavailable for this account")

// ExecutionError wraps a non-zero exit from a collaborator command.
type ExecutionError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("command failed (%s): rc=%d, stderr=%s", e.Command, e.ExitCode, e.Stderr)
}

// MalformedResponseError wraps a JSON decode failure of collaborator output.
type MalformedResponseError struct {
	Command string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %s", e.Command, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// APIError is a UAPI result that reported failure through its envelope
// (zero status with error messages) for reasons other than a missing
// feature.
type APIError struct {
	Messages []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api call failed: %s", strings.Join(e.Messages, "; "))
}

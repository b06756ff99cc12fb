package cpanel

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// Executor runs a collaborator command and returns its stdout. Collection
// logic only ever sees this interface so it can be tested against a fake
// without invoking the real privileged binaries.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewExecutor returns an Executor backed by os/exec.
func NewExecutor() Executor {
	return &commandExecutor{}
}

type commandExecutor struct{}

func (e *commandExecutor) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return nil, &ExecutionError{
			Command:  commandLine(name, args),
			ExitCode: exitCode,
			Stderr:   stderr.String(),
		}
	}

	return stdout.Bytes(), nil
}

func commandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

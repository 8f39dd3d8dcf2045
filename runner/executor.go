package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// PhaseResult captures one external invocation's exit code and streams.
type PhaseResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Executor runs an external command and captures its result.
//
// The runner depends on this interface rather than os/exec directly so
// tests can substitute a fake and assert on the exact invocations.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (PhaseResult, error)
}

// execExecutor is the production Executor backed by os/exec.
type execExecutor struct{}

// NewExecExecutor returns an Executor that invokes real processes,
// resolving the binary through PATH.
func NewExecExecutor() Executor {
	return execExecutor{}
}

func (execExecutor) Run(ctx context.Context, name string, args ...string) (PhaseResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Stdin = nil

	err := cmd.Run()
	res := PhaseResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Non-zero exit is a phase result, not an invocation fault.
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}

	return res, nil
}

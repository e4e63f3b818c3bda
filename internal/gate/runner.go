package gate

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// commandContext is the function used to create exec.Cmd instances.
// It can be replaced in tests to mock command execution.
var commandContext = exec.CommandContext

// Outcome classifies one test run.
type Outcome int

const (
	// OutcomePassed means the test command exited zero.
	OutcomePassed Outcome = iota
	// OutcomeFailed means the command exited non-zero or timed out.
	OutcomeFailed
	// OutcomeUnavailable means the runner could not be executed at all
	// (missing binary, unusable environment). This reflects environment
	// setup, not code defects, and must never count as a failure.
	OutcomeUnavailable
)

// Result is the outcome of one test run with its combined output.
type Result struct {
	Outcome Outcome
	Output  string
}

// RunTests executes the detected test command in dir with a bounded timeout,
// capturing combined stdout and stderr. It always returns control: a timeout
// becomes a failure with synthetic output, a missing binary becomes an
// unavailable result.
func RunTests(ctx context.Context, dir string, command []string, timeout time.Duration) Result {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := commandContext(ctx, command[0], command[1:]...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()

	if ctx.Err() == context.DeadlineExceeded {
		return Result{
			Outcome: OutcomeFailed,
			Output:  fmt.Sprintf("Test execution timed out after %d seconds", int(timeout/time.Second)),
		}
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{Outcome: OutcomeFailed, Output: string(output)}
		}
		// Anything other than a clean non-zero exit means the runner itself
		// could not execute.
		return Result{
			Outcome: OutcomeUnavailable,
			Output:  fmt.Sprintf("Test command not available: %s", command[0]),
		}
	}

	return Result{Outcome: OutcomePassed, Output: string(output)}
}

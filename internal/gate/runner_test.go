package gate

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"autobot/internal/testutil"
)

func swapCommandContext(t *testing.T, fn func(ctx context.Context, name string, args ...string) *exec.Cmd) {
	t.Helper()
	original := commandContext
	commandContext = fn
	t.Cleanup(func() { commandContext = original })
}

func TestRunTestsPassing(t *testing.T) {
	swapCommandContext(t, testutil.MockCommandFunc("all tests passed"))

	result := RunTests(context.Background(), t.TempDir(), []string{"go", "test"}, time.Minute)
	if result.Outcome != OutcomePassed {
		t.Errorf("outcome: got %v, want OutcomePassed", result.Outcome)
	}
	if result.Output != "all tests passed" {
		t.Errorf("output: got %q", result.Output)
	}
}

func TestRunTestsFailing(t *testing.T) {
	swapCommandContext(t, testutil.MockFailingCommandFunc("FAIL: TestLogin", 1))

	result := RunTests(context.Background(), t.TempDir(), []string{"go", "test"}, time.Minute)
	if result.Outcome != OutcomeFailed {
		t.Errorf("outcome: got %v, want OutcomeFailed", result.Outcome)
	}
	if result.Output != "FAIL: TestLogin" {
		t.Errorf("output: got %q", result.Output)
	}
}

func TestRunTestsMissingBinary(t *testing.T) {
	result := RunTests(context.Background(), t.TempDir(), []string{"definitely-not-a-real-binary-xyz"}, time.Minute)
	if result.Outcome != OutcomeUnavailable {
		t.Errorf("outcome: got %v, want OutcomeUnavailable", result.Outcome)
	}
	if result.Output != "Test command not available: definitely-not-a-real-binary-xyz" {
		t.Errorf("output: got %q", result.Output)
	}
}

func TestRunTestsTimeout(t *testing.T) {
	swapCommandContext(t, func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sleep", "5")
	})

	result := RunTests(context.Background(), t.TempDir(), []string{"go", "test"}, 50*time.Millisecond)
	if result.Outcome != OutcomeFailed {
		t.Errorf("outcome: got %v, want OutcomeFailed", result.Outcome)
	}
	if result.Output != "Test execution timed out after 0 seconds" {
		t.Errorf("output: got %q", result.Output)
	}
}

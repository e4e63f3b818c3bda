package launcher

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"autobot/internal/testutil"
)

func swapSeams(t *testing.T, look func(string) (string, error), cmd func(string, ...string) *exec.Cmd) {
	t.Helper()
	originalLook, originalCommand := lookPath, command
	if look != nil {
		lookPath = look
	}
	if cmd != nil {
		command = cmd
	}
	t.Cleanup(func() {
		lookPath = originalLook
		command = originalCommand
	})
}

// adapt bridges the context-based testutil mocks to the plain command seam.
func adapt(fn func(ctx context.Context, name string, args ...string) *exec.Cmd) func(string, ...string) *exec.Cmd {
	return func(name string, args ...string) *exec.Cmd {
		return fn(context.Background(), name, args...)
	}
}

func TestInitialPrompt(t *testing.T) {
	got := InitialPrompt("add user authentication")
	want := "/init-task add user authentication"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLaunchSuccess(t *testing.T) {
	swapSeams(t,
		func(string) (string, error) { return "/usr/bin/claude", nil },
		adapt(testutil.MockCommandFunc("")),
	)

	if code := Launch(t.TempDir(), "add auth"); code != 0 {
		t.Errorf("exit code: got %d, want 0", code)
	}
}

func TestLaunchPropagatesExitCode(t *testing.T) {
	swapSeams(t,
		func(string) (string, error) { return "/usr/bin/claude", nil },
		adapt(testutil.MockFailingCommandFunc("", 3)),
	)

	if code := Launch(t.TempDir(), "add auth"); code != 3 {
		t.Errorf("exit code: got %d, want 3", code)
	}
}

func TestLaunchShellFallback(t *testing.T) {
	var shellUsed bool
	swapSeams(t,
		func(string) (string, error) { return "", exec.ErrNotFound },
		func(name string, args ...string) *exec.Cmd {
			if name == "sh" || name == "cmd" {
				shellUsed = true
			}
			return exec.Command("true")
		},
	)

	if code := Launch(t.TempDir(), "add auth"); code != 0 {
		t.Errorf("exit code: got %d, want 0", code)
	}
	if !shellUsed {
		t.Error("expected fallback through the shell")
	}
}

func TestLaunchShellFallbackCommandNotFound(t *testing.T) {
	swapSeams(t,
		func(string) (string, error) { return "", exec.ErrNotFound },
		// Shell reports 127 when the binary is missing; the launcher then
		// prints install help and exits 1.
		adapt(testutil.MockFailingCommandFunc("", 127)),
	)

	if code := Launch(t.TempDir(), "add auth"); code != 1 {
		t.Errorf("exit code: got %d, want 1", code)
	}
}

func TestExitCode(t *testing.T) {
	if got := exitCode(nil); got != 0 {
		t.Errorf("nil error: got %d, want 0", got)
	}
	if got := exitCode(errors.New("spawn failed")); got != 1 {
		t.Errorf("non-exit error: got %d, want 1", got)
	}

	err := exec.Command("sh", "-c", "exit 7").Run()
	if got := exitCode(err); got != 7 {
		t.Errorf("exit 7: got %d, want 7", got)
	}
}

// Package launcher spawns the Claude Code CLI with an initial task
// instruction, inheriting the terminal so the session is fully interactive.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

const claudeBinary = "claude"

// ExitInterrupted is the sentinel exit code reported when the assistant run
// is interrupted.
const ExitInterrupted = 130

// Function seams replaceable in tests.
var (
	lookPath = exec.LookPath
	command  = exec.Command
)

// InitialPrompt builds the instruction the assistant starts with.
func InitialPrompt(task string) string {
	return "/init-task " + task
}

// Launch starts the assistant in projectDir with the given task and returns
// its exit code. When the executable cannot be located directly it retries
// once through the shell, since wrapper scripts are not always resolvable as
// plain binaries. A missing installation produces guidance and exit code 1.
func Launch(projectDir, task string) int {
	prompt := InitialPrompt(task)

	if _, err := lookPath(claudeBinary); err != nil {
		if code, ok := launchViaShell(projectDir, prompt); ok {
			return code
		}
		printInstallHelp()
		return 1
	}

	cmd := command(claudeBinary, "--dangerously-skip-permissions", prompt)
	cmd.Dir = projectDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return exitCode(cmd.Run())
}

// launchViaShell retries the launch through the platform shell. Returns
// ok=false when the shell could not run the assistant either.
func launchViaShell(projectDir, prompt string) (int, bool) {
	shell, flag := "sh", "-c"
	if runtime.GOOS == "windows" {
		shell, flag = "cmd", "/C"
	}

	cmd := command(shell, flag, fmt.Sprintf("%s --dangerously-skip-permissions %q", claudeBinary, prompt))
	cmd.Dir = projectDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return 0, false
		}
		// 127 is the shell's own command-not-found report.
		if exitErr.ExitCode() == 127 {
			return 0, false
		}
	}
	return exitCode(err), true
}

// exitCode maps a Run error to the child's exit code. A child killed by an
// interrupt reports -1; that maps to the ExitInterrupted sentinel.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
		return ExitInterrupted
	}
	return 1
}

func printInstallHelp() {
	fmt.Fprintln(os.Stderr, "Error: 'claude' command not found.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Claude Code must be installed to use Autobot.")
	fmt.Fprintln(os.Stderr, "Install with: npm install -g @anthropic-ai/claude-code")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Or visit: https://claude.ai/code")
}

// Package gate implements the post-edit quality gate: after a source-file
// modification it detects the project's test command, runs it with a bounded
// timeout, and translates the result into metrics updates, observation
// records, and the failure counter the decision engine escalates on.
package gate

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"autobot/internal/config"
	"autobot/internal/state"
)

// DisplayLimit caps the failure output included in a block reason.
const DisplayLimit = 1000

// sourceExtensions lists the file types worth running tests for.
var sourceExtensions = map[string]bool{
	".ts": true, ".tsx": true, ".js": true, ".jsx": true, ".mjs": true, ".cjs": true,
	".py": true, ".pyw": true,
	".rs":   true,
	".go":   true,
	".java": true, ".kt": true, ".kts": true,
	".c": true, ".cpp": true, ".cc": true, ".h": true, ".hpp": true,
	".cs":    true,
	".rb":    true,
	".php":   true,
	".swift": true,
}

// IsSourceFile reports whether path has a recognized source extension.
func IsSourceFile(path string) bool {
	return sourceExtensions[strings.ToLower(filepath.Ext(path))]
}

// ResultKind classifies a gate response.
type ResultKind int

const (
	// Skip means the gate took no action and produces no output.
	Skip ResultKind = iota
	// Note is non-blocking informational feedback.
	Note
	// Block means the edit broke the tests; the agent must fix them before
	// continuing.
	Block
)

// Response is the outcome of one gate pass.
type Response struct {
	Kind    ResultKind
	Message string
}

// runFunc matches RunTests; replaceable for testing.
type runFunc func(ctx context.Context, dir string, command []string, timeout time.Duration) Result

// Gate runs the post-edit check for one project.
type Gate struct {
	projectDir string
	store      *state.Store
	cfg        config.Config
	run        runFunc
	now        func() time.Time
}

// New creates a gate for the given project directory.
func New(projectDir string, store *state.Store, cfg config.Config) *Gate {
	return &Gate{
		projectDir: projectDir,
		store:      store,
		cfg:        cfg,
		run:        RunTests,
		now:        time.Now,
	}
}

// WithRunner sets a custom test runner (useful for testing).
func (g *Gate) WithRunner(run runFunc) *Gate {
	g.run = run
	return g
}

// WithClock sets a custom time source (useful for testing).
func (g *Gate) WithClock(now func() time.Time) *Gate {
	g.now = now
	return g
}

// AfterEdit runs the gate for one edited file.
func (g *Gate) AfterEdit(ctx context.Context, filePath string) (Response, error) {
	if filePath == "" || !IsSourceFile(filePath) {
		return Response{Kind: Skip}, nil
	}
	if !g.store.Exists() {
		return Response{Kind: Skip}, nil
	}

	name := filepath.Base(filePath)

	command := DetectTestCommand(g.projectDir)
	if command == nil {
		return Response{
			Kind:    Note,
			Message: fmt.Sprintf("Edited %s. No test framework detected.", name),
		}, nil
	}

	result := g.run(ctx, g.projectDir, command, g.cfg.TestTimeout())

	switch result.Outcome {
	case OutcomeUnavailable:
		// Environment problem, not a code defect: downgrade to a note and
		// leave the failure counters alone.
		return Response{
			Kind:    Note,
			Message: fmt.Sprintf("Edited %s. Test command not available: %s", name, command[0]),
		}, nil

	case OutcomePassed:
		metrics := g.store.LoadMetrics()
		metrics.RecordPass(g.now())
		if err := g.store.SaveMetrics(metrics); err != nil {
			return Response{}, err
		}
		return Response{
			Kind:    Note,
			Message: fmt.Sprintf("Tests passed after editing %s. Continue with confidence.", name),
		}, nil

	default:
		metrics := g.store.LoadMetrics()
		metrics.RecordFailure(g.now())
		if err := g.store.SaveMetrics(metrics); err != nil {
			return Response{}, err
		}

		snippet := result.Output
		if snippet == "" {
			snippet = "No output"
		}
		if err := g.store.AppendObservation(state.Observation{
			Timestamp:           g.now(),
			Type:                state.ObservationTestFailure,
			File:                filePath,
			Iteration:           metrics.CurrentIteration,
			ConsecutiveFailures: metrics.ConsecutiveTestFailures,
			OutputSnippet:       snippet,
		}); err != nil {
			return Response{}, err
		}

		return Response{
			Kind:    Block,
			Message: blockReason(name, result.Output, metrics.ConsecutiveTestFailures, g.cfg.FailureThreshold),
		}, nil
	}
}

func blockReason(name, output string, failures, threshold int) string {
	return fmt.Sprintf(`Tests failed after editing %s.

FAILURE OUTPUT:
%s

CONSECUTIVE FAILURES: %d/%d (pauses at %d)

Please analyze the failure and fix the issue before continuing.
The test output has been logged to .autobot/observations.jsonl for reference.`,
		name, state.Truncate(output, DisplayLimit), failures, threshold, threshold)
}

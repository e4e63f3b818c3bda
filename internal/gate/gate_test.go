package gate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"autobot/internal/config"
	"autobot/internal/state"
)

func newTestGate(t *testing.T) (*Gate, *state.Store, string) {
	t.Helper()

	projectDir := t.TempDir()
	store := state.NewStore(projectDir)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	gate := New(projectDir, store, config.Default()).WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	})
	return gate, store, projectDir
}

// markGoProject drops a go.mod so DetectTestCommand resolves.
func markGoProject(t *testing.T, dir string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example\n"), 0644); err != nil {
		t.Fatalf("failed to write go.mod: %v", err)
	}
}

func staticRunner(result Result) runFunc {
	return func(ctx context.Context, dir string, command []string, timeout time.Duration) Result {
		return result
	}
}

func TestIsSourceFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"main.go", true},
		{"src/app.TS", true},
		{"lib/core.py", true},
		{"README.md", false},
		{"config.yml", false},
		{"Makefile", false},
		{"", false},
	}

	for _, test := range tests {
		if got := IsSourceFile(test.path); got != test.want {
			t.Errorf("IsSourceFile(%q): got %v, want %v", test.path, got, test.want)
		}
	}
}

func TestAfterEditSkipsNonSource(t *testing.T) {
	gate, _, _ := newTestGate(t)

	resp, err := gate.AfterEdit(context.Background(), "notes.md")
	if err != nil {
		t.Fatalf("AfterEdit failed: %v", err)
	}
	if resp.Kind != Skip {
		t.Errorf("expected Skip, got %v", resp.Kind)
	}
}

func TestAfterEditSkipsWithoutStateDir(t *testing.T) {
	projectDir := t.TempDir()
	gate := New(projectDir, state.NewStore(projectDir), config.Default())

	resp, err := gate.AfterEdit(context.Background(), "main.go")
	if err != nil {
		t.Fatalf("AfterEdit failed: %v", err)
	}
	if resp.Kind != Skip {
		t.Errorf("expected Skip, got %v", resp.Kind)
	}
}

func TestAfterEditNoFramework(t *testing.T) {
	gate, store, _ := newTestGate(t)
	if err := store.SaveMetrics(state.Metrics{}); err != nil {
		t.Fatalf("failed to save metrics: %v", err)
	}

	resp, err := gate.AfterEdit(context.Background(), "src/main.go")
	if err != nil {
		t.Fatalf("AfterEdit failed: %v", err)
	}
	if resp.Kind != Note {
		t.Fatalf("expected Note, got %v", resp.Kind)
	}
	if resp.Message != "Edited main.go. No test framework detected." {
		t.Errorf("unexpected message: %q", resp.Message)
	}
	if store.LoadMetrics().TotalTestRuns != 0 {
		t.Error("no-framework path should not count a test run")
	}
}

func TestAfterEditPassing(t *testing.T) {
	gate, store, projectDir := newTestGate(t)
	markGoProject(t, projectDir)
	if err := store.SaveMetrics(state.Metrics{ConsecutiveTestFailures: 2}); err != nil {
		t.Fatalf("failed to save metrics: %v", err)
	}
	gate.WithRunner(staticRunner(Result{Outcome: OutcomePassed, Output: "ok"}))

	resp, err := gate.AfterEdit(context.Background(), "main.go")
	if err != nil {
		t.Fatalf("AfterEdit failed: %v", err)
	}
	if resp.Kind != Note {
		t.Fatalf("expected Note, got %v", resp.Kind)
	}
	if !strings.Contains(resp.Message, "Tests passed after editing main.go") {
		t.Errorf("unexpected message: %q", resp.Message)
	}

	metrics := store.LoadMetrics()
	if metrics.ConsecutiveTestFailures != 0 {
		t.Errorf("pass should reset consecutive failures, got %d", metrics.ConsecutiveTestFailures)
	}
	if metrics.TotalTestRuns != 1 || metrics.TotalTestPasses != 1 {
		t.Errorf("totals: runs=%d passes=%d", metrics.TotalTestRuns, metrics.TotalTestPasses)
	}
}

func TestAfterEditFailing(t *testing.T) {
	gate, store, projectDir := newTestGate(t)
	markGoProject(t, projectDir)
	if err := store.SaveMetrics(state.Metrics{CurrentIteration: 3, ConsecutiveTestFailures: 1}); err != nil {
		t.Fatalf("failed to save metrics: %v", err)
	}
	gate.WithRunner(staticRunner(Result{Outcome: OutcomeFailed, Output: "FAIL: TestLogin"}))

	resp, err := gate.AfterEdit(context.Background(), "auth/login.go")
	if err != nil {
		t.Fatalf("AfterEdit failed: %v", err)
	}
	if resp.Kind != Block {
		t.Fatalf("expected Block, got %v", resp.Kind)
	}
	if !strings.Contains(resp.Message, "Tests failed after editing login.go") {
		t.Errorf("unexpected message: %q", resp.Message)
	}
	if !strings.Contains(resp.Message, "FAIL: TestLogin") {
		t.Errorf("block reason missing test output: %q", resp.Message)
	}
	if !strings.Contains(resp.Message, "CONSECUTIVE FAILURES: 2/3 (pauses at 3)") {
		t.Errorf("block reason missing failure count: %q", resp.Message)
	}

	metrics := store.LoadMetrics()
	if metrics.ConsecutiveTestFailures != 2 {
		t.Errorf("consecutive failures: got %d, want 2", metrics.ConsecutiveTestFailures)
	}
	if metrics.TotalTestFailures != 1 {
		t.Errorf("total failures: got %d, want 1", metrics.TotalTestFailures)
	}

	observations := store.LoadObservations()
	if len(observations) != 1 {
		t.Fatalf("observations: got %d, want 1", len(observations))
	}
	obs := observations[0]
	if obs.Type != state.ObservationTestFailure {
		t.Errorf("observation type: %q", obs.Type)
	}
	if obs.File != "auth/login.go" {
		t.Errorf("observation file: %q", obs.File)
	}
	if obs.ConsecutiveFailures != 2 {
		t.Errorf("observation failures: %d", obs.ConsecutiveFailures)
	}
	if obs.OutputSnippet != "FAIL: TestLogin" {
		t.Errorf("observation snippet: %q", obs.OutputSnippet)
	}
}

func TestAfterEditFailingNoOutput(t *testing.T) {
	gate, store, projectDir := newTestGate(t)
	markGoProject(t, projectDir)
	if err := store.SaveMetrics(state.Metrics{}); err != nil {
		t.Fatalf("failed to save metrics: %v", err)
	}
	gate.WithRunner(staticRunner(Result{Outcome: OutcomeFailed}))

	_, err := gate.AfterEdit(context.Background(), "main.go")
	if err != nil {
		t.Fatalf("AfterEdit failed: %v", err)
	}

	observations := store.LoadObservations()
	if len(observations) != 1 {
		t.Fatalf("observations: got %d, want 1", len(observations))
	}
	if observations[0].OutputSnippet != "No output" {
		t.Errorf("snippet: got %q, want %q", observations[0].OutputSnippet, "No output")
	}
}

func TestAfterEditTruncatesLongOutput(t *testing.T) {
	gate, store, projectDir := newTestGate(t)
	markGoProject(t, projectDir)
	if err := store.SaveMetrics(state.Metrics{}); err != nil {
		t.Fatalf("failed to save metrics: %v", err)
	}
	long := strings.Repeat("x", 2000)
	gate.WithRunner(staticRunner(Result{Outcome: OutcomeFailed, Output: long}))

	resp, err := gate.AfterEdit(context.Background(), "main.go")
	if err != nil {
		t.Fatalf("AfterEdit failed: %v", err)
	}
	if !strings.Contains(resp.Message, strings.Repeat("x", DisplayLimit)) {
		t.Errorf("block reason should carry the truncated output")
	}
	if strings.Contains(resp.Message, strings.Repeat("x", DisplayLimit+1)) {
		t.Errorf("block reason output exceeds display limit")
	}

	observations := store.LoadObservations()
	if len(observations[0].OutputSnippet) != state.SnippetLimit {
		t.Errorf("stored snippet length: got %d, want %d", len(observations[0].OutputSnippet), state.SnippetLimit)
	}
}

func TestAfterEditUnavailableRunner(t *testing.T) {
	gate, store, projectDir := newTestGate(t)
	markGoProject(t, projectDir)
	if err := store.SaveMetrics(state.Metrics{ConsecutiveTestFailures: 1}); err != nil {
		t.Fatalf("failed to save metrics: %v", err)
	}
	gate.WithRunner(staticRunner(Result{Outcome: OutcomeUnavailable, Output: "Test command not available: go"}))

	resp, err := gate.AfterEdit(context.Background(), "main.go")
	if err != nil {
		t.Fatalf("AfterEdit failed: %v", err)
	}
	if resp.Kind != Note {
		t.Fatalf("expected Note, got %v", resp.Kind)
	}
	if !strings.Contains(resp.Message, "Test command not available: go") {
		t.Errorf("unexpected message: %q", resp.Message)
	}

	// Environment problems leave every counter and log untouched.
	metrics := store.LoadMetrics()
	if metrics.ConsecutiveTestFailures != 1 || metrics.TotalTestRuns != 0 {
		t.Errorf("metrics mutated: %+v", metrics)
	}
	if observations := store.LoadObservations(); len(observations) != 0 {
		t.Errorf("observation recorded for unavailable runner: %d", len(observations))
	}
}

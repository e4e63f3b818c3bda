// Package engine implements the stop-loop decision engine: on every stop
// attempt it reads the persisted task, plan, metrics, pause flag, and
// progress log fresh, and decides whether the agent may stop, must continue,
// or must wait for a human.
package engine

import (
	"strings"
	"time"

	"autobot/internal/config"
	"autobot/internal/state"
)

// ExitSignal is the literal completion marker the agent appends to
// progress.md when it believes all work is done.
const ExitSignal = "EXIT_SIGNAL: COMPLETE"

// Kind classifies a decision.
type Kind int

const (
	// Allow permits the stop with no output.
	Allow Kind = iota
	// AllowWithMessage permits the stop and surfaces a status message.
	AllowWithMessage
	// Continue blocks the stop and re-injects a continuation directive.
	// This is the only decision that advances the iteration counter.
	Continue
	// Review blocks the stop with a diagnostic for a human (or, for the
	// completion-confirmation variant, for the agent) without advancing
	// the iteration counter.
	Review
)

// Decision is the outcome of one engine pass.
type Decision struct {
	Kind    Kind
	Message string
}

// Engine evaluates stop attempts against the state store.
type Engine struct {
	store *state.Store
	cfg   config.Config
	now   func() time.Time
}

// New creates an engine over the given store with the given policy.
func New(store *state.Store, cfg config.Config) *Engine {
	return &Engine{
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}
}

// WithClock sets a custom time source (useful for testing).
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Evaluate runs one decision pass. The branch order is a correctness
// invariant: pause beats the safety limit, the safety limit beats failure
// escalation, and completion is only recognized when both the exit signal and
// an empty backlog agree. Each call re-reads state from disk; nothing is
// cached between stop attempts.
func (e *Engine) Evaluate() (Decision, error) {
	// Nothing to gate without a store or an active task.
	if !e.store.Exists() {
		return Decision{Kind: Allow}, nil
	}
	task := e.store.LoadTask()
	if !task.Active() {
		return Decision{Kind: Allow}, nil
	}

	// An explicit human pause always wins, even mid-iteration.
	if e.store.Paused() {
		return Decision{Kind: AllowWithMessage, Message: pauseMessage}, nil
	}

	metrics := e.store.LoadMetrics()
	maxIterations := metrics.MaxIterations
	if maxIterations <= 0 {
		maxIterations = e.cfg.MaxIterations
	}

	// Hard upper bound against runaway loops, regardless of task state.
	if metrics.CurrentIteration >= maxIterations {
		return Decision{Kind: AllowWithMessage, Message: safetyLimitMessage(maxIterations)}, nil
	}

	// Repeated failures likely mean a problem the agent cannot self-correct;
	// escalate instead of looping. The iteration counter is not advanced.
	if metrics.ConsecutiveTestFailures >= e.cfg.FailureThreshold {
		return Decision{Kind: Review, Message: failureReviewReason(metrics.ConsecutiveTestFailures)}, nil
	}

	plan := e.store.LoadPlan()
	progress := e.store.ReadProgress()

	// Completion needs dual confirmation: the explicit signal plus an
	// empirically empty backlog.
	if strings.Contains(progress, ExitSignal) && plan.IncompleteCount() == 0 {
		task.Status = state.TaskStatusCompleted
		if err := e.store.SaveTask(task); err != nil {
			return Decision{}, err
		}
		return Decision{Kind: AllowWithMessage, Message: completionMessage(plan.CompletedCount())}, nil
	}

	if next := plan.FirstIncomplete(); next != nil {
		metrics.CurrentIteration++
		metrics.LastActivity = e.now()
		if err := e.store.SaveMetrics(metrics); err != nil {
			return Decision{}, err
		}
		return Decision{
			Kind:    Continue,
			Message: continuationDirective(next, plan, metrics.CurrentIteration, maxIterations),
		}, nil
	}

	// Plan says done but the signal is missing; require explicit
	// confirmation rather than assuming completion.
	return Decision{Kind: Review, Message: confirmCompletionReason}, nil
}

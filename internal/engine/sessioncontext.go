package engine

import (
	"fmt"
	"strings"

	"autobot/internal/config"
	"autobot/internal/state"
)

const (
	noTaskContext = "Autobot: No active task. Use /init-task to start."

	progressBarWidth   = 10
	recentLearningsMax = 300
)

// SessionContext renders the current task state as the context string
// injected at session start. It is a read-only consumer of the store.
func SessionContext(store *state.Store, cfg config.Config) string {
	if !store.Exists() {
		return noTaskContext
	}

	task := store.LoadTask()
	if !task.Active() {
		return noTaskContext
	}

	var parts []string
	parts = append(parts, "ACTIVE TASK: "+task.Title)
	parts = append(parts, "STATUS: "+task.Status)

	if plan := store.LoadPlan(); plan != nil && len(plan.Subtasks) > 0 {
		completed := plan.CompletedCount()
		total := len(plan.Subtasks)
		parts = append(parts, fmt.Sprintf("PROGRESS: %s %d/%d subtasks",
			progressBar(completed, total, progressBarWidth), completed, total))

		if current := plan.InProgress(); current != nil {
			parts = append(parts, "CURRENT: "+current.Title)
		} else if next := plan.FirstIncomplete(); next != nil {
			parts = append(parts, "NEXT: "+next.Title)
		}
	}

	metrics := store.LoadMetrics()
	maxIterations := metrics.MaxIterations
	if maxIterations <= 0 {
		maxIterations = cfg.MaxIterations
	}
	parts = append(parts, fmt.Sprintf("ITERATION: %d/%d", metrics.CurrentIteration, maxIterations))
	if metrics.ConsecutiveTestFailures > 0 {
		parts = append(parts, fmt.Sprintf("WARNING: %d consecutive test failures", metrics.ConsecutiveTestFailures))
	}

	if store.Paused() {
		parts = append(parts, "STATUS: PAUSED (use /resume to continue)")
	}

	if recent := recentLearnings(store.ReadProgress()); recent != "" {
		parts = append(parts, "\nRECENT LEARNINGS:\n"+recent)
	}

	return strings.Join(parts, "\n")
}

// recentLearnings returns the progress.md content after the last --- divider,
// truncated to the most recent recentLearningsMax characters.
func recentLearnings(progress string) string {
	if !strings.Contains(progress, "---") {
		return ""
	}
	sections := strings.Split(progress, "---")
	recent := strings.TrimSpace(sections[len(sections)-1])
	if len(recent) <= 10 {
		return ""
	}
	if len(recent) > recentLearningsMax {
		recent = "..." + recent[len(recent)-recentLearningsMax:]
	}
	return recent
}

// progressBar renders completion as [###-------].
func progressBar(completed, total, width int) string {
	if total <= 0 {
		return "[" + strings.Repeat("-", width) + "]"
	}
	filled := width * completed / total
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

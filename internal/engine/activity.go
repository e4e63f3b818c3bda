package engine

import (
	"strings"
	"time"

	"autobot/internal/hook"
	"autobot/internal/state"
)

// RecordActivity refreshes the activity timestamp after a command event and
// counts successful git commits. It only touches an existing metrics record;
// it never creates one, so a project without an active task stays untouched.
func RecordActivity(store *state.Store, payload hook.Payload, now time.Time) error {
	if !store.Exists() || !store.HasMetrics() {
		return nil
	}

	metrics := store.LoadMetrics()
	metrics.LastActivity = now

	if strings.Contains(payload.ToolInput.Command, "git commit") && payload.ToolResult.ExitCode == 0 {
		metrics.Commits++
	}

	return store.SaveMetrics(metrics)
}

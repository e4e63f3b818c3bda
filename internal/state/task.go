package state

// Task represents the active task record stored in task.json.
type Task struct {
	ID     string `json:"id,omitempty"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// Task status constants
const (
	TaskStatusIdle       = "idle"
	TaskStatusInProgress = "in_progress"
	TaskStatusPaused     = "paused"
	TaskStatusCompleted  = "completed"
)

// Active reports whether the task is live: it has an identifier and is not idle.
func (t *Task) Active() bool {
	return t != nil && t.ID != "" && t.Status != TaskStatusIdle
}

package state

// Subtask represents a single unit of plan work.
type Subtask struct {
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	AcceptanceCriteria []string `json:"acceptance_criteria,omitempty"`
	Status             string   `json:"status"`
}

// Subtask status constants
const (
	SubtaskStatusPending    = "pending"
	SubtaskStatusInProgress = "in_progress"
	SubtaskStatusCompleted  = "completed"
)

// Plan is the ordered sequence of subtasks stored in plan.json.
// The agent mutates it as work proceeds; this side only reads it.
type Plan struct {
	Subtasks []Subtask `json:"subtasks"`
}

// FirstIncomplete returns the first subtask in plan order whose status is not
// completed, or nil if every subtask is done. Order is the scheduling
// discipline: no reordering, no parallelism.
func (p *Plan) FirstIncomplete() *Subtask {
	if p == nil {
		return nil
	}
	for i := range p.Subtasks {
		if p.Subtasks[i].Status != SubtaskStatusCompleted {
			return &p.Subtasks[i]
		}
	}
	return nil
}

// CompletedCount returns the number of completed subtasks.
func (p *Plan) CompletedCount() int {
	if p == nil {
		return 0
	}
	count := 0
	for i := range p.Subtasks {
		if p.Subtasks[i].Status == SubtaskStatusCompleted {
			count++
		}
	}
	return count
}

// IncompleteCount returns the number of subtasks not yet completed.
func (p *Plan) IncompleteCount() int {
	if p == nil {
		return 0
	}
	return len(p.Subtasks) - p.CompletedCount()
}

// InProgress returns the first in_progress subtask, or nil.
func (p *Plan) InProgress() *Subtask {
	if p == nil {
		return nil
	}
	for i := range p.Subtasks {
		if p.Subtasks[i].Status == SubtaskStatusInProgress {
			return &p.Subtasks[i]
		}
	}
	return nil
}

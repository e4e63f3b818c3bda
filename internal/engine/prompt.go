package engine

import (
	"fmt"
	"strings"

	"autobot/internal/state"
)

const pauseMessage = "Task paused. Use /resume to continue."

const confirmCompletionReason = `All subtasks appear complete but EXIT_SIGNAL not found.

Please:
1. Verify all acceptance criteria are met
2. Run the full test suite one more time
3. If everything passes, append "EXIT_SIGNAL: COMPLETE" to .autobot/progress.md

This ensures proper task completion tracking.`

func safetyLimitMessage(maxIterations int) string {
	return fmt.Sprintf("Safety limit reached: %d iterations. Review progress and use /resume to continue.", maxIterations)
}

func completionMessage(completed int) string {
	return fmt.Sprintf("Task completed successfully! %d subtasks finished.", completed)
}

func failureReviewReason(failures int) string {
	return fmt.Sprintf(`PAUSE: %d consecutive test failures detected.

Please review:
1. .autobot/observations.jsonl for failure patterns
2. .autobot/progress.md for any related learnings
3. The test output to understand the root cause

Options:
- Fix the issue and tests will auto-run
- Use /abort to stop and preserve state
- Use /pause to pause and resume later

What would you like to do?`, failures)
}

// continuationDirective builds the instruction re-injected into the agent,
// always targeting exactly one subtask: the first in plan order that is not
// completed.
func continuationDirective(next *state.Subtask, plan *state.Plan, iteration, maxIterations int) string {
	criteria := next.AcceptanceCriteria
	if len(criteria) == 0 {
		criteria = []string{"Complete the subtask"}
	}

	var lines []string
	for _, criterion := range criteria {
		lines = append(lines, "- "+criterion)
	}

	description := next.Description
	if description == "" {
		description = "No description"
	}

	return fmt.Sprintf(`Continue working on the current task.

PROGRESS: %d/%d subtasks completed
ITERATION: %d/%d

CURRENT SUBTASK: %s
DESCRIPTION: %s
ACCEPTANCE CRITERIA:
%s

INSTRUCTIONS:
1. Review .autobot/progress.md for any learned patterns
2. Write tests FIRST if this involves new functionality
3. Implement the change
4. Tests will auto-run after edits
5. If tests pass, update .autobot/plan.json to mark subtask complete
6. If all subtasks done, write "EXIT_SIGNAL: COMPLETE" to .autobot/progress.md

Quality over speed. Small, verifiable steps.`,
		plan.CompletedCount(), len(plan.Subtasks),
		iteration, maxIterations,
		next.Title, description,
		strings.Join(lines, "\n"))
}

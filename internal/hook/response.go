package hook

import (
	"encoding/json"
	"io"
)

// Hook event names used in hookSpecificOutput.
const (
	EventSessionStart = "SessionStart"
	EventPostToolUse  = "PostToolUse"
)

// stopOutput is the decision object for Stop hooks.
type stopOutput struct {
	Continue   *bool  `json:"continue,omitempty"`
	StopReason string `json:"stopReason,omitempty"`
	Decision   string `json:"decision,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// contextOutput wraps informational feedback for non-decision hooks.
type contextOutput struct {
	HookSpecificOutput specificOutput `json:"hookSpecificOutput"`
}

type specificOutput struct {
	HookEventName     string `json:"hookEventName"`
	AdditionalContext string `json:"additionalContext"`
}

// WriteHalt emits an allow-with-message decision: the agent may stop, and the
// reason is shown to the operator.
func WriteHalt(w io.Writer, reason string) error {
	allow := false
	return writeJSON(w, stopOutput{Continue: &allow, StopReason: reason})
}

// WriteBlock emits a block decision: the agent must not stop, and the reason
// is re-injected as its next instruction.
func WriteBlock(w io.Writer, reason string) error {
	return writeJSON(w, stopOutput{Decision: "block", Reason: reason})
}

// WriteContext emits informational feedback for the given hook event.
func WriteContext(w io.Writer, event, context string) error {
	return writeJSON(w, contextOutput{
		HookSpecificOutput: specificOutput{
			HookEventName:     event,
			AdditionalContext: context,
		},
	})
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Package hook implements the wire protocol between the coding assistant and
// the lifecycle hooks: the JSON payload arriving on stdin and the decision
// objects written to stdout.
package hook

import (
	"encoding/json"
	"io"
)

// Payload is the structured invocation payload a hook receives on stdin.
// Only the fields the hooks consume are modeled; unknown fields are ignored.
type Payload struct {
	HookEventName string     `json:"hook_event_name,omitempty"`
	ToolName      string     `json:"tool_name,omitempty"`
	ToolInput     ToolInput  `json:"tool_input"`
	ToolResult    ToolResult `json:"tool_result"`
}

// ToolInput carries the arguments of the tool invocation that triggered the
// hook: the edited file for edit events, the command line for command events.
type ToolInput struct {
	FilePath string `json:"file_path,omitempty"`
	Command  string `json:"command,omitempty"`
}

// ToolResult carries the outcome of the tool invocation.
type ToolResult struct {
	ExitCode int `json:"exit_code"`
}

// Decode reads a payload from r. Unparseable input yields the empty payload
// so state-driven decisions still evaluate correctly.
func Decode(r io.Reader) Payload {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Payload{}
	}
	return p
}

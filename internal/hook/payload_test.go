package hook

import (
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	input := `{
		"hook_event_name": "PostToolUse",
		"tool_name": "Edit",
		"tool_input": {"file_path": "src/main.go", "command": "go build"},
		"tool_result": {"exit_code": 1},
		"session_id": "ignored-extra-field"
	}`

	p := Decode(strings.NewReader(input))
	if p.HookEventName != "PostToolUse" {
		t.Errorf("HookEventName: %q", p.HookEventName)
	}
	if p.ToolName != "Edit" {
		t.Errorf("ToolName: %q", p.ToolName)
	}
	if p.ToolInput.FilePath != "src/main.go" {
		t.Errorf("FilePath: %q", p.ToolInput.FilePath)
	}
	if p.ToolInput.Command != "go build" {
		t.Errorf("Command: %q", p.ToolInput.Command)
	}
	if p.ToolResult.ExitCode != 1 {
		t.Errorf("ExitCode: %d", p.ToolResult.ExitCode)
	}
}

func TestDecodeMalformedInput(t *testing.T) {
	for _, input := range []string{"", "{truncated", "not json at all"} {
		p := Decode(strings.NewReader(input))
		if p != (Payload{}) {
			t.Errorf("Decode(%q): expected empty payload, got %+v", input, p)
		}
	}
}

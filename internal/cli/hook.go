package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"autobot/internal/config"
	"autobot/internal/engine"
	"autobot/internal/gate"
	"autobot/internal/hook"
	"autobot/internal/state"
)

// ExitHookError is the exit code for hook-internal failures. A non-zero exit
// surfaces to the invoking agent as an error; decisions are always carried in
// the JSON payload with exit code 0.
const ExitHookError = 2

var hookCmd = &cobra.Command{
	Use:    "hook",
	Short:  "Lifecycle hooks invoked by the coding assistant",
	Hidden: true,
}

func init() {
	hookCmd.AddCommand(hookStopCmd)
	hookCmd.AddCommand(hookPostEditCmd)
	hookCmd.AddCommand(hookSessionStartCmd)
	hookCmd.AddCommand(hookTrackCmd)
}

// hookEnv assembles the store and config for one hook invocation.
func hookEnv() (string, *state.Store, config.Config) {
	projectDir := state.ProjectDir()
	store := state.NewStore(projectDir)
	return projectDir, store, config.LoadOrDefault(store.ConfigPath())
}

func hookFail(err error) {
	fmt.Fprintf(os.Stderr, "autobot hook error: %v\n", err)
	os.Exit(ExitHookError)
}

var hookStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Decide whether the agent may stop",
	Run: func(cmd *cobra.Command, args []string) {
		// The payload is read to drain stdin but carries nothing the stop
		// decision needs; every input comes from the state store.
		hook.Decode(cmd.InOrStdin())

		_, store, cfg := hookEnv()
		decision, err := engine.New(store, cfg).Evaluate()
		if err != nil {
			hookFail(err)
		}

		switch decision.Kind {
		case engine.Allow:
			// No output: stop permitted.
		case engine.AllowWithMessage:
			if err := hook.WriteHalt(cmd.OutOrStdout(), decision.Message); err != nil {
				hookFail(err)
			}
		default:
			if err := hook.WriteBlock(cmd.OutOrStdout(), decision.Message); err != nil {
				hookFail(err)
			}
		}
	},
}

var hookPostEditCmd = &cobra.Command{
	Use:   "post-edit",
	Short: "Run tests after a source edit",
	Run: func(cmd *cobra.Command, args []string) {
		payload := hook.Decode(cmd.InOrStdin())

		projectDir, store, cfg := hookEnv()
		response, err := gate.New(projectDir, store, cfg).AfterEdit(cmd.Context(), payload.ToolInput.FilePath)
		if err != nil {
			hookFail(err)
		}

		switch response.Kind {
		case gate.Skip:
			// No output.
		case gate.Note:
			if err := hook.WriteContext(cmd.OutOrStdout(), hook.EventPostToolUse, response.Message); err != nil {
				hookFail(err)
			}
		case gate.Block:
			if err := hook.WriteBlock(cmd.OutOrStdout(), response.Message); err != nil {
				hookFail(err)
			}
		}
	},
}

var hookSessionStartCmd = &cobra.Command{
	Use:   "session-start",
	Short: "Inject task context at session start",
	Run: func(cmd *cobra.Command, args []string) {
		hook.Decode(cmd.InOrStdin())

		_, store, cfg := hookEnv()
		context := engine.SessionContext(store, cfg)
		if err := hook.WriteContext(cmd.OutOrStdout(), hook.EventSessionStart, context); err != nil {
			hookFail(err)
		}
	},
}

var hookTrackCmd = &cobra.Command{
	Use:   "track",
	Short: "Track activity after command events",
	Run: func(cmd *cobra.Command, args []string) {
		payload := hook.Decode(cmd.InOrStdin())

		_, store, _ := hookEnv()
		if err := engine.RecordActivity(store, payload, time.Now()); err != nil {
			hookFail(err)
		}
	},
}

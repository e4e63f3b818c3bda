package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "autobot",
	Short:   "Autonomous development assistant for Claude Code",
	Long:    `Autobot scaffolds a project for autonomous development and launches Claude Code on a task. Lifecycle hooks keep the agent working one subtask at a time until the task is done, paused, or escalated for review.`,
	Version: "0.2.0",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(observationsCmd)
	rootCmd.AddCommand(hookCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

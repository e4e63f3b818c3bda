package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"autobot/internal/scaffold"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize Autobot in the current directory without starting a task",
	Long: `Scaffolds the .claude/ and .autobot/ directories but doesn't launch
Claude Code. Use this to prepare a project for Autobot.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	projectDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	bold := color.New(color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	fmt.Printf("\n%s\nDirectory: %s\n\n", bold("Autobot Init"), projectDir)

	claudeExists, autobotExists, _ := scaffold.CheckExisting(projectDir)
	if (claudeExists || autobotExists) && !initForce {
		fmt.Println(yellow("Existing configuration found."))
		if !confirm("Overwrite?") {
			return fmt.Errorf("aborted")
		}
	}

	fmt.Println(bold("Scaffolding..."))
	created, err := scaffold.Scaffold(projectDir, initForce)
	if err != nil {
		return fmt.Errorf("failed to scaffold project: %w", err)
	}
	printCheck(fmt.Sprintf("Created %d files", len(created)))

	fmt.Println()
	fmt.Println(green("Autobot initialized!"))
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  - Run 'autobot start \"your task\"' to start a task")
	fmt.Println("  - Or run 'claude' and use /init-task")
	return nil
}

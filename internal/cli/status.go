package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"autobot/internal/config"
	"autobot/internal/scaffold"
	"autobot/internal/state"
	"autobot/internal/tui"
)

var statusWatch bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show Autobot status for the current project",
	Long: `Displays whether Autobot is initialized, any active tasks,
and progress information.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVarP(&statusWatch, "watch", "w", false, "Open the live status dashboard")
}

func runStatus(cmd *cobra.Command, args []string) error {
	projectDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	if statusWatch {
		return tui.Run(projectDir)
	}

	bold := color.New(color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	claudeExists, autobotExists, activeTask := scaffold.CheckExisting(projectDir)

	if !claudeExists && !autobotExists {
		fmt.Println(yellow("Autobot not initialized in this directory."))
		fmt.Println("Run 'autobot init' to set up.")
		return nil
	}

	fmt.Printf("\n%s\nDirectory: %s\n\n", bold("Autobot Status"), projectDir)

	if claudeExists {
		fmt.Printf("%s .claude/ exists\n", green("✓"))
	} else {
		fmt.Printf("%s .claude/ missing\n", red("✗"))
	}
	if autobotExists {
		fmt.Printf("%s .autobot/ exists\n", green("✓"))
	} else {
		fmt.Printf("%s .autobot/ missing\n", red("✗"))
	}

	store := state.NewStore(projectDir)

	if activeTask == nil {
		fmt.Println("\nNo active task.")
		return nil
	}

	fmt.Printf("\n%s %s\n", bold("Active Task:"), activeTask.Title)
	fmt.Printf("%s %s\n", bold("Status:"), activeTask.Status)

	if plan := store.LoadPlan(); plan != nil && len(plan.Subtasks) > 0 {
		fmt.Printf("%s %d/%d subtasks\n", bold("Progress:"), plan.CompletedCount(), len(plan.Subtasks))
	}

	metrics := store.LoadMetrics()
	maxIterations := metrics.MaxIterations
	if maxIterations <= 0 {
		maxIterations = config.LoadOrDefault(store.ConfigPath()).MaxIterations
	}
	fmt.Printf("%s %d/%d\n", bold("Iteration:"), metrics.CurrentIteration, maxIterations)

	if metrics.ConsecutiveTestFailures > 0 {
		fmt.Printf("%s %d consecutive test failures\n", yellow("Warning:"), metrics.ConsecutiveTestFailures)
	}
	if store.Paused() {
		fmt.Println(yellow("Paused. Use /resume in Claude Code to continue."))
	}

	return nil
}

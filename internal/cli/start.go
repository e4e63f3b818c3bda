package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"autobot/internal/config"
	"autobot/internal/launcher"
	"autobot/internal/scaffold"
	"autobot/internal/state"
)

var (
	startForce    bool
	startNoLaunch bool
	startDryRun   bool
)

var startCmd = &cobra.Command{
	Use:     "start <task>",
	Aliases: []string{"run"},
	Short:   "Start an autonomous development task with Claude Code",
	Long: `Scaffolds the project with Autobot configuration and launches Claude Code
to work on the task autonomously.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStart,
}

func init() {
	startCmd.Flags().BoolVarP(&startForce, "force", "f", false, "Overwrite existing .claude and .autobot directories")
	startCmd.Flags().BoolVar(&startNoLaunch, "no-launch", false, "Scaffold only, don't launch Claude Code")
	startCmd.Flags().BoolVar(&startDryRun, "dry-run", false, "Show what would be created without making changes")
}

func runStart(cmd *cobra.Command, args []string) error {
	task := strings.Join(args, " ")
	projectDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	bold := color.New(color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	title := task
	if len(title) > 70 {
		title = title[:70] + "..."
	}
	fmt.Printf("\n%s v%s\nTask: %s\n\n", bold("Autobot"), rootCmd.Version, title)

	claudeExists, autobotExists, activeTask := scaffold.CheckExisting(projectDir)

	if activeTask != nil && !startForce {
		fmt.Printf("%s %s\n", red("Active task found:"), activeTask.Title)
		fmt.Printf("Status: %s\n\n", activeTask.Status)
		fmt.Println("Options:")
		fmt.Println("  - Use /resume in Claude Code to continue this task")
		fmt.Println("  - Use /abort in Claude Code to cancel it")
		fmt.Println("  - Run 'autobot clean' to remove state")
		fmt.Println("  - Run with --force to overwrite")
		return fmt.Errorf("active task in progress")
	}

	if startDryRun {
		fmt.Println(yellow("Dry run - no files will be created"))
		fmt.Println()
		fmt.Println("Would create:")
		fmt.Println("  .claude/settings.json")
		fmt.Println("  .claude/commands/ (slash commands)")
		fmt.Println("  .autobot/ (runtime state)")
		fmt.Println("  CLAUDE.md")
		return nil
	}

	if (claudeExists || autobotExists) && !startForce {
		fmt.Println(yellow("Existing configuration found."))
		if !confirm("Merge Autobot into existing project?") {
			return fmt.Errorf("aborted")
		}
	}

	fmt.Println(bold("Scaffolding project..."))
	created, err := scaffold.Scaffold(projectDir, startForce)
	if err != nil {
		return fmt.Errorf("failed to scaffold project: %w", err)
	}
	printCheck(fmt.Sprintf("Created %d files", len(created)))

	if err := seedTask(projectDir, task); err != nil {
		return err
	}

	fmt.Println()

	if startNoLaunch {
		fmt.Println(yellow("--no-launch specified."))
		fmt.Println("Run 'claude' to start working.")
		return nil
	}

	fmt.Println(bold("Launching Claude Code..."))
	fmt.Printf("Working dir: %s\n\n", projectDir)

	if code := launcher.Launch(projectDir, task); code != 0 {
		os.Exit(code)
	}
	return nil
}

// seedTask writes the initial task and metrics records for a fresh run.
func seedTask(projectDir, title string) error {
	store := state.NewStore(projectDir)
	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	task := &state.Task{
		ID:     uuid.NewString(),
		Title:  title,
		Status: state.TaskStatusInProgress,
	}
	if err := store.SaveTask(task); err != nil {
		return fmt.Errorf("failed to write task record: %w", err)
	}

	cfg := config.LoadOrDefault(store.ConfigPath())
	if err := store.SaveMetrics(state.Metrics{MaxIterations: cfg.MaxIterations}); err != nil {
		return fmt.Errorf("failed to write metrics record: %w", err)
	}

	return nil
}

func printCheck(msg string) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("%s %s\n", green("✓"), msg)
}

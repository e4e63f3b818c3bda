package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"autobot/internal/state"
)

var (
	cleanAll bool
	cleanYes bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove Autobot files from the current project",
	Long: `By default, only removes .autobot/ (runtime state).
Use --all to also remove .claude/ (configuration) and CLAUDE.md.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Also remove .claude/ directory and CLAUDE.md")
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "Skip confirmation prompt")
}

func runClean(cmd *cobra.Command, args []string) error {
	projectDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	autobotDir := filepath.Join(projectDir, state.DirName)
	claudeDir := filepath.Join(projectDir, ".claude")
	claudeMD := filepath.Join(projectDir, "CLAUDE.md")

	yellow := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	autobotExists := dirExists(autobotDir)
	claudeExists := dirExists(claudeDir)

	if !autobotExists && !claudeExists {
		fmt.Println(yellow("No Autobot files found."))
		return nil
	}

	fmt.Println(bold("Will remove:"))
	if autobotExists {
		fmt.Println("  - .autobot/")
	}
	if cleanAll {
		if claudeExists {
			fmt.Println("  - .claude/")
		}
		if fileExists(claudeMD) {
			fmt.Println("  - CLAUDE.md")
		}
	}
	fmt.Println()

	if !cleanYes && !confirm("Continue?") {
		fmt.Println("Aborted.")
		return nil
	}

	if autobotExists {
		if err := os.RemoveAll(autobotDir); err != nil {
			return fmt.Errorf("failed to remove .autobot/: %w", err)
		}
		fmt.Printf("%s Removed .autobot/\n", green("✓"))
	}

	if cleanAll {
		if claudeExists {
			if err := os.RemoveAll(claudeDir); err != nil {
				return fmt.Errorf("failed to remove .claude/: %w", err)
			}
			fmt.Printf("%s Removed .claude/\n", green("✓"))
		}
		if fileExists(claudeMD) {
			if err := os.Remove(claudeMD); err != nil {
				return fmt.Errorf("failed to remove CLAUDE.md: %w", err)
			}
			fmt.Printf("%s Removed CLAUDE.md\n", green("✓"))
		}
	}

	fmt.Println()
	fmt.Println(green("Cleanup complete."))
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

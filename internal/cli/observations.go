package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"autobot/internal/state"
)

var (
	obsSummary bool
	obsRecent  int
	obsType    string
)

var observationsCmd = &cobra.Command{
	Use:   "observations",
	Short: "Inspect the observation log for the current project",
	Long: `Queries .autobot/observations.jsonl, the append-only record of failures
logged during autonomous sessions.`,
	RunE: runObservations,
}

func init() {
	observationsCmd.Flags().BoolVar(&obsSummary, "summary", false, "Show summary statistics")
	observationsCmd.Flags().IntVar(&obsRecent, "recent", 0, "Show only the N most recent observations")
	observationsCmd.Flags().StringVar(&obsType, "type", "", "Filter by observation type")
}

func runObservations(cmd *cobra.Command, args []string) error {
	projectDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	observations := state.NewStore(projectDir).LoadObservations()

	if obsType != "" {
		var filtered []state.Observation
		for _, obs := range observations {
			if obs.Type == obsType {
				filtered = append(filtered, obs)
			}
		}
		observations = filtered
		fmt.Printf("Filtered to %d observations of type %q\n", len(observations), obsType)
	}

	if obsRecent > 0 && len(observations) > obsRecent {
		observations = observations[len(observations)-obsRecent:]
	}

	if obsSummary {
		printObservationSummary(observations)
		return nil
	}

	printObservations(observations)
	return nil
}

func printObservations(observations []state.Observation) {
	if len(observations) == 0 {
		fmt.Println("No observations found.")
		return
	}

	for i, obs := range observations {
		fmt.Printf("\n--- Observation %d ---\n", i+1)
		fmt.Printf("Type: %s\n", obs.Type)
		fmt.Printf("Time: %s\n", obs.Timestamp.Format("2006-01-02 15:04:05"))
		if obs.File != "" {
			fmt.Printf("File: %s\n", obs.File)
		}
		fmt.Printf("Iteration: %d (failures: %d)\n", obs.Iteration, obs.ConsecutiveFailures)
		if obs.OutputSnippet != "" {
			fmt.Printf("Output: %s\n", state.Truncate(obs.OutputSnippet, 200))
		}
	}
}

func printObservationSummary(observations []state.Observation) {
	if len(observations) == 0 {
		fmt.Println("No observations found.")
		return
	}

	typeCounts := make(map[string]int)
	fileCounts := make(map[string]int)
	for _, obs := range observations {
		typeCounts[obs.Type]++
		if obs.File != "" {
			fileCounts[obs.File]++
		}
	}

	fmt.Println("=== OBSERVATION SUMMARY ===")
	fmt.Println()
	fmt.Printf("Total observations: %d\n", len(observations))

	fmt.Println("\nBy Type:")
	for _, entry := range sortedByCount(typeCounts) {
		fmt.Printf("  %s: %d\n", entry.name, entry.count)
	}

	if len(fileCounts) > 0 {
		fmt.Println("\nMost Affected Files:")
		entries := sortedByCount(fileCounts)
		if len(entries) > 5 {
			entries = entries[:5]
		}
		for _, entry := range entries {
			fmt.Printf("  %s: %d\n", entry.name, entry.count)
		}
	}

	fmt.Println("\nTime Range:")
	fmt.Printf("  First: %s\n", observations[0].Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Last: %s\n", observations[len(observations)-1].Timestamp.Format("2006-01-02 15:04:05"))
}

type countEntry struct {
	name  string
	count int
}

func sortedByCount(counts map[string]int) []countEntry {
	entries := make([]countEntry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, countEntry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	return entries
}

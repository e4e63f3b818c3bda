package main

import (
	"fmt"
	"os"

	"autobot/internal/cli"
	"autobot/internal/tui"
)

func main() {
	// If no args, launch the status dashboard; otherwise route to the CLI
	if len(os.Args) == 1 {
		projectDir, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := tui.Run(projectDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := cli.Execute(); err != nil {
			os.Exit(1)
		}
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available modes",
	Long:  `Shows every game mode and the ID it is recorded under.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	fmt.Println("Available modes:")
	fmt.Println()

	fmt.Printf("  %-8s  %-12s  %s\n", "Mode", "ID", "Title")
	fmt.Printf("  %-8s  %-12s  %s\n", "----", "--", "-----")

	for _, m := range t2048.Modes {
		fmt.Printf("  %-8s  %-12s  %s\n", m, m.ID(), m.Title())
	}

	fmt.Println()
	fmt.Println("Run 't2048 play <mode>' to play.")
}

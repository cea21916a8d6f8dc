package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a game ends, press B or Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  t2048 menu
  t2048 menu --fps 30
  t2048 menu --db ./results.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		logger.Warn("results will not be saved", "error", err)
	} else {
		defer store.Close()
	}

	return tui.RunApp(store, runtimeConfig())
}

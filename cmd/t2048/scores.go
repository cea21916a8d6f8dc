package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoresLimit       int
	flagScoresInteractive bool
	flagScoresClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show recorded results",
	Long: `Display the best results for a mode, ranked by win, highest tile,
then fewest moves. Without a mode, a summary of every mode is shown.

Examples:
  t2048 scores
  t2048 scores classic --limit 20
  t2048 scores endless -i
  t2048 scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Open the scoreboard screen")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all results for the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		if flagScoresInteractive {
			return runScoreboard(store, "")
		}
		return printAllStats(store)
	}

	mode, err := t2048.ParseMode(args[0])
	if err != nil {
		return err
	}

	switch {
	case flagScoresClear:
		if err := store.ClearResults(mode.ID()); err != nil {
			return err
		}
		fmt.Printf("Cleared results for %s.\n", mode.Title())
		return nil
	case flagScoresInteractive:
		return runScoreboard(store, mode.ID())
	}

	return printTopResults(store, mode)
}

func runScoreboard(store *storage.Store, modeID string) error {
	cfg := runtimeConfig()
	_, err := tui.RunScoreboard(store, modeID, cfg.ScreenW, cfg.ScreenH)
	return err
}

func printTopResults(store *storage.Store, mode t2048.Mode) error {
	results, err := store.TopResults(mode.ID(), flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", mode.Title())
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %s' to set the first result!\n", mode)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-7s  %-10s  %s\n", "Rank", "Max Tile", "Moves", "Result", "Seed", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-7s  %-10s  %s\n", "----", "--------", "-----", "------", "----", "----")

	for i, r := range results {
		fmt.Printf("  %-4d  %-8d  %-6d  %-7s  %-10d  %s\n",
			i+1, r.MaxTile, r.Moves, r.Outcome, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(mode.ID())
	if err == nil {
		fmt.Println()
		fmt.Printf("Games: %d  Wins: %d  Best tile: %d  Avg moves: %.1f\n",
			stats.Games, stats.Wins, stats.BestTile, stats.AvgMoves)
	}
	return nil
}

func printAllStats(store *storage.Store) error {
	all, err := store.AllStats()
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Println("No games recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-12s  %-6s  %-5s  %-9s  %-9s  %s\n", "Mode", "Games", "Wins", "Best Tile", "Avg Moves", "Last Played")
	fmt.Printf("  %-12s  %-6s  %-5s  %-9s  %-9s  %s\n", "----", "-----", "----", "---------", "---------", "-----------")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-12s  %-6d  %-5d  %-9d  %-9.1f  %s\n",
			id, st.Games, st.Wins, st.BestTile, st.AvgMoves, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

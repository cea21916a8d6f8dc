package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var (
	flagReplayMode string
	flagReplayJSON bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <direction>...",
	Short: "Replay a move list on a seeded board",
	Long: `Apply directions to a fresh board and print it after each move.

The same seed and spawn probability give the same board as an
API or MCP session, so a game can be reproduced from its moves.
Directions are up/down/left/right or a WASD/hjkl letter, separated
by spaces or commas. Replay stops when the game is finished.

Examples:
  t2048 replay --seed 42 left up up right
  t2048 replay --seed 42 a,w,w,d
  t2048 replay --seed 7 --mode endless --json left left down`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayMode, "mode", "", "Mode: classic or endless (default from config)")
	replayCmd.Flags().BoolVar(&flagReplayJSON, "json", false, "Print the final board as JSON")
}

func runReplay(cmd *cobra.Command, args []string) error {
	name := appConfig.Game.Mode
	if flagReplayMode != "" {
		name = flagReplayMode
	}
	mode, err := t2048.ParseMode(name)
	if err != nil {
		return err
	}

	dirs, err := parseDirections(args)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	board := t2048.NewBoard(
		rand.New(rand.NewSource(seed)),
		t2048.WithFourProbability(appConfig.Game.FourProbability),
	)

	return replay(cmd.OutOrStdout(), board, mode, seed, dirs, flagReplayJSON)
}

// parseDirections accepts one direction per argument or comma-separated lists.
func parseDirections(args []string) ([]t2048.Direction, error) {
	var dirs []t2048.Direction
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			d, err := t2048.ParseDirection(part)
			if err != nil {
				return nil, err
			}
			dirs = append(dirs, d)
		}
	}
	return dirs, nil
}

// replay applies dirs to board, writing each step to w.
func replay(w io.Writer, board *t2048.Board, mode t2048.Mode, seed int64, dirs []t2048.Direction, asJSON bool) error {
	if !asJSON {
		fmt.Fprintf(w, "Seed %d, %s\n\n%s", seed, mode.Title(), board.Values())
	}

	for i, d := range dirs {
		if mode.Finished(board) {
			if !asJSON {
				fmt.Fprintf(w, "\nGame finished after %d of %d directions.\n", i, len(dirs))
			}
			break
		}

		res := board.Shift(d)
		if asJSON {
			continue
		}
		if !res.Accepted {
			fmt.Fprintf(w, "\n> %s (no change)\n", d)
			continue
		}
		fmt.Fprintf(w, "\n> %s (%d merges)\n%s", d, res.Merges, res.After)
	}

	snap := t2048.BoardSnapshot(board, mode)
	snap.Seed = seed

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	fmt.Fprintf(w, "\nMoves: %d  Tiles: %d/%d  Max: %d  Outcome: %s\n",
		snap.Moves, snap.Tiles, t2048.CellCount, snap.MaxTile, snap.Outcome)
	return nil
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game",
	Long: `Start a game in the given mode (classic or endless).
Without a mode, game.mode from the config is used.

Controls:
  Arrows/WASD/hjkl  - Slide
  P/Space           - Pause
  R                 - Restart
  Ctrl+S            - Save screenshot
  Q/Ctrl+C          - Quit

Examples:
  t2048 play
  t2048 play endless
  t2048 play --seed 42 --spawn hard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	name := appConfig.Game.Mode
	if len(args) > 0 {
		name = args[0]
	}

	mode, err := t2048.ParseMode(name)
	if err != nil {
		return err
	}

	game, err := registry.Create(mode.ID())
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		logger.Warn("results will not be saved", "error", err)
	} else {
		defer store.Close()
	}

	return tui.Run(game, store, runtimeConfig())
}

// t2048 plays 2048 in the terminal and serves boards to remote drivers.
//
// Usage:
//
//	t2048 list                 - List available modes
//	t2048 play [mode]          - Play classic or endless
//	t2048 menu                 - Pick a mode interactively
//	t2048 scores [mode]        - Show recorded results
//	t2048 serve                - Start SSH server for remote play
//	t2048 api                  - Start HTTP + WebSocket server
//	t2048 mcp                  - Serve boards as MCP tools over stdio
//	t2048 replay <dir>...      - Replay moves on a seeded board
//
// Global flags:
//
//	--config <path>    - Config file (default: search path)
//	--seed <value>     - RNG seed for reproducible boards
//	--db <path>        - Results database path
//	--log-level <lvl>  - debug, info, warn or error
//	--spawn <preset>   - Spawn preset: easy, classic or hard
//	--fps <rate>       - Tick rate override
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var version = "dev"

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagSpawn    string
	flagFPS      int
)

// Loaded by the root command before any subcommand runs.
var (
	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal, over SSH, HTTP and MCP",
	Long: `t2048 is the sliding-tile puzzle 2048.

Slide the board up, down, left or right. Equal tiles that meet merge
into their sum. Reach a 2048 tile to win.

Available commands:
  list     - Show available modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  scores   - View recorded results
  serve    - Start SSH server for remote play
  api      - Start HTTP API with WebSocket spectators
  mcp      - Expose boards as MCP tools over stdio
  replay   - Replay a move list on a seeded board

Examples:
  t2048 play
  t2048 play endless --spawn easy
  t2048 serve --ssh :2222
  t2048 replay --seed 42 left up up right`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagSpawn, "spawn", "", "Spawn preset: easy, classic, hard")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (frames per second)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(replayCmd)
}

// setup loads config, applies flag overrides and configures new games.
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagFPS > 0 {
		cfg.TUI.TickRate = flagFPS
	}
	if flagSpawn != "" {
		if err := cfg.ApplySpawnPreset(config.SpawnPreset(flagSpawn)); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	t2048.Configure(t2048.Settings{
		FourProbability: cfg.Game.FourProbability,
		Animate:         cfg.Animation.Enabled,
		SlideTicks:      cfg.Animation.SlideTicks,
		PopTicks:        cfg.Animation.PopTicks,
	})

	appConfig = cfg
	logger = newLogger(cfg.Log.Level)
	return nil
}

// newLogger writes to stderr so stdout stays free for the TUI and MCP.
func newLogger(level string) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	}
	return l
}

// openStore opens the results database. Interactive commands keep going without it.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open results database: %w", err)
	}
	return store, nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: appConfig.TUI.TickRate,
		Seed:     flagSeed,
	}
}

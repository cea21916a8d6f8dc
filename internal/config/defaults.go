package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration.
// It matches defaults/t2048.yaml and is used when even that fails to parse.
func Default() Config {
	return Config{
		Game: GameConfig{
			FourProbability: 0.5,
			Mode:            "classic",
		},
		Animation: AnimationConfig{
			Enabled:    true,
			SlideTicks: 8,
			PopTicks:   6,
		},
		TUI: TUIConfig{
			TickRate: 60,
		},
		Storage: StorageConfig{
			DBPath: "~/.t2048/results.db",
		},
		SSH: SSHConfig{
			Address:     ":2048",
			HostKey:     ".ssh/t2048_host_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
		HTTP: HTTPConfig{
			Address: ":8048",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

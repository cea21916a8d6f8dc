// Package config provides YAML-based configuration loading for the game,
// its front ends and its servers.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Config is the complete application configuration.
type Config struct {
	Game      GameConfig      `yaml:"game"`
	Animation AnimationConfig `yaml:"animation"`
	TUI       TUIConfig       `yaml:"tui"`
	Storage   StorageConfig   `yaml:"storage"`
	SSH       SSHConfig       `yaml:"ssh"`
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
}

// GameConfig defines board rules that are allowed to vary.
type GameConfig struct {
	FourProbability float64 `yaml:"four_probability"` // Chance a spawned tile is a 4
	Mode            string  `yaml:"mode"`             // Default mode for `play`
}

// AnimationConfig controls the slide and pop animations.
type AnimationConfig struct {
	Enabled    bool `yaml:"enabled"`
	SlideTicks int  `yaml:"slide_ticks"`
	PopTicks   int  `yaml:"pop_ticks"`
}

// TUIConfig defines terminal front end parameters.
type TUIConfig struct {
	TickRate int `yaml:"tick_rate"` // Simulation ticks per second
}

// StorageConfig defines where finished games are recorded.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// SSHConfig defines the SSH server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// HTTPConfig defines the HTTP API server.
type HTTPConfig struct {
	Address string `yaml:"address"`
}

// LogConfig defines process logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// SpawnPreset is a named tile spawn probability.
type SpawnPreset string

const (
	SpawnEasy    SpawnPreset = "easy"    // Mostly 2s
	SpawnClassic SpawnPreset = "classic" // Even split
	SpawnHard    SpawnPreset = "hard"    // Mostly 4s
)

// FourProbabilityForPreset returns the four_probability for a preset.
func FourProbabilityForPreset(preset SpawnPreset) (float64, error) {
	switch SpawnPreset(strings.ToLower(string(preset))) {
	case SpawnEasy:
		return 0.1, nil
	case SpawnClassic:
		return 0.5, nil
	case SpawnHard:
		return 0.75, nil
	}
	return 0, fmt.Errorf("%w: unknown spawn preset %q", ErrInvalidConfig, preset)
}

// ApplySpawnPreset sets the four probability from a preset name.
func (c *Config) ApplySpawnPreset(preset SpawnPreset) error {
	p, err := FourProbabilityForPreset(preset)
	if err != nil {
		return err
	}
	c.Game.FourProbability = p
	return nil
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks the configuration for values the program cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.Game.FourProbability < 0 || c.Game.FourProbability > 1 {
		errs = append(errs, fmt.Errorf("%w: game.four_probability %v not in [0, 1]", ErrInvalidConfig, c.Game.FourProbability))
	}
	if c.Game.Mode != "" && c.Game.Mode != "classic" && c.Game.Mode != "endless" {
		errs = append(errs, fmt.Errorf("%w: game.mode %q", ErrInvalidConfig, c.Game.Mode))
	}
	if c.Animation.SlideTicks < 0 || c.Animation.PopTicks < 0 {
		errs = append(errs, fmt.Errorf("%w: animation ticks must not be negative", ErrInvalidConfig))
	}
	if c.TUI.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: tui.tick_rate must be positive", ErrInvalidConfig))
	}
	if c.SSH.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: ssh.idle_timeout must not be negative", ErrInvalidConfig))
	}
	if !logLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level))
	}

	return errors.Join(errs...)
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded config differs from Default():\n%+v\n%+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "game:\n  four_probability: 0.1\nssh:\n  idle_timeout: 30s\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.FourProbability != 0.1 {
		t.Errorf("FourProbability = %v, want 0.1", cfg.Game.FourProbability)
	}
	if cfg.SSH.IdleTimeout != 30*time.Second {
		t.Errorf("IdleTimeout = %v, want 30s", cfg.SSH.IdleTimeout)
	}
	// Untouched keys keep their defaults
	if cfg.TUI.TickRate != 60 || cfg.HTTP.Address != ":8048" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("game: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("malformed custom config should fail")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("game:\n  four_probability: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load(invalid) error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded default
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded load = %+v", cfg)
	}

	// Local file
	if err := os.MkdirAll(filepath.Join(work, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(work, localFilePath), []byte("log:\n  level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, _ = Load("")
	if cfg.Log.Level != "debug" {
		t.Errorf("local config not used: level %q", cfg.Log.Level)
	}

	// User file wins over local
	if err := os.MkdirAll(filepath.Join(home, userDirName), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, userDirName, fileName), []byte("log:\n  level: warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, _ = Load("")
	if cfg.Log.Level != "warn" {
		t.Errorf("user config not preferred: level %q", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative probability", func(c *Config) { c.Game.FourProbability = -0.1 }},
		{"probability above one", func(c *Config) { c.Game.FourProbability = 1.5 }},
		{"unknown mode", func(c *Config) { c.Game.Mode = "campaign" }},
		{"zero tick rate", func(c *Config) { c.TUI.TickRate = 0 }},
		{"negative slide ticks", func(c *Config) { c.Animation.SlideTicks = -1 }},
		{"negative idle timeout", func(c *Config) { c.SSH.IdleTimeout = -time.Second }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSpawnPresets(t *testing.T) {
	cfg := Default()
	if err := cfg.ApplySpawnPreset("Hard"); err != nil {
		t.Fatalf("ApplySpawnPreset: %v", err)
	}
	if cfg.Game.FourProbability != 0.75 {
		t.Errorf("hard preset = %v", cfg.Game.FourProbability)
	}
	if err := cfg.ApplySpawnPreset("insane"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown preset error = %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	got, err := ExpandHome("~/.t2048/results.db")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/home/tester/.t2048/results.db" {
		t.Errorf("ExpandHome = %q", got)
	}
	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed: %q", got)
	}
}

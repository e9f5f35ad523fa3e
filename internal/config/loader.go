package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ConfigDirName is the per-user directory under $HOME.
const ConfigDirName = ".siraegi"

// Load loads the runner configuration.
// Search order: customPath -> ~/.siraegi/configs/runner.{yaml,toml} ->
// ./configs/runner.yaml -> embedded default.
// Files overlay the built-in defaults, so a partial file only changes what it names.
func Load(customPath string) (RunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	candidates := []string{
		userConfigPath("runner.yaml"),
		userConfigPath("runner.toml"),
		filepath.Join("configs", "runner.yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// loadFile decodes a single config file on top of the defaults.
// The format is chosen by extension: .toml uses TOML, anything else YAML.
func loadFile(path string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := Decode(path, data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data into cfg using the format implied by name.
func Decode(name string, data []byte, cfg *RunnerConfig) error {
	if strings.EqualFold(filepath.Ext(name), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// Encode renders cfg as YAML.
func Encode(cfg RunnerConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ConfigDirName, "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// The hit budget never changes; presets tune the ramp and the
	// invincibility window instead.
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Scaling.SpeedMultiplier /= 2
		cfg.Physics.InvincibleTicks = cfg.Physics.InvincibleTicks * 3 / 2
	case DifficultyHard:
		cfg.Physics.InvincibleTicks = cfg.Physics.InvincibleTicks * 2 / 3
	}
}

// Validate reports configuration that cannot produce a playable run.
func (c RunnerConfig) Validate() error {
	var errs []error

	if len(c.Stages) == 0 {
		errs = append(errs, errors.New("at least one stage is required"))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player width and height must be positive"))
	}
	if c.Player.SlideHeight <= 0 || c.Player.SlideHeight > c.Player.Height {
		errs = append(errs, errors.New("player slide_height must be in (0, height]"))
	}
	if c.Physics.Gravity <= 0 {
		errs = append(errs, errors.New("physics gravity must be positive"))
	}
	if c.Physics.MaxJumps < 1 {
		errs = append(errs, errors.New("physics max_jumps must be at least 1"))
	}
	if c.Session.LengthSeconds <= 0 {
		errs = append(errs, errors.New("session length_seconds must be positive"))
	}
	if c.Session.StageIntervalSeconds <= 0 {
		errs = append(errs, errors.New("session stage_interval_seconds must be positive"))
	}
	if c.Session.MaxHits < 1 {
		errs = append(errs, errors.New("session max_hits must be at least 1"))
	}
	switch c.Session.RestartTo {
	case "", RestartToStart, RestartToPlaying:
	default:
		errs = append(errs, fmt.Errorf("session restart_to %q must be %q or %q", c.Session.RestartTo, RestartToStart, RestartToPlaying))
	}
	if c.Display.CellWidth <= 0 || c.Display.CellHeight <= 0 {
		errs = append(errs, errors.New("display cell_width and cell_height must be positive"))
	}

	for i, st := range c.Stages {
		for j, o := range st.Obstacles {
			if o.Kind != KindGround && o.Kind != KindFall {
				errs = append(errs, fmt.Errorf("stage %d obstacle %d: unknown kind %q", i, j, o.Kind))
			}
			if o.Width <= 0 || o.Height <= 0 {
				errs = append(errs, fmt.Errorf("stage %d obstacle %d: width and height must be positive", i, j))
			}
			if o.OffsetMax < o.OffsetMin {
				errs = append(errs, fmt.Errorf("stage %d obstacle %d: offset_max below offset_min", i, j))
			}
		}
	}

	return errors.Join(errs...)
}

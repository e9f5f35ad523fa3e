package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	fromYAML := DefaultRunnerConfig()
	if err := Decode("runner.yaml", DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded YAML failed to parse: %v", err)
	}

	if !reflect.DeepEqual(fromYAML, DefaultRunnerConfig()) {
		t.Errorf("embedded YAML and DefaultRunnerConfig() disagree:\nyaml: %+v\ngo:   %+v", fromYAML, DefaultRunnerConfig())
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultRunnerConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestDefaultStageTable(t *testing.T) {
	cfg := DefaultRunnerConfig()

	if len(cfg.Stages) != 4 {
		t.Fatalf("expected 4 stages, got %d", len(cfg.Stages))
	}

	tests := []struct {
		stage int
		want  StageDifficulty
	}{
		{0, StageDifficulty{Speed: 6, ObstacleChance: 0.02, MinSpawnGapMS: 1200, ItemChance: 0.01}},
		{1, StageDifficulty{Speed: 7, ObstacleChance: 0.03, MinSpawnGapMS: 1000, ItemChance: 0.009}},
		{2, StageDifficulty{Speed: 7.6, ObstacleChance: 0.035, MinSpawnGapMS: 1000, ItemChance: 0.008}},
		{3, StageDifficulty{Speed: 8, ObstacleChance: 0.02, MinSpawnGapMS: 1000, ItemChance: 0.009}},
	}
	for _, tc := range tests {
		if got := cfg.Stages[tc.stage].Difficulty; got != tc.want {
			t.Errorf("stage %d difficulty = %+v, expected %+v", tc.stage, got, tc.want)
		}
	}

	if cfg.Stages[1].Obstacles[0].Kind != KindFall {
		t.Error("stage 1 should spawn falling obstacles")
	}
	if len(cfg.Stages[3].Obstacles) != 2 {
		t.Error("stage 3 should spawn two independent ground obstacles")
	}
	if cfg.Overflow.MinSpawnGap() != 700*time.Millisecond {
		t.Errorf("overflow gap = %v, expected 700ms", cfg.Overflow.MinSpawnGap())
	}
}

func TestLoadCustomYAMLOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	data := "session:\n  max_hits: 3\nphysics:\n  gravity: 1.2\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Session.MaxHits != 3 {
		t.Errorf("MaxHits = %d, expected 3", cfg.Session.MaxHits)
	}
	if cfg.Physics.Gravity != 1.2 {
		t.Errorf("Gravity = %v, expected 1.2", cfg.Physics.Gravity)
	}
	// Untouched values keep their defaults
	if cfg.Session.LengthSeconds != 60 {
		t.Errorf("LengthSeconds = %v, expected default 60", cfg.Session.LengthSeconds)
	}
	if len(cfg.Stages) != 4 {
		t.Errorf("expected default stages, got %d", len(cfg.Stages))
	}
}

func TestLoadCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.toml")
	data := `
[session]
length_seconds = 30.0
restart_to = "playing"

[items]
bonus = 75.0
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Session.Length() != 30*time.Second {
		t.Errorf("Length() = %v, expected 30s", cfg.Session.Length())
	}
	if cfg.Session.RestartTo != RestartToPlaying {
		t.Errorf("RestartTo = %q, expected %q", cfg.Session.RestartTo, RestartToPlaying)
	}
	if cfg.Items.Bonus != 75 {
		t.Errorf("Bonus = %v, expected 75", cfg.Items.Bonus)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("stages: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("stages: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(invalid)
	if err == nil || !strings.Contains(err.Error(), "at least one stage") {
		t.Errorf("empty stage table should fail validation, got %v", err)
	}
}

func TestValidateRejectsBadObstacle(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.Stages[0].Obstacles[0].Kind = "rolling"
	cfg.Session.RestartTo = "menu"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), `unknown kind "rolling"`) {
		t.Errorf("error should name the bad kind, got %v", err)
	}
	if !strings.Contains(err.Error(), "restart_to") {
		t.Errorf("error should name restart_to, got %v", err)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		enabled     bool
		level       float64
		speedMult   float64
		invincibles int
	}{
		{DifficultyEasy, true, 0.0, 0.125, 90},
		{DifficultyNormal, true, 0.0, 0.25, 60},
		{DifficultyHard, true, 0.5, 0.25, 40},
		{DifficultyFixed, false, 0.0, 0.25, 60},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyPreset(&cfg, tc.preset)

			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.level {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.level)
			}
			if cfg.Session.MaxHits != 6 {
				t.Errorf("MaxHits = %d, presets must keep the six hit budget", cfg.Session.MaxHits)
			}
			if cfg.Difficulty.Scaling.SpeedMultiplier != tc.speedMult {
				t.Errorf("SpeedMultiplier = %v, expected %v", cfg.Difficulty.Scaling.SpeedMultiplier, tc.speedMult)
			}
			if cfg.Physics.InvincibleTicks != tc.invincibles {
				t.Errorf("InvincibleTicks = %d, expected %d", cfg.Physics.InvincibleTicks, tc.invincibles)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("unknown preset should not parse")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Encode(DefaultRunnerConfig())
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	var cfg RunnerConfig
	if err := Decode("out.yaml", data, &cfg); err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultRunnerConfig()) {
		t.Error("encoded config should decode to the same value")
	}
}

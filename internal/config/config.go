// Package config provides YAML/TOML-based runner configuration loading and
// difficulty management.
package config

import "time"

// RunnerConfig contains all configuration for a run.
type RunnerConfig struct {
	Player     PlayerConfig     `yaml:"player" toml:"player"`
	Physics    PhysicsConfig    `yaml:"physics" toml:"physics"`
	Items      ItemConfig       `yaml:"items" toml:"items"`
	Stages     []StageConfig    `yaml:"stages" toml:"stages"`
	Overflow   StageDifficulty  `yaml:"overflow" toml:"overflow"`
	Session    SessionConfig    `yaml:"session" toml:"session"`
	Collision  CollisionConfig  `yaml:"collision" toml:"collision"`
	Display    DisplayConfig    `yaml:"display" toml:"display"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// PlayerConfig defines the player's default pose.
type PlayerConfig struct {
	X           float64 `yaml:"x" toml:"x"`
	Width       float64 `yaml:"width" toml:"width"`
	Height      float64 `yaml:"height" toml:"height"`
	SlideHeight float64 `yaml:"slide_height" toml:"slide_height"`
	Color       string  `yaml:"color" toml:"color"`
}

// PhysicsConfig defines per-tick motion parameters for the player.
type PhysicsConfig struct {
	Gravity            float64 `yaml:"gravity" toml:"gravity"`
	JumpImpulse        float64 `yaml:"jump_impulse" toml:"jump_impulse"`
	DoubleJumpImpulse  float64 `yaml:"double_jump_impulse" toml:"double_jump_impulse"`
	DoubleJumpWindowMS int     `yaml:"double_jump_window_ms" toml:"double_jump_window_ms"`
	MaxJumps           int     `yaml:"max_jumps" toml:"max_jumps"`
	GroundEpsilon      float64 `yaml:"ground_epsilon" toml:"ground_epsilon"`
	InvincibleTicks    int     `yaml:"invincible_ticks" toml:"invincible_ticks"`
	SlideMS            int     `yaml:"slide_ms" toml:"slide_ms"`
	SlideBoost         float64 `yaml:"slide_boost" toml:"slide_boost"`
	SlideMaxOffset     float64 `yaml:"slide_max_offset" toml:"slide_max_offset"`
	SlideRecover       float64 `yaml:"slide_recover" toml:"slide_recover"`
	FallStartSpeed     float64 `yaml:"fall_start_speed" toml:"fall_start_speed"`
	FallAcceleration   float64 `yaml:"fall_acceleration" toml:"fall_acceleration"`
	FadeStep           float64 `yaml:"fade_step" toml:"fade_step"`
}

// DoubleJumpWindow returns the double-jump window as a duration.
func (p PhysicsConfig) DoubleJumpWindow() time.Duration {
	return time.Duration(p.DoubleJumpWindowMS) * time.Millisecond
}

// SlideDuration returns how long a slide lasts before releasing itself.
func (p PhysicsConfig) SlideDuration() time.Duration {
	return time.Duration(p.SlideMS) * time.Millisecond
}

// ItemConfig defines collectible parameters.
type ItemConfig struct {
	RadiusRatio      float64 `yaml:"radius_ratio" toml:"radius_ratio"` // Radius as a fraction of world width
	Speed            float64 `yaml:"speed" toml:"speed"`
	SingleJumpHeight float64 `yaml:"single_jump_height" toml:"single_jump_height"`
	MinClearance     float64 `yaml:"min_clearance" toml:"min_clearance"`
	Bonus            float64 `yaml:"bonus" toml:"bonus"`
	Sprite           string  `yaml:"sprite" toml:"sprite"`
	Color            string  `yaml:"color" toml:"color"`
}

// StageConfig describes one time-gated stage.
type StageConfig struct {
	Name            string          `yaml:"name" toml:"name"`
	Background      string          `yaml:"background" toml:"background"`
	BackgroundColor string          `yaml:"background_color" toml:"background_color"`
	PlayerSprite    string          `yaml:"player_sprite" toml:"player_sprite"`
	Difficulty      StageDifficulty `yaml:"difficulty" toml:"difficulty"`
	Obstacles       []ObstacleSpec  `yaml:"obstacles" toml:"obstacles"`
}

// StageDifficulty is the per-stage spawn and speed tuple.
type StageDifficulty struct {
	Speed          float64 `yaml:"speed" toml:"speed"`
	ObstacleChance float64 `yaml:"obstacle_chance" toml:"obstacle_chance"`
	MinSpawnGapMS  int     `yaml:"min_spawn_gap_ms" toml:"min_spawn_gap_ms"`
	ItemChance     float64 `yaml:"item_chance" toml:"item_chance"`
}

// MinSpawnGap returns the minimum gap between obstacle spawns.
func (d StageDifficulty) MinSpawnGap() time.Duration {
	return time.Duration(d.MinSpawnGapMS) * time.Millisecond
}

// Obstacle kinds.
const (
	KindGround = "ground"
	KindFall   = "fall"
)

// Spawn x modes.
const (
	SpawnEdge   = "edge"   // Just past the right edge
	SpawnRandom = "random" // Anywhere across the width (falling obstacles)
)

// ObstacleSpec is one entry in a stage's spawn pattern. Every entry rolls
// its own chance when the pattern fires.
type ObstacleSpec struct {
	Kind      string  `yaml:"kind" toml:"kind"`
	Sprite    string  `yaml:"sprite" toml:"sprite"`
	Color     string  `yaml:"color" toml:"color"`
	Width     float64 `yaml:"width" toml:"width"`
	Height    float64 `yaml:"height" toml:"height"`
	Lift      float64 `yaml:"lift" toml:"lift"`       // Ground: top edge sits this far above ground
	SpawnY    float64 `yaml:"spawn_y" toml:"spawn_y"` // Fall: starting top edge
	SpawnX    string  `yaml:"spawn_x" toml:"spawn_x"`
	OffsetMin float64 `yaml:"offset_min" toml:"offset_min"`
	OffsetMax float64 `yaml:"offset_max" toml:"offset_max"`
	Chance    float64 `yaml:"chance" toml:"chance"`
}

// SessionConfig defines run length, scoring and screen flow.
type SessionConfig struct {
	LengthSeconds        float64       `yaml:"length_seconds" toml:"length_seconds"`
	StageIntervalSeconds float64       `yaml:"stage_interval_seconds" toml:"stage_interval_seconds"`
	FadeMS               int           `yaml:"fade_ms" toml:"fade_ms"`
	MaxStage             int           `yaml:"max_stage" toml:"max_stage"`
	SpawnWarmupMS        int           `yaml:"spawn_warmup_ms" toml:"spawn_warmup_ms"`
	GroundMargin         float64       `yaml:"ground_margin" toml:"ground_margin"`
	MaxHits              int           `yaml:"max_hits" toml:"max_hits"`
	ScorePerSecond       float64       `yaml:"score_per_second" toml:"score_per_second"`
	HitPenalty           float64       `yaml:"hit_penalty" toml:"hit_penalty"`
	TextRise             float64       `yaml:"text_rise" toml:"text_rise"`
	TextFade             float64       `yaml:"text_fade" toml:"text_fade"`
	RestartTo            string        `yaml:"restart_to" toml:"restart_to"` // "start" or "playing"
	Intro                []IntroScreen `yaml:"intro" toml:"intro"`
}

// Length returns the session length.
func (s SessionConfig) Length() time.Duration {
	return time.Duration(s.LengthSeconds * float64(time.Second))
}

// StageInterval returns the time between stage transitions.
func (s SessionConfig) StageInterval() time.Duration {
	return time.Duration(s.StageIntervalSeconds * float64(time.Second))
}

// FadeDuration returns the full length of a stage cross-fade.
func (s SessionConfig) FadeDuration() time.Duration {
	return time.Duration(s.FadeMS) * time.Millisecond
}

// SpawnWarmup returns the period at the start of a run with no obstacles.
func (s SessionConfig) SpawnWarmup() time.Duration {
	return time.Duration(s.SpawnWarmupMS) * time.Millisecond
}

// IntroScreen is a pre-play screen (story, how-to) shown before the run.
type IntroScreen struct {
	Title string   `yaml:"title" toml:"title"`
	Lines []string `yaml:"lines" toml:"lines"`
}

// CollisionConfig holds the hitbox shrink factors.
type CollisionConfig struct {
	PlayerShrink   float64 `yaml:"player_shrink" toml:"player_shrink"`
	ObstacleShrink float64 `yaml:"obstacle_shrink" toml:"obstacle_shrink"`
}

// DisplayConfig maps the logical world onto terminal cells.
type DisplayConfig struct {
	CellWidth  float64 `yaml:"cell_width" toml:"cell_width"`
	CellHeight float64 `yaml:"cell_height" toml:"cell_height"`
	AssetDir   string  `yaml:"asset_dir" toml:"asset_dir"` // Optional sprite override directory
}

// DifficultyConfig defines the score-driven speed ramp applied on top of
// each stage's base speed.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" toml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" toml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type" toml:"type"`     // "score", "time", or "none"
	MaxAt int    `yaml:"max_at" toml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier" toml:"speed_multiplier"` // Added to speed at max difficulty
	GapReductionMS  int     `yaml:"gap_reduction_ms" toml:"gap_reduction_ms"` // Spawn gap reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values return "" and false.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
// Easy and normal start at the stage table's base speeds.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 0.5
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

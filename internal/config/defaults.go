package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in runner configuration.
// It mirrors defaults/runner.yaml and is used when the embedded YAML cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Player: PlayerConfig{
			X:           80,
			Width:       40,
			Height:      80,
			SlideHeight: 40,
			Color:       "bright_green",
		},
		Physics: PhysicsConfig{
			Gravity:            0.8,
			JumpImpulse:        -18,
			DoubleJumpImpulse:  -20,
			DoubleJumpWindowMS: 400,
			MaxJumps:           2,
			GroundEpsilon:      2,
			InvincibleTicks:    60,
			SlideMS:            500,
			SlideBoost:         4,
			SlideMaxOffset:     120,
			SlideRecover:       2,
			FallStartSpeed:     3,
			FallAcceleration:   0.15,
			FadeStep:           0.05,
		},
		Items: ItemConfig{
			RadiusRatio:      0.02,
			Speed:            6,
			SingleJumpHeight: 200,
			MinClearance:     60,
			Bonus:            50,
			Sprite:           "radish",
			Color:            "bright_yellow",
		},
		Stages: []StageConfig{
			{
				Name:            "Snowfield",
				Background:      "bg_snowfield",
				BackgroundColor: "bright_cyan",
				PlayerSprite:    "siraegi",
				Difficulty:      StageDifficulty{Speed: 6, ObstacleChance: 0.02, MinSpawnGapMS: 1200, ItemChance: 0.01},
				Obstacles: []ObstacleSpec{
					{Kind: KindGround, Sprite: "snowdrift", Color: "white", Width: 80, Height: 80, Lift: 80, SpawnX: SpawnEdge, Chance: 1},
				},
			},
			{
				Name:            "Hailstorm",
				Background:      "bg_hail",
				BackgroundColor: "blue",
				PlayerSprite:    "bbosiraegi",
				Difficulty:      StageDifficulty{Speed: 7, ObstacleChance: 0.03, MinSpawnGapMS: 1000, ItemChance: 0.009},
				Obstacles: []ObstacleSpec{
					{Kind: KindFall, Sprite: "hailstone", Color: "bright_white", Width: 100, Height: 100, SpawnY: -100, SpawnX: SpawnRandom, Chance: 1},
				},
			},
			{
				Name:            "Market",
				Background:      "bg_market",
				BackgroundColor: "orange",
				PlayerSprite:    "bbosiraegi",
				Difficulty:      StageDifficulty{Speed: 7.6, ObstacleChance: 0.035, MinSpawnGapMS: 1000, ItemChance: 0.008},
				Obstacles: []ObstacleSpec{
					{Kind: KindGround, Sprite: "crate", Color: "yellow", Width: 150, Height: 120, Lift: 100, SpawnX: SpawnEdge, Chance: 1},
				},
			},
			{
				Name:            "Downtown",
				Background:      "bg_city",
				BackgroundColor: "gray",
				PlayerSprite:    "bbosiraegi",
				Difficulty:      StageDifficulty{Speed: 8, ObstacleChance: 0.02, MinSpawnGapMS: 1000, ItemChance: 0.009},
				Obstacles: []ObstacleSpec{
					{Kind: KindGround, Sprite: "car", Color: "red", Width: 150, Height: 120, Lift: 120, SpawnX: SpawnEdge, Chance: 0.5},
					{Kind: KindGround, Sprite: "walker", Color: "magenta", Width: 120, Height: 120, Lift: 120, SpawnX: SpawnEdge, OffsetMin: 100, OffsetMax: 300, Chance: 0.7},
				},
			},
		},
		Overflow: StageDifficulty{Speed: 10, ObstacleChance: 0.05, MinSpawnGapMS: 700, ItemChance: 0.003},
		Session: SessionConfig{
			LengthSeconds:        60,
			StageIntervalSeconds: 15,
			FadeMS:               1000,
			MaxStage:             3,
			SpawnWarmupMS:        1000,
			GroundMargin:         50,
			MaxHits:              6,
			ScorePerSecond:       10,
			HitPenalty:           20,
			TextRise:             1,
			TextFade:             0.02,
			RestartTo:            RestartToStart,
			Intro: []IntroScreen{
				{
					Title: "The Last Siraegi",
					Lines: []string{
						"Winter is coming and the drying rack is empty.",
						"Run through four seasons of trouble and bring the radish greens home.",
					},
				},
				{
					Title: "How to Play",
					Lines: []string{
						"Space / tap: jump (press again quickly to double jump)",
						"Right / swipe right: slide under trouble",
						"Six hits and the run is over. Survive 60 seconds to clear.",
					},
				},
			},
		},
		Collision: CollisionConfig{
			PlayerShrink:   0.8,
			ObstacleShrink: 0.7,
		},
		Display: DisplayConfig{
			CellWidth:  10,
			CellHeight: 20,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.25,
				GapReductionMS:  0,
			},
		},
	}
}

// Restart targets for SessionConfig.RestartTo.
const (
	RestartToStart   = "start"
	RestartToPlaying = "playing"
)

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}

// siraegi is a side-scrolling runner for the terminal: carry the radish
// greens home through four seasons of trouble.
//
// Usage:
//
//	siraegi play      - Start a run
//	siraegi scores    - Show the run history
//	siraegi stages    - Print the stage table
//	siraegi config    - Print the effective configuration
//	siraegi serve     - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>       - Runner config file (.yaml or .toml)
//	--difficulty <preset> - easy, normal, hard or fixed
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.siraegi/runs.db)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/siraegi-run/internal/config"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogPath    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "siraegi",
	Short: "Siraegi Run - a seasonal endless runner for your terminal",
	Long: `Siraegi Run is a 60 second side-scrolling runner. Jump, double jump
and slide past snowdrifts, hail, crates and city traffic, and grab
the radishes on the way. Six hits and the run is over.

Available commands:
  play     - Start a run
  scores   - View the run history
  stages   - Print the stage table
  config   - Print the effective configuration
  serve    - Start SSH server for remote play

Examples:
  siraegi play
  siraegi play --difficulty hard --seed 42
  siraegi scores --limit 20
  siraegi serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to runner config (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.siraegi/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log state changes, hits and pickups")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadRunner loads the runner config and applies a difficulty preset.
// An empty preset name means normal.
func loadRunner(presetName string) (config.RunnerConfig, config.DifficultyPreset, error) {
	preset := config.DifficultyNormal
	if presetName != "" {
		p, ok := config.ParsePreset(presetName)
		if !ok {
			return config.RunnerConfig{}, "", fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", presetName)
		}
		preset = p
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, preset, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, preset, nil
}

// newFileLogger logs to --log, or nowhere when it is unset.
func newFileLogger(prefix string) (*log.Logger, io.Closer, error) {
	var out io.Writer = io.Discard
	var closer io.Closer = nopCloser{}
	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, f
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

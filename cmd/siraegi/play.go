package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/siraegi-run/internal/asset"
	"github.com/vovakirdan/siraegi-run/internal/core"
	"github.com/vovakirdan/siraegi-run/internal/platform/tui"
	"github.com/vovakirdan/siraegi-run/internal/prefs"
	"github.com/vovakirdan/siraegi-run/internal/storage"
)

var flagSkipIntro bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a run in the terminal.

Controls:
  Space/Enter/Tab  - Continue, jump (press again quickly to double jump)
  Up/W             - Jump
  Right/D          - Slide
  P                - Pause
  R                - Restart (after the run ends)
  Q/Ctrl+C         - Quit
  Mouse            - Tap to jump, swipe up to jump, swipe right to slide

Difficulty options:
  easy   - Half the speed ramp and a longer invincibility window
  normal - Stage speeds at first, ramping up with the score
  hard   - Starts halfway up the ramp with a shorter invincibility window
  fixed  - Stage speeds only, no ramp

Every preset allows six hits.

The difficulty and --skip-intro choices are remembered for the next run.

Examples:
  siraegi play
  siraegi play --difficulty easy
  siraegi play --seed 42 --fps 30
  siraegi play --config ./my-runner.toml --skip-intro`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagSkipIntro, "skip-intro", false, "Go straight from the title to the run")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	saved, prefStore := loadPrefs()
	if cmd.Flags().Changed("difficulty") {
		saved.Difficulty = flagDifficulty
	}
	if cmd.Flags().Changed("skip-intro") {
		saved.SkipIntro = flagSkipIntro
	}

	cfg, preset, err := loadRunner(saved.Difficulty)
	if err != nil {
		return err
	}
	saved.Difficulty = string(preset)
	if prefStore != nil {
		if err := prefStore.Save(saved); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	logger, closer, err := newFileLogger("siraegi")
	if err != nil {
		return err
	}
	defer closer.Close()

	assets, err := asset.Load(cfg.Display.AssetDir, logger)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		// Continue without storage - the run still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return tui.Run(tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Assets:     assets,
		Store:      store,
		Logger:     logger,
		Player:     playerName(),
		Difficulty: string(preset),
		SkipIntro:  saved.SkipIntro,
	})
}

// loadPrefs returns the remembered preferences and their store. Failures
// warn and fall back to defaults without a store.
func loadPrefs() (prefs.Prefs, *prefs.Store) {
	store, err := prefs.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return prefs.Default(), nil
	}
	p, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return p, store
}

// playerName is the local account name recorded with each run.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

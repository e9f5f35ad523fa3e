package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/siraegi-run/internal/platform/tui"
	"github.com/vovakirdan/siraegi-run/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
	flagPlayer      string
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best runs and overall statistics.

Examples:
  siraegi scores
  siraegi scores --limit 25
  siraegi scores --player yuna
  siraegi scores --clear     # Delete the whole history
  siraegi scores -i          # Browse top and recent runs in a table`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", storage.DefaultLimit, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the scoreboard browser")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Only show runs by this player")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	var runs []storage.Run
	if flagPlayer != "" {
		runs, err = store.PlayerRuns(flagPlayer, flagLimit)
	} else {
		runs, err = store.TopRuns(flagLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	if flagPlayer != "" {
		fmt.Printf("High Scores - Siraegi Run (%s)\n", flagPlayer)
	} else {
		fmt.Println("High Scores - Siraegi Run")
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'siraegi play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-5s  %-4s  %-6s  %-12s  %s\n", "Rank", "Score", "Result", "Stage", "Hits", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-5s  %-4s  %-6s  %-12s  %s\n", "----", "-----", "------", "-----", "----", "----", "------", "----")
	for _, row := range tui.RunRows(runs) {
		fmt.Printf("  %-4s  %-6s  %-6s  %-5s  %-4s  %-6s  %-12s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5], row[6], row[7])
	}

	stats, err := store.Stats()
	if err == nil {
		fmt.Println()
		fmt.Println(tui.StatsLine(stats))
	}
	return nil
}

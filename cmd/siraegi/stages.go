package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Print the stage table",
	Long: `Print every stage of the effective config: when it starts, its
base speed and spawn tuning, and the obstacles it throws at you.`,
	Args: cobra.NoArgs,
	RunE: runStages,
}

func runStages(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadRunner(flagDifficulty)
	if err != nil {
		return err
	}

	interval := cfg.Session.StageInterval()
	fmt.Printf("Stages (%s, %v run, new stage every %v)\n\n", preset, cfg.Session.Length(), interval)
	fmt.Printf("  %-3s  %-10s  %-6s  %-5s  %-6s  %-6s  %-6s  %s\n", "#", "Name", "From", "Speed", "Chance", "Gap", "Items", "Obstacles")

	for i, st := range cfg.Stages {
		if i >= cfg.Session.MaxStage+1 {
			break
		}
		d := st.Difficulty
		names := make([]string, 0, len(st.Obstacles))
		for _, o := range st.Obstacles {
			names = append(names, fmt.Sprintf("%s(%s %.0f%%)", o.Sprite, o.Kind, o.Chance*100))
		}
		from := time.Duration(i) * interval
		fmt.Printf("  %-3d  %-10s  %-6v  %-5.1f  %-6.3f  %-6v  %-6.3f  %s\n",
			i+1, st.Name, from, d.Speed, d.ObstacleChance, d.MinSpawnGap(), d.ItemChance, strings.Join(names, ", "))
	}

	if cfg.Session.MaxStage+1 > len(cfg.Stages) {
		o := cfg.Overflow
		fmt.Printf("\n  Stages past %d keep the last stage's look with speed %.1f, chance %.3f, gap %v\n",
			len(cfg.Stages), o.Speed, o.ObstacleChance, o.MinSpawnGap())
	}
	return nil
}

// Package tui hosts Siraegi Run in the terminal with Bubble Tea.
// It handles the tick loop, input mapping, the scoreboard and SSH play.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// IdleTickRate is the redraw rate while no run is in progress.
const IdleTickRate = 4

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = IdleTickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/siraegi-run/internal/storage"
)

func TestRunRows(t *testing.T) {
	created := time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC)
	rows := RunRows([]storage.Run{
		{Score: 640, Stage: 3, Hits: 2, Cleared: true, Duration: 60 * time.Second, Player: "yuna", CreatedAt: created},
		{Score: 90, Stage: 0, Hits: 6, Duration: 9500 * time.Millisecond, CreatedAt: created},
	})

	want := [][]string{
		{"#1", "640", "CLEAR", "4", "2", "60.0s", "yuna", "Jan 02 15:04"},
		{"#2", "90", "out", "1", "6", "9.5s", "-", "Jan 02 15:04"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows", len(rows))
	}
	for i := range want {
		if strings.Join(rows[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("row %d = %v, expected %v", i, rows[i], want[i])
		}
	}
}

func TestStatsLine(t *testing.T) {
	if got := StatsLine(nil); got != "No runs yet" {
		t.Errorf("StatsLine(nil) = %q", got)
	}

	got := StatsLine(&storage.Stats{Runs: 4, Clears: 1, HighScore: 700, AvgScore: 312.5, TotalTime: 150 * time.Second})
	want := "Runs 4  |  Best 700  |  Avg 312  |  Clears 1 (25%)  |  Played 2m30s"
	if got != want {
		t.Errorf("StatsLine() = %q, expected %q", got, want)
	}
}

func TestScoreboardSwitchesViews(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	for _, score := range []int{300, 100, 200} {
		store.SaveRun(storage.Run{Score: score})
	}

	m := NewScoreboardModel(store, 100, 30)
	if m.CurrentView() != ViewTop || m.Runs()[0].Score != 300 {
		t.Fatalf("top view should list the best run first, got %+v", m.Runs())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.CurrentView() != ViewRecent || m.Runs()[0].Score != 200 {
		t.Errorf("recent view should list the newest run first, got %+v", m.Runs())
	}
	if !strings.Contains(m.View(), "RECENT RUNS") {
		t.Error("title should name the view")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	if cmd == nil || m.View() != "" {
		t.Error("esc should leave the scoreboard")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if !strings.Contains(m.View(), "unavailable") {
		t.Error("missing store should be reported")
	}
}

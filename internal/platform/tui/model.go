package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/siraegi-run/internal/asset"
	"github.com/vovakirdan/siraegi-run/internal/config"
	"github.com/vovakirdan/siraegi-run/internal/core"
	"github.com/vovakirdan/siraegi-run/internal/game"
	"github.com/vovakirdan/siraegi-run/internal/storage"
)

// Options configures a hosted run.
type Options struct {
	Config     config.RunnerConfig
	Runtime    core.RuntimeConfig
	Assets     *asset.Catalog
	Store      *storage.Store     // Nil disables run history
	Logger     *log.Logger        // Nil discards logs
	Renderer   *lipgloss.Renderer // Nil uses the default renderer
	Player     string             // Name recorded with each run
	Difficulty string             // Preset name recorded with each run
	SkipIntro  bool
}

// Model is the Bubble Tea model hosting one Siraegi Run session.
type Model struct {
	session  *game.Session
	screen   *core.Screen
	store    *storage.Store
	logger   *log.Logger
	palette  Palette
	keys     KeyMap
	help     help.Model
	helpLine lipgloss.Style
	latch    *core.ConfirmLatch
	repeat   *core.RepeatGuard
	now      func() time.Time

	runtime    core.RuntimeConfig
	cellW      float64
	cellH      float64
	width      int
	height     int
	player     string
	difficulty string
	saved      bool // Whether the finished run has been recorded
	quitting   bool
}

// NewModel creates a model and its session on the title screen.
func NewModel(opts Options) (Model, error) {
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	m := Model{
		store:      opts.Store,
		logger:     logger,
		palette:    NewPalette(r),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		helpLine:   r.NewStyle().Foreground(lipgloss.Color("241")),
		latch:      &core.ConfirmLatch{},
		repeat:     &core.RepeatGuard{Window: core.KeyRepeatWindow},
		now:        time.Now,
		runtime:    rt,
		cellW:      opts.Config.Display.CellWidth,
		cellH:      opts.Config.Display.CellHeight,
		width:      rt.ScreenW,
		height:     rt.ScreenH,
		player:     opts.Player,
		difficulty: opts.Difficulty,
	}

	rt.ScreenH = m.playRows()
	m.runtime = rt
	m.screen = core.NewScreen(rt.ScreenW, rt.ScreenH)

	session, err := game.New(opts.Config, rt, game.Options{
		Screen:    m.screen,
		Assets:    opts.Assets,
		Logger:    logger,
		SkipIntro: opts.SkipIntro,
	})
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}
	m.session = session
	return m, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Game actions apply immediately, except
// auto-repeated jump keys.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		}
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone && m.repeat.Allow(m.now(), action) {
		m.session.HandleAction(action)
	}
	return m, nil
}

// handleMouse turns a left-button press and release into a gesture.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x := float64(msg.X) * m.cellW
	y := float64(msg.Y) * m.cellH

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.latch.Press(m.now(), x, y)
		}
	case tea.MouseActionRelease:
		if g, ok := m.latch.Release(m.now(), x, y); ok {
			if action := g.Action(); action != core.ActionNone {
				m.session.HandleAction(action)
			}
		}
	}
	return m, nil
}

// handleTick advances the run and records it once it ends.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.session.Phase() == game.StatePlaying {
		m.session.Step()
	}
	m.record()
	return m, tickCmd(m.tickRate())
}

// tickRate runs the simulation rate while playing and the idle rate otherwise.
func (m Model) tickRate() int {
	if m.session != nil && m.session.Phase() == game.StatePlaying {
		return m.runtime.TickRate
	}
	return IdleTickRate
}

// record saves a finished run once. Storage is best-effort.
func (m *Model) record() {
	st := m.session.State()
	if !st.GameOver {
		m.saved = false
		return
	}
	if m.saved {
		return
	}
	m.saved = true

	if m.store == nil {
		return
	}
	r := m.session.Result()
	_, err := m.store.SaveRun(storage.Run{
		Player:     m.player,
		Difficulty: m.difficulty,
		Score:      r.Score,
		Hits:       r.Hits,
		Stage:      r.Stage,
		Cleared:    r.Cleared,
		Duration:   r.Duration,
	})
	if err != nil {
		m.logger.Warn("could not save run", "err", err)
		return
	}
	m.logger.Debug("run saved", "score", r.Score, "cleared", r.Cleared)
}

// playRows returns the terminal rows left for the game below the help line.
func (m Model) playRows() int {
	rows := 1
	if m.help.ShowAll {
		for _, col := range m.keys.FullHelp() {
			rows = max(rows, len(col))
		}
	}
	return max(1, m.height-rows)
}

// layout resizes the screen and the session viewport to the terminal.
func (m *Model) layout() {
	rows := m.playRows()
	m.runtime.ScreenW = m.width
	m.runtime.ScreenH = rows
	m.screen.Resize(m.width, rows)
	m.help.Width = m.width
	m.session.Resize(core.NewViewport(float64(m.width)*m.cellW, float64(rows)*m.cellH, 0))
}

// saveScreenshot writes the current screen to ~/.siraegi/screenshots.
func (m *Model) saveScreenshot() error {
	m.session.Render()

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, config.ConfigDirName, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	filename := fmt.Sprintf("%s_%s.txt", m.session.ID(), m.now().Format("20060102_150405"))
	return os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render()
	return m.palette.RenderScreen(m.screen) + "\n" + m.helpLine.Render(m.help.View(m.keys))
}

// Session returns the hosted session.
func (m Model) Session() *game.Session {
	return m.session
}

// Run starts the Bubble Tea program for a local run.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

package stage

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/siraegi-run/internal/config"
	"github.com/vovakirdan/siraegi-run/internal/core"
	"github.com/vovakirdan/siraegi-run/internal/entity"
)

// scriptRand returns queued values, then fallback forever.
type scriptRand struct {
	values   []float64
	fallback float64
	calls    int
}

func (r *scriptRand) Float64() float64 {
	r.calls++
	if len(r.values) == 0 {
		return r.fallback
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v
}

// never makes every chance roll fail.
func never() *scriptRand { return &scriptRand{fallback: 0.999999} }

// always makes every chance roll succeed.
func always() *scriptRand { return &scriptRand{fallback: 0} }

// tenHz ticks in exact 100ms steps.
var tenHz = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10}

var testViewport = core.Viewport{Width: 800, Height: 480, SafePadding: 20}

func fixedConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Difficulty.Enabled = false
	return cfg
}

func newTestManager(t *testing.T, cfg config.RunnerConfig, rng Rand) *Manager {
	t.Helper()
	m, err := New(cfg, nil, rng, tenHz, testViewport)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return m
}

func TestNewRequiresRand(t *testing.T) {
	if _, err := New(fixedConfig(), nil, nil, tenHz, testViewport); !errors.Is(err, ErrNoRand) {
		t.Errorf("got %v, expected ErrNoRand", err)
	}
}

func TestElapsedAndClear(t *testing.T) {
	m := newTestManager(t, fixedConfig(), never())

	for i := 0; i < 599; i++ {
		m.Update(0)
	}
	if m.Cleared() {
		t.Fatalf("cleared early at %v", m.Elapsed())
	}

	m.Update(0)
	if m.Elapsed() != 60*time.Second {
		t.Errorf("Elapsed() = %v, expected 60s", m.Elapsed())
	}
	if !m.Cleared() {
		t.Error("run should be cleared at 60s")
	}
	if m.Progress() != 1 {
		t.Errorf("Progress() = %v, expected 1", m.Progress())
	}
}

func TestStageTransitionCrossFade(t *testing.T) {
	m := newTestManager(t, fixedConfig(), never())

	// Nothing happens before 15s
	for i := 0; i < 149; i++ {
		m.Update(0)
	}
	if m.Transitioning() || m.Stage() != 0 {
		t.Fatalf("transition started early at %v", m.Elapsed())
	}

	// Fade out rises until the stage swaps
	last := 0.0
	swapTick := 0
	for i := 150; i <= 170; i++ {
		m.Update(0)
		if m.Stage() == 1 {
			swapTick = i
			break
		}
		if !m.Transitioning() {
			t.Fatalf("tick %d: expected transition in progress", i)
		}
		if m.FadeOpacity() <= last {
			t.Fatalf("tick %d: opacity %v should rise past %v", i, m.FadeOpacity(), last)
		}
		last = m.FadeOpacity()
	}
	if swapTick < 153 || swapTick > 156 {
		t.Fatalf("stage swapped at tick %d, expected about 0.5s after 15s", swapTick)
	}
	if m.FadeOpacity() < 0.9 {
		t.Errorf("opacity at swap = %v, expected near 1", m.FadeOpacity())
	}

	// Fade in falls back to zero
	for i := 0; i < 10 && m.Transitioning(); i++ {
		prev := m.FadeOpacity()
		m.Update(0)
		if m.Transitioning() && m.FadeOpacity() >= prev {
			t.Fatalf("opacity %v should fall below %v", m.FadeOpacity(), prev)
		}
	}
	if m.Transitioning() || m.FadeOpacity() != 0 {
		t.Errorf("transition should finish: transitioning=%v opacity=%v", m.Transitioning(), m.FadeOpacity())
	}
	if m.Stage() != 1 {
		t.Errorf("Stage() = %d, expected 1", m.Stage())
	}
}

func TestStageStopsAtMax(t *testing.T) {
	m := newTestManager(t, fixedConfig(), never())
	for i := 0; i < 800; i++ {
		m.Update(0)
	}
	if m.Stage() != 3 {
		t.Errorf("Stage() = %d, expected max stage 3", m.Stage())
	}
}

func TestStagePastTableUsesOverflow(t *testing.T) {
	cfg := fixedConfig()
	cfg.Session.MaxStage = 5
	cfg.Session.LengthSeconds = 120
	m := newTestManager(t, cfg, never())

	for i := 0; i < 700; i++ {
		m.Update(0)
	}
	if m.Stage() != 4 {
		t.Fatalf("Stage() = %d, expected 4", m.Stage())
	}
	if m.Difficulty() != cfg.Overflow {
		t.Errorf("Difficulty() = %+v, expected overflow %+v", m.Difficulty(), cfg.Overflow)
	}
	if m.StageConfig().Name != "Downtown" {
		t.Errorf("StageConfig() = %q, expected last stage assets", m.StageConfig().Name)
	}
}

func TestSpawnWarmupAndGap(t *testing.T) {
	m := newTestManager(t, fixedConfig(), always())

	// Stage 0 gap is 1200ms and lastSpawn starts at 0
	for i := 0; i < 12; i++ {
		m.Update(0)
	}
	if n := len(m.Obstacles()); n != 0 {
		t.Fatalf("%d obstacles before 1.2s", n)
	}

	m.Update(0)
	if n := len(m.Obstacles()); n != 1 {
		t.Fatalf("expected first spawn at 1.3s, got %d obstacles", n)
	}

	o := m.Obstacles()[0]
	if b := o.Bounds(); b.X != 794 || b.Y != 350 || b.W != 80 {
		t.Errorf("spawned at %+v, expected x=794 (moved once) y=350 w=80", b)
	}
	if o.Speed() != 6 {
		t.Errorf("speed = %v, expected 6", o.Speed())
	}

	for i := 0; i < 12; i++ {
		m.Update(0)
	}
	if n := len(m.Obstacles()); n != 1 {
		t.Fatalf("spawned again before the gap passed: %d", n)
	}
	m.Update(0)
	if n := len(m.Obstacles()); n != 2 {
		t.Errorf("expected second spawn at 2.6s, got %d", n)
	}
}

func TestNoSpawnsWhenRollsFail(t *testing.T) {
	m := newTestManager(t, fixedConfig(), never())
	for i := 0; i < 300; i++ {
		m.Update(0)
	}
	if len(m.Obstacles()) != 0 || len(m.Items()) != 0 {
		t.Errorf("expected no spawns, got %d obstacles %d items", len(m.Obstacles()), len(m.Items()))
	}
}

func TestDowntownPattern(t *testing.T) {
	cfg := fixedConfig()
	downtown := cfg.Stages[3]

	tests := []struct {
		name  string
		rolls []float64
		want  []core.Rect
	}{
		{"both", []float64{0.4, 0.5, 0.5}, []core.Rect{
			core.NewRect(800, 310, 150, 120),
			core.NewRect(1000, 310, 120, 120),
		}},
		{"walker only", []float64{0.6, 0.0, 1.0}, []core.Rect{
			core.NewRect(1100, 310, 120, 120),
		}},
		{"car only", []float64{0.1, 0.9}, []core.Rect{
			core.NewRect(800, 310, 150, 120),
		}},
		{"neither", []float64{0.5, 0.7}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cfg
			c.Stages = []config.StageConfig{downtown}
			m := newTestManager(t, c, &scriptRand{values: tc.rolls, fallback: 0.999})

			m.spawnObstacles(8)

			if len(m.Obstacles()) != len(tc.want) {
				t.Fatalf("got %d obstacles, expected %d", len(m.Obstacles()), len(tc.want))
			}
			for i, want := range tc.want {
				if got := m.Obstacles()[i].Bounds(); got != want {
					t.Errorf("obstacle %d at %+v, expected %+v", i, got, want)
				}
			}
		})
	}
}

func TestFallingSpawnRandomX(t *testing.T) {
	cfg := fixedConfig()
	cfg.Stages = []config.StageConfig{cfg.Stages[1]}
	m := newTestManager(t, cfg, &scriptRand{values: []float64{0.25}})

	m.spawnObstacles(7)

	if len(m.Obstacles()) != 1 {
		t.Fatalf("expected one falling obstacle, got %d", len(m.Obstacles()))
	}
	o := m.Obstacles()[0]
	if !o.Falling() {
		t.Error("hail should fall")
	}
	if b := o.Bounds(); b.X != 200 || b.Y != -100 {
		t.Errorf("spawned at %+v, expected (200, -100)", b)
	}
}

func TestCullAndTakeItems(t *testing.T) {
	cfg := fixedConfig()
	m := newTestManager(t, cfg, never())

	spec := cfg.Stages[0].Obstacles[0]
	m.AddObstacle(entity.NewObstacle(spec, -200, 350, 6, cfg.Physics, 0))
	m.AddObstacle(entity.NewObstacle(spec, 400, 350, 6, cfg.Physics, 0))
	m.AddItem(entity.NewItem(cfg.Items, 800, m.Ground(), func() float64 { return 0 }))

	m.Update(0)
	if len(m.Obstacles()) != 1 {
		t.Errorf("off-screen obstacle should be culled, %d left", len(m.Obstacles()))
	}

	taken := m.TakeItemsWhere(func(*entity.Item) bool { return true })
	if len(taken) != 1 || len(m.Items()) != 0 {
		t.Errorf("TakeItemsWhere took %d, %d left", len(taken), len(m.Items()))
	}
}

func TestSpeedFollowsScore(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	m := newTestManager(t, cfg, never())

	if got := m.Speed(0); got != 6 {
		t.Errorf("Speed(0) = %v, expected 6", got)
	}
	// Default ramp reaches +25% at score 1000
	if got := m.Speed(1000); got != 7.5 {
		t.Errorf("Speed(1000) = %v, expected 7.5", got)
	}
}

func TestResetAndResize(t *testing.T) {
	m := newTestManager(t, fixedConfig(), always())
	for i := 0; i < 200; i++ {
		m.Update(0)
	}

	m.Reset()
	if m.Elapsed() != 0 || m.Stage() != 0 || len(m.Obstacles()) != 0 || len(m.Items()) != 0 || m.Ticks() != 0 {
		t.Error("Reset should clear clock, stage and entities")
	}

	m.Resize(core.Viewport{Width: 1000, Height: 600})
	if m.Ground() != 550 {
		t.Errorf("Ground() = %v, expected 550", m.Ground())
	}
	if w, h := m.Size(); w != 1000 || h != 600 {
		t.Errorf("Size() = %vx%v", w, h)
	}
}

func TestClockDoesNotDriftAtSixtyHz(t *testing.T) {
	m, err := New(fixedConfig(), nil, never(), core.DefaultConfig(), testViewport)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	tests := []struct {
		tick          int
		stage         int
		transitioning bool
		cleared       bool
	}{
		{899, 0, false, false},
		{900, 0, true, false},  // 15s: fade out starts
		{928, 0, true, false},
		{929, 1, true, false},  // 30 ticks of fade out
		{958, 1, true, false},
		{959, 1, false, false}, // 30 ticks of fade in
		{1800, 1, true, false},
		{3599, 3, false, false},
		{3600, 3, false, true},
	}

	ticks := 0
	for _, tc := range tests {
		for ticks < tc.tick {
			m.Update(0)
			ticks++
		}
		if m.Elapsed() != time.Duration(tc.tick)*time.Second/60 {
			t.Errorf("tick %d: Elapsed() = %v", tc.tick, m.Elapsed())
		}
		if m.Stage() != tc.stage || m.Transitioning() != tc.transitioning || m.Cleared() != tc.cleared {
			t.Errorf("tick %d: stage=%d transitioning=%v cleared=%v, expected %d %v %v",
				tc.tick, m.Stage(), m.Transitioning(), m.Cleared(), tc.stage, tc.transitioning, tc.cleared)
		}
	}
}

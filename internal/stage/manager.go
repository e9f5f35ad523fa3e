// Package stage runs the time-gated stage progression of a run: it keeps the
// elapsed clock, switches stages behind a cross-fade, spawns obstacles and
// items from the stage table and culls what leaves the screen.
package stage

import (
	"errors"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/siraegi-run/internal/config"
	"github.com/vovakirdan/siraegi-run/internal/core"
	"github.com/vovakirdan/siraegi-run/internal/entity"
)

// Rand is the randomness source for spawn rolls. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// ErrNoRand is returned when a manager is built without a random source.
var ErrNoRand = errors.New("stage: random source is required")

// Manager owns the obstacles and items of a run and drives stage changes.
type Manager struct {
	cfg        config.RunnerConfig
	difficulty *config.DifficultyManager
	rng        Rand
	rt         core.RuntimeConfig

	width  float64
	height float64
	ground float64

	elapsed   time.Duration
	ticks     int
	stage     int
	lastSpawn time.Duration

	// Cross-fade state
	transitioning bool
	switched      bool
	fadeTicks     int // Ticks into the current half of the fade
	fadeOut       *gween.Tween
	fadeIn        *gween.Tween
	opacity       float64

	obstacles []*entity.Obstacle
	items     []*entity.Item
}

// New creates a stage manager for a viewport.
func New(cfg config.RunnerConfig, difficulty *config.DifficultyManager, rng Rand, rt core.RuntimeConfig, v core.Viewport) (*Manager, error) {
	if rng == nil {
		return nil, ErrNoRand
	}
	if difficulty == nil {
		difficulty = config.NewDifficultyManager(cfg.Difficulty)
	}
	m := &Manager{
		cfg:        cfg,
		difficulty: difficulty,
		rng:        rng,
		rt:         rt,
		obstacles:  make([]*entity.Obstacle, 0, 16),
		items:      make([]*entity.Item, 0, 8),
	}
	m.Resize(v)
	return m, nil
}

// Reset clears entities and restarts the clock at stage 0.
func (m *Manager) Reset() {
	m.elapsed = 0
	m.ticks = 0
	m.stage = 0
	m.lastSpawn = 0
	m.transitioning = false
	m.switched = false
	m.fadeTicks = 0
	m.fadeOut = nil
	m.fadeIn = nil
	m.opacity = 0
	m.obstacles = m.obstacles[:0]
	m.items = m.items[:0]
}

// Resize updates the world size. Entities keep their positions.
func (m *Manager) Resize(v core.Viewport) {
	m.width = v.Width
	m.height = v.Height
	m.ground = v.Height - m.cfg.Session.GroundMargin
}

// Update advances the stage clock by one tick. score feeds the speed ramp.
// The clock is the tick count, so it does not drift at rates that do not
// divide a second.
func (m *Manager) Update(score float64) {
	m.ticks++
	m.elapsed = m.rt.Elapsed(m.ticks)

	m.updateTransition()

	diff := m.Difficulty()
	if m.elapsed > m.cfg.Session.SpawnWarmup() && m.elapsed-m.lastSpawn > m.difficulty.SpawnGap(diff.MinSpawnGap(), int(score), m.ticks) {
		if m.rng.Float64() < diff.ObstacleChance {
			m.spawnObstacles(m.difficulty.Speed(diff.Speed, int(score), m.ticks))
			m.lastSpawn = m.elapsed
		}
	}

	if m.rng.Float64() < diff.ItemChance {
		m.items = append(m.items, entity.NewItem(m.cfg.Items, m.width, m.ground, m.rng.Float64))
	}

	for _, o := range m.obstacles {
		o.Update()
	}
	for _, it := range m.items {
		it.Update()
	}

	m.cull()
}

// updateTransition starts a cross-fade when the next stage is due and
// advances a running one. The stage index changes at the fade midpoint.
func (m *Manager) updateTransition() {
	if !m.transitioning {
		due := time.Duration(m.stage+1) * m.cfg.Session.StageInterval()
		if m.stage >= m.cfg.Session.MaxStage || m.elapsed < due {
			return
		}
		half := float32(m.cfg.Session.FadeDuration().Seconds() / 2)
		m.transitioning = true
		m.switched = false
		m.fadeTicks = 0
		m.fadeOut = gween.New(0, 1, half, ease.Linear)
		m.fadeIn = gween.New(1, 0, half, ease.Linear)
		m.opacity = 0
	}

	m.fadeTicks++
	t := float32(m.rt.Seconds(m.fadeTicks))
	if !m.switched {
		v, done := m.fadeOut.Set(t)
		m.opacity = float64(v)
		if done {
			m.stage++
			m.switched = true
			m.fadeTicks = 0
		}
		return
	}

	v, done := m.fadeIn.Set(t)
	m.opacity = float64(v)
	if done {
		m.transitioning = false
		m.switched = false
		m.opacity = 0
	}
}

// spawnObstacles fires the current stage's spawn pattern. Each entry rolls
// its own chance.
func (m *Manager) spawnObstacles(speed float64) {
	for _, spec := range m.StageConfig().Obstacles {
		if spec.Chance < 1 && m.rng.Float64() >= spec.Chance {
			continue
		}

		var x, y float64
		switch spec.SpawnX {
		case config.SpawnRandom:
			x = m.rng.Float64() * m.width
		default:
			x = m.width
		}
		if spec.OffsetMax > spec.OffsetMin {
			x += spec.OffsetMin + m.rng.Float64()*(spec.OffsetMax-spec.OffsetMin)
		} else {
			x += spec.OffsetMin
		}

		if spec.Kind == config.KindFall {
			y = spec.SpawnY
		} else {
			y = m.ground - spec.Lift
		}

		m.obstacles = append(m.obstacles, entity.NewObstacle(spec, x, y, speed, m.cfg.Physics, m.stage))
	}
}

// cull drops entities that have left the screen.
func (m *Manager) cull() {
	kept := m.obstacles[:0]
	for _, o := range m.obstacles {
		if !o.Offscreen(m.height) {
			kept = append(kept, o)
		}
	}
	clear(m.obstacles[len(kept):])
	m.obstacles = kept

	m.TakeItemsWhere(func(it *entity.Item) bool { return it.Offscreen() })
}

// TakeItemsWhere removes and returns items matching pred.
func (m *Manager) TakeItemsWhere(pred func(*entity.Item) bool) []*entity.Item {
	var taken []*entity.Item
	kept := m.items[:0]
	for _, it := range m.items {
		if pred(it) {
			taken = append(taken, it)
		} else {
			kept = append(kept, it)
		}
	}
	clear(m.items[len(kept):])
	m.items = kept
	return taken
}

// AddObstacle inserts an obstacle directly.
func (m *Manager) AddObstacle(o *entity.Obstacle) {
	m.obstacles = append(m.obstacles, o)
}

// AddItem inserts an item directly.
func (m *Manager) AddItem(it *entity.Item) {
	m.items = append(m.items, it)
}

// Obstacles returns the live obstacles. Callers may mutate the obstacles
// but not the slice.
func (m *Manager) Obstacles() []*entity.Obstacle {
	return m.obstacles
}

// Items returns the live items.
func (m *Manager) Items() []*entity.Item {
	return m.items
}

// Stage returns the current stage index.
func (m *Manager) Stage() int {
	return m.stage
}

// StageConfig returns the table entry for the current stage. Stages past
// the table reuse the last entry.
func (m *Manager) StageConfig() config.StageConfig {
	if len(m.cfg.Stages) == 0 {
		return config.StageConfig{}
	}
	return m.cfg.Stages[min(m.stage, len(m.cfg.Stages)-1)]
}

// Difficulty returns the spawn tuple for the current stage, or the
// overflow tuple past the table.
func (m *Manager) Difficulty() config.StageDifficulty {
	if m.stage < len(m.cfg.Stages) {
		return m.cfg.Stages[m.stage].Difficulty
	}
	return m.cfg.Overflow
}

// Speed returns the obstacle speed new spawns would get at score.
func (m *Manager) Speed(score float64) float64 {
	return m.difficulty.Speed(m.Difficulty().Speed, int(score), m.ticks)
}

// Elapsed returns the simulated run time.
func (m *Manager) Elapsed() time.Duration {
	return m.elapsed
}

// Progress returns elapsed over session length, clamped to [0, 1].
func (m *Manager) Progress() float64 {
	length := m.cfg.Session.Length()
	if length <= 0 {
		return 1
	}
	return core.ClampF(float64(m.elapsed)/float64(length), 0, 1)
}

// FadeOpacity returns the cross-fade cover opacity in [0, 1].
func (m *Manager) FadeOpacity() float64 {
	return m.opacity
}

// Transitioning reports whether a cross-fade is running.
func (m *Manager) Transitioning() bool {
	return m.transitioning
}

// Cleared reports whether the session length has been reached.
func (m *Manager) Cleared() bool {
	return m.elapsed >= m.cfg.Session.Length()
}

// Ground returns the ground line y.
func (m *Manager) Ground() float64 {
	return m.ground
}

// Size returns the world size.
func (m *Manager) Size() (w, h float64) {
	return m.width, m.height
}

// Ticks returns the number of Update calls since the last reset.
func (m *Manager) Ticks() int {
	return m.ticks
}

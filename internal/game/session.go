// Package game implements a Siraegi Run session: the screen flow from the
// title through the run to game over or clear, scoring, hits and the
// per-tick orchestration of the player and the stage manager.
package game

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/siraegi-run/internal/asset"
	"github.com/vovakirdan/siraegi-run/internal/config"
	"github.com/vovakirdan/siraegi-run/internal/core"
	"github.com/vovakirdan/siraegi-run/internal/entity"
	"github.com/vovakirdan/siraegi-run/internal/render"
	"github.com/vovakirdan/siraegi-run/internal/stage"
)

// ErrNoAssets is returned when a session is built without a sprite catalog.
var ErrNoAssets = errors.New("game: asset catalog is required")

// Options carries the collaborators of a session.
type Options struct {
	Screen    *core.Screen   // Draw surface, required
	Assets    *asset.Catalog // Sprites, required
	Logger    *log.Logger    // Nil discards logs
	Rand      stage.Rand     // Nil seeds math/rand from RuntimeConfig.Seed on Reset
	SkipIntro bool           // Go straight from the title to the run
}

// FloatingText is a score popup that rises and fades.
type FloatingText struct {
	Text  string
	X, Y  float64
	Alpha float64
	DY    float64
	Color core.Color
}

// Result summarises a finished run.
type Result struct {
	Score    int
	Hits     int
	Stage    int
	Cleared  bool
	Duration time.Duration
}

// Session is one player's game. It is not safe for concurrent use; the host
// must serialise HandleAction, Step and Render.
type Session struct {
	cfg        config.RunnerConfig
	opts       Options
	logger     *log.Logger
	canvas     *render.Canvas
	assets     *asset.Catalog
	collider   core.Collider
	difficulty *config.DifficultyManager

	runtime  core.RuntimeConfig
	viewport core.Viewport
	rng      stage.Rand

	state     State
	introPage int
	stages    *stage.Manager
	player    *entity.Player
	runTicks  int     // Ticks that accrued time score
	bonus     float64 // Pickups minus penalties, keeps the total at or above 0
	hits      int
	texts     []FloatingText
	lastStage int
}

// New creates a session on the title screen.
func New(cfg config.RunnerConfig, rt core.RuntimeConfig, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: invalid config: %w", err)
	}
	if opts.Assets == nil {
		return nil, ErrNoAssets
	}
	canvas, err := render.NewCanvas(opts.Screen, cfg.Display.CellWidth, cfg.Display.CellHeight)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		cfg:        cfg,
		opts:       opts,
		logger:     logger,
		canvas:     canvas,
		assets:     opts.Assets,
		collider:   core.Collider{ShrinkA: cfg.Collision.PlayerShrink, ShrinkB: cfg.Collision.ObstacleShrink},
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
	if err := s.build(rt); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the unique identifier for this game.
func (s *Session) ID() string {
	return "siraegi"
}

// Reset rebuilds the session for a runtime config and returns to the
// title screen. Calling it twice in a row yields the same state.
func (s *Session) Reset(rt core.RuntimeConfig) {
	if err := s.build(rt); err != nil {
		s.logger.Error("reset failed", "err", err)
	}
}

// build creates the run collaborators for rt.
func (s *Session) build(rt core.RuntimeConfig) error {
	s.runtime = rt
	s.viewport = core.NewViewport(
		float64(rt.ScreenW)*s.cfg.Display.CellWidth,
		float64(rt.ScreenH)*s.cfg.Display.CellHeight,
		0,
	)

	s.rng = s.opts.Rand
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(rt.Seed))
	}

	stages, err := stage.New(s.cfg, s.difficulty, s.rng, rt, s.viewport)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	s.stages = stages
	s.player = entity.NewPlayer(s.cfg.Player, s.cfg.Physics, rt, s.stages.Ground())

	s.state = StateStart
	s.introPage = 0
	s.resetRun()
	return nil
}

// resetRun clears score, hits and entities for a fresh run.
func (s *Session) resetRun() {
	s.runTicks = 0
	s.bonus = 0
	s.hits = 0
	s.texts = s.texts[:0]
	s.lastStage = 0
	s.stages.Reset()
	s.player.Reset(s.stages.Ground())
}

// Resize applies a new viewport without resetting the run.
func (s *Session) Resize(v core.Viewport) {
	oldGround := s.stages.Ground()
	s.viewport = v
	s.stages.Resize(v)
	s.player.Shift(s.stages.Ground() - oldGround)
}

// Transition moves to state to if the flow allows it.
func (s *Session) Transition(to State) error {
	if !CanTransition(s.state, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.state, to)
	}
	s.logger.Debug("state change", "from", s.state, "to", to)
	s.state = to
	return nil
}

// enter transitions to state to and logs a refused change.
func (s *Session) enter(to State) {
	if err := s.Transition(to); err != nil {
		s.logger.Warn("state change refused", "err", err)
	}
}

// HandleAction applies an input action immediately. Actions that make no
// sense in the current state are ignored.
func (s *Session) HandleAction(a core.Action) {
	switch s.state {
	case StateStart:
		if a == core.ActionConfirm || a == core.ActionJump {
			s.leaveTitle()
		}

	case StateIntro:
		if a == core.ActionConfirm || a == core.ActionJump {
			s.introPage++
			if s.introPage >= len(s.cfg.Session.Intro) {
				s.beginRun()
				return
			}
			s.enter(StateIntro)
		}

	case StatePlaying:
		switch a {
		case core.ActionConfirm, core.ActionJump:
			s.player.Jump()
		case core.ActionSlide:
			s.player.Slide(true, s.stages.Ground())
		case core.ActionPause:
			s.enter(StatePaused)
		}

	case StatePaused:
		if a == core.ActionPause || a == core.ActionConfirm {
			s.enter(StatePlaying)
		}

	case StateGameOver, StateClear:
		if a == core.ActionConfirm || a == core.ActionRestart {
			s.restart()
		}
	}
}

// leaveTitle shows the intro screens, or starts the run when there are none.
func (s *Session) leaveTitle() {
	if s.opts.SkipIntro || len(s.cfg.Session.Intro) == 0 {
		s.beginRun()
		return
	}
	s.introPage = 0
	s.enter(StateIntro)
}

// beginRun enters the playing state with a fresh run.
func (s *Session) beginRun() {
	s.resetRun()
	if err := s.Transition(StatePlaying); err != nil {
		s.logger.Warn("cannot start run", "err", err)
		return
	}
	s.logger.Info("run started", "stage", s.stages.StageConfig().Name)
}

// restart leaves a finished run for the title or straight into a new run.
func (s *Session) restart() {
	if s.cfg.Session.RestartTo == config.RestartToPlaying {
		s.beginRun()
		return
	}
	s.resetRun()
	s.introPage = 0
	s.enter(StateStart)
}

// Step advances the run by one tick. Outside the playing state it does nothing.
func (s *Session) Step() core.StepResult {
	if s.state != StatePlaying {
		return core.StepResult{State: s.State()}
	}

	s.stages.Update(s.Score())
	if st := s.stages.Stage(); st != s.lastStage {
		s.lastStage = st
		s.logger.Debug("stage change", "stage", st, "name", s.stages.StageConfig().Name)
	}

	if s.stages.Cleared() {
		s.finish(StateClear)
		return core.StepResult{State: s.State()}
	}

	s.runTicks++

	ground := s.stages.Ground()
	s.player.Update(ground)

	s.checkObstacles()
	s.collectItems()
	s.ageTexts()

	if s.hits >= s.cfg.Session.MaxHits {
		s.finish(StateGameOver)
	}

	return core.StepResult{State: s.State()}
}

// checkObstacles applies hits from overlapping obstacles. Invincible
// players and fading obstacles never collide.
func (s *Session) checkObstacles() {
	for _, o := range s.stages.Obstacles() {
		if s.player.Invincible() || o.Fading() {
			continue
		}
		pb := s.player.Bounds()
		if !s.collider.Overlaps(pb, o.Bounds()) {
			continue
		}

		s.hits++
		s.player.Hit()
		s.addScore(-s.cfg.Session.HitPenalty)
		s.addText(fmt.Sprintf("-%g", s.cfg.Session.HitPenalty), core.ColorBrightRed)
		if o.Falling() {
			o.MarkFading()
		}
		s.logger.Debug("hit", "hits", s.hits, "sprite", o.Sprite())
	}
}

// collectItems removes touched items and awards the bonus.
func (s *Session) collectItems() {
	pb := s.player.Bounds()
	taken := s.stages.TakeItemsWhere(func(it *entity.Item) bool {
		return s.collider.Overlaps(pb, it.Bounds())
	})
	for range taken {
		s.addScore(s.cfg.Items.Bonus)
		s.addText(fmt.Sprintf("+%g", s.cfg.Items.Bonus), core.ColorBrightYellow)
		s.logger.Debug("pickup", "score", int(s.Score()))
	}
}

// timeScore is the score earned by surviving, from the tick count.
func (s *Session) timeScore() float64 {
	return s.cfg.Session.ScorePerSecond * float64(s.runTicks) / float64(s.runtime.Rate())
}

// addScore applies a pickup or penalty, flooring the total at 0.
func (s *Session) addScore(delta float64) {
	total := math.Max(0, s.Score()+delta)
	s.bonus = total - s.timeScore()
}

// addText spawns a popup above the player's head.
func (s *Session) addText(text string, color core.Color) {
	pb := s.player.Bounds()
	s.texts = append(s.texts, FloatingText{
		Text:  text,
		X:     pb.X + pb.W/2,
		Y:     pb.Y - 20,
		Alpha: 1,
		DY:    -s.cfg.Session.TextRise,
		Color: color,
	})
}

// ageTexts moves popups up, fades them and drops the invisible ones.
func (s *Session) ageTexts() {
	kept := s.texts[:0]
	for _, t := range s.texts {
		t.Y += t.DY
		t.Alpha -= s.cfg.Session.TextFade
		if t.Alpha > 0 {
			kept = append(kept, t)
		}
	}
	s.texts = kept
}

// finish ends the run in a terminal state.
func (s *Session) finish(to State) {
	if err := s.Transition(to); err != nil {
		s.logger.Warn("cannot finish run", "err", err)
		return
	}
	r := s.Result()
	s.logger.Info("run finished", "cleared", r.Cleared, "score", r.Score, "hits", r.Hits, "stage", r.Stage)
}

// State returns the current game state.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:    int(s.Score()),
		Hits:     s.hits,
		Stage:    s.stages.Stage(),
		GameOver: s.state.Terminal(),
		Cleared:  s.state == StateClear,
		Paused:   s.state == StatePaused,
		Playing:  s.state == StatePlaying,
	}
}

// Result summarises the current run.
func (s *Session) Result() Result {
	return Result{
		Score:    int(s.Score()),
		Hits:     s.hits,
		Stage:    s.stages.Stage(),
		Cleared:  s.state == StateClear,
		Duration: s.stages.Elapsed(),
	}
}

// Phase returns the screen-flow state.
func (s *Session) Phase() State { return s.state }

// IntroPage returns the index of the intro screen being shown.
func (s *Session) IntroPage() int { return s.introPage }

// Score returns the exact score.
func (s *Session) Score() float64 { return s.timeScore() + s.bonus }

// Hits returns the obstacle hits taken this run.
func (s *Session) Hits() int { return s.hits }

// Texts returns the live score popups.
func (s *Session) Texts() []FloatingText { return s.texts }

// Player returns the player entity.
func (s *Session) Player() *entity.Player { return s.player }

// Stages returns the stage manager.
func (s *Session) Stages() *stage.Manager { return s.stages }

// Viewport returns the current logical viewport.
func (s *Session) Viewport() core.Viewport { return s.viewport }

// Package entity holds the moving things in a run: the player, obstacles
// and collectible items. All positions are logical pixels with y growing
// downward; every Update call is one simulation tick.
package entity

import (
	"github.com/vovakirdan/siraegi-run/internal/config"
	"github.com/vovakirdan/siraegi-run/internal/core"
)

// flashPeriod is the invincibility blink cycle in ticks.
const flashPeriod = 10

// Player is the runner. It jumps (twice within a short window), slides
// while grounded and blinks while invincible after a hit.
type Player struct {
	cfg  config.PlayerConfig
	phys config.PhysicsConfig

	x, y, vy float64
	w, h     float64

	jumping        bool
	jumpCount      int
	ticksSinceJump int

	sliding    bool
	slideTicks int // Countdown until the slide releases itself

	invincible bool
	invTicks   int
	flash      bool

	// Tick counts derived from durations
	doubleJumpWindow int
	slideDuration    int
}

// NewPlayer creates a player standing on ground.
func NewPlayer(cfg config.PlayerConfig, phys config.PhysicsConfig, rt core.RuntimeConfig, ground float64) *Player {
	p := &Player{
		cfg:              cfg,
		phys:             phys,
		doubleJumpWindow: rt.Ticks(phys.DoubleJumpWindow()),
		slideDuration:    max(1, rt.Ticks(phys.SlideDuration())),
	}
	p.Reset(ground)
	return p
}

// Reset returns the player to its starting pose on ground.
func (p *Player) Reset(ground float64) {
	p.x = p.cfg.X
	p.w = p.cfg.Width
	p.h = p.cfg.Height
	p.y = ground - p.h
	p.vy = 0
	p.jumping = false
	p.jumpCount = 0
	p.ticksSinceJump = 0
	p.sliding = false
	p.slideTicks = 0
	p.invincible = false
	p.invTicks = 0
	p.flash = false
}

// Jump applies an upward impulse. The first jump always fires from the
// ground; the second only while airborne within the double-jump window.
// Requests while sliding or out of jumps are ignored.
func (p *Player) Jump() {
	if p.sliding || p.jumpCount >= p.phys.MaxJumps {
		return
	}

	if p.jumpCount == 0 {
		p.vy = p.phys.JumpImpulse
	} else {
		if p.ticksSinceJump > p.doubleJumpWindow {
			return
		}
		p.vy = p.phys.DoubleJumpImpulse
	}

	p.jumping = true
	p.jumpCount++
	p.ticksSinceJump = 0
}

// Slide starts or stops the slide. It only takes effect within
// ground_epsilon of ground; in the air it clears the slide instead.
// Starting a slide arms a countdown that releases it automatically.
func (p *Player) Slide(active bool, ground float64) {
	if !p.OnGround(ground) {
		p.sliding = false
		p.slideTicks = 0
		return
	}

	p.sliding = active
	if active {
		p.slideTicks = p.slideDuration
	} else {
		p.slideTicks = 0
	}
}

// Hit starts the invincibility window. A zero-length window does nothing.
func (p *Player) Hit() {
	if p.phys.InvincibleTicks <= 0 {
		return
	}
	p.invincible = true
	p.invTicks = p.phys.InvincibleTicks
}

// Update advances the player by one tick.
func (p *Player) Update(ground float64) {
	if p.jumping {
		p.ticksSinceJump++
	}

	// Slide countdown
	if p.sliding {
		p.slideTicks--
		if p.slideTicks <= 0 {
			p.Slide(false, ground)
		}
	}

	p.h = p.cfg.Height
	if p.sliding {
		p.h = p.cfg.SlideHeight
	}

	// Gravity
	p.vy += p.phys.Gravity
	p.y += p.vy

	// Landing
	if p.y >= ground-p.h {
		p.y = ground - p.h
		p.vy = 0
		p.jumping = false
		p.jumpCount = 0
		p.ticksSinceJump = 0
	}

	// Slide pose hugs the ground; boost forward, drift back when released
	if p.sliding {
		p.y = ground - p.h
		if p.x < p.cfg.X+p.phys.SlideMaxOffset {
			p.x = min(p.x+p.phys.SlideBoost, p.cfg.X+p.phys.SlideMaxOffset)
		}
	} else if p.x > p.cfg.X {
		p.x = max(p.x-p.phys.SlideRecover, p.cfg.X)
	}

	// Invincibility blink
	if p.invincible {
		p.invTicks--
		p.flash = p.invTicks%flashPeriod < flashPeriod/2
		if p.invTicks <= 0 {
			p.invincible = false
			p.flash = false
		}
	}
}

// Shift moves the player vertically, keeping it on a ground line that moved.
func (p *Player) Shift(dy float64) {
	p.y += dy
}

// OnGround reports whether the player stands within ground_epsilon of ground.
func (p *Player) OnGround(ground float64) bool {
	return core.AbsF(p.y-(ground-p.h)) < p.phys.GroundEpsilon
}

// Bounds returns the player's box.
func (p *Player) Bounds() core.Rect {
	return core.NewRect(p.x, p.y, p.w, p.h)
}

// X returns the left edge.
func (p *Player) X() float64 { return p.x }

// Y returns the top edge.
func (p *Player) Y() float64 { return p.y }

// VY returns the vertical velocity.
func (p *Player) VY() float64 { return p.vy }

// Jumping reports whether the player is airborne from a jump.
func (p *Player) Jumping() bool { return p.jumping }

// JumpCount returns the number of jumps since the last landing.
func (p *Player) JumpCount() int { return p.jumpCount }

// Sliding reports whether the slide is active.
func (p *Player) Sliding() bool { return p.sliding }

// SlideTicks returns the ticks left before the slide releases.
func (p *Player) SlideTicks() int { return p.slideTicks }

// Invincible reports whether hits are currently ignored.
func (p *Player) Invincible() bool { return p.invincible }

// InvincibleTicks returns the ticks left in the invincibility window.
func (p *Player) InvincibleTicks() int { return p.invTicks }

// Flash reports the blink phase while invincible.
func (p *Player) Flash() bool { return p.flash }

package entity

import (
	"github.com/vovakirdan/siraegi-run/internal/config"
	"github.com/vovakirdan/siraegi-run/internal/core"
)

// Obstacle is either a ground obstacle sliding left or a falling one
// dropping with accelerating speed. Falling obstacles fade out after a hit.
type Obstacle struct {
	rect   core.Rect
	fall   bool
	speed  float64 // Horizontal speed (ground)
	vy     float64 // Vertical speed (fall)
	accel  float64
	fade   float64 // Alpha lost per tick while fading
	fading bool
	alpha  float64

	sprite string
	color  core.Color
	stage  int
}

// NewObstacle creates an obstacle from a spawn spec at (x, y).
func NewObstacle(spec config.ObstacleSpec, x, y, speed float64, phys config.PhysicsConfig, stage int) *Obstacle {
	color, _ := core.ParseColor(spec.Color)
	o := &Obstacle{
		rect:   core.NewRect(x, y, spec.Width, spec.Height),
		fall:   spec.Kind == config.KindFall,
		speed:  speed,
		fade:   phys.FadeStep,
		alpha:  1,
		sprite: spec.Sprite,
		color:  color,
		stage:  stage,
	}
	if o.fall {
		o.vy = phys.FallStartSpeed
		o.accel = phys.FallAcceleration
	}
	return o
}

// Update advances the obstacle by one tick.
func (o *Obstacle) Update() {
	if o.fall {
		o.rect.Y += o.vy
		o.vy += o.accel
	} else {
		o.rect.X -= o.speed
	}

	if o.fading {
		o.alpha -= o.fade
		if o.alpha < 0 {
			o.alpha = 0
		}
	}
}

// MarkFading starts the fade-out. Fading obstacles no longer collide.
func (o *Obstacle) MarkFading() {
	o.fading = true
}

// Offscreen reports whether the obstacle can be dropped: fully faded,
// past the left edge, or fallen below height.
func (o *Obstacle) Offscreen(height float64) bool {
	return o.alpha <= 0 || o.rect.Right() < 0 || o.rect.Y-o.rect.H > height
}

// Bounds returns the obstacle's box.
func (o *Obstacle) Bounds() core.Rect { return o.rect }

// Falling reports whether this is a falling obstacle.
func (o *Obstacle) Falling() bool { return o.fall }

// Fading reports whether the fade-out has started.
func (o *Obstacle) Fading() bool { return o.fading }

// Alpha returns the current opacity.
func (o *Obstacle) Alpha() float64 { return o.alpha }

// Speed returns the horizontal speed.
func (o *Obstacle) Speed() float64 { return o.speed }

// VY returns the vertical speed.
func (o *Obstacle) VY() float64 { return o.vy }

// Sprite returns the sprite name.
func (o *Obstacle) Sprite() string { return o.sprite }

// Color returns the draw colour.
func (o *Obstacle) Color() core.Color { return o.color }

// Stage returns the stage index that spawned the obstacle.
func (o *Obstacle) Stage() int { return o.stage }

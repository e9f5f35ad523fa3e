package entity

import (
	"github.com/vovakirdan/siraegi-run/internal/config"
	"github.com/vovakirdan/siraegi-run/internal/core"
)

// Item is a round collectible scrolling left. x and y are its centre.
type Item struct {
	x, y   float64
	r      float64
	speed  float64
	sprite string
	color  core.Color
}

// NewItem spawns an item past the right edge of a world width wide.
// roll returns uniform values in [0, 1); it is called once for x and once
// for y, in that order. The centre lands between the double-jump apex and
// min_clearance above ground.
func NewItem(cfg config.ItemConfig, width, ground float64, roll func() float64) *Item {
	r := width * cfg.RadiusRatio
	x := width + roll()*width

	highest := ground - cfg.SingleJumpHeight*2
	lowest := ground - r - cfg.MinClearance
	y := roll()*(lowest-highest) + highest

	color, _ := core.ParseColor(cfg.Color)
	return &Item{
		x:      x,
		y:      y,
		r:      r,
		speed:  cfg.Speed,
		sprite: cfg.Sprite,
		color:  color,
	}
}

// Update moves the item left by its speed.
func (i *Item) Update() {
	i.x -= i.speed
}

// Offscreen reports whether the item has scrolled past the left edge.
func (i *Item) Offscreen() bool {
	return i.x+i.r*2 < 0
}

// Bounds returns the square around the item's circle.
func (i *Item) Bounds() core.Rect {
	return core.NewRect(i.x-i.r, i.y-i.r, i.r*2, i.r*2)
}

// Center returns the centre point.
func (i *Item) Center() (x, y float64) { return i.x, i.y }

// Radius returns the circle radius.
func (i *Item) Radius() float64 { return i.r }

// Sprite returns the sprite name.
func (i *Item) Sprite() string { return i.sprite }

// Color returns the draw colour.
func (i *Item) Color() core.Color { return i.color }

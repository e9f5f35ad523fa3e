package core

// Hitbox factors applied before overlap tests. Visual bounds are larger than
// what counts as a hit, so grazing contact is forgiven.
const (
	DefaultActorShrink    = 0.8
	DefaultObstacleShrink = 0.7
)

// Collider tests two bounding boxes for overlap after shrinking each one
// around its center.
type Collider struct {
	ShrinkA float64 // Factor for the first box (the player)
	ShrinkB float64 // Factor for the second box (obstacle or item)
}

// DefaultCollider returns a collider with the standard shrink factors.
func DefaultCollider() Collider {
	return Collider{ShrinkA: DefaultActorShrink, ShrinkB: DefaultObstacleShrink}
}

// Overlaps reports whether a and b overlap once shrunk.
// Non-positive factors are treated as 1.
func (c Collider) Overlaps(a, b Rect) bool {
	return a.Shrink(factorOrOne(c.ShrinkA)).Intersects(b.Shrink(factorOrOne(c.ShrinkB)))
}

func factorOrOne(f float64) float64 {
	if f <= 0 {
		return 1
	}
	return f
}

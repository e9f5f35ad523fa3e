package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionConfirm        // Space, Enter, Tab, tap - advance screens, jump while playing, restart
	ActionJump           // Up, W, swipe up - jump while playing
	ActionSlide          // Right, D, swipe right - slide while playing
	ActionPause          // P - pause/unpause
	ActionRestart        // R - restart after the run ends
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionJump:
		return "Jump"
	case ActionSlide:
		return "Slide"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Gesture thresholds in logical pixels.
const (
	SwipeThreshold = 50
	TapDeadZone    = 10
)

// LongPress is how long a still pointer must be held to slide instead of tap.
const LongPress = 500 * time.Millisecond

// GestureKind classifies a completed pointer press.
type GestureKind int

const (
	GestureNone GestureKind = iota
	GestureTap
	GestureSwipeRight
	GestureSwipeUp
	GestureLongPress
)

// Gesture is a press-to-release pointer movement.
type Gesture struct {
	DX, DY float64       // Release position minus press position
	Held   time.Duration // How long the pointer was down
}

// Classify maps the gesture to a kind. Horizontal swipes win when |dx| > |dy|
// and dx passes the threshold; vertical swipes need dy below the negative
// threshold; anything within the dead zone on both axes is a tap, or a long
// press once held for LongPress.
func (g Gesture) Classify() GestureKind {
	adx, ady := AbsF(g.DX), AbsF(g.DY)

	switch {
	case adx > ady && g.DX > SwipeThreshold:
		return GestureSwipeRight
	case ady > adx && g.DY < -SwipeThreshold:
		return GestureSwipeUp
	case adx < TapDeadZone && ady < TapDeadZone:
		if g.Held >= LongPress {
			return GestureLongPress
		}
		return GestureTap
	default:
		return GestureNone
	}
}

// Action returns the game action a gesture triggers.
func (g Gesture) Action() Action {
	switch g.Classify() {
	case GestureTap:
		return ActionConfirm
	case GestureSwipeUp:
		return ActionJump
	case GestureSwipeRight, GestureLongPress:
		return ActionSlide
	default:
		return ActionNone
	}
}

// ConfirmLatch turns a stream of press/release events into discrete presses.
// Repeated presses while held are dropped, so auto-repeat does not fire twice.
type ConfirmLatch struct {
	held      bool
	pressedAt time.Time
	pressX    float64
	pressY    float64
}

// Press records a press at the given time and position.
// Returns false if the latch was already held.
func (l *ConfirmLatch) Press(now time.Time, x, y float64) bool {
	if l.held {
		return false
	}
	l.held = true
	l.pressedAt = now
	l.pressX, l.pressY = x, y
	return true
}

// Release ends a press and returns the resulting gesture.
// ok is false if there was no matching press.
func (l *ConfirmLatch) Release(now time.Time, x, y float64) (g Gesture, ok bool) {
	if !l.held {
		return Gesture{}, false
	}
	l.held = false
	return Gesture{
		DX:   x - l.pressX,
		DY:   y - l.pressY,
		Held: now.Sub(l.pressedAt),
	}, true
}

// Held reports whether a press is in progress.
func (l *ConfirmLatch) Held() bool {
	return l.held
}

// KeyRepeatWindow drops repeats of a jump key closer than this. Terminals
// report a held key as a burst of presses, and the second one would spend
// the double jump. It stays well under the double-jump window.
const KeyRepeatWindow = 150 * time.Millisecond

// RepeatGuard filters terminal auto-repeat for Confirm and Jump.
type RepeatGuard struct {
	Window time.Duration
	last   map[Action]time.Time
}

// Allow reports whether an action pressed at now should be handled.
// Every press refreshes the timestamp, so a key held down fires once.
func (g *RepeatGuard) Allow(now time.Time, a Action) bool {
	if a != ActionConfirm && a != ActionJump {
		return true
	}
	if g.last == nil {
		g.last = make(map[Action]time.Time)
	}
	prev, seen := g.last[a]
	g.last[a] = now
	return !seen || now.Sub(prev) >= g.Window
}

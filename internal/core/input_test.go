package core

import (
	"testing"
	"time"
)

func TestGestureClassify(t *testing.T) {
	tests := []struct {
		name     string
		dx, dy   float64
		held     time.Duration
		expected GestureKind
		action   Action
	}{
		{"tap", 3, -4, 0, GestureTap, ActionConfirm},
		{"swipe right", 120, 20, 0, GestureSwipeRight, ActionSlide},
		{"short right drag", 40, 5, 0, GestureNone, ActionNone},
		{"swipe left ignored", -120, 10, 0, GestureNone, ActionNone},
		{"swipe up", 10, -90, 0, GestureSwipeUp, ActionJump},
		{"swipe down ignored", 0, 90, 0, GestureNone, ActionNone},
		{"diagonal favours larger axis", 80, -60, 0, GestureSwipeRight, ActionSlide},
		{"dead zone edge", 10, 0, 0, GestureNone, ActionNone},
		{"short hold is a tap", 0, 0, 499 * time.Millisecond, GestureTap, ActionConfirm},
		{"long press slides", 2, 3, LongPress, GestureLongPress, ActionSlide},
		{"slow swipe stays a swipe", 0, -90, time.Second, GestureSwipeUp, ActionJump},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := Gesture{DX: tc.dx, DY: tc.dy, Held: tc.held}
			if got := g.Classify(); got != tc.expected {
				t.Errorf("Classify() = %v, expected %v", got, tc.expected)
			}
			if got := g.Action(); got != tc.action {
				t.Errorf("Action() = %v, expected %v", got, tc.action)
			}
		})
	}
}

func TestConfirmLatch(t *testing.T) {
	var l ConfirmLatch
	start := time.Unix(100, 0)

	if !l.Press(start, 10, 10) {
		t.Fatal("first press should register")
	}
	if l.Press(start.Add(50*time.Millisecond), 10, 10) {
		t.Error("press while held should be dropped")
	}
	if !l.Held() {
		t.Error("latch should be held")
	}

	g, ok := l.Release(start.Add(200*time.Millisecond), 15, -70)
	if !ok {
		t.Fatal("release should match the press")
	}
	if g.Held != 200*time.Millisecond {
		t.Errorf("Held = %v, expected 200ms", g.Held)
	}
	if g.DX != 5 || g.DY != -80 {
		t.Errorf("delta = (%v, %v), expected (5, -80)", g.DX, g.DY)
	}

	if _, ok := l.Release(start.Add(time.Second), 0, 0); ok {
		t.Error("release without press should be ignored")
	}
}

func TestRepeatGuard(t *testing.T) {
	g := RepeatGuard{Window: KeyRepeatWindow}
	start := time.Unix(100, 0)
	at := func(ms int) time.Time { return start.Add(time.Duration(ms) * time.Millisecond) }

	tests := []struct {
		ms     int
		action Action
		want   bool
	}{
		{0, ActionConfirm, true},
		{30, ActionConfirm, false}, // auto-repeat
		{60, ActionConfirm, false}, // still held
		{60, ActionSlide, true},    // not guarded
		{60, ActionJump, true},     // tracked separately
		{90, ActionJump, false},    // auto-repeat
		{260, ActionConfirm, true}, // released and pressed again
		{260, ActionSlide, true},   // not guarded
		{270, ActionPause, true},   // not guarded
		{600, ActionConfirm, true},
	}

	for _, tc := range tests {
		if got := g.Allow(at(tc.ms), tc.action); got != tc.want {
			t.Errorf("Allow(%dms, %v) = %v, expected %v", tc.ms, tc.action, got, tc.want)
		}
	}
}

func TestActionString(t *testing.T) {
	if ActionSlide.String() != "Slide" {
		t.Errorf("ActionSlide.String() = %q", ActionSlide.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action string = %q", Action(99).String())
	}
}

func TestRuntimeConfigTicks(t *testing.T) {
	cfg := RuntimeConfig{TickRate: 60}

	if got := cfg.Ticks(500 * time.Millisecond); got != 30 {
		t.Errorf("Ticks(500ms) = %d, expected 30", got)
	}
	if got := cfg.Ticks(time.Second); got != 60 {
		t.Errorf("Ticks(1s) = %d, expected 60", got)
	}

	slow := RuntimeConfig{TickRate: 10}
	if slow.TickDuration() != 100*time.Millisecond {
		t.Errorf("TickDuration() = %v, expected 100ms", slow.TickDuration())
	}

	if (RuntimeConfig{}).TickDuration() != time.Second/60 {
		t.Error("zero tick rate should fall back to 60Hz")
	}
}

func TestRuntimeConfigElapsed(t *testing.T) {
	tests := []struct {
		rate  int
		ticks int
		want  time.Duration
	}{
		{60, 60, time.Second},
		{60, 360, 6 * time.Second},
		{60, 3600, 60 * time.Second},
		{60, 1, 16666666 * time.Nanosecond},
		{30, 45, 1500 * time.Millisecond},
		{0, 120, 2 * time.Second},
	}

	for _, tc := range tests {
		rt := RuntimeConfig{TickRate: tc.rate}
		if got := rt.Elapsed(tc.ticks); got != tc.want {
			t.Errorf("rate %d: Elapsed(%d) = %v, expected %v", tc.rate, tc.ticks, got, tc.want)
		}
	}
	if got := (RuntimeConfig{TickRate: 60}).Seconds(30); got != 0.5 {
		t.Errorf("Seconds(30) = %v, expected 0.5", got)
	}
}

func TestNewViewportSafePadding(t *testing.T) {
	v := NewViewport(800, 480, 0)
	if v.SafePadding != MinSafePadding {
		t.Errorf("SafePadding = %v, expected %v", v.SafePadding, MinSafePadding)
	}

	v = NewViewport(800, 480, 44)
	if v.SafePadding != 44 {
		t.Errorf("SafePadding = %v, expected 44", v.SafePadding)
	}
}

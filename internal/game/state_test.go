package game

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateStart, StateIntro, true},
		{StateStart, StatePlaying, true},
		{StateStart, StateGameOver, false},
		{StateIntro, StateIntro, true},
		{StateIntro, StatePlaying, true},
		{StateIntro, StatePaused, false},
		{StatePlaying, StatePaused, true},
		{StatePlaying, StateGameOver, true},
		{StatePlaying, StateClear, true},
		{StatePlaying, StateStart, false},
		{StatePaused, StatePlaying, true},
		{StatePaused, StateGameOver, false},
		{StateGameOver, StateStart, true},
		{StateGameOver, StatePlaying, true},
		{StateGameOver, StateClear, false},
		{StateClear, StateStart, true},
		{StateClear, StatePlaying, true},
		{StateClear, StatePaused, false},
	}

	for _, tc := range tests {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, expected %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateStart, "start"},
		{StateIntro, "intro"},
		{StatePlaying, "playing"},
		{StatePaused, "paused"},
		{StateGameOver, "gameover"},
		{StateClear, "clear"},
		{State(42), "state(42)"},
	}

	for _, tc := range tests {
		if got := tc.state.String(); got != tc.want {
			t.Errorf("String() = %q, expected %q", got, tc.want)
		}
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []State{StateStart, StateIntro, StatePlaying, StatePaused} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []State{StateGameOver, StateClear} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

package game

import (
	"errors"
	"fmt"
	"slices"
)

// State is a screen-flow state of the session.
type State int

const (
	StateStart State = iota
	StateIntro
	StatePlaying
	StatePaused
	StateGameOver
	StateClear
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateIntro:
		return "intro"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	case StateClear:
		return "clear"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether the run has ended in this state.
func (s State) Terminal() bool {
	return s == StateGameOver || s == StateClear
}

// ErrInvalidTransition is returned for a state change the flow does not allow.
var ErrInvalidTransition = errors.New("invalid state transition")

// transitions lists the allowed targets from each state.
var transitions = map[State][]State{
	StateStart:    {StateIntro, StatePlaying},
	StateIntro:    {StateIntro, StatePlaying},
	StatePlaying:  {StatePaused, StateGameOver, StateClear},
	StatePaused:   {StatePlaying},
	StateGameOver: {StateStart, StatePlaying},
	StateClear:    {StateStart, StatePlaying},
}

// CanTransition reports whether from -> to is allowed.
func CanTransition(from, to State) bool {
	return slices.Contains(transitions[from], to)
}

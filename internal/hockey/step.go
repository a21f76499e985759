package hockey

import "fmt"

// DefaultTimestep is one display frame at 60 Hz, the rate every constant in
// this package is tuned for.
const DefaultTimestep = 1.0

// Event is something notable that happened during a step. Events are only
// reported; the step has already applied their effects.
type Event interface {
	fmt.Stringer
	event()
}

type PaddleHit struct {
	Paddle Side
	Corner bool
}

type WallBounce struct {
	Axis Axis
}

type Goal struct {
	Scorer Side
	// Score after the goal was counted
	Score Score
}

type MatchWon struct {
	Winner Side
	Final  Score
}

func (PaddleHit) event()  {}
func (WallBounce) event() {}
func (Goal) event()       {}
func (MatchWon) event()   {}

func (e PaddleHit) String() string {
	if e.Corner {
		return fmt.Sprintf("%s hit the puck out of a corner", e.Paddle)
	}
	return fmt.Sprintf("%s hit the puck", e.Paddle)
}

func (e WallBounce) String() string {
	return fmt.Sprintf("puck bounced off a %s wall", e.Axis)
}

func (e Goal) String() string {
	return fmt.Sprintf("%s scored, %d x %d", e.Scorer, e.Score.Player1, e.Score.Player2)
}

func (e MatchWon) String() string {
	return fmt.Sprintf("%s won the match, %d x %d", e.Winner, e.Final.Player1, e.Final.Player2)
}

// Step advances the simulation by one frame of length dt (in 60 Hz frames)
// and returns what happened.
//
// Paddles integrate and move first, then the puck moves. Collisions and
// goals are resolved twice, with puck friction in between, so a puck that
// bounces into a second wall or paddle in the same frame is still caught.
// The win threshold is checked once at the end.
func Step(s *State, inputs [2]Input, dt float64) []Event {
	var events []Event

	Integrate(s, inputs, dt)
	for i := range s.PowerUps {
		s.PowerUps[i].Visible = false
	}

	MovePuck(s, dt)
	events = append(events, ResolveCollisions(s)...)
	events = append(events, CheckGoals(s)...)

	ApplyPuckFriction(s, dt)
	events = append(events, ResolveCollisions(s)...)
	events = append(events, CheckGoals(s)...)

	if won, ok := CheckWin(s); ok {
		events = append(events, won)
	}

	s.Frame++
	return events
}

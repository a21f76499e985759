package hockey

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	MaxPaddleSpeed = 3.0
	PaddleFriction = 0.92
	PuckFriction   = 0.985

	driftForce = 0.0002
)

// Constant bias added to every body's velocity each frame. It is part of
// the tuning, not noise.
var (
	paddleDrift = [2]Vec{
		Player1: {driftForce, -driftForce},
		Player2: {driftForce, driftForce},
	}
	puckDrift = Vec{driftForce * 0.2, driftForce * 0.2}
)

// Integrate advances both paddles by one step: input and drift are added
// to their velocities, speed is capped, positions move and are confined to
// each paddle's half, then paddle friction is applied. The puck only
// receives its drift here; it moves in MovePuck.
func Integrate(s *State, inputs [2]Input, dt float64) {
	for side := Player1; side <= Player2; side++ {
		p := s.Paddle(side)
		p.Velocity = p.Velocity.Add(inputs[side].Delta(side).Mul(dt))
	}
	applyDrift(s, dt)

	for side := Player1; side <= Player2; side++ {
		p := s.Paddle(side)
		p.Velocity = ClampSpeed(p.Velocity, MaxPaddleSpeed)
		p.Position = p.Position.Add(p.Velocity.Mul(dt))
		Confine(s, side)
	}

	for side := Player1; side <= Player2; side++ {
		p := s.Paddle(side)
		p.Velocity = damp(p.Velocity, PaddleFriction, dt)
	}
}

func applyDrift(s *State, dt float64) {
	for side := Player1; side <= Player2; side++ {
		p := s.Paddle(side)
		p.Velocity = p.Velocity.Add(paddleDrift[side].Mul(dt))
	}
	s.Puck.Velocity = s.Puck.Velocity.Add(puckDrift.Mul(dt))
}

// ClampSpeed rescales v to length limit when it is longer, keeping its
// direction.
func ClampSpeed(v Vec, limit float64) Vec {
	l := v.Len()
	if l <= limit {
		return v
	}
	return v.Mul(limit / l)
}

// Confine clamps a paddle into its half of the table, one axis at a time.
func Confine(s *State, side Side) {
	lo, hi := s.Table.PaddleBounds(side)
	p := s.Paddle(side)
	p.Position = Vec{
		mgl64.Clamp(p.Position[0], lo[0], hi[0]),
		mgl64.Clamp(p.Position[1], lo[1], hi[1]),
	}
}

// MovePuck adds the puck's velocity to its position.
func MovePuck(s *State, dt float64) {
	s.Puck.Position = s.Puck.Position.Add(s.Puck.Velocity.Mul(dt))
}

// ApplyPuckFriction slows the puck by its per-frame friction factor.
func ApplyPuckFriction(s *State, dt float64) {
	s.Puck.Velocity = damp(s.Puck.Velocity, PuckFriction, dt)
}

// damp applies a per-frame friction factor over dt frames. Velocities are
// never snapped to zero.
func damp(v Vec, factor, dt float64) Vec {
	return v.Mul(math.Pow(factor, dt))
}

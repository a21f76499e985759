package hockey

const (
	// PuckStrikeSpeed is the speed the puck leaves a paddle with, whatever
	// the paddle's own speed.
	PuckStrikeSpeed = 5.0
	PuckBounce      = 0.98

	// distance from both walls inside which a struck puck is sent back to
	// the centre instead of along the paddle's direction
	cornerMargin = 10.0
)

type Axis int

const (
	AxisX Axis = iota
	AxisZ
)

func (a Axis) String() string {
	if a == AxisZ {
		return "z"
	}
	return "x"
}

// ResolveCollisions runs the paddle-puck check for both paddles and then the
// wall check, returning what happened.
func ResolveCollisions(s *State) []Event {
	var events []Event
	for side := Player1; side <= Player2; side++ {
		if hit, corner := ResolvePaddlePuck(s, side); hit {
			events = append(events, PaddleHit{Paddle: side, Corner: corner})
		}
	}
	for _, axis := range ResolveWalls(s) {
		events = append(events, WallBounce{Axis: axis})
	}
	return events
}

// ResolvePaddlePuck separates the puck from one paddle when they overlap and
// sets the puck's new velocity. Inside a corner pocket the puck is sent
// toward the table centre; elsewhere it takes the paddle's direction. In
// both cases the speed is PuckStrikeSpeed.
func ResolvePaddlePuck(s *State, side Side) (hit, corner bool) {
	p := s.Paddle(side)
	delta := s.Puck.Position.Sub(p.Position)
	dist := delta.Len()
	minDist := p.Radius + s.Puck.Radius
	if dist >= minDist {
		return false, false
	}

	corner = InCorner(s.Table, s.Puck.Position)

	dir := Vec{1, 0}
	if dist > 0 {
		dir = delta.Mul(1 / dist)
	}
	s.Puck.Position = s.Puck.Position.Add(dir.Mul(minDist - dist))

	if corner {
		s.Puck.Velocity = normalize(s.Puck.Position.Mul(-1)).Mul(PuckStrikeSpeed)
	} else {
		s.Puck.Velocity = normalize(p.Velocity).Mul(PuckStrikeSpeed)
	}
	return true, corner
}

// InCorner reports whether pos is within the corner margin of both a side
// wall and an end wall.
func InCorner(t Table, pos Vec) bool {
	return abs(pos[0]) > t.HalfWidth()-cornerMargin &&
		abs(pos[1]) > t.HalfHeight()-cornerMargin
}

// ResolveWalls keeps the puck inside the table, reflecting and damping the
// velocity component of every axis it crossed. The end walls span the goal
// mouths too; scoring is judged separately.
func ResolveWalls(s *State) []Axis {
	var bounced []Axis
	limits := Vec{s.Table.HalfWidth(), s.Table.HalfHeight()}
	for _, axis := range []Axis{AxisX, AxisZ} {
		pos := s.Puck.Position[axis]
		if abs(pos)+s.Puck.Radius <= limits[axis] {
			continue
		}
		s.Puck.Position[axis] = sign(pos) * (limits[axis] - s.Puck.Radius)
		s.Puck.Velocity[axis] *= -PuckBounce
		bounced = append(bounced, axis)
	}
	return bounced
}

// normalize returns the unit vector of v, or the zero vector when v has no
// length.
func normalize(v Vec) Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return v.Mul(1 / l)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

package hockey

const (
	forwardStep  = 0.2
	backwardStep = 0.15
	lateralStep  = 0.15

	// StickDeadZone is the analog axis magnitude below which input is ignored.
	StickDeadZone = 0.15
)

// Input is what one paddle's controls report for a single frame. The digital
// fields are held keys; Stick carries analog axes in [-1, 1], x then z.
type Input struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Stick    Vec
}

// Merge combines two input sources for the same paddle. Held keys are
// or-ed and stick axes are summed, so both sources add into the paddle's
// velocity.
func (in Input) Merge(other Input) Input {
	return Input{
		Forward:  in.Forward || other.Forward,
		Backward: in.Backward || other.Backward,
		Left:     in.Left || other.Left,
		Right:    in.Right || other.Right,
		Stick:    in.Stick.Add(other.Stick),
	}
}

// Delta converts the input into a per-frame velocity change for the given
// side. Forward points at the opponent's end: -z for paddle 1, +z for
// paddle 2. Forward is faster than backward, and forward wins
// when both are held.
func (in Input) Delta(side Side) Vec {
	d := Vec{
		deadZone(in.Stick[0]) * MaxPaddleSpeed,
		deadZone(in.Stick[1]) * MaxPaddleSpeed,
	}

	forward := -1.0
	if side == Player2 {
		forward = 1.0
	}
	if in.Forward {
		d[1] += forward * forwardStep
	} else if in.Backward {
		d[1] -= forward * backwardStep
	}
	if in.Left {
		d[0] -= lateralStep
	}
	if in.Right {
		d[0] += lateralStep
	}
	return d
}

func deadZone(v float64) float64 {
	if abs(v) < StickDeadZone {
		return 0
	}
	return v
}

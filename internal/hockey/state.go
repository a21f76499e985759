package hockey

import "github.com/go-gl/mathgl/mgl64"

// Vec is a point or direction on the table plane. Index 0 is the lateral x
// axis, index 1 the longitudinal z axis running between the goals.
type Vec = mgl64.Vec2

const (
	TableWidth  = 120.0
	TableHeight = 220.0
	GoalWidth   = 30.0

	PaddleRadius = 12.0
	PuckRadius   = 9.6

	// distance of each paddle's start position from its own end of the table
	paddleStartInset = 25.0

	WinScore = 10
)

// Side identifies one of the two paddles.
type Side int

const (
	Player1 Side = iota
	Player2
)

func (s Side) String() string {
	if s == Player2 {
		return "player2"
	}
	return "player1"
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == Player1 {
		return Player2
	}
	return Player1
}

type Table struct {
	Width     float64
	Height    float64
	GoalWidth float64
}

func DefaultTable() Table {
	return Table{
		Width:     TableWidth,
		Height:    TableHeight,
		GoalWidth: GoalWidth,
	}
}

// HalfWidth is the x coordinate of the side walls.
func (t Table) HalfWidth() float64 {
	return t.Width / 2
}

// HalfHeight is the z coordinate of the end walls and goal-mouth lines.
func (t Table) HalfHeight() float64 {
	return t.Height / 2
}

// InGoalMouth reports whether x lies strictly inside the goal opening.
func (t Table) InGoalMouth(x float64) bool {
	return abs(x) < t.GoalWidth/2
}

// PaddleBounds returns the rectangle a paddle is confined to, as min and
// max corners. Paddle 1 owns the positive z half, paddle 2 the negative.
func (t Table) PaddleBounds(side Side) (lo, hi Vec) {
	maxX := t.HalfWidth() - PaddleRadius
	if side == Player1 {
		return Vec{-maxX, 0}, Vec{maxX, t.HalfHeight() - PaddleRadius}
	}
	return Vec{-maxX, -t.HalfHeight() + PaddleRadius}, Vec{maxX, 0}
}

// StartPosition is the canonical position of a paddle at the start of a round.
func (t Table) StartPosition(side Side) Vec {
	z := t.HalfHeight() - paddleStartInset
	if side == Player2 {
		z = -z
	}
	return Vec{0, z}
}

type Body struct {
	Position Vec
	Velocity Vec
	Radius   float64
}

type Score struct {
	Player1 int
	Player2 int
}

// Of returns the score of one side.
func (s Score) Of(side Side) int {
	if side == Player2 {
		return s.Player2
	}
	return s.Player1
}

func (s *Score) add(side Side) {
	if side == Player2 {
		s.Player2++
		return
	}
	s.Player1++
}

// PowerUp is a pickup slot on the table. The slots exist but have no
// activation path; Step keeps them hidden.
type PowerUp struct {
	Position Vec
	Visible  bool
}

// State is the whole simulation. It is owned by whoever calls Step and is
// mutated in place.
type State struct {
	Table    Table
	Paddles  [2]Body
	Puck     Body
	Score    Score
	PowerUps [4]PowerUp
	Frame    uint64
}

// NewState builds a simulation with every body at its canonical position.
func NewState() *State {
	t := DefaultTable()
	s := &State{Table: t}
	s.Paddles[Player1].Radius = PaddleRadius
	s.Paddles[Player2].Radius = PaddleRadius
	s.Puck.Radius = PuckRadius
	s.PowerUps = [4]PowerUp{
		{Position: Vec{-30, t.Height / 4}},
		{Position: Vec{30, t.Height / 4}},
		{Position: Vec{-30, -t.Height / 4}},
		{Position: Vec{30, -t.Height / 4}},
	}
	Reset(s)
	return s
}

// Paddle returns a pointer to one side's paddle.
func (s *State) Paddle(side Side) *Body {
	return &s.Paddles[side]
}

// Snapshot is the read-only view handed to render and scoreboard
// collaborators.
type Snapshot struct {
	Frame   uint64
	Table   Table
	Paddles [2]Body
	Puck    Body
	Score   Score
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Frame:   s.Frame,
		Table:   s.Table,
		Paddles: s.Paddles,
		Puck:    s.Puck,
		Score:   s.Score,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

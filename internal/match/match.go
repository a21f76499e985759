package match

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"airhockey/internal/config"
	"airhockey/internal/hockey"
	"airhockey/internal/logger"
)

// InputSource reports the controls of one paddle for the coming frame. It is
// called from the match goroutine with the state as it was before the frame.
type InputSource interface {
	Input(side hockey.Side, snap hockey.Snapshot) hockey.Input
}

// InputFunc adapts a function to InputSource.
type InputFunc func(side hockey.Side, snap hockey.Snapshot) hockey.Input

func (f InputFunc) Input(side hockey.Side, snap hockey.Snapshot) hockey.Input {
	return f(side, snap)
}

// Idle never touches the controls.
var Idle = InputFunc(func(hockey.Side, hockey.Snapshot) hockey.Input {
	return hockey.Input{}
})

// Sources merges several sources for the same paddle, e.g. a keyboard and
// a stick. Their contributions add up.
func Sources(srcs ...InputSource) InputSource {
	return InputFunc(func(side hockey.Side, snap hockey.Snapshot) hockey.Input {
		var in hockey.Input
		for _, src := range srcs {
			in = in.Merge(src.Input(side, snap))
		}
		return in
	})
}

// Sink receives the state after every frame together with the frame's
// events. Publish runs on the match goroutine and must not block.
type Sink interface {
	Publish(snap hockey.Snapshot, events []hockey.Event)
}

// Match drives one simulation at a fixed tick rate. The state is owned by
// the goroutine calling Run or Tick.
type Match struct {
	ID uuid.UUID

	state    *hockey.State
	sources  [2]InputSource
	sinks    []Sink
	tickRate int
	timestep float64
	log      *logger.Logger
}

// New sets up a match. A nil source leaves that paddle idle.
func New(sim config.Sim, player1, player2 InputSource, sinks ...Sink) *Match {
	id := uuid.New()
	m := &Match{
		ID:       id,
		state:    hockey.NewState(),
		sources:  [2]InputSource{player1, player2},
		sinks:    sinks,
		tickRate: sim.TickRate,
		timestep: sim.Timestep,
		log:      logger.Log.WithFields(logrus.Fields{"match": id.String()}),
	}
	for side, src := range m.sources {
		if src == nil {
			m.sources[side] = Idle
		}
	}
	if m.tickRate <= 0 {
		m.tickRate = config.Default().Sim.TickRate
	}
	return m
}

// Snapshot returns the current state. Only call it from the goroutine that
// runs the match, or before Run.
func (m *Match) Snapshot() hockey.Snapshot {
	return m.state.Snapshot()
}

// Tick runs one frame: poll both sources, step, log, publish.
func (m *Match) Tick() []hockey.Event {
	before := m.state.Snapshot()
	var inputs [2]hockey.Input
	for side := hockey.Player1; side <= hockey.Player2; side++ {
		inputs[side] = m.sources[side].Input(side, before)
	}

	events := hockey.Step(m.state, inputs, m.timestep)
	m.logEvents(events)

	snap := m.state.Snapshot()
	for _, s := range m.sinks {
		s.Publish(snap, events)
	}
	return events
}

// Run ticks until ctx is cancelled. The initial state is published before
// the first frame so renderers have something to draw.
func (m *Match) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(m.tickRate))
	defer ticker.Stop()

	m.log.Info(logger.MatchStartedMsg, m.tickRate, m.timestep)
	snap := m.state.Snapshot()
	for _, s := range m.sinks {
		s.Publish(snap, nil)
	}

	for {
		select {
		case <-ctx.Done():
			m.log.Info(logger.MatchStoppedMsg, m.state.Frame)
			return nil
		case <-ticker.C:
			m.Tick()
		}
	}
}

func (m *Match) logEvents(events []hockey.Event) {
	for _, ev := range events {
		l := m.log.WithFields(logrus.Fields{"frame": m.state.Frame})
		switch e := ev.(type) {
		case hockey.Goal:
			l.Info(logger.GoalMsg, e.Scorer, e.Score.Player1, e.Score.Player2)
		case hockey.MatchWon:
			l.Info(logger.MatchWonMsg, e.Winner, e.Final.Player1, e.Final.Player2)
		default:
			l.Trace(logger.CollisionMsg, ev)
		}
	}
}

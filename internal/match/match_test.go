package match

import (
	"context"
	"sync"
	"testing"
	"time"

	"airhockey/internal/config"
	"airhockey/internal/hockey"
)

type recorder struct {
	mu     sync.Mutex
	snaps  []hockey.Snapshot
	events []hockey.Event
}

func (r *recorder) Publish(snap hockey.Snapshot, events []hockey.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, snap)
	r.events = append(r.events, events...)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snaps)
}

func sim() config.Sim {
	return config.Default().Sim
}

func TestTickPollsSourcesAndPublishes(t *testing.T) {
	var seen []hockey.Side
	var frames []uint64
	src := InputFunc(func(side hockey.Side, snap hockey.Snapshot) hockey.Input {
		seen = append(seen, side)
		frames = append(frames, snap.Frame)
		return hockey.Input{Forward: true}
	})
	rec := &recorder{}
	m := New(sim(), src, src, rec)

	m.Tick()

	if len(seen) != 2 || seen[0] != hockey.Player1 || seen[1] != hockey.Player2 {
		t.Fatalf("expected both sides polled in order, got %v", seen)
	}
	if frames[0] != 0 || frames[1] != 0 {
		t.Fatalf("sources must see the state before the frame, got %v", frames)
	}
	if rec.count() != 1 || rec.snaps[0].Frame != 1 {
		t.Fatalf("expected one published snapshot of frame 1, got %+v", rec.snaps)
	}
	p1, p2 := rec.snaps[0].Paddles[hockey.Player1], rec.snaps[0].Paddles[hockey.Player2]
	if p1.Position[1] >= 85 || p2.Position[1] <= -85 {
		t.Fatalf("expected both paddles to move forward, got %v and %v", p1.Position, p2.Position)
	}
}

func TestNilSourceIsIdle(t *testing.T) {
	m := New(sim(), nil, nil)
	m.Tick()
	snap := m.Snapshot()
	for side, p := range snap.Paddles {
		// only drift moves an idle paddle
		if p.Velocity.Len() > 0.001 {
			t.Fatalf("paddle %d moving without input: %v", side, p.Velocity)
		}
	}
}

func TestSourcesAddUp(t *testing.T) {
	keys := InputFunc(func(hockey.Side, hockey.Snapshot) hockey.Input {
		return hockey.Input{Left: true}
	})
	stick := InputFunc(func(hockey.Side, hockey.Snapshot) hockey.Input {
		return hockey.Input{Stick: hockey.Vec{0, 0.5}}
	})
	in := Sources(keys, stick, Idle).Input(hockey.Player1, hockey.Snapshot{})
	if !in.Left || in.Stick != (hockey.Vec{0, 0.5}) {
		t.Fatalf("unexpected merged input %+v", in)
	}
}

func TestTickReportsGoals(t *testing.T) {
	rec := &recorder{}
	m := New(sim(), nil, nil, rec)
	m.state.Puck.Position = hockey.Vec{0, -112}

	m.Tick()

	if len(rec.events) == 0 {
		t.Fatalf("expected events")
	}
	found := false
	for _, ev := range rec.events {
		if g, ok := ev.(hockey.Goal); ok && g.Scorer == hockey.Player1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a goal for player 1, got %v", rec.events)
	}
	if rec.snaps[0].Score != (hockey.Score{Player1: 1}) {
		t.Fatalf("unexpected score %+v", rec.snaps[0].Score)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	rec := &recorder{}
	cfg := sim()
	cfg.TickRate = 500
	m := New(cfg, nil, nil, rec)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for rec.count() < 5 {
		if time.Now().After(deadline) {
			t.Fatalf("match did not tick")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.snaps[0].Frame != 0 {
		t.Fatalf("expected the initial state first, got frame %d", rec.snaps[0].Frame)
	}
	for i := 1; i < len(rec.snaps); i++ {
		if rec.snaps[i].Frame != rec.snaps[i-1].Frame+1 {
			t.Fatalf("frames out of order: %d after %d", rec.snaps[i].Frame, rec.snaps[i-1].Frame)
		}
	}
}

func TestNewGivesEachMatchAnID(t *testing.T) {
	a, b := New(sim(), nil, nil), New(sim(), nil, nil)
	if a.ID == b.ID {
		t.Fatalf("expected distinct match ids")
	}
}

package bot

import (
	"testing"

	"airhockey/internal/config"
	"airhockey/internal/hockey"
)

func perfect() *Bot {
	return New(config.Bot{Enabled: true, Seed: 7, Skill: 1})
}

func snapshot(paddle2, puck hockey.Vec) hockey.Snapshot {
	s := hockey.NewState()
	s.Paddles[hockey.Player2].Position = paddle2
	s.Puck.Position = puck
	return s.Snapshot()
}

func TestDefendsOnStartLine(t *testing.T) {
	in := perfect().Input(hockey.Player2, snapshot(hockey.Vec{30, -85}, hockey.Vec{0, 50}))
	if !in.Left || in.Right {
		t.Fatalf("expected the bot to slide toward the centre, got %+v", in)
	}
	if in.Forward || in.Backward {
		t.Fatalf("expected the bot to hold its line, got %+v", in)
	}
}

func TestStrikesFromBehind(t *testing.T) {
	in := perfect().Input(hockey.Player2, snapshot(hockey.Vec{0, -85}, hockey.Vec{0, -40}))
	if !in.Forward || in.Left || in.Right {
		t.Fatalf("expected a straight strike, got %+v", in)
	}
}

func TestGetsBehindThePuck(t *testing.T) {
	in := perfect().Input(hockey.Player2, snapshot(hockey.Vec{0, -20}, hockey.Vec{0, -50}))
	if !in.Backward {
		t.Fatalf("expected the bot to retreat behind the puck, got %+v", in)
	}
	if !in.Right {
		t.Fatalf("expected the bot to step round the puck, got %+v", in)
	}
}

func TestPlaysEitherSide(t *testing.T) {
	s := hockey.NewState()
	s.Puck.Position = hockey.Vec{0, 40}
	in := perfect().Input(hockey.Player1, s.Snapshot())
	if !in.Forward {
		t.Fatalf("expected paddle 1 bot to strike toward -z, got %+v", in)
	}
}

func TestSameSeedSamePlay(t *testing.T) {
	cfg := config.Bot{Seed: 99, Skill: 0.4}
	a, b := New(cfg), New(cfg)
	s := hockey.NewState()
	s.Puck.Velocity = hockey.Vec{2.5, -3.1}
	for i := 0; i < 2000; i++ {
		snap := s.Snapshot()
		ia := a.Input(hockey.Player2, snap)
		ib := b.Input(hockey.Player2, snap)
		if ia != ib {
			t.Fatalf("frame %d: %+v != %+v", i, ia, ib)
		}
		hockey.Step(s, [2]hockey.Input{hockey.Player2: ia}, hockey.DefaultTimestep)
	}
}

func TestSkillControlsHesitation(t *testing.T) {
	idle := func(b *Bot) int {
		n := 0
		for i := 0; i < 1000; i++ {
			in := b.Input(hockey.Player2, snapshot(hockey.Vec{0, -85}, hockey.Vec{0, -40}))
			if in == (hockey.Input{}) {
				n++
			}
		}
		return n
	}
	if n := idle(perfect()); n != 0 {
		t.Fatalf("a perfect bot hesitated %d times", n)
	}
	n := idle(New(config.Bot{Seed: 3, Skill: 0}))
	if n < 200 || n > 500 {
		t.Fatalf("expected roughly 35%% hesitation at skill 0, got %d/1000", n)
	}
}

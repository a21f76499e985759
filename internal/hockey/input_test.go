package hockey

import "testing"

func TestInputDelta(t *testing.T) {
	cases := []struct {
		name string
		side Side
		in   Input
		want Vec
	}{
		{"p1 forward", Player1, Input{Forward: true}, Vec{0, -0.2}},
		{"p1 backward", Player1, Input{Backward: true}, Vec{0, 0.15}},
		{"p1 forward wins", Player1, Input{Forward: true, Backward: true}, Vec{0, -0.2}},
		{"p2 forward", Player2, Input{Forward: true}, Vec{0, 0.2}},
		{"p2 backward", Player2, Input{Backward: true}, Vec{0, -0.15}},
		{"left", Player1, Input{Left: true}, Vec{-0.15, 0}},
		{"left and right cancel", Player2, Input{Left: true, Right: true}, Vec{0, 0}},
		{"stick dead zone", Player1, Input{Stick: Vec{0.1, -0.149}}, Vec{0, 0}},
		{"stick scaled", Player1, Input{Stick: Vec{-0.2, 0.5}}, Vec{-0.6, 1.5}},
		{"stick plus keys", Player2, Input{Stick: Vec{1, 0}, Right: true}, Vec{3.15, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.in.Delta(c.side); !nearVec(got, c.want) {
				t.Fatalf("Delta = %v, want %v", got, c.want)
			}
		})
	}
}

func TestInputMergeIsAdditive(t *testing.T) {
	keys := Input{Forward: true}
	pad := Input{Stick: Vec{0.5, 0.5}}
	also := Input{Stick: Vec{0.25, 0}, Left: true}

	got := keys.Merge(pad).Merge(also)
	if !got.Forward || !got.Left || got.Backward || got.Right {
		t.Fatalf("unexpected keys %+v", got)
	}
	if !nearVec(got.Stick, Vec{0.75, 0.5}) {
		t.Fatalf("expected sticks to add, got %v", got.Stick)
	}
	want := keys.Delta(Player1).Add(pad.Delta(Player1)).Add(also.Delta(Player1))
	if !nearVec(got.Delta(Player1), want) {
		t.Fatalf("merged delta %v, separate deltas %v", got.Delta(Player1), want)
	}
}

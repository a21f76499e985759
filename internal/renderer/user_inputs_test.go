package renderer

import (
	"testing"
	"time"

	"github.com/gdamore/tcell"

	"airhockey/internal/hockey"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func keyboardAt(c *clock) *Keyboard {
	k := NewKeyboard()
	k.now = c.now
	return k
}

func TestProcessInput(t *testing.T) {
	cases := []struct {
		ev     *tcell.EventKey
		side   hockey.Side
		action UiAction
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), hockey.Player1, Forward},
		{tcell.NewEventKey(tcell.KeyRune, 'S', tcell.ModNone), hockey.Player1, Backward},
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), hockey.Player1, Left},
		{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), hockey.Player1, Right},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), hockey.Player2, Forward},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), hockey.Player2, Backward},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), hockey.Player2, Left},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), hockey.Player2, Right},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), hockey.Player1, Quit},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), hockey.Player1, Quit},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), hockey.Player1, Unknown},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), hockey.Player1, Unknown},
	}
	for _, c := range cases {
		side, action := ProcessInput(c.ev)
		if action != c.action || (action != Quit && action != Unknown && side != c.side) {
			t.Fatalf("%s: got %s/%d, want %s/%d", c.ev.Name(), side, action, c.side, c.action)
		}
	}
}

func TestKeyboardHoldsKeysForAWindow(t *testing.T) {
	c := &clock{t: time.Unix(1000, 0)}
	k := keyboardAt(c)

	k.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	k.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))

	if in := k.Input(hockey.Player1, hockey.Snapshot{}); in != (hockey.Input{Forward: true}) {
		t.Fatalf("unexpected paddle 1 input %+v", in)
	}
	if in := k.Input(hockey.Player2, hockey.Snapshot{}); in != (hockey.Input{Left: true}) {
		t.Fatalf("unexpected paddle 2 input %+v", in)
	}

	c.t = c.t.Add(k.Hold - time.Millisecond)
	if !k.Input(hockey.Player1, hockey.Snapshot{}).Forward {
		t.Fatalf("key released too early")
	}
	c.t = c.t.Add(2 * time.Millisecond)
	if k.Input(hockey.Player1, hockey.Snapshot{}).Forward {
		t.Fatalf("key still held after the window")
	}
}

func TestKeyboardRepeatExtendsHold(t *testing.T) {
	c := &clock{t: time.Unix(1000, 0)}
	k := keyboardAt(c)
	for i := 0; i < 10; i++ {
		k.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
		c.t = c.t.Add(k.Hold / 2)
	}
	if !k.Input(hockey.Player2, hockey.Snapshot{}).Backward {
		t.Fatalf("repeated key should stay held")
	}
}

func TestKeyboardQuit(t *testing.T) {
	k := NewKeyboard()
	k.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	k.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	select {
	case <-k.Quit():
	default:
		t.Fatalf("expected quit to be requested")
	}
}

func TestKeyboardIgnoresOtherEvents(t *testing.T) {
	k := NewKeyboard()
	k.HandleEvent(tcell.NewEventResize(80, 24))
	if in := k.Input(hockey.Player1, hockey.Snapshot{}); in != (hockey.Input{}) {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestListenStopsOnQuit(t *testing.T) {
	s := simScreen(t, 80, 24)
	k := NewKeyboard()
	k.Hold = time.Minute
	done := make(chan struct{})
	go func() {
		k.Listen(s)
		close(done)
	}()

	s.InjectKey(tcell.KeyRune, 'd', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Listen did not return after quit")
	}
	if !k.Input(hockey.Player1, hockey.Snapshot{}).Right {
		t.Fatalf("expected the key before quit to be recorded")
	}
}

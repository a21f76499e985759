package renderer

import (
	"sync"
	"time"

	"github.com/gdamore/tcell"

	"airhockey/internal/hockey"
)

type UiAction int

const (
	Unknown UiAction = iota
	Quit
	Forward
	Backward
	Left
	Right
)

// DefaultHold covers the gap between a key press and the terminal's first
// auto-repeat.
const DefaultHold = 300 * time.Millisecond

// ProcessInput maps a key to the paddle it controls and what it does.
// W/A/S/D drive paddle 1, the arrow keys paddle 2.
func ProcessInput(ev *tcell.EventKey) (hockey.Side, UiAction) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return hockey.Player1, Quit
	case tcell.KeyUp:
		return hockey.Player2, Forward
	case tcell.KeyDown:
		return hockey.Player2, Backward
	case tcell.KeyLeft:
		return hockey.Player2, Left
	case tcell.KeyRight:
		return hockey.Player2, Right
	case tcell.KeyRune:
	default:
		return hockey.Player1, Unknown
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return hockey.Player1, Quit
	case 'w', 'W':
		return hockey.Player1, Forward
	case 's', 'S':
		return hockey.Player1, Backward
	case 'a', 'A':
		return hockey.Player1, Left
	case 'd', 'D':
		return hockey.Player1, Right
	}
	return hockey.Player1, Unknown
}

type binding struct {
	side   hockey.Side
	action UiAction
}

// Keyboard turns terminal key events into held controls. Terminals report
// presses and repeats but no releases, so a key counts as held until Hold
// has passed since its last event.
type Keyboard struct {
	Hold time.Duration

	now      func() time.Time
	mu       sync.Mutex
	lastSeen map[binding]time.Time
	quit     chan struct{}
	quitOnce sync.Once
}

func NewKeyboard() *Keyboard {
	return &Keyboard{
		Hold:     DefaultHold,
		now:      time.Now,
		lastSeen: make(map[binding]time.Time),
		quit:     make(chan struct{}),
	}
}

// HandleEvent records one terminal event. Resizes redraw nothing here; the
// next frame picks up the new size.
func (k *Keyboard) HandleEvent(ev tcell.Event) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}
	side, action := ProcessInput(key)
	switch action {
	case Unknown:
	case Quit:
		k.quitOnce.Do(func() { close(k.quit) })
	default:
		k.mu.Lock()
		k.lastSeen[binding{side, action}] = k.now()
		k.mu.Unlock()
	}
}

// Listen feeds screen events into the keyboard until the screen is finalised
// or quit is requested.
func (k *Keyboard) Listen(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		k.HandleEvent(ev)
		select {
		case <-k.quit:
			return
		default:
		}
	}
}

// Quit is closed once a quit key has been pressed.
func (k *Keyboard) Quit() <-chan struct{} {
	return k.quit
}

func (k *Keyboard) Input(side hockey.Side, _ hockey.Snapshot) hockey.Input {
	k.mu.Lock()
	defer k.mu.Unlock()
	now := k.now()
	held := func(action UiAction) bool {
		t, ok := k.lastSeen[binding{side, action}]
		return ok && now.Sub(t) < k.Hold
	}
	return hockey.Input{
		Forward:  held(Forward),
		Backward: held(Backward),
		Left:     held(Left),
		Right:    held(Right),
	}
}

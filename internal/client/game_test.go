package client

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell"

	"airhockey/internal/hockey"
	"airhockey/internal/netwrk"
	"airhockey/internal/renderer"
)

func TestControlsMergeBothKeySets(t *testing.T) {
	kb := renderer.NewKeyboard()
	kb.Hold = time.Minute
	kb.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	kb.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))

	in := Controls(kb, hockey.Snapshot{})
	if in != (hockey.Input{Forward: true, Left: true}) {
		t.Fatalf("unexpected controls %+v", in)
	}
}

func TestGamePlaysAgainstHub(t *testing.T) {
	hub := netwrk.NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	conn, err := netwrk.Dial(ctx, strings.TrimPrefix(srv.URL, "http://"), "/", netwrk.Player2)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 24)

	kb := renderer.NewKeyboard()
	kb.Hold = time.Minute
	done := make(chan error, 1)
	go func() { done <- Game(ctx, conn, screen, kb, 100) }()

	kb.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone))
	for !hub.Input(hockey.Player2, hockey.Snapshot{}).Right {
		select {
		case <-ctx.Done():
			t.Fatalf("controls never reached the hub")
		case <-time.After(5 * time.Millisecond):
		}
	}

	kb.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Game returned %v", err)
		}
	case <-ctx.Done():
		t.Fatalf("Game did not stop on quit")
	}
}

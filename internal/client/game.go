package client

import (
	"context"
	"time"

	"github.com/gdamore/tcell"

	"airhockey/internal/hockey"
	"airhockey/internal/netwrk"
	"airhockey/internal/renderer"
)

// Game plays a remote match: frames from the hub are drawn on screen and,
// for players, the keyboard's controls are sent tickRate times a second.
// It returns when ctx ends, the player quits or the connection drops.
func Game(ctx context.Context, conn *netwrk.Conn, screen tcell.Screen, kb *renderer.Keyboard, tickRate int) error {
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	_, isPlayer := conn.Role.Side()
	var last hockey.Snapshot
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-kb.Quit():
			return nil

		// Network reader
		case f, ok := <-conn.Frames():
			if !ok {
				return conn.Err()
			}
			last = f.Snapshot
			renderer.Render(screen, last)

		// Network writer
		case <-ticker.C:
			if !isPlayer {
				continue
			}
			if err := conn.Send(Controls(kb, last)); err != nil {
				return err
			}
		}
	}
}

// Controls lets a remote player drive their paddle with either key set.
// Forward always means toward the opponent's goal.
func Controls(kb *renderer.Keyboard, snap hockey.Snapshot) hockey.Input {
	return kb.Input(hockey.Player1, snap).Merge(kb.Input(hockey.Player2, snap))
}

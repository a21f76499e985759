package netwrk

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"airhockey/internal/hockey"
	"airhockey/internal/logger"
)

// Conn is a remote client's connection to a hub.
type Conn struct {
	Role Role

	ws      *websocket.Conn
	frames  chan Frame
	writeMu sync.Mutex
	last    *InputMessage

	done chan struct{}
	err  error
}

// Dial connects to the hub at addr and path in the given role.
func Dial(ctx context.Context, addr, path string, role Role) (*Conn, error) {
	u := url.URL{
		Scheme:   "ws",
		Host:     addr,
		Path:     path,
		RawQuery: url.Values{"role": {string(role)}}.Encode(),
	}
	ws, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("joining %s as %s: %s: %w", u.String(), role, resp.Status, err)
		}
		return nil, fmt.Errorf("joining %s as %s: %w", u.String(), role, err)
	}

	c := &Conn{
		Role:   role,
		ws:     ws,
		frames: make(chan Frame, 4),
		done:   make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Network Reader
func (c *Conn) readLoop() {
	defer close(c.done)
	defer close(c.frames)
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				c.err = err
			}
			return
		}
		f, err := DecodeSnapshot(data)
		if err != nil {
			logger.Log.WithError(err).Warn(logger.BadFrameMsg)
			continue
		}
		// a slow renderer only ever sees the newest frames
		select {
		case c.frames <- f:
		default:
			select {
			case <-c.frames:
			default:
			}
			c.frames <- f
		}
	}
}

// Frames delivers snapshots as they arrive. It is closed when the
// connection ends.
func (c *Conn) Frames() <-chan Frame {
	return c.frames
}

// Send reports the player's controls. Unchanged controls are not resent.
func (c *Conn) Send(in hockey.Input) error {
	msg := NewInputMessage(in)
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.last != nil && *c.last == msg {
		return nil
	}
	if err := c.ws.WriteJSON(msg); err != nil {
		return fmt.Errorf("sending input: %w", err)
	}
	c.last = &msg
	return nil
}

// Err waits for the connection to end and returns why, nil when the hub
// closed it normally.
func (c *Conn) Err() error {
	<-c.done
	return c.err
}

// Close says goodbye to the hub and closes the connection.
func (c *Conn) Close() error {
	c.writeMu.Lock()
	c.ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	return c.ws.Close()
}

package netwrk

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"airhockey/internal/hockey"
	"airhockey/internal/logger"
)

type Role string

const (
	Player1   Role = "player1"
	Player2   Role = "player2"
	Spectator Role = "spectator"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case Player1, Player2, Spectator:
		return r, nil
	case "":
		return Spectator, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Side reports which paddle the role controls, if any.
func (r Role) Side() (hockey.Side, bool) {
	switch r {
	case Player1:
		return hockey.Player1, true
	case Player2:
		return hockey.Player2, true
	}
	return 0, false
}

const (
	sendQueueSize = 16
	writeWait     = time.Second
	maxInputSize  = 512
)

type Client struct {
	ID        uuid.UUID
	Role      Role
	conn      *websocket.Conn
	sendQueue chan []byte
	log       *logger.Logger
}

// Hub accepts websocket clients for one match. It is the match's input
// source for both paddles and a sink for its snapshots.
type Hub struct {
	Upgrader websocket.Upgrader

	mu       sync.Mutex
	clients  map[uuid.UUID]*Client
	players  [2]*Client
	inputs   [2]hockey.Input
	// sides played locally, closed to remote players
	occupied [2]bool
	closed   bool
}

func NewHub() *Hub {
	return &Hub{
		Upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:  make(map[uuid.UUID]*Client),
	}
}

// ServeHTTP upgrades a request to a client connection. The role comes from
// the role query parameter; a player slot takes one connection at a time.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	role, err := ParseRole(r.URL.Query().Get("role"))
	if err != nil {
		logger.Log.Warn(logger.BadRoleMsg, r.URL.Query().Get("role"))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c := &Client{
		ID:        uuid.New(),
		Role:      role,
		sendQueue: make(chan []byte, sendQueueSize),
	}
	c.log = logger.Log.WithFields(logrus.Fields{
		"client": c.ID.String(),
		"role":   string(role),
		"remote": r.RemoteAddr,
	})

	if !h.reserve(c) {
		c.log.Warn(logger.SlotTakenMsg, role)
		http.Error(w, fmt.Sprintf("%s slot is taken", role), http.StatusConflict)
		return
	}

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		c.log.WithError(err).Warn(logger.ConnBrokenMsg)
		h.release(c)
		return
	}
	c.conn = conn
	if !h.register(c) {
		conn.Close()
		h.release(c)
		return
	}
	c.log.Info(logger.ClientJoinedMsg, role)

	go h.writeLoop(c)
	go h.readLoop(c)
}

// Occupy closes side to remote players, for a paddle driven inside the
// server process such as the computer player.
func (h *Hub) Occupy(side hockey.Side) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.occupied[side] = true
}

// reserve claims the client's player slot before the upgrade so two players
// racing for the same side cannot both get in.
func (h *Hub) reserve(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	side, ok := c.Role.Side()
	if !ok {
		return true
	}
	if h.players[side] != nil || h.occupied[side] {
		return false
	}
	h.players[side] = c
	return true
}

func (h *Hub) release(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if side, ok := c.Role.Side(); ok && h.players[side] == c {
		h.players[side] = nil
		h.inputs[side] = hockey.Input{}
	}
}

func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c.ID] = c
	return true
}

// unregister drops a client and frees its slot. It is safe to call more
// than once.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	delete(h.clients, c.ID)
	close(c.sendQueue)
	if side, ok := c.Role.Side(); ok && h.players[side] == c {
		h.players[side] = nil
		h.inputs[side] = hockey.Input{}
	}
	c.log.Info(logger.ClientLeftMsg)
}

// Network Reader
func (h *Hub) readLoop(c *Client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxInputSize)

	side, isPlayer := c.Role.Side()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.WithError(err).Warn(logger.ConnBrokenMsg)
			}
			return
		}
		if !isPlayer {
			continue
		}
		in, err := DecodeInput(data)
		if err != nil {
			c.log.WithError(err).Warn(logger.BadInputMsg)
			continue
		}
		h.mu.Lock()
		if h.players[side] == c {
			h.inputs[side] = in
		}
		h.mu.Unlock()
	}
}

// Network Writer
func (h *Hub) writeLoop(c *Client) {
	for msg := range c.sendQueue {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			c.log.WithError(err).Warn(logger.ConnBrokenMsg)
			c.conn.Close()
			h.unregister(c)
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	c.conn.Close()
}

// Input returns the latest controls sent by the side's player, or no input
// when the slot is empty.
func (h *Hub) Input(side hockey.Side, _ hockey.Snapshot) hockey.Input {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.inputs[side]
}

// Publish queues the frame for every client. Clients whose queue is full
// miss the frame.
func (h *Hub) Publish(snap hockey.Snapshot, events []hockey.Event) {
	msg, err := EncodeSnapshot(snap, events)
	if err != nil {
		logger.Log.WithError(err).Error(logger.EncodeFailedMsg, snap.Frame)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.sendQueue <- msg:
		default:
			c.log.Debug(logger.SendDroppedMsg)
		}
	}
}

// Clients returns how many connections are open.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.unregister(c)
	}
}

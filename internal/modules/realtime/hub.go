// Package realtime pushes voucher lifecycle events to connected browsers.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"vales/internal/pkg/events"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 256
)

// Message is what clients receive.
type Message struct {
	Type  string       `json:"type"`
	Event events.Event `json:"event"`
}

type client struct {
	userID   int64
	approver bool
	conn     *websocket.Conn
	send     chan []byte
}

func (c *client) wants(e events.Event) bool {
	return c.approver || c.userID == e.UserID
}

// Hub fans events out to websocket clients: approvers get every event,
// staff only events about their own vouchers. It implements events.Publisher.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	logger  *zap.SugaredLogger
}

func NewHub(logger *zap.SugaredLogger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Publish(_ context.Context, e events.Event) error {
	data, err := json.Marshal(Message{Type: e.Type, Event: e})
	if err != nil {
		return err
	}

	var slow []*client
	h.mu.RLock()
	for c := range h.clients {
		if !c.wants(e) {
			continue
		}
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warnw("dropping slow websocket client", "user_id", c.userID)
		h.unregister(c)
	}
	return nil
}

// Disconnect closes every connection of userID and reports how many there
// were. Clients reconnect through the auth middleware, which picks up the
// current role and active flag.
func (h *Hub) Disconnect(userID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for c := range h.clients {
		if c.userID != userID {
			continue
		}
		delete(h.clients, c)
		close(c.send)
		n++
	}
	return n
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// serve runs the connection until the peer goes away.
func (h *Hub) serve(conn *websocket.Conn, userID int64, approver bool) {
	c := &client{
		userID:   userID,
		approver: approver,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
	}
	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

// readPump only exists to process pongs and notice disconnects; clients do
// not send anything meaningful.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debugw("websocket closed", "user_id", c.userID, "error", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

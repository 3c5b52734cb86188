// Package ws streams detection results to connected clients over WebSocket.
//
// The hub fans every published result out to all connected clients. A slow
// client is disconnected rather than allowed to stall the broadcast loop.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
	"github.com/fairwaylabs/swingsense/pkg/logger"
	"github.com/fairwaylabs/swingsense/pkg/metrics"
)

// Default hub configuration constants.
const (
	defaultSendBuffer     = 16
	defaultWriteWait      = 10 * time.Second
	defaultPongWait       = 60 * time.Second
	defaultReadLimitBytes = 512
)

// pingPeriod must be shorter than pongWait so pings arrive in time.
func pingPeriod(pongWait time.Duration) time.Duration {
	return pongWait * 9 / 10
}

// client is one connected WebSocket peer.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub broadcasts detection results to WebSocket clients.
type Hub struct {
	upgrader   websocket.Upgrader
	sendBuffer int
	writeWait  time.Duration
	pongWait   time.Duration

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool

	logger logger.Logger
}

// NewHub creates a hub with configuration options.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		sendBuffer: defaultSendBuffer,
		writeWait:  defaultWriteWait,
		pongWait:   defaultPongWait,
		clients:    make(map[*client]struct{}),
	}

	for _, opt := range opts {
		opt(h)
	}

	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// Browser clients connect from the companion app's origin; the
		// service sits behind the gateway that enforces origin policy.
		CheckOrigin: func(*http.Request) bool { return true },
	}

	if h.logger == nil {
		h.logger = logger.Get().Named("ws")
	}

	return h
}

// Handler upgrades HTTP requests to WebSocket connections.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn(r.Context(), "websocket upgrade failed", logger.Error(err))
			return
		}

		c := &client{
			conn: conn,
			send: make(chan []byte, h.sendBuffer),
		}

		h.mu.Lock()
		if h.closed {
			h.mu.Unlock()
			_ = conn.Close()
			return
		}
		h.clients[c] = struct{}{}
		count := len(h.clients)
		h.mu.Unlock()
		metrics.UpdateWSClients(count)

		go h.writeLoop(c)
		go h.readLoop(c)
	}
}

// Broadcast sends a detection result to every connected client. Clients whose
// send buffer is full are dropped.
func (h *Hub) Broadcast(result model.SwingDetectionResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		h.logger.Error(context.Background(), "result marshal failed", logger.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.dropLocked(c)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects all clients and rejects new connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		h.dropLocked(c)
	}
}

// dropLocked removes a client. Caller holds h.mu.
func (h *Hub) dropLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	metrics.UpdateWSClients(len(h.clients))
}

// drop removes a client under the lock.
func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c)
}

// writeLoop pushes broadcast payloads and keepalive pings to one client.
func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod(h.pongWait))
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.drop(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.drop(c)
				return
			}
		}
	}
}

// readLoop discards client messages and tracks liveness. The stream is
// one-way; reads exist only to notice disconnects and answer pings.
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.drop(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(defaultReadLimitBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(h.pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

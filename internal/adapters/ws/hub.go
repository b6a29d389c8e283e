// Package ws pushes squad snapshots to subscribed browser clients over
// websockets, so the view layer observes engine state instead of sharing it.
package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/okian/gaffer/pkg/logger"
	"github.com/okian/gaffer/pkg/metrics"
)

// writeWait bounds a single snapshot write to a client.
const writeWait = 5 * time.Second

// Hub tracks connected clients and broadcasts snapshots to them.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	log      logger.Logger
}

// Option applies a configuration option to the Hub.
type Option func(*Hub)

// WithLogger sets a custom logger for the hub.
func WithLogger(log logger.Logger) Option {
	return func(h *Hub) {
		if log != nil {
			h.log = log
		}
	}
}

// WithCheckOrigin overrides the upgrader's origin check.
func WithCheckOrigin(check func(*http.Request) bool) Option {
	return func(h *Hub) {
		if check != nil {
			h.upgrader.CheckOrigin = check
		}
	}
}

// NewHub creates a Hub. Origin checking defaults to allow-all because CORS
// policy for the API is enforced a layer up.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleWS upgrades the request and registers the client. The read loop
// exists only to notice the client going away.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.log != nil {
			h.log.Warn(r.Context(), "websocket upgrade failed", logger.Error(err))
		}
		return
	}
	h.add(conn)
	go h.reader(conn)
}

func (h *Hub) reader(conn *websocket.Conn) {
	defer h.remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	metrics.UpdateWSClients(n)
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		_ = conn.Close()
	}
	n := len(h.clients)
	h.mu.Unlock()
	metrics.UpdateWSClients(n)
}

// Broadcast sends v as JSON to every connected client. Clients that fail a
// write are dropped; a broken subscriber must not wedge the engine.
func (h *Hub) Broadcast(ctx context.Context, v interface{}) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		_ = c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteJSON(v); err != nil {
			if h.log != nil {
				h.log.Debug(ctx, "dropping websocket client", logger.Error(err))
			}
			h.remove(c)
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mu.Lock()
	for c := range h.clients {
		_ = c.Close()
	}
	h.clients = make(map[*websocket.Conn]struct{})
	h.mu.Unlock()
	metrics.UpdateWSClients(0)
}

package bridgesim

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/bridgectl/bridgectl/internal/api"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const connectionSendBufferSize = 32

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// connection is a single subscribed WebSocket client with a buffered outbound
// queue. A client that cannot keep up is dropped rather than blocking the
// broadcast path.
type connection struct {
	id   string
	conn *websocket.Conn
	send chan api.Event
}

// Hub tracks WebSocket subscribers and broadcasts bridge events to all of
// them.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*connection
	logger      *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		connections: make(map[string]*connection),
		logger:      logger,
	}
}

// ConnectionCount returns the number of active subscribers.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Broadcast delivers an event to every subscriber. Subscribers with a full
// send queue are disconnected.
func (h *Hub) Broadcast(event api.Event) {
	h.mu.RLock()
	var slow []*connection
	for _, c := range h.connections {
		select {
		case c.send <- event:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("dropping slow websocket subscriber", "connectionID", c.id)
		h.remove(c)
	}
}

// BroadcastStateChange broadcasts a stateChange envelope for the snapshot.
func (h *Hub) BroadcastStateChange(snapshot api.Snapshot) {
	h.Broadcast(api.Event{
		Type:     api.EventStateChange,
		Snapshot: &snapshot,
	})
}

// ServeWS upgrades the request and subscribes the client. The first message
// the client receives is a connected envelope carrying its connection ID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	c := &connection{
		id:   uuid.NewString(),
		conn: wsConn,
		send: make(chan api.Event, connectionSendBufferSize),
	}

	h.mu.Lock()
	h.connections[c.id] = c
	h.mu.Unlock()
	h.logger.Debug("websocket client connected", "connectionID", c.id, "total", h.ConnectionCount())

	h.trySend(c, api.Event{Type: api.EventConnected, ConnectionID: c.id})

	go h.writeLoop(c)
	go h.readLoop(c)
}

// trySend enqueues an event for one connection. The membership check and the
// send happen under the read lock; remove closes the send channel only under
// the write lock, so a removed connection is never sent to. Events for a full
// queue are dropped, the broadcast path handles slow subscribers.
func (h *Hub) trySend(c *connection, event api.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.connections[c.id]; !ok {
		return
	}
	select {
	case c.send <- event:
	default:
	}
}

// writeLoop drains the connection's send queue onto the socket.
func (h *Hub) writeLoop(c *connection) {
	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			h.remove(c)
			return
		}
	}
	_ = c.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
}

// readLoop answers client pings with pong envelopes and removes the
// connection when the client goes away. Other inbound messages are ignored;
// commands travel over HTTP.
func (h *Hub) readLoop(c *connection) {
	defer h.remove(c)

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read failed", "connectionID", c.id, "error", err)
			}
			return
		}

		var msg api.PingMessage
		if unmarshalErr := json.Unmarshal(messageBytes, &msg); unmarshalErr == nil && msg.Type == "ping" {
			h.trySend(c, api.Event{Type: api.EventPong, ConnectionID: c.id})
		}
	}
}

// remove unsubscribes and closes a connection. Safe to call more than once.
func (h *Hub) remove(c *connection) {
	h.mu.Lock()
	_, ok := h.connections[c.id]
	if ok {
		delete(h.connections, c.id)
		close(c.send)
	}
	h.mu.Unlock()

	if ok {
		_ = c.conn.Close()
		h.logger.Debug("websocket client disconnected", "connectionID", c.id)
	}
}

// CloseAll disconnects every subscriber, used during server shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	conns := make([]*connection, 0, len(h.connections))
	for _, c := range h.connections {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		h.remove(c)
	}
}

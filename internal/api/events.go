package api

// EventType identifies a WebSocket event envelope pushed by the bridge.
type EventType string

const (
	// EventConnected is sent once after the WebSocket upgrade completes.
	EventConnected EventType = "connected"
	// EventStateChange carries a new execution-state snapshot.
	EventStateChange EventType = "stateChange"
	// EventPong is the bridge's reply to a client ping message.
	EventPong EventType = "pong"
)

// Event is the envelope for every message pushed over WS /ws.
// Fields other than Type are populated per event type.
type Event struct {
	Type         EventType `json:"type"`
	ConnectionID string    `json:"connectionId,omitempty"`
	Snapshot     *Snapshot `json:"snapshot,omitempty"`
}

// PingMessage is the client-to-bridge heartbeat message. The bridge answers
// with an EventPong envelope.
type PingMessage struct {
	Type string `json:"type"`
}

// NewPing builds a heartbeat message.
func NewPing() PingMessage {
	return PingMessage{Type: "ping"}
}

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/bridgectl/bridgectl/internal/api"
	"github.com/bridgectl/bridgectl/internal/constants"

	"github.com/gorilla/websocket"
)

const eventBufferSize = 10

// EventStream is a single long-lived WebSocket connection delivering bridge
// event envelopes. There is no reconnection: when the connection drops, Done
// is closed and the caller decides what to do.
type EventStream struct {
	conn      *websocket.Conn
	events    chan api.Event
	done      chan struct{}
	closeOnce sync.Once
	writeMu   sync.Mutex
	logger    *slog.Logger
}

// DialEvents opens the bridge's WS /ws event stream, authenticating with the
// same API key header as HTTP requests.
func (c *Client) DialEvents(ctx context.Context) (*EventStream, error) {
	header := http.Header{}
	header.Set(c.config.KeyHeader, c.config.APIKey)

	conn, httpResp, err := websocket.DefaultDialer.DialContext(ctx, c.config.WebSocketURL, header)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to websocket: %w", err)
	}
	if httpResp != nil && httpResp.Body != nil {
		_ = httpResp.Body.Close()
	}

	s := &EventStream{
		conn:   conn,
		events: make(chan api.Event, eventBufferSize), // buffered channel for better throughput
		done:   make(chan struct{}),
		logger: c.logger,
	}

	go s.readLoop()
	go s.heartbeat(constants.HeartbeatInterval)

	return s, nil
}

// Events returns the channel of decoded event envelopes. It is closed when
// the connection ends.
func (s *EventStream) Events() <-chan api.Event {
	return s.events
}

// Done is closed when the stream has terminated for any reason.
func (s *EventStream) Done() <-chan struct{} {
	return s.done
}

// Close tears down the connection. Safe to call multiple times.
func (s *EventStream) Close() {
	s.closeOnce.Do(func() { close(s.done) })
	s.writeMu.Lock()
	_ = s.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client closing"),
	)
	s.writeMu.Unlock()
	_ = s.conn.Close()
}

// readLoop reads envelopes from the connection and forwards them to the
// events channel until the connection ends or Close is called.
func (s *EventStream) readLoop() {
	defer close(s.events)
	defer s.closeOnce.Do(func() { close(s.done) })

	for {
		select {
		case <-s.done:
			return
		default:
			_, messageBytes, err := s.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Warn("websocket connection closed unexpectedly", "error", err)
				}
				return
			}

			var event api.Event
			if err = json.Unmarshal(messageBytes, &event); err != nil {
				s.logger.Debug("skipping undecodable event", "error", err)
				continue
			}

			select {
			case s.events <- event:
			case <-s.done:
				return
			}
		}
	}
}

// heartbeat periodically sends a JSON ping; the bridge answers with a pong
// envelope on the same connection.
func (s *EventStream) heartbeat(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.writeMu.Lock()
			err := s.conn.WriteJSON(api.NewPing())
			s.writeMu.Unlock()
			if err != nil {
				s.logger.Debug("heartbeat write failed", "error", err)
				return
			}
		}
	}
}

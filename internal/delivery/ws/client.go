package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/danprtma/watchparty/internal/domain"
)

// Client represents a single websocket connection to one participant.
// The id is assigned at accept time and never reused; the display name
// defaults to a value derived from the id until updateUsername replaces it.
type Client struct {
	ID string

	relay *Relay
	conn  *websocket.Conn
	send  chan []byte

	mu       sync.RWMutex
	username string
	room     string
}

// NewClient creates a new Client for an accepted connection
func NewClient(relay *Relay, conn *websocket.Conn) *Client {
	id := uuid.New().String()
	c := &Client{
		ID:       id,
		relay:    relay,
		conn:     conn,
		send:     make(chan []byte, 256),
		username: "user-" + id[:8],
	}
	relay.attach(c)
	return c
}

// Username returns the current display name
func (c *Client) Username() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.username
}

// SetUsername replaces the display name unconditionally
func (c *Client) SetUsername(name string) {
	c.mu.Lock()
	c.username = name
	c.mu.Unlock()
}

// Room returns the room this connection currently occupies, or ""
func (c *Client) Room() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.room
}

func (c *Client) setRoom(roomID string) {
	c.mu.Lock()
	c.room = roomID
	c.mu.Unlock()
}

// ReadPump pumps events from the websocket connection to the relay.
// Events from a single connection are dispatched in arrival order.
func (c *Client) ReadPump() {
	defer func() {
		c.relay.Disconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.relay.maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.relay.pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.relay.pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			// The close reason is informational only; the disconnect
			// path is identical for every reason.
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("connection closed unexpectedly", "clientId", c.ID, "reason", err)
			}
			break
		}

		var evt domain.Event
		if err := json.Unmarshal(message, &evt); err != nil {
			// Malformed frames are dropped, never fatal
			continue
		}

		c.relay.Dispatch(c, evt)
	}
}

// WritePump pumps events from the relay to the websocket connection
// and keeps the heartbeat going
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.relay.pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(domain.WriteWait))
			if !ok {
				// Relay closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(domain.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Send queues an event for delivery. Delivery is at-most-once: if the
// connection's buffer is full the event is dropped, never retried.
func (c *Client) Send(msg []byte) {
	select {
	case c.send <- msg:
	default:
		// Buffer full
	}
}

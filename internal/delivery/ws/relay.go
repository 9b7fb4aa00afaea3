package ws

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/danprtma/watchparty/internal/domain"
)

// handlerFunc processes one inbound event from one connection
type handlerFunc func(*Client, domain.Event)

// Options tunes the relay's transport behaviour. Zero values fall back
// to the defaults in the domain package.
type Options struct {
	MaxMessageSize int64
	PongWait       time.Duration
	PingPeriod     time.Duration
}

// Relay routes chat and playback-control events to the correct subset
// of a room's members. It owns no media and keeps no history: delivery
// is best-effort, at-most-once, from the moment of join forward.
type Relay struct {
	registry *Registry
	handlers map[domain.EventType]handlerFunc
	conns    atomic.Int64

	maxMessageSize int64
	pongWait       time.Duration
	pingPeriod     time.Duration
}

// NewRelay creates a relay around the given registry
func NewRelay(registry *Registry, opts Options) *Relay {
	if opts.MaxMessageSize <= 0 {
		opts.MaxMessageSize = domain.MaxMessageSize
	}
	if opts.PongWait <= 0 {
		opts.PongWait = domain.DefaultPongWait
	}
	if opts.PingPeriod <= 0 {
		opts.PingPeriod = domain.DefaultPingPeriod
	}

	r := &Relay{
		registry:       registry,
		maxMessageSize: opts.MaxMessageSize,
		pongWait:       opts.PongWait,
		pingPeriod:     opts.PingPeriod,
	}

	r.handlers = map[domain.EventType]handlerFunc{
		domain.EventJoinRoom:       r.handleJoinRoom,
		domain.EventUpdateUsername: r.handleUpdateUsername,
		domain.EventChatMessage:    r.handleChatMessage,
		domain.EventVideoPlay:      r.handleVideoControl,
		domain.EventVideoPause:     r.handleVideoControl,
		domain.EventVideoSeek:      r.handleVideoControl,
	}

	return r
}

// Registry returns the room registry the relay routes through
func (r *Relay) Registry() *Registry {
	return r.registry
}

// Stats returns the number of open connections, rooms, and memberships
func (r *Relay) Stats() (conns int64, rooms, members int) {
	rooms, members = r.registry.Counts()
	return r.conns.Load(), rooms, members
}

// attach records a newly accepted connection
func (r *Relay) attach(c *Client) {
	r.conns.Add(1)
	slog.Info("client connected", "clientId", c.ID)
}

// Dispatch routes one inbound event to its handler. Unknown event
// types are dropped.
func (r *Relay) Dispatch(c *Client, evt domain.Event) {
	h, ok := r.handlers[evt.Type]
	if !ok {
		slog.Debug("unknown event type", "clientId", c.ID, "type", evt.Type)
		return
	}
	h(c, evt)
}

// Disconnect removes a closed connection from its room, if any, and
// announces the departure to the remaining members
func (r *Relay) Disconnect(c *Client) {
	r.conns.Add(-1)

	room := c.Room()
	if room == "" {
		slog.Info("client disconnected", "clientId", c.ID)
		return
	}

	remaining := r.registry.Remove(room, c)
	c.setRoom("")
	r.announce(remaining, c.Username(), domain.LeaveAnnouncement)

	slog.Info("client disconnected", "clientId", c.ID, "room", room, "remaining", len(remaining))
}

// handleJoinRoom adds the connection to the requested room. Joining a
// new room first leaves the previous one, so a connection is a member
// of at most one room at any instant.
func (r *Relay) handleJoinRoom(c *Client, evt domain.Event) {
	roomID := decodeRoomID(evt.Payload)
	if roomID == "" {
		return
	}

	prev := c.Room()
	if prev == roomID {
		// Already a member; nothing to announce
		return
	}
	if prev != "" {
		remaining := r.registry.Remove(prev, c)
		r.announce(remaining, c.Username(), domain.LeaveAnnouncement)
	}

	c.setRoom(roomID)
	r.registry.Add(roomID, c)
	r.announceExcept(roomID, c, c.Username(), domain.JoinAnnouncement)

	slog.Info("client joined room", "clientId", c.ID, "room", roomID)
}

// handleUpdateUsername replaces the display name, any time, any number
// of times. Names are presentation-only: members are identified by
// connection id, and two members may share a name.
func (r *Relay) handleUpdateUsername(c *Client, evt domain.Event) {
	var p domain.UpdateUsernamePayload
	if err := json.Unmarshal(evt.Payload, &p); err != nil {
		return
	}

	name := SanitizeUsername(p.Username)
	if name == "" {
		return
	}
	c.SetUsername(name)
}

// handleChatMessage broadcasts a chat message to every member of the
// sender's room, including the sender, with the sender's current
// display name attached
func (r *Relay) handleChatMessage(c *Client, evt domain.Event) {
	var p domain.ChatMessagePayload
	if err := json.Unmarshal(evt.Payload, &p); err != nil {
		return
	}
	if strings.TrimSpace(p.Message) == "" {
		return
	}

	room := c.Room()
	if room == "" || p.RoomID != room {
		return
	}

	data, err := domain.Encode(domain.EventRoomMessage, domain.RoomMessagePayload{
		Username: c.Username(),
		Message:  p.Message,
	})
	if err != nil {
		return
	}

	for _, m := range r.registry.MembersOf(room) {
		m.Send(data)
	}
}

// handleVideoControl rebroadcasts a playback event to every member of
// the sender's room except the sender, with the room id stripped. The
// sender already applied the state change locally; echoing it back
// would retrigger it.
func (r *Relay) handleVideoControl(c *Client, evt domain.Event) {
	var p domain.VideoControlPayload
	if err := json.Unmarshal(evt.Payload, &p); err != nil {
		return
	}

	room := c.Room()
	if room == "" || p.RoomID != room {
		return
	}

	data, err := domain.Encode(evt.Type, domain.VideoSyncPayload{CurrentTime: p.CurrentTime})
	if err != nil {
		return
	}

	for _, m := range r.registry.MembersOf(room) {
		if m.ID == c.ID {
			continue
		}
		m.Send(data)
	}
}

// announce delivers a roomMessage with the given sentinel text to the
// listed members
func (r *Relay) announce(members []*Client, username, text string) {
	if len(members) == 0 {
		return
	}

	data, err := domain.Encode(domain.EventRoomMessage, domain.RoomMessagePayload{
		Username: username,
		Message:  text,
	})
	if err != nil {
		return
	}

	for _, m := range members {
		m.Send(data)
	}
}

// announceExcept announces to all members of a room except one
func (r *Relay) announceExcept(roomID string, except *Client, username, text string) {
	members := r.registry.MembersOf(roomID)
	filtered := members[:0]
	for _, m := range members {
		if m.ID != except.ID {
			filtered = append(filtered, m)
		}
	}
	r.announce(filtered, username, text)
}

// decodeRoomID accepts either {"roomId":"..."} or a bare JSON string
func decodeRoomID(payload json.RawMessage) string {
	var p domain.JoinRoomPayload
	if err := json.Unmarshal(payload, &p); err == nil && p.RoomID != "" {
		return p.RoomID
	}

	var roomID string
	if err := json.Unmarshal(payload, &roomID); err == nil {
		return roomID
	}
	return ""
}

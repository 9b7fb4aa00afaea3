package client

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danprtma/watchparty/internal/domain"
)

// ErrClosed is returned when emitting on a session that has been
// released or whose connection is gone.
var ErrClosed = errors.New("session closed")

// Handler consumes one inbound event from the relay
type Handler func(domain.Event)

// Session is one websocket connection to the relay, shared by every
// component that needs it (chat view, reconciler). It is reference
// counted: the connection is torn down when the last holder releases.
type Session struct {
	url string

	mu       sync.Mutex
	refs     int
	conn     *websocket.Conn
	handlers map[domain.EventType][]Handler

	send chan []byte
	done chan struct{}
	once sync.Once
}

// NewSession creates a session for the given websocket URL. The caller
// holds the first reference.
func NewSession(url string) *Session {
	return &Session{
		url:      url,
		refs:     1,
		handlers: make(map[domain.EventType][]Handler),
		send:     make(chan []byte, 64),
		done:     make(chan struct{}),
	}
}

// Acquire takes an additional reference and returns the same session
func (s *Session) Acquire() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs++
	return s
}

// Release drops one reference. The connection is closed when the count
// reaches zero.
func (s *Session) Release() {
	s.mu.Lock()
	s.refs--
	last := s.refs <= 0
	s.mu.Unlock()

	if last {
		s.close()
	}
}

// Connect dials the relay and starts the read and write loops
func (s *Session) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	go s.readPump()
	go s.writePump()
	return nil
}

// Done is closed when the connection has ended, for any reason
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// On registers a handler for one event type. Multiple handlers per
// type are allowed and run in registration order.
func (s *Session) On(t domain.EventType, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[t] = append(s.handlers[t], h)
}

// Emit encodes and queues one event for delivery to the relay
func (s *Session) Emit(t domain.EventType, payload interface{}) error {
	data, err := domain.Encode(t, payload)
	if err != nil {
		return err
	}

	select {
	case <-s.done:
		return ErrClosed
	default:
	}

	select {
	case s.send <- data:
		return nil
	case <-s.done:
		return ErrClosed
	}
}

// JoinRoom requests membership in a room, implicitly leaving the
// previous one
func (s *Session) JoinRoom(roomID string) error {
	return s.Emit(domain.EventJoinRoom, domain.JoinRoomPayload{RoomID: roomID})
}

// UpdateUsername replaces the display name shown on chat messages
func (s *Session) UpdateUsername(name string) error {
	return s.Emit(domain.EventUpdateUsername, domain.UpdateUsernamePayload{Username: name})
}

// SendChat sends a chat message to the room. The relay echoes it back
// as a roomMessage, sender included.
func (s *Session) SendChat(roomID, message string) error {
	return s.Emit(domain.EventChatMessage, domain.ChatMessagePayload{
		RoomID:  roomID,
		Message: message,
	})
}

// Playback returns an emitter for playback-control events scoped to
// one room, suitable for driving a Reconciler
func (s *Session) Playback(roomID string) *Playback {
	return &Playback{session: s, roomID: roomID}
}

func (s *Session) readPump() {
	defer s.close()

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var evt domain.Event
		if err := domain.Decode(data, &evt); err != nil {
			slog.Debug("malformed event from relay", "error", err)
			continue
		}

		s.mu.Lock()
		handlers := append([]Handler(nil), s.handlers[evt.Type]...)
		s.mu.Unlock()

		for _, h := range handlers {
			h(evt)
		}
	}
}

func (s *Session) writePump() {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	for {
		select {
		case data := <-s.send:
			conn.SetWriteDeadline(time.Now().Add(domain.WriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.close()
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *Session) close() {
	s.once.Do(func() {
		close(s.done)

		s.mu.Lock()
		conn := s.conn
		s.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
	})
}

// Playback emits play, pause, and seek events for one room. The room
// id travels with the outbound event and is stripped by the relay
// before fan-out.
type Playback struct {
	session *Session
	roomID  string
}

// Play broadcasts that playback started at the given position
func (p *Playback) Play(currentTime float64) error {
	return p.session.Emit(domain.EventVideoPlay, domain.VideoControlPayload{
		RoomID:      p.roomID,
		CurrentTime: currentTime,
	})
}

// Pause broadcasts that playback paused at the given position
func (p *Playback) Pause(currentTime float64) error {
	return p.session.Emit(domain.EventVideoPause, domain.VideoControlPayload{
		RoomID:      p.roomID,
		CurrentTime: currentTime,
	})
}

// Seek broadcasts a jump to the given position
func (p *Playback) Seek(currentTime float64) error {
	return p.session.Emit(domain.EventVideoSeek, domain.VideoControlPayload{
		RoomID:      p.roomID,
		CurrentTime: currentTime,
	})
}

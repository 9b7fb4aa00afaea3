package domain

import "encoding/json"

// EventType defines the type of event on the wire
type EventType string

const (
	// client -> relay
	EventJoinRoom       EventType = "joinRoom"
	EventUpdateUsername EventType = "updateUsername"
	EventChatMessage    EventType = "chatMessage"

	// relay -> client
	EventRoomMessage EventType = "roomMessage"

	// both directions (relay strips roomId and excludes the sender on rebroadcast)
	EventVideoPlay  EventType = "video:play"
	EventVideoPause EventType = "video:pause"
	EventVideoSeek  EventType = "video:seek"
)

// Event is the wire envelope for every message exchanged with the relay
type Event struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Encode marshals an event with the given payload into wire bytes
func Encode(t EventType, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Type: t, Payload: raw})
}

// Decode unmarshals wire bytes into an event envelope
func Decode(data []byte, evt *Event) error {
	return json.Unmarshal(data, evt)
}

// JoinRoomPayload carries the room a connection wants to enter
type JoinRoomPayload struct {
	RoomID string `json:"roomId"`
}

// UpdateUsernamePayload replaces the connection's display name
type UpdateUsernamePayload struct {
	Username string `json:"username"`
}

// ChatMessagePayload is a chat message sent by a client.
// The relay attaches the sender's display name on rebroadcast.
type ChatMessagePayload struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

// RoomMessagePayload is what room members receive for both chat
// and join/leave announcements (the announcement text is a sentinel
// message string, not a distinct event type)
type RoomMessagePayload struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// VideoControlPayload is a playback event sent by a client
type VideoControlPayload struct {
	RoomID      string  `json:"roomId"`
	CurrentTime float64 `json:"currentTime"`
}

// VideoSyncPayload is a playback event as delivered to the other
// members of the room
type VideoSyncPayload struct {
	CurrentTime float64 `json:"currentTime"`
}

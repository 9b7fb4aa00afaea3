package domain

import "time"

// ==== Announcement Sentinels ====

// Announcement texts delivered as roomMessage payloads. Clients render
// them verbatim after the display name.
const (
	JoinAnnouncement  = "has joined the room"
	LeaveAnnouncement = "has left the room"
)

// ==== WebSocket Constants ====

// MaxMessageSize is the maximum allowed WebSocket message size in bytes
const MaxMessageSize = 4096

// ==== Timing Constants ====

const (
	// DefaultPongWait is how long a connection may stay silent before it
	// is treated as disconnected
	DefaultPongWait = 30 * time.Minute

	// DefaultPingPeriod is how often the relay pings each connection
	DefaultPingPeriod = 25 * time.Second

	// WriteWait is the time allowed to write a single message to a peer
	WriteWait = 10 * time.Second
)

// ==== Identity Constants ====

// MaxUsernameLength caps display names; longer names are truncated
const MaxUsernameLength = 32

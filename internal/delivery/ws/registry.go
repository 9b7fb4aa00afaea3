package ws

import (
	"log/slog"
	"sync"
)

// Registry maps room ids to their member connections. It is an owned
// object injected into the relay, never package-level state, so tests
// can run against isolated instances.
//
// Rooms are created lazily on first join and removed again when their
// last member leaves.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]map[string]*Client // roomId -> clientId -> client
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]map[string]*Client),
	}
}

// Add inserts a connection into a room's member set, creating the room
// if absent
func (r *Registry) Add(roomID string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[roomID]
	if !ok {
		members = make(map[string]*Client)
		r.rooms[roomID] = members
		slog.Debug("room created", "room", roomID)
	}
	members[c.ID] = c
}

// Remove deletes a connection from a room's member set and returns a
// snapshot of the remaining members. A room with no members left is
// dropped from the registry.
func (r *Registry) Remove(roomID string, c *Client) []*Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	delete(members, c.ID)

	if len(members) == 0 {
		delete(r.rooms, roomID)
		slog.Debug("room removed", "room", roomID)
		return nil
	}

	remaining := make([]*Client, 0, len(members))
	for _, m := range members {
		remaining = append(remaining, m)
	}
	return remaining
}

// MembersOf returns a snapshot of the room's current member set, in no
// particular order. Used by the relay for fan-out; never exposed for
// enumeration by clients.
func (r *Registry) MembersOf(roomID string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.rooms[roomID]
	if !ok {
		return nil
	}

	snapshot := make([]*Client, 0, len(members))
	for _, m := range members {
		snapshot = append(snapshot, m)
	}
	return snapshot
}

// Contains reports whether the connection is a member of the room
func (r *Registry) Contains(roomID string, c *Client) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.rooms[roomID]
	if !ok {
		return false
	}
	_, in := members[c.ID]
	return in
}

// Counts returns the number of rooms and total memberships
func (r *Registry) Counts() (rooms, members int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms = len(r.rooms)
	for _, m := range r.rooms {
		members += len(m)
	}
	return rooms, members
}

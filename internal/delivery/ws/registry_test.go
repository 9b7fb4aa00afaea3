package ws

import (
	"sync"
	"testing"
)

func TestRegistry_AddCreatesRoomLazily(t *testing.T) {
	reg := NewRegistry()
	r := newTestRelay()
	a := newMockClient(r, "Alice")

	if rooms, _ := reg.Counts(); rooms != 0 {
		t.Fatalf("Expected empty registry, got %d rooms", rooms)
	}

	reg.Add("abc123", a)

	if !reg.Contains("abc123", a) {
		t.Error("Expected member after Add")
	}
	if rooms, members := reg.Counts(); rooms != 1 || members != 1 {
		t.Errorf("Expected 1 room / 1 member, got %d / %d", rooms, members)
	}
}

func TestRegistry_MembersOfSnapshot(t *testing.T) {
	reg := NewRegistry()
	r := newTestRelay()
	a := newMockClient(r, "Alice")
	b := newMockClient(r, "Bob")

	reg.Add("abc123", a)
	reg.Add("abc123", b)

	members := reg.MembersOf("abc123")
	if len(members) != 2 {
		t.Fatalf("Expected 2 members, got %d", len(members))
	}

	if reg.MembersOf("missing") != nil {
		t.Error("Expected nil for unknown room")
	}
}

func TestRegistry_RemoveReturnsRemaining(t *testing.T) {
	reg := NewRegistry()
	r := newTestRelay()
	a := newMockClient(r, "Alice")
	b := newMockClient(r, "Bob")

	reg.Add("abc123", a)
	reg.Add("abc123", b)

	remaining := reg.Remove("abc123", a)
	if len(remaining) != 1 || remaining[0].ID != b.ID {
		t.Errorf("Expected only Bob remaining, got %d members", len(remaining))
	}
	if reg.Contains("abc123", a) {
		t.Error("Removed member should not be contained")
	}
}

func TestRegistry_EmptyRoomTornDown(t *testing.T) {
	reg := NewRegistry()
	r := newTestRelay()
	a := newMockClient(r, "Alice")

	reg.Add("abc123", a)
	remaining := reg.Remove("abc123", a)

	if remaining != nil {
		t.Errorf("Expected no remaining members, got %d", len(remaining))
	}
	if rooms, _ := reg.Counts(); rooms != 0 {
		t.Errorf("Expected room to be removed when empty, got %d rooms", rooms)
	}
}

func TestRegistry_RemoveUnknownRoomIsNoop(t *testing.T) {
	reg := NewRegistry()
	r := newTestRelay()
	a := newMockClient(r, "Alice")

	if remaining := reg.Remove("missing", a); remaining != nil {
		t.Errorf("Expected nil, got %d members", len(remaining))
	}
}

func TestRegistry_RoomIDsAreCaseSensitive(t *testing.T) {
	reg := NewRegistry()
	r := newTestRelay()
	a := newMockClient(r, "Alice")

	reg.Add("Movies", a)

	if reg.Contains("movies", a) {
		t.Error("Room ids must be case-sensitive")
	}
}

func TestRegistry_Concurrency(t *testing.T) {
	reg := NewRegistry()
	r := newTestRelay()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := newMockClient(r, "")
			reg.Add("shared", c)
			reg.MembersOf("shared")
			reg.Remove("shared", c)
		}()
	}
	wg.Wait()

	if rooms, members := reg.Counts(); rooms != 0 || members != 0 {
		t.Errorf("Expected empty registry, got %d rooms / %d members", rooms, members)
	}
}

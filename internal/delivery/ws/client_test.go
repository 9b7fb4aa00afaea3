package ws

import (
	"strings"
	"testing"
)

func TestNewClient(t *testing.T) {
	r := newTestRelay()

	client := NewClient(r, nil)

	if client == nil {
		t.Fatal("Expected client to be created")
	}
	if client.ID == "" {
		t.Error("Expected an assigned connection id")
	}
	if client.relay != r {
		t.Error("Expected client.relay to be the relay it was created for")
	}
	if client.send == nil {
		t.Error("Expected client.send channel to be initialized")
	}
	if client.Room() != "" {
		t.Errorf("New connection should occupy no room, got %q", client.Room())
	}
}

func TestNewClient_DefaultUsernameDerivedFromID(t *testing.T) {
	r := newTestRelay()
	client := NewClient(r, nil)

	want := "user-" + client.ID[:8]
	if client.Username() != want {
		t.Errorf("Expected default username %s, got %s", want, client.Username())
	}
	if !strings.HasPrefix(client.Username(), "user-") {
		t.Errorf("Default username should be derived from the id, got %s", client.Username())
	}
}

func TestNewClient_IDsNeverReused(t *testing.T) {
	r := newTestRelay()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		c := NewClient(r, nil)
		if seen[c.ID] {
			t.Fatalf("Connection id reused: %s", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestClient_Send(t *testing.T) {
	r := newTestRelay()
	client := NewClient(r, nil)

	msg := []byte("test message")
	client.Send(msg)

	select {
	case received := <-client.send:
		if string(received) != "test message" {
			t.Errorf("Expected 'test message', got %s", string(received))
		}
	default:
		t.Error("Expected message to be in send channel")
	}
}

func TestClient_SendBufferFullDrops(t *testing.T) {
	r := newTestRelay()

	client := &Client{
		ID:    "small-buffer",
		relay: r,
		send:  make(chan []byte, 2),
	}

	client.Send([]byte("msg1"))
	client.Send([]byte("msg2"))

	// Buffer full: this must drop, not block
	client.Send([]byte("msg3"))

	<-client.send
	<-client.send

	select {
	case <-client.send:
		t.Error("Expected no more messages (third should be dropped)")
	default:
		// Expected - buffer was full, msg3 dropped
	}
}

func TestClient_SetUsername(t *testing.T) {
	r := newTestRelay()
	client := NewClient(r, nil)

	client.SetUsername("Alice")
	if client.Username() != "Alice" {
		t.Errorf("Expected Alice, got %s", client.Username())
	}

	// Unconditional replace, any number of times
	client.SetUsername("Bob")
	client.SetUsername("Bob")
	if client.Username() != "Bob" {
		t.Errorf("Expected Bob, got %s", client.Username())
	}
}

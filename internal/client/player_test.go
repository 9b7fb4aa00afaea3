package client

import (
	"testing"
	"time"
)

// fixedClock lets tests advance the wall clock manually
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time {
	return c.t
}

func (c *fixedClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestClockPlayer() (*ClockPlayer, *fixedClock) {
	clock := &fixedClock{t: time.Unix(1000, 0)}
	p := NewClockPlayer()
	p.now = clock.now
	return p, clock
}

func TestClockPlayer_StartsStopped(t *testing.T) {
	p, _ := newTestClockPlayer()

	if p.Playing() {
		t.Error("New player should not be playing")
	}
	if p.Position() != 0 {
		t.Errorf("Expected position 0, got %v", p.Position())
	}
}

func TestClockPlayer_PositionAdvancesWhilePlaying(t *testing.T) {
	p, clock := newTestClockPlayer()

	p.Play()
	clock.advance(10 * time.Second)

	if got := p.Position(); got != 10.0 {
		t.Errorf("Expected position 10.0, got %v", got)
	}
}

func TestClockPlayer_PauseFreezesPosition(t *testing.T) {
	p, clock := newTestClockPlayer()

	p.Play()
	clock.advance(5 * time.Second)
	p.Pause()
	clock.advance(60 * time.Second)

	if got := p.Position(); got != 5.0 {
		t.Errorf("Expected position frozen at 5.0, got %v", got)
	}
}

func TestClockPlayer_SeekWhilePlaying(t *testing.T) {
	p, clock := newTestClockPlayer()

	p.Play()
	clock.advance(5 * time.Second)
	p.Seek(100)
	clock.advance(2 * time.Second)

	if got := p.Position(); got != 102.0 {
		t.Errorf("Expected position 102.0, got %v", got)
	}
	if !p.Playing() {
		t.Error("Seek must not change play state")
	}
}

func TestClockPlayer_SeekWhilePaused(t *testing.T) {
	p, clock := newTestClockPlayer()

	p.Seek(42)
	clock.advance(30 * time.Second)

	if got := p.Position(); got != 42.0 {
		t.Errorf("Expected position 42.0, got %v", got)
	}
}

func TestClockPlayer_SeekClampsNegative(t *testing.T) {
	p, _ := newTestClockPlayer()

	p.Seek(-5)

	if got := p.Position(); got != 0 {
		t.Errorf("Expected position clamped to 0, got %v", got)
	}
}

func TestClockPlayer_PlayPauseIdempotent(t *testing.T) {
	p, clock := newTestClockPlayer()

	p.Play()
	clock.advance(3 * time.Second)
	p.Play() // already playing, no reset
	clock.advance(3 * time.Second)

	if got := p.Position(); got != 6.0 {
		t.Errorf("Expected position 6.0, got %v", got)
	}

	p.Pause()
	p.Pause()
	if got := p.Position(); got != 6.0 {
		t.Errorf("Expected position 6.0 after pause, got %v", got)
	}
}

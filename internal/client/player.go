package client

import (
	"sync"
	"time"
)

// ClockPlayer simulates playback against the wall clock. It has no
// media: the position simply advances in real time while playing. The
// TUI uses it so every participant still shares one timeline even
// though the video itself plays elsewhere.
type ClockPlayer struct {
	mu      sync.Mutex
	playing bool
	base    float64
	since   time.Time

	now func() time.Time
}

// NewClockPlayer creates a stopped player at position zero
func NewClockPlayer() *ClockPlayer {
	return &ClockPlayer{now: time.Now}
}

// Play starts the clock
func (p *ClockPlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing {
		return
	}
	p.playing = true
	p.since = p.now()
}

// Pause freezes the position
func (p *ClockPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing {
		return
	}
	p.base += p.now().Sub(p.since).Seconds()
	p.playing = false
}

// Position returns the current position in seconds
func (p *ClockPlayer) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing {
		return p.base + p.now().Sub(p.since).Seconds()
	}
	return p.base
}

// Seek jumps to an absolute position without changing play state
func (p *ClockPlayer) Seek(pos float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pos < 0 {
		pos = 0
	}
	p.base = pos
	p.since = p.now()
}

// Playing reports whether the clock is advancing
func (p *ClockPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

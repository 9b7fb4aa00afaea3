package client

import (
	"math"
	"sync"
)

// DampeningThreshold is how close (in seconds) a local seek may land to
// the last remotely reconciled position and still be treated as the
// player settling after that reconciliation rather than a user action.
// Without it, applying a remote seek fires the player's own seeked
// callback, which would rebroadcast the seek and bounce it around the
// room forever.
const DampeningThreshold = 0.2

// PlaybackState is the reconciler's view of the local player
type PlaybackState int

const (
	StateIdle PlaybackState = iota
	StatePlaying
	StatePaused
	StateSeeking
)

func (s PlaybackState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateSeeking:
		return "seeking"
	default:
		return "idle"
	}
}

// Player is the local media surface the reconciler drives. Positions
// are in seconds.
type Player interface {
	Play()
	Pause()
	Position() float64
	Seek(pos float64)
}

// PlaybackEmitter broadcasts local playback actions to the room
type PlaybackEmitter interface {
	Play(currentTime float64) error
	Pause(currentTime float64) error
	Seek(currentTime float64) error
}

// Reconciler keeps one local player in sync with the room. Remote
// events are applied to the player without re-emitting; local actions
// are applied and emitted exactly once.
type Reconciler struct {
	mu      sync.Mutex
	player  Player
	emitter PlaybackEmitter
	state   PlaybackState

	// position of the last remote event applied to the player
	lastReconciled float64
	reconciled     bool

	// state to return to once a seek settles
	resume PlaybackState
}

// NewReconciler creates a reconciler around a player and an emitter
func NewReconciler(player Player, emitter PlaybackEmitter) *Reconciler {
	return &Reconciler{
		player:  player,
		emitter: emitter,
		state:   StateIdle,
	}
}

// State returns the current playback state
func (r *Reconciler) State() PlaybackState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// ApplyRemotePlay moves the player to the sender's position and starts
// playback. Nothing is emitted back.
func (r *Reconciler) ApplyRemotePlay(currentTime float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.player.Seek(currentTime)
	r.player.Play()
	r.state = StatePlaying
	r.markReconciled(currentTime)
}

// ApplyRemotePause moves the player to the sender's position and
// pauses. Nothing is emitted back.
func (r *Reconciler) ApplyRemotePause(currentTime float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.player.Seek(currentTime)
	r.player.Pause()
	r.state = StatePaused
	r.markReconciled(currentTime)
}

// ApplyRemoteSeek jumps the player to the sender's position. The
// follow-up seeked callback from the player lands within the
// dampening threshold and is suppressed by LocalSeeked.
func (r *Reconciler) ApplyRemoteSeek(currentTime float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.beginSeek()
	r.player.Seek(currentTime)
	r.markReconciled(currentTime)
}

// LocalPlay starts local playback and broadcasts it
func (r *Reconciler) LocalPlay() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.player.Play()
	r.state = StatePlaying
	return r.emitter.Play(r.player.Position())
}

// LocalPause pauses local playback and broadcasts it
func (r *Reconciler) LocalPause() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.player.Pause()
	r.state = StatePaused
	return r.emitter.Pause(r.player.Position())
}

// LocalSkip jumps the player by delta seconds (negative rewinds) and
// broadcasts the resulting position exactly once. The player's own
// seeked callback is absorbed by the dampening window.
func (r *Reconciler) LocalSkip(delta float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos := r.player.Position() + delta
	if pos < 0 {
		pos = 0
	}
	r.beginSeek()
	r.player.Seek(pos)
	r.markReconciled(pos)
	return r.emitter.Seek(pos)
}

// LocalSeeked handles the player's seeked callback. A seek that lands
// within the dampening threshold of the last reconciled position is
// the echo of a remote (or already-emitted) seek and is swallowed;
// anything farther is a genuine user seek and is broadcast.
func (r *Reconciler) LocalSeeked(pos float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.reconciled && math.Abs(pos-r.lastReconciled) <= DampeningThreshold {
		r.settle()
		return nil
	}

	r.markReconciled(pos)
	r.settle()
	return r.emitter.Seek(pos)
}

// markReconciled records a position as already agreed with the room.
// Callers must hold the mutex.
func (r *Reconciler) markReconciled(pos float64) {
	r.lastReconciled = pos
	r.reconciled = true
}

// beginSeek enters the transient seeking state, remembering what to
// resume. Callers must hold the mutex.
func (r *Reconciler) beginSeek() {
	if r.state != StateSeeking {
		r.resume = r.state
	}
	r.state = StateSeeking
}

// settle leaves the transient seeking state. Callers must hold the
// mutex.
func (r *Reconciler) settle() {
	if r.state == StateSeeking {
		r.state = r.resume
	}
}

// Package player holds the playback state machine: what is loaded, whether
// it is playing, and the transport flags (volume, mute, rate, fullscreen,
// picture-in-picture). It is driven by user controls and by events from
// the underlying playback element; on a natural end it asks the queue for
// the next entry.
package player

import (
	"log/slog"
	"time"

	"ntsync/internal/domain"
)

// State is the lifecycle phase of the player.
type State int

const (
	StateIdle    State = iota // no current entry
	StateLoading              // entry set, awaiting the ready signal
	StatePlaying
	StatePaused
	StateEnded
	StateError // load/decode failure; never auto-advances
)

// String returns a human-readable state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// advancer selects the next queue entry on a natural end
// (consumer-defined interface).
type advancer interface {
	Advance() *domain.VideoEntry
}

// Player is the singleton playback state machine. All methods are
// synchronous and called from the UI event loop only.
type Player struct {
	queue  advancer
	logger *slog.Logger

	state   State
	current *domain.VideoEntry
	lastErr error

	position time.Duration
	duration time.Duration

	volume     int // 0-100
	muted      bool
	rate       float64
	fullscreen bool
	pip        bool

	// seeking suppresses element ticks until the pending seek settles,
	// so the displayed time never flickers back to the pre-seek position
	seeking bool

	// autoplay controls whether Ready lands in Playing or Paused
	autoplay bool

	// generation stamps each load; events carrying a stale generation
	// belong to a superseded entry and are discarded
	generation uint64
}

// New creates an idle player wired to the given queue.
func New(queue advancer, autoplay bool, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		queue:    queue,
		logger:   logger,
		state:    StateIdle,
		volume:   100,
		rate:     1.0,
		autoplay: autoplay,
	}
}

// Load makes entry current and enters Loading. Any in-flight effects of
// the previous entry are implicitly cancelled: the returned generation
// must accompany every later element event for this entry.
func (p *Player) Load(entry domain.VideoEntry) uint64 {
	p.generation++
	p.current = &entry
	p.state = StateLoading
	p.position = 0
	p.duration = entry.Duration
	p.seeking = false
	p.lastErr = nil

	p.logger.Info("loading entry", "id", entry.ID, "title", entry.Title, "kind", entry.Kind.String())
	return p.generation
}

// Ready delivers the element's ready signal. startAt pre-seeds the
// position from a restored progress record so playback resumes without a
// visible jump; it is clamped to the reported duration.
func (p *Player) Ready(gen uint64, duration, startAt time.Duration) {
	if gen != p.generation || p.state != StateLoading {
		return
	}
	p.duration = duration
	if p.current != nil && p.current.Duration == 0 {
		p.current.Duration = duration
	}
	p.position = clampDuration(startAt, duration)
	if p.autoplay {
		p.state = StatePlaying
	} else {
		p.state = StatePaused
	}
}

// Tick delivers a time update from the playback element. Stale
// generations, non-playing states, and pending seeks are all ignored.
// Returns true when the position was applied.
func (p *Player) Tick(gen uint64, position time.Duration) bool {
	if gen != p.generation || p.state != StatePlaying || p.seeking {
		return false
	}
	p.position = clampDuration(position, p.duration)
	return true
}

// Ended handles the element's natural-end event: ask the queue for the
// next entry and load it, or go Idle when the queue is exhausted.
// Returns the newly loaded entry and its generation, or nil.
func (p *Player) Ended(gen uint64) (*domain.VideoEntry, uint64) {
	if gen != p.generation || p.current == nil {
		return nil, 0
	}
	p.state = StateEnded

	next := p.queue.Advance()
	if next == nil {
		p.logger.Info("queue exhausted", "last", p.current.ID)
		p.Stop()
		return nil, 0
	}
	g := p.Load(*next)
	return next, g
}

// Fail transitions to Error on a load/decode failure. The queue is not
// advanced: a broken queue must not cascade. Recovery is an explicit
// user Retry or Skip.
func (p *Player) Fail(gen uint64, err error) {
	if gen != p.generation || p.current == nil {
		return
	}
	p.state = StateError
	p.lastErr = err
	p.logger.Warn("playback failed", "id", p.current.ID, "error", err)
}

// Retry reloads the current entry after an Error. No-op otherwise.
func (p *Player) Retry() uint64 {
	if p.state != StateError || p.current == nil {
		return 0
	}
	return p.Load(*p.current)
}

// Skip abandons the current entry (typically from Error) and advances.
func (p *Player) Skip() (*domain.VideoEntry, uint64) {
	if p.current == nil {
		return nil, 0
	}
	next := p.queue.Advance()
	if next == nil {
		p.Stop()
		return nil, 0
	}
	g := p.Load(*next)
	return next, g
}

// Play resumes a paused or ended entry. No-op in Idle, Loading and Error.
func (p *Player) Play() {
	switch p.state {
	case StatePaused, StateEnded:
		p.state = StatePlaying
	}
}

// Pause halts playback. No-op unless playing.
func (p *Player) Pause() {
	if p.state == StatePlaying {
		p.state = StatePaused
	}
}

// TogglePlay flips between Playing and Paused.
func (p *Player) TogglePlay() {
	switch p.state {
	case StatePlaying:
		p.state = StatePaused
	case StatePaused, StateEnded:
		p.state = StatePlaying
	}
}

// Seek jumps to t, clamped to [0, duration]. Valid only once the
// duration is known; until SeekDone the element's ticks are suppressed.
func (p *Player) Seek(t time.Duration) {
	switch p.state {
	case StatePlaying, StatePaused, StateEnded:
	default:
		return
	}
	p.position = clampDuration(t, p.duration)
	p.seeking = true
}

// SeekDone delivers the element's seeked signal, re-enabling ticks.
func (p *Player) SeekDone(gen uint64) {
	if gen != p.generation {
		return
	}
	p.seeking = false
}

// SetVolume clamps to [0,100]. A non-zero volume while muted unmutes.
func (p *Player) SetVolume(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	p.volume = percent
	if percent > 0 && p.muted {
		p.muted = false
	}
}

// SetMuted sets the mute flag directly.
func (p *Player) SetMuted(muted bool) { p.muted = muted }

// ToggleMute flips the mute flag.
func (p *Player) ToggleMute() { p.muted = !p.muted }

// SetRate sets the playback rate; non-positive rates are ignored.
func (p *Player) SetRate(rate float64) {
	if rate <= 0 {
		return
	}
	p.rate = rate
}

// ToggleFullscreen flips the fullscreen flag; orthogonal to state.
func (p *Player) ToggleFullscreen() { p.fullscreen = !p.fullscreen }

// TogglePiP flips the picture-in-picture flag; orthogonal to state.
func (p *Player) TogglePiP() { p.pip = !p.pip }

// Stop clears the current entry and returns to Idle.
func (p *Player) Stop() {
	p.generation++
	p.state = StateIdle
	p.current = nil
	p.position = 0
	p.duration = 0
	p.seeking = false
	p.lastErr = nil
}

// Accessors

func (p *Player) State() State                  { return p.state }
func (p *Player) Current() *domain.VideoEntry   { return p.current }
func (p *Player) Position() time.Duration       { return p.position }
func (p *Player) Duration() time.Duration       { return p.duration }
func (p *Player) Volume() int                   { return p.volume }
func (p *Player) Muted() bool                   { return p.muted }
func (p *Player) Rate() float64                 { return p.rate }
func (p *Player) Fullscreen() bool              { return p.fullscreen }
func (p *Player) PiP() bool                     { return p.pip }
func (p *Player) Seeking() bool                 { return p.seeking }
func (p *Player) Err() error                    { return p.lastErr }
func (p *Player) Generation() uint64            { return p.generation }

func clampDuration(t, max time.Duration) time.Duration {
	if t < 0 {
		return 0
	}
	if max > 0 && t > max {
		return max
	}
	return t
}

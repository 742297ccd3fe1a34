package player

import (
	"errors"
	"testing"
	"time"

	"ntsync/internal/domain"
	"ntsync/internal/log"
	"ntsync/internal/queue"
)

func newPlayer(t *testing.T, ids ...string) (*Player, *queue.Manager) {
	t.Helper()
	q := queue.New(nil)
	for _, id := range ids {
		q.Add(domain.VideoEntry{ID: id, Title: id})
	}
	return New(q, true, log.NullLogger()), q
}

func TestLoadReadyPlay(t *testing.T) {
	p, _ := newPlayer(t, "a")

	if p.State() != StateIdle {
		t.Fatalf("initial state = %v", p.State())
	}

	gen := p.Load(domain.VideoEntry{ID: "a", Title: "A"})
	if p.State() != StateLoading {
		t.Fatalf("state after load = %v", p.State())
	}

	// play/pause are no-ops while loading
	p.Play()
	p.Pause()
	if p.State() != StateLoading {
		t.Errorf("play/pause should be no-ops in Loading, state = %v", p.State())
	}

	p.Ready(gen, 100*time.Second, 0)
	if p.State() != StatePlaying {
		t.Fatalf("autoplay player should be playing, state = %v", p.State())
	}
	if p.Duration() != 100*time.Second {
		t.Errorf("duration = %v", p.Duration())
	}
}

func TestReadyWithResumeOffset(t *testing.T) {
	p, _ := newPlayer(t)
	gen := p.Load(domain.VideoEntry{ID: "a"})

	p.Ready(gen, 100*time.Second, 42*time.Second)
	if p.Position() != 42*time.Second {
		t.Errorf("position = %v, want 42s", p.Position())
	}

	// offset beyond duration clamps
	gen = p.Load(domain.VideoEntry{ID: "b"})
	p.Ready(gen, 10*time.Second, 42*time.Second)
	if p.Position() != 10*time.Second {
		t.Errorf("position = %v, want clamp to 10s", p.Position())
	}
}

func TestSeekClamps(t *testing.T) {
	p, _ := newPlayer(t)
	gen := p.Load(domain.VideoEntry{ID: "a"})
	p.Ready(gen, 100*time.Second, 0)

	p.Seek(-5 * time.Second)
	if p.Position() != 0 {
		t.Errorf("seek(-5) position = %v, want 0", p.Position())
	}
	p.SeekDone(gen)

	p.Seek(1000 * time.Second)
	if p.Position() != 100*time.Second {
		t.Errorf("seek(1000) position = %v, want 100s", p.Position())
	}
}

func TestSeekSuppressesTicks(t *testing.T) {
	p, _ := newPlayer(t)
	gen := p.Load(domain.VideoEntry{ID: "a"})
	p.Ready(gen, 100*time.Second, 0)

	p.Seek(50 * time.Second)
	if p.Tick(gen, 10*time.Second) {
		t.Error("tick applied while a seek was pending")
	}
	if p.Position() != 50*time.Second {
		t.Errorf("position flickered back to %v", p.Position())
	}

	p.SeekDone(gen)
	if !p.Tick(gen, 51*time.Second) {
		t.Error("tick rejected after seek settled")
	}
	if p.Position() != 51*time.Second {
		t.Errorf("position = %v", p.Position())
	}
}

func TestSeekInvalidWhileLoading(t *testing.T) {
	p, _ := newPlayer(t)
	p.Load(domain.VideoEntry{ID: "a"})

	p.Seek(10 * time.Second)
	if p.Position() != 0 || p.Seeking() {
		t.Error("seek should be rejected before duration is known")
	}
}

func TestStaleGenerationDiscarded(t *testing.T) {
	p, _ := newPlayer(t)
	oldGen := p.Load(domain.VideoEntry{ID: "old"})
	newGen := p.Load(domain.VideoEntry{ID: "new"})
	p.Ready(newGen, 60*time.Second, 0)

	// late-arriving effects of the old load must not clobber the new entry
	p.Ready(oldGen, 999*time.Second, 0)
	if p.Duration() != 60*time.Second {
		t.Errorf("stale ready applied: duration = %v", p.Duration())
	}
	if p.Tick(oldGen, 30*time.Second) {
		t.Error("stale tick applied")
	}
	p.Fail(oldGen, errors.New("network"))
	if p.State() == StateError {
		t.Error("stale failure applied")
	}
}

func TestEndedAdvancesQueue(t *testing.T) {
	p, q := newPlayer(t, "a", "b")
	cur := q.Current()
	gen := p.Load(*cur)
	p.Ready(gen, 10*time.Second, 0)

	next, nextGen := p.Ended(gen)
	if next == nil || next.ID != "b" {
		t.Fatalf("ended should load next entry, got %v", next)
	}
	if p.State() != StateLoading {
		t.Errorf("state = %v, want Loading", p.State())
	}
	if nextGen == gen {
		t.Error("new load must carry a new generation")
	}
}

func TestEndedExhaustedGoesIdle(t *testing.T) {
	p, q := newPlayer(t, "a")
	gen := p.Load(*q.Current())
	p.Ready(gen, 10*time.Second, 0)

	next, _ := p.Ended(gen)
	if next != nil {
		t.Fatalf("expected nil on exhausted queue, got %v", next)
	}
	if p.State() != StateIdle || p.Current() != nil {
		t.Errorf("state = %v current = %v, want Idle/nil", p.State(), p.Current())
	}
}

func TestErrorDoesNotAutoAdvance(t *testing.T) {
	p, _ := newPlayer(t, "a", "b")
	gen := p.Load(domain.VideoEntry{ID: "a"})
	p.Ready(gen, 10*time.Second, 0)

	p.Fail(gen, errors.New("decode error"))
	if p.State() != StateError {
		t.Fatalf("state = %v, want Error", p.State())
	}
	if p.Current() == nil || p.Current().ID != "a" {
		t.Error("error state must keep the failed entry current")
	}
	if p.Err() == nil {
		t.Error("expected recorded error")
	}

	// play is a no-op in Error; only explicit retry or skip recovers
	p.Play()
	if p.State() != StateError {
		t.Error("play should not leave Error")
	}

	gen = p.Retry()
	if gen == 0 || p.State() != StateLoading {
		t.Errorf("retry should reload, state = %v", p.State())
	}
}

func TestSkipFromError(t *testing.T) {
	p, q := newPlayer(t, "a", "b")
	gen := p.Load(*q.Current())
	p.Ready(gen, 10*time.Second, 0)
	p.Fail(gen, errors.New("decode error"))

	next, _ := p.Skip()
	if next == nil || next.ID != "b" {
		t.Fatalf("skip = %v, want b", next)
	}
	if p.State() != StateLoading {
		t.Errorf("state = %v", p.State())
	}
}

func TestVolumeClamps(t *testing.T) {
	p, _ := newPlayer(t)

	p.SetVolume(150)
	if p.Volume() != 100 {
		t.Errorf("volume = %d, want 100", p.Volume())
	}
	p.SetVolume(-10)
	if p.Volume() != 0 {
		t.Errorf("volume = %d, want 0", p.Volume())
	}

	p.SetMuted(true)
	p.SetVolume(5)
	if p.Muted() {
		t.Error("setting volume > 0 should unmute")
	}

	p.SetMuted(true)
	p.SetVolume(0)
	if !p.Muted() {
		t.Error("volume 0 should not unmute")
	}
}

func TestRateAndFlags(t *testing.T) {
	p, _ := newPlayer(t)

	p.SetRate(0)
	p.SetRate(-1)
	if p.Rate() != 1.0 {
		t.Errorf("rate = %v, non-positive rates must be ignored", p.Rate())
	}
	p.SetRate(1.5)
	if p.Rate() != 1.5 {
		t.Errorf("rate = %v", p.Rate())
	}

	// fullscreen/pip toggle in any state, including Idle
	p.ToggleFullscreen()
	p.TogglePiP()
	if !p.Fullscreen() || !p.PiP() {
		t.Error("fullscreen/pip flags should toggle in Idle")
	}
}

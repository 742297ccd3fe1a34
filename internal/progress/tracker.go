// Package progress tracks per-video watch position and persists it keyed
// by video id, so a video resumes where it left off when it becomes
// current again.
package progress

import (
	"log/slog"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"ntsync/internal/domain"
)

// maxRecords caps how many progress records are kept in durable storage.
// On insert the oldest records past the cap are pruned.
const maxRecords = 200

// persistInterval throttles durable writes; the playback element fires
// time updates at sub-second granularity and writing every tick is
// wasteful.
const persistInterval = time.Second

// Tracker upserts a progress record on every playback tick and restores
// it when a video becomes current again. Storage failures degrade the
// tracker to memory-only for the session; playback is never interrupted.
type Tracker struct {
	store   domain.ProgressStore
	logger  *slog.Logger
	limiter *rate.Limiter

	mem      map[string]domain.ProgressRecord
	degraded bool

	now func() time.Time
}

// NewTracker creates a tracker over the given store. A nil store runs
// memory-only from the start.
func NewTracker(store domain.ProgressStore, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		store:    store,
		logger:   logger,
		limiter:  rate.NewLimiter(rate.Every(persistInterval), 1),
		mem:      make(map[string]domain.ProgressRecord),
		degraded: store == nil,
		now:      time.Now,
	}
}

// OnTick records the current position for a video. Ticks with an unknown
// duration are skipped entirely rather than recording a bogus percentage.
// Durable writes are debounced; the in-memory record is always current.
func (t *Tracker) OnTick(videoID string, position, duration time.Duration) {
	if duration <= 0 || videoID == "" {
		return
	}
	if position > duration {
		position = duration
	}

	rec := domain.ProgressRecord{
		VideoID:   videoID,
		Position:  position,
		Duration:  duration,
		Percent:   float64(position) / float64(duration) * 100,
		UpdatedAt: t.now().Unix(),
	}
	t.mem[videoID] = rec

	if t.degraded || !t.limiter.Allow() {
		return
	}
	t.persist(rec)
}

// Commit persists the latest in-memory record for a video immediately,
// bypassing the debounce. Called when the current entry switches so the
// final position is never lost to throttling.
func (t *Tracker) Commit(videoID string) {
	rec, ok := t.mem[videoID]
	if !ok || t.degraded {
		return
	}
	t.persist(rec)
}

// Restore returns the last known progress for a video, preferring the
// in-memory record from this session over the stored one.
func (t *Tracker) Restore(videoID string) (domain.ProgressRecord, bool) {
	if rec, ok := t.mem[videoID]; ok {
		return rec, true
	}
	if t.degraded {
		return domain.ProgressRecord{}, false
	}
	return t.store.GetProgress(videoID)
}

// Forget drops a video's progress from memory and storage.
func (t *Tracker) Forget(videoID string) {
	delete(t.mem, videoID)
	if t.degraded {
		return
	}
	if err := t.store.DeleteProgress(videoID); err != nil {
		t.degrade(err)
	}
}

// Degraded reports whether the tracker has fallen back to memory-only.
func (t *Tracker) Degraded() bool { return t.degraded }

func (t *Tracker) persist(rec domain.ProgressRecord) {
	if err := t.store.SaveProgress(rec); err != nil {
		t.degrade(err)
		return
	}
	t.prune()
}

// prune evicts the oldest stored records past the retention cap.
func (t *Tracker) prune() {
	records, err := t.store.ListProgress()
	if err != nil || len(records) <= maxRecords {
		return
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].UpdatedAt < records[j].UpdatedAt
	})
	for _, rec := range records[:len(records)-maxRecords] {
		if err := t.store.DeleteProgress(rec.VideoID); err != nil {
			return
		}
	}
}

// degrade switches to memory-only after a storage failure. Logged, not
// user-facing: losing persisted progress is non-fatal.
func (t *Tracker) degrade(err error) {
	t.degraded = true
	t.logger.Warn("progress storage unavailable, continuing in memory only", "error", err)
}

package tui

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ntsync/internal/app"
	"ntsync/internal/domain"
	"ntsync/internal/log"
	"ntsync/internal/player"
	"ntsync/internal/progress"
	"ntsync/internal/queue"
)

func newTestModel() Model {
	st := app.New(nil, log.NullLogger(), nil)
	q := queue.New(rand.New(rand.NewSource(1)))
	pl := player.New(q, true, log.NullLogger())
	tr := progress.NewTracker(nil, log.NullLogger())
	return *NewModel(st, q, pl, tr, nil, log.NullLogger())
}

// collect executes a command tree and flattens the produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findReady(msgs []tea.Msg) (PlayerReadyMsg, bool) {
	for _, msg := range msgs {
		if r, ok := msg.(PlayerReadyMsg); ok {
			return r, true
		}
	}
	return PlayerReadyMsg{}, false
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func shortEntries() []domain.VideoEntry {
	return []domain.VideoEntry{
		{ID: "s1", Title: "Short One", SourceURL: "https://example.com/a.mp4", Kind: domain.SourceOnline, Duration: 2 * time.Second},
		{ID: "s2", Title: "Short Two", SourceURL: "https://example.com/b.mp4", Kind: domain.SourceOnline, Duration: 2 * time.Second},
	}
}

func TestPlaybackLifecycle(t *testing.T) {
	m := newTestModel()

	cmd := m.playFrom(shortEntries(), 0)
	if m.tab != TabPlayer {
		t.Errorf("expected switch to player tab, got %v", m.tab)
	}
	if m.player.State() != player.StateLoading {
		t.Fatalf("expected loading state, got %v", m.player.State())
	}

	ready, ok := findReady(collect(cmd))
	if !ok {
		t.Fatal("expected a PlayerReadyMsg from the load command")
	}

	next, _ := m.Update(ready)
	m = next.(Model)
	if m.player.State() != player.StatePlaying {
		t.Fatalf("expected playing after ready with autoplay, got %v", m.player.State())
	}

	next, _ = m.Update(PlayerTickMsg{Gen: m.player.Generation()})
	m = next.(Model)
	if m.player.Position() != time.Second {
		t.Errorf("expected position 1s after tick, got %v", m.player.Position())
	}

	// History recorded the entry.
	if m.state.History()[0].VideoID != "s1" {
		t.Errorf("expected s1 in history, got %q", m.state.History()[0].VideoID)
	}
}

func TestStaleTickIgnored(t *testing.T) {
	m := newTestModel()

	cmd := m.playFrom(shortEntries(), 0)
	ready, _ := findReady(collect(cmd))
	next, _ := m.Update(ready)
	m = next.(Model)

	next, _ = m.Update(PlayerTickMsg{Gen: m.player.Generation() - 1})
	m = next.(Model)
	if m.player.Position() != 0 {
		t.Errorf("stale tick moved position to %v", m.player.Position())
	}
}

func TestEndedAdvancesToNextEntry(t *testing.T) {
	m := newTestModel()

	cmd := m.playFrom(shortEntries(), 0)
	ready, _ := findReady(collect(cmd))
	next, _ := m.Update(ready)
	m = next.(Model)

	gen := m.player.Generation()
	for i := 0; i < 2; i++ {
		nm, cmd2 := m.Update(PlayerTickMsg{Gen: gen})
		m = nm.(Model)
		cmd = cmd2
	}

	// Second tick crossed the 2s duration: next entry should be loading.
	if m.player.State() != player.StateLoading {
		t.Fatalf("expected loading of next entry, got %v", m.player.State())
	}
	if m.queue.CurrentIndex() != 1 {
		t.Errorf("expected queue cursor on 1, got %d", m.queue.CurrentIndex())
	}

	ready2, ok := findReady(collect(cmd))
	if !ok {
		t.Fatal("expected load command for next entry")
	}
	next, _ = m.Update(ready2)
	m = next.(Model)
	if m.player.Current().ID != "s2" {
		t.Errorf("expected s2 playing, got %q", m.player.Current().ID)
	}
}

func TestRemoveCurrentQueueEntryLoadsReplacement(t *testing.T) {
	m := newTestModel()

	cmd := m.playFrom(shortEntries(), 0)
	ready, _ := findReady(collect(cmd))
	next, _ := m.Update(ready)
	m = next.(Model)

	nm, cmd := m.handleKey(keyRune('x'))
	m = nm.(Model)

	if m.queue.Len() != 1 {
		t.Fatalf("expected 1 queued entry after removal, got %d", m.queue.Len())
	}
	if m.player.State() != player.StateLoading {
		t.Fatalf("expected replacement loading, got %v", m.player.State())
	}
	if m.player.Current().ID != "s2" {
		t.Errorf("expected s2 loading, got %q", m.player.Current().ID)
	}

	ready2, ok := findReady(collect(cmd))
	if !ok {
		t.Fatal("expected a load command for the replacement")
	}
	next, _ = m.Update(ready2)
	m = next.(Model)
	if m.player.State() != player.StatePlaying {
		t.Errorf("expected replacement playing, got %v", m.player.State())
	}
}

func TestRemoveLastQueueEntryStopsPlayback(t *testing.T) {
	m := newTestModel()

	cmd := m.playFrom(shortEntries()[:1], 0)
	ready, _ := findReady(collect(cmd))
	next, _ := m.Update(ready)
	m = next.(Model)
	gen := m.player.Generation()

	nm, _ := m.handleKey(keyRune('x'))
	m = nm.(Model)

	if m.queue.Len() != 0 {
		t.Fatalf("expected empty queue, got %d entries", m.queue.Len())
	}
	if m.player.State() != player.StateIdle {
		t.Fatalf("expected idle player after removing the playing entry, got %v", m.player.State())
	}
	if m.player.Current() != nil {
		t.Error("expected no current entry")
	}

	// The tick scheduled before removal is stale and must not move time.
	next, _ = m.Update(PlayerTickMsg{Gen: gen})
	m = next.(Model)
	if m.player.Position() != 0 {
		t.Errorf("stale tick moved position to %v", m.player.Position())
	}
}

func TestEndedExhaustedStops(t *testing.T) {
	m := newTestModel()

	entries := shortEntries()[:1]
	cmd := m.playFrom(entries, 0)
	ready, _ := findReady(collect(cmd))
	next, _ := m.Update(ready)
	m = next.(Model)

	gen := m.player.Generation()
	for i := 0; i < 2; i++ {
		nm, _ := m.Update(PlayerTickMsg{Gen: gen})
		m = nm.(Model)
	}

	if m.player.State() != player.StateIdle {
		t.Errorf("expected idle after queue exhausted, got %v", m.player.State())
	}
}

func TestResumeFromTrackedPosition(t *testing.T) {
	m := newTestModel()

	entries := []domain.VideoEntry{
		{ID: "long", Title: "Long", SourceURL: "https://example.com/long.mp4", Kind: domain.SourceOnline, Duration: 100 * time.Second},
	}
	m.tracker.OnTick("long", 40*time.Second, 100*time.Second)

	cmd := m.playFrom(entries, 0)
	ready, _ := findReady(collect(cmd))
	next, _ := m.Update(ready)
	m = next.(Model)

	if m.player.Position() != 40*time.Second {
		t.Errorf("expected resume at 40s, got %v", m.player.Position())
	}
}

func TestFailureDoesNotAutoAdvance(t *testing.T) {
	m := newTestModel()

	m.playFrom(shortEntries(), 0)
	gen := m.player.Generation()

	next, _ := m.Update(PlayerFailedMsg{Gen: gen, Err: errors.New("embed blocked")})
	m = next.(Model)

	if m.player.State() != player.StateError {
		t.Fatalf("expected error state, got %v", m.player.State())
	}
	if m.queue.CurrentIndex() != 0 {
		t.Errorf("queue advanced past failed entry to %d", m.queue.CurrentIndex())
	}
	if m.notice == nil {
		t.Error("expected an error notice")
	}
}

func TestRetryAfterFailure(t *testing.T) {
	m := newTestModel()

	m.playFrom(shortEntries(), 0)
	next, _ := m.Update(PlayerFailedMsg{Gen: m.player.Generation(), Err: errors.New("transient")})
	m = next.(Model)

	nm, cmd := m.handleKey(keyRune('R'))
	m = nm.(Model)
	if m.player.State() != player.StateLoading {
		t.Fatalf("expected loading after retry, got %v", m.player.State())
	}
	if _, ok := findReady(collect(cmd)); !ok {
		t.Error("expected retry to issue a load command")
	}
}

func TestBadPlatformURLFails(t *testing.T) {
	entry := domain.VideoEntry{
		ID:        "bad",
		Title:     "Bad",
		SourceURL: "https://www.youtube.com/watch",
		Kind:      domain.SourceYouTube,
	}
	msgs := collect(loadCmd(entry, 7))
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	fail, ok := msgs[0].(PlayerFailedMsg)
	if !ok {
		t.Fatalf("expected PlayerFailedMsg, got %T", msgs[0])
	}
	if !errors.Is(fail.Err, domain.ErrBadURL) || fail.Gen != 7 {
		t.Errorf("unexpected failure %+v", fail)
	}
}

func TestFilterNarrowsLibrary(t *testing.T) {
	m := newTestModel()

	m.filterQuery = "docker"
	m.refreshLibraryList()

	entries := m.visibleEntries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry for %q, got %d", "docker", len(entries))
	}
	if entries[0].Title != "Docker for Developers" {
		t.Errorf("unexpected entry %q", entries[0].Title)
	}

	m.filterQuery = ""
	m.refreshLibraryList()
	if len(m.visibleEntries()) != len(m.state.Videos()) {
		t.Error("expected full library after clearing filter")
	}
}

func TestNoticeExpiry(t *testing.T) {
	m := newTestModel()

	cmd := m.raiseNotice(app.Notice{Level: app.NoticeInfo, Message: "hello"})
	if m.notice == nil {
		t.Fatal("expected notice set")
	}
	id := m.noticeID

	// An expiry for an older notice must not clear a newer one.
	next, _ := m.Update(ClearNoticeMsg{ID: id - 1})
	m = next.(Model)
	if m.notice == nil {
		t.Fatal("stale expiry cleared the notice")
	}

	next, _ = m.Update(ClearNoticeMsg{ID: id})
	m = next.(Model)
	if m.notice != nil {
		t.Error("expected notice cleared")
	}
	_ = cmd
}

func TestHistoryProgressKeepsPaceAtFastRate(t *testing.T) {
	m := newTestModel()

	entries := []domain.VideoEntry{
		{ID: "long", Title: "Long", SourceURL: "https://example.com/long.mp4", Kind: domain.SourceOnline, Duration: 100 * time.Second},
	}
	cmd := m.playFrom(entries, 0)
	ready, _ := findReady(collect(cmd))
	next, _ := m.Update(ready)
	m = next.(Model)

	// At 4x each tick advances 4s, so positions never land on a multiple
	// of 10; the write must still happen once 10s of playback elapse.
	m.player.SetRate(4)
	gen := m.player.Generation()
	for i := 0; i < 3; i++ { // 4s, 8s, 12s
		nm, _ := m.Update(PlayerTickMsg{Gen: gen})
		m = nm.(Model)
	}

	h := m.state.History()
	if len(h) == 0 || h[0].VideoID != "long" {
		t.Fatal("expected the playing entry at the front of history")
	}
	if h[0].LastPosition != 12*time.Second {
		t.Errorf("expected history progress written at 12s, got %v", h[0].LastPosition)
	}
}

// memStateStore backs note tests; the default test model runs storeless.
type memStateStore struct {
	state    domain.PersistedState
	hasState bool
	notes    map[string][]domain.VideoNote
}

func (f *memStateStore) GetState() (domain.PersistedState, bool) { return f.state, f.hasState }

func (f *memStateStore) SaveState(state domain.PersistedState) error {
	f.state = state
	f.hasState = true
	return nil
}

func (f *memStateStore) GetNotes(videoID string) ([]domain.VideoNote, bool) {
	n, ok := f.notes[videoID]
	return n, ok
}

func (f *memStateStore) SaveNotes(videoID string, notes []domain.VideoNote) error {
	f.notes[videoID] = notes
	return nil
}

func (f *memStateStore) DeleteNotes(videoID string) { delete(f.notes, videoID) }

func (f *memStateStore) Close() error { return nil }

func TestNoteLifecycleOnPlayerTab(t *testing.T) {
	st := app.New(&memStateStore{notes: make(map[string][]domain.VideoNote)}, log.NullLogger(), nil)
	q := queue.New(rand.New(rand.NewSource(1)))
	pl := player.New(q, true, log.NullLogger())
	tr := progress.NewTracker(nil, log.NullLogger())
	m := *NewModel(st, q, pl, tr, nil, log.NullLogger())

	cmd := m.playFrom(shortEntries(), 0)
	ready, _ := findReady(collect(cmd))
	next, _ := m.Update(ready)
	m = next.(Model)

	nm, _ := m.handleKey(keyRune('N'))
	m = nm.(Model)
	if !m.addingNote {
		t.Fatal("expected note entry mode on the player tab")
	}

	for _, r := range "great intro" {
		nm, _ = m.handleKey(keyRune(r))
		m = nm.(Model)
	}
	nm, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = nm.(Model)

	notes := m.state.Notes("s1")
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	if notes[0].Content != "great intro" {
		t.Errorf("unexpected note content %q", notes[0].Content)
	}

	nm, _ = m.handleKey(keyRune('D'))
	m = nm.(Model)
	if got := m.state.Notes("s1"); len(got) != 0 {
		t.Errorf("expected newest note deleted, %d left", len(got))
	}
}

func TestFilterRanksPrefixMatchesFirst(t *testing.T) {
	m := newTestModel()

	m.state.AddVideo(domain.VideoEntry{ID: "z1", Title: "Advanced Zig", SourceURL: "https://example.com/z1.mp4", Kind: domain.SourceOnline})
	m.state.AddVideo(domain.VideoEntry{ID: "z2", Title: "Zig Basics", SourceURL: "https://example.com/z2.mp4", Kind: domain.SourceOnline})

	m.filterQuery = "zig"
	m.refreshLibraryList()

	entries := m.visibleEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 matches for %q, got %d", "zig", len(entries))
	}
	if entries[0].Title != "Zig Basics" {
		t.Errorf("expected the prefix match first, got %q", entries[0].Title)
	}
}

func TestTabCycling(t *testing.T) {
	m := newTestModel()

	next, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.tab != TabLibrary {
		t.Errorf("expected library tab, got %v", m.tab)
	}

	next, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(Model)
	if m.tab != TabDashboard {
		t.Errorf("expected dashboard tab, got %v", m.tab)
	}
}

package app

import (
	"fmt"
	"testing"
	"time"

	"ntsync/internal/domain"
	"ntsync/internal/log"
)

// fakeStateStore keeps everything in memory and counts saves.
type fakeStateStore struct {
	state    domain.PersistedState
	hasState bool
	notes    map[string][]domain.VideoNote
	saves    int
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{notes: make(map[string][]domain.VideoNote)}
}

func (f *fakeStateStore) GetState() (domain.PersistedState, bool) {
	return f.state, f.hasState
}

func (f *fakeStateStore) SaveState(state domain.PersistedState) error {
	f.state = state
	f.hasState = true
	f.saves++
	return nil
}

func (f *fakeStateStore) GetNotes(videoID string) ([]domain.VideoNote, bool) {
	n, ok := f.notes[videoID]
	return n, ok
}

func (f *fakeStateStore) SaveNotes(videoID string, notes []domain.VideoNote) error {
	f.notes[videoID] = notes
	return nil
}

func (f *fakeStateStore) DeleteNotes(videoID string) { delete(f.notes, videoID) }

func (f *fakeStateStore) Close() error { return nil }

func newState(t *testing.T) (*State, *fakeStateStore) {
	t.Helper()
	store := newFakeStateStore()
	return New(store, log.NullLogger(), nil), store
}

func entry(id, title string) domain.VideoEntry {
	return domain.VideoEntry{
		ID:        id,
		Title:     title,
		SourceURL: "https://www.youtube.com/watch?v=" + id,
		Kind:      domain.SourceYouTube,
		Duration:  10 * time.Minute,
	}
}

func TestSeedData(t *testing.T) {
	s, _ := newState(t)

	if len(s.Videos()) != 10 {
		t.Fatalf("expected 10 seed videos, got %d", len(s.Videos()))
	}
	if len(s.Playlists()) != 4 {
		t.Fatalf("expected 4 seed playlists, got %d", len(s.Playlists()))
	}
	if !s.IsFavorite("1") {
		t.Error("expected seed video 1 to be favorited")
	}
	if !s.DarkMode() {
		t.Error("expected dark mode by default")
	}
}

func TestRecordWatchDedupes(t *testing.T) {
	s, _ := newState(t)
	s.ClearHistory()

	a := entry("vid-a", "First")
	b := entry("vid-b", "Second")

	s.RecordWatch(a)
	s.RecordWatch(b)
	s.RecordWatch(a) // should move to front, not duplicate

	h := s.History()
	if len(h) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(h))
	}
	if h[0].VideoID != "vid-a" {
		t.Errorf("expected vid-a at front, got %q", h[0].VideoID)
	}
	if h[1].VideoID != "vid-b" {
		t.Errorf("expected vid-b second, got %q", h[1].VideoID)
	}
}

func TestHistoryCap(t *testing.T) {
	s, _ := newState(t)
	s.ClearHistory()

	for i := 0; i < historyLimit+10; i++ {
		s.RecordWatch(entry(fmt.Sprintf("vid-%03d", i), "Video"))
	}

	h := s.History()
	if len(h) != historyLimit {
		t.Fatalf("expected history capped at %d, got %d", historyLimit, len(h))
	}
	if h[0].VideoID != fmt.Sprintf("vid-%03d", historyLimit+9) {
		t.Errorf("expected most recent entry at front, got %q", h[0].VideoID)
	}
}

func TestUpdateWatchProgress(t *testing.T) {
	s, _ := newState(t)
	s.ClearHistory()

	s.RecordWatch(entry("vid-a", "First"))
	s.UpdateWatchProgress("vid-a", 45.5, 273*time.Second)

	h := s.History()
	if h[0].Percent != 45.5 {
		t.Errorf("expected percent 45.5, got %v", h[0].Percent)
	}
	if h[0].LastPosition != 273*time.Second {
		t.Errorf("expected last position 273s, got %v", h[0].LastPosition)
	}
	if s.Statistics().TotalWatchTime == 0 {
		t.Error("expected watch time credited to statistics")
	}
}

func TestToggleFavorite(t *testing.T) {
	s, _ := newState(t)

	if s.IsFavorite("vid-x") {
		t.Fatal("vid-x should not start favorited")
	}
	s.ToggleFavorite("vid-x")
	if !s.IsFavorite("vid-x") {
		t.Error("expected vid-x favorited after toggle")
	}
	s.ToggleFavorite("vid-x")
	if s.IsFavorite("vid-x") {
		t.Error("expected vid-x unfavorited after second toggle")
	}
}

func TestRemoveVideoCascades(t *testing.T) {
	s, store := newState(t)
	e := entry("vid-a", "Cascading")
	s.AddVideo(e)
	s.ToggleFavorite("vid-a")
	s.ToggleWatchLater("vid-a")
	s.RecordWatch(e)
	s.AddNote("vid-a", 30*time.Second, "interesting bit", "")

	s.RemoveVideo("vid-a")

	if _, ok := s.VideoByID("vid-a"); ok {
		t.Error("expected video removed from library")
	}
	if s.IsFavorite("vid-a") {
		t.Error("expected video removed from favorites")
	}
	if containsString(s.WatchLater(), "vid-a") {
		t.Error("expected video removed from watch later")
	}
	for _, h := range s.History() {
		if h.VideoID == "vid-a" {
			t.Error("expected video removed from history")
		}
	}
	if _, ok := store.GetNotes("vid-a"); ok {
		t.Error("expected notes removed with the video")
	}
}

func TestPlaylistLifecycle(t *testing.T) {
	s, _ := newState(t)

	id := s.CreatePlaylist("My Mix", "test playlist")
	if _, ok := s.PlaylistByID(id); !ok {
		t.Fatal("created playlist not found")
	}

	s.AddToPlaylist(id, "1")
	s.AddToPlaylist(id, "2")
	s.AddToPlaylist(id, "1") // duplicate, skipped

	p, _ := s.PlaylistByID(id)
	if len(p.VideoIDs) != 2 {
		t.Fatalf("expected 2 video ids, got %d", len(p.VideoIDs))
	}

	videos := s.PlaylistVideos(id)
	if len(videos) != 2 {
		t.Fatalf("expected 2 resolved videos, got %d", len(videos))
	}
	if videos[0].Title != "React Best Practices 2024" {
		t.Errorf("unexpected first playlist video: %q", videos[0].Title)
	}

	s.RemoveFromPlaylist(id, "1")
	p, _ = s.PlaylistByID(id)
	if len(p.VideoIDs) != 1 || p.VideoIDs[0] != "2" {
		t.Errorf("unexpected video ids after removal: %v", p.VideoIDs)
	}

	s.DeletePlaylist(id)
	if _, ok := s.PlaylistByID(id); ok {
		t.Error("expected playlist deleted")
	}
}

func TestPlaylistVideosSkipsDangling(t *testing.T) {
	s, _ := newState(t)

	id := s.CreatePlaylist("Mix", "")
	s.AddToPlaylist(id, "1")
	s.AddToPlaylist(id, "no-such-video")

	videos := s.PlaylistVideos(id)
	if len(videos) != 1 {
		t.Fatalf("expected dangling id skipped, got %d videos", len(videos))
	}
}

func TestMergeRemotePrefersLocal(t *testing.T) {
	s, _ := newState(t)
	before := len(s.Videos())

	s.MergeRemote([]domain.VideoEntry{
		entry("1", "Shadowed Title"), // exists in seed, must not clobber
		entry("remote-1", "Fresh Remote"),
	})

	if len(s.Videos()) != before+1 {
		t.Fatalf("expected exactly one new video, got %d", len(s.Videos())-before)
	}
	v, _ := s.VideoByID("1")
	if v.Title != "React Best Practices 2024" {
		t.Errorf("remote entry clobbered local: %q", v.Title)
	}
}

func TestPersistRoundTrip(t *testing.T) {
	store := newFakeStateStore()
	s := New(store, log.NullLogger(), nil)

	s.ToggleFavorite("vid-z")
	s.ToggleTheme()
	s.RecordWatch(entry("vid-z", "Persisted"))

	// Second container recovers everything from the store.
	s2 := New(store, log.NullLogger(), nil)
	if !s2.IsFavorite("vid-z") {
		t.Error("expected favorite recovered from store")
	}
	if s2.DarkMode() {
		t.Error("expected theme toggle recovered from store")
	}
	if s2.History()[0].VideoID != "vid-z" {
		t.Errorf("expected history recovered, got %q", s2.History()[0].VideoID)
	}
}

func TestClearedHistoryStaysCleared(t *testing.T) {
	store := newFakeStateStore()
	s := New(store, log.NullLogger(), nil)
	s.ClearHistory()

	s2 := New(store, log.NullLogger(), nil)
	if len(s2.History()) != 0 {
		t.Fatalf("expected cleared history to survive restart, got %d entries", len(s2.History()))
	}
}

func TestLocalVideosPersistWithoutHandles(t *testing.T) {
	store := newFakeStateStore()
	s := New(store, log.NullLogger(), nil)

	s.AddVideo(domain.VideoEntry{
		ID:        "local-1",
		Title:     "Home Movie",
		SourceURL: "/tmp/home-movie.mp4",
		Kind:      domain.SourceLocal,
		FileSize:  1024,
	})

	if len(store.state.LocalVideos) != 1 {
		t.Fatalf("expected 1 persisted local video, got %d", len(store.state.LocalVideos))
	}
	if store.state.LocalVideos[0].SourceURL != "" {
		t.Error("expected blob handle stripped from persisted local video")
	}
	// In-memory copy keeps its handle for the current session.
	v, _ := s.VideoByID("local-1")
	if v.SourceURL != "/tmp/home-movie.mp4" {
		t.Errorf("expected session copy to keep handle, got %q", v.SourceURL)
	}
}

func TestNotes(t *testing.T) {
	s, _ := newState(t)

	s.AddNote("vid-a", 90*time.Second, "great explanation", "")
	s.AddNote("vid-a", 5*time.Minute, "revisit this part", "important")

	notes := s.Notes("vid-a")
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[0].Tag != "general" {
		t.Errorf("expected default tag, got %q", notes[0].Tag)
	}

	s.DeleteNote("vid-a", notes[0].ID)
	if len(s.Notes("vid-a")) != 1 {
		t.Error("expected 1 note after delete")
	}
}

func TestNotices(t *testing.T) {
	var got []Notice
	s := New(newFakeStateStore(), log.NullLogger(), func(n Notice) { got = append(got, n) })

	s.ToggleFavorite("vid-a")
	if len(got) != 1 || got[0].Level != NoticeSuccess {
		t.Fatalf("expected one success notice, got %v", got)
	}
}

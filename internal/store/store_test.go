package store

import (
	"testing"
	"time"

	"ntsync/internal/domain"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProgressRoundTrip(t *testing.T) {
	s := openTemp(t)

	rec := domain.ProgressRecord{
		VideoID:   "v1",
		Position:  42 * time.Second,
		Duration:  100 * time.Second,
		Percent:   42,
		UpdatedAt: time.Now().Unix(),
	}
	if err := s.SaveProgress(rec); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}

	got, ok := s.GetProgress("v1")
	if !ok {
		t.Fatal("record not found")
	}
	if got.Percent != 42 || got.Position != 42*time.Second {
		t.Errorf("got %+v", got)
	}

	if _, ok := s.GetProgress("missing"); ok {
		t.Error("expected miss for unknown id")
	}

	if err := s.DeleteProgress("v1"); err != nil {
		t.Fatalf("DeleteProgress: %v", err)
	}
	if _, ok := s.GetProgress("v1"); ok {
		t.Error("record survived delete")
	}
}

func TestListProgress(t *testing.T) {
	s := openTemp(t)

	for _, id := range []string{"a", "b", "c"} {
		if err := s.SaveProgress(domain.ProgressRecord{VideoID: id, Percent: 10}); err != nil {
			t.Fatal(err)
		}
	}

	records, err := s.ListProgress()
	if err != nil {
		t.Fatalf("ListProgress: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("len = %d, want 3", len(records))
	}
}

func TestStateRoundTrip(t *testing.T) {
	s := openTemp(t)

	if _, ok := s.GetState(); ok {
		t.Error("fresh store should have no state")
	}

	state := domain.PersistedState{
		DarkMode:  true,
		Favorites: []string{"v1", "v2"},
		History: []domain.HistoryEntry{
			{VideoID: "v1", Title: "First", Percent: 85},
		},
		Playlists: []domain.Playlist{
			{ID: "p1", Name: "Watch Later", VideoIDs: []string{"v2"}},
		},
		Settings: domain.DefaultSettings(),
	}
	if err := s.SaveState(state); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	got, ok := s.GetState()
	if !ok {
		t.Fatal("state not found after save")
	}
	if !got.DarkMode || len(got.Favorites) != 2 || len(got.History) != 1 {
		t.Errorf("got %+v", got)
	}
	if got.Playlists[0].Name != "Watch Later" {
		t.Errorf("playlist = %+v", got.Playlists[0])
	}
}

func TestNotes(t *testing.T) {
	s := openTemp(t)

	notes := []domain.VideoNote{
		{ID: "n1", Timestamp: 30 * time.Second, Content: "key point", Tag: "general"},
	}
	if err := s.SaveNotes("v1", notes); err != nil {
		t.Fatalf("SaveNotes: %v", err)
	}

	got, ok := s.GetNotes("v1")
	if !ok || len(got) != 1 || got[0].Content != "key point" {
		t.Errorf("got %+v ok=%v", got, ok)
	}

	s.DeleteNotes("v1")
	if _, ok := s.GetNotes("v1"); ok {
		t.Error("notes survived delete")
	}
}

func TestMemoryOnlyMode(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\"): %v", err)
	}
	defer s.Close()

	if err := s.SaveProgress(domain.ProgressRecord{VideoID: "v1", Percent: 50}); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}
	if rec, ok := s.GetProgress("v1"); !ok || rec.Percent != 50 {
		t.Errorf("memory-only read = %+v ok=%v", rec, ok)
	}

	records, err := s.ListProgress()
	if err != nil || len(records) != 1 {
		t.Errorf("ListProgress = %v err=%v", records, err)
	}
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveState(domain.PersistedState{DarkMode: true}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	got, ok := s2.GetState()
	if !ok || !got.DarkMode {
		t.Errorf("state after reopen = %+v ok=%v", got, ok)
	}
}

// Package app holds the single application state container: library,
// favorites, watch-later, history, playlists, settings, statistics and
// notes. One owner (the UI event loop) mutates it through the methods
// here; components never reach into each other's state. The persisted
// subset is written to the state store on every change, best-effort.
package app

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ntsync/internal/domain"
)

// historyLimit caps watch history to the most recent entries.
const historyLimit = 50

// NoticeLevel grades user-facing notifications.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

// Notice is a typed notification event raised by state mutations.
// The UI routes these to the notification area.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// State is the process-wide application state. Not safe for concurrent
// use; all mutation happens on the UI event loop.
type State struct {
	store  domain.StateStore
	logger *slog.Logger
	notify func(Notice)

	videos      []domain.VideoEntry // full library: seed + fetched + local
	localVideos []domain.VideoEntry
	favorites   []string
	watchLater  []string
	history     []domain.HistoryEntry
	playlists   []domain.Playlist
	settings    domain.Settings
	statistics  domain.Statistics
	darkMode    bool

	now func() time.Time
}

// New builds the state container: seed data merged with whatever the
// store recovered from a previous session. notify may be nil.
func New(store domain.StateStore, logger *slog.Logger, notify func(Notice)) *State {
	if logger == nil {
		logger = slog.Default()
	}
	if notify == nil {
		notify = func(Notice) {}
	}

	s := &State{
		store:    store,
		logger:   logger,
		notify:   notify,
		settings: domain.DefaultSettings(),
		darkMode: true,
		now:      time.Now,
	}
	s.videos = seedLibrary()
	s.playlists = seedPlaylists()
	s.history = seedHistory()
	s.favorites = seedFavorites()
	s.watchLater = seedWatchLater()

	if store != nil {
		if persisted, ok := store.GetState(); ok {
			s.applyPersisted(persisted)
		}
	}
	return s
}

// SetNotify installs the notification sink. The UI calls this once its
// event loop exists; until then notices are dropped.
func (s *State) SetNotify(notify func(Notice)) {
	if notify == nil {
		notify = func(Notice) {}
	}
	s.notify = notify
}

// applyPersisted overlays recovered state on top of the seed data.
func (s *State) applyPersisted(p domain.PersistedState) {
	s.darkMode = p.DarkMode
	if p.History != nil {
		s.history = p.History
	}
	if p.Playlists != nil {
		s.playlists = p.Playlists
	}
	if p.Favorites != nil {
		s.favorites = p.Favorites
	}
	if p.WatchLater != nil {
		s.watchLater = p.WatchLater
	}
	if p.Settings != (domain.Settings{}) {
		s.settings = p.Settings
	}
	if p.Statistics.DailyWatchTime != nil || p.Statistics.TotalWatchTime > 0 {
		s.statistics = p.Statistics
	}
	// Local videos come back without blob handles; they stay listed but
	// cannot play until re-selected.
	s.localVideos = p.LocalVideos
	s.videos = append(s.videos, p.LocalVideos...)
}

// persist writes the durable subset. Failures are logged and swallowed:
// losing persistence degrades to session-only state, never breaks the UI.
func (s *State) persist() {
	if s.store == nil {
		return
	}

	locals := make([]domain.VideoEntry, len(s.localVideos))
	for i, v := range s.localVideos {
		v.SourceURL = "" // blob handles do not survive the session
		locals[i] = v
	}

	err := s.store.SaveState(domain.PersistedState{
		DarkMode:    s.darkMode,
		History:     s.history,
		Playlists:   s.playlists,
		Favorites:   s.favorites,
		WatchLater:  s.watchLater,
		Settings:    s.settings,
		Statistics:  s.statistics,
		LocalVideos: locals,
	})
	if err != nil {
		s.logger.Warn("failed to persist app state", "error", err)
	}
}

// === Library ===

// Videos returns the full library.
func (s *State) Videos() []domain.VideoEntry { return s.videos }

// VideoByID looks up a library entry.
func (s *State) VideoByID(id string) (domain.VideoEntry, bool) {
	for _, v := range s.videos {
		if v.ID == id {
			return v, true
		}
	}
	return domain.VideoEntry{}, false
}

// AddVideo appends an entry to the library.
func (s *State) AddVideo(entry domain.VideoEntry) {
	s.videos = append(s.videos, entry)
	if entry.IsLocal() {
		s.localVideos = append(s.localVideos, entry)
	}
	s.persist()
	s.notify(Notice{NoticeSuccess, "Added \"" + entry.Title + "\" to library"})
}

// MergeRemote folds backend library content into the local library,
// keyed by id. Existing entries win: a flaky backend never clobbers
// local state.
func (s *State) MergeRemote(entries []domain.VideoEntry) {
	known := make(map[string]bool, len(s.videos))
	for _, v := range s.videos {
		known[v.ID] = true
	}
	for _, e := range entries {
		if !known[e.ID] {
			s.videos = append(s.videos, e)
		}
	}
}

// RemoveVideo deletes an entry and cascades it out of favorites,
// watch-later, history and notes.
func (s *State) RemoveVideo(id string) {
	s.videos = removeEntry(s.videos, id)
	s.localVideos = removeEntry(s.localVideos, id)
	s.favorites = removeString(s.favorites, id)
	s.watchLater = removeString(s.watchLater, id)

	kept := s.history[:0]
	for _, h := range s.history {
		if h.VideoID != id {
			kept = append(kept, h)
		}
	}
	s.history = kept

	if s.store != nil {
		s.store.DeleteNotes(id)
	}
	s.persist()
}

// === History ===

// History returns the watch history, most recent first.
func (s *State) History() []domain.HistoryEntry { return s.history }

// RecordWatch registers that a video became current. An existing entry
// for the same video is refreshed and moved to the front; otherwise a
// new entry is prepended. The list is capped to the most recent 50.
func (s *State) RecordWatch(entry domain.VideoEntry) {
	now := s.now().Unix()

	for i, h := range s.history {
		if h.VideoID == entry.ID {
			h.WatchedAt = now
			h.LastPosition = 0
			s.history = append(s.history[:i], s.history[i+1:]...)
			s.history = append([]domain.HistoryEntry{h}, s.history...)
			s.persist()
			return
		}
	}

	item := domain.HistoryEntry{
		VideoID:   entry.ID,
		Title:     entry.Title,
		Kind:      entry.Kind,
		Thumbnail: entry.Thumbnail,
		Duration:  entry.Duration,
		WatchedAt: now,
	}
	s.history = append([]domain.HistoryEntry{item}, s.history...)
	if len(s.history) > historyLimit {
		s.history = s.history[:historyLimit]
	}
	s.statistics.VideosWatched++
	s.persist()
}

// UpdateWatchProgress refreshes the history entry for a video with the
// latest position and credits watch time to the statistics.
func (s *State) UpdateWatchProgress(videoID string, percent float64, position time.Duration) {
	for i := range s.history {
		if s.history[i].VideoID == videoID {
			watched := int64((position - s.history[i].LastPosition).Seconds())
			s.history[i].Percent = percent
			s.history[i].LastPosition = position
			s.history[i].WatchedAt = s.now().Unix()
			// A backward delta is a seek or a restart, not watch time.
			s.statistics.AddWatchTime(s.now().Format("2006-01-02"), watched)
			s.persist()
			return
		}
	}
}

// ClearHistory wipes the watch history. The empty slice (not nil)
// round-trips through JSON as [] so the seed history does not
// resurrect on the next start.
func (s *State) ClearHistory() {
	s.history = []domain.HistoryEntry{}
	s.persist()
}

// RemoveFromHistory drops a single history entry by video id.
func (s *State) RemoveFromHistory(videoID string) {
	kept := s.history[:0]
	for _, h := range s.history {
		if h.VideoID != videoID {
			kept = append(kept, h)
		}
	}
	s.history = kept
	s.persist()
}

// === Favorites / watch-later ===

// Favorites returns the favorited video ids.
func (s *State) Favorites() []string { return s.favorites }

// IsFavorite reports whether a video is favorited.
func (s *State) IsFavorite(videoID string) bool {
	return containsString(s.favorites, videoID)
}

// ToggleFavorite adds or removes a favorite and raises a notice.
func (s *State) ToggleFavorite(videoID string) {
	if containsString(s.favorites, videoID) {
		s.favorites = removeString(s.favorites, videoID)
		s.notify(Notice{NoticeSuccess, "Removed from favorites"})
	} else {
		s.favorites = append(s.favorites, videoID)
		s.notify(Notice{NoticeSuccess, "Added to favorites"})
	}
	s.persist()
}

// ClearFavorites empties the favorites set.
func (s *State) ClearFavorites() {
	s.favorites = []string{}
	s.persist()
}

// WatchLater returns the watch-later ids.
func (s *State) WatchLater() []string { return s.watchLater }

// ToggleWatchLater adds or removes a watch-later marker.
func (s *State) ToggleWatchLater(videoID string) {
	if containsString(s.watchLater, videoID) {
		s.watchLater = removeString(s.watchLater, videoID)
	} else {
		s.watchLater = append(s.watchLater, videoID)
	}
	s.persist()
}

// === Playlists ===

// Playlists returns all playlists.
func (s *State) Playlists() []domain.Playlist { return s.playlists }

// PlaylistByID looks up one playlist.
func (s *State) PlaylistByID(id string) (domain.Playlist, bool) {
	for _, p := range s.playlists {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Playlist{}, false
}

// PlaylistVideos resolves a playlist's video ids against the library,
// skipping ids that no longer resolve.
func (s *State) PlaylistVideos(playlistID string) []domain.VideoEntry {
	p, ok := s.PlaylistByID(playlistID)
	if !ok {
		return nil
	}
	out := make([]domain.VideoEntry, 0, len(p.VideoIDs))
	for _, id := range p.VideoIDs {
		if v, ok := s.VideoByID(id); ok {
			out = append(out, v)
		}
	}
	return out
}

// CreatePlaylist makes a new empty playlist and returns its id.
func (s *State) CreatePlaylist(name, description string) string {
	now := s.now().Unix()
	p := domain.Playlist{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.playlists = append(s.playlists, p)
	s.persist()
	return p.ID
}

// DeletePlaylist removes a playlist.
func (s *State) DeletePlaylist(playlistID string) {
	kept := s.playlists[:0]
	for _, p := range s.playlists {
		if p.ID != playlistID {
			kept = append(kept, p)
		}
	}
	s.playlists = kept
	s.persist()
}

// AddToPlaylist appends a video id to a playlist; duplicates are skipped.
func (s *State) AddToPlaylist(playlistID, videoID string) {
	for i := range s.playlists {
		if s.playlists[i].ID != playlistID {
			continue
		}
		if s.playlists[i].Contains(videoID) {
			return
		}
		s.playlists[i].VideoIDs = append(s.playlists[i].VideoIDs, videoID)
		s.playlists[i].UpdatedAt = s.now().Unix()
		s.persist()
		return
	}
}

// RemoveFromPlaylist drops a video id from a playlist.
func (s *State) RemoveFromPlaylist(playlistID, videoID string) {
	for i := range s.playlists {
		if s.playlists[i].ID != playlistID {
			continue
		}
		s.playlists[i].VideoIDs = removeString(s.playlists[i].VideoIDs, videoID)
		s.playlists[i].UpdatedAt = s.now().Unix()
		s.persist()
		return
	}
}

// === Notes ===

// Notes returns the notes for a video.
func (s *State) Notes(videoID string) []domain.VideoNote {
	if s.store == nil {
		return nil
	}
	notes, _ := s.store.GetNotes(videoID)
	return notes
}

// AddNote appends a timestamped note to a video.
func (s *State) AddNote(videoID string, timestamp time.Duration, content, tag string) {
	if s.store == nil {
		return
	}
	now := s.now().Unix()
	if tag == "" {
		tag = "general"
	}
	notes, _ := s.store.GetNotes(videoID)
	notes = append(notes, domain.VideoNote{
		ID:        uuid.New().String(),
		Timestamp: timestamp,
		Content:   content,
		Tag:       tag,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err := s.store.SaveNotes(videoID, notes); err != nil {
		s.logger.Warn("failed to save notes", "videoID", videoID, "error", err)
	}
}

// DeleteNote removes one note from a video.
func (s *State) DeleteNote(videoID, noteID string) {
	if s.store == nil {
		return
	}
	notes, ok := s.store.GetNotes(videoID)
	if !ok {
		return
	}
	kept := notes[:0]
	for _, n := range notes {
		if n.ID != noteID {
			kept = append(kept, n)
		}
	}
	if err := s.store.SaveNotes(videoID, kept); err != nil {
		s.logger.Warn("failed to save notes", "videoID", videoID, "error", err)
	}
}

// === Settings / theme / statistics ===

// Settings returns the current preferences.
func (s *State) Settings() domain.Settings { return s.settings }

// UpdateSettings replaces the preference set.
func (s *State) UpdateSettings(settings domain.Settings) {
	s.settings = settings
	s.persist()
}

// DarkMode reports the theme flag.
func (s *State) DarkMode() bool { return s.darkMode }

// ToggleTheme flips between dark and light mode.
func (s *State) ToggleTheme() {
	s.darkMode = !s.darkMode
	s.persist()
}

// Statistics returns the viewing counters.
func (s *State) Statistics() domain.Statistics { return s.statistics }

// === helpers ===

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	kept := list[:0]
	for _, v := range list {
		if v != s {
			kept = append(kept, v)
		}
	}
	return kept
}

func removeEntry(list []domain.VideoEntry, id string) []domain.VideoEntry {
	kept := list[:0]
	for _, v := range list {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	return kept
}

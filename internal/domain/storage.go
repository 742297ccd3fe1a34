package domain

// PersistedState is the subset of application state written to durable
// storage on every change. Transient player state (current position, UI
// flags) is deliberately absent. Local video entries are stored without
// their blob handles, which do not survive a session.
type PersistedState struct {
	DarkMode    bool           `json:"darkMode"`
	History     []HistoryEntry `json:"history"`
	Playlists   []Playlist     `json:"playlists"`
	Favorites   []string       `json:"favorites"`
	WatchLater  []string       `json:"watchLater"`
	Settings    Settings       `json:"settings"`
	Statistics  Statistics     `json:"statistics"`
	LocalVideos []VideoEntry   `json:"localVideos"`
}

// ProgressStore persists per-video watch progress, one record per video id.
// Implementations are best-effort: callers treat every error as
// non-fatal and degrade to session-only state.
type ProgressStore interface {
	GetProgress(videoID string) (ProgressRecord, bool)
	SaveProgress(rec ProgressRecord) error
	DeleteProgress(videoID string) error
	ListProgress() ([]ProgressRecord, error)
}

// StateStore persists the application state subset and video notes.
type StateStore interface {
	GetState() (PersistedState, bool)
	SaveState(state PersistedState) error

	GetNotes(videoID string) ([]VideoNote, bool)
	SaveNotes(videoID string, notes []VideoNote) error
	DeleteNotes(videoID string)

	Close() error
}

package tui

import (
	"time"

	"ntsync/internal/api"
	"ntsync/internal/app"
	"ntsync/internal/domain"
)

// Message types for the event loop

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// PlayerReadyMsg signals that a loaded video's metadata is available.
// Gen ties it to the load that produced it; stale generations are dropped.
type PlayerReadyMsg struct {
	Gen      uint64
	Duration time.Duration
}

// PlayerTickMsg is the once-a-second playback position update.
type PlayerTickMsg struct {
	Gen uint64
}

// PlayerFailedMsg signals that loading or playback broke.
type PlayerFailedMsg struct {
	Gen uint64
	Err error
}

// SeekAppliedMsg signals that a pending seek settled.
type SeekAppliedMsg struct {
	Gen uint64
}

// NoticeMsg surfaces a notification in the status area.
type NoticeMsg struct {
	Notice app.Notice
	ID     int
}

// ClearNoticeMsg expires a notification. Stale IDs are ignored so a
// newer notice is not wiped by an older timer.
type ClearNoticeMsg struct {
	ID int
}

// LibraryLoadedMsg carries remote library content from the backend.
type LibraryLoadedMsg struct {
	Entries []domain.VideoEntry
}

// WeatherLoadedMsg carries the dashboard weather snapshot.
type WeatherLoadedMsg struct {
	Weather api.Weather
}

package domain

import (
	"fmt"
	"time"
)

// SourceKind classifies where a video entry's content comes from.
// It is resolved once at ingestion time and carried on the entry,
// never re-derived from the URL at render time.
type SourceKind int

const (
	SourceLocal SourceKind = iota
	SourceYouTube
	SourceVimeo
	SourceTwitch
	SourceOnline // generic http(s) video, no known embed platform
)

// String returns a human-readable platform name
func (k SourceKind) String() string {
	switch k {
	case SourceLocal:
		return "Local"
	case SourceYouTube:
		return "YouTube"
	case SourceVimeo:
		return "Vimeo"
	case SourceTwitch:
		return "Twitch"
	case SourceOnline:
		return "Online"
	default:
		return "Unknown"
	}
}

// Embeddable reports whether entries of this kind render through a
// platform embed URL rather than direct media playback.
func (k SourceKind) Embeddable() bool {
	switch k {
	case SourceYouTube, SourceVimeo, SourceTwitch:
		return true
	default:
		return false
	}
}

// VideoEntry represents an addressable playable item: a local upload or a
// remote URL plus display metadata. Immutable after creation except for
// Duration, which is filled in once the player reports it.
type VideoEntry struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	SourceURL string        `json:"sourceUrl"` // blob handle for local, external URL otherwise
	Kind      SourceKind    `json:"kind"`
	Duration  time.Duration `json:"duration"` // 0 until known
	Thumbnail string        `json:"thumbnail,omitempty"`
	Category  string        `json:"category,omitempty"`
	Tags      []string      `json:"tags,omitempty"`
	AddedAt   int64         `json:"addedAt"`  // unix timestamp
	FileSize  int64         `json:"fileSize"` // bytes, local uploads only
}

// IsLocal reports whether the entry plays from an in-memory blob handle.
func (v VideoEntry) IsLocal() bool { return v.Kind == SourceLocal }

// FormattedDuration returns the duration as M:SS (or H:MM:SS)
func (v VideoEntry) FormattedDuration() string {
	return FormatClock(v.Duration)
}

// FormattedFileSize returns the file size in a human-readable format
func (v VideoEntry) FormattedFileSize() string {
	if v.FileSize <= 0 {
		return ""
	}
	const mb = 1024 * 1024
	return fmt.Sprintf("%.2f MB", float64(v.FileSize)/float64(mb))
}

// ListItem interface implementation for VideoEntry

func (v *VideoEntry) GetID() string       { return v.ID }
func (v *VideoEntry) GetTitle() string    { return v.Title }
func (v *VideoEntry) GetItemType() string { return "video" }
func (v *VideoEntry) GetAddedAt() int64   { return v.AddedAt }

func (v *VideoEntry) GetDescription() string {
	if v.Duration > 0 {
		return fmt.Sprintf("%s · %s", v.Kind, v.FormattedDuration())
	}
	return v.Kind.String()
}

// Playlist is a user-curated ordered set of video ids plus metadata.
type Playlist struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	VideoIDs    []string `json:"videoIds"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Public      bool     `json:"public"`
	CreatedAt   int64    `json:"createdAt"`
	UpdatedAt   int64    `json:"updatedAt"`
}

// Contains reports whether the playlist holds the given video id.
func (p Playlist) Contains(videoID string) bool {
	for _, id := range p.VideoIDs {
		if id == videoID {
			return true
		}
	}
	return false
}

// ListItem interface implementation for Playlist

func (p *Playlist) GetID() string       { return p.ID }
func (p *Playlist) GetTitle() string    { return p.Name }
func (p *Playlist) GetItemType() string { return "playlist" }
func (p *Playlist) GetAddedAt() int64   { return p.CreatedAt }

func (p *Playlist) GetDescription() string {
	if len(p.VideoIDs) == 1 {
		return "1 video"
	}
	return fmt.Sprintf("%d videos", len(p.VideoIDs))
}

// HistoryEntry records one watched video, most recent first in the
// history list. At most one entry exists per video id.
type HistoryEntry struct {
	VideoID      string        `json:"videoId"`
	Title        string        `json:"title"`
	Kind         SourceKind    `json:"kind"`
	Thumbnail    string        `json:"thumbnail,omitempty"`
	Duration     time.Duration `json:"duration"`
	WatchedAt    int64         `json:"watchedAt"` // unix timestamp, refreshed on rewatch
	Percent      float64       `json:"percent"`   // 0-100
	LastPosition time.Duration `json:"lastPosition"`
}

// ListItem interface implementation for HistoryEntry

func (h *HistoryEntry) GetID() string       { return h.VideoID }
func (h *HistoryEntry) GetTitle() string    { return h.Title }
func (h *HistoryEntry) GetItemType() string { return "history" }
func (h *HistoryEntry) GetAddedAt() int64   { return h.WatchedAt }

func (h *HistoryEntry) GetDescription() string {
	return fmt.Sprintf("%.0f%% watched", h.Percent)
}

// Settings holds user preferences persisted across sessions.
type Settings struct {
	Autoplay      bool   `json:"autoplay"`
	SaveProgress  bool   `json:"saveProgress"`
	Notifications bool   `json:"notifications"`
	DarkMode      bool   `json:"darkMode"`
	Language      string `json:"language"`
	TimeFormat    string `json:"timeFormat"` // "12h" or "24h"
}

// DefaultSettings returns the out-of-the-box preference set.
func DefaultSettings() Settings {
	return Settings{
		Autoplay:      true,
		SaveProgress:  true,
		Notifications: true,
		DarkMode:      true,
		Language:      "en",
		TimeFormat:    "24h",
	}
}

// Statistics accumulates viewing counters. DailyWatchTime is keyed by
// date in YYYY-MM-DD form; values are seconds.
type Statistics struct {
	TotalWatchTime int64            `json:"totalWatchTime"` // seconds
	VideosWatched  int              `json:"videosWatched"`
	DailyWatchTime map[string]int64 `json:"dailyWatchTime"`
}

// AddWatchTime credits seconds of watch time to the running totals.
func (s *Statistics) AddWatchTime(day string, seconds int64) {
	if seconds <= 0 {
		return
	}
	if s.DailyWatchTime == nil {
		s.DailyWatchTime = make(map[string]int64)
	}
	s.TotalWatchTime += seconds
	s.DailyWatchTime[day] += seconds
}

// VideoNote is a timestamped annotation attached to a video.
type VideoNote struct {
	ID        string        `json:"id"`
	Timestamp time.Duration `json:"timestamp"`
	Content   string        `json:"content"`
	Tag       string        `json:"tag,omitempty"`
	CreatedAt int64         `json:"createdAt"`
	UpdatedAt int64         `json:"updatedAt"`
}

// FormatClock renders a duration as M:SS, or H:MM:SS past the hour mark.
func FormatClock(d time.Duration) string {
	if d <= 0 {
		return "0:00"
	}
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

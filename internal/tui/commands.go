package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ntsync/internal/domain"
	"ntsync/internal/source"
)

const (
	tickInterval         = time.Second
	noticeTTL            = 3 * time.Second
	backendTimeout       = 15 * time.Second
	fallbackDuration     = 10 * time.Minute
	historyWriteInterval = 10 * time.Second

	// Twitch embeds refuse to load without a parent host.
	embedParentHost = "localhost"
)

// tickCmd schedules the next playback position update for a generation.
func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return PlayerTickMsg{Gen: gen}
	})
}

// loadCmd resolves a queued entry into a playable form. Platform entries
// whose embed URL cannot be built fail instead of rendering a blank pane.
func loadCmd(entry domain.VideoEntry, gen uint64) tea.Cmd {
	return func() tea.Msg {
		if entry.SourceURL == "" {
			return PlayerFailedMsg{Gen: gen, Err: domain.ErrEntryNotFound}
		}
		if entry.Kind.Embeddable() && source.EmbedURL(entry.SourceURL, embedParentHost) == "" {
			return PlayerFailedMsg{Gen: gen, Err: domain.ErrBadURL}
		}

		duration := entry.Duration
		if duration <= 0 {
			duration = fallbackDuration
		}
		return PlayerReadyMsg{Gen: gen, Duration: duration}
	}
}

// seekCmd settles a pending seek on the next frame.
func seekCmd(gen uint64) tea.Cmd {
	return func() tea.Msg {
		return SeekAppliedMsg{Gen: gen}
	}
}

// clearNoticeCmd expires a notification after its display window.
func clearNoticeCmd(id int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return ClearNoticeMsg{ID: id}
	})
}

// fetchLibraryCmd pulls remote library content from the backend.
func (m Model) fetchLibraryCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()

		entries, err := client.FetchLibrary(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "library sync"}
		}
		return LibraryLoadedMsg{Entries: entries}
	}
}

// fetchWeatherCmd pulls the dashboard weather snapshot.
func (m Model) fetchWeatherCmd() tea.Cmd {
	client := m.client
	location := m.weatherLocation
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()

		w, err := client.FetchWeather(ctx, location)
		if err != nil {
			return ErrMsg{Err: err, Context: "weather"}
		}
		return WeatherLoadedMsg{Weather: w}
	}
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"ntsync/internal/app"
	"ntsync/internal/domain"
	"ntsync/internal/player"
	"ntsync/internal/queue"
	"ntsync/internal/tui/styles"
)

// View renders the whole screen.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.showHelp {
		b.WriteString(m.renderHelp())
	} else {
		switch m.tab {
		case TabDashboard:
			b.WriteString(m.renderDashboard())
		case TabLibrary:
			b.WriteString(m.renderLibrary())
		case TabPlayer:
			b.WriteString(m.renderPlayer())
		case TabHistory:
			b.WriteString(m.renderHistory())
		case TabFavorites:
			b.WriteString(m.renderFavorites())
		case TabPlaylists:
			b.WriteString(m.renderPlaylists())
		case TabSettings:
			b.WriteString(m.renderSettings())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderTabs() string {
	var tabs []string
	for t := Tab(0); t < tabCount; t++ {
		if t == m.tab {
			tabs = append(tabs, styles.ActiveTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, styles.InactiveTabStyle.Render(t.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderDashboard() string {
	var b strings.Builder

	stats := m.state.Statistics()
	b.WriteString(styles.TitleStyle.Render("Overview") + "\n")
	b.WriteString(fmt.Sprintf("  %s videos in library, %s watched, %s total watch time\n",
		styles.AccentStyle.Render(fmt.Sprintf("%d", len(m.state.Videos()))),
		styles.AccentStyle.Render(fmt.Sprintf("%d", stats.VideosWatched)),
		styles.AccentStyle.Render(domain.FormatClock(time.Duration(stats.TotalWatchTime)*time.Second)),
	))

	if m.weather != nil {
		w := m.weather
		b.WriteString("\n" + styles.TitleStyle.Render("Weather") + "\n")
		b.WriteString(fmt.Sprintf("  %s: %d°C, %s, humidity %d%%, wind %d km/h\n",
			w.Location, w.Temperature, w.Description, w.Humidity, w.WindSpeed))
	}

	history := m.state.History()
	b.WriteString("\n" + styles.TitleStyle.Render("Continue watching") + "\n")
	if len(history) == 0 {
		b.WriteString(styles.DimStyle.Render("  Nothing yet. Pick something from the library.") + "\n")
	}
	for i, h := range history {
		if i >= 5 {
			break
		}
		line := fmt.Sprintf("  %s %s", h.Title, styles.DimStyle.Render("("+h.Kind.String()+")"))
		if h.Percent > 0 {
			line += styles.DimStyle.Render(fmt.Sprintf(" %.0f%%", h.Percent))
		}
		b.WriteString(line + "\n")
	}

	if m.tracker.Degraded() {
		b.WriteString("\n" + styles.WarningStyle.Render("Progress storage unavailable, resume positions are session-only") + "\n")
	}
	return b.String()
}

func (m Model) renderLibrary() string {
	var b strings.Builder
	if m.filtering {
		b.WriteString(m.filterInput.View() + "\n")
	} else if m.filterQuery != "" {
		b.WriteString(styles.DimStyle.Render("filter: "+m.filterQuery+"  (esc to clear)") + "\n")
	}
	if m.addingURL {
		b.WriteString(m.urlInput.View() + "\n")
	}
	b.WriteString(m.libraryList.View())
	return b.String()
}

func (m Model) renderPlayer() string {
	var b strings.Builder

	current := m.player.Current()
	state := m.player.State()

	b.WriteString(styles.TitleStyle.Render("Now playing") + "\n")
	switch {
	case current == nil:
		b.WriteString(styles.DimStyle.Render("  Nothing playing. Press enter on a library entry.") + "\n")
	case state == player.StateLoading:
		b.WriteString(fmt.Sprintf("  %s %s\n", m.spinner.View(), current.Title))
	case state == player.StateError:
		b.WriteString("  " + current.Title + "\n")
		b.WriteString("  " + styles.ErrorStyle.Render("Error: "+m.player.Err().Error()) + "\n")
		b.WriteString("  " + styles.DimStyle.Render("R to retry, n to skip") + "\n")
	default:
		b.WriteString("  " + styles.NowPlayingStyle.Render(current.Title) + "\n")
		b.WriteString("  " + m.renderProgressBar() + "\n")
		b.WriteString("  " + m.renderTransport() + "\n")
	}

	b.WriteString("\n" + styles.TitleStyle.Render(fmt.Sprintf("Queue (%d)", m.queue.Len())))
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  shuffle %s · repeat %s",
		onOff(m.queue.Shuffle()), m.queue.Repeat())) + "\n")

	cursor := m.clampCursor(TabPlayer, m.queue.Len())
	for i, entry := range m.queue.Entries() {
		prefix := "  "
		if i == m.queue.CurrentIndex() {
			prefix = styles.AccentStyle.Render("▶ ")
		}
		line := prefix + entry.Title + " " + styles.DimStyle.Render(entry.FormattedDuration())
		if i == cursor {
			line = styles.SelectedItemStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if current != nil {
		b.WriteString(m.renderNotes(current.ID))
	}
	return b.String()
}

func (m Model) renderNotes(videoID string) string {
	var b strings.Builder
	if m.addingNote {
		b.WriteString("\n" + m.noteInput.View() + "\n")
	}

	notes := m.state.Notes(videoID)
	if len(notes) == 0 {
		return b.String()
	}

	b.WriteString("\n" + styles.TitleStyle.Render(fmt.Sprintf("Notes (%d)", len(notes))) + "\n")
	for _, n := range notes {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			styles.AccentStyle.Render(domain.FormatClock(n.Timestamp)),
			n.Content,
			styles.DimStyle.Render("#"+n.Tag)))
	}
	b.WriteString(styles.DimStyle.Render("  N add note · D delete newest") + "\n")
	return b.String()
}

func (m Model) renderProgressBar() string {
	duration := m.player.Duration()
	if duration <= 0 {
		return ""
	}
	width := m.width - 30
	if width < 10 {
		width = 10
	}

	filled := int(float64(width) * float64(m.player.Position()) / float64(duration))
	if filled > width {
		filled = width
	}

	bar := styles.ProgressFilledStyle.Render(strings.Repeat(styles.ProgressFilledChar, filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat(styles.ProgressEmptyChar, width-filled))

	return fmt.Sprintf("%s %s/%s",
		bar,
		domain.FormatClock(m.player.Position()),
		domain.FormatClock(duration))
}

func (m Model) renderTransport() string {
	state := "⏸"
	if m.player.State() == player.StatePlaying {
		state = "▶"
	}

	volume := fmt.Sprintf("vol %d%%", m.player.Volume())
	if m.player.Muted() {
		volume = "muted"
	}

	parts := []string{state, volume, fmt.Sprintf("%.2gx", m.player.Rate())}
	if m.player.Fullscreen() {
		parts = append(parts, "fullscreen")
	}
	if m.player.PiP() {
		parts = append(parts, "pip")
	}
	return styles.DimStyle.Render(strings.Join(parts, " · "))
}

func (m Model) renderHistory() string {
	var b strings.Builder
	history := m.state.History()
	cursor := m.clampCursor(TabHistory, len(history))

	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("History (%d)", len(history))) + "\n")
	if len(history) == 0 {
		b.WriteString(styles.DimStyle.Render("  Empty.") + "\n")
	}
	for i, h := range history {
		line := fmt.Sprintf("  %s %s", h.Title,
			styles.DimStyle.Render(fmt.Sprintf("%s · %.0f%%", h.Kind, h.Percent)))
		if i == cursor {
			line = styles.SelectedItemStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + styles.DimStyle.Render("enter play · x remove · C clear all"))
	return b.String()
}

func (m Model) renderFavorites() string {
	var b strings.Builder
	favorites := m.favoriteEntries()
	cursor := m.clampCursor(TabFavorites, len(favorites))

	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Favorites (%d)", len(favorites))) + "\n")
	if len(favorites) == 0 {
		b.WriteString(styles.DimStyle.Render("  Empty. Press f on a library entry.") + "\n")
	}
	for i, v := range favorites {
		line := "  ♥ " + v.Title + " " + styles.DimStyle.Render(v.Kind.String())
		if i == cursor {
			line = styles.SelectedItemStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) renderPlaylists() string {
	var b strings.Builder
	playlists := m.state.Playlists()
	cursor := m.clampCursor(TabPlaylists, len(playlists))

	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Playlists (%d)", len(playlists))) + "\n")
	for i, p := range playlists {
		line := fmt.Sprintf("  %s %s", p.Name,
			styles.DimStyle.Render(fmt.Sprintf("%d videos", len(p.VideoIDs))))
		if p.Public {
			line += styles.DimStyle.Render(" · public")
		}
		if i == cursor {
			line = styles.SelectedItemStyle.Render(line)
		}
		b.WriteString(line + "\n")
		if i == cursor && p.Description != "" {
			b.WriteString(styles.DimStyle.Render("    "+p.Description) + "\n")
		}
	}
	b.WriteString("\n" + styles.DimStyle.Render("enter play all · a queue all · x delete"))
	return b.String()
}

func (m Model) renderSettings() string {
	settings := m.state.Settings()
	cursor := m.clampCursor(TabSettings, settingsRowCount)

	rows := []struct {
		label string
		value string
	}{
		{"Autoplay", onOff(settings.Autoplay)},
		{"Save progress", onOff(settings.SaveProgress)},
		{"Notifications", onOff(settings.Notifications)},
		{"Dark mode", onOff(m.state.DarkMode())},
		{"Language", settings.Language},
		{"Time format", settings.TimeFormat},
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Settings") + "\n")
	for i, row := range rows {
		line := fmt.Sprintf("  %-16s %s", row.label, styles.AccentStyle.Render(row.value))
		if i == cursor {
			line = styles.SelectedItemStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + styles.DimStyle.Render("enter toggle"))
	return b.String()
}

func (m Model) renderHelp() string {
	sections := []struct {
		title string
		rows  [][2]string
	}{
		{"Navigation", [][2]string{
			{"tab / S-tab", "switch tab"},
			{"j/k", "move cursor"},
			{"enter", "select / play"},
			{"/", "filter library"},
			{"o", "open URL"},
		}},
		{"Playback", [][2]string{
			{"space", "play / pause"},
			{"n / p", "next / previous"},
			{"[ / ]", "seek ±10s"},
			{"s / r", "shuffle / repeat"},
			{"m, + / -", "mute, volume"},
			{"< / >", "playback rate"},
			{"F / I", "fullscreen / pip"},
			{"R", "retry after error"},
		}},
		{"Collections", [][2]string{
			{"f / w", "favorite / watch later"},
			{"a", "add to queue"},
			{"x", "delete / remove"},
			{"K / J", "reorder queue"},
			{"C", "clear queue or history"},
			{"N / D", "add / delete note"},
		}},
		{"App", [][2]string{
			{"t", "toggle theme"},
			{"g", "refresh from backend"},
			{"?", "toggle help"},
			{"q", "quit"},
		}},
	}

	var b strings.Builder
	for _, s := range sections {
		b.WriteString(styles.TitleStyle.Render(s.title) + "\n")
		for _, row := range s.rows {
			b.WriteString(fmt.Sprintf("  %-12s %s\n", styles.AccentStyle.Render(row[0]), row[1]))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStatusBar() string {
	if m.notice != nil {
		style := styles.InfoStyle
		switch m.notice.Level {
		case app.NoticeSuccess:
			style = styles.SuccessStyle
		case app.NoticeWarning:
			style = styles.WarningStyle
		case app.NoticeError:
			style = styles.ErrorStyle
		}
		return styles.StatusBarStyle.Render(style.Render(m.notice.Message))
	}

	var parts []string
	if m.syncing {
		parts = append(parts, m.spinner.View()+" syncing")
	}
	if current := m.player.Current(); current != nil {
		parts = append(parts, "♪ "+current.Title)
	}
	if m.queue.Repeat() != queue.RepeatNone {
		parts = append(parts, "repeat "+m.queue.Repeat().String())
	}
	parts = append(parts, m.help.View(Keys))
	return styles.StatusBarStyle.Render(strings.Join(parts, "  ·  "))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

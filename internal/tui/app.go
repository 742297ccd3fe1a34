// Package tui is the terminal front end: one Bubble Tea event loop
// owning the queue, player state machine and application state. All
// mutation happens through messages; nothing outside this loop touches
// the playback model.
package tui

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ntsync/internal/api"
	"ntsync/internal/app"
	"ntsync/internal/domain"
	"ntsync/internal/player"
	"ntsync/internal/progress"
	"ntsync/internal/queue"
	"ntsync/internal/search"
	"ntsync/internal/source"
)

// Tab identifies a dashboard pane.
type Tab int

const (
	TabDashboard Tab = iota
	TabLibrary
	TabPlayer
	TabHistory
	TabFavorites
	TabPlaylists
	TabSettings
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabDashboard:
		return "Dashboard"
	case TabLibrary:
		return "Library"
	case TabPlayer:
		return "Player"
	case TabHistory:
		return "History"
	case TabFavorites:
		return "Favorites"
	case TabPlaylists:
		return "Playlists"
	case TabSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// settingsRowCount is the number of toggle rows on the settings tab.
const settingsRowCount = 6

const defaultWeatherLocation = "London"

// resumeCutoffPercent is the watch percentage above which a video
// restarts from the beginning instead of resuming.
const resumeCutoffPercent = 95

// Model is the Bubble Tea application model.
type Model struct {
	state   *app.State
	queue   *queue.Manager
	player  *player.Player
	tracker *progress.Tracker
	client  *api.Client // nil when no backend is configured
	logger  *slog.Logger

	tab    Tab
	width  int
	height int

	libraryList list.Model
	filterInput textinput.Model
	urlInput    textinput.Model
	noteInput   textinput.Model
	spinner     spinner.Model
	help        help.Model

	filtering  bool
	addingURL  bool
	addingNote bool
	syncing    bool
	showHelp   bool

	filterQuery string
	cursor      map[Tab]int

	// historyMark is the playback position of the last history-progress
	// write, reset whenever the position jumps (load, resume, seek).
	historyMark time.Duration

	notice   *app.Notice
	noticeID int

	// pending collects notices raised by state mutations. It is shared
	// across model copies because the state's notify closure captures it
	// once at construction.
	pending *[]app.Notice

	weather         *api.Weather
	weatherLocation string
}

// NewModel builds the application model and installs itself as the
// state's notification sink.
func NewModel(
	state *app.State,
	q *queue.Manager,
	p *player.Player,
	tracker *progress.Tracker,
	client *api.Client,
	logger *slog.Logger,
) *Model {
	if logger == nil {
		logger = slog.Default()
	}

	filterInput := textinput.New()
	filterInput.Placeholder = "filter library..."
	filterInput.CharLimit = 80

	urlInput := textinput.New()
	urlInput.Placeholder = "video URL (YouTube, Vimeo, Twitch, direct)..."
	urlInput.CharLimit = 500

	noteInput := textinput.New()
	noteInput.Placeholder = "note at current position..."
	noteInput.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	pending := &[]app.Notice{}

	m := &Model{
		pending:         pending,
		state:           state,
		queue:           q,
		player:          p,
		tracker:         tracker,
		client:          client,
		logger:          logger,
		filterInput:     filterInput,
		urlInput:        urlInput,
		noteInput:       noteInput,
		spinner:         sp,
		help:            help.New(),
		cursor:          make(map[Tab]int),
		weatherLocation: defaultWeatherLocation,
	}

	delegate := list.NewDefaultDelegate()
	m.libraryList = list.New(nil, delegate, 0, 0)
	m.libraryList.Title = "Library"
	m.libraryList.SetFilteringEnabled(false)
	m.libraryList.SetShowHelp(false)
	m.libraryList.SetShowStatusBar(false)
	m.refreshLibraryList()

	state.SetNotify(func(n app.Notice) {
		*pending = append(*pending, n)
	})

	return m
}

// Init kicks off the spinner and, when a backend is configured, the
// initial content sync.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.client != nil {
		cmds = append(cmds, m.fetchLibraryCmd(), m.fetchWeatherCmd())
	}
	return tea.Batch(cmds...)
}

// Update is the single event dispatcher.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.libraryList.SetSize(msg.Width-4, msg.Height-8)
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.syncing || m.player.State() == player.StateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case PlayerReadyMsg:
		return m.handleReady(msg)

	case PlayerTickMsg:
		return m.handleTick(msg)

	case PlayerFailedMsg:
		m.player.Fail(msg.Gen, msg.Err)
		if msg.Gen == m.player.Generation() {
			cmds = append(cmds, m.raiseNotice(app.Notice{
				Level:   app.NoticeError,
				Message: "Playback failed: " + msg.Err.Error(),
			}))
		}
		return m, tea.Batch(cmds...)

	case SeekAppliedMsg:
		m.player.SeekDone(msg.Gen)
		if msg.Gen == m.player.Generation() {
			m.historyMark = m.player.Position()
			if m.player.State() == player.StatePlaying {
				return m, tickCmd(msg.Gen)
			}
		}
		return m, nil

	case LibraryLoadedMsg:
		m.syncing = false
		m.state.MergeRemote(msg.Entries)
		m.refreshLibraryList()
		return m, nil

	case WeatherLoadedMsg:
		w := msg.Weather
		m.weather = &w
		return m, nil

	case ErrMsg:
		m.syncing = false
		m.logger.Warn("background task failed", "context", msg.Context, "error", msg.Err)
		return m, m.raiseNotice(app.Notice{
			Level:   app.NoticeError,
			Message: msg.Context + ": " + msg.Err.Error(),
		})

	case ClearNoticeMsg:
		if msg.ID == m.noticeID {
			m.notice = nil
		}
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// === Player event handling ===

func (m Model) handleReady(msg PlayerReadyMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.player.Generation() {
		return m, nil
	}
	current := m.player.Current()
	if current == nil {
		return m, nil
	}

	var startAt time.Duration
	if rec, ok := m.tracker.Restore(current.ID); ok && rec.Percent < resumeCutoffPercent {
		startAt = rec.Position
	}

	m.player.Ready(msg.Gen, msg.Duration, startAt)
	m.historyMark = m.player.Position()
	if m.player.State() == player.StatePlaying {
		return m, tickCmd(msg.Gen)
	}
	return m, nil
}

func (m Model) handleTick(msg PlayerTickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.player.Generation() {
		return m, nil
	}

	step := time.Duration(float64(tickInterval) * m.player.Rate())
	if !m.player.Tick(msg.Gen, m.player.Position()+step) {
		return m, nil // paused, seeking or stale: the loop stops here
	}

	current := m.player.Current()
	position := m.player.Position()
	duration := m.player.Duration()

	m.tracker.OnTick(current.ID, position, duration)

	// History progress is coarser than the tracker: refresh every 10s of
	// playback. Position deltas vary with rate, so track elapsed distance
	// rather than testing position multiples.
	if duration > 0 && position-m.historyMark >= historyWriteInterval {
		percent := float64(position) / float64(duration) * 100
		m.state.UpdateWatchProgress(current.ID, percent, position)
		m.historyMark = position
	}

	if position >= duration {
		return m.handleEnded(msg.Gen)
	}
	return m, tickCmd(msg.Gen)
}

func (m Model) handleEnded(gen uint64) (tea.Model, tea.Cmd) {
	current := m.player.Current()
	if current != nil {
		m.state.UpdateWatchProgress(current.ID, 100, m.player.Duration())
		m.tracker.Forget(current.ID) // finished videos restart from zero
	}

	next, nextGen := m.player.Ended(gen)
	if next == nil {
		return m, nil
	}
	m.state.RecordWatch(*next)
	return m, loadCmd(*next, nextGen)
}

// === Key handling ===

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text entry modes swallow everything except escape/enter.
	if m.filtering {
		return m.handleFilterKey(msg)
	}
	if m.addingURL {
		return m.handleURLKey(msg)
	}
	if m.addingNote {
		return m.handleNoteKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.filterQuery != "" {
			m.filterQuery = ""
			m.refreshLibraryList()
		}
		return m, nil

	case key.Matches(msg, Keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		return m, nil

	case key.Matches(msg, Keys.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		return m, nil

	case key.Matches(msg, Keys.Theme):
		m.state.ToggleTheme()
		return m, m.drainNotices()

	case key.Matches(msg, Keys.Refresh):
		if m.client == nil {
			return m, m.raiseNotice(app.Notice{Level: app.NoticeWarning, Message: "No backend configured"})
		}
		m.syncing = true
		return m, tea.Batch(m.spinner.Tick, m.fetchLibraryCmd(), m.fetchWeatherCmd())

	case key.Matches(msg, Keys.AddURL):
		m.addingURL = true
		m.urlInput.SetValue("")
		return m, m.urlInput.Focus()

	case key.Matches(msg, Keys.Filter):
		if m.tab == TabLibrary {
			m.filtering = true
			m.filterInput.SetValue(m.filterQuery)
			return m, m.filterInput.Focus()
		}
	}

	if cmd, handled := m.handlePlaybackKey(msg); handled {
		return m, cmd
	}
	return m.handleTabKey(msg)
}

// handlePlaybackKey covers the transport controls that work on every tab.
func (m *Model) handlePlaybackKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, Keys.PlayPause):
		wasPlaying := m.player.State() == player.StatePlaying
		m.player.TogglePlay()
		if wasPlaying {
			if current := m.player.Current(); current != nil {
				m.tracker.Commit(current.ID)
			}
			return nil, true
		}
		if m.player.State() == player.StatePlaying {
			return tickCmd(m.player.Generation()), true
		}
		return nil, true

	case key.Matches(msg, Keys.Next):
		next, gen := m.player.Skip()
		if next == nil {
			return nil, true
		}
		m.state.RecordWatch(*next)
		return tea.Batch(loadCmd(*next, gen), m.drainNotices()), true

	case key.Matches(msg, Keys.Prev):
		prev := m.queue.Previous()
		if prev == nil {
			return nil, true
		}
		gen := m.player.Load(*prev)
		m.state.RecordWatch(*prev)
		return tea.Batch(loadCmd(*prev, gen), m.drainNotices()), true

	case key.Matches(msg, Keys.SeekBack):
		return m.seekBy(-10 * time.Second), true

	case key.Matches(msg, Keys.SeekFwd):
		return m.seekBy(10 * time.Second), true

	case key.Matches(msg, Keys.Shuffle):
		m.queue.SetShuffle(!m.queue.Shuffle())
		return nil, true

	case key.Matches(msg, Keys.Repeat):
		m.queue.CycleRepeat()
		return nil, true

	case key.Matches(msg, Keys.Mute):
		m.player.ToggleMute()
		return nil, true

	case key.Matches(msg, Keys.VolumeUp):
		m.player.SetVolume(m.player.Volume() + 5)
		return nil, true

	case key.Matches(msg, Keys.VolumeDown):
		m.player.SetVolume(m.player.Volume() - 5)
		return nil, true

	case key.Matches(msg, Keys.RateUp):
		m.player.SetRate(m.player.Rate() + 0.25)
		return nil, true

	case key.Matches(msg, Keys.RateDown):
		m.player.SetRate(m.player.Rate() - 0.25)
		return nil, true

	case key.Matches(msg, Keys.Fullscreen):
		m.player.ToggleFullscreen()
		return nil, true

	case key.Matches(msg, Keys.PiP):
		m.player.TogglePiP()
		return nil, true

	case key.Matches(msg, Keys.Retry):
		if m.player.State() != player.StateError {
			return nil, true
		}
		gen := m.player.Retry()
		if current := m.player.Current(); current != nil {
			return loadCmd(*current, gen), true
		}
		return nil, true
	}
	return nil, false
}

func (m *Model) seekBy(delta time.Duration) tea.Cmd {
	switch m.player.State() {
	case player.StatePlaying, player.StatePaused, player.StateEnded:
	default:
		return nil
	}
	m.player.Seek(m.player.Position() + delta)
	return seekCmd(m.player.Generation())
}

// handleTabKey routes navigation and selection to the active tab.
func (m Model) handleTabKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.tab {
	case TabLibrary:
		return m.handleLibraryKey(msg)
	case TabPlayer:
		return m.handleQueueKey(msg)
	case TabHistory:
		return m.handleHistoryKey(msg)
	case TabFavorites:
		return m.handleFavoritesKey(msg)
	case TabPlaylists:
		return m.handlePlaylistsKey(msg)
	case TabSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m Model) handleLibraryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Enter):
		entries := m.visibleEntries()
		idx := m.libraryList.Index()
		if idx < 0 || idx >= len(entries) {
			return m, nil
		}
		return m, m.playFrom(entries, idx)

	case key.Matches(msg, Keys.AddQueue):
		entries := m.visibleEntries()
		idx := m.libraryList.Index()
		if idx < 0 || idx >= len(entries) {
			return m, nil
		}
		m.queue.Add(entries[idx])
		return m, m.raiseNotice(app.Notice{
			Level:   app.NoticeSuccess,
			Message: "Queued \"" + entries[idx].Title + "\"",
		})

	case key.Matches(msg, Keys.Favorite):
		if entry, ok := m.selectedLibraryEntry(); ok {
			m.state.ToggleFavorite(entry.ID)
			m.refreshLibraryList()
			return m, m.drainNotices()
		}
		return m, nil

	case key.Matches(msg, Keys.WatchLater):
		if entry, ok := m.selectedLibraryEntry(); ok {
			m.state.ToggleWatchLater(entry.ID)
			return m, m.drainNotices()
		}
		return m, nil

	case key.Matches(msg, Keys.Delete):
		if entry, ok := m.selectedLibraryEntry(); ok {
			m.state.RemoveVideo(entry.ID)
			m.tracker.Forget(entry.ID)
			m.refreshLibraryList()
			return m, m.drainNotices()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.libraryList, cmd = m.libraryList.Update(msg)
	return m, cmd
}

func (m Model) handleQueueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cursor := m.clampCursor(TabPlayer, m.queue.Len())

	switch {
	case key.Matches(msg, Keys.Up):
		m.cursor[TabPlayer] = clampInt(cursor-1, 0, m.queue.Len()-1)

	case key.Matches(msg, Keys.Down):
		m.cursor[TabPlayer] = clampInt(cursor+1, 0, m.queue.Len()-1)

	case key.Matches(msg, Keys.Enter):
		if cursor >= 0 && cursor < m.queue.Len() {
			entry := m.queue.PlayAt(cursor)
			gen := m.player.Load(entry)
			m.state.RecordWatch(entry)
			return m, tea.Batch(loadCmd(entry, gen), m.drainNotices())
		}

	case key.Matches(msg, Keys.Delete):
		removingCurrent := cursor == m.queue.CurrentIndex()
		if m.queue.Remove(cursor) {
			m.cursor[TabPlayer] = m.clampCursor(TabPlayer, m.queue.Len())
			if removingCurrent {
				if m.queue.Len() == 0 {
					m.player.Stop()
					return m, nil
				}
				// The cursor now points at the shifted-in replacement.
				replacement := *m.queue.Current()
				gen := m.player.Load(replacement)
				m.state.RecordWatch(replacement)
				return m, tea.Batch(loadCmd(replacement, gen), m.spinner.Tick, m.drainNotices())
			}
		}

	case key.Matches(msg, Keys.MoveUp):
		if m.queue.MoveUp(cursor) {
			m.cursor[TabPlayer] = cursor - 1
		}

	case key.Matches(msg, Keys.MoveDown):
		if m.queue.MoveDown(cursor) {
			m.cursor[TabPlayer] = cursor + 1
		}

	case key.Matches(msg, Keys.ClearQueue):
		m.queue.Clear()
		m.player.Stop()
		m.cursor[TabPlayer] = 0

	case key.Matches(msg, Keys.Note):
		if m.player.Current() != nil {
			m.addingNote = true
			m.noteInput.SetValue("")
			return m, m.noteInput.Focus()
		}

	case key.Matches(msg, Keys.DropNote):
		if current := m.player.Current(); current != nil {
			if newest, ok := newestNote(m.state.Notes(current.ID)); ok {
				m.state.DeleteNote(current.ID, newest.ID)
			}
		}
	}
	return m, nil
}

// handleNoteKey runs the note entry line on the player tab.
func (m Model) handleNoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.addingNote = false
		m.noteInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.addingNote = false
		m.noteInput.Blur()

		content := strings.TrimSpace(m.noteInput.Value())
		if content == "" {
			return m, nil
		}
		current := m.player.Current()
		if current == nil {
			return m, nil
		}
		m.state.AddNote(current.ID, m.player.Position(), content, "")
		return m, m.raiseNotice(app.Notice{
			Level:   app.NoticeSuccess,
			Message: "Note saved at " + domain.FormatClock(m.player.Position()),
		})
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

// newestNote picks the most recently created note.
func newestNote(notes []domain.VideoNote) (domain.VideoNote, bool) {
	if len(notes) == 0 {
		return domain.VideoNote{}, false
	}
	newest := notes[0]
	for _, n := range notes[1:] {
		if n.CreatedAt > newest.CreatedAt {
			newest = n
		}
	}
	return newest, true
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	history := m.state.History()
	cursor := m.clampCursor(TabHistory, len(history))

	switch {
	case key.Matches(msg, Keys.Up):
		m.cursor[TabHistory] = clampInt(cursor-1, 0, len(history)-1)

	case key.Matches(msg, Keys.Down):
		m.cursor[TabHistory] = clampInt(cursor+1, 0, len(history)-1)

	case key.Matches(msg, Keys.Enter):
		if cursor >= 0 && cursor < len(history) {
			if entry, ok := m.state.VideoByID(history[cursor].VideoID); ok {
				return m, m.playFrom([]domain.VideoEntry{entry}, 0)
			}
			return m, m.raiseNotice(app.Notice{
				Level:   app.NoticeWarning,
				Message: "Video no longer in library",
			})
		}

	case key.Matches(msg, Keys.Delete):
		if cursor >= 0 && cursor < len(history) {
			m.state.RemoveFromHistory(history[cursor].VideoID)
			m.cursor[TabHistory] = m.clampCursor(TabHistory, len(m.state.History()))
			return m, m.drainNotices()
		}

	case key.Matches(msg, Keys.ClearQueue):
		m.state.ClearHistory()
		m.cursor[TabHistory] = 0
		return m, m.drainNotices()
	}
	return m, nil
}

func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	favorites := m.favoriteEntries()
	cursor := m.clampCursor(TabFavorites, len(favorites))

	switch {
	case key.Matches(msg, Keys.Up):
		m.cursor[TabFavorites] = clampInt(cursor-1, 0, len(favorites)-1)

	case key.Matches(msg, Keys.Down):
		m.cursor[TabFavorites] = clampInt(cursor+1, 0, len(favorites)-1)

	case key.Matches(msg, Keys.Enter):
		if cursor >= 0 && cursor < len(favorites) {
			return m, m.playFrom(favorites, cursor)
		}

	case key.Matches(msg, Keys.Delete), key.Matches(msg, Keys.Favorite):
		if cursor >= 0 && cursor < len(favorites) {
			m.state.ToggleFavorite(favorites[cursor].ID)
			m.cursor[TabFavorites] = m.clampCursor(TabFavorites, len(favorites)-1)
			m.refreshLibraryList()
			return m, m.drainNotices()
		}
	}
	return m, nil
}

func (m Model) handlePlaylistsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	playlists := m.state.Playlists()
	cursor := m.clampCursor(TabPlaylists, len(playlists))

	switch {
	case key.Matches(msg, Keys.Up):
		m.cursor[TabPlaylists] = clampInt(cursor-1, 0, len(playlists)-1)

	case key.Matches(msg, Keys.Down):
		m.cursor[TabPlaylists] = clampInt(cursor+1, 0, len(playlists)-1)

	case key.Matches(msg, Keys.Enter):
		if cursor >= 0 && cursor < len(playlists) {
			videos := m.state.PlaylistVideos(playlists[cursor].ID)
			if len(videos) == 0 {
				return m, m.raiseNotice(app.Notice{
					Level:   app.NoticeWarning,
					Message: "Playlist is empty",
				})
			}
			return m, m.playFrom(videos, 0)
		}

	case key.Matches(msg, Keys.AddQueue):
		if cursor >= 0 && cursor < len(playlists) {
			videos := m.state.PlaylistVideos(playlists[cursor].ID)
			for _, v := range videos {
				m.queue.Add(v)
			}
			return m, m.raiseNotice(app.Notice{
				Level:   app.NoticeSuccess,
				Message: "Queued " + playlists[cursor].Name,
			})
		}

	case key.Matches(msg, Keys.Delete):
		if cursor >= 0 && cursor < len(playlists) {
			m.state.DeletePlaylist(playlists[cursor].ID)
			m.cursor[TabPlaylists] = m.clampCursor(TabPlaylists, len(playlists)-1)
			return m, m.drainNotices()
		}
	}
	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cursor := m.clampCursor(TabSettings, settingsRowCount)

	switch {
	case key.Matches(msg, Keys.Up):
		m.cursor[TabSettings] = clampInt(cursor-1, 0, settingsRowCount-1)

	case key.Matches(msg, Keys.Down):
		m.cursor[TabSettings] = clampInt(cursor+1, 0, settingsRowCount-1)

	case key.Matches(msg, Keys.Enter):
		settings := m.state.Settings()
		switch cursor {
		case 0:
			settings.Autoplay = !settings.Autoplay
		case 1:
			settings.SaveProgress = !settings.SaveProgress
		case 2:
			settings.Notifications = !settings.Notifications
		case 3:
			m.state.ToggleTheme()
			return m, m.drainNotices()
		case 4:
			if settings.Language == "en" {
				settings.Language = "de"
			} else {
				settings.Language = "en"
			}
		case 5:
			if settings.TimeFormat == "24h" {
				settings.TimeFormat = "12h"
			} else {
				settings.TimeFormat = "24h"
			}
		}
		m.state.UpdateSettings(settings)
		return m, m.drainNotices()
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.filtering = false
		m.filterInput.Blur()
		m.filterQuery = m.filterInput.Value()
		m.refreshLibraryList()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.filterQuery = m.filterInput.Value()
	m.refreshLibraryList()
	return m, cmd
}

func (m Model) handleURLKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.addingURL = false
		m.urlInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.addingURL = false
		m.urlInput.Blur()

		entry, err := m.resolveInput(strings.TrimSpace(m.urlInput.Value()))
		if err != nil {
			return m, m.raiseNotice(app.Notice{
				Level:   app.NoticeError,
				Message: "Cannot add video: " + err.Error(),
			})
		}
		m.state.AddVideo(entry)
		m.refreshLibraryList()
		return m, m.drainNotices()
	}

	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

// resolveInput builds a library entry from user input: a path to a
// local video file, or a URL.
func (m Model) resolveInput(input string) (domain.VideoEntry, error) {
	if info, err := os.Stat(input); err == nil && !info.IsDir() {
		return source.EntryFromFile(filepath.Base(input), info.Size(), "", input)
	}
	return source.EntryFromURL(input, "")
}

// === Helpers ===

// playFrom loads entries into the queue and starts playback at idx.
func (m *Model) playFrom(entries []domain.VideoEntry, idx int) tea.Cmd {
	m.queue.Load(entries)
	entry := m.queue.PlayAt(idx)
	gen := m.player.Load(entry)
	m.state.RecordWatch(entry)
	m.tab = TabPlayer
	m.cursor[TabPlayer] = idx
	return tea.Batch(loadCmd(entry, gen), m.spinner.Tick, m.drainNotices())
}

// visibleEntries returns the library entries currently shown, honoring
// the active filter.
func (m Model) visibleEntries() []domain.VideoEntry {
	entries := make([]domain.VideoEntry, 0, len(m.libraryList.Items()))
	for _, it := range m.libraryList.Items() {
		if vi, ok := it.(videoItem); ok {
			entries = append(entries, vi.entry)
		}
	}
	return entries
}

func (m Model) selectedLibraryEntry() (domain.VideoEntry, bool) {
	entries := m.visibleEntries()
	idx := m.libraryList.Index()
	if idx < 0 || idx >= len(entries) {
		return domain.VideoEntry{}, false
	}
	return entries[idx], true
}

// favoriteEntries resolves favorite ids to library entries.
func (m Model) favoriteEntries() []domain.VideoEntry {
	var out []domain.VideoEntry
	for _, id := range m.state.Favorites() {
		if v, ok := m.state.VideoByID(id); ok {
			out = append(out, v)
		}
	}
	return out
}

// refreshLibraryList rebuilds the library list items from state,
// applying the active filter through the search index.
func (m *Model) refreshLibraryList() {
	videos := m.state.Videos()

	var ordered []domain.VideoEntry
	if m.filterQuery == "" {
		ordered = videos
	} else {
		listItems := make([]domain.ListItem, len(videos))
		for i := range videos {
			listItems[i] = &videos[i]
		}
		var matched []domain.VideoEntry
		for _, r := range search.NewIndex(listItems).Filter(m.filterQuery) {
			if v, ok := r.Item.(*domain.VideoEntry); ok {
				matched = append(matched, *v)
			}
		}
		// The index finds subsequence matches; Rank re-orders them by
		// substring position so exact and prefix hits surface first.
		ordered = search.Rank(m.filterQuery, matched)
	}

	items := make([]list.Item, len(ordered))
	for i, v := range ordered {
		it := videoItem{entry: v, favorite: m.state.IsFavorite(v.ID)}
		if rec, ok := m.tracker.Restore(v.ID); ok {
			it.percent = rec.Percent
		}
		items[i] = it
	}
	m.libraryList.SetItems(items)
}

// raiseNotice shows a notification and schedules its expiry.
func (m *Model) raiseNotice(n app.Notice) tea.Cmd {
	m.noticeID++
	m.notice = &n
	return clearNoticeCmd(m.noticeID)
}

// drainNotices surfaces the most recent notice raised by state
// mutations during this update.
func (m *Model) drainNotices() tea.Cmd {
	if len(*m.pending) == 0 {
		return nil
	}
	last := (*m.pending)[len(*m.pending)-1]
	*m.pending = (*m.pending)[:0]
	if !m.state.Settings().Notifications {
		return nil
	}
	return m.raiseNotice(last)
}

// clampCursor keeps a tab's cursor inside its list bounds.
func (m Model) clampCursor(tab Tab, length int) int {
	return clampInt(m.cursor[tab], 0, length-1)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

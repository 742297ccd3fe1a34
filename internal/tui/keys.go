package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	NextTab key.Binding
	PrevTab key.Binding

	// Playback
	PlayPause  key.Binding
	Next       key.Binding
	Prev       key.Binding
	SeekBack   key.Binding
	SeekFwd    key.Binding
	Shuffle    key.Binding
	Repeat     key.Binding
	Mute       key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	RateUp     key.Binding
	RateDown   key.Binding
	Fullscreen key.Binding
	PiP        key.Binding
	Retry      key.Binding

	// Collections
	Favorite   key.Binding
	WatchLater key.Binding
	AddQueue   key.Binding
	Delete     key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	ClearQueue key.Binding
	Note       key.Binding
	DropNote   key.Binding

	// App
	Filter  key.Binding
	AddURL  key.Binding
	Theme   key.Binding
	Refresh key.Binding
	Help    key.Binding
	Escape  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select/play"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev tab"),
		),

		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "previous"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "seek -10s"),
		),
		SeekFwd: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "seek +10s"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "shuffle"),
		),
		Repeat: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "repeat mode"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "volume down"),
		),
		RateUp: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "faster"),
		),
		RateDown: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "slower"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "fullscreen"),
		),
		PiP: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "picture-in-picture"),
		),
		Retry: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "retry"),
		),

		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		WatchLater: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "watch later"),
		),
		AddQueue: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add to queue"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete/remove"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "move down"),
		),
		ClearQueue: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear queue"),
		),
		Note: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "add note"),
		),
		DropNote: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete newest note"),
		),

		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		AddURL: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open url"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "refresh backend"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the one-line help bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Enter, k.PlayPause, k.Filter, k.Help, k.Quit}
}

// FullHelp groups bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.NextTab, k.PrevTab},
		{k.PlayPause, k.Next, k.Prev, k.SeekBack, k.SeekFwd, k.Shuffle, k.Repeat},
		{k.Mute, k.VolumeUp, k.VolumeDown, k.RateUp, k.RateDown, k.Fullscreen, k.PiP},
		{k.Favorite, k.WatchLater, k.AddQueue, k.Delete, k.MoveUp, k.MoveDown, k.Note, k.DropNote},
		{k.Filter, k.AddURL, k.Theme, k.Refresh, k.Retry, k.Help, k.Quit},
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()

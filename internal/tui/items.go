package tui

import (
	"fmt"

	"ntsync/internal/domain"
)

// videoItem adapts a library entry to the bubbles list.
type videoItem struct {
	entry    domain.VideoEntry
	percent  float64 // watch progress, 0 when unwatched
	favorite bool
}

func (i videoItem) Title() string {
	title := i.entry.Title
	if i.favorite {
		title = "♥ " + title
	}
	return title
}

func (i videoItem) Description() string {
	desc := i.entry.Kind.String()
	if i.entry.Duration > 0 {
		desc += " · " + i.entry.FormattedDuration()
	}
	if i.entry.Category != "" {
		desc += " · " + i.entry.Category
	}
	if i.percent > 0 {
		desc += fmt.Sprintf(" · %.0f%% watched", i.percent)
	}
	return desc
}

func (i videoItem) FilterValue() string { return i.entry.Title }

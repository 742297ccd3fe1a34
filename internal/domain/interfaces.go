package domain

// ListItem is the polymorphic interface for items displayed in lists.
// Domain entities (VideoEntry, Playlist, HistoryEntry) implement it directly.
type ListItem interface {
	// GetID returns the unique identifier for this item
	GetID() string

	// GetTitle returns the display title
	GetTitle() string

	// GetDescription returns secondary info for display
	GetDescription() string

	// GetItemType returns the type identifier: "video", "playlist", "history"
	GetItemType() string

	// GetAddedAt returns the unix timestamp used for recency sorting
	GetAddedAt() int64
}

package app

import (
	"time"

	"ntsync/internal/domain"
)

// Demo content shipped with a fresh install so the dashboard is not a
// wall of empty panes. Persisted state from a previous session replaces
// the mutable parts (history, favorites) on startup.

func seedTime(date string) int64 {
	t, _ := time.Parse("2006-01-02", date)
	return t.Unix()
}

func ytThumb(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/maxresdefault.jpg"
}

func seedLibrary() []domain.VideoEntry {
	return []domain.VideoEntry{
		{
			ID:        "1",
			Title:     "React Best Practices 2024",
			SourceURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Kind:      domain.SourceYouTube,
			Duration:  15*time.Minute + 30*time.Second,
			Thumbnail: ytThumb("dQw4w9WgXcQ"),
			Category:  "Programming",
			Tags:      []string{"React", "JavaScript", "Web Development"},
			AddedAt:   seedTime("2024-01-15"),
		},
		{
			ID:        "2",
			Title:     "JavaScript ES2024 Features",
			SourceURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Kind:      domain.SourceYouTube,
			Duration:  22*time.Minute + 15*time.Second,
			Thumbnail: ytThumb("dQw4w9WgXcQ"),
			Category:  "Programming",
			Tags:      []string{"JavaScript", "ES2024"},
			AddedAt:   seedTime("2024-01-14"),
		},
		{
			ID:        "3",
			Title:     "CSS Grid Mastery",
			SourceURL: "https://vimeo.com/76979871",
			Kind:      domain.SourceVimeo,
			Duration:  18*time.Minute + 45*time.Second,
			Category:  "Design",
			Tags:      []string{"CSS", "Layout", "Frontend"},
			AddedAt:   seedTime("2024-01-13"),
		},
		{
			ID:        "4",
			Title:     "Node.js Performance Optimization",
			SourceURL: "https://www.youtube.com/watch?v=f2EqECiTBL8",
			Kind:      domain.SourceYouTube,
			Duration:  25*time.Minute + 10*time.Second,
			Thumbnail: ytThumb("f2EqECiTBL8"),
			Category:  "Programming",
			Tags:      []string{"Node.js", "Performance", "Backend"},
			AddedAt:   seedTime("2024-01-12"),
		},
		{
			ID:        "5",
			Title:     "TypeScript Advanced Patterns",
			SourceURL: "https://www.youtube.com/watch?v=P-J9Eg7hJwE",
			Kind:      domain.SourceYouTube,
			Duration:  31*time.Minute + 20*time.Second,
			Thumbnail: ytThumb("P-J9Eg7hJwE"),
			Category:  "Programming",
			Tags:      []string{"TypeScript", "Types"},
			AddedAt:   seedTime("2024-01-11"),
		},
		{
			ID:        "6",
			Title:     "Docker for Developers",
			SourceURL: "https://www.youtube.com/watch?v=pTFZFxd4hOI",
			Kind:      domain.SourceYouTube,
			Duration:  45*time.Minute + 30*time.Second,
			Thumbnail: ytThumb("pTFZFxd4hOI"),
			Category:  "DevOps",
			Tags:      []string{"Docker", "Containers"},
			AddedAt:   seedTime("2024-01-10"),
		},
		{
			ID:        "7",
			Title:     "Vue.js 3 Composition API",
			SourceURL: "https://www.youtube.com/watch?v=I_xLMmNeLDY",
			Kind:      domain.SourceYouTube,
			Duration:  28*time.Minute + 5*time.Second,
			Thumbnail: ytThumb("I_xLMmNeLDY"),
			Category:  "Programming",
			Tags:      []string{"Vue.js", "Composition API", "Frontend"},
			AddedAt:   seedTime("2024-01-09"),
		},
		{
			ID:        "8",
			Title:     "MongoDB Aggregation Pipeline",
			SourceURL: "https://www.youtube.com/watch?v=A3jvoE0jGdE",
			Kind:      domain.SourceYouTube,
			Duration:  35*time.Minute + 20*time.Second,
			Thumbnail: ytThumb("A3jvoE0jGdE"),
			Category:  "Databases",
			Tags:      []string{"MongoDB", "Aggregation"},
			AddedAt:   seedTime("2024-01-08"),
		},
		{
			ID:        "9",
			Title:     "GraphQL Complete Guide",
			SourceURL: "https://vimeo.com/98767543",
			Kind:      domain.SourceVimeo,
			Duration:  42*time.Minute + 15*time.Second,
			Category:  "Programming",
			Tags:      []string{"GraphQL", "API"},
			AddedAt:   seedTime("2024-01-07"),
		},
		{
			ID:        "10",
			Title:     "Kubernetes Fundamentals",
			SourceURL: "https://www.youtube.com/watch?v=X48VuDVv0do",
			Kind:      domain.SourceYouTube,
			Duration:  52*time.Minute + 30*time.Second,
			Thumbnail: ytThumb("X48VuDVv0do"),
			Category:  "DevOps",
			Tags:      []string{"Kubernetes", "Orchestration"},
			AddedAt:   seedTime("2024-01-06"),
		},
	}
}

func seedPlaylists() []domain.Playlist {
	return []domain.Playlist{
		{
			ID:          "1",
			Name:        "Frontend Mastery",
			Description: "Complete frontend development journey from basics to advanced",
			VideoIDs:    []string{"1", "2", "3", "7"},
			Thumbnail:   ytThumb("dQw4w9WgXcQ"),
			CreatedAt:   seedTime("2024-01-15"),
			UpdatedAt:   seedTime("2024-01-15"),
		},
		{
			ID:          "2",
			Name:        "Backend Development",
			Description: "Server-side development with Node.js, databases, and APIs",
			VideoIDs:    []string{"4", "8", "9"},
			Thumbnail:   ytThumb("f2EqECiTBL8"),
			CreatedAt:   seedTime("2024-01-14"),
			UpdatedAt:   seedTime("2024-01-14"),
		},
		{
			ID:          "3",
			Name:        "DevOps Essentials",
			Description: "Infrastructure, containers, and deployment strategies",
			VideoIDs:    []string{"6", "10"},
			Thumbnail:   ytThumb("pTFZFxd4hOI"),
			Public:      true,
			CreatedAt:   seedTime("2024-01-13"),
			UpdatedAt:   seedTime("2024-01-13"),
		},
		{
			ID:          "4",
			Name:        "TypeScript Deep Dive",
			Description: "Advanced TypeScript for professional developers",
			VideoIDs:    []string{"5"},
			Thumbnail:   ytThumb("P-J9Eg7hJwE"),
			CreatedAt:   seedTime("2024-01-12"),
			UpdatedAt:   seedTime("2024-01-12"),
		},
	}
}

func seedHistory() []domain.HistoryEntry {
	return []domain.HistoryEntry{
		{
			VideoID:   "1",
			Title:     "React Best Practices 2024",
			Kind:      domain.SourceYouTube,
			Thumbnail: ytThumb("dQw4w9WgXcQ"),
			Duration:  15*time.Minute + 30*time.Second,
			WatchedAt: seedTime("2024-01-15"),
		},
		{
			VideoID:   "4",
			Title:     "Node.js Performance Optimization",
			Kind:      domain.SourceYouTube,
			Thumbnail: ytThumb("f2EqECiTBL8"),
			Duration:  25*time.Minute + 10*time.Second,
			WatchedAt: seedTime("2024-01-14"),
		},
		{
			VideoID:   "6",
			Title:     "Docker for Developers",
			Kind:      domain.SourceYouTube,
			Thumbnail: ytThumb("pTFZFxd4hOI"),
			Duration:  45*time.Minute + 30*time.Second,
			WatchedAt: seedTime("2024-01-13"),
		},
	}
}

func seedFavorites() []string {
	return []string{"1", "3", "6", "10"}
}

func seedWatchLater() []string {
	return []string{"2", "4", "7", "9"}
}

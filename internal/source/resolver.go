// Package source classifies video URLs and files and builds platform
// embed URLs. Everything here is pure and stateless.
package source

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"ntsync/internal/domain"
)

// videoExtensions are the file extensions accepted as local video uploads.
var videoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".ogg":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".mkv":  true,
}

// Classify determines the source kind for a URL or file reference.
// Platform hosts are matched by substring; anything else served over
// http(s) is generic online; everything else is treated as local.
func Classify(url string) domain.SourceKind {
	switch {
	case strings.Contains(url, "youtube.com"), strings.Contains(url, "youtu.be"):
		return domain.SourceYouTube
	case strings.Contains(url, "vimeo.com"):
		return domain.SourceVimeo
	case strings.Contains(url, "twitch.tv"):
		return domain.SourceTwitch
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return domain.SourceOnline
	default:
		return domain.SourceLocal
	}
}

// EmbedURL builds an iframe-loadable URL for a platform video page URL.
// parentHost is required by Twitch embeds (the embed refuses to load
// without it) and ignored for other platforms. Returns "" when no video
// id can be extracted; callers must treat "" as "cannot render".
func EmbedURL(url, parentHost string) string {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return ""
	}

	switch Classify(url) {
	case domain.SourceYouTube:
		id := youtubeID(url)
		if id == "" {
			return ""
		}
		return "https://www.youtube.com/embed/" + id + "?autoplay=1&rel=0&modestbranding=1"

	case domain.SourceVimeo:
		id := segmentAfter(url, "vimeo.com/")
		if id == "" {
			return ""
		}
		return "https://player.vimeo.com/video/" + id + "?autoplay=1"

	case domain.SourceTwitch:
		channel := segmentAfter(url, "twitch.tv/")
		if channel == "" {
			return ""
		}
		return "https://player.twitch.tv/?channel=" + channel + "&parent=" + parentHost

	default:
		return url
	}
}

// ExtractVideoID returns the platform video id for YouTube/Vimeo URLs and
// the channel name for Twitch. Empty for everything else.
func ExtractVideoID(url string) string {
	switch Classify(url) {
	case domain.SourceYouTube:
		return youtubeID(url)
	case domain.SourceVimeo:
		return segmentAfter(url, "vimeo.com/")
	case domain.SourceTwitch:
		return segmentAfter(url, "twitch.tv/")
	default:
		return ""
	}
}

// youtubeID extracts the video id from watch and short-link URL forms,
// dropping any trailing query parameters.
func youtubeID(url string) string {
	if strings.Contains(url, "youtu.be") {
		return segmentAfter(url, "youtu.be/")
	}
	_, after, found := strings.Cut(url, "v=")
	if !found {
		return ""
	}
	return trimParams(after)
}

// segmentAfter returns the path segment following marker, with query
// parameters stripped.
func segmentAfter(url, marker string) string {
	_, after, found := strings.Cut(url, marker)
	if !found {
		return ""
	}
	return trimParams(after)
}

func trimParams(s string) string {
	if i := strings.IndexAny(s, "?&/"); i >= 0 {
		s = s[:i]
	}
	return s
}

// IsVideoFile reports whether a selected file looks like a playable
// video, by MIME type or by extension.
func IsVideoFile(name, mimeType string) bool {
	if strings.HasPrefix(mimeType, "video/") {
		return true
	}
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}

// EntryFromFile builds a VideoEntry for a selected local file. blobURL is
// the in-memory handle the playback element reads from; it is never
// persisted. Returns ErrNotAVideo for unrecognized files.
func EntryFromFile(name string, size int64, mimeType, blobURL string) (domain.VideoEntry, error) {
	if !IsVideoFile(name, mimeType) {
		return domain.VideoEntry{}, domain.ErrNotAVideo
	}
	title := strings.TrimSuffix(name, filepath.Ext(name))
	return domain.VideoEntry{
		ID:        uuid.New().String(),
		Title:     title,
		SourceURL: blobURL,
		Kind:      domain.SourceLocal,
		Category:  "Local",
		AddedAt:   time.Now().Unix(),
		FileSize:  size,
	}, nil
}

// EntryFromURL builds a VideoEntry for a submitted URL. The kind is
// resolved once here and carried on the entry. Platform URLs that yield
// no extractable id are rejected.
func EntryFromURL(url, title string) (domain.VideoEntry, error) {
	kind := Classify(url)
	if kind == domain.SourceLocal && !IsVideoFile(url, "") {
		return domain.VideoEntry{}, domain.ErrBadURL
	}
	if kind.Embeddable() && ExtractVideoID(url) == "" {
		return domain.VideoEntry{}, domain.ErrBadURL
	}
	if title == "" {
		title = url
	}
	return domain.VideoEntry{
		ID:        uuid.New().String(),
		Title:     title,
		SourceURL: url,
		Kind:      kind,
		AddedAt:   time.Now().Unix(),
	}, nil
}

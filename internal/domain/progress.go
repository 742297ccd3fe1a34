package domain

import "time"

// ProgressRecord is the persisted last-known playback position for one
// video, keyed by video id.
type ProgressRecord struct {
	VideoID   string        `json:"videoId"`
	Position  time.Duration `json:"position"`
	Duration  time.Duration `json:"duration"`
	Percent   float64       `json:"percent"` // 0-100
	UpdatedAt int64         `json:"updatedAt"`
}

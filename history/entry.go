package history

import (
	"fmt"
	"time"
)

// Entry is the local watch state of one video.
type Entry struct {
	VideoID           string    `json:"video_id"`
	Title             string    `json:"title"`
	ChannelID         int64     `json:"channel_id,omitempty"`
	DurationSeconds   float64   `json:"duration_seconds,omitempty"`
	LastPosition      float64   `json:"last_position_seconds"`
	WatchedPercentage float64   `json:"watched_percentage"`
	Completed         bool      `json:"completed"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s (%.0f%%)", e.Title, e.WatchedPercentage)
}

// ResumePosition is where playback should pick up, 0 once completed.
func (e *Entry) ResumePosition() float64 {
	if e.Completed {
		return 0
	}
	return e.LastPosition
}

package session

import (
	"github.com/creatv/creatv/chapters"
	"github.com/creatv/creatv/playback"
	"github.com/creatv/creatv/sleeptimer"
	"github.com/samber/mo"
)

// Snapshot is everything a surface needs to render the session.
type Snapshot struct {
	VideoID string
	Title   string

	Candidate      mo.Option[playback.Candidate]
	CandidateIndex int
	CandidateCount int

	Qualities playback.QualitySet
	Sleep     sleeptimer.Snapshot

	Position float64
	Duration float64
	Paused   bool
	Ended    bool
	Chapter  mo.Option[chapters.Chapter]

	// Notice is the latest one-off message, such as the sleep timer pausing playback.
	Notice string
	Err    error
}

// Percent is the watched share of the video, 0 while the duration is unknown.
func (s Snapshot) Percent() float64 {
	if s.Duration <= 0 {
		return 0
	}

	return min(s.Position/s.Duration*100, 100)
}

package player

import "github.com/creatv/creatv/playback"

// Event is something the player reported.
type Event interface {
	playerEvent()
}

// EventCallback receives events on the listener goroutine.
type EventCallback func(Event)

// TracksChanged carries the current video tracks.
type TracksChanged struct {
	Tracks []playback.Track
	ids    []int
}

// PositionChanged reports the playback position in seconds.
type PositionChanged struct {
	Seconds float64
}

// PauseChanged reports the pause state.
type PauseChanged struct {
	Paused bool
}

// FileLoaded is sent once the media started.
type FileLoaded struct{}

// EndOfFile is sent when the media played to its end.
type EndOfFile struct{}

// PlaybackError is sent when the media could not be played.
type PlaybackError struct {
	Reason string
}

func (TracksChanged) playerEvent()   {}
func (PositionChanged) playerEvent() {}
func (PauseChanged) playerEvent()    {}
func (FileLoaded) playerEvent()      {}
func (EndOfFile) playerEvent()       {}
func (PlaybackError) playerEvent()   {}

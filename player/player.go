// Package player drives the external media player that renders CreaTV streams.
//
// The only backend is mpv, controlled over its JSON IPC socket. The player reports tracks,
// position and errors as typed events and accepts track selections from the playback engine.
package player

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creatv/creatv/chapters"
	"github.com/creatv/creatv/playback"
)

// ErrTrackNotFound is returned when a selection matches no reported video track.
var ErrTrackNotFound = errors.New("no matching video track")

// Player is a running renderer.
type Player interface {
	// Play loads url, starting at start seconds. The first call launches the player process.
	Play(url, title string, start float64) error

	TogglePause() error
	SetPaused(paused bool) error
	Paused() (bool, error)

	TimePos() (float64, error)
	Duration() (float64, error)
	PercentWatched() (float64, error)
	Seek(seconds float64) error

	// SelectTrack pins a video track, or returns to automatic selection.
	SelectTrack(selection playback.TrackSelection) error
	// VideoTracks returns the video tracks of the loaded media.
	VideoTracks() ([]playback.Track, error)
	SetChapters(list []chapters.Chapter) error

	// Listen delivers events until Close.
	Listen(callback EventCallback) error

	// Wait is closed when the player process exits.
	Wait() <-chan struct{}
	Close() error
}

// New returns the player registered under name.
func New(name string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mpv":
		return NewMPV(), nil
	default:
		return nil, fmt.Errorf("unsupported player %q, only mpv is available", name)
	}
}

// Package tui provides the player control surface shown while a video plays.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/creatv/creatv/api"
	"github.com/creatv/creatv/chapters"
	"github.com/creatv/creatv/session"
	"github.com/creatv/creatv/share"
	"github.com/creatv/creatv/sleeptimer"
)

// Session is the part of session.Session the surface drives.
type Session interface {
	Video() *api.Video
	Chapters() []chapters.Chapter
	Snapshot() session.Snapshot
	Updates() <-chan session.Snapshot
	Done() <-chan struct{}

	TogglePause() error
	Seek(seconds float64) error
	SelectQuality(id string) error
	SetSleepTimer(choice sleeptimer.Choice)
}

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Session Session
	// Builder defaults to share.FromConfig without an API client.
	Builder *share.Builder
	// Dispatcher defaults to share.DefaultDispatcher, with printed messages shown inline.
	Dispatcher *share.Dispatcher
}

// Run executes the Bubble Tea loop until the user quits or the player exits.
// The caller owns the session and closes it afterwards.
func Run(options *Options) error {
	_, err := tea.NewProgram(newBubble(options), tea.WithAltScreen()).Run()
	return err
}

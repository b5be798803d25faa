package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/creatv/creatv/color"
	"github.com/creatv/creatv/style"
)

// statefulKeymap defines the keyboard interactions available within various application states.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	confirm, back,
	playPause, seekForward, seekBackward,
	nextChapter, prevChapter,
	quality, sleep, share,
	toggleTimestamp,
	up, down, top, bottom,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "+10s"),
		),
		seekBackward: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "-10s"),
		),
		nextChapter: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next chapter"),
		),
		prevChapter: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prev chapter"),
		),
		quality: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp(style.Fg(color.Brand)("v"), style.Fg(color.Brand)("quality")),
		),
		sleep: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "sleep timer"),
		),
		share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "share"),
		),
		toggleTimestamp: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle timestamp"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case loadingState:
		return to2(h(k.forceQuit))
	case playingState:
		return h(k.playPause, k.quality, k.sleep, k.share, k.quit),
			h(k.playPause, k.seekBackward, k.seekForward, k.prevChapter, k.nextChapter, k.quality, k.sleep, k.share, k.quit)
	case qualityState, sleepState:
		return to2(h(k.confirm, k.back))
	case shareState:
		return to2(h(k.confirm, k.toggleTimestamp, k.back))
	case premiumState:
		return to2(h(k.back))
	case errorState:
		return to2(h(k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:      k.up,
		CursorDown:    k.down,
		GoToStart:     k.top,
		GoToEnd:       k.bottom,
		ShowFullHelp:  k.showHelp,
		CloseFullHelp: k.showHelp,
		Quit:          k.quit,
		ForceQuit:     k.forceQuit,
	}
}

package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/session"
	"github.com/creatv/creatv/share"
	"github.com/creatv/creatv/sleeptimer"
	"github.com/creatv/creatv/style"
	"github.com/creatv/creatv/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// statefulBubble holds the control surface state and its component models.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model
	qualityC  list.Model
	sleepC    list.Model
	shareC    list.Model

	session    Session
	builder    *share.Builder
	dispatcher *share.Dispatcher
	printed    *strings.Builder

	snapshot         session.Snapshot
	includeTimestamp bool
	lastNotice       string
	lastError        error

	width, height int
	notifier      *notifier
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s, remembering where to go back to. Loading is never returned to.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if b.state != loadingState {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if s, ok := b.statesHistory.Pop(); ok {
		b.setState(s)
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	for _, l := range []*list.Model{&b.qualityC, &b.sleepC, &b.shareC} {
		l.SetSize(listWidth, listHeight)
		l.Help.Width = listWidth
	}

	b.width = width - x
	b.height = height - y
	b.progressC.Width = util.Clamp(b.width, 10, 80)
	b.helpC.Width = listWidth
}

func newBubble(options *Options) *statefulBubble {
	bubble := &statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        newStatefulKeymap(),
		session:       options.Session,
		builder:       options.Builder,
		dispatcher:    options.Dispatcher,
		printed:       &strings.Builder{},
		notifier:      &notifier{},
	}

	if bubble.builder == nil {
		bubble.builder = share.NewBuilder(viper.GetString(key.WebBaseURL), nil)
	}

	if bubble.dispatcher == nil {
		bubble.dispatcher = share.DefaultDispatcher()
	}
	// printed messages would tear the alt screen
	bubble.dispatcher.Out = bubble.printed

	makeList := func(title string, background lipgloss.Color) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(style.Text)
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.Title = lipgloss.NewStyle().Foreground(style.Surface).Background(background).Padding(0, 1)
		listC.Styles.NoItems = paddingStyle
		listC.StatusMessageLifetime = time.Hour
		listC.SetFilteringEnabled(false)
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	bubble.qualityC = makeList("Quality", style.AccentColor)
	bubble.sleepC = makeList("Sleep Timer", style.WarningColor)
	bubble.shareC = makeList("Share", style.SuccessColor)

	bubble.sleepC.SetItems(lo.Map(sleeptimer.Choices(), func(c sleeptimer.Choice, _ int) list.Item {
		return &listItem{internal: c}
	}))
	bubble.shareC.SetItems(lo.Map(share.Targets, func(t share.TargetInfo, _ int) list.Item {
		return &listItem{internal: t}
	}))

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(loadingState)
	bubble.applySnapshot(options.Session.Snapshot())

	return bubble
}

// Init starts the spinner and subscribes to session updates and player exit.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, b.waitForSnapshot(), b.waitForExit())
}

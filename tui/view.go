package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/creatv/creatv/color"
	"github.com/creatv/creatv/constant"
	"github.com/creatv/creatv/format"
	"github.com/creatv/creatv/icon"
	"github.com/creatv/creatv/share"
	"github.com/creatv/creatv/style"
	"github.com/creatv/creatv/util"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
	labelStyle            = lipgloss.NewStyle().Foreground(style.Subtext).Width(10)
)

func (b *statefulBubble) View() string {
	switch b.state {
	case loadingState:
		return b.viewLoading()
	case playingState:
		return b.viewPlaying()
	case qualityState:
		return listExtraPaddingStyle.Render(b.qualityC.View())
	case sleepState:
		return listExtraPaddingStyle.Render(b.sleepC.View())
	case shareState:
		return b.viewShare()
	case premiumState:
		return b.viewPremium()
	case errorState:
		return b.viewError()
	default:
		return "Unknown state"
	}
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines([]string{
		style.Title("Loading"),
		"",
		b.spinnerC.View() + " " + b.truncate(b.snapshot.Title, 4),
	})
}

func (b *statefulBubble) viewPlaying() string {
	s := b.snapshot

	state := icon.Get(icon.Play)
	if s.Paused {
		state = icon.Get(icon.Pause)
	}

	position := fmt.Sprintf("%s / %s", format.Duration(s.Position), format.Duration(s.Duration))

	var source string
	if candidate, ok := s.Candidate.Get(); ok {
		source = fmt.Sprintf("%s %s",
			style.Tag(color.New("0"), style.AccentColor)(strings.ToUpper(string(candidate.Mode))),
			style.Faint(fmt.Sprintf("source %d of %d", s.CandidateIndex+1, s.CandidateCount)),
		)
	}

	quality := s.Qualities.Selected().Label
	if s.Qualities.PremiumViewer {
		quality += " " + style.Fg(color.Premium)(icon.Get(icon.Premium))
	}

	lines := []string{
		style.Title("Now Playing"),
		"",
		style.Bold(b.truncate(s.Title, 0)),
		"",
		fmt.Sprintf("%s %s  %s", state, position, b.progressC.ViewAs(s.Percent()/100)),
		"",
		labelStyle.Render("Source") + source,
		labelStyle.Render("Quality") + quality,
		labelStyle.Render("Sleep") + icon.Get(icon.Sleep) + " " + s.Sleep.Badge(),
	}

	if chapter, ok := s.Chapter.Get(); ok {
		lines = append(lines, labelStyle.Render("Chapter")+b.truncate(chapter.Title, 10))
	}

	return b.renderLines(lines)
}

// truncate fits s into the view width minus reserved columns. An unknown width keeps s whole.
func (b *statefulBubble) truncate(s string, reserved int) string {
	if b.width <= 0 {
		return s
	}

	return util.Truncate(s, max(b.width-reserved, 1))
}

func (b *statefulBubble) viewShare() string {
	var timestamp string
	if b.includeTimestamp {
		start := share.StartSeconds(true, b.snapshot.Position)
		timestamp = style.Fg(style.SuccessColor)(fmt.Sprintf("Starting at %s", format.ShareTimestamp(float64(start))))
	} else {
		timestamp = style.Faint("From the beginning (t to start here)")
	}

	b.shareC.Title = "Share"
	return lipgloss.JoinVertical(
		lipgloss.Left,
		paddingStyle.Render(timestamp),
		listExtraPaddingStyle.Render(b.shareC.View()),
	)
}

func (b *statefulBubble) viewPremium() string {
	return b.renderLines([]string{
		style.Tag(color.New("0"), color.Premium)(icon.Get(icon.Premium) + " Premium"),
		"",
		b.wrap(constant.PremiumUpsellMessage),
		"",
		style.Faint("enter or esc to go back"),
	})
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	message := errorStyle.Render(b.lastError.Error())

	return b.renderLines([]string{
		style.ErrorTitle("Error"),
		"",
		icon.Get(icon.Fail) + " " + b.wrap(message),
	})
}

func (b *statefulBubble) wrap(s string) string {
	if b.width <= 0 {
		return s
	}

	return util.Wrap(s, b.width)
}

func (b *statefulBubble) renderLines(lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if b.height > h+1 {
		l += strings.Repeat("\n", b.height-h-1)
	}

	l += "\n" + b.helpC.View(b.keymap)
	if notice := b.notifier.View(); notice != "" {
		l += "  " + notice
	}

	return paddingStyle.Render(l)
}

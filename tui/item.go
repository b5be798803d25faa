package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/creatv/creatv/color"
	"github.com/creatv/creatv/icon"
	"github.com/creatv/creatv/playback"
	"github.com/creatv/creatv/share"
	"github.com/creatv/creatv/sleeptimer"
	"github.com/creatv/creatv/style"
)

// listItem implements list.Item for every menu entry.
type listItem struct {
	internal any
	marked   bool
	// premiumLocked marks options the viewer cannot pick without premium.
	premiumLocked bool
}

func (t *listItem) getMark() string {
	if !t.marked {
		return ""
	}

	return lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Success))
}

func (t *listItem) Title() string {
	var title string

	switch e := t.internal.(type) {
	case playback.QualityOption:
		title = e.Label
		if e.RequiresPremium {
			title = fmt.Sprintf("%s %s", title, style.Tag(color.New("0"), color.Premium)(icon.Get(icon.Premium)+" Premium"))
		}
	case sleeptimer.Choice:
		title = e.Label
	case share.TargetInfo:
		title = e.Label
	default:
		title = t.FilterValue()
	}

	if mark := t.getMark(); mark != "" {
		title = fmt.Sprintf("%s %s", title, mark)
	}

	return title
}

func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case playback.QualityOption:
		if t.premiumLocked {
			return style.Faint("Requires CreaTV Premium")
		}
		return e.Detail
	case share.TargetInfo:
		if _, ok := share.IntentURL(e.Target, "", ""); ok {
			return "Opens the " + e.Label + " share page"
		}
		if e.Target == share.TargetCopy {
			return "Copies the link to the clipboard"
		}
		return "Shows the message to paste anywhere"
	default:
		return ""
	}
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case playback.QualityOption:
		return e.Label
	case sleeptimer.Choice:
		return e.Label
	case share.TargetInfo:
		return e.Label
	default:
		return fmt.Sprint(e)
	}
}

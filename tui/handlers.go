package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/creatv/creatv/chapters"
	"github.com/creatv/creatv/playback"
	"github.com/creatv/creatv/session"
	"github.com/creatv/creatv/share"
	"github.com/samber/lo"
)

const (
	seekStep     = 10 * time.Second
	shareTimeout = 10 * time.Second
)

type (
	snapshotMsg      session.Snapshot
	sessionClosedMsg struct{}
	playerExitedMsg  struct{}
)

type sharedMsg struct {
	target share.Target
	action share.Action
	link   string
	output string
	err    error
}

func (b *statefulBubble) waitForSnapshot() tea.Cmd {
	updates := b.session.Updates()
	return func() tea.Msg {
		snapshot, ok := <-updates
		if !ok {
			return sessionClosedMsg{}
		}
		return snapshotMsg(snapshot)
	}
}

func (b *statefulBubble) waitForExit() tea.Cmd {
	done := b.session.Done()
	return func() tea.Msg {
		<-done
		return playerExitedMsg{}
	}
}

// applySnapshot stores the latest state and returns a notification for a new notice.
func (b *statefulBubble) applySnapshot(snapshot session.Snapshot) tea.Cmd {
	b.snapshot = snapshot
	b.refreshQualities()

	if snapshot.Err != nil && b.state != errorState {
		b.raiseError(snapshot.Err)
		return nil
	}

	if b.state == loadingState && snapshot.Candidate.IsPresent() {
		b.setState(playingState)
	}

	if snapshot.Notice != "" && snapshot.Notice != b.lastNotice {
		b.lastNotice = snapshot.Notice
		return notify(snapshot.Notice)
	}

	return nil
}

func (b *statefulBubble) refreshQualities() {
	set := b.snapshot.Qualities
	cursor := b.qualityC.Index()

	items := lo.Map(set.Options, func(o playback.QualityOption, _ int) list.Item {
		return &listItem{
			internal:      o,
			marked:        o.ID == set.SelectedID,
			premiumLocked: o.RequiresPremium && !set.PremiumViewer,
		}
	})

	b.qualityC.SetItems(items)
	if cursor < len(items) {
		b.qualityC.Select(cursor)
	}
}

func (b *statefulBubble) seekBy(delta time.Duration) tea.Cmd {
	target := b.snapshot.Position + delta.Seconds()
	if b.snapshot.Duration > 0 {
		target = min(target, b.snapshot.Duration)
	}

	if err := b.session.Seek(target); err != nil {
		return notify(fmt.Sprintf("Seek failed: %s", err))
	}

	return nil
}

// jumpChapter seeks to the next (+1) or previous (-1) chapter.
func (b *statefulBubble) jumpChapter(direction int) tea.Cmd {
	target, ok := adjacentChapter(b.session.Chapters(), b.snapshot.Position, direction)
	if !ok {
		return notify("No more chapters")
	}

	if err := b.session.Seek(float64(target.Start)); err != nil {
		return notify(fmt.Sprintf("Seek failed: %s", err))
	}

	return notify("Chapter: " + target.Title)
}

// adjacentChapter finds the chapter after position, or the start of the previous one.
// Going back within the first seconds of a chapter skips to the one before it.
func adjacentChapter(list []chapters.Chapter, position float64, direction int) (chapters.Chapter, bool) {
	const rewindGrace = 3

	if direction > 0 {
		return lo.Find(list, func(c chapters.Chapter) bool {
			return float64(c.Start) > position
		})
	}

	c, _, ok := lo.FindLastIndexOf(list, func(c chapters.Chapter) bool {
		return float64(c.Start)+rewindGrace < position
	})
	return c, ok
}

func (b *statefulBubble) shareLink(target share.Target) tea.Cmd {
	video := b.session.Video()
	start := share.StartSeconds(b.includeTimestamp, b.snapshot.Position)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shareTimeout)
		defer cancel()

		link := b.builder.Build(ctx, video.ID, target, start)
		b.printed.Reset()
		action, err := b.dispatcher.Dispatch(target, video.Title, link)

		return sharedMsg{
			target: target,
			action: action,
			link:   link,
			output: b.printed.String(),
			err:    err,
		}
	}
}

func sharedNotice(msg sharedMsg) string {
	if msg.err != nil {
		return fmt.Sprintf("Share failed: %s", msg.err)
	}

	switch msg.action {
	case share.ActionCopied:
		return "Link copied: " + msg.link
	case share.ActionOpened:
		return "Opened " + msg.target.Label()
	default:
		return "Share this link: " + msg.link
	}
}

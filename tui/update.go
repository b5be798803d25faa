package tui

import (
	"errors"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/creatv/creatv/playback"
	"github.com/creatv/creatv/session"
	"github.com/creatv/creatv/share"
	"github.com/creatv/creatv/sleeptimer"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if cmd := b.notifier.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case snapshotMsg:
		cmds = append(cmds, b.applySnapshot(session.Snapshot(msg)), b.waitForSnapshot())
		return b, tea.Batch(cmds...)
	case sessionClosedMsg, playerExitedMsg:
		return b, tea.Quit
	case sharedMsg:
		return b, tea.Batch(append(cmds, notify(sharedNotice(msg)))...)
	case progress.FrameMsg:
		model, cmd := b.progressC.Update(msg)
		b.progressC = model.(progress.Model)
		return b, tea.Batch(append(cmds, cmd)...)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}

		if bubblesKey.Matches(msg, b.keymap.back) && b.state != playingState && b.state != loadingState {
			b.previousState()
			return b, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	switch b.state {
	case loadingState:
		b.spinnerC, cmd = b.spinnerC.Update(msg)
	case playingState:
		cmd = b.updatePlaying(msg)
	case qualityState:
		cmd = b.updateQuality(msg)
	case sleepState:
		cmd = b.updateSleep(msg)
	case shareState:
		cmd = b.updateShare(msg)
	case premiumState, errorState:
		cmd = b.updateAlert(msg)
	}

	return b, tea.Batch(append(cmds, cmd)...)
}

func (b *statefulBubble) updatePlaying(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.quit):
		return tea.Quit
	case bubblesKey.Matches(keyMsg, b.keymap.playPause):
		if err := b.session.TogglePause(); err != nil {
			return notify("Pause failed: " + err.Error())
		}
	case bubblesKey.Matches(keyMsg, b.keymap.seekForward):
		return b.seekBy(seekStep)
	case bubblesKey.Matches(keyMsg, b.keymap.seekBackward):
		return b.seekBy(-seekStep)
	case bubblesKey.Matches(keyMsg, b.keymap.nextChapter):
		return b.jumpChapter(1)
	case bubblesKey.Matches(keyMsg, b.keymap.prevChapter):
		return b.jumpChapter(-1)
	case bubblesKey.Matches(keyMsg, b.keymap.quality):
		b.refreshQualities()
		b.newState(qualityState)
	case bubblesKey.Matches(keyMsg, b.keymap.sleep):
		b.newState(sleepState)
	case bubblesKey.Matches(keyMsg, b.keymap.share):
		b.newState(shareState)
	}

	return nil
}

func (b *statefulBubble) updateQuality(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(keyMsg, b.keymap.confirm) {
		item, ok := b.qualityC.SelectedItem().(*listItem)
		if !ok {
			return nil
		}

		option := item.internal.(playback.QualityOption)
		err := b.session.SelectQuality(option.ID)
		switch {
		case errors.Is(err, playback.ErrPremiumRequired):
			b.newState(premiumState)
			return nil
		case err != nil:
			return notify("Quality change failed: " + err.Error())
		}

		b.previousState()
		return notify("Quality: " + option.Label)
	}

	var cmd tea.Cmd
	b.qualityC, cmd = b.qualityC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateSleep(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(keyMsg, b.keymap.confirm) {
		item, ok := b.sleepC.SelectedItem().(*listItem)
		if !ok {
			return nil
		}

		choice := item.internal.(sleeptimer.Choice)
		b.session.SetSleepTimer(choice)
		b.previousState()

		if choice.Minutes == 0 {
			return notify("Sleep timer off")
		}
		return notify("Sleep timer: " + choice.Label)
	}

	var cmd tea.Cmd
	b.sleepC, cmd = b.sleepC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateShare(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(keyMsg, b.keymap.toggleTimestamp):
			b.includeTimestamp = !b.includeTimestamp
			return nil
		case bubblesKey.Matches(keyMsg, b.keymap.confirm):
			item, ok := b.shareC.SelectedItem().(*listItem)
			if !ok {
				return nil
			}

			b.previousState()
			return b.shareLink(item.internal.(share.TargetInfo).Target)
		}
	}

	var cmd tea.Cmd
	b.shareC, cmd = b.shareC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateAlert(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.quit):
		return tea.Quit
	case b.state == premiumState && bubblesKey.Matches(keyMsg, b.keymap.confirm):
		b.previousState()
	}

	return nil
}

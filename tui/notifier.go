package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/creatv/creatv/style"
)

const notificationLifetime = 3 * time.Second

// notificationMsg shows a short message next to the help line.
type notificationMsg string

type clearNotificationMsg struct {
	id int
}

// notifier displays one transient message at a time.
type notifier struct {
	message string
	id      int
}

func notify(message string) tea.Cmd {
	return func() tea.Msg {
		return notificationMsg(message)
	}
}

func (n *notifier) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case notificationMsg:
		n.id++
		n.message = string(msg)
		id := n.id
		return tea.Tick(notificationLifetime, func(time.Time) tea.Msg {
			return clearNotificationMsg{id: id}
		})
	case clearNotificationMsg:
		// a newer message keeps its own lifetime
		if msg.id == n.id {
			n.message = ""
		}
	}

	return nil
}

func (n *notifier) View() string {
	if n.message == "" {
		return ""
	}

	return style.Faint(n.message)
}

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// noticeKind distinguishes success from error notices.
type noticeKind int

const (
	noticeSuccess noticeKind = iota
	noticeError
)

// notice is the transient feedback line shown under the task list, the TUI
// counterpart of a toast.
type notice struct {
	text    string
	kind    noticeKind
	seq     int
	visible bool
}

// noticeExpiredMsg hides a notice once its timer fires. The sequence number
// keeps a stale timer from hiding a newer notice.
type noticeExpiredMsg struct {
	seq int
}

// show replaces the current notice and schedules its expiry.
func (n *notice) show(kind noticeKind, text string) tea.Cmd {
	n.seq++
	n.text = text
	n.kind = kind
	n.visible = true

	seq := n.seq
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (n *notice) expire(msg noticeExpiredMsg) {
	if msg.seq == n.seq {
		n.visible = false
	}
}

func (n notice) view() string {
	if !n.visible {
		return ""
	}
	color := ColorSuccess
	prefix := "✓ "
	if n.kind == noticeError {
		color = ColorError
		prefix = "✗ "
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true).
		Render(prefix + n.text)
}

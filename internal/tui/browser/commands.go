package browser

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const noticeLifetime = 5 * time.Second

// expireNoticeCmd clears the notice identified by seq after noticeLifetime.
func expireNoticeCmd(seq int) tea.Cmd {
	return tea.Tick(noticeLifetime, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

// copyCmd writes text to the clipboard off the update loop.
func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{text: text, err: write(text)}
	}
}

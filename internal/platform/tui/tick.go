// Package tui runs the game in a terminal through Bubble Tea, locally or
// over SSH via Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg pulses one engine frame. Gen is the scheduler generation that
// requested it; frames from an older generation are dropped.
type FrameMsg struct {
	Gen uint64
	At  time.Time
}

// frameCmd returns a command that delivers a FrameMsg after one frame at fps.
func frameCmd(fps int, gen uint64) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{Gen: gen, At: t}
	})
}

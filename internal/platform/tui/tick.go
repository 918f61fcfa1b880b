// Package tui provides the Bubble Tea driver for the tetris game.
// It handles the terminal UI loop, key bindings, gravity timing, session
// recording and the recordings browser.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// GravityMsg is sent when the gravity timer fires. Seq identifies the timer
// chain so that stale timers are ignored after a restart.
type GravityMsg struct {
	At  time.Time
	Seq int
}

// gravityCmd returns a Bubble Tea command that sends one GravityMsg after
// interval.
func gravityCmd(interval time.Duration, seq int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return GravityMsg{At: t, Seq: seq}
	})
}

// FrameMsg advances a replay being watched by one tick.
type FrameMsg time.Time

// frameCmd returns a Bubble Tea command that sends one FrameMsg after interval.
func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// Package tui provides the Bubble Tea integration for the pairs game.
// It handles the terminal UI loop, input mapping, menus, round history and
// SSH sessions.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Loop identifies the
// tick loop that scheduled it, so a loop left over from an earlier game in
// the same program is dropped instead of doubling the tick rate.
type TickMsg struct {
	Time time.Time
	Loop uint64
}

var tickLoops atomic.Uint64

// newTickLoop returns a fresh tick loop id.
func newTickLoop() uint64 {
	return tickLoops.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, loop uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Loop: loop}
	})
}

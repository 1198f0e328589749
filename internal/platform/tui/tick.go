// Package tui provides the Bubble Tea integration for the ant engine.
// It handles the terminal UI loop, input mapping, and session orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to drive one display frame of the model with the same ID.
type TickMsg struct {
	ID   int64
	Time time.Time
}

var lastModelID atomic.Int64

// nextModelID returns a fresh ID so ticks of a finished model are dropped
// by its successor.
func nextModelID() int64 {
	return lastModelID.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(id int64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}

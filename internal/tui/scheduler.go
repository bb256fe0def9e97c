package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/username/weekday-picker/internal/picker"
)

// dismissMsg carries a controller timer callback onto the event loop
type dismissMsg struct {
	fire func()
}

// Scheduler is a picker.Scheduler whose callbacks run inside the Bubble Tea
// update loop instead of on a timer goroutine.
type Scheduler struct {
	mu      sync.Mutex
	program *tea.Program
}

// NewScheduler creates a scheduler; Run binds it to the program
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) bind(p *tea.Program) {
	s.mu.Lock()
	s.program = p
	s.mu.Unlock()
}

// AfterFunc implements picker.Scheduler
func (s *Scheduler) AfterFunc(d time.Duration, f func()) picker.Timer {
	return time.AfterFunc(d, func() {
		s.mu.Lock()
		p := s.program
		s.mu.Unlock()

		if p == nil {
			f()
			return
		}
		p.Send(dismissMsg{fire: f})
	})
}

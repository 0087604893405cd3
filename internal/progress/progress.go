// Package progress drives the cosmetic "Generating guide..." percentage.
// The value is synthetic: it advances on a timer and never reflects real
// server-side progress.
package progress

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Simulator advances a percentage by Step every Interval until it reaches Cap.
// It is driven either by tea.Tick messages (Start/Update) or by a goroutine (Run).
type Simulator struct {
	Interval time.Duration
	Step     int
	Cap      int

	percent int
	run     int
	running bool
}

// TickMsg is one timer firing for the run identified by ID.
type TickMsg struct {
	ID   int
	Time time.Time
}

// New returns a stopped simulator.
func New(interval time.Duration, step, cap int) *Simulator {
	return &Simulator{Interval: interval, Step: step, Cap: cap}
}

// Percent is the displayed value.
func (s *Simulator) Percent() int { return s.percent }

// Running reports whether ticks are still being accepted.
func (s *Simulator) Running() bool { return s.running }

// Label is the status text for the current value.
func (s *Simulator) Label() string { return Label(s.percent) }

// Label formats the status text for a percentage.
func Label(percent int) string { return fmt.Sprintf("Generating guide... %d%%", percent) }

// Reset zeroes the value and begins a new run; ticks from older runs become stale.
func (s *Simulator) Reset() {
	s.run++
	s.percent = 0
	s.running = true
}

// Advance moves the value one step, clamped to Cap. It reports whether the
// value changed.
func (s *Simulator) Advance() bool {
	if !s.running || s.percent >= s.Cap {
		return false
	}
	s.percent += s.Step
	if s.percent > s.Cap {
		s.percent = s.Cap
	}
	return true
}

// Stop invalidates the current run. Safe to call more than once.
func (s *Simulator) Stop() { s.running = false }

// Complete stops the run and shows 100%.
func (s *Simulator) Complete() {
	s.Stop()
	s.percent = 100
}

// Start resets the simulator and schedules its first tick.
func (s *Simulator) Start() tea.Cmd {
	s.Reset()
	return s.tick(s.run)
}

func (s *Simulator) tick(id int) tea.Cmd {
	return tea.Tick(s.Interval, func(t time.Time) tea.Msg { return TickMsg{ID: id, Time: t} })
}

// Update handles a tick. Stale ticks, and ticks after Stop, are dropped and
// end the chain.
func (s *Simulator) Update(msg TickMsg) (bool, tea.Cmd) {
	if !s.running || msg.ID != s.run {
		return false, nil
	}
	changed := s.Advance()
	return changed, s.tick(s.run)
}

// Run drives a fresh run from a goroutine, calling report after every change.
// The returned stop function cancels the timer and waits for the goroutine to
// exit, so report is never called once stop has returned. The simulator must
// not be read or mutated elsewhere until stop returns.
func (s *Simulator) Run(report func(percent int)) (stop func()) {
	s.Reset()
	done := make(chan struct{})
	exited := make(chan struct{})
	interval := s.Interval

	go func() {
		defer close(exited)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				changed := s.Advance()
				p := s.percent
				if changed && report != nil {
					select {
					case <-done:
						return
					default:
					}
					report(p)
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-exited
			s.Stop()
		})
	}
}

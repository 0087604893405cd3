// Package toast keeps transient notices that dismiss themselves.
package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Toast is one notice.
type Toast struct {
	ID   string
	Text string
	Err  bool
}

// ExpireMsg asks the stack to drop the toast with ID.
type ExpireMsg struct{ ID string }

// Stack holds live toasts oldest first. Each toast expires on its own timer.
type Stack struct {
	ttl   time.Duration
	items []Toast
}

// NewStack returns a stack whose toasts live for ttl.
func NewStack(ttl time.Duration) *Stack {
	return &Stack{ttl: ttl}
}

// Push adds a toast and returns the command that will expire it.
func (s *Stack) Push(text string, isErr bool) (Toast, tea.Cmd) {
	t := Toast{ID: uuid.NewString(), Text: text, Err: isErr}
	s.items = append(s.items, t)
	id := t.ID
	return t, tea.Tick(s.ttl, func(time.Time) tea.Msg { return ExpireMsg{ID: id} })
}

// Expire removes the toast with id; unknown ids are ignored.
func (s *Stack) Expire(id string) bool {
	for i, t := range s.items {
		if t.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns the live toasts oldest first.
func (s *Stack) Items() []Toast {
	out := make([]Toast, len(s.items))
	copy(out, s.items)
	return out
}

// Len is the number of live toasts.
func (s *Stack) Len() int { return len(s.items) }

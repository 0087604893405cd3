package guides

import "errors"

// ErrNotGenerated is returned by operations that need a completed generation.
var ErrNotGenerated = errors.New("Please upload CSV and generate guides first!")

// Session is the in-memory state of one client run. It is owned by a single
// controller and is not safe for concurrent use.
type Session struct {
	generated bool
	guides    []Guide
}

// NewSession returns an empty session.
func NewSession() *Session { return &Session{} }

// Generated reports whether an upload has completed successfully.
func (s *Session) Generated() bool { return s.generated }

// Guides returns a copy of the latest generated set in server order.
func (s *Session) Guides() []Guide {
	out := make([]Guide, len(s.guides))
	copy(out, s.guides)
	return out
}

// Len is the number of guides held.
func (s *Session) Len() int { return len(s.guides) }

// Replace overwrites the held guides wholesale and marks the session generated.
func (s *Session) Replace(gs []Guide) {
	s.guides = make([]Guide, len(gs))
	copy(s.guides, gs)
	s.generated = true
}

// RequireGenerated guards operations that depend on a prior upload.
func (s *Session) RequireGenerated() error {
	if !s.generated {
		return ErrNotGenerated
	}
	return nil
}

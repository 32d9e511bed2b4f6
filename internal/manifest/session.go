package manifest

import (
	"slices"
	"sync"

	"github.com/dshills/bindkit/internal/binding"
)

// Session keeps the bindings between a host and a target in line with the
// latest manifest.
type Session struct {
	engine *binding.Engine
	host   any
	target any

	mu       sync.Mutex
	current  *Manifest
	bindings []*binding.Binding
}

// NewSession creates a session with no bindings.
func NewSession(e *binding.Engine, host, target any) *Session {
	return &Session{engine: e, host: host, target: target}
}

// Apply binds m and then closes the bindings of the previous manifest. If m
// cannot be bound the previous bindings stay live and the error is
// returned.
func (s *Session) Apply(m *Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := m.Bind(s.engine, s.host, s.target)
	if err != nil {
		return err
	}
	for _, b := range slices.Backward(s.bindings) {
		b.Close()
	}
	s.current = m
	s.bindings = next
	return nil
}

// Manifest returns the manifest currently applied, or nil.
func (s *Session) Manifest() *Manifest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Bindings returns the live bindings of the current manifest.
func (s *Session) Bindings() []*binding.Binding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.bindings)
}

// Close closes the current bindings.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range slices.Backward(s.bindings) {
		b.Close()
	}
	s.bindings = nil
	s.current = nil
}

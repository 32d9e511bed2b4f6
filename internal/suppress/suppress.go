// Package suppress provides a re-entrant guard used to swallow change
// notifications while a value is being pushed from one holder to another.
//
// A Suppressor is opened for the duration of a propagation step. Anything
// that checks Active during that span (typically the other direction of a
// bidirectional binding, or a collection view rebuilding itself) backs off
// instead of re-entering.
//
//	var s suppress.Suppressor
//	if s.Active() {
//	    return
//	}
//	h := s.Open()
//	defer h.Close()
package suppress

import "sync/atomic"

// Suppressor is a re-entrant counter. The zero value is ready to use.
type Suppressor struct {
	count atomic.Int32
}

// Open increments the counter and returns a handle that decrements it again.
func (s *Suppressor) Open() *Handle {
	s.count.Add(1)
	return &Handle{s: s}
}

// Active reports whether at least one handle is open.
func (s *Suppressor) Active() bool {
	return s.count.Load() > 0
}

// Depth returns the number of currently open handles.
func (s *Suppressor) Depth() int {
	return int(s.count.Load())
}

// Do runs fn with the suppressor open. The handle is released even if fn
// panics.
func (s *Suppressor) Do(fn func()) {
	h := s.Open()
	defer h.Close()
	fn()
}

// Handle is a scoped acquisition of a Suppressor.
type Handle struct {
	s      *Suppressor
	closed atomic.Bool
}

// Close releases the handle. Closing a handle more than once only
// decrements the counter the first time.
func (h *Handle) Close() {
	if h == nil || h.s == nil {
		return
	}
	if h.closed.CompareAndSwap(false, true) {
		h.s.count.Add(-1)
	}
}

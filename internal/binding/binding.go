package binding

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/bindkit/internal/suppress"
)

// ErrorHandler receives errors raised while a trigger applies a binding.
type ErrorHandler func(b *Binding, d Direction, err error)

// Binding synchronizes two attributes through up to two links.
type Binding struct {
	id    uuid.UUID
	label string

	links      [2]*Link
	suppressor suppress.Suppressor
	onError    ErrorHandler

	mu            sync.Mutex
	registrations []*Registration
	closers       []func(*Binding)
	closed        bool
}

func newBinding(label string, onError ErrorHandler) *Binding {
	return &Binding{
		id:      uuid.New(),
		label:   label,
		onError: onError,
	}
}

// ID returns the binding's unique ID.
func (b *Binding) ID() string {
	return b.id.String()
}

// Label returns the human-readable description given at build time.
func (b *Binding) Label() string {
	return b.label
}

// Link returns the link for direction d.
func (b *Binding) Link(d Direction) (Link, bool) {
	if d != Up && d != Down || b.links[d] == nil {
		return Link{}, false
	}
	return *b.links[d], true
}

// Bidirectional reports whether both links are present.
func (b *Binding) Bidirectional() bool {
	return b.links[Up] != nil && b.links[Down] != nil
}

// Suppressed reports whether the binding is currently applying a value.
func (b *Binding) Suppressed() bool {
	return b.suppressor.Active()
}

// Apply pushes the supplier value of direction d into its consumer. It
// does nothing while the binding is already applying a value, or when it
// has no link for d.
func (b *Binding) Apply(d Direction) error {
	if b.Closed() {
		return ErrClosed
	}
	if b.suppressor.Active() {
		return nil
	}
	handle := b.suppressor.Open()
	defer handle.Close()

	link, ok := b.Link(d)
	if !ok {
		return nil
	}
	if err := link.transfer(); err != nil {
		return &TransferError{Binding: b.ID(), Direction: d, Err: err}
	}
	return nil
}

// fire is called by triggers.
func (b *Binding) fire(d Direction) {
	err := b.Apply(d)
	if err == nil || errors.Is(err, ErrClosed) {
		return
	}
	if b.onError != nil {
		b.onError(b, d, err)
	}
}

// Registrations returns the live trigger registrations.
func (b *Binding) Registrations() []*Registration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.registrations)
}

// Closed reports whether Close has been called.
func (b *Binding) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Close unsubscribes every trigger registration. Further applies return
// ErrClosed. Close is idempotent.
func (b *Binding) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	regs := b.registrations
	b.registrations = nil
	closers := b.closers
	b.closers = nil
	b.mu.Unlock()

	for i := len(regs) - 1; i >= 0; i-- {
		regs[i].cancel()
	}
	for _, fn := range closers {
		fn(b)
	}
}

// onClose registers fn to run once when the binding is closed.
func (b *Binding) onClose(fn func(*Binding)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closers = append(b.closers, fn)
}

// attach records a trigger subscription for direction d. A second attach
// with the same key and direction returns the existing registration.
func (b *Binding) attach(key any, d Direction, subscribe Subscribe) (*Registration, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}
	for _, r := range b.registrations {
		if r.key == key && r.direction == d {
			return r, nil
		}
	}

	cancel, err := subscribe(func() { b.fire(d) })
	if err != nil {
		return nil, err
	}
	r := &Registration{binding: b, key: key, direction: d, cancel: cancel}
	b.registrations = append(b.registrations, r)
	return r, nil
}

func (b *Binding) detach(r *Registration) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.Index(b.registrations, r)
	if i < 0 {
		return false
	}
	b.registrations = slices.Delete(b.registrations, i, i+1)
	return true
}

// Registration is a trigger subscription owned by a binding.
type Registration struct {
	binding   *Binding
	key       any
	direction Direction
	cancel    func()
}

// Direction returns the direction the registration applies.
func (r *Registration) Direction() Direction {
	return r.direction
}

// Close unsubscribes the trigger. It is safe to call more than once.
func (r *Registration) Close() {
	if r == nil {
		return
	}
	if r.binding.detach(r) {
		r.cancel()
	}
}

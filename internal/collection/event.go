package collection

import "github.com/google/uuid"

// Kind identifies the variant of a ChangeEvent.
type Kind int

const (
	// Add indicates items were inserted.
	Add Kind = iota

	// Remove indicates items were removed.
	Remove

	// Reset indicates the collection changed in a way listeners must
	// recompute from scratch.
	Reset
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Add:
		return "add"
	case Remove:
		return "remove"
	case Reset:
		return "reset"
	default:
		return "unknown"
	}
}

// ChangeEvent describes one mutation of an observable collection. Fields
// that do not apply to the event's kind are empty, never nil-dereferencing.
type ChangeEvent[T any] struct {
	kind     Kind
	source   Observable[T]
	newItems []T
	oldItems []T
	indices  []int
}

func addedEvent[T any](source Observable[T], items []T, indices []int) ChangeEvent[T] {
	return ChangeEvent[T]{kind: Add, source: source, newItems: items, indices: indices}
}

func removedEvent[T any](source Observable[T], items []T, indices []int) ChangeEvent[T] {
	return ChangeEvent[T]{kind: Remove, source: source, oldItems: items, indices: indices}
}

func resetEvent[T any](source Observable[T]) ChangeEvent[T] {
	return ChangeEvent[T]{kind: Reset, source: source}
}

// Kind returns the event variant.
func (e ChangeEvent[T]) Kind() Kind {
	return e.kind
}

// Source returns the collection that fired the event.
func (e ChangeEvent[T]) Source() Observable[T] {
	return e.source
}

// NewItems returns the inserted items. Only Add events carry items.
func (e ChangeEvent[T]) NewItems() []T {
	if e.newItems == nil {
		return []T{}
	}
	return e.newItems
}

// OldItems returns the removed items. Only Remove events carry items.
func (e ChangeEvent[T]) OldItems() []T {
	if e.oldItems == nil {
		return []T{}
	}
	return e.oldItems
}

// Indices returns the affected indices, or nil for Reset events.
func (e ChangeEvent[T]) Indices() []int {
	if e.kind == Reset {
		return nil
	}
	if e.indices == nil {
		return []int{}
	}
	return e.indices
}

// Listener receives change events from an observable collection.
type Listener[T any] interface {
	CollectionChanged(e ChangeEvent[T])
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc[T any] func(e ChangeEvent[T])

// CollectionChanged calls f(e).
func (f ListenerFunc[T]) CollectionChanged(e ChangeEvent[T]) {
	f(e)
}

// ListenerID identifies a listener registration. Every registration gets a
// fresh ID, so registering the same listener value twice yields two
// independent registrations.
type ListenerID uuid.UUID

// String returns the registration ID.
func (id ListenerID) String() string {
	return uuid.UUID(id).String()
}

func newListenerID() ListenerID {
	return ListenerID(uuid.New())
}

// Observable is the read side of an observable collection.
type Observable[T any] interface {
	Watchable

	// Len returns the number of elements.
	Len() int

	// Get returns the element at index i. It panics if i is out of range.
	Get(i int) T

	// Items returns a copy of the elements.
	Items() []T

	// IndexOf returns the index of the first element equal to v, or -1.
	IndexOf(v T) int

	// AddListener registers a listener and returns its registration ID.
	AddListener(l Listener[T]) ListenerID
}

// Watchable is the element-type-independent notification surface of an
// observable collection. Bindings use it to react to any change.
type Watchable interface {
	// Watch registers fn to be called with the kind of every change.
	Watch(fn func(kind Kind)) ListenerID

	// RemoveListener removes a registration. It reports whether the ID
	// was registered.
	RemoveListener(id ListenerID) bool
}

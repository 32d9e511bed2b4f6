package collection

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"sync"

	"github.com/dshills/bindkit/internal/suppress"
)

// ErrIndexOutOfRange is returned when an index or range falls outside the
// collection.
var ErrIndexOutOfRange = errors.New("index out of range")

// Option configures a collection.
type Option[T any] func(*config[T])

type config[T any] struct {
	equal func(a, b T) bool
}

// WithEqual sets the element equality used by IndexOf, Contains, Remove and
// view membership. The default compares comparable values with == and falls
// back to reflect.DeepEqual.
func WithEqual[T any](equal func(a, b T) bool) Option[T] {
	return func(c *config[T]) {
		if equal != nil {
			c.equal = equal
		}
	}
}

func newConfig[T any](opts []Option[T]) config[T] {
	c := config[T]{equal: defaultEqual[T]}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

type registration[T any] struct {
	id       ListenerID
	listener Listener[T]
}

// base holds the element storage and listener registry shared by lists and
// views.
type base[T any] struct {
	// self is reported as the event source
	self Observable[T]

	items []T
	equal func(a, b T) bool

	mu        sync.Mutex
	listeners []registration[T]

	// suppressor mutes emit while a view rebuilds itself
	suppressor suppress.Suppressor
}

func (b *base[T]) setup(self Observable[T], cfg config[T]) {
	b.self = self
	b.equal = cfg.equal
}

// Len returns the number of elements.
func (b *base[T]) Len() int {
	return len(b.items)
}

// Get returns the element at index i. It panics if i is out of range.
func (b *base[T]) Get(i int) T {
	return b.items[i]
}

// Items returns a copy of the elements.
func (b *base[T]) Items() []T {
	return slices.Clone(b.items)
}

// All iterates over index/element pairs.
func (b *base[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range b.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// IndexOf returns the index of the first element equal to v, or -1.
func (b *base[T]) IndexOf(v T) int {
	for i, item := range b.items {
		if b.equal(item, v) {
			return i
		}
	}
	return -1
}

// Contains reports whether an element equal to v is present.
func (b *base[T]) Contains(v T) bool {
	return b.IndexOf(v) >= 0
}

// Find returns the first element matching pred.
func (b *base[T]) Find(pred func(T) bool) (T, bool) {
	for _, item := range b.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// AddListener registers a listener and returns its registration ID.
func (b *base[T]) AddListener(l Listener[T]) ListenerID {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := newListenerID()
	b.listeners = append(b.listeners, registration[T]{id: id, listener: l})
	return id
}

// Subscribe registers fn as a listener.
func (b *base[T]) Subscribe(fn func(e ChangeEvent[T])) ListenerID {
	return b.AddListener(ListenerFunc[T](fn))
}

// Watch registers fn to be called with the kind of every change.
func (b *base[T]) Watch(fn func(kind Kind)) ListenerID {
	return b.Subscribe(func(e ChangeEvent[T]) { fn(e.Kind()) })
}

// RemoveListener removes a registration.
func (b *base[T]) RemoveListener(id ListenerID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, r := range b.listeners {
		if r.id == id {
			b.listeners = slices.Delete(b.listeners, i, i+1)
			return true
		}
	}
	return false
}

// Listeners returns the number of registered listeners.
func (b *base[T]) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// emit delivers e to a snapshot of the listeners unless suppressed.
func (b *base[T]) emit(e ChangeEvent[T]) {
	if b.suppressor.Active() {
		return
	}

	b.mu.Lock()
	snapshot := slices.Clone(b.listeners)
	b.mu.Unlock()

	for _, r := range snapshot {
		r.listener.CollectionChanged(e)
	}
}

func (b *base[T]) insert(i int, vs ...T) {
	b.items = slices.Insert(b.items, i, vs...)
}

func (b *base[T]) removeAt(i int) T {
	v := b.items[i]
	b.items = slices.Delete(b.items, i, i+1)
	return v
}

// removeItems removes one element equal to each of items. It returns the
// removed elements with their indices before removal, in ascending index
// order.
func (b *base[T]) removeItems(items []T) ([]T, []int) {
	taken := make(map[int]bool, len(items))
	var indices []int
	for _, item := range items {
		for i, v := range b.items {
			if !taken[i] && b.equal(v, item) {
				taken[i] = true
				indices = append(indices, i)
				break
			}
		}
	}
	if len(indices) == 0 {
		return nil, nil
	}
	slices.Sort(indices)
	old := make([]T, len(indices))
	for k, i := range indices {
		old[k] = b.items[i]
	}
	for _, i := range slices.Backward(indices) {
		b.removeAt(i)
	}
	return old, indices
}

// shiftIndices moves every recorded index at or after an insert at i one
// slot up, so a batch of inserts reports final positions.
func shiftIndices(indices []int, i int) {
	for k, j := range indices {
		if j >= i {
			indices[k] = j + 1
		}
	}
}

func (b *base[T]) checkIndex(i, limit int) error {
	if i < 0 || i > limit {
		return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, len(b.items))
	}
	return nil
}

// List is an ordered, observable sequence.
type List[T any] struct {
	base[T]
}

// New creates an empty list.
func New[T any](opts ...Option[T]) *List[T] {
	l := &List[T]{}
	l.setup(l, newConfig(opts))
	return l
}

// From creates a list holding a copy of items. No event is emitted.
func From[T any](items []T, opts ...Option[T]) *List[T] {
	l := New(opts...)
	l.items = slices.Clone(items)
	return l
}

// Add appends v.
func (l *List[T]) Add(v T) {
	l.items = append(l.items, v)
	l.emit(addedEvent[T](l, []T{v}, []int{len(l.items) - 1}))
}

// Insert inserts v at index i.
func (l *List[T]) Insert(i int, v T) error {
	if err := l.checkIndex(i, len(l.items)); err != nil {
		return err
	}
	l.insert(i, v)
	l.emit(addedEvent[T](l, []T{v}, []int{i}))
	return nil
}

// AddAll appends vs and emits a single Add event.
func (l *List[T]) AddAll(vs ...T) {
	if len(vs) == 0 {
		return
	}
	offset := len(l.items)
	l.items = append(l.items, vs...)
	l.emit(addedEvent[T](l, slices.Clone(vs), sequence(offset, len(vs))))
}

// InsertAll inserts vs at index i and emits a single Add event.
func (l *List[T]) InsertAll(i int, vs ...T) error {
	if err := l.checkIndex(i, len(l.items)); err != nil {
		return err
	}
	if len(vs) == 0 {
		return nil
	}
	l.insert(i, vs...)
	l.emit(addedEvent[T](l, slices.Clone(vs), sequence(i, len(vs))))
	return nil
}

// Remove removes the first element equal to v.
func (l *List[T]) Remove(v T) bool {
	i := l.IndexOf(v)
	if i < 0 {
		return false
	}
	old := l.removeAt(i)
	l.emit(removedEvent[T](l, []T{old}, []int{i}))
	return true
}

// RemoveAt removes and returns the element at index i.
func (l *List[T]) RemoveAt(i int) (T, error) {
	if err := l.checkIndex(i, len(l.items)-1); err != nil {
		var zero T
		return zero, err
	}
	old := l.removeAt(i)
	l.emit(removedEvent[T](l, []T{old}, []int{i}))
	return old, nil
}

// RemoveAll removes every element equal to one of vs. A Reset event is
// emitted when anything was removed.
func (l *List[T]) RemoveAll(vs ...T) bool {
	return l.RemoveIf(func(item T) bool {
		return slices.ContainsFunc(vs, func(v T) bool { return l.equal(item, v) })
	})
}

// RemoveIf removes every element matching pred. A Reset event is emitted
// when anything was removed.
func (l *List[T]) RemoveIf(pred func(T) bool) bool {
	before := len(l.items)
	l.items = slices.DeleteFunc(l.items, pred)
	if len(l.items) == before {
		return false
	}
	l.emit(resetEvent[T](l))
	return true
}

// RetainAll keeps only elements equal to one of vs. A Reset event is
// emitted when anything was removed.
func (l *List[T]) RetainAll(vs ...T) bool {
	return l.RemoveIf(func(item T) bool {
		return !slices.ContainsFunc(vs, func(v T) bool { return l.equal(item, v) })
	})
}

// RemoveRange removes the elements in [from, to) and emits a Reset event.
func (l *List[T]) RemoveRange(from, to int) error {
	if from < 0 || to > len(l.items) || from > to {
		return fmt.Errorf("%w: range [%d, %d), length %d", ErrIndexOutOfRange, from, to, len(l.items))
	}
	if from == to {
		return nil
	}
	l.items = slices.Delete(l.items, from, to)
	l.emit(resetEvent[T](l))
	return nil
}

// ReplaceAll replaces every element with fn(element) and emits a Reset
// event.
func (l *List[T]) ReplaceAll(fn func(T) T) {
	for i, v := range l.items {
		l.items[i] = fn(v)
	}
	l.emit(resetEvent[T](l))
}

// Set replaces the element at index i and returns the previous one. A
// Reset event is emitted.
func (l *List[T]) Set(i int, v T) (T, error) {
	if err := l.checkIndex(i, len(l.items)-1); err != nil {
		var zero T
		return zero, err
	}
	old := l.items[i]
	l.items[i] = v
	l.emit(resetEvent[T](l))
	return old, nil
}

// Clear removes every element. A non-empty list emits one Remove event
// carrying all prior elements.
func (l *List[T]) Clear() {
	if len(l.items) == 0 {
		return
	}
	old := l.items
	l.items = nil
	l.emit(removedEvent[T](l, old, sequence(0, len(old))))
}

func sequence(start, n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = start + i
	}
	return indices
}

func defaultEqual[T any](a, b T) bool {
	av, bv := any(a), any(b)
	if av == nil || bv == nil {
		return av == nil && bv == nil
	}
	t := reflect.TypeOf(av)
	if t != reflect.TypeOf(bv) {
		return false
	}
	if t.Comparable() {
		return av == bv
	}
	return reflect.DeepEqual(av, bv)
}

var _ Observable[int] = (*List[int])(nil)

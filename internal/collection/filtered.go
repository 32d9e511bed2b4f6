package collection

import (
	"github.com/dshills/bindkit/internal/notify"
)

// FilteredView mirrors the elements of a source collection that satisfy a
// predicate, in source order.
type FilteredView[T any] struct {
	base[T]

	source    Observable[T]
	predicate func(T) bool
	attribute string
	sourceID  ListenerID

	watched     []watchedItem[T]
	initialized bool
	closed      bool
}

type watchedItem[T any] struct {
	item T
	sub  *notify.Subscription
}

// NewFilteredView creates a view over source and registers it as a source
// listener. The view is empty until Initialize is called.
//
// If attribute is non-empty, elements implementing notify.Source are only
// watched for changes to that attribute; otherwise any change re-evaluates
// the predicate.
func NewFilteredView[T any](source Observable[T], predicate func(T) bool, attribute string, opts ...Option[T]) *FilteredView[T] {
	v := &FilteredView[T]{
		source:    source,
		predicate: predicate,
		attribute: attribute,
	}
	v.setup(v, newConfig(opts))
	v.sourceID = source.AddListener(v)
	return v
}

// Filter returns an initialized view of the source elements satisfying
// predicate.
func Filter[T any](source Observable[T], predicate func(T) bool, opts ...Option[T]) *FilteredView[T] {
	return FilterOn(source, predicate, "", opts...)
}

// FilterOn is like Filter but only re-evaluates elements when the named
// attribute changes.
func FilterOn[T any](source Observable[T], predicate func(T) bool, attribute string, opts ...Option[T]) *FilteredView[T] {
	v := NewFilteredView(source, predicate, attribute, opts...)
	v.Initialize()
	return v
}

// Initialize copies the current source contents into the view. Calling it
// again has no effect.
func (v *FilteredView[T]) Initialize() {
	if v.initialized || v.closed {
		return
	}
	v.initialized = true
	v.added(v.source.Items())
}

// Source returns the observed collection.
func (v *FilteredView[T]) Source() Observable[T] {
	return v.source
}

// Attribute returns the attribute watched on elements, or "".
func (v *FilteredView[T]) Attribute() string {
	return v.attribute
}

// SetPredicate replaces the predicate, rebuilds the view and emits a Reset
// event.
func (v *FilteredView[T]) SetPredicate(predicate func(T) bool) {
	v.predicate = predicate
	v.Refresh()
}

// Refresh re-evaluates every source element and emits a Reset event.
func (v *FilteredView[T]) Refresh() {
	if v.closed {
		return
	}
	v.rebuild()
	v.emit(resetEvent[T](v))
}

// Close detaches the view from its source and its elements. The view keeps
// its last contents.
func (v *FilteredView[T]) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.source.RemoveListener(v.sourceID)
	for _, w := range v.watched {
		w.sub.Unsubscribe()
	}
	v.watched = nil
}

// CollectionChanged implements Listener.
func (v *FilteredView[T]) CollectionChanged(e ChangeEvent[T]) {
	if !v.initialized || v.closed {
		return
	}
	switch e.Kind() {
	case Add:
		v.added(e.NewItems())
	case Remove:
		v.removed(e.OldItems())
	case Reset:
		v.rebuild()
		v.emit(resetEvent[T](v))
	}
}

func (v *FilteredView[T]) added(items []T) {
	var newItems []T
	var indices []int
	for _, item := range items {
		v.watch(item)
		if !v.predicate(item) {
			continue
		}
		i := v.position(item)
		v.insert(i, item)
		shiftIndices(indices, i)
		newItems = append(newItems, item)
		indices = append(indices, i)
	}
	if len(newItems) > 0 {
		v.emit(addedEvent[T](v, newItems, indices))
	}
}

func (v *FilteredView[T]) removed(items []T) {
	for _, item := range items {
		v.unwatch(item)
	}
	oldItems, indices := v.removeItems(items)
	if len(oldItems) > 0 {
		v.emit(removedEvent[T](v, oldItems, indices))
	}
}

// rebuild recomputes the contents from the source without emitting.
func (v *FilteredView[T]) rebuild() {
	v.suppressor.Do(func() {
		for _, w := range v.watched {
			w.sub.Unsubscribe()
		}
		v.watched = nil
		v.items = nil
		for _, item := range v.source.Items() {
			v.watch(item)
			if v.predicate(item) {
				v.items = append(v.items, item)
			}
		}
	})
}

// elementChanged re-evaluates membership of an element after it changed.
func (v *FilteredView[T]) elementChanged(item T) {
	if v.closed {
		return
	}
	present := v.IndexOf(item)
	switch matches := v.predicate(item); {
	case matches && present < 0:
		i := v.position(item)
		v.insert(i, item)
		v.emit(addedEvent[T](v, []T{item}, []int{i}))
	case !matches && present >= 0:
		old := v.removeAt(present)
		v.emit(removedEvent[T](v, []T{old}, []int{present}))
	}
}

// position returns the view index that keeps item in source order.
func (v *FilteredView[T]) position(item T) int {
	limit := v.source.IndexOf(item)
	if limit < 0 {
		return len(v.items)
	}
	pos := 0
	for j := 0; j < limit && pos < len(v.items); j++ {
		if v.equal(v.source.Get(j), v.items[pos]) {
			pos++
		}
	}
	return pos
}

func (v *FilteredView[T]) watch(item T) {
	src, ok := any(item).(notify.Source)
	if !ok {
		return
	}
	observer := func(notify.Change) { v.elementChanged(item) }

	var sub *notify.Subscription
	if v.attribute == "" {
		sub = src.Subscribe(observer)
	} else {
		sub = src.SubscribeName(v.attribute, observer)
	}
	v.watched = append(v.watched, watchedItem[T]{item: item, sub: sub})
}

func (v *FilteredView[T]) unwatch(item T) {
	for i, w := range v.watched {
		if v.equal(w.item, item) {
			w.sub.Unsubscribe()
			v.watched = append(v.watched[:i], v.watched[i+1:]...)
			return
		}
	}
}

var _ Observable[int] = (*FilteredView[int])(nil)

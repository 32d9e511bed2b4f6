package collection

import (
	"slices"
	"sort"
)

// SortedView mirrors the elements of a source collection ordered by a
// comparator. For every adjacent pair, compare(view[i], view[i+1]) <= 0.
type SortedView[T any] struct {
	base[T]

	source   Observable[T]
	compare  func(a, b T) int
	sourceID ListenerID

	initialized bool
	closed      bool
}

// NewSortedView creates a view over source and registers it as a source
// listener. The view is empty until Initialize is called.
func NewSortedView[T any](source Observable[T], compare func(a, b T) int, opts ...Option[T]) *SortedView[T] {
	v := &SortedView[T]{
		source:  source,
		compare: compare,
	}
	v.setup(v, newConfig(opts))
	v.sourceID = source.AddListener(v)
	return v
}

// Sort returns an initialized view of source ordered by compare.
func Sort[T any](source Observable[T], compare func(a, b T) int, opts ...Option[T]) *SortedView[T] {
	v := NewSortedView(source, compare, opts...)
	v.Initialize()
	return v
}

// Initialize copies the current source contents into the view. Calling it
// again has no effect.
func (v *SortedView[T]) Initialize() {
	if v.initialized || v.closed {
		return
	}
	v.initialized = true
	v.addAll(v.source.Items())
}

// Source returns the observed collection.
func (v *SortedView[T]) Source() Observable[T] {
	return v.source
}

// Set replaces the element at index i, re-sorts the view and emits a Reset
// event. The source collection is not modified.
func (v *SortedView[T]) Set(i int, item T) (T, error) {
	if err := v.checkIndex(i, len(v.items)-1); err != nil {
		var zero T
		return zero, err
	}
	old := v.items[i]
	v.items[i] = item
	slices.SortStableFunc(v.items, v.compare)
	v.emit(resetEvent[T](v))
	return old, nil
}

// Close detaches the view from its source. The view keeps its last
// contents.
func (v *SortedView[T]) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.source.RemoveListener(v.sourceID)
}

// CollectionChanged implements Listener.
func (v *SortedView[T]) CollectionChanged(e ChangeEvent[T]) {
	if !v.initialized || v.closed {
		return
	}
	switch e.Kind() {
	case Add:
		v.addAll(e.NewItems())
	case Remove:
		v.removeAll(e.OldItems())
	case Reset:
		v.suppressor.Do(func() {
			v.items = nil
			for _, item := range v.source.Items() {
				v.addSorted(item)
			}
		})
		v.emit(resetEvent[T](v))
	}
}

// insertIndex returns the first index whose element does not order before
// item.
func (v *SortedView[T]) insertIndex(item T) int {
	return sort.Search(len(v.items), func(i int) bool {
		return v.compare(v.items[i], item) >= 0
	})
}

func (v *SortedView[T]) addSorted(item T) int {
	i := v.insertIndex(item)
	v.insert(i, item)
	return i
}

// addAll inserts items one at a time and emits a single Add event.
func (v *SortedView[T]) addAll(items []T) {
	if len(items) == 0 {
		return
	}
	indices := make([]int, 0, len(items))
	v.suppressor.Do(func() {
		for _, item := range items {
			i := v.addSorted(item)
			shiftIndices(indices, i)
			indices = append(indices, i)
		}
	})
	v.emit(addedEvent[T](v, slices.Clone(items), indices))
}

func (v *SortedView[T]) removeAll(items []T) {
	oldItems, indices := v.removeItems(items)
	if len(oldItems) > 0 {
		v.emit(removedEvent[T](v, oldItems, indices))
	}
}

var _ Observable[int] = (*SortedView[int])(nil)

package widget

import (
	"slices"
)

// SelectionEvent describes a selection change.
type SelectionEvent struct {
	// First and Last bound the indices whose state may have changed.
	First, Last int

	// Adjusting is true while a change is still in progress, for example
	// during a drag.
	Adjusting bool
}

type selectionListener struct {
	id uint64
	fn func(SelectionEvent)
}

// Selection is a set of selected indices shared by lists and tables.
type Selection struct {
	indices   []int
	adjusting bool
	pending   bool
	listeners []selectionListener
	nextID    uint64
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Indices returns the selected indices in ascending order.
func (s *Selection) Indices() []int {
	return slices.Clone(s.indices)
}

// Lead returns the smallest selected index, or -1.
func (s *Selection) Lead() int {
	if len(s.indices) == 0 {
		return -1
	}
	return s.indices[0]
}

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool {
	return len(s.indices) == 0
}

// IsSelected reports whether i is selected.
func (s *Selection) IsSelected(i int) bool {
	_, found := slices.BinarySearch(s.indices, i)
	return found
}

// Set replaces the selection. Negative indices are ignored and duplicates
// collapse.
func (s *Selection) Set(indices ...int) {
	next := make([]int, 0, len(indices))
	for _, i := range indices {
		if i >= 0 {
			next = append(next, i)
		}
	}
	slices.Sort(next)
	next = slices.Compact(next)
	s.replace(next)
}

// Add adds i to the selection.
func (s *Selection) Add(i int) {
	if i < 0 || s.IsSelected(i) {
		return
	}
	s.Set(append(s.Indices(), i)...)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.replace(nil)
}

// SetAdjusting marks the start or end of a multi-step change. Ending an
// adjustment that changed the selection fires a final, non-adjusting event.
func (s *Selection) SetAdjusting(v bool) {
	if s.adjusting == v {
		return
	}
	s.adjusting = v
	if !v && s.pending {
		s.pending = false
		first, last := s.bounds(nil)
		s.emit(SelectionEvent{First: first, Last: last})
	}
}

// Adjusting reports whether an adjustment is in progress.
func (s *Selection) Adjusting() bool {
	return s.adjusting
}

// AddListener registers fn for every selection change and returns a
// function removing it.
func (s *Selection) AddListener(fn func(SelectionEvent)) (remove func()) {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, selectionListener{id: id, fn: fn})
	return func() {
		s.listeners = slices.DeleteFunc(s.listeners, func(l selectionListener) bool { return l.id == id })
	}
}

// Listeners returns the number of registered listeners.
func (s *Selection) Listeners() int {
	return len(s.listeners)
}

func (s *Selection) replace(next []int) {
	if slices.Equal(s.indices, next) {
		return
	}
	first, last := s.bounds(next)
	s.indices = next
	if s.adjusting {
		s.pending = true
	}
	s.emit(SelectionEvent{First: first, Last: last, Adjusting: s.adjusting})
}

// bounds returns the range covering the current and next selections.
func (s *Selection) bounds(next []int) (int, int) {
	all := append(slices.Clone(s.indices), next...)
	if len(all) == 0 {
		return -1, -1
	}
	return slices.Min(all), slices.Max(all)
}

func (s *Selection) emit(e SelectionEvent) {
	for _, l := range slices.Clone(s.listeners) {
		l.fn(e)
	}
}

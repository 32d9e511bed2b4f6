package collection

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/dshills/bindkit/internal/notify"
	"github.com/dshills/bindkit/internal/paths"
)

// Map is an observable string-keyed map. Every write fires a change named
// after the key, and a change of paths.Size whenever the number of
// entries changes.
type Map[V any] struct {
	entries  map[string]V
	notifier *notify.Notifier
}

// NewMap creates an empty map.
func NewMap[V any]() *Map[V] {
	m := &Map[V]{entries: make(map[string]V)}
	m.notifier = notify.New(m)
	return m
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	return len(m.entries)
}

// Keys returns the keys in sorted order.
func (m *Map[V]) Keys() []string {
	return slices.Sorted(maps.Keys(m.entries))
}

// Snapshot returns a copy of the entries.
func (m *Map[V]) Snapshot() map[string]V {
	return maps.Clone(m.entries)
}

// Put stores value under key and returns the previous value.
func (m *Map[V]) Put(key string, value V) (V, bool) {
	size := len(m.entries)
	old, existed := m.entries[key]
	m.entries[key] = value

	if existed {
		m.notifier.Fire(key, old, value)
	} else {
		m.notifier.Fire(key, nil, value)
	}
	m.fireSize(size)
	return old, existed
}

// PutAll stores every entry of values, in key order.
func (m *Map[V]) PutAll(values map[string]V) {
	for _, key := range slices.Sorted(maps.Keys(values)) {
		m.Put(key, values[key])
	}
}

// PutIfAbsent stores value only when key is not present. It returns the
// existing value and true when the key was present.
func (m *Map[V]) PutIfAbsent(key string, value V) (V, bool) {
	if old, ok := m.entries[key]; ok {
		return old, true
	}
	m.Put(key, value)
	var zero V
	return zero, false
}

// Remove deletes key and returns the removed value.
func (m *Map[V]) Remove(key string) (V, bool) {
	old, ok := m.entries[key]
	if !ok {
		return old, false
	}
	size := len(m.entries)
	delete(m.entries, key)
	m.notifier.Fire(key, old, nil)
	m.fireSize(size)
	return old, true
}

// RemoveValue deletes key only if it currently maps to value.
func (m *Map[V]) RemoveValue(key string, value V) bool {
	old, ok := m.entries[key]
	if !ok || !notify.Equal(old, value) {
		return false
	}
	m.Remove(key)
	return true
}

// Clear removes every entry.
func (m *Map[V]) Clear() {
	size := len(m.entries)
	old := m.entries
	m.entries = make(map[string]V)
	for _, key := range slices.Sorted(maps.Keys(old)) {
		m.notifier.Fire(key, old[key], nil)
	}
	m.fireSize(size)
}

func (m *Map[V]) fireSize(before int) {
	m.notifier.Fire(paths.Size, before, len(m.entries))
}

// Subscribe implements notify.Source.
func (m *Map[V]) Subscribe(observer notify.Observer) *notify.Subscription {
	return m.notifier.Subscribe(observer)
}

// SubscribeName implements notify.Source.
func (m *Map[V]) SubscribeName(name string, observer notify.Observer) *notify.Subscription {
	return m.notifier.SubscribeName(name, observer)
}

// Accessor exposes entries and paths.Size as bindable attributes.
func (m *Map[V]) Accessor(name string) (func() any, bool) {
	if name == paths.Size {
		return func() any { return len(m.entries) }, true
	}
	if _, ok := m.entries[name]; !ok {
		return nil, false
	}
	return func() any {
		v, ok := m.entries[name]
		if !ok {
			return nil
		}
		return v
	}, true
}

// Mutator exposes entries as writable attributes.
func (m *Map[V]) Mutator(name string) (func(any) error, bool) {
	if name == paths.Size {
		return nil, false
	}
	return func(value any) error {
		if value == nil {
			m.Remove(name)
			return nil
		}
		v, ok := value.(V)
		if !ok {
			return fmt.Errorf("%w: cannot store %T in map of %s", paths.ErrTypeMismatch, value, reflect.TypeOf((*V)(nil)).Elem())
		}
		m.Put(name, v)
		return nil
	}, true
}

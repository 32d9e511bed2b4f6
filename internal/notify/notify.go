// Package notify provides attribute change notification for bindable objects.
//
// A Notifier implements the observer pattern used throughout bindkit: objects
// embed or own a Notifier, fire a Change whenever one of their attributes is
// modified, and observers registered either for every attribute or for a
// single attribute name receive a callback.
package notify

import (
	"reflect"
	"sort"
	"sync"
)

// Change represents an attribute change event.
type Change struct {
	// Source is the object whose attribute changed.
	Source any

	// Name is the attribute that changed. Nested attributes use
	// dot-separated names.
	Name string

	// OldValue is the previous value (may be nil).
	OldValue any

	// NewValue is the new value (may be nil).
	NewValue any
}

// Observer is called when an attribute changes.
type Observer func(change Change)

// Source is implemented by objects that publish attribute changes.
type Source interface {
	// Subscribe registers an observer for every attribute change.
	Subscribe(observer Observer) *Subscription

	// SubscribeName registers an observer for changes to one attribute.
	SubscribeName(name string, observer Observer) *Subscription
}

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	name     string
	notifier *Notifier
}

// Name returns the attribute the subscription is limited to, or "" for
// whole-object subscriptions.
func (s *Subscription) Name() string {
	return s.name
}

// Unsubscribe removes this subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages attribute change subscriptions for one source object.
type Notifier struct {
	mu sync.RWMutex

	// source is reported as Change.Source
	source any

	// Observers that receive all changes
	globalObservers map[uint64]Observer

	// Name-specific observers
	nameObservers map[string]map[uint64]Observer

	nextID uint64
}

// New creates a Notifier that reports source as the origin of its changes.
func New(source any) *Notifier {
	return &Notifier{
		source:          source,
		globalObservers: make(map[uint64]Observer),
		nameObservers:   make(map[string]map[uint64]Observer),
	}
}

// Source returns the object reported as the origin of changes.
func (n *Notifier) Source() any {
	return n.source
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.globalObservers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// SubscribeName registers an observer for changes to a specific attribute.
// The observer is called for exact matches and for nested attributes, so
// subscribing to "address" receives changes to "address.city".
func (n *Notifier) SubscribeName(name string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	if n.nameObservers[name] == nil {
		n.nameObservers[name] = make(map[uint64]Observer)
	}
	n.nameObservers[name][id] = observer

	return &Subscription{id: id, name: name, notifier: n}
}

// Fire notifies observers that the named attribute changed from oldValue to
// newValue. Nothing is delivered when the two values are equal. Fire reports
// whether observers were notified.
func (n *Notifier) Fire(name string, oldValue, newValue any) bool {
	if Equal(oldValue, newValue) {
		return false
	}
	n.Notify(Change{
		Source:   n.source,
		Name:     name,
		OldValue: oldValue,
		NewValue: newValue,
	})
	return true
}

// Notify delivers a change to all relevant observers without comparing
// values. A change with an empty name is delivered to every observer.
func (n *Notifier) Notify(change Change) {
	if change.Source == nil {
		change.Source = n.source
	}
	for _, obs := range n.collect(change.Name) {
		obs(change)
	}
}

// Count returns the number of registered observers.
func (n *Notifier) Count() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	count := len(n.globalObservers)
	for _, observers := range n.nameObservers {
		count += len(observers)
	}
	return count
}

// Names returns the attribute names that have at least one observer, in
// sorted order.
func (n *Notifier) Names() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	names := make([]string, 0, len(n.nameObservers))
	for name := range n.nameObservers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// unsubscribe removes an observer by ID.
func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.globalObservers, id)

	for name, observers := range n.nameObservers {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.nameObservers, name)
		}
	}
}

type entry struct {
	id  uint64
	obs Observer
}

// collect returns the observers interested in name, in registration order.
func (n *Notifier) collect(name string) []Observer {
	n.mu.RLock()

	var entries []entry
	for id, obs := range n.globalObservers {
		entries = append(entries, entry{id, obs})
	}

	for observed, observers := range n.nameObservers {
		if name != "" && observed != name && !isParentName(observed, name) {
			continue
		}
		for id, obs := range observers {
			entries = append(entries, entry{id, obs})
		}
	}

	n.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].id < entries[j].id
	})

	result := make([]Observer, len(entries))
	for i, e := range entries {
		result[i] = e.obs
	}
	return result
}

// isParentName checks if parent is a parent attribute of child.
// e.g., "address" is parent of "address.city".
func isParentName(parent, child string) bool {
	if parent == "" || len(parent) >= len(child) {
		return false
	}
	return child[:len(parent)] == parent && child[len(parent)] == '.'
}

// Equal reports whether two attribute values are structurally equal.
func Equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

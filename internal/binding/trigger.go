package binding

import (
	"github.com/dshills/bindkit/internal/collection"
	"github.com/dshills/bindkit/internal/notify"
	"github.com/dshills/bindkit/internal/property"
)

// Trigger subscribes a binding to change notification.
type Trigger interface {
	// Register makes every change call b.Apply(d). Registering the same
	// trigger for the same binding and direction again returns the
	// existing registration.
	Register(b *Binding, d Direction) (*Registration, error)
}

// Subscribe starts delivering change notifications to fire and returns a
// function that stops delivery.
type Subscribe func(fire func()) (cancel func(), err error)

type subscribeTrigger struct {
	name      string
	subscribe Subscribe
}

// NewTrigger creates a trigger from a subscribe function. name is used in
// diagnostics only.
func NewTrigger(name string, subscribe Subscribe) Trigger {
	return &subscribeTrigger{name: name, subscribe: subscribe}
}

// Register implements Trigger.
func (t *subscribeTrigger) Register(b *Binding, d Direction) (*Registration, error) {
	return b.attach(t, d, t.subscribe)
}

// String returns the trigger name.
func (t *subscribeTrigger) String() string {
	return t.name
}

// NotifyTrigger fires on changes of attr reported by src. An empty attr
// fires on every change.
func NotifyTrigger(src notify.Source, attr string) Trigger {
	return NewTrigger("notify:"+attr, func(fire func()) (func(), error) {
		observer := func(notify.Change) { fire() }
		var sub *notify.Subscription
		if attr == "" {
			sub = src.Subscribe(observer)
		} else {
			sub = src.SubscribeName(attr, observer)
		}
		return sub.Unsubscribe, nil
	})
}

// PropertyTrigger fires whenever the property's value changes.
func PropertyTrigger(h property.Holder) Trigger {
	return NewTrigger("property:"+h.Name(), func(fire func()) (func(), error) {
		sub := h.Subscribe(func(notify.Change) { fire() })
		return sub.Unsubscribe, nil
	})
}

// CollectionTrigger fires on every change of an observable collection.
func CollectionTrigger(w collection.Watchable) Trigger {
	return NewTrigger("collection", func(fire func()) (func(), error) {
		id := w.Watch(func(collection.Kind) { fire() })
		return func() { w.RemoveListener(id) }, nil
	})
}

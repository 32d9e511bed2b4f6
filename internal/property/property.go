// Package property provides observable single-value holders.
//
// A Property is the most common endpoint of a binding: it can be read,
// written and observed. Observers are only notified when a write actually
// changes the value, so bindings built on properties never churn on no-op
// writes.
package property

import (
	"fmt"
	"reflect"

	"github.com/dshills/bindkit/internal/notify"
	"github.com/dshills/bindkit/internal/paths"
)

// Holder is the type-erased view of a Property used by binding rules.
type Holder interface {
	notify.Source

	// Name returns the property name reported in change events.
	Name() string

	// Value returns the current value.
	Value() any

	// SetValue replaces the current value. It fails when v cannot be
	// assigned to the property's type.
	SetValue(v any) error
}

// Property is a named, typed, observable value.
type Property[T any] struct {
	name     string
	owner    any
	value    T
	notifier *notify.Notifier
}

// New creates a property. owner is reported as the source of change
// events; when nil the property itself is used.
func New[T any](name string, owner any, initial T) *Property[T] {
	p := &Property[T]{
		name:  name,
		owner: owner,
		value: initial,
	}
	source := owner
	if source == nil {
		source = p
	}
	p.notifier = notify.New(source)
	return p
}

// Of creates an ownerless property holding the zero value of T.
func Of[T any](name string) *Property[T] {
	var zero T
	return New(name, nil, zero)
}

// Name returns the property name.
func (p *Property[T]) Name() string {
	return p.name
}

// Owner returns the owner passed to New.
func (p *Property[T]) Owner() any {
	return p.owner
}

// Get returns the current value.
func (p *Property[T]) Get() T {
	return p.value
}

// Set stores v and notifies observers when it differs from the previous
// value. It reports whether a notification was fired.
func (p *Property[T]) Set(v T) bool {
	old := p.value
	p.value = v
	return p.notifier.Fire(p.name, old, v)
}

// IsNil reports whether the value is nil. Values of non-nillable types are
// never nil.
func (p *Property[T]) IsNil() bool {
	rv := reflect.ValueOf(any(p.value))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// IsSet is the negation of IsNil.
func (p *Property[T]) IsSet() bool {
	return !p.IsNil()
}

// Value returns the current value as any.
func (p *Property[T]) Value() any {
	return p.value
}

// SetValue implements Holder.
func (p *Property[T]) SetValue(v any) error {
	if v == nil {
		var zero T
		if !nillable[T]() {
			return fmt.Errorf("%w: cannot assign nil to property %q of type %s", paths.ErrTypeMismatch, p.name, typeOf[T]())
		}
		p.Set(zero)
		return nil
	}
	t, ok := v.(T)
	if !ok {
		return fmt.Errorf("%w: cannot assign %T to property %q of type %s", paths.ErrTypeMismatch, v, p.name, typeOf[T]())
	}
	p.Set(t)
	return nil
}

// Subscribe registers an observer for changes to this property.
func (p *Property[T]) Subscribe(observer notify.Observer) *notify.Subscription {
	return p.notifier.Subscribe(observer)
}

// SubscribeName registers an observer for changes reported under name.
// Properties only report their own name, so other names never fire.
func (p *Property[T]) SubscribeName(name string, observer notify.Observer) *notify.Subscription {
	return p.notifier.SubscribeName(name, observer)
}

// Observers returns the number of registered observers.
func (p *Property[T]) Observers() int {
	return p.notifier.Count()
}

// Accessor implements paths.Accessible for the "value" attribute.
func (p *Property[T]) Accessor(name string) (func() any, bool) {
	if name != paths.Value {
		return nil, false
	}
	return p.Value, true
}

// Mutator implements paths.Mutable for the "value" attribute.
func (p *Property[T]) Mutator(name string) (func(any) error, bool) {
	if name != paths.Value {
		return nil, false
	}
	return p.SetValue, true
}

// String returns a debug representation.
func (p *Property[T]) String() string {
	return fmt.Sprintf("%s=%v", p.name, p.value)
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func nillable[T any]() bool {
	switch typeOf[T]().Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

var _ Holder = (*Property[int])(nil)

package binding

import (
	"fmt"
	"slices"
	"sync"
)

// Rule maps an (object, attribute) pair to a supplier, consumer or
// trigger.
type Rule[F any] struct {
	// Name identifies the rule for Unregister and diagnostics.
	Name string

	// Match reports whether the rule applies.
	Match func(obj any, attr string) bool

	// Factory produces the accessor or trigger.
	Factory func(obj any, attr string) (F, error)
}

// RegisterOption configures Registry.Register.
type RegisterOption func(*registerConfig)

type registerConfig struct {
	position int
}

// At inserts the rule at position instead of appending it. Position 0 gives
// the rule the highest priority. Out-of-range positions append.
func At(position int) RegisterOption {
	return func(c *registerConfig) {
		c.position = position
	}
}

// Registry is an ordered list of rules. The first matching rule wins.
// It is safe for concurrent use.
type Registry[F any] struct {
	kind     string
	missing  error
	fallback func(obj any, attr string) (F, bool)

	mu    sync.RWMutex
	rules []Rule[F]
}

// NewRegistry creates an empty registry. kind names the product in errors.
// fallback, if non-nil, is consulted when no rule matches.
func NewRegistry[F any](kind string, missing error, fallback func(obj any, attr string) (F, bool)) *Registry[F] {
	return &Registry[F]{kind: kind, missing: missing, fallback: fallback}
}

// Register adds a rule. By default it is appended with the lowest
// priority.
func (r *Registry[F]) Register(rule Rule[F], opts ...RegisterOption) error {
	if rule.Match == nil || rule.Factory == nil {
		return fmt.Errorf("%w: %s rule %q needs a matcher and a factory", ErrInvalidRule, r.kind, rule.Name)
	}
	cfg := registerConfig{position: -1}
	for _, opt := range opts {
		opt(&cfg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg.position < 0 || cfg.position >= len(r.rules) {
		r.rules = append(r.rules, rule)
	} else {
		r.rules = slices.Insert(r.rules, cfg.position, rule)
	}
	return nil
}

// Unregister removes the first rule with the given name.
func (r *Registry[F]) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.rules, func(rule Rule[F]) bool { return rule.Name == name })
	if i < 0 {
		return false
	}
	r.rules = slices.Delete(r.rules, i, i+1)
	return true
}

// Names returns the rule names in priority order.
func (r *Registry[F]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name
	}
	return names
}

// Len returns the number of rules.
func (r *Registry[F]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// Create returns the product of the first rule matching (obj, attr), or
// of the fallback.
func (r *Registry[F]) Create(obj any, attr string) (F, error) {
	r.mu.RLock()
	rules := slices.Clone(r.rules)
	r.mu.RUnlock()

	for _, rule := range rules {
		if !rule.Match(obj, attr) {
			continue
		}
		product, err := rule.Factory(obj, attr)
		if err != nil {
			var zero F
			return zero, fmt.Errorf("%s rule %q: %w", r.kind, rule.Name, err)
		}
		return product, nil
	}

	if r.fallback != nil {
		if product, ok := r.fallback(obj, attr); ok {
			return product, nil
		}
	}

	var zero F
	return zero, &LookupError{Kind: r.kind, Holder: fmt.Sprintf("%T", obj), Attribute: attr, Err: r.missing}
}

// ForType builds a rule matching objects of type O. If attrs is non-empty
// the rule only matches those attributes.
func ForType[O any, F any](name string, factory func(obj O, attr string) (F, error), attrs ...string) Rule[F] {
	return Rule[F]{
		Name: name,
		Match: func(obj any, attr string) bool {
			if _, ok := obj.(O); !ok {
				return false
			}
			return len(attrs) == 0 || slices.Contains(attrs, attr)
		},
		Factory: func(obj any, attr string) (F, error) {
			return factory(obj.(O), attr)
		},
	}
}

// SupplierRule builds a supplier rule for objects of type O from a getter.
func SupplierRule[O any](name string, get func(obj O, attr string) any, attrs ...string) Rule[Supplier] {
	return ForType(name, func(obj O, attr string) (Supplier, error) {
		return func() (any, error) { return get(obj, attr), nil }, nil
	}, attrs...)
}

// ConsumerRule builds a consumer rule for objects of type O from a setter.
func ConsumerRule[O any](name string, set func(obj O, attr string, value any) error, attrs ...string) Rule[Consumer] {
	return ForType(name, func(obj O, attr string) (Consumer, error) {
		return func(value any) error { return set(obj, attr, value) }, nil
	}, attrs...)
}

// TriggerRule builds a trigger rule for objects of type O.
func TriggerRule[O any](name string, trigger func(obj O, attr string) Trigger, attrs ...string) Rule[Trigger] {
	return ForType(name, func(obj O, attr string) (Trigger, error) {
		return trigger(obj, attr), nil
	}, attrs...)
}

package binding

import (
	"github.com/dshills/bindkit/internal/collection"
	"github.com/dshills/bindkit/internal/notify"
	"github.com/dshills/bindkit/internal/paths"
	"github.com/dshills/bindkit/internal/property"
)

type sized interface {
	collection.Watchable
	Len() int
}

func genericSupplier(obj any, attr string) (Supplier, bool) {
	get, ok := paths.Getter(obj, attr)
	if !ok {
		return nil, false
	}
	return Supplier(get), true
}

func genericConsumer(obj any, attr string) (Consumer, bool) {
	set, ok := paths.Setter(obj, attr)
	if !ok {
		return nil, false
	}
	return Consumer(set), true
}

// DefaultSupplierRules returns the built-in supplier rules: property values
// and collections, either as a whole or by size.
func DefaultSupplierRules() []Rule[Supplier] {
	return []Rule[Supplier]{
		SupplierRule("property", func(h property.Holder, _ string) any {
			return h.Value()
		}, paths.Value),
		SupplierRule("collection", func(c collection.Watchable, _ string) any {
			return c
		}, paths.Value, paths.Model),
		SupplierRule("collection-size", func(c sized, _ string) any {
			return c.Len()
		}, paths.Size),
	}
}

// DefaultConsumerRules returns the built-in consumer rules.
func DefaultConsumerRules() []Rule[Consumer] {
	return []Rule[Consumer]{
		ConsumerRule("property", func(h property.Holder, _ string, value any) error {
			return h.SetValue(value)
		}, paths.Value),
	}
}

// DefaultTriggerRules returns the built-in trigger rules: properties and
// collections fire on any change, other notify sources on changes of the
// bound attribute.
func DefaultTriggerRules() []Rule[Trigger] {
	return []Rule[Trigger]{
		TriggerRule("property", func(h property.Holder, _ string) Trigger {
			return PropertyTrigger(h)
		}),
		TriggerRule("collection", func(w collection.Watchable, _ string) Trigger {
			return CollectionTrigger(w)
		}),
		TriggerRule("notify", func(src notify.Source, attr string) Trigger {
			return NotifyTrigger(src, attr)
		}),
	}
}

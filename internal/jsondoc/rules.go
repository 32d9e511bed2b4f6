package jsondoc

import (
	"github.com/dshills/bindkit/internal/binding"
)

// SupplierRules returns the rule reading document values.
func SupplierRules() []binding.Rule[binding.Supplier] {
	return []binding.Rule[binding.Supplier]{
		binding.SupplierRule("json", func(n Node, attr string) any { return n.Get(attr) }),
	}
}

// ConsumerRules returns the rule writing document values.
func ConsumerRules() []binding.Rule[binding.Consumer] {
	return []binding.Rule[binding.Consumer]{
		binding.ConsumerRule("json", func(n Node, attr string, v any) error { return n.Set(attr, v) }),
	}
}

// TriggerRules returns the rule observing document paths.
func TriggerRules() []binding.Rule[binding.Trigger] {
	return []binding.Rule[binding.Trigger]{
		binding.TriggerRule("json", func(n Node, attr string) binding.Trigger {
			return binding.NotifyTrigger(n, attr)
		}),
	}
}

// Install registers the document rules on e, ahead of the generic rules.
func Install(e *binding.Engine) error {
	for _, r := range SupplierRules() {
		if err := e.Suppliers().Register(r, binding.At(0)); err != nil {
			return err
		}
	}
	for _, r := range ConsumerRules() {
		if err := e.Consumers().Register(r, binding.At(0)); err != nil {
			return err
		}
	}
	for _, r := range TriggerRules() {
		if err := e.Triggers().Register(r, binding.At(0)); err != nil {
			return err
		}
	}
	return nil
}

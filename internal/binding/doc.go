// Package binding keeps values of two objects synchronized.
//
// A Binding is made of up to two Links, one per Direction. Each link pairs a
// Supplier reading a value with a Consumer writing it. Triggers subscribe to
// change notification on either end and re-apply the binding whenever the
// watched attribute changes.
//
// Suppliers, consumers and triggers are produced by ordered rule registries
// owned by an Engine. Rules are matched against an (object, attribute) pair
// in order; the first match wins. Supplier and consumer lookups fall back to
// generic attribute access (see package paths); trigger lookups do not, as
// change notification cannot be discovered generically.
//
// # Basic Usage
//
//	engine := binding.NewEngine()
//	name := property.Of[string]("name")
//	label := property.Of[string]("label")
//
//	b, err := engine.Unidirectional(name, paths.Value, label, paths.Value)
//	if err != nil {
//		return err
//	}
//	defer b.Close()
//
//	name.Set("Ada") // label now holds "Ada"
//
// # Feedback Suppression
//
// Apply holds the binding's suppressor open for the whole transfer. A
// consumer that synchronously notifies the opposite trigger therefore
// cannot cause a second round of propagation.
//
// # Declarative Bindings
//
// Types implementing Bindable list Descriptors naming a member, a source
// path relative to that member's value, a target path and a Type.
// Engine.Bind builds every descriptor in order and is all-or-nothing: if
// one descriptor fails, the bindings created earlier in the same call are
// closed before the error is returned.
package binding

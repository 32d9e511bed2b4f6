// Package script runs sandboxed Lua functions for collection views.
//
// A State owns one gopher-lua interpreter with only the base, table, string
// and math libraries opened. Scripts compile to Funcs, which can be adapted
// into view predicates and comparators:
//
//	s := script.NewState()
//	defer s.Close()
//
//	active, _ := s.Expression("item.enabled and item.priority > 2", "item")
//	view := collection.FilterOn(tasks, script.Predicate[*Task](active, nil), "enabled")
//
// Go values are passed to Lua as follows: nil, booleans, numbers and strings
// map to their Lua counterparts; slices and string-keyed maps become tables;
// every other value becomes a read-only userdata whose fields resolve
// through the paths package, so item.priority calls Priority() or reads the
// Priority field.
//
// Every call runs under a timeout. gopher-lua states are not goroutine-safe;
// a State serializes calls with a mutex. A State must not be re-entered:
// Go code run from a script (a getter behind a wrapped value, say) that
// calls into the same State gets ErrReentered.
package script

// Package collection provides observable lists and derived views.
//
// A List emits exactly one ChangeEvent per mutation, after the mutation has
// taken effect. Bulk operations emit a single aggregate event: Add events
// carry the inserted items and their indices, Remove events the removed
// items and their former indices, and Reset events signal that listeners
// must recompute everything.
//
// # Views
//
// FilteredView and SortedView are themselves observable and stay consistent
// with a source list by listening to it:
//
//	people := collection.New[*Person]()
//	adults := collection.Filter(people, func(p *Person) bool { return p.Age >= 18 })
//	byName := collection.Sort(people, func(a, b *Person) int {
//	    return strings.Compare(a.Name, b.Name)
//	})
//
// When elements implement notify.Source, a FilteredView also watches each
// element so that in-place mutations re-evaluate membership. Use FilterOn to
// restrict that to a single attribute.
//
// Each view registers with its source under its own ListenerID, so any
// number of views can observe the same list independently. Close a view to
// detach it from its source and from its elements.
//
// # Threading
//
// Lists and views assume a single goroutine, typically a UI event loop.
// Listener registration is guarded by a mutex; mutation is not.
package collection

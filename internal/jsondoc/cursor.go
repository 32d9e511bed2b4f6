package jsondoc

import (
	"github.com/dshills/bindkit/internal/notify"
)

// Cursor addresses a subtree of a document. Paths given to a cursor are
// relative to its own path.
type Cursor struct {
	doc  *Document
	path string
}

// Document returns the underlying document.
func (c *Cursor) Document() *Document {
	return c.doc
}

// Path returns the absolute path of the subtree.
func (c *Cursor) Path() string {
	return c.path
}

// Value returns the whole subtree value.
func (c *Cursor) Value() any {
	return c.doc.Get(c.path)
}

// Get implements Node.
func (c *Cursor) Get(path string) any {
	return c.doc.Get(c.join(path))
}

// Set implements Node.
func (c *Cursor) Set(path string, v any) error {
	return c.doc.Set(c.join(path), v)
}

// Delete removes the value at path.
func (c *Cursor) Delete(path string) error {
	return c.doc.Delete(c.join(path))
}

// At implements Node.
func (c *Cursor) At(path string) *Cursor {
	return &Cursor{doc: c.doc, path: c.join(path)}
}

// Subscribe registers an observer for every change within the subtree.
func (c *Cursor) Subscribe(observer notify.Observer) *notify.Subscription {
	return c.doc.SubscribeName(c.path, observer)
}

// SubscribeName registers an observer for changes at or below path.
func (c *Cursor) SubscribeName(path string, observer notify.Observer) *notify.Subscription {
	return c.doc.SubscribeName(c.join(path), observer)
}

// Accessor implements paths.Accessible.
func (c *Cursor) Accessor(name string) (func() any, bool) {
	return accessor(c, name), true
}

// Mutator implements paths.Mutable.
func (c *Cursor) Mutator(name string) (func(any) error, bool) {
	return func(v any) error { return c.Set(name, v) }, true
}

func (c *Cursor) join(path string) string {
	if path == "" {
		return c.path
	}
	if c.path == "" {
		return path
	}
	return c.path + "." + path
}

var _ Node = (*Cursor)(nil)

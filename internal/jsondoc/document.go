package jsondoc

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/bindkit/internal/notify"
)

// Errors returned by documents.
var (
	// ErrInvalidJSON is returned when text is not valid JSON.
	ErrInvalidJSON = errors.New("invalid json")

	// ErrInvalidPath is returned when a path cannot be written.
	ErrInvalidPath = errors.New("invalid json path")
)

// Node is implemented by Document and Cursor.
type Node interface {
	notify.Source

	// Get returns the value at path, or nil.
	Get(path string) any

	// Set writes value at path, creating intermediate objects.
	Set(path string, value any) error

	// At returns a cursor for the subtree at path.
	At(path string) *Cursor
}

// Document is an observable JSON document.
type Document struct {
	mu       sync.RWMutex
	raw      string
	notifier *notify.Notifier
}

// New creates an empty document ({}).
func New() *Document {
	d := &Document{raw: "{}"}
	d.notifier = notify.New(d)
	return d
}

// Parse creates a document from JSON text.
func Parse(text string) (*Document, error) {
	if !gjson.Valid(text) {
		return nil, ErrInvalidJSON
	}
	d := New()
	d.raw = text
	return d, nil
}

// ParseBytes creates a document from JSON bytes.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(string(data))
}

// String returns the raw JSON text.
func (d *Document) String() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.raw
}

// Pretty returns the document indented for display.
func (d *Document) Pretty() []byte {
	return pretty.Pretty([]byte(d.String()))
}

// Result returns the gjson result at path.
func (d *Document) Result(path string) gjson.Result {
	return gjson.Get(d.String(), path)
}

// Exists reports whether a value exists at path.
func (d *Document) Exists(path string) bool {
	return d.Result(path).Exists()
}

// Get implements Node.
func (d *Document) Get(path string) any {
	return value(d.Result(path))
}

// Set implements Node.
func (d *Document) Set(path string, v any) error {
	return d.update(path, func(raw string) (string, error) {
		return sjson.Set(raw, path, v)
	})
}

// Delete removes the value at path. Deleting a missing path is not an
// error.
func (d *Document) Delete(path string) error {
	return d.update(path, func(raw string) (string, error) {
		return sjson.Delete(raw, path)
	})
}

// Load replaces the whole document. Every observer is notified once.
func (d *Document) Load(text string) error {
	if !gjson.Valid(text) {
		return ErrInvalidJSON
	}
	d.mu.Lock()
	before := d.raw
	d.raw = text
	d.mu.Unlock()

	if before != text {
		d.notifier.Notify(notify.Change{Source: d, OldValue: value(gjson.Parse(before)), NewValue: value(gjson.Parse(text))})
	}
	return nil
}

// At implements Node.
func (d *Document) At(path string) *Cursor {
	return &Cursor{doc: d, path: path}
}

// Subscribe registers an observer for every change.
func (d *Document) Subscribe(observer notify.Observer) *notify.Subscription {
	return d.notifier.Subscribe(observer)
}

// SubscribeName registers an observer for changes at or below path.
func (d *Document) SubscribeName(path string, observer notify.Observer) *notify.Subscription {
	return d.notifier.SubscribeName(path, observer)
}

// Observers returns the number of registered observers.
func (d *Document) Observers() int {
	return d.notifier.Count()
}

// Accessor makes documents walkable by dotted paths. Objects, arrays and
// missing values resolve to cursors so that deeper segments can be bound
// before they exist.
func (d *Document) Accessor(name string) (func() any, bool) {
	return accessor(d, name), true
}

// Mutator implements paths.Mutable.
func (d *Document) Mutator(name string) (func(any) error, bool) {
	return func(v any) error { return d.Set(name, v) }, true
}

func (d *Document) update(path string, edit func(raw string) (string, error)) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	d.mu.Lock()
	before := d.raw
	after, err := edit(before)
	if err != nil {
		d.mu.Unlock()
		return fmt.Errorf("%w: %s: %v", ErrInvalidPath, path, err)
	}
	d.raw = after
	d.mu.Unlock()

	d.publish(before, after, path)
	return nil
}

// publish fires a change for path, then for every observed path below it.
func (d *Document) publish(before, after, path string) {
	d.notifier.Fire(path, value(gjson.Get(before, path)), value(gjson.Get(after, path)))
	for _, name := range d.notifier.Names() {
		if strings.HasPrefix(name, path+".") {
			d.notifier.Fire(name, value(gjson.Get(before, name)), value(gjson.Get(after, name)))
		}
	}
}

func accessor(n Node, name string) func() any {
	return func() any {
		v := n.Get(name)
		switch v.(type) {
		case nil, map[string]any, []any:
			return n.At(name)
		}
		return v
	}
}

// value converts a gjson result to plain Go values.
func value(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.String:
		return r.Str
	case gjson.Number:
		if i := r.Int(); float64(i) == r.Num {
			return int(i)
		}
		return r.Num
	}

	if r.IsArray() {
		items := r.Array()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = value(item)
		}
		return out
	}
	out := make(map[string]any)
	r.ForEach(func(key, v gjson.Result) bool {
		out[key.String()] = value(v)
		return true
	})
	return out
}

var _ Node = (*Document)(nil)

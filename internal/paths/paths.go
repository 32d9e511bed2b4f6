// Package paths resolves dot-separated attribute paths against object graphs
// and defines the canonical attribute vocabulary used by bindable adapters.
//
// A path such as "customer.address.city" is walked one segment at a time.
// Every segment except the last is evaluated to its current value; the last
// segment is returned unevaluated together with the object that owns it, so
// that callers can subscribe to changes of that attribute rather than only
// read it.
//
// Attribute lookup prefers explicit capabilities over reflection:
//
//  1. Accessible / Mutable implementations
//  2. exported methods (Name, GetName, IsName / SetName)
//  3. exported struct fields
//  4. map[string]any keys
package paths

import (
	"strings"
)

// Canonical attribute names. Adapters that want to be discovered by the
// built-in registry rules expose their state under these names.
const (
	Background      = "background"
	Editable        = "editable"
	Enabled         = "enabled"
	Font            = "font"
	Foreground      = "foreground"
	Model           = "model"
	Selected        = "selected"
	SelectedIndex   = "selectedIndex"
	SelectedIndices = "selectedIndices"
	SelectedItem    = "selectedItem"
	SelectedRow     = "selectedRow"
	SelectedRows    = "selectedRows"
	Size            = "size"
	Text            = "text"
	Value           = "value"
	Visible         = "visible"
)

// Separator delimits path segments.
const Separator = "."

// Accessible is implemented by objects that expose named attributes without
// relying on reflection.
type Accessible interface {
	// Accessor returns a getter for the named attribute.
	Accessor(name string) (func() any, bool)
}

// Mutable is implemented by objects that accept named attribute writes
// without relying on reflection.
type Mutable interface {
	// Mutator returns a setter for the named attribute.
	Mutator(name string) (func(value any) error, bool)
}

// Split splits a path into its segments.
func Split(path string) []string {
	return strings.Split(path, Separator)
}

// Join joins segments into a path.
func Join(segments ...string) string {
	return strings.Join(segments, Separator)
}

// Leaf returns the last segment of a path.
func Leaf(path string) string {
	if i := strings.LastIndex(path, Separator); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Resolve walks path from root and returns the object holding the last
// segment along with that segment's name. A single-segment path resolves to
// root itself.
func Resolve(root any, path string) (holder any, leaf string, err error) {
	if path == "" {
		return nil, "", &ResolutionError{Path: path, Holder: typeName(root), Err: ErrEmptyPath}
	}
	if isNil(root) {
		return nil, "", &ResolutionError{Path: path, Err: ErrNilHolder}
	}

	segments := Split(path)
	current := root
	for i, segment := range segments[:len(segments)-1] {
		if segment == "" {
			return nil, "", &ResolutionError{Path: path, Segment: segment, Holder: typeName(current), Err: ErrEmptyPath}
		}
		value, err := Get(current, segment)
		if err != nil {
			return nil, "", &ResolutionError{Path: path, Segment: segment, Holder: typeName(current), Err: err}
		}
		if isNil(value) {
			return nil, "", &ResolutionError{
				Path:    path,
				Segment: Join(segments[:i+1]...),
				Holder:  typeName(current),
				Err:     ErrNilHolder,
			}
		}
		current = value
	}

	leaf = segments[len(segments)-1]
	if leaf == "" {
		return nil, "", &ResolutionError{Path: path, Holder: typeName(current), Err: ErrEmptyPath}
	}
	return current, leaf, nil
}

// Get returns the current value of the named attribute on holder.
func Get(holder any, name string) (any, error) {
	getter, ok := Getter(holder, name)
	if !ok {
		return nil, &AttributeError{Name: name, Holder: typeName(holder), Err: ErrNoAttribute}
	}
	return getter()
}

// Set writes value to the named attribute on holder.
func Set(holder any, name string, value any) error {
	setter, ok := Setter(holder, name)
	if !ok {
		return &AttributeError{Name: name, Holder: typeName(holder), Err: ErrNoAttribute}
	}
	return setter(value)
}

package paths

import (
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Getter returns a function reading the named attribute of holder. The
// lookup order is Accessible, exported zero-argument method (Name, GetName,
// IsName), exported struct field, then string-keyed map entry.
func Getter(holder any, name string) (func() (any, error), bool) {
	if isNil(holder) || name == "" {
		return nil, false
	}

	if a, ok := holder.(Accessible); ok {
		if get, ok := a.Accessor(name); ok {
			return func() (any, error) { return get(), nil }, true
		}
	}

	if get, ok := MethodGetter(holder, name); ok {
		return get, true
	}
	if get, ok := FieldGetter(holder, name); ok {
		return get, true
	}
	return mapGetter(holder, name)
}

// Setter returns a function writing the named attribute of holder. The
// lookup order is Mutable, exported one-argument method (SetName), exported
// settable struct field, then string-keyed map entry.
func Setter(holder any, name string) (func(value any) error, bool) {
	if isNil(holder) || name == "" {
		return nil, false
	}

	if m, ok := holder.(Mutable); ok {
		if set, ok := m.Mutator(name); ok {
			return set, true
		}
	}

	if set, ok := MethodSetter(holder, name); ok {
		return set, true
	}
	if set, ok := FieldSetter(holder, name); ok {
		return set, true
	}
	return mapSetter(holder, name)
}

// MethodGetter finds an exported zero-argument method returning a value, or
// a value and an error.
func MethodGetter(holder any, name string) (func() (any, error), bool) {
	rv := reflect.ValueOf(holder)
	exported := exportName(name)

	for _, candidate := range []string{exported, "Get" + exported, "Is" + exported} {
		m := rv.MethodByName(candidate)
		if !m.IsValid() {
			continue
		}
		mt := m.Type()
		if mt.NumIn() != 0 {
			continue
		}
		switch {
		case mt.NumOut() == 1:
			return func() (any, error) {
				return m.Call(nil)[0].Interface(), nil
			}, true
		case mt.NumOut() == 2 && mt.Out(1) == errorType:
			return func() (any, error) {
				out := m.Call(nil)
				if err, _ := out[1].Interface().(error); err != nil {
					return nil, err
				}
				return out[0].Interface(), nil
			}, true
		}
	}
	return nil, false
}

// MethodSetter finds an exported SetName method taking one argument and
// returning nothing or an error.
func MethodSetter(holder any, name string) (func(value any) error, bool) {
	m := reflect.ValueOf(holder).MethodByName("Set" + exportName(name))
	if !m.IsValid() {
		return nil, false
	}
	mt := m.Type()
	if mt.NumIn() != 1 {
		return nil, false
	}
	if mt.NumOut() > 1 || (mt.NumOut() == 1 && mt.Out(0) != errorType) {
		return nil, false
	}

	argType := mt.In(0)
	return func(value any) error {
		arg, err := convert(value, argType)
		if err != nil {
			return &AttributeError{Name: name, Holder: typeName(holder), Err: err}
		}
		out := m.Call([]reflect.Value{arg})
		if len(out) == 1 {
			if err, _ := out[0].Interface().(error); err != nil {
				return err
			}
		}
		return nil
	}, true
}

// FieldGetter finds an exported struct field.
func FieldGetter(holder any, name string) (func() (any, error), bool) {
	f, ok := field(holder, name)
	if !ok || !f.CanInterface() {
		return nil, false
	}
	return func() (any, error) {
		return f.Interface(), nil
	}, true
}

// FieldSetter finds an exported, addressable struct field.
func FieldSetter(holder any, name string) (func(value any) error, bool) {
	f, ok := field(holder, name)
	if !ok || !f.CanSet() {
		return nil, false
	}
	return func(value any) error {
		v, err := convert(value, f.Type())
		if err != nil {
			return &AttributeError{Name: name, Holder: typeName(holder), Err: err}
		}
		f.Set(v)
		return nil
	}, true
}

func field(holder any, name string) (reflect.Value, bool) {
	rv := reflect.ValueOf(holder)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	f := rv.FieldByName(exportName(name))
	if !f.IsValid() {
		return reflect.Value{}, false
	}
	return f, true
}

// mapGetter reads an existing key from a string-keyed map.
func mapGetter(holder any, name string) (func() (any, error), bool) {
	rv := reflect.ValueOf(holder)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	key := reflect.ValueOf(name).Convert(rv.Type().Key())
	if !rv.MapIndex(key).IsValid() {
		return nil, false
	}
	return func() (any, error) {
		v := rv.MapIndex(key)
		if !v.IsValid() {
			return nil, nil
		}
		return v.Interface(), nil
	}, true
}

// mapSetter writes a key of a string-keyed map, creating it if needed.
func mapSetter(holder any, name string) (func(value any) error, bool) {
	rv := reflect.ValueOf(holder)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	key := reflect.ValueOf(name).Convert(rv.Type().Key())
	elem := rv.Type().Elem()
	return func(value any) error {
		v, err := convert(value, elem)
		if err != nil {
			return &AttributeError{Name: name, Holder: typeName(holder), Err: err}
		}
		rv.SetMapIndex(key, v)
		return nil
	}, true
}

// convert checks that value can be assigned to t. No conversion beyond
// plain assignability is attempted; nil is accepted for nillable types.
func convert(value any, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: cannot assign nil to %s", ErrTypeMismatch, t)
	}
	rv := reflect.ValueOf(value)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("%w: cannot assign %s to %s", ErrTypeMismatch, rv.Type(), t)
	}
	return rv, nil
}

// exportName upper-cases the first rune of name.
func exportName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", v)
}

package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Func is a compiled Lua function bound to its State.
type Func struct {
	state  *State
	fn     *lua.LFunction
	source string
}

// Source returns the code or global name the function came from.
func (f *Func) Source() string {
	return f.source
}

// Call invokes the function and returns its first result.
func (f *Func) Call(args ...any) (any, error) {
	return f.state.call(f.fn, args...)
}

// Test invokes the function and applies Lua truthiness to the result: only
// nil and false are false.
func (f *Func) Test(args ...any) (bool, error) {
	v, err := f.Call(args...)
	if err != nil {
		return false, err
	}
	b, isBool := v.(bool)
	return v != nil && (!isBool || b), nil
}

// Compare invokes the function as a comparator. A numeric result is used by
// sign. A boolean result is read as "a sorts before b", Lua table.sort
// style, and the function is called again with swapped arguments to detect
// equality.
func (f *Func) Compare(a, b any) (int, error) {
	v, err := f.Call(a, b)
	if err != nil {
		return 0, err
	}
	switch r := v.(type) {
	case int:
		return sign(float64(r)), nil
	case float64:
		return sign(r), nil
	case bool:
		if r {
			return -1, nil
		}
		after, err := f.Call(b, a)
		if err != nil {
			return 0, err
		}
		if after == true {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("%w: comparator returned %T", ErrResult, v)
}

// Predicate adapts f into a view predicate. Errors are passed to onError,
// when set, and the element is treated as not matching.
func Predicate[T any](f *Func, onError func(error)) func(T) bool {
	return func(item T) bool {
		ok, err := f.Test(item)
		if err != nil {
			report(onError, err)
			return false
		}
		return ok
	}
}

// Comparator adapts f into a view comparator. Errors are passed to onError,
// when set, and the elements compare equal.
func Comparator[T any](f *Func, onError func(error)) func(a, b T) int {
	return func(a, b T) int {
		c, err := f.Compare(a, b)
		if err != nil {
			report(onError, err)
			return 0
		}
		return c
	}
}

func report(onError func(error), err error) {
	if onError != nil {
		onError(err)
	}
}

func sign(f float64) int {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	}
	return 0
}

package collection

import (
	"cmp"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Natural orders values by their natural order.
func Natural[T cmp.Ordered]() func(a, b T) int {
	return cmp.Compare[T]
}

// Reverse inverts a comparator.
func Reverse[T any](compare func(a, b T) int) func(a, b T) int {
	return func(a, b T) int {
		return compare(b, a)
	}
}

// ByKey orders values by an extracted key.
func ByKey[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

// Collating orders strings using the collation rules of a language, so
// that for example "Äpfel" sorts next to "Apfel" rather than after "Z".
// The returned comparator is not safe for concurrent use.
func Collating(tag language.Tag, opts ...collate.Option) func(a, b string) int {
	c := collate.New(tag, opts...)
	return c.CompareString
}

// CollatingBy is like Collating for values with a string key.
func CollatingBy[T any](tag language.Tag, key func(T) string, opts ...collate.Option) func(a, b T) int {
	compare := Collating(tag, opts...)
	return func(a, b T) int {
		return compare(key(a), key(b))
	}
}

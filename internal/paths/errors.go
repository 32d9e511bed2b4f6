package paths

import (
	"errors"
	"fmt"
)

// Sentinel errors for path resolution.
var (
	// ErrPathResolution is matched by every ResolutionError.
	ErrPathResolution = errors.New("path resolution failed")

	// ErrEmptyPath is returned for empty paths or empty segments.
	ErrEmptyPath = errors.New("empty path")

	// ErrNilHolder is returned when a segment evaluates to nil before the
	// path is exhausted.
	ErrNilHolder = errors.New("nil holder")

	// ErrNoAttribute is returned when no accessor or field matches a name.
	ErrNoAttribute = errors.New("no such attribute")

	// ErrTypeMismatch is returned when a value cannot be assigned to an
	// attribute.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ResolutionError describes a path that could not be walked.
type ResolutionError struct {
	// Path is the full path being resolved.
	Path string

	// Segment is the segment that failed (may be empty).
	Segment string

	// Holder is the type name of the object the segment was looked up on.
	Holder string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	if e.Segment != "" {
		return fmt.Sprintf("resolving %q: segment %q on %s: %v", e.Path, e.Segment, e.Holder, e.Err)
	}
	return fmt.Sprintf("resolving %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match ResolutionError with ErrPathResolution.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrPathResolution
}

// AttributeError describes a failed attribute read or write.
type AttributeError struct {
	Name   string
	Holder string
	Err    error
}

// Error implements the error interface.
func (e *AttributeError) Error() string {
	return fmt.Sprintf("attribute %q on %s: %v", e.Name, e.Holder, e.Err)
}

// Unwrap returns the underlying error.
func (e *AttributeError) Unwrap() error {
	return e.Err
}

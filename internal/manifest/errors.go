package manifest

import (
	"errors"
	"fmt"
)

// Errors returned when loading manifests.
var (
	// ErrUnknownFormat is returned for unsupported file extensions.
	ErrUnknownFormat = errors.New("unknown manifest format")

	// ErrDuplicate is returned in strict mode for repeated descriptors.
	ErrDuplicate = errors.New("duplicate descriptor")

	// ErrInvalid is matched by every ParseError and EntryError.
	ErrInvalid = errors.New("invalid manifest")
)

// ParseError describes a manifest that could not be decoded.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches ErrInvalid.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalid
}

// EntryError describes an invalid descriptor.
type EntryError struct {
	Path  string
	Index int
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s: binding %d: %v", e.Path, e.Index, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// Is matches ErrInvalid.
func (e *EntryError) Is(target error) bool {
	return target == ErrInvalid
}

package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration loading.
var (
	// ErrInvalidValue indicates a setting that cannot be parsed or is out of
	// range.
	ErrInvalidValue = errors.New("invalid setting value")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// SettingError describes an invalid setting.
type SettingError struct {
	// Setting is the dotted setting name, such as "script.timeout".
	Setting string
	// Source is where the value came from: a file path or an environment
	// variable name.
	Source string
	// Value is the rejected value.
	Value any
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *SettingError) Error() string {
	return fmt.Sprintf("%s (from %s): invalid value %v: %v", e.Setting, e.Source, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *SettingError) Unwrap() error {
	return e.Err
}

// Is matches ErrInvalidValue.
func (e *SettingError) Is(target error) bool {
	return target == ErrInvalidValue
}

package binding

import (
	"errors"
	"fmt"
)

// Sentinel errors for binding construction and propagation.
var (
	// ErrAccessorNotFound is returned when neither a rule nor generic
	// attribute access provides a supplier or consumer.
	ErrAccessorNotFound = errors.New("accessor not found")

	// ErrTriggerNotFound is returned when no trigger rule matches.
	ErrTriggerNotFound = errors.New("trigger not found")

	// ErrValueTransfer is matched by every TransferError.
	ErrValueTransfer = errors.New("value transfer failed")

	// ErrConstruction is matched by every ConstructionError.
	ErrConstruction = errors.New("binding construction failed")

	// ErrInvalidRule is returned when registering a rule without a
	// matcher or factory.
	ErrInvalidRule = errors.New("invalid rule")

	// ErrInvalidDescriptor is returned for descriptors missing a path or
	// carrying an unknown type.
	ErrInvalidDescriptor = errors.New("invalid descriptor")

	// ErrClosed is returned when operating on a closed binding or engine.
	ErrClosed = errors.New("binding closed")
)

// LookupError reports a registry lookup that found nothing.
type LookupError struct {
	// Kind is the registry kind: "supplier", "consumer" or "trigger".
	Kind string

	// Holder is the type name of the object looked up.
	Holder string

	// Attribute is the attribute looked up.
	Attribute string

	// Err is ErrAccessorNotFound or ErrTriggerNotFound.
	Err error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("no %s for attribute %q on %s: %v", e.Kind, e.Attribute, e.Holder, e.Err)
}

// Unwrap returns the underlying error.
func (e *LookupError) Unwrap() error {
	return e.Err
}

// TransferError wraps a failure to read from a supplier or write to a
// consumer during Apply.
type TransferError struct {
	// Binding is the ID of the binding being applied.
	Binding string

	// Direction is the direction being applied.
	Direction Direction

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *TransferError) Error() string {
	return fmt.Sprintf("binding %s: apply %s: %v", e.Binding, e.Direction, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransferError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match TransferError with ErrValueTransfer.
func (e *TransferError) Is(target error) bool {
	return target == ErrValueTransfer
}

// ConstructionError wraps the first failure of a Bind call.
type ConstructionError struct {
	// Index is the position of the failing descriptor.
	Index int

	// Descriptor is the failing descriptor.
	Descriptor Descriptor

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("descriptor %d (%s): %v", e.Index, e.Descriptor, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match ConstructionError with ErrConstruction.
func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstruction
}

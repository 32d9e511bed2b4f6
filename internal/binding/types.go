package binding

import (
	"fmt"
	"strings"
)

// Direction selects which link of a binding is applied.
type Direction int

const (
	// Up applies the source value onto the target.
	Up Direction = iota

	// Down applies the target value onto the source.
	Down
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Up {
		return Down
	}
	return Up
}

// Type declares which way a descriptor synchronizes.
type Type int

const (
	// SourceToTarget keeps the target in sync with the source.
	SourceToTarget Type = iota

	// TargetToSource keeps the source in sync with the target.
	TargetToSource

	// BiDirectional keeps both ends in sync.
	BiDirectional
)

var typeNames = map[Type]string{
	SourceToTarget: "source_to_target",
	TargetToSource: "target_to_source",
	BiDirectional:  "bi_directional",
}

// String returns the type name as used in manifests.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseType parses a type name. Case, dashes and underscores are ignored,
// so "SOURCE_TO_TARGET", "source-to-target" and "bidirectional" are all
// accepted. An empty name yields SourceToTarget.
func ParseType(s string) (Type, error) {
	key := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(s))
	switch key {
	case "", "sourcetotarget":
		return SourceToTarget, nil
	case "targettosource":
		return TargetToSource, nil
	case "bidirectional", "both":
		return BiDirectional, nil
	default:
		return SourceToTarget, fmt.Errorf("%w: unknown type %q", ErrInvalidDescriptor, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if _, ok := typeNames[t]; !ok {
		return nil, fmt.Errorf("%w: unknown type %d", ErrInvalidDescriptor, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Descriptor declares one binding between a member of a host object and a
// target.
type Descriptor struct {
	// Member names the host attribute whose current value is the logical
	// source. Empty means the host itself.
	Member string `toml:"member" yaml:"member"`

	// Source is the dotted path resolved against the logical source.
	Source string `toml:"source" yaml:"source"`

	// Target is the dotted path resolved against the target object.
	Target string `toml:"target" yaml:"target"`

	// Type selects the synchronization direction.
	Type Type `toml:"type" yaml:"type"`
}

// String returns a compact description such as "name: value -> text".
func (d Descriptor) String() string {
	arrow := "->"
	switch d.Type {
	case TargetToSource:
		arrow = "<-"
	case BiDirectional:
		arrow = "<->"
	}
	if d.Member == "" {
		return fmt.Sprintf("%s %s %s", d.Source, arrow, d.Target)
	}
	return fmt.Sprintf("%s: %s %s %s", d.Member, d.Source, arrow, d.Target)
}

// Validate reports whether the descriptor can be bound.
func (d Descriptor) Validate() error {
	if d.Source == "" {
		return fmt.Errorf("%w: empty source path", ErrInvalidDescriptor)
	}
	if d.Target == "" {
		return fmt.Errorf("%w: empty target path", ErrInvalidDescriptor)
	}
	if _, ok := typeNames[d.Type]; !ok {
		return fmt.Errorf("%w: unknown type %d", ErrInvalidDescriptor, int(d.Type))
	}
	return nil
}

// Bindable is implemented by hosts that declare their bindings.
type Bindable interface {
	Bindings() []Descriptor
}

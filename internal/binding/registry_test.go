package binding

import (
	"errors"
	"slices"
	"testing"
)

func TestRegistry_Ordering(t *testing.T) {
	r := NewRegistry[string]("test", ErrAccessorNotFound, nil)
	rule := func(name string) Rule[string] {
		return Rule[string]{
			Name:    name,
			Match:   func(any, string) bool { return true },
			Factory: func(any, string) (string, error) { return name, nil },
		}
	}

	tests := []struct {
		rule string
		opts []RegisterOption
		want []string
	}{
		{"a", nil, []string{"a"}},
		{"b", nil, []string{"a", "b"}},
		{"c", []RegisterOption{At(0)}, []string{"c", "a", "b"}},
		{"d", []RegisterOption{At(2)}, []string{"c", "a", "d", "b"}},
		{"e", []RegisterOption{At(99)}, []string{"c", "a", "d", "b", "e"}},
		{"f", []RegisterOption{At(-1)}, []string{"c", "a", "d", "b", "e", "f"}},
	}

	for _, tt := range tests {
		if err := r.Register(rule(tt.rule), tt.opts...); err != nil {
			t.Fatalf("Register(%s) error = %v", tt.rule, err)
		}
		if got := r.Names(); !slices.Equal(got, tt.want) {
			t.Errorf("after %s Names() = %v, want %v", tt.rule, got, tt.want)
		}
	}

	got, err := r.Create(nil, "")
	if err != nil || got != "c" {
		t.Errorf("Create() = %q, %v; want first rule", got, err)
	}
}

func TestRegistry_Errors(t *testing.T) {
	r := NewRegistry[int]("test", ErrTriggerNotFound, nil)

	if err := r.Register(Rule[int]{Name: "broken"}); !errors.Is(err, ErrInvalidRule) {
		t.Errorf("expected ErrInvalidRule, got %v", err)
	}

	if _, err := r.Create(struct{}{}, "x"); !errors.Is(err, ErrTriggerNotFound) {
		t.Errorf("expected ErrTriggerNotFound, got %v", err)
	}

	factoryErr := errors.New("factory failed")
	_ = r.Register(Rule[int]{
		Name:    "failing",
		Match:   func(any, string) bool { return true },
		Factory: func(any, string) (int, error) { return 0, factoryErr },
	})
	if _, err := r.Create(1, "x"); !errors.Is(err, factoryErr) {
		t.Errorf("expected factory error, got %v", err)
	}

	if r.Unregister("missing") {
		t.Error("Unregister(missing) = true")
	}
	if !r.Unregister("failing") || r.Len() != 0 {
		t.Error("Unregister(failing) did not remove the rule")
	}
}

func TestRegistry_Fallback(t *testing.T) {
	r := NewRegistry("test", ErrAccessorNotFound, func(obj any, attr string) (string, bool) {
		return "fallback:" + attr, attr != "none"
	})

	if got, err := r.Create(nil, "x"); err != nil || got != "fallback:x" {
		t.Errorf("Create() = %q, %v", got, err)
	}
	if _, err := r.Create(nil, "none"); !errors.Is(err, ErrAccessorNotFound) {
		t.Errorf("expected ErrAccessorNotFound, got %v", err)
	}
}

func TestForType(t *testing.T) {
	type widget struct{ text string }
	rule := SupplierRule("widget", func(w *widget, attr string) any {
		return attr + "=" + w.text
	}, "text", "label")

	tests := []struct {
		obj  any
		attr string
		want bool
	}{
		{&widget{}, "text", true},
		{&widget{}, "label", true},
		{&widget{}, "color", false},
		{widget{}, "text", false},
		{"string", "text", false},
	}
	for _, tt := range tests {
		if got := rule.Match(tt.obj, tt.attr); got != tt.want {
			t.Errorf("Match(%T, %q) = %v, want %v", tt.obj, tt.attr, got, tt.want)
		}
	}

	supply, err := rule.Factory(&widget{text: "hi"}, "text")
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := supply(); v != "text=hi" {
		t.Errorf("supplier returned %v", v)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr bool
	}{
		{"", SourceToTarget, false},
		{"SOURCE_TO_TARGET", SourceToTarget, false},
		{"target-to-source", TargetToSource, false},
		{"BI_DIRECTIONAL", BiDirectional, false},
		{"bidirectional", BiDirectional, false},
		{"sideways", SourceToTarget, true},
	}

	for _, tt := range tests {
		got, err := ParseType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseType(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	var typ Type
	if err := typ.UnmarshalText([]byte("bi-directional")); err != nil || typ != BiDirectional {
		t.Errorf("UnmarshalText() = %v, %v", typ, err)
	}
	if text, err := TargetToSource.MarshalText(); err != nil || string(text) != "target_to_source" {
		t.Errorf("MarshalText() = %s, %v", text, err)
	}
}

func TestDescriptor_String(t *testing.T) {
	tests := []struct {
		d    Descriptor
		want string
	}{
		{Descriptor{Member: "name", Source: "value", Target: "text"}, "name: value -> text"},
		{Descriptor{Source: "a", Target: "b", Type: TargetToSource}, "a <- b"},
		{Descriptor{Source: "a", Target: "b", Type: BiDirectional}, "a <-> b"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

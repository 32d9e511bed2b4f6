package binding

import (
	"errors"
	"testing"

	"github.com/dshills/bindkit/internal/collection"
	"github.com/dshills/bindkit/internal/paths"
	"github.com/dshills/bindkit/internal/property"
)

type form struct {
	Label   *property.Property[string]
	Enabled *property.Property[bool]
	Count   *property.Property[int]
}

func newForm() *form {
	return &form{
		Label:   property.Of[string]("label"),
		Enabled: property.Of[bool]("enabled"),
		Count:   property.Of[int]("count"),
	}
}

type model struct {
	Name   *property.Property[string]
	Active *property.Property[bool]
	Items  *collection.List[string]

	descriptors []Descriptor
}

func newModel(descriptors ...Descriptor) *model {
	return &model{
		Name:        property.New("name", nil, "Ada"),
		Active:      property.New("active", nil, true),
		Items:       collection.New[string](),
		descriptors: descriptors,
	}
}

func (m *model) Bindings() []Descriptor {
	return m.descriptors
}

func TestEngine_Bind(t *testing.T) {
	m := newModel(
		Descriptor{Member: "Name", Source: paths.Value, Target: "label.value", Type: SourceToTarget},
		Descriptor{Member: "Active", Source: paths.Value, Target: "enabled.value", Type: BiDirectional},
		Descriptor{Member: "Items", Source: paths.Size, Target: "count.value"},
	)
	f := newForm()

	bindings, err := NewEngine().Bind(m, f)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if len(bindings) != 3 {
		t.Fatalf("got %d bindings, want 3", len(bindings))
	}

	// initial synchronization
	if f.Label.Get() != "Ada" || !f.Enabled.Get() {
		t.Errorf("initial apply: label=%q enabled=%v", f.Label.Get(), f.Enabled.Get())
	}

	m.Name.Set("Grace")
	if f.Label.Get() != "Grace" {
		t.Errorf("label = %q, want Grace", f.Label.Get())
	}

	f.Enabled.Set(false)
	if m.Active.Get() {
		t.Error("bi-directional binding did not write back")
	}

	m.Items.AddAll("a", "b")
	if f.Count.Get() != 2 {
		t.Errorf("count = %d, want 2", f.Count.Get())
	}
}

func TestEngine_BindTargetToSource(t *testing.T) {
	m := newModel(Descriptor{Member: "Name", Source: paths.Value, Target: "label.value", Type: TargetToSource})
	f := newForm()
	f.Label.Set("from form")

	if _, err := NewEngine().Bind(m, f); err != nil {
		t.Fatal(err)
	}
	if m.Name.Get() != "from form" {
		t.Errorf("initial apply: name = %q", m.Name.Get())
	}

	f.Label.Set("edited")
	if m.Name.Get() != "edited" {
		t.Errorf("name = %q, want edited", m.Name.Get())
	}

	m.Name.Set("ignored")
	if f.Label.Get() != "edited" {
		t.Error("target-to-source binding propagated source changes")
	}
}

func TestEngine_BindSameMemberTwice(t *testing.T) {
	type twoLabels struct {
		First  *property.Property[string]
		Second *property.Property[string]
	}
	m := newModel(
		Descriptor{Member: "Name", Source: paths.Value, Target: "first.value"},
		Descriptor{Member: "Name", Source: paths.Value, Target: "second.value"},
	)
	target := &twoLabels{First: property.Of[string]("first"), Second: property.Of[string]("second")}

	if _, err := NewEngine().Bind(m, target); err != nil {
		t.Fatal(err)
	}
	m.Name.Set("Lin")
	if target.First.Get() != "Lin" || target.Second.Get() != "Lin" {
		t.Errorf("first=%q second=%q", target.First.Get(), target.Second.Get())
	}
}

func TestEngine_BindFailureIsAtomic(t *testing.T) {
	tests := []struct {
		name    string
		broken  Descriptor
		wantErr error
	}{
		{"missing attribute", Descriptor{Member: "Name", Source: paths.Value, Target: "label.missing"}, ErrAccessorNotFound},
		{"unresolvable path", Descriptor{Member: "Name", Source: paths.Value, Target: "nowhere.value"}, paths.ErrPathResolution},
		{"unknown member", Descriptor{Member: "Nope", Source: paths.Value, Target: "label.value"}, paths.ErrPathResolution},
		{"empty target", Descriptor{Member: "Name", Source: paths.Value}, ErrInvalidDescriptor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(
				Descriptor{Member: "Active", Source: paths.Value, Target: "enabled.value", Type: BiDirectional},
				tt.broken,
			)
			f := newForm()
			e := NewEngine()

			bindings, err := e.Bind(m, f)
			if err == nil {
				t.Fatal("expected error")
			}
			if bindings != nil {
				t.Error("no bindings should be returned on failure")
			}
			if !errors.Is(err, ErrConstruction) || !errors.Is(err, tt.wantErr) {
				t.Errorf("error %v does not match ErrConstruction and %v", err, tt.wantErr)
			}
			var ce *ConstructionError
			if !errors.As(err, &ce) || ce.Index != 1 {
				t.Errorf("ConstructionError index = %+v", ce)
			}

			if len(e.Bindings()) != 0 {
				t.Errorf("%d bindings left live", len(e.Bindings()))
			}
			if m.Active.Observers() != 0 || f.Enabled.Observers() != 0 {
				t.Error("earlier binding still subscribed")
			}
		})
	}
}

func TestEngine_TriggerNotFound(t *testing.T) {
	type plain struct{ Value string }
	source := &plain{Value: "static"}
	target := property.Of[string]("target")

	_, err := NewEngine().Unidirectional(source, "value", target, paths.Value)
	if !errors.Is(err, ErrTriggerNotFound) {
		t.Fatalf("expected ErrTriggerNotFound, got %v", err)
	}
	var le *LookupError
	if !errors.As(err, &le) || le.Kind != "trigger" || le.Attribute != "value" {
		t.Errorf("unexpected LookupError %+v", le)
	}
}

func TestEngine_ManualTriggerRule(t *testing.T) {
	type plain struct {
		Value string
		fire  func()
	}
	source := &plain{Value: "a"}
	target := property.Of[string]("target")

	e := NewEngine()
	err := e.Triggers().Register(TriggerRule("plain", func(p *plain, _ string) Trigger {
		return NewTrigger("plain", func(fire func()) (func(), error) {
			p.fire = fire
			return func() { p.fire = nil }, nil
		})
	}))
	if err != nil {
		t.Fatal(err)
	}

	b, err := e.Unidirectional(source, "value", target, paths.Value)
	if err != nil {
		t.Fatal(err)
	}
	source.Value = "b"
	source.fire()
	if target.Get() != "b" {
		t.Errorf("target = %q, want b", target.Get())
	}

	b.Close()
	if source.fire != nil {
		t.Error("trigger not cancelled on Close")
	}
}

func TestEngine_MapKeys(t *testing.T) {
	settings := collection.NewMap[string]()
	settings.Put("title", "draft")
	title := property.Of[string]("title")

	e := NewEngine()
	b, err := e.Bidirectional(settings, "title", title, paths.Value)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Apply(Up); err != nil {
		t.Fatal(err)
	}
	if title.Get() != "draft" {
		t.Errorf("title = %q", title.Get())
	}

	settings.Put("title", "final")
	if title.Get() != "final" {
		t.Errorf("title = %q, want final", title.Get())
	}
	title.Set("edited")
	if v, _ := settings.Get("title"); v != "edited" {
		t.Errorf("map title = %q, want edited", v)
	}
}

func TestEngine_CollectionAsModel(t *testing.T) {
	items := collection.From([]int{1, 2})
	model := property.Of[collection.Watchable]("model")

	b, err := NewEngine().Unidirectional(items, paths.Model, model, paths.Value)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Apply(Up); err != nil {
		t.Fatal(err)
	}
	if model.Get() != collection.Watchable(items) {
		t.Error("model should hold the collection itself")
	}
}

func TestEngine_RulePriority(t *testing.T) {
	e := NewEngine()
	p := property.New("p", nil, 1)

	override := SupplierRule("doubled", func(h *property.Property[int], _ string) any {
		return h.Get() * 2
	}, paths.Value)

	if err := e.Suppliers().Register(override); err != nil {
		t.Fatal(err)
	}
	supply, err := e.Suppliers().Create(p, paths.Value)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := supply(); v != 1 {
		t.Errorf("appended rule should lose to the default, got %v", v)
	}

	e.Suppliers().Unregister("doubled")
	if err := e.Suppliers().Register(override, At(0)); err != nil {
		t.Fatal(err)
	}
	supply, err = e.Suppliers().Create(p, paths.Value)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := supply(); v != 2 {
		t.Errorf("rule at position 0 should win, got %v", v)
	}
	if e.Suppliers().Names()[0] != "doubled" {
		t.Errorf("Names() = %v", e.Suppliers().Names())
	}
}

func TestEngine_WithoutDefaults(t *testing.T) {
	e := NewEngine(WithoutDefaults())
	if e.Suppliers().Len() != 0 || e.Consumers().Len() != 0 || e.Triggers().Len() != 0 {
		t.Fatal("expected empty registries")
	}

	p := property.Of[int]("p")
	// generic access still finds the value attribute
	if _, err := e.Suppliers().Create(p, paths.Value); err != nil {
		t.Errorf("supplier fallback: %v", err)
	}
	if _, err := e.Triggers().Create(p, paths.Value); !errors.Is(err, ErrTriggerNotFound) {
		t.Errorf("expected ErrTriggerNotFound, got %v", err)
	}
}

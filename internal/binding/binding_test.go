package binding

import (
	"errors"
	"testing"

	"github.com/dshills/bindkit/internal/notify"
	"github.com/dshills/bindkit/internal/paths"
	"github.com/dshills/bindkit/internal/property"
)

func countChanges(src notify.Source) *int {
	n := 0
	src.Subscribe(func(notify.Change) { n++ })
	return &n
}

func TestUnidirectional_AutoPropagates(t *testing.T) {
	e := NewEngine()
	source := property.Of[string]("source")
	target := property.Of[string]("target")

	b, err := e.Unidirectional(source, paths.Value, target, paths.Value)
	if err != nil {
		t.Fatalf("Unidirectional() error = %v", err)
	}
	if b.Bidirectional() {
		t.Error("expected a one-way binding")
	}

	source.Set("x")
	if target.Get() != "x" {
		t.Errorf("target = %q, want x", target.Get())
	}

	target.Set("y")
	if source.Get() != "x" {
		t.Errorf("one-way binding wrote back to source: %q", source.Get())
	}
}

func TestBidirectional_NoPingPong(t *testing.T) {
	e := NewEngine()
	source := property.Of[bool]("source")
	target := property.Of[bool]("target")
	sourceChanges := countChanges(source)
	targetChanges := countChanges(target)

	b, err := e.Bidirectional(source, paths.Value, target, paths.Value)
	if err != nil {
		t.Fatalf("Bidirectional() error = %v", err)
	}
	if !b.Bidirectional() {
		t.Fatal("expected both links")
	}

	source.Set(true)
	if !target.Get() {
		t.Error("source change did not reach target")
	}
	if *sourceChanges != 1 || *targetChanges != 1 {
		t.Errorf("changes source=%d target=%d, want 1 and 1", *sourceChanges, *targetChanges)
	}

	target.Set(false)
	if source.Get() {
		t.Error("target change did not reach source")
	}
	if *sourceChanges != 2 || *targetChanges != 2 {
		t.Errorf("changes source=%d target=%d, want 2 and 2", *sourceChanges, *targetChanges)
	}
}

func TestApply_SuppressesReentry(t *testing.T) {
	var b *Binding
	nested := 0
	consumer := func(any) error {
		nested++
		return b.Apply(Up)
	}

	var err error
	b, err = NewBuilder().
		WithSourceSupplier(func() (any, error) { return 1, nil }).
		WithTargetConsumer(consumer).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	if err := b.Apply(Up); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if nested != 1 {
		t.Errorf("consumer ran %d times, want 1", nested)
	}
	if b.Suppressed() {
		t.Error("suppressor left open after Apply")
	}
}

func TestApply_ReleasesOnPanic(t *testing.T) {
	b, err := NewBuilder().
		WithSourceSupplier(func() (any, error) { return 1, nil }).
		WithTargetConsumer(func(any) error { panic("boom") }).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	func() {
		defer func() { _ = recover() }()
		_ = b.Apply(Up)
	}()

	if b.Suppressed() {
		t.Error("suppressor left open after panic")
	}
}

func TestApply_MissingLinkIsNoOp(t *testing.T) {
	b, err := NewBuilder().Build()
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Apply(Down); err != nil {
		t.Errorf("Apply(Down) = %v", err)
	}
	if err := b.Apply(Direction(7)); err != nil {
		t.Errorf("Apply(7) = %v", err)
	}
	if _, ok := b.Link(Up); ok {
		t.Error("unexpected Up link")
	}
}

func TestApply_TransferError(t *testing.T) {
	e := NewEngine()
	source := property.New("source", nil, "text")
	target := property.Of[int]("target")

	b, err := e.Unidirectional(source, paths.Value, target, paths.Value)
	if err != nil {
		t.Fatal(err)
	}

	err = b.Apply(Up)
	if !errors.Is(err, ErrValueTransfer) {
		t.Fatalf("expected ErrValueTransfer, got %v", err)
	}
	if !errors.Is(err, paths.ErrTypeMismatch) {
		t.Errorf("expected wrapped ErrTypeMismatch, got %v", err)
	}
	var te *TransferError
	if !errors.As(err, &te) || te.Direction != Up || te.Binding != b.ID() {
		t.Errorf("unexpected TransferError %+v", te)
	}
}

func TestTrigger_ReportsApplyErrors(t *testing.T) {
	var got []error
	e := NewEngine(WithErrorHandler(func(_ *Binding, d Direction, err error) {
		if d != Up {
			t.Errorf("direction = %v", d)
		}
		got = append(got, err)
	}))
	source := property.Of[string]("source")
	target := property.Of[int]("target")

	if _, err := e.Unidirectional(source, paths.Value, target, paths.Value); err != nil {
		t.Fatal(err)
	}
	source.Set("oops")

	if len(got) != 1 || !errors.Is(got[0], ErrValueTransfer) {
		t.Errorf("handler errors = %v", got)
	}
}

func TestTrigger_RegisterIsIdempotent(t *testing.T) {
	p := property.Of[int]("p")
	applied := 0
	b, err := NewBuilder().
		WithSourceSupplier(func() (any, error) { return p.Get(), nil }).
		WithTargetConsumer(func(any) error { applied++; return nil }).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	trig := PropertyTrigger(p)
	r1, err := trig.Register(b, Up)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := trig.Register(b, Up)
	if err != nil {
		t.Fatal(err)
	}
	if r1 != r2 {
		t.Error("second registration should return the first")
	}
	if p.Observers() != 1 {
		t.Errorf("Observers() = %d, want 1", p.Observers())
	}

	p.Set(1)
	if applied != 1 {
		t.Errorf("applied %d times, want 1", applied)
	}

	down, err := trig.Register(b, Down)
	if err != nil {
		t.Fatal(err)
	}
	if down == r1 || len(b.Registrations()) != 2 {
		t.Error("a different direction is a separate registration")
	}

	r1.Close()
	r1.Close()
	if len(b.Registrations()) != 1 || p.Observers() != 1 {
		t.Errorf("registrations=%d observers=%d after Close", len(b.Registrations()), p.Observers())
	}
}

func TestBuild_FailedTriggerLeavesNothingRegistered(t *testing.T) {
	p := property.Of[int]("p")
	failing := NewTrigger("failing", func(func()) (func(), error) {
		return nil, errors.New("cannot subscribe")
	})

	_, err := NewBuilder().
		WithSourceSupplier(func() (any, error) { return p.Get(), nil }).
		WithTargetConsumer(func(any) error { return nil }).
		WithSourceTrigger(PropertyTrigger(p)).
		WithTargetTrigger(failing).
		Build()
	if err == nil {
		t.Fatal("expected error")
	}
	if p.Observers() != 0 {
		t.Errorf("Observers() = %d, want 0", p.Observers())
	}
}

func TestBinding_Close(t *testing.T) {
	e := NewEngine()
	source := property.Of[int]("source")
	target := property.Of[int]("target")

	b, err := e.Bidirectional(source, paths.Value, target, paths.Value)
	if err != nil {
		t.Fatal(err)
	}
	if len(e.Bindings()) != 1 {
		t.Fatalf("Bindings() = %d, want 1", len(e.Bindings()))
	}

	b.Close()
	b.Close()

	source.Set(5)
	if target.Get() != 0 {
		t.Error("closed binding still propagates")
	}
	if source.Observers() != 0 || target.Observers() != 0 {
		t.Errorf("observers left: source=%d target=%d", source.Observers(), target.Observers())
	}
	if len(e.Bindings()) != 0 {
		t.Errorf("engine still tracks %d bindings", len(e.Bindings()))
	}
	if !errors.Is(b.Apply(Up), ErrClosed) {
		t.Error("Apply on a closed binding should return ErrClosed")
	}
	if _, err := PropertyTrigger(source).Register(b, Up); !errors.Is(err, ErrClosed) {
		t.Errorf("Register on a closed binding = %v", err)
	}
}

func TestEngine_Close(t *testing.T) {
	e := NewEngine()
	a := property.Of[int]("a")
	b := property.Of[int]("b")
	c := property.Of[int]("c")

	if _, err := e.Unidirectional(a, paths.Value, b, paths.Value); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Unidirectional(b, paths.Value, c, paths.Value); err != nil {
		t.Fatal(err)
	}

	a.Set(1)
	if c.Get() != 1 {
		t.Errorf("chained binding: c = %d, want 1", c.Get())
	}

	e.Close()
	a.Set(2)
	if b.Get() != 1 {
		t.Error("binding survived Engine.Close")
	}
	if _, err := e.Unidirectional(a, paths.Value, b, paths.Value); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed from closed engine, got %v", err)
	}
}

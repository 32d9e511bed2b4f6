package collection

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestSortedView_Ordering(t *testing.T) {
	source := New[string]()
	view := Sort[string](source, strings.Compare)

	for _, s := range []string{"D", "E", "F", "B", "A", "C", "G", "C1"} {
		source.Add(s)
	}

	if view.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", view.Len())
	}
	for i := 0; i+1 < view.Len(); i++ {
		if strings.Compare(view.Get(i), view.Get(i+1)) > 0 {
			t.Errorf("view[%d]=%q sorts after view[%d]=%q", i, view.Get(i), i+1, view.Get(i+1))
		}
	}
	if view.IndexOf("A") != 0 {
		t.Errorf("IndexOf(A) = %d, want 0", view.IndexOf("A"))
	}
	if view.IndexOf("C1") != 3 {
		t.Errorf("IndexOf(C1) = %d, want 3", view.IndexOf("C1"))
	}
}

func TestSortedView_Events(t *testing.T) {
	source := From([]int{30, 10})
	view := Sort[int](source, Natural[int]())
	rec := &recorder[int]{}
	view.AddListener(rec)

	source.AddAll(20, 40)

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	e := rec.events[0]
	if e.Kind() != Add {
		t.Errorf("Kind() = %v, want add", e.Kind())
	}
	if !slices.Equal(e.NewItems(), []int{20, 40}) || !slices.Equal(e.Indices(), []int{1, 3}) {
		t.Errorf("NewItems() = %v, Indices() = %v", e.NewItems(), e.Indices())
	}

	source.Remove(10)
	e = rec.last(t)
	if e.Kind() != Remove || !slices.Equal(e.Indices(), []int{0}) {
		t.Errorf("remove: kind=%v indices=%v", e.Kind(), e.Indices())
	}

	source.Clear()
	e = rec.last(t)
	if e.Kind() != Remove || len(e.OldItems()) != 3 || view.Len() != 0 {
		t.Errorf("clear: kind=%v old=%v len=%d", e.Kind(), e.OldItems(), view.Len())
	}
}

// checkAddIndices verifies that every index of an Add event points at the
// matching new item in the view after the change.
func checkAddIndices[T comparable](t *testing.T, view Observable[T], e ChangeEvent[T]) {
	t.Helper()
	if len(e.Indices()) != len(e.NewItems()) {
		t.Fatalf("%d indices for %d items", len(e.Indices()), len(e.NewItems()))
	}
	for k, i := range e.Indices() {
		if got := view.Get(i); got != e.NewItems()[k] {
			t.Errorf("index %d for %v points at %v", i, e.NewItems()[k], got)
		}
	}
}

func TestSortedView_AggregateIndices(t *testing.T) {
	tests := []struct {
		name    string
		initial []string
		add     []string
		want    []int
	}{
		{"descending", nil, []string{"C", "B", "A"}, []int{2, 1, 0}},
		{"interleaved", []string{"B", "D"}, []string{"E", "A", "C"}, []int{4, 0, 2}},
		{"ties", []string{"B"}, []string{"B", "A", "B"}, []int{2, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := From(tt.initial)
			view := Sort[string](source, strings.Compare)
			rec := &recorder[string]{}
			view.AddListener(rec)

			source.AddAll(tt.add...)

			e := rec.last(t)
			checkAddIndices[string](t, view, e)
			if !slices.Equal(e.Indices(), tt.want) {
				t.Errorf("Indices() = %v, want %v", e.Indices(), tt.want)
			}
		})
	}
}

func TestSortedView_ClearReportsPriorIndices(t *testing.T) {
	source := From([]string{"C", "A", "B"})
	view := Sort[string](source, strings.Compare)
	rec := &recorder[string]{}
	view.AddListener(rec)

	source.Clear()

	e := rec.last(t)
	if e.Kind() != Remove {
		t.Fatalf("Kind() = %v, want remove", e.Kind())
	}
	if !slices.Equal(e.OldItems(), []string{"A", "B", "C"}) || !slices.Equal(e.Indices(), []int{0, 1, 2}) {
		t.Errorf("OldItems() = %v, Indices() = %v", e.OldItems(), e.Indices())
	}
}

func TestSortedView_TiesInsertBeforeEqual(t *testing.T) {
	type entry struct {
		key   int
		label string
	}
	source := From([]entry{{1, "first"}, {2, "x"}})
	view := Sort[entry](source, ByKey(func(e entry) int { return e.key }))

	source.Add(entry{1, "second"})

	if got := view.Get(0).label; got != "second" {
		t.Errorf("view[0] = %q, want the later equal element first", got)
	}
	if got := view.Get(1).label; got != "first" {
		t.Errorf("view[1] = %q, want first", got)
	}
}

func TestSortedView_SourceReset(t *testing.T) {
	source := From([]int{3, 1, 2})
	view := Sort[int](source, Natural[int]())
	rec := &recorder[int]{}
	view.AddListener(rec)

	source.ReplaceAll(func(v int) int { return -v })

	if !slices.Equal(view.Items(), []int{-3, -2, -1}) {
		t.Errorf("Items() = %v", view.Items())
	}
	if len(rec.events) != 1 || rec.events[0].Kind() != Reset {
		t.Errorf("expected a single reset event, got %d events", len(rec.events))
	}
}

func TestSortedView_Set(t *testing.T) {
	source := From([]int{1, 2, 3})
	view := Sort[int](source, Natural[int]())

	old, err := view.Set(0, 10)
	if err != nil || old != 1 {
		t.Fatalf("Set() = %d, %v", old, err)
	}
	if !slices.Equal(view.Items(), []int{2, 3, 10}) {
		t.Errorf("Items() = %v", view.Items())
	}
	if !slices.Equal(source.Items(), []int{1, 2, 3}) {
		t.Error("Set must not modify the source")
	}
	if _, err := view.Set(3, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestSortedView_Close(t *testing.T) {
	source := From([]int{2, 1})
	view := Sort[int](source, Natural[int]())
	view.Close()

	source.Add(0)

	if !slices.Equal(view.Items(), []int{1, 2}) {
		t.Errorf("closed view changed: %v", view.Items())
	}
	if view.Source() != Observable[int](source) {
		t.Error("Source() mismatch")
	}
}

func TestComparators(t *testing.T) {
	tests := []struct {
		name    string
		compare func(a, b string) int
		input   []string
		want    []string
	}{
		{"natural", Natural[string](), []string{"b", "a", "c"}, []string{"a", "b", "c"}},
		{"reverse", Reverse(Natural[string]()), []string{"b", "a", "c"}, []string{"c", "b", "a"}},
		{"by length", ByKey(func(s string) int { return len(s) }), []string{"ccc", "a", "bb"}, []string{"a", "bb", "ccc"}},
		{"german collation", Collating(language.German), []string{"Zebra", "Äpfel", "Apfel"}, []string{"Apfel", "Äpfel", "Zebra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Sort[string](From(tt.input), tt.compare)
			if !slices.Equal(view.Items(), tt.want) {
				t.Errorf("Items() = %v, want %v", view.Items(), tt.want)
			}
		})
	}
}

func TestCollatingBy(t *testing.T) {
	type city struct{ name string }
	compare := CollatingBy(language.Swedish, func(c city) string { return c.name })

	// Swedish sorts Ö after Z
	if compare(city{"Örebro"}, city{"Zürich"}) <= 0 {
		t.Error("expected Örebro after Zürich in Swedish collation")
	}
}

package widget

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dshills/bindkit/internal/collection"
	"github.com/dshills/bindkit/internal/notify"
	"github.com/dshills/bindkit/internal/paths"
)

// ErrBadRowOrder is returned when a row order is not a permutation of the
// model rows.
var ErrBadRowOrder = errors.New("row order is not a permutation")

// Table shows the rows of a model, possibly reordered. Selection is kept in
// view coordinates; the selected-row attributes report model rows.
type Table struct {
	Component
	model     any
	order     []int // view row -> model row
	selection *Selection

	// watched is the observable model, refreshed on every change
	watched collection.Watchable
	watchID collection.ListenerID
}

// NewTable creates an empty table.
func NewTable(name string) *Table {
	t := &Table{selection: NewSelection()}
	t.setup(t, name)
	t.selection.AddListener(func(SelectionEvent) {
		t.notifier.Notify(selectionChange(t, paths.SelectedRows, t.SelectedRows()))
		t.notifier.Notify(selectionChange(t, paths.SelectedRow, t.SelectedRow()))
	})
	return t
}

// Model returns the row model.
func (t *Table) Model() any {
	return t.model
}

// SetModel replaces the row model. The row order resets to model order
// and the selection is cleared. A collection.Watchable model is watched
// and the table refreshes whenever it changes.
func (t *Table) SetModel(model any) {
	old := t.model
	if t.watched != nil {
		t.watched.RemoveListener(t.watchID)
		t.watched = nil
	}
	t.model = model
	if w, ok := model.(collection.Watchable); ok {
		t.watched = w
		t.watchID = w.Watch(func(collection.Kind) { t.Refresh() })
	}
	t.order = identity(modelLen(model))
	t.selection.Clear()
	t.fire(paths.Model, old, model)
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	return len(t.order)
}

// Refresh picks up rows added to or removed from the model. The row order
// resets and the selection is cleared. Watched models refresh on their own.
func (t *Table) Refresh() {
	t.order = identity(modelLen(t.model))
	t.selection.Clear()
}

// SetRowOrder reorders the view, as sorting a table would. order[v] is the
// model row shown at view row v. Selected model rows stay selected.
func (t *Table) SetRowOrder(order []int) error {
	if len(order) != len(t.order) {
		return fmt.Errorf("%w: got %d rows, want %d", ErrBadRowOrder, len(order), len(t.order))
	}
	sorted := slices.Sorted(slices.Values(order))
	if !slices.Equal(sorted, identity(len(order))) {
		return fmt.Errorf("%w: %v", ErrBadRowOrder, order)
	}

	selected := t.SelectedRows()
	t.order = slices.Clone(order)
	t.selectModelRows(selected)
	return nil
}

// ViewToModel converts a view row to a model row, or -1.
func (t *Table) ViewToModel(view int) int {
	if view < 0 || view >= len(t.order) {
		return -1
	}
	return t.order[view]
}

// ModelToView converts a model row to a view row, or -1.
func (t *Table) ModelToView(model int) int {
	return slices.Index(t.order, model)
}

// Selection returns the view-row selection model.
func (t *Table) Selection() *Selection {
	return t.selection
}

// SelectedRow returns the model row of the first selected view row, or -1.
func (t *Table) SelectedRow() int {
	return t.ViewToModel(t.selection.Lead())
}

// SetSelectedRow selects a single model row. An unknown row clears the
// selection.
func (t *Table) SetSelectedRow(model int) {
	t.selectModelRows([]int{model})
}

// SelectedRows returns the model rows of the selected view rows, in view
// order.
func (t *Table) SelectedRows() []int {
	views := t.selection.Indices()
	rows := make([]int, 0, len(views))
	for _, v := range views {
		if m := t.ViewToModel(v); m >= 0 {
			rows = append(rows, m)
		}
	}
	return rows
}

// SetSelectedRows selects model rows. Unknown rows are dropped.
func (t *Table) SetSelectedRows(model ...int) {
	t.selectModelRows(model)
}

func (t *Table) selectModelRows(model []int) {
	views := make([]int, 0, len(model))
	for _, m := range model {
		if v := t.ModelToView(m); v >= 0 {
			views = append(views, v)
		}
	}
	t.selection.Set(views...)
}

func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// selectionChange reports a selection change to observers of the widget.
func selectionChange(source any, name string, value any) notify.Change {
	return notify.Change{Source: source, Name: name, NewValue: value}
}

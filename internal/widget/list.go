package widget

import (
	"slices"

	"github.com/dshills/bindkit/internal/paths"
)

// Sized is implemented by models that know their length, such as
// collection.List.
type Sized interface {
	Len() int
}

// ListBox shows the items of a model and lets the user select some of
// them.
type ListBox struct {
	Component
	model     any
	selection *Selection
}

// NewListBox creates an empty list box.
func NewListBox(name string) *ListBox {
	l := &ListBox{selection: NewSelection()}
	l.setup(l, name)
	l.selection.AddListener(func(SelectionEvent) {
		l.notifier.Notify(selectionChange(l, paths.SelectedIndices, l.selection.Indices()))
		l.notifier.Notify(selectionChange(l, paths.SelectedIndex, l.selection.Lead()))
	})
	return l
}

// Model returns the item model.
func (l *ListBox) Model() any {
	return l.model
}

// SetModel replaces the item model and clears the selection.
func (l *ListBox) SetModel(model any) {
	old := l.model
	l.model = model
	l.selection.Clear()
	l.fire(paths.Model, old, model)
}

// Len returns the number of items, or 0 when the model has no length.
func (l *ListBox) Len() int {
	return modelLen(l.model)
}

// Selection returns the selection model.
func (l *ListBox) Selection() *Selection {
	return l.selection
}

// SelectedIndex returns the smallest selected index, or -1.
func (l *ListBox) SelectedIndex() int {
	return l.selection.Lead()
}

// SetSelectedIndex selects a single index. An out-of-range index clears the
// selection.
func (l *ListBox) SetSelectedIndex(i int) {
	if i < 0 || i >= l.Len() {
		l.selection.Clear()
		return
	}
	l.selection.Set(i)
}

// SelectedIndices returns the selected indices in ascending order.
func (l *ListBox) SelectedIndices() []int {
	return l.selection.Indices()
}

// SetSelectedIndices selects indices. Out-of-range indices are dropped.
func (l *ListBox) SetSelectedIndices(indices ...int) {
	n := l.Len()
	l.selection.Set(slices.DeleteFunc(slices.Clone(indices), func(i int) bool { return i >= n })...)
}

// ComboBox offers a model of items with one selected item.
type ComboBox struct {
	Component
	model    any
	selected any
}

// NewComboBox creates an empty combo box.
func NewComboBox(name string) *ComboBox {
	c := &ComboBox{}
	c.setup(c, name)
	return c
}

// Model returns the item model.
func (c *ComboBox) Model() any {
	return c.model
}

// SetModel replaces the item model.
func (c *ComboBox) SetModel(model any) {
	old := c.model
	c.model = model
	c.fire(paths.Model, old, model)
}

// SelectedItem returns the selected item, or nil.
func (c *ComboBox) SelectedItem() any {
	return c.selected
}

// SetSelectedItem selects item.
func (c *ComboBox) SetSelectedItem(item any) {
	old := c.selected
	c.selected = item
	c.fire(paths.SelectedItem, old, item)
}

func modelLen(model any) int {
	if s, ok := model.(Sized); ok {
		return s.Len()
	}
	return 0
}

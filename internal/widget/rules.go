package widget

import (
	"github.com/dshills/bindkit/internal/binding"
	"github.com/dshills/bindkit/internal/paths"
)

type texter interface {
	Widget
	Text() string
	SetText(string)
}

// DocumentTrigger fires on every edit of d.
func DocumentTrigger(d *Document) binding.Trigger {
	return binding.NewTrigger("document", func(fire func()) (func(), error) {
		return d.AddListener(func(Edit) { fire() }), nil
	})
}

// SelectionTrigger fires when a selection change completes. Adjusting
// events are skipped.
func SelectionTrigger(s *Selection) binding.Trigger {
	return binding.NewTrigger("selection", func(fire func()) (func(), error) {
		return s.AddListener(func(e SelectionEvent) {
			if !e.Adjusting {
				fire()
			}
		}), nil
	})
}

// SupplierRules returns the widget supplier rules.
func SupplierRules() []binding.Rule[binding.Supplier] {
	return []binding.Rule[binding.Supplier]{
		binding.SupplierRule("document-text", func(d *Document, _ string) any { return d.Text() }, paths.Text),
		binding.SupplierRule("text", func(w texter, _ string) any { return w.Text() }, paths.Text),
		binding.SupplierRule("toggle-text", func(t *Toggle, _ string) any { return t.Text() }, paths.Text),
		binding.SupplierRule("editable", func(f *TextField, _ string) any { return f.Editable() }, paths.Editable),
		binding.SupplierRule("component", func(w Widget, attr string) any {
			c := w.base()
			switch attr {
			case paths.Enabled:
				return c.Enabled()
			case paths.Visible:
				return c.Visible()
			case paths.Background:
				return c.Background()
			case paths.Foreground:
				return c.Foreground()
			default:
				return c.Font()
			}
		}, paths.Enabled, paths.Visible, paths.Background, paths.Foreground, paths.Font),
		binding.SupplierRule("toggle-selected", func(t *Toggle, _ string) any { return t.Selected() }, paths.Selected),
		binding.SupplierRule("combo-item", func(c *ComboBox, _ string) any { return c.SelectedItem() }, paths.SelectedItem),
		binding.SupplierRule("combo-model", func(c *ComboBox, _ string) any { return c.Model() }, paths.Model),
		binding.SupplierRule("list-index", func(l *ListBox, _ string) any { return l.SelectedIndex() }, paths.SelectedIndex),
		binding.SupplierRule("list-indices", func(l *ListBox, _ string) any { return l.SelectedIndices() }, paths.SelectedIndices),
		binding.SupplierRule("list-model", func(l *ListBox, _ string) any { return l.Model() }, paths.Model),
		binding.SupplierRule("table-model", func(t *Table, _ string) any { return t.Model() }, paths.Model),
		binding.SupplierRule("table-row", func(t *Table, _ string) any { return t.SelectedRow() }, paths.SelectedRow),
		binding.SupplierRule("table-rows", func(t *Table, _ string) any { return t.SelectedRows() }, paths.SelectedRows),
	}
}

// ConsumerRules returns the widget consumer rules. Text accepts strings
// and fmt.Stringer values, colors accept tcell colors and color names, and
// fonts accept tcell styles and attribute lists such as "bold+italic".
func ConsumerRules() []binding.Rule[binding.Consumer] {
	return []binding.Rule[binding.Consumer]{
		binding.ConsumerRule("document-text", func(d *Document, _ string, v any) error {
			s, err := toString(v)
			if err == nil {
				d.SetText(s)
			}
			return err
		}, paths.Text),
		binding.ConsumerRule("text", func(w texter, _ string, v any) error {
			s, err := toString(v)
			if err == nil {
				w.SetText(s)
			}
			return err
		}, paths.Text),
		binding.ConsumerRule("editable", func(f *TextField, _ string, v any) error {
			b, err := toBool(v)
			if err == nil {
				f.SetEditable(b)
			}
			return err
		}, paths.Editable),
		binding.ConsumerRule("component-flag", func(w Widget, attr string, v any) error {
			b, err := toBool(v)
			if err != nil {
				return err
			}
			if attr == paths.Enabled {
				w.base().SetEnabled(b)
			} else {
				w.base().SetVisible(b)
			}
			return nil
		}, paths.Enabled, paths.Visible),
		binding.ConsumerRule("component-color", func(w Widget, attr string, v any) error {
			c, err := toColor(v)
			if err != nil {
				return err
			}
			if attr == paths.Background {
				w.base().SetBackground(c)
			} else {
				w.base().SetForeground(c)
			}
			return nil
		}, paths.Background, paths.Foreground),
		binding.ConsumerRule("component-font", func(w Widget, _ string, v any) error {
			s, err := toStyle(v)
			if err == nil {
				w.base().SetFont(s)
			}
			return err
		}, paths.Font),
		binding.ConsumerRule("toggle-selected", func(t *Toggle, _ string, v any) error {
			b, err := toBool(v)
			if err == nil {
				t.SetSelected(b)
			}
			return err
		}, paths.Selected),
		binding.ConsumerRule("combo-item", func(c *ComboBox, _ string, v any) error {
			c.SetSelectedItem(v)
			return nil
		}, paths.SelectedItem),
		binding.ConsumerRule("combo-model", func(c *ComboBox, _ string, v any) error {
			c.SetModel(v)
			return nil
		}, paths.Model),
		binding.ConsumerRule("list-index", func(l *ListBox, _ string, v any) error {
			i, err := toInt(v)
			if err == nil {
				l.SetSelectedIndex(i)
			}
			return err
		}, paths.SelectedIndex),
		binding.ConsumerRule("list-indices", func(l *ListBox, _ string, v any) error {
			indices, err := toInts(v)
			if err == nil {
				l.SetSelectedIndices(indices...)
			}
			return err
		}, paths.SelectedIndices),
		binding.ConsumerRule("list-model", func(l *ListBox, _ string, v any) error {
			l.SetModel(v)
			return nil
		}, paths.Model),
		binding.ConsumerRule("table-model", func(t *Table, _ string, v any) error {
			t.SetModel(v)
			return nil
		}, paths.Model),
		binding.ConsumerRule("table-row", func(t *Table, _ string, v any) error {
			row, err := toInt(v)
			if err == nil {
				t.SetSelectedRow(row)
			}
			return err
		}, paths.SelectedRow),
		binding.ConsumerRule("table-rows", func(t *Table, _ string, v any) error {
			rows, err := toInts(v)
			if err == nil {
				t.SetSelectedRows(rows...)
			}
			return err
		}, paths.SelectedRows),
	}
}

// TriggerRules returns the widget trigger rules, most specific first.
func TriggerRules() []binding.Rule[binding.Trigger] {
	return []binding.Rule[binding.Trigger]{
		binding.TriggerRule("document-text", func(d *Document, _ string) binding.Trigger {
			return DocumentTrigger(d)
		}, paths.Text),
		binding.TriggerRule("textfield-text", func(f *TextField, _ string) binding.Trigger {
			return DocumentTrigger(f.Document())
		}, paths.Text),
		binding.TriggerRule("list-selection", func(l *ListBox, _ string) binding.Trigger {
			return SelectionTrigger(l.Selection())
		}, paths.SelectedIndex, paths.SelectedIndices),
		binding.TriggerRule("table-selection", func(t *Table, _ string) binding.Trigger {
			return SelectionTrigger(t.Selection())
		}, paths.SelectedRow, paths.SelectedRows),
		binding.TriggerRule("toggle-selected", func(t *Toggle, _ string) binding.Trigger {
			return binding.NotifyTrigger(t, paths.Selected)
		}, paths.Selected),
		binding.TriggerRule("component", func(w Widget, attr string) binding.Trigger {
			return binding.NotifyTrigger(w, attr)
		}),
	}
}

// Install registers the widget rules on e. Trigger rules are inserted
// ahead of the existing ones so that they take precedence over generic
// change notification.
func Install(e *binding.Engine) error {
	for _, r := range SupplierRules() {
		if err := e.Suppliers().Register(r); err != nil {
			return err
		}
	}
	for _, r := range ConsumerRules() {
		if err := e.Consumers().Register(r); err != nil {
			return err
		}
	}
	for i, r := range TriggerRules() {
		if err := e.Triggers().Register(r, binding.At(i)); err != nil {
			return err
		}
	}
	return nil
}

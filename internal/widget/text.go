package widget

import (
	"github.com/dshills/bindkit/internal/notify"
	"github.com/dshills/bindkit/internal/paths"
)

// TextField is an editable single-line text component backed by a
// Document.
type TextField struct {
	Component
	doc        *Document
	editable   bool
	stopFollow func()
}

// NewTextField creates an empty, editable text field.
func NewTextField(name string) *TextField {
	f := &TextField{editable: true}
	f.setup(f, name)
	f.SetDocument(NewDocument(""))
	return f
}

// Document returns the backing document.
func (f *TextField) Document() *Document {
	return f.doc
}

// SetDocument replaces the backing document.
func (f *TextField) SetDocument(d *Document) {
	if f.stopFollow != nil {
		f.stopFollow()
	}
	old := ""
	if f.doc != nil {
		old = f.doc.Text()
	}
	f.doc = d
	f.stopFollow = d.AddListener(func(Edit) {
		f.notifier.Notify(notify.Change{Source: f, Name: paths.Text, NewValue: d.Text()})
	})
	f.fire(paths.Text, old, d.Text())
}

// Text returns the document text.
func (f *TextField) Text() string {
	return f.doc.Text()
}

// SetText replaces the document text.
func (f *TextField) SetText(s string) {
	f.doc.SetText(s)
}

// Editable reports whether the user may edit the text.
func (f *TextField) Editable() bool {
	return f.editable
}

// SetEditable sets whether the user may edit the text.
func (f *TextField) SetEditable(v bool) {
	old := f.editable
	f.editable = v
	f.fire(paths.Editable, old, v)
}

// Type simulates typing s at the end of the text. It does nothing when the
// field is disabled or not editable.
func (f *TextField) Type(s string) {
	if !f.enabled || !f.editable {
		return
	}
	_ = f.doc.Insert(f.doc.Len(), s)
}

// Label is a read-only text component.
type Label struct {
	Component
	text string
}

// NewLabel creates a label.
func NewLabel(name, text string) *Label {
	l := &Label{text: text}
	l.setup(l, name)
	return l
}

// Text returns the label text.
func (l *Label) Text() string {
	return l.text
}

// SetText sets the label text.
func (l *Label) SetText(s string) {
	old := l.text
	l.text = s
	l.fire(paths.Text, old, s)
}

// Toggle is a two-state button such as a check box.
type Toggle struct {
	Component
	text     string
	selected bool
}

// NewToggle creates an unselected toggle.
func NewToggle(name, text string) *Toggle {
	t := &Toggle{text: text}
	t.setup(t, name)
	return t
}

// Text returns the caption.
func (t *Toggle) Text() string {
	return t.text
}

// Selected reports whether the toggle is on.
func (t *Toggle) Selected() bool {
	return t.selected
}

// SetSelected turns the toggle on or off.
func (t *Toggle) SetSelected(v bool) {
	old := t.selected
	t.selected = v
	t.fire(paths.Selected, old, v)
}

// Click flips the toggle if it is enabled.
func (t *Toggle) Click() {
	if t.enabled {
		t.SetSelected(!t.selected)
	}
}

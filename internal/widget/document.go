package widget

import (
	"errors"
	"fmt"
	"slices"
)

// ErrBadOffset is returned for edits outside the document.
var ErrBadOffset = errors.New("offset outside document")

// EditKind identifies the kind of a document edit.
type EditKind int

const (
	// EditInsert inserts text.
	EditInsert EditKind = iota
	// EditRemove removes text.
	EditRemove
	// EditReplace replaces the whole text.
	EditReplace
)

// Edit describes one change to a Document.
type Edit struct {
	Kind   EditKind
	Offset int
	Length int
	Text   string
}

type editListener struct {
	id uint64
	fn func(Edit)
}

// Document is the text storage behind a TextField. Offsets count runes.
type Document struct {
	text      []rune
	listeners []editListener
	nextID    uint64
}

// NewDocument creates a document holding text.
func NewDocument(text string) *Document {
	return &Document{text: []rune(text)}
}

// Text returns the document text.
func (d *Document) Text() string {
	return string(d.text)
}

// Len returns the length in runes.
func (d *Document) Len() int {
	return len(d.text)
}

// Insert inserts s at offset.
func (d *Document) Insert(offset int, s string) error {
	if offset < 0 || offset > len(d.text) {
		return fmt.Errorf("%w: insert at %d, length %d", ErrBadOffset, offset, len(d.text))
	}
	if s == "" {
		return nil
	}
	runes := []rune(s)
	d.text = slices.Insert(d.text, offset, runes...)
	d.emit(Edit{Kind: EditInsert, Offset: offset, Length: len(runes), Text: s})
	return nil
}

// Remove removes n runes starting at offset.
func (d *Document) Remove(offset, n int) error {
	if offset < 0 || n < 0 || offset+n > len(d.text) {
		return fmt.Errorf("%w: remove %d at %d, length %d", ErrBadOffset, n, offset, len(d.text))
	}
	if n == 0 {
		return nil
	}
	removed := string(d.text[offset : offset+n])
	d.text = slices.Delete(d.text, offset, offset+n)
	d.emit(Edit{Kind: EditRemove, Offset: offset, Length: n, Text: removed})
	return nil
}

// SetText replaces the whole text with a single edit. Setting the current
// text is a no-op.
func (d *Document) SetText(s string) {
	if s == string(d.text) {
		return
	}
	d.text = []rune(s)
	d.emit(Edit{Kind: EditReplace, Length: len(d.text), Text: s})
}

// AddListener registers fn for every edit and returns a function removing
// it.
func (d *Document) AddListener(fn func(Edit)) (remove func()) {
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, editListener{id: id, fn: fn})
	return func() {
		d.listeners = slices.DeleteFunc(d.listeners, func(l editListener) bool { return l.id == id })
	}
}

// Listeners returns the number of registered listeners.
func (d *Document) Listeners() int {
	return len(d.listeners)
}

func (d *Document) emit(e Edit) {
	for _, l := range slices.Clone(d.listeners) {
		l.fn(e)
	}
}

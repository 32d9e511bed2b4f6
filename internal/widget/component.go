package widget

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/bindkit/internal/notify"
	"github.com/dshills/bindkit/internal/paths"
)

// Widget is implemented by every component in this package.
type Widget interface {
	notify.Source

	// Name returns the widget name.
	Name() string

	base() *Component
}

// Component holds the attributes shared by all widgets.
type Component struct {
	name       string
	enabled    bool
	visible    bool
	background tcell.Color
	foreground tcell.Color
	font       tcell.Style
	notifier   *notify.Notifier
}

// NewComponent creates a bare component.
func NewComponent(name string) *Component {
	c := &Component{}
	c.setup(c, name)
	return c
}

// setup initializes the component. self is the outer widget, reported as
// the source of change events.
func (c *Component) setup(self any, name string) {
	c.name = name
	c.enabled = true
	c.visible = true
	c.background = tcell.ColorDefault
	c.foreground = tcell.ColorDefault
	c.font = tcell.StyleDefault
	c.notifier = notify.New(self)
}

func (c *Component) base() *Component {
	return c
}

// Name returns the component name.
func (c *Component) Name() string {
	return c.name
}

// Enabled reports whether the component accepts input.
func (c *Component) Enabled() bool {
	return c.enabled
}

// SetEnabled enables or disables the component.
func (c *Component) SetEnabled(v bool) {
	old := c.enabled
	c.enabled = v
	c.fire(paths.Enabled, old, v)
}

// Visible reports whether the component is shown.
func (c *Component) Visible() bool {
	return c.visible
}

// SetVisible shows or hides the component.
func (c *Component) SetVisible(v bool) {
	old := c.visible
	c.visible = v
	c.fire(paths.Visible, old, v)
}

// Background returns the background color.
func (c *Component) Background() tcell.Color {
	return c.background
}

// SetBackground sets the background color.
func (c *Component) SetBackground(color tcell.Color) {
	old := c.background
	c.background = color
	c.fire(paths.Background, old, color)
}

// Foreground returns the foreground color.
func (c *Component) Foreground() tcell.Color {
	return c.foreground
}

// SetForeground sets the foreground color.
func (c *Component) SetForeground(color tcell.Color) {
	old := c.foreground
	c.foreground = color
	c.fire(paths.Foreground, old, color)
}

// Font returns the text style.
func (c *Component) Font() tcell.Style {
	return c.font
}

// SetFont sets the text style.
func (c *Component) SetFont(style tcell.Style) {
	old := c.font
	c.font = style
	c.fire(paths.Font, old, style)
}

// Style returns the style a renderer would draw the component with.
func (c *Component) Style() tcell.Style {
	return c.font.Foreground(c.foreground).Background(c.background)
}

// Subscribe implements notify.Source.
func (c *Component) Subscribe(observer notify.Observer) *notify.Subscription {
	return c.notifier.Subscribe(observer)
}

// SubscribeName implements notify.Source.
func (c *Component) SubscribeName(name string, observer notify.Observer) *notify.Subscription {
	return c.notifier.SubscribeName(name, observer)
}

// Observers returns the number of registered observers.
func (c *Component) Observers() int {
	return c.notifier.Count()
}

func (c *Component) fire(name string, oldValue, newValue any) {
	c.notifier.Fire(name, oldValue, newValue)
}

// Panel groups named widgets. Children are reachable as path segments, so
// "form.name.text" resolves through a panel named form.
type Panel struct {
	Component
	children map[string]Widget
	order    []string
}

// NewPanel creates a panel holding children.
func NewPanel(name string, children ...Widget) *Panel {
	p := &Panel{children: make(map[string]Widget)}
	p.setup(p, name)
	for _, w := range children {
		p.Add(w)
	}
	return p
}

// Add adds or replaces a child, keyed by its name.
func (p *Panel) Add(w Widget) {
	if _, ok := p.children[w.Name()]; !ok {
		p.order = append(p.order, w.Name())
	}
	p.children[w.Name()] = w
}

// Child returns the named child.
func (p *Panel) Child(name string) (Widget, bool) {
	w, ok := p.children[name]
	return w, ok
}

// Children returns the children in insertion order.
func (p *Panel) Children() []Widget {
	out := make([]Widget, len(p.order))
	for i, name := range p.order {
		out[i] = p.children[name]
	}
	return out
}

// Accessor implements paths.Accessible for child names.
func (p *Panel) Accessor(name string) (func() any, bool) {
	w, ok := p.children[name]
	if !ok {
		return nil, false
	}
	return func() any { return w }, true
}

var (
	_ Widget           = (*Component)(nil)
	_ paths.Accessible = (*Panel)(nil)
)

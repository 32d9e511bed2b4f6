package binding

import (
	"fmt"
	"slices"
	"sync"

	"github.com/dshills/bindkit/internal/logging"
	"github.com/dshills/bindkit/internal/paths"
)

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	defaults bool
	logger   *logging.Logger
	onError  ErrorHandler
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		defaults: true,
		logger:   logging.Nop(),
	}
}

// WithoutDefaults creates the engine with empty rule registries. Generic
// attribute access still backs supplier and consumer lookups.
func WithoutDefaults() Option {
	return func(c *engineConfig) {
		c.defaults = false
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *engineConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithErrorHandler sets the handler for errors raised when a trigger
// applies a binding. The default logs them at error level.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *engineConfig) {
		c.onError = h
	}
}

// Engine owns the rule registries and every binding created through it.
type Engine struct {
	suppliers *Registry[Supplier]
	consumers *Registry[Consumer]
	triggers  *Registry[Trigger]

	logger  *logging.Logger
	onError ErrorHandler

	mu     sync.Mutex
	live   []*Binding
	closed bool
}

// NewEngine creates an engine.
func NewEngine(opts ...Option) *Engine {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Engine{
		suppliers: NewRegistry("supplier", ErrAccessorNotFound, genericSupplier),
		consumers: NewRegistry("consumer", ErrAccessorNotFound, genericConsumer),
		triggers:  NewRegistry[Trigger]("trigger", ErrTriggerNotFound, nil),
		logger:    cfg.logger.WithComponent("binding"),
		onError:   cfg.onError,
	}
	if e.onError == nil {
		e.onError = e.logApplyError
	}

	if cfg.defaults {
		for _, r := range DefaultSupplierRules() {
			_ = e.suppliers.Register(r)
		}
		for _, r := range DefaultConsumerRules() {
			_ = e.consumers.Register(r)
		}
		for _, r := range DefaultTriggerRules() {
			_ = e.triggers.Register(r)
		}
	}
	return e
}

// Suppliers returns the supplier registry.
func (e *Engine) Suppliers() *Registry[Supplier] {
	return e.suppliers
}

// Consumers returns the consumer registry.
func (e *Engine) Consumers() *Registry[Consumer] {
	return e.consumers
}

// Triggers returns the trigger registry.
func (e *Engine) Triggers() *Registry[Trigger] {
	return e.triggers
}

// Logger returns the engine logger.
func (e *Engine) Logger() *logging.Logger {
	return e.logger
}

// Bind builds every descriptor declared by source against target, in
// order, and applies each once in its primary direction.
//
// If any descriptor fails, the bindings already created by this call are
// closed and a *ConstructionError wrapping the failure is returned.
func (e *Engine) Bind(source Bindable, target any) ([]*Binding, error) {
	return e.BindManifest(source, target, source.Bindings())
}

// BindManifest is like Bind with descriptors supplied by the caller, for
// example loaded from a manifest file.
func (e *Engine) BindManifest(host, target any, descriptors []Descriptor) ([]*Binding, error) {
	created := make([]*Binding, 0, len(descriptors))
	for i, d := range descriptors {
		b, err := e.bindDescriptor(host, target, d)
		if err != nil {
			for j := len(created) - 1; j >= 0; j-- {
				created[j].Close()
			}
			e.logger.WithField("descriptor", d.String()).Warn("bind aborted, closed %d bindings", len(created))
			return nil, &ConstructionError{Index: i, Descriptor: d, Err: err}
		}
		created = append(created, b)
	}
	return created, nil
}

func (e *Engine) bindDescriptor(host, target any, d Descriptor) (*Binding, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	source, err := member(host, d.Member)
	if err != nil {
		return nil, err
	}

	var b *Binding
	switch d.Type {
	case SourceToTarget:
		b, err = e.Unidirectional(source, d.Source, target, d.Target)
	case TargetToSource:
		b, err = e.Unidirectional(target, d.Target, source, d.Source)
	case BiDirectional:
		b, err = e.Bidirectional(source, d.Source, target, d.Target)
	}
	if err != nil {
		return nil, err
	}

	// TargetToSource bindings are built with swapped roles, so Up is the
	// primary direction for every type.
	if err := b.Apply(Up); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

// member returns the current value of the named attribute of host, or
// host itself for an empty name.
func member(host any, name string) (any, error) {
	if name == "" {
		return host, nil
	}
	value, err := paths.Get(host, name)
	if err != nil {
		return nil, &paths.ResolutionError{Path: name, Segment: name, Holder: fmt.Sprintf("%T", host), Err: err}
	}
	if value == nil {
		return nil, &paths.ResolutionError{Path: name, Segment: name, Holder: fmt.Sprintf("%T", host), Err: paths.ErrNilHolder}
	}
	return value, nil
}

// endpoint is one resolved end of a binding.
type endpoint struct {
	holder any
	attr   string
	path   string
}

func resolve(root any, path string) (endpoint, error) {
	holder, attr, err := paths.Resolve(root, path)
	if err != nil {
		return endpoint{}, err
	}
	return endpoint{holder: holder, attr: attr, path: path}, nil
}

// Unidirectional builds a binding that keeps the target attribute in sync
// with the source attribute. It is not applied.
func (e *Engine) Unidirectional(source any, sourcePath string, target any, targetPath string) (*Binding, error) {
	src, dst, err := resolvePair(source, sourcePath, target, targetPath)
	if err != nil {
		return nil, err
	}

	supplier, err := e.suppliers.Create(src.holder, src.attr)
	if err != nil {
		return nil, err
	}
	consumer, err := e.consumers.Create(dst.holder, dst.attr)
	if err != nil {
		return nil, err
	}
	trigger, err := e.triggers.Create(src.holder, src.attr)
	if err != nil {
		return nil, err
	}

	return e.build(NewBuilder().
		WithLabel(fmt.Sprintf("%s -> %s", sourcePath, targetPath)).
		WithSourceSupplier(supplier).
		WithTargetConsumer(consumer).
		WithSourceTrigger(trigger))
}

// Bidirectional builds a binding that keeps both attributes in sync. It is
// not applied.
func (e *Engine) Bidirectional(source any, sourcePath string, target any, targetPath string) (*Binding, error) {
	src, dst, err := resolvePair(source, sourcePath, target, targetPath)
	if err != nil {
		return nil, err
	}

	sourceSupplier, err := e.suppliers.Create(src.holder, src.attr)
	if err != nil {
		return nil, err
	}
	sourceConsumer, err := e.consumers.Create(src.holder, src.attr)
	if err != nil {
		return nil, err
	}
	sourceTrigger, err := e.triggers.Create(src.holder, src.attr)
	if err != nil {
		return nil, err
	}
	targetSupplier, err := e.suppliers.Create(dst.holder, dst.attr)
	if err != nil {
		return nil, err
	}
	targetConsumer, err := e.consumers.Create(dst.holder, dst.attr)
	if err != nil {
		return nil, err
	}
	targetTrigger, err := e.triggers.Create(dst.holder, dst.attr)
	if err != nil {
		return nil, err
	}

	bb := NewBuilder().
		WithLabel(fmt.Sprintf("%s <-> %s", sourcePath, targetPath)).
		WithSourceSupplier(sourceSupplier).
		WithSourceConsumer(sourceConsumer).
		WithSourceTrigger(sourceTrigger).
		WithTargetSupplier(targetSupplier).
		WithTargetConsumer(targetConsumer).
		WithTargetTrigger(targetTrigger)
	return e.build(bb)
}

func resolvePair(source any, sourcePath string, target any, targetPath string) (endpoint, endpoint, error) {
	src, err := resolve(source, sourcePath)
	if err != nil {
		return endpoint{}, endpoint{}, err
	}
	dst, err := resolve(target, targetPath)
	if err != nil {
		return endpoint{}, endpoint{}, err
	}
	return src, dst, nil
}

// build finishes a builder and tracks the binding until it is closed.
func (e *Engine) build(bb *Builder) (*Binding, error) {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	b, err := bb.WithErrorHandler(e.onError).Build()
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.live = append(e.live, b)
	e.mu.Unlock()
	b.onClose(e.forget)

	e.logger.WithField("binding", b.ID()).Debug("created %s", b.Label())
	return b, nil
}

func (e *Engine) forget(b *Binding) {
	e.mu.Lock()
	if i := slices.Index(e.live, b); i >= 0 {
		e.live = slices.Delete(e.live, i, i+1)
	}
	e.mu.Unlock()

	e.logger.WithField("binding", b.ID()).Debug("closed %s", b.Label())
}

// Bindings returns the live bindings created by the engine.
func (e *Engine) Bindings() []*Binding {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.live)
}

// Close closes every live binding. The engine builds no further bindings.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	live := slices.Clone(e.live)
	e.mu.Unlock()

	for i := len(live) - 1; i >= 0; i-- {
		live[i].Close()
	}
}

func (e *Engine) logApplyError(b *Binding, d Direction, err error) {
	e.logger.WithFields(map[string]any{
		"binding":   b.ID(),
		"direction": d.String(),
	}).Error("apply %s failed: %v", b.Label(), err)
}

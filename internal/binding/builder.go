package binding

// Builder assembles a Binding from optional parts.
//
// An Up link is created when both a source supplier and a target consumer
// are given; a Down link when both a target supplier and a source consumer
// are given. The source trigger applies Up and the target trigger applies
// Down.
type Builder struct {
	sourceSupplier Supplier
	sourceConsumer Consumer
	sourceTrigger  Trigger
	targetSupplier Supplier
	targetConsumer Consumer
	targetTrigger  Trigger

	label   string
	onError ErrorHandler
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithSourceSupplier sets the supplier reading the source.
func (bb *Builder) WithSourceSupplier(s Supplier) *Builder {
	bb.sourceSupplier = s
	return bb
}

// WithSourceConsumer sets the consumer writing the source.
func (bb *Builder) WithSourceConsumer(c Consumer) *Builder {
	bb.sourceConsumer = c
	return bb
}

// WithSourceTrigger sets the trigger watching the source.
func (bb *Builder) WithSourceTrigger(t Trigger) *Builder {
	bb.sourceTrigger = t
	return bb
}

// WithTargetSupplier sets the supplier reading the target.
func (bb *Builder) WithTargetSupplier(s Supplier) *Builder {
	bb.targetSupplier = s
	return bb
}

// WithTargetConsumer sets the consumer writing the target.
func (bb *Builder) WithTargetConsumer(c Consumer) *Builder {
	bb.targetConsumer = c
	return bb
}

// WithTargetTrigger sets the trigger watching the target.
func (bb *Builder) WithTargetTrigger(t Trigger) *Builder {
	bb.targetTrigger = t
	return bb
}

// WithLabel sets the description reported by Binding.Label.
func (bb *Builder) WithLabel(label string) *Builder {
	bb.label = label
	return bb
}

// WithErrorHandler sets the handler for errors raised when a trigger
// applies the binding.
func (bb *Builder) WithErrorHandler(h ErrorHandler) *Builder {
	bb.onError = h
	return bb
}

// Build creates the binding and registers its triggers. If a trigger fails
// to register, nothing stays registered and the error is returned.
func (bb *Builder) Build() (*Binding, error) {
	b := newBinding(bb.label, bb.onError)

	if bb.sourceSupplier != nil && bb.targetConsumer != nil {
		up := NewLink(bb.sourceSupplier, bb.targetConsumer)
		b.links[Up] = &up
	}
	if bb.targetSupplier != nil && bb.sourceConsumer != nil {
		down := NewLink(bb.targetSupplier, bb.sourceConsumer)
		b.links[Down] = &down
	}

	if bb.sourceTrigger != nil {
		if _, err := bb.sourceTrigger.Register(b, Up); err != nil {
			b.Close()
			return nil, err
		}
	}
	if bb.targetTrigger != nil {
		if _, err := bb.targetTrigger.Register(b, Down); err != nil {
			b.Close()
			return nil, err
		}
	}
	return b, nil
}

package binding

// Supplier reads the current value of an attribute.
type Supplier func() (any, error)

// Consumer writes a value to an attribute.
type Consumer func(value any) error

// Link pairs the supplier and consumer of one direction.
type Link struct {
	supplier Supplier
	consumer Consumer
}

// NewLink creates a link. Both functions must be non-nil.
func NewLink(supplier Supplier, consumer Consumer) Link {
	return Link{supplier: supplier, consumer: consumer}
}

// Supplier returns the link's supplier.
func (l Link) Supplier() Supplier {
	return l.supplier
}

// Consumer returns the link's consumer.
func (l Link) Consumer() Consumer {
	return l.consumer
}

// transfer pushes the supplier value into the consumer.
func (l Link) transfer() error {
	value, err := l.supplier()
	if err != nil {
		return err
	}
	return l.consumer(value)
}

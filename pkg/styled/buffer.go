package styled

// Buffer is the capability the highlighter needs from a styled text buffer.
// Offsets and lengths are measured in runes.
type Buffer interface {
	// String returns the plain text content.
	String() string

	// Len returns the number of runes in the buffer.
	Len() int

	// SetAttributes replaces all attributes over r.
	SetAttributes(attrs Attributes, r Range)

	// AddAttribute sets a single attribute over r, keeping the others.
	AddAttribute(attr Attribute, r Range)

	// BeginEditing opens a batch of changes. Batches nest.
	BeginEditing()

	// EndEditing closes the innermost batch. Closing the outermost batch
	// publishes one change notification covering every mutation in it.
	EndEditing()
}

// Observer is notified when a batch of attribute changes completes.
type Observer interface {
	AttributesChanged(r Range)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(r Range)

// AttributesChanged implements Observer.
func (f ObserverFunc) AttributesChanged(r Range) {
	f(r)
}

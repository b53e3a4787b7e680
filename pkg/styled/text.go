package styled

// Compile-time interface check for Text.
var _ Buffer = (*Text)(nil)

// Text is an in-memory Buffer. It is not safe for concurrent use.
type Text struct {
	runes []rune
	attrs []Attributes

	observers []Observer

	depth   int
	dirty   bool
	changed Range
}

// NewText creates a buffer holding s with zero attributes.
func NewText(s string) *Text {
	runes := []rune(s)
	return &Text{
		runes: runes,
		attrs: make([]Attributes, len(runes)),
	}
}

// String returns the plain text content.
func (t *Text) String() string {
	return string(t.runes)
}

// Len returns the number of runes in the buffer.
func (t *Text) Len() int {
	return len(t.runes)
}

// Observe registers an observer for completed edit batches.
func (t *Text) Observe(o Observer) {
	t.observers = append(t.observers, o)
}

// SetAttributes replaces all attributes over r. r is clamped to the buffer.
func (t *Text) SetAttributes(attrs Attributes, r Range) {
	r = t.clamp(r)
	for i := r.Location; i < r.End(); i++ {
		t.attrs[i] = attrs
	}
	t.markChanged(r)
}

// AddAttribute sets a single attribute over r. r is clamped to the buffer.
func (t *Text) AddAttribute(attr Attribute, r Range) {
	r = t.clamp(r)
	for i := r.Location; i < r.End(); i++ {
		attr.apply(&t.attrs[i])
	}
	t.markChanged(r)
}

// BeginEditing opens a batch of changes.
func (t *Text) BeginEditing() {
	t.depth++
}

// EndEditing closes a batch. Unbalanced calls are ignored.
func (t *Text) EndEditing() {
	if t.depth == 0 {
		return
	}
	t.depth--
	if t.depth == 0 {
		t.flush()
	}
}

// IsEditing reports whether a batch is open.
func (t *Text) IsEditing() bool {
	return t.depth > 0
}

// AttributesAt returns the attributes of the rune at offset.
// The second result is false if offset is out of bounds.
func (t *Text) AttributesAt(offset int) (Attributes, bool) {
	if offset < 0 || offset >= len(t.attrs) {
		return Attributes{}, false
	}
	return t.attrs[offset], true
}

// Run is a maximal span of runes sharing the same attributes.
type Run struct {
	Range      Range
	Text       string
	Attributes Attributes
}

// Runs splits the buffer into runs of equal attributes, in order.
func (t *Text) Runs() []Run {
	var runs []Run
	start := 0
	for i := 1; i <= len(t.runes); i++ {
		if i < len(t.runes) && t.attrs[i] == t.attrs[start] {
			continue
		}
		runs = append(runs, Run{
			Range:      Range{Location: start, Length: i - start},
			Text:       string(t.runes[start:i]),
			Attributes: t.attrs[start],
		})
		start = i
	}
	return runs
}

// Substring returns the text covered by r, clamped to the buffer.
func (t *Text) Substring(r Range) string {
	r = t.clamp(r)
	return string(t.runes[r.Location:r.End()])
}

func (t *Text) clamp(r Range) Range {
	start := min(max(r.Location, 0), len(t.runes))
	end := min(max(r.End(), start), len(t.runes))
	return Range{Location: start, Length: end - start}
}

func (t *Text) markChanged(r Range) {
	if t.dirty {
		t.changed = t.changed.Union(r)
	} else {
		t.changed = r
		t.dirty = true
	}
	if t.depth == 0 {
		t.flush()
	}
}

func (t *Text) flush() {
	if !t.dirty {
		return
	}
	changed := t.changed
	t.dirty = false
	t.changed = Range{}
	for _, o := range t.observers {
		o.AttributesChanged(changed)
	}
}

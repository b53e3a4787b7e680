// Package styled provides a mutable text buffer with per-rune style attributes.
package styled

// Color is a terminal color understood by lipgloss: an ANSI index ("9"),
// an ANSI256 index ("205"), or a hex value ("#ff69b4"). Empty means the
// terminal default.
type Color string

// Font describes the face used for a run of text.
type Font struct {
	// Family is the font family name. Empty means the body font.
	Family string

	// Size is the point size. Zero means the default size.
	Size float64

	// Monospace marks fixed-width faces.
	Monospace bool
}

// Attributes is the complete set of style attributes for a rune.
type Attributes struct {
	Foreground Color
	Font       Font
}

// Attribute is a single attribute that can be added over a range,
// replacing only its own slot in Attributes.
type Attribute interface {
	apply(attrs *Attributes)
}

func (c Color) apply(attrs *Attributes) {
	attrs.Foreground = c
}

func (f Font) apply(attrs *Attributes) {
	attrs.Font = f
}

// Range is a half-open span of runes, [Location, Location+Length).
type Range struct {
	Location int `json:"location" yaml:"location"`
	Length   int `json:"length" yaml:"length"`
}

// End returns the exclusive end offset of the range.
func (r Range) End() int {
	return r.Location + r.Length
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Length == 0
}

// Contains returns true if the given offset is within this range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Location && offset < r.End()
}

// Union returns the smallest range covering r and other.
func (r Range) Union(other Range) Range {
	start := min(r.Location, other.Location)
	end := max(r.End(), other.End())
	return Range{Location: start, Length: end - start}
}

package tableview

import (
	"cmp"
	"fmt"
)

// IndexPath identifies a row inside a section.
// Headers and footers use Row 0.
type IndexPath struct {
	Section int
	Row     int
}

// Path returns an IndexPath for (section, row).
func Path(section, row int) IndexPath {
	return IndexPath{Section: section, Row: row}
}

// Compare orders paths by section, then row.
func (p IndexPath) Compare(q IndexPath) int {
	if c := cmp.Compare(p.Section, q.Section); c != 0 {
		return c
	}
	return cmp.Compare(p.Row, q.Row)
}

func (p IndexPath) String() string {
	return fmt.Sprintf("%d:%d", p.Section, p.Row)
}

// SegmentKind is the role of a segment in the vertical layout.
type SegmentKind int

const (
	KindHeader SegmentKind = iota // Section header
	KindCell                      // Row
	KindFooter                    // Section footer
)

func (k SegmentKind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindCell:
		return "cell"
	case KindFooter:
		return "footer"
	default:
		return "unknown"
	}
}

// tag is the single-letter form used in segment keys.
func (k SegmentKind) tag() byte {
	switch k {
	case KindHeader:
		return 'h'
	case KindFooter:
		return 'f'
	default:
		return 'c'
	}
}

// Segment describes one laid-out header, cell or footer and the vertical
// extent allocated to it. Start is measured from the top of the content.
type Segment struct {
	Kind    SegmentKind
	Section int
	Row     int // always 0 for headers and footers
	Start   int
	Height  int
}

// End returns the first offset after the segment.
func (s Segment) End() int {
	return s.Start + s.Height
}

// Path returns the segment's IndexPath.
func (s Segment) Path() IndexPath {
	return IndexPath{Section: s.Section, Row: s.Row}
}

// Contains reports whether offset falls in [Start, End).
func (s Segment) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End()
}

// Key returns a stable identifier such as "c_0_1" (kind_section_row).
func (s Segment) Key() string {
	return fmt.Sprintf("%c_%d_%d", s.Kind.tag(), s.Section, s.Row)
}

func (s Segment) String() string {
	return fmt.Sprintf("%s(%d,%d,%d,%d)", s.Kind, s.Section, s.Row, s.Start, s.Height)
}

// Rect is an axis-aligned rectangle in surface coordinates.
type Rect struct {
	X, Y float32 // Top-left position
	W, H float32 // Width and height
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersects returns true if two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && r.X+r.W > other.X &&
		r.Y < other.Y+other.H && r.Y+r.H > other.Y
}

package tableview

import "sort"

// LayoutTable is the result of one full layout pass: every non-empty
// segment in display order plus the total content height.
//
// A LayoutTable is never mutated after Build returns it. Reloading produces
// a new table which replaces the old one wholesale.
type LayoutTable struct {
	segments []Segment
	total    int

	// cells maps a row identity to its position in segments.
	cells map[IndexPath]int
}

func newLayoutTable(capacity int) *LayoutTable {
	return &LayoutTable{
		segments: make([]Segment, 0, capacity),
		cells:    make(map[IndexPath]int, capacity),
	}
}

// add records a segment at the cursor. Zero-height segments are dropped so
// they never share a start offset with their successor.
func (t *LayoutTable) add(kind SegmentKind, section, row, height int) {
	if height <= 0 {
		return
	}
	if kind == KindCell {
		t.cells[IndexPath{Section: section, Row: row}] = len(t.segments)
	}
	t.segments = append(t.segments, Segment{
		Kind:    kind,
		Section: section,
		Row:     row,
		Start:   t.total,
		Height:  height,
	})
	t.total += height
}

// Len returns the number of recorded segments.
func (t *LayoutTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.segments)
}

// TotalHeight returns the content height of the whole layout.
func (t *LayoutTable) TotalHeight() int {
	if t == nil {
		return 0
	}
	return t.total
}

// Segment returns the segment at index i. Out-of-range indices return the
// zero Segment and false.
func (t *LayoutTable) Segment(i int) (Segment, bool) {
	if t == nil || i < 0 || i >= len(t.segments) {
		return Segment{}, false
	}
	return t.segments[i], true
}

// Segments returns a copy of all segments in display order.
func (t *LayoutTable) Segments() []Segment {
	if t == nil {
		return nil
	}
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}

// IndexAt returns the index of the segment whose [Start, End) interval
// contains offset. A boundary offset belongs to the segment starting there.
// Offsets before the content clamp to 0, offsets at or past TotalHeight
// clamp to the last segment, and an empty table always answers 0.
func (t *LayoutTable) IndexAt(offset int) int {
	n := t.Len()
	if n == 0 || offset <= 0 {
		return 0
	}
	if offset >= t.total {
		return n - 1
	}
	// First segment starting after offset, minus one.
	i := sort.Search(n, func(i int) bool {
		return t.segments[i].Start > offset
	})
	return i - 1
}

// SegmentAt is IndexAt followed by Segment.
func (t *LayoutTable) SegmentAt(offset int) (Segment, bool) {
	return t.Segment(t.IndexAt(offset))
}

// Find returns the position of the segment with the given kind and path.
func (t *LayoutTable) Find(kind SegmentKind, p IndexPath) (int, bool) {
	if t == nil {
		return 0, false
	}
	if kind == KindCell {
		i, ok := t.cells[p]
		return i, ok
	}
	if p.Row != 0 {
		return 0, false
	}
	// Headers and footers are rare enough that a scan is fine.
	for i, s := range t.segments {
		if s.Kind == kind && s.Section == p.Section {
			return i, true
		}
	}
	return 0, false
}

// Contains reports whether p names a cell of this layout.
func (t *LayoutTable) Contains(p IndexPath) bool {
	_, ok := t.Find(KindCell, p)
	return ok
}

// Window returns the segments intersecting [top, bottom).
func (t *LayoutTable) Window(top, bottom int) []Segment {
	if t.Len() == 0 || bottom <= top {
		return nil
	}
	first := t.IndexAt(top)
	var out []Segment
	for i := first; i < len(t.segments); i++ {
		s := t.segments[i]
		if s.Start >= bottom {
			break
		}
		if s.End() > top {
			out = append(out, s)
		}
	}
	return out
}

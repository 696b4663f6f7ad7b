package tableview

import (
	"errors"
	"fmt"
)

var (
	// ErrNoProvider is returned when a reload runs without a content or
	// metrics provider.
	ErrNoProvider = errors.New("tableview: missing provider")

	// ErrInvalidLayout is returned when a provider reports a negative count
	// or height, or panics while being queried.
	ErrInvalidLayout = errors.New("tableview: invalid layout")
)

// ContentProvider supplies the shape of the data and the cell payloads.
type ContentProvider interface {
	SectionCount() int
	RowCount(section int) int
	// Cell returns the renderable payload for a row. The engine never
	// inspects it; surfaces do.
	Cell(p IndexPath) any
}

// MetricsProvider supplies segment heights. A height of 0 means the segment
// is not present.
type MetricsProvider interface {
	HeaderHeight(section int) int
	RowHeight(p IndexPath) int
	FooterHeight(section int) int
}

// TitleProvider is an optional extension of ContentProvider for section
// titles. Surfaces that draw headers and footers check for it.
type TitleProvider interface {
	HeaderTitle(section int) string
	FooterTitle(section int) string
}

// FuncProvider implements ContentProvider, MetricsProvider and
// TitleProvider from plain functions. Nil height functions mean "absent"
// (height 0), a nil Sections means zero sections.
type FuncProvider struct {
	Sections func() int
	Rows     func(section int) int
	Header   func(section int) int
	Row      func(p IndexPath) int
	Footer   func(section int) int
	Payload  func(p IndexPath) any

	Titles func(kind SegmentKind, section int) string
}

func (f FuncProvider) SectionCount() int {
	if f.Sections == nil {
		return 0
	}
	return f.Sections()
}

func (f FuncProvider) RowCount(section int) int {
	if f.Rows == nil {
		return 0
	}
	return f.Rows(section)
}

func (f FuncProvider) Cell(p IndexPath) any {
	if f.Payload == nil {
		return nil
	}
	return f.Payload(p)
}

func (f FuncProvider) HeaderHeight(section int) int {
	if f.Header == nil {
		return 0
	}
	return f.Header(section)
}

func (f FuncProvider) RowHeight(p IndexPath) int {
	if f.Row == nil {
		return 0
	}
	return f.Row(p)
}

func (f FuncProvider) FooterHeight(section int) int {
	if f.Footer == nil {
		return 0
	}
	return f.Footer(section)
}

func (f FuncProvider) HeaderTitle(section int) string {
	if f.Titles == nil {
		return ""
	}
	return f.Titles(KindHeader, section)
}

func (f FuncProvider) FooterTitle(section int) string {
	if f.Titles == nil {
		return ""
	}
	return f.Titles(KindFooter, section)
}

// Build runs one layout pass over the providers and returns a fresh table.
//
// Sections are visited in order; within a section the header comes first,
// then each row, then the footer. Any negative count or height aborts the
// pass, as does a panic inside a provider; in both cases the error wraps
// ErrInvalidLayout and no table is returned.
func Build(content ContentProvider, metrics MetricsProvider) (table *LayoutTable, err error) {
	if content == nil || metrics == nil {
		return nil, ErrNoProvider
	}

	// Provider panics must not leave a half-built table behind.
	defer func() {
		if r := recover(); r != nil {
			table = nil
			err = fmt.Errorf("%w: provider panic: %v", ErrInvalidLayout, r)
		}
	}()

	sections := content.SectionCount()
	if sections < 0 {
		return nil, fmt.Errorf("%w: section count %d", ErrInvalidLayout, sections)
	}

	t := newLayoutTable(sections * 2)
	for s := 0; s < sections; s++ {
		rows := content.RowCount(s)
		if rows < 0 {
			return nil, fmt.Errorf("%w: section %d: row count %d", ErrInvalidLayout, s, rows)
		}

		h := metrics.HeaderHeight(s)
		if h < 0 {
			return nil, fmt.Errorf("%w: section %d: header height %d", ErrInvalidLayout, s, h)
		}
		t.add(KindHeader, s, 0, h)

		for r := 0; r < rows; r++ {
			rh := metrics.RowHeight(IndexPath{Section: s, Row: r})
			if rh < 0 {
				return nil, fmt.Errorf("%w: row %d:%d: height %d", ErrInvalidLayout, s, r, rh)
			}
			t.add(KindCell, s, r, rh)
		}

		f := metrics.FooterHeight(s)
		if f < 0 {
			return nil, fmt.Errorf("%w: section %d: footer height %d", ErrInvalidLayout, s, f)
		}
		t.add(KindFooter, s, 0, f)
	}

	return t, nil
}

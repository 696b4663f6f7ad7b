// Package demo provides the sample data listed by the example programs.
package demo

import (
	"fmt"

	"github.com/go-theft-auto/tableview"
)

// Heights in pixels. Divided by Source.unit for other surfaces.
const (
	headerHeight = 40
	rowHeight    = 60
	rowStep      = 20 // added per row, cycling every three rows
	footerHeight = 20
)

// LinesUnit converts pixel heights to terminal lines.
const LinesUnit = 20

// Source is a fixed grid of sections and rows with varying row heights.
// Even sections have no footer.
type Source struct {
	sections int
	rows     int
	unit     int
}

var (
	_ tableview.ContentProvider = (*Source)(nil)
	_ tableview.MetricsProvider = (*Source)(nil)
	_ tableview.TitleProvider   = (*Source)(nil)
)

// New creates a source with the given shape. unit divides every height;
// pass 1 for pixels or LinesUnit for a terminal.
func New(sections, rows, unit int) *Source {
	return &Source{
		sections: max(0, sections),
		rows:     max(0, rows),
		unit:     max(1, unit),
	}
}

// SetShape changes the number of sections and rows. The table picks it up
// on the next reload.
func (s *Source) SetShape(sections, rows int) {
	s.sections = max(0, sections)
	s.rows = max(0, rows)
}

func (s *Source) SectionCount() int { return s.sections }

func (s *Source) RowCount(section int) int { return s.rows }

// Cell returns the row's label.
func (s *Source) Cell(p tableview.IndexPath) any {
	return fmt.Sprintf("Row %d of section %d", p.Row+1, p.Section+1)
}

func (s *Source) HeaderHeight(section int) int { return headerHeight / s.unit }

func (s *Source) RowHeight(p tableview.IndexPath) int {
	return (rowHeight + rowStep*(p.Row%3)) / s.unit
}

func (s *Source) FooterHeight(section int) int {
	if section%2 == 0 {
		return 0
	}
	return footerHeight / s.unit
}

func (s *Source) HeaderTitle(section int) string {
	return fmt.Sprintf("Section %d", section+1)
}

func (s *Source) FooterTitle(section int) string {
	return fmt.Sprintf("%d rows", s.rows)
}

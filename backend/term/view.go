package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/go-theft-auto/tableview"
)

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	vh := m.tv.ViewportHeight()
	offset := m.tv.Offset()
	blank := strings.Repeat(" ", m.width)

	lines := make([]string, 0, m.height)
	// Overscroll above the content.
	for y := offset; y < 0 && len(lines) < vh; y++ {
		lines = append(lines, blank)
	}
	for _, seg := range m.tv.Visible() {
		from := max(seg.Start, offset) - seg.Start
		to := min(seg.End(), offset+vh) - seg.Start
		lines = append(lines, m.renderSegment(seg, from, to)...)
	}
	for len(lines) < vh {
		lines = append(lines, blank)
	}
	lines = append(lines[:vh], m.statusLine())

	return m.zones.Scan(strings.Join(lines, "\n"))
}

// renderSegment renders lines [from, to) of a segment.
func (m *Model) renderSegment(seg tableview.Segment, from, to int) []string {
	out := make([]string, 0, to-from)
	for line := from; line < to; line++ {
		switch seg.Kind {
		case tableview.KindHeader, tableview.KindFooter:
			text := ""
			if line == 0 {
				text = " " + m.tv.Title(seg)
			}
			style := m.styles.Header
			if seg.Kind == tableview.KindFooter {
				style = m.styles.Footer
			}
			out = append(out, style.Render(fit(text, m.width)))
		case tableview.KindCell:
			out = append(out, m.renderCellLine(seg, line))
		}
	}
	return out
}

// renderCellLine renders one line of a cell, shifted left by the row's
// horizontal offset with the action panel filling the gap on the right.
func (m *Model) renderCellLine(seg tableview.Segment, line int) string {
	row := seg.Path()
	selected := m.hasCursor && row == m.cursor

	text := ""
	if line == 0 {
		marker := "  "
		if selected {
			marker = "> "
		}
		if v, ok := m.tv.Cell(row); ok {
			text = marker + fmt.Sprint(v)
		}
	}

	slide := min(max(m.tv.RowOffset(row), 0), m.width)
	content := fit(ansi.TruncateLeft(fit(text, m.width), slide, ""), m.width-slide)

	style := m.styles.cell(seg.Row)
	if selected {
		style = m.styles.Selected
	}
	rendered := style.Render(content)
	if slide == 0 {
		return rendered
	}

	panel := ""
	if line == 0 {
		panel = lipgloss.PlaceHorizontal(m.tv.ActionWidth(), lipgloss.Center, ActionLabel)
	}
	visible := fit(fit(panel, m.tv.ActionWidth()), min(slide, m.tv.ActionWidth()))
	visible = fit(visible, slide)
	return rendered + m.zones.Mark(m.actionZone(row), m.styles.Action.Render(visible))
}

func (m *Model) statusLine() string {
	var b strings.Builder
	fmt.Fprintf(&b, " %d/%d", m.tv.Offset(), m.tv.MaxOffset())
	if m.hasCursor {
		fmt.Fprintf(&b, "  row %s", m.cursor)
	}
	if row, open := m.tv.Revealed(); open {
		fmt.Fprintf(&b, "  open %s", row)
	}
	for _, ev := range m.last {
		fmt.Fprintf(&b, "  %s %s", ev.Kind, ev.Segment.Key())
	}
	if row, ok := m.LastAction(); ok {
		fmt.Fprintf(&b, "  %s on %s", ActionLabel, row)
	}
	if m.err != nil {
		return m.styles.Error.Render(fit(" "+m.err.Error(), m.width))
	}
	return m.styles.Status.Render(fit(b.String(), m.width))
}

// fit pads or truncates s to exactly width terminal cells. A wide glyph
// that would straddle the edge is dropped and replaced by padding.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		s = ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}

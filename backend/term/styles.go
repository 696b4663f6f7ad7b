package term

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles the Model renders with.
type Styles struct {
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Cells    []lipgloss.Style // cycled by row index
	Selected lipgloss.Style   // replaces the cell style under the cursor
	Action   lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
}

// DefaultStyles mirrors tableview.DefaultPalette.
func DefaultStyles() Styles {
	white := lipgloss.Color("#FFFFFF")
	header := lipgloss.NewStyle().Bold(true).Foreground(white).Background(lipgloss.Color("#404040"))
	action := lipgloss.NewStyle().Bold(true).Foreground(white).Background(lipgloss.Color("#C82828"))
	cells := []lipgloss.Style{
		lipgloss.NewStyle().Foreground(white).Background(lipgloss.Color("#0000FF")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FFFF00")),
		lipgloss.NewStyle().Foreground(white).Background(lipgloss.Color("#FF0000")),
	}
	return Styles{
		Header:   header,
		Footer:   lipgloss.NewStyle().Faint(true).Background(lipgloss.Color("#C0C0C0")),
		Cells:    cells,
		Selected: lipgloss.NewStyle().Reverse(true),
		Action:   action,
		Status:   lipgloss.NewStyle().Faint(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")),
	}
}

func (s Styles) cell(row int) lipgloss.Style {
	if len(s.Cells) == 0 {
		return lipgloss.NewStyle()
	}
	return s.Cells[row%len(s.Cells)]
}

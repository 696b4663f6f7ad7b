package tableview

// Colors are RGBA packed as 0xAABBGGRR, the layout the OpenGL backend
// uploads directly.
const (
	ColorBlue        uint32 = 0xFFFF0000
	ColorYellow      uint32 = 0xFF00FFFF
	ColorRed         uint32 = 0xFF0000FF
	ColorGreen       uint32 = 0xFF00FF00
	ColorDarkGray    uint32 = 0xFF404040
	ColorLightGray   uint32 = 0xFFC0C0C0
	ColorBlack       uint32 = 0xFF000000
	ColorTransparent uint32 = 0x00000000
)

// RGBA creates a packed color from individual components (0-255).
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// UnpackRGBA extracts RGBA components from a packed color.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// Palette holds the flat fills used by Draw.
type Palette struct {
	Background uint32
	Header     uint32
	Footer     uint32
	Cells      []uint32 // cycled by row index
	Action     uint32   // panel revealed behind a swiped row
	Separator  uint32
}

// DefaultPalette returns the fills the demos use.
func DefaultPalette() Palette {
	return Palette{
		Background: ColorGreen,
		Header:     ColorDarkGray,
		Footer:     ColorLightGray,
		Cells:      []uint32{ColorBlue, ColorYellow, ColorRed},
		Action:     RGBA(200, 40, 40, 255),
		Separator:  ColorBlack,
	}
}

func (p Palette) cell(row int) uint32 {
	if len(p.Cells) == 0 {
		return ColorTransparent
	}
	return p.Cells[row%len(p.Cells)]
}

// Draw appends the visible part of the layout to dl, clipped to a viewport
// of the given width at the surface origin. Cells are shifted left by their
// horizontal offset with the action panel drawn behind them.
// Layout units map one-to-one to surface pixels.
func (tv *TableView) Draw(dl *DrawList, width float32, pal Palette) {
	viewport := float32(tv.viewport)
	dl.PushClipRect(0, 0, width, viewport)
	defer dl.PopClipRect()

	dl.AddRect(0, 0, width, viewport, pal.Background)

	for _, seg := range tv.Visible() {
		y := float32(seg.Start - tv.offset)
		h := float32(seg.Height)
		switch seg.Kind {
		case KindHeader:
			dl.AddRect(0, y, width, h, pal.Header)
		case KindFooter:
			dl.AddRect(0, y, width, h, pal.Footer)
		case KindCell:
			slide := float32(tv.RowOffset(seg.Path()))
			if slide > 0 {
				action := float32(tv.actionWidth)
				dl.AddRect(width-slide, y, action, h, pal.Action)
			}
			dl.AddRect(-slide, y, width, h, pal.cell(seg.Row))
		}
		dl.AddRect(0, y+h-1, width, 1, pal.Separator)
	}
}

// SegmentRect returns where a segment sits on the surface at the current
// scroll offset, ignoring any horizontal slide.
func (tv *TableView) SegmentRect(seg Segment, width float32) Rect {
	return Rect{X: 0, Y: float32(seg.Start - tv.offset), W: width, H: float32(seg.Height)}
}

// HitTest returns the segment under a surface point, if any.
func (tv *TableView) HitTest(x, y, width float32) (Segment, bool) {
	if x < 0 || x >= width || y < 0 || y >= float32(tv.viewport) {
		return Segment{}, false
	}
	offset := tv.offset + int(y)
	seg, ok := tv.table.SegmentAt(offset)
	if !ok || !seg.Contains(offset) {
		return Segment{}, false
	}
	return seg, true
}

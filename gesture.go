package tableview

// DefaultSlop is how far (in surface units) the pointer must travel before
// a press is classified as a swipe or a scroll.
const DefaultSlop = 8

// GestureAxis is the direction a pointer gesture locked onto.
type GestureAxis int

const (
	AxisNone       GestureAxis = iota // Not yet decided, or a tap
	AxisHorizontal                    // Row swipe
	AxisVertical                      // List scroll
)

// dragState tracks one pointer press.
type dragState struct {
	Active bool
	Axis   GestureAxis
	StartX float32 // Pointer X when the press started
	StartY float32 // Pointer Y when the press started
	LastY  float32 // Pointer Y at the previous vertical move

	Row      IndexPath
	OnCell   bool
	RowStart int // Row offset when the press started
	Offset   int // Current horizontal drag offset
}

// Reset clears the drag state.
func (d *dragState) Reset() {
	*d = dragState{}
}

// Gesture turns raw pointer input into row swipes and list scrolls for a
// TableView. Surfaces feed it Down/Move/Up in surface coordinates.
type Gesture struct {
	tv    *TableView
	Width float32
	Slop  float32

	drag dragState
}

// NewGesture creates a recognizer for a surface of the given width.
func NewGesture(tv *TableView, width float32) *Gesture {
	return &Gesture{tv: tv, Width: width, Slop: DefaultSlop}
}

// Dragging reports whether a press is in progress.
func (g *Gesture) Dragging() bool {
	return g.drag.Active
}

// Axis returns the axis of the current press.
func (g *Gesture) Axis() GestureAxis {
	return g.drag.Axis
}

// Down starts a press. It returns false when the point is outside the
// viewport.
func (g *Gesture) Down(x, y float32) bool {
	g.drag.Reset()
	if x < 0 || x >= g.Width || y < 0 || y >= float32(g.tv.ViewportHeight()) {
		return false
	}
	g.drag.Active = true
	g.drag.StartX = x
	g.drag.StartY = y
	g.drag.LastY = y
	if seg, ok := g.tv.HitTest(x, y, g.Width); ok && seg.Kind == KindCell {
		g.drag.Row = seg.Path()
		g.drag.OnCell = true
		g.drag.RowStart = g.tv.RowOffset(g.drag.Row)
		g.drag.Offset = g.drag.RowStart
	}
	return true
}

// Move updates the press. The first movement past Slop locks the axis;
// horizontal presses drag the row under the pointer, vertical ones scroll.
func (g *Gesture) Move(x, y float32) GestureAxis {
	d := &g.drag
	if !d.Active {
		return AxisNone
	}

	if d.Axis == AxisNone {
		dx := abs32(d.StartX - x)
		dy := abs32(d.StartY - y)
		switch {
		case d.OnCell && dx >= g.Slop && dx > dy:
			d.Axis = AxisHorizontal
		case dy >= g.Slop:
			d.Axis = AxisVertical
		default:
			return AxisNone
		}
	}

	switch d.Axis {
	case AxisHorizontal:
		// Swiping left opens the row.
		d.Offset = clamp(d.RowStart+int(d.StartX-x), 0, g.tv.ActionWidth())
		g.tv.Drag(d.Row, d.Offset)
	case AxisVertical:
		delta := int(d.LastY - y)
		if delta != 0 {
			d.LastY -= float32(delta)
			g.tv.ScrollBy(delta)
		}
	}
	return d.Axis
}

// Up ends the press. A swipe snaps its row open or closed, a scroll that
// overshot the content settles back inside it, and a tap closes whichever
// row is open.
func (g *Gesture) Up(x, y float32) GestureAxis {
	d := g.drag
	g.drag.Reset()
	if !d.Active {
		return AxisNone
	}

	switch d.Axis {
	case AxisHorizontal:
		g.tv.Release(d.Row, d.Offset)
	case AxisVertical:
		if off := g.tv.Offset(); off < 0 || off > g.tv.MaxOffset() {
			g.tv.ScrollTo(clamp(off, 0, g.tv.MaxOffset()))
		}
	default:
		if row, open := g.tv.Revealed(); open && !(d.OnCell && d.Row == row) {
			g.tv.CloseRevealed()
		}
	}
	return d.Axis
}

// Cancel abandons the press without snapping.
func (g *Gesture) Cancel() {
	g.drag.Reset()
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

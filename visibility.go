package tableview

import "fmt"

// TransitionKind says which viewport edge a segment crossed and in which
// direction.
type TransitionKind int

const (
	EnterTop    TransitionKind = iota // Scrolled back into view at the top edge
	ExitTop                           // Scrolled out past the top edge
	EnterBottom                       // Scrolled into view at the bottom edge
	ExitBottom                        // Scrolled out past the bottom edge
)

func (k TransitionKind) String() string {
	switch k {
	case EnterTop:
		return "enter-top"
	case ExitTop:
		return "exit-top"
	case EnterBottom:
		return "enter-bottom"
	case ExitBottom:
		return "exit-bottom"
	default:
		return fmt.Sprintf("TransitionKind(%d)", int(k))
	}
}

// Entering reports whether the segment became visible.
func (k TransitionKind) Entering() bool {
	return k == EnterTop || k == EnterBottom
}

// Transition reports one segment crossing a viewport edge.
type Transition struct {
	Kind    TransitionKind
	Index   int
	Segment Segment
}

func (t Transition) String() string {
	return fmt.Sprintf("%s %s", t.Kind, t.Segment.Key())
}

// ScrollWindow is the visible content range for one scroll position.
type ScrollWindow struct {
	Top    int
	Bottom int
}

// WindowAt returns the window for a scroll offset and viewport height.
func WindowAt(offset, viewport int) ScrollWindow {
	return ScrollWindow{Top: offset, Bottom: offset + viewport}
}

// VisibilityState remembers the segments at the top and bottom edges from
// the previous scroll update. It is a plain value: Update returns the next
// state instead of mutating the receiver.
type VisibilityState struct {
	Top    int // index of the segment under the top edge
	Bottom int // index of the segment under the bottom edge
	Offset int // scroll offset of the last update
}

// Seed returns the resting state for a freshly built table, with the bottom
// edge placed by the viewport height.
func Seed(table *LayoutTable, viewport int) VisibilityState {
	return SeedAt(table, 0, viewport)
}

// SeedAt is Seed for a view that is already resting at offset.
func SeedAt(table *LayoutTable, offset, viewport int) VisibilityState {
	w := WindowAt(offset, viewport)
	return VisibilityState{
		Top:    table.IndexAt(w.Top),
		Bottom: table.IndexAt(w.Bottom),
		Offset: offset,
	}
}

// Update computes the edge transitions caused by moving to offset.
//
// Only the boundary segment of each edge is reported: a single update that
// skips over several segments reports one event per edge, not one per
// crossed segment.
func (s VisibilityState) Update(table *LayoutTable, offset, viewport int) (VisibilityState, []Transition) {
	w := WindowAt(offset, viewport)
	top := table.IndexAt(w.Top)
	bottom := table.IndexAt(w.Bottom)

	next := VisibilityState{Top: top, Bottom: bottom, Offset: offset}
	if top == s.Top && bottom == s.Bottom {
		return next, nil
	}

	var events []Transition
	emit := func(kind TransitionKind, i int) {
		seg, ok := table.Segment(i)
		if !ok {
			return
		}
		events = append(events, Transition{Kind: kind, Index: i, Segment: seg})
	}

	switch {
	case offset > s.Offset:
		if top > s.Top {
			emit(ExitTop, s.Top)
		}
		if bottom > s.Bottom {
			emit(EnterBottom, bottom)
		}
	case offset < s.Offset:
		if top < s.Top {
			emit(EnterTop, top)
		}
		if bottom < s.Bottom {
			emit(ExitBottom, s.Bottom)
		}
	}

	return next, events
}

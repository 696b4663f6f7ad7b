package tableview

// RevealCommand asks the surface to move a row's horizontal container to
// Target (0 closed, action width fully open).
type RevealCommand struct {
	Row    IndexPath
	Target int
}

// Closed reports whether the command snaps the row shut.
func (c RevealCommand) Closed() bool {
	return c.Target == 0
}

// RevealState tracks the single row whose action panel is open.
// Like VisibilityState it is a value; every transition returns a new state.
type RevealState struct {
	Row  IndexPath
	Open bool
}

// Revealed returns the open row, if any.
func (s RevealState) Revealed() (IndexPath, bool) {
	return s.Row, s.Open
}

// Drag handles a horizontal drag of row to offset. When another row is
// open and this one moves past zero, a close command for the open row is
// returned; the surface must apply it before honoring the drag.
//
// The state itself is unchanged: a row only becomes the revealed one once
// it reports that it settled fully open (see Opened).
func (s RevealState) Drag(row IndexPath, offset int) (RevealState, []RevealCommand) {
	if offset <= 0 || !s.Open || s.Row == row {
		return s, nil
	}
	return s, []RevealCommand{{Row: s.Row, Target: 0}}
}

// Release returns where a row released at offset should settle: closed
// below half the action width, fully open otherwise.
func (s RevealState) Release(row IndexPath, offset, actionWidth int) RevealCommand {
	if offset < actionWidth/2 {
		return RevealCommand{Row: row, Target: 0}
	}
	return RevealCommand{Row: row, Target: actionWidth}
}

// Opened records row as the revealed row. If a different row held the
// slot, a close command for it is returned.
func (s RevealState) Opened(row IndexPath) (RevealState, []RevealCommand) {
	next := RevealState{Row: row, Open: true}
	if s.Open && s.Row != row {
		return next, []RevealCommand{{Row: s.Row, Target: 0}}
	}
	return next, nil
}

// Closed clears the revealed row, but only if it is row. A late close
// notification from an already superseded row is ignored.
func (s RevealState) Closed(row IndexPath) RevealState {
	if s.Open && s.Row == row {
		return RevealState{}
	}
	return s
}

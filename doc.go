/*
Package tableview is the layout and visibility engine behind a virtualized,
variable-height list view: section headers, rows and section footers
supplied lazily by a data source and laid out one after another.

# Overview

A reload asks a ContentProvider for the shape of the data and a
MetricsProvider for every segment's height, and produces a LayoutTable:
the ordered segments with their cumulative start offsets. Segments with a
height of 0 are left out entirely. Layout units are whatever the surface
uses (pixels for the OpenGL backend, terminal lines for the terminal one).

As the view scrolls, the engine reports which segment crossed the top or
bottom edge of the viewport and in which direction, so a surface only
materializes what is on screen. Each row can be swiped sideways to reveal
an action panel; at most one row is open at a time and opening another one
closes the first.

# Quick Start

	src := tableview.FuncProvider{
	    Sections: func() int { return 2 },
	    Rows:     func(section int) int { return 10 },
	    Header:   func(section int) int { return 20 },
	    Row:      func(p tableview.IndexPath) int { return 50 },
	}

	tv := tableview.New(src, src,
	    tableview.WithViewportHeight(600),
	    tableview.WithSurface(mySurface),
	)
	if err := tv.Reload(); err != nil {
	    return err
	}

	// On every scroll callback:
	for _, ev := range tv.ScrollTo(offset) {
	    if ev.Kind.Entering() {
	        materialize(ev.Segment)
	    } else {
	        recycle(ev.Segment)
	    }
	}

	// Once per frame while rows are sliding:
	if tv.Animating() {
	    tv.Step()
	}

# Transitions

Only the boundary segment is reported per edge and update. A scroll that
skips several segments between two updates reports one exit and one enter,
not one per skipped segment. Surfaces that need every segment on screen
should use Visible instead.

# Threading

A TableView is meant to be driven from a single dispatch context. Reload is
synchronous and the new table replaces the old one only once the whole
pass succeeded; a Reload triggered from inside a provider callback wins
over the one that was running.

# Backends

backend/opengl draws the list with OpenGL and feeds GLFW pointer input
through a Gesture. backend/term is a Bubble Tea model rendering the same
engine in a terminal.
*/
package tableview

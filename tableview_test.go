package tableview

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

// recordingSurface captures everything the engine hands to a surface.
type recordingSurface struct {
	placed      [][]Segment
	transitions [][]Transition
	reveals     []RevealCommand
}

func (r *recordingSurface) Place(segments []Segment) { r.placed = append(r.placed, segments) }

func (r *recordingSurface) Transitions(events []Transition) {
	r.transitions = append(r.transitions, events)
}

func (r *recordingSurface) Reveal(cmd RevealCommand) { r.reveals = append(r.reveals, cmd) }

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestView(t *testing.T, src *fakeSource, opts ...Option) (*TableView, *recordingSurface) {
	t.Helper()
	surface := &recordingSurface{}
	opts = append([]Option{
		WithViewportHeight(100),
		WithSurface(surface),
		WithLogger(quietLogger),
	}, opts...)
	tv := New(src, src, opts...)
	if err := tv.Reload(); err != nil {
		t.Fatalf("Reload() returned error: %v", err)
	}
	return tv, surface
}

// settle steps animations until every row has come to rest.
func settle(t *testing.T, tv *TableView) {
	t.Helper()
	for i := 0; tv.Animating(); i++ {
		if i > 1000 {
			t.Fatal("animation did not settle")
		}
		tv.Step()
	}
}

func TestReloadPlacesSegments(t *testing.T) {
	tv, surface := newTestView(t, scenarioSource())

	if len(surface.placed) != 1 {
		t.Fatalf("Expected 1 placement, got %d", len(surface.placed))
	}
	if len(surface.placed[0]) != 6 {
		t.Errorf("Expected 6 placed segments, got %d", len(surface.placed[0]))
	}
	if tv.Generation() != 1 {
		t.Errorf("Expected generation 1, got %d", tv.Generation())
	}
	if tv.ContentHeight() != 260 || tv.MaxOffset() != 160 {
		t.Errorf("Expected height 260 / max offset 160, got %d / %d", tv.ContentHeight(), tv.MaxOffset())
	}
	if v := tv.Visibility(); v.Top != 0 || v.Bottom != 2 {
		t.Errorf("Expected seeded visibility {0 2}, got %+v", v)
	}
}

func TestReloadFailureKeepsPreviousTable(t *testing.T) {
	src := scenarioSource()
	tv, surface := newTestView(t, src)
	before := tv.Table()

	src.sections[1].rows[0] = -1
	err := tv.Reload()
	if !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("Expected ErrInvalidLayout, got %v", err)
	}
	if tv.Table() != before {
		t.Error("failed reload replaced the table")
	}
	if tv.Generation() != 1 {
		t.Errorf("Expected generation 1 after failure, got %d", tv.Generation())
	}
	if len(surface.placed) != 1 {
		t.Errorf("failed reload should not place segments, got %d placements", len(surface.placed))
	}
}

func TestReloadWithoutProviders(t *testing.T) {
	tv := New(nil, nil, WithLogger(quietLogger))
	if err := tv.Reload(); !errors.Is(err, ErrNoProvider) {
		t.Errorf("Expected ErrNoProvider, got %v", err)
	}
	if tv.Table().Len() != 0 {
		t.Error("Expected empty table")
	}
}

func TestReentrantReloadWins(t *testing.T) {
	src := scenarioSource()
	surface := &recordingSurface{}
	tv := New(src, src, WithViewportHeight(100), WithSurface(surface), WithLogger(quietLogger))

	nested := false
	src.onQuery = func() {
		if nested {
			return
		}
		nested = true
		if err := tv.Reload(); err != nil {
			t.Errorf("nested Reload() returned error: %v", err)
		}
		// The outer pass now sees different data, but it was superseded.
		src.sections = append(src.sections, sectionSpec{header: 10})
	}

	if err := tv.Reload(); err != nil {
		t.Fatalf("Reload() returned error: %v", err)
	}
	if tv.Generation() != 2 {
		t.Errorf("Expected the nested reload (generation 2) to win, got %d", tv.Generation())
	}
	if len(surface.placed) != 1 {
		t.Errorf("Expected exactly one committed placement, got %d", len(surface.placed))
	}
	if tv.Table().Len() != 6 {
		t.Errorf("Expected the nested layout of 6 segments, got %d", tv.Table().Len())
	}
}

func TestReentrantFailedReloadKeepsOuter(t *testing.T) {
	src := scenarioSource()
	surface := &recordingSurface{}
	tv := New(src, src, WithViewportHeight(100), WithSurface(surface), WithLogger(quietLogger))

	nested := false
	src.onQuery = func() {
		if nested {
			return
		}
		nested = true
		src.sections[1].rows[0] = -1
		if err := tv.Reload(); err == nil {
			t.Error("Expected the nested Reload() to fail")
		}
		src.sections[1].rows[0] = 100
	}

	if err := tv.Reload(); err != nil {
		t.Fatalf("Reload() returned error: %v", err)
	}
	if tv.Generation() != 1 {
		t.Errorf("Expected the outer reload (generation 1) to commit, got %d", tv.Generation())
	}
	if len(surface.placed) != 1 {
		t.Errorf("Expected exactly one committed placement, got %d", len(surface.placed))
	}
	if tv.Table().Len() != 6 {
		t.Errorf("Expected the outer layout of 6 segments, got %d", tv.Table().Len())
	}
}

func TestScrollForwardsTransitions(t *testing.T) {
	tv, surface := newTestView(t, scenarioSource())

	events := tv.ScrollTo(140)
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %v", events)
	}
	if len(surface.transitions) != 1 {
		t.Fatalf("Expected 1 transition batch on the surface, got %d", len(surface.transitions))
	}

	if again := tv.ScrollTo(140); len(again) != 0 {
		t.Errorf("Expected no events repeating the offset, got %v", again)
	}
	if len(surface.transitions) != 1 {
		t.Error("surface should not receive empty transition batches")
	}

	events = tv.ScrollBy(-140)
	if got := kinds(events); len(got) != 2 || got[0] != EnterTop || got[1] != ExitBottom {
		t.Errorf("Expected [enter-top exit-bottom], got %v", got)
	}
}

func TestReloadReseedsAtCurrentOffset(t *testing.T) {
	src := scenarioSource()
	tv, _ := newTestView(t, src)
	tv.ScrollTo(140)

	if err := tv.Reload(); err != nil {
		t.Fatalf("Reload() returned error: %v", err)
	}
	if v := tv.Visibility(); v.Top != 4 || v.Bottom != 5 || v.Offset != 140 {
		t.Errorf("Expected reseed {4 5 140}, got %+v", v)
	}
	if events := tv.ScrollTo(140); len(events) != 0 {
		t.Errorf("Expected no events right after reseeding, got %v", events)
	}
}

func TestVisible(t *testing.T) {
	tv, _ := newTestView(t, scenarioSource())
	tv.ScrollTo(60)

	var keys []string
	for _, seg := range tv.Visible() {
		keys = append(keys, seg.Key())
	}
	want := []string{"c_0_0", "c_0_1", "f_0_0", "c_1_0"}
	if len(keys) != len(want) {
		t.Fatalf("Expected %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("visible[%d]: expected %s, got %s", i, want[i], keys[i])
		}
	}
}

func TestRevealScenario(t *testing.T) {
	tv, surface := newTestView(t, scenarioSource(), WithoutAnimation())
	r, s := Path(0, 0), Path(0, 1)

	tv.Drag(r, 150)
	if cmd, _ := tv.Release(r, 150); cmd.Target != 0 {
		t.Errorf("release at 150 of 400: expected target 0, got %d", cmd.Target)
	}
	if tv.RowOffset(r) != 0 {
		t.Errorf("Expected row closed, offset %d", tv.RowOffset(r))
	}

	tv.Drag(r, 250)
	cmd, ok := tv.Release(r, 250)
	if !ok || cmd.Target != 400 {
		t.Fatalf("release at 250 of 400: expected target 400, got %+v (%v)", cmd, ok)
	}
	if row, open := tv.Revealed(); !open || row != r {
		t.Fatalf("Expected %v revealed, got %v (%v)", r, row, open)
	}

	closes := tv.Drag(s, 20)
	if len(closes) != 1 || closes[0] != (RevealCommand{Row: r, Target: 0}) {
		t.Fatalf("Expected close command for %v, got %v", r, closes)
	}
	last := surface.reveals[len(surface.reveals)-1]
	if last.Row != r || last.Target != 0 {
		t.Errorf("surface should have been told to close %v, got %+v", r, last)
	}
	if _, open := tv.Revealed(); open {
		t.Error("Expected no revealed row once the close took effect")
	}
	if tv.RowOffset(r) != 0 || tv.RowOffset(s) != 20 {
		t.Errorf("Expected offsets 0 and 20, got %d and %d", tv.RowOffset(r), tv.RowOffset(s))
	}
}

func TestRevealAnimated(t *testing.T) {
	tv, _ := newTestView(t, scenarioSource())
	a, b := Path(0, 0), Path(1, 0)

	tv.Drag(a, 300)
	tv.Release(a, 300)
	if !tv.Animating() {
		t.Fatal("Expected the release to start an animation")
	}
	settle(t, tv)
	if row, open := tv.Revealed(); !open || row != a {
		t.Fatalf("Expected %v revealed after settling, got %v (%v)", a, row, open)
	}
	if tv.RowOffset(a) != 400 {
		t.Errorf("Expected %v fully open, offset %d", a, tv.RowOffset(a))
	}

	if closes := tv.Drag(b, 30); len(closes) != 1 || closes[0].Row != a {
		t.Fatalf("Expected close command for %v, got %v", a, closes)
	}
	// A is still sliding shut, so it remains the recorded row for now.
	if row, _ := tv.Revealed(); row != a {
		t.Errorf("Expected %v still recorded while closing, got %v", a, row)
	}

	settle(t, tv)
	if _, open := tv.Revealed(); open {
		t.Error("Expected no revealed row after A closed")
	}
	if tv.RowOffset(a) != 0 {
		t.Errorf("Expected %v closed, offset %d", a, tv.RowOffset(a))
	}
	if tv.RowOffset(b) != 30 {
		t.Errorf("dragged row should stay where the pointer left it, offset %d", tv.RowOffset(b))
	}

	tv.Release(b, 30)
	settle(t, tv)
	if tv.RowOffset(b) != 0 {
		t.Errorf("Expected %v to snap closed, offset %d", b, tv.RowOffset(b))
	}
}

func TestStaleRowsAreIgnored(t *testing.T) {
	tv, surface := newTestView(t, scenarioSource(), WithoutAnimation())
	stale := Path(7, 3)

	if cmds := tv.Drag(stale, 100); cmds != nil {
		t.Errorf("Expected no commands for a stale row, got %v", cmds)
	}
	if _, ok := tv.Release(stale, 300); ok {
		t.Error("Expected release of a stale row to be a no-op")
	}
	tv.Opened(stale)
	if _, open := tv.Revealed(); open {
		t.Error("stale row must not become revealed")
	}
	if len(surface.reveals) != 0 {
		t.Errorf("Expected no reveal commands, got %v", surface.reveals)
	}
	if _, ok := tv.Release(Path(0, 0), 300); !ok {
		t.Error("cell 0:0 exists and should be releasable")
	}
}

func TestReloadDropsVanishedRows(t *testing.T) {
	src := scenarioSource()
	tv, _ := newTestView(t, src, WithoutAnimation())
	gone, kept := Path(1, 0), Path(0, 1)

	tv.Drag(kept, 40)
	tv.Drag(gone, 400)
	if row, open := tv.Revealed(); !open || row != gone {
		t.Fatalf("Expected %v revealed, got %v (%v)", gone, row, open)
	}

	src.sections = src.sections[:1]
	if err := tv.Reload(); err != nil {
		t.Fatalf("Reload() returned error: %v", err)
	}
	if _, open := tv.Revealed(); open {
		t.Error("revealed row vanished; reveal state should be cleared")
	}
	if tv.RowOffset(gone) != 0 {
		t.Errorf("Expected vanished row offset dropped, got %d", tv.RowOffset(gone))
	}
	if tv.RowOffset(kept) != 40 {
		t.Errorf("Expected surviving row to keep offset 40, got %d", tv.RowOffset(kept))
	}
	if tv.rowOffsets.Generation() != tv.Generation() {
		t.Errorf("row store generation %d, table generation %d", tv.rowOffsets.Generation(), tv.Generation())
	}
}

func TestCloseRevealed(t *testing.T) {
	tv, _ := newTestView(t, scenarioSource(), WithoutAnimation())
	if _, ok := tv.CloseRevealed(); ok {
		t.Error("nothing to close yet")
	}
	tv.Drag(Path(0, 1), 400)
	cmd, ok := tv.CloseRevealed()
	if !ok || cmd.Row != Path(0, 1) || cmd.Target != 0 {
		t.Errorf("Expected close of 0:1, got %+v (%v)", cmd, ok)
	}
	if _, open := tv.Revealed(); open {
		t.Error("Expected no revealed row")
	}
}

func TestEnsureVisible(t *testing.T) {
	tv, _ := newTestView(t, scenarioSource())

	tv.EnsureVisible(Path(1, 0))
	if tv.Offset() != 130 {
		t.Errorf("Expected offset 130 for a row taller than the viewport, got %d", tv.Offset())
	}
	tv.EnsureVisible(Path(0, 0))
	if tv.Offset() != 20 {
		t.Errorf("Expected offset 20 after scrolling up to 0:0, got %d", tv.Offset())
	}
	tv.EnsureVisible(Path(0, 1))
	if tv.Offset() != 20 {
		t.Errorf("0:1 is already visible, offset moved to %d", tv.Offset())
	}

	if off, ok := tv.OffsetOf(Path(0, 1)); !ok || off != 70 {
		t.Errorf("OffsetOf(0:1): expected 70, got %d (%v)", off, ok)
	}
}

func TestCellAndTitle(t *testing.T) {
	tv, _ := newTestView(t, scenarioSource())

	if v, ok := tv.Cell(Path(0, 1)); !ok || v != "0:1" {
		t.Errorf("Expected payload 0:1, got %v (%v)", v, ok)
	}
	if _, ok := tv.Cell(Path(3, 3)); ok {
		t.Error("Expected no payload for a missing row")
	}
	header, _ := tv.Table().Segment(0)
	if got := tv.Title(header); got != "Section 0:0" {
		t.Errorf("Expected header title, got %q", got)
	}
}

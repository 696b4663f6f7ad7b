package tableview

import (
	"context"
	"fmt"
	"log/slog"
)

// DefaultActionWidth is the width of the action panel revealed behind a
// row when it is swiped fully open.
const DefaultActionWidth = 400

// Surface consumes the engine's output. Implementations materialize the
// placed segments, recycle or create elements on transitions and animate
// reveal commands.
type Surface interface {
	// Place receives the full ordered layout after every committed reload.
	Place(segments []Segment)
	// Transitions receives the edge crossings of one scroll update.
	Transitions(events []Transition)
	// Reveal receives a horizontal target for one row.
	Reveal(cmd RevealCommand)
}

type nopSurface struct{}

func (nopSurface) Place([]Segment) {}

func (nopSurface) Transitions([]Transition) {}

func (nopSurface) Reveal(RevealCommand) {}

// TableView ties a content provider and a metrics provider to the layout,
// visibility and reveal state of one list view.
//
// A TableView is not safe for concurrent use. All calls are expected on the
// same dispatch context (the UI thread).
type TableView struct {
	content ContentProvider
	metrics MetricsProvider
	surface Surface
	logger  *slog.Logger

	table      *LayoutTable
	generation uint64 // generation of the committed table
	started    uint64 // generation of the most recent build attempt

	visibility VisibilityState
	reveal     RevealState

	offset      int
	viewport    int
	actionWidth int

	rowOffsets *rowStore[int]
	slider     *Slider // nil: reveal targets apply immediately
}

// Option configures a TableView.
type Option func(*TableView)

// WithViewportHeight sets the initial viewport height.
func WithViewportHeight(h int) Option {
	return func(tv *TableView) { tv.viewport = max(0, h) }
}

// WithActionWidth sets the width of the swipe action panel.
func WithActionWidth(w int) Option {
	return func(tv *TableView) {
		if w > 0 {
			tv.actionWidth = w
		}
	}
}

// WithSurface sets the surface that receives placements, transitions and
// reveal commands.
func WithSurface(s Surface) Option {
	return func(tv *TableView) {
		if s != nil {
			tv.surface = s
		}
	}
}

// WithLogger replaces the package logger for this view.
func WithLogger(l *slog.Logger) Option {
	return func(tv *TableView) {
		if l != nil {
			tv.logger = l
		}
	}
}

// WithAnimation animates reveal targets with a spring stepped at fps.
// This is the default, at 60 fps.
func WithAnimation(fps int) Option {
	return func(tv *TableView) { tv.slider = NewSlider(fps) }
}

// WithoutAnimation makes reveal targets take effect immediately.
func WithoutAnimation() Option {
	return func(tv *TableView) { tv.slider = nil }
}

// New creates a table view. No layout happens until Reload is called.
func New(content ContentProvider, metrics MetricsProvider, opts ...Option) *TableView {
	tv := &TableView{
		content:     content,
		metrics:     metrics,
		surface:     nopSurface{},
		logger:      tableLogger,
		table:       newLayoutTable(0),
		actionWidth: DefaultActionWidth,
		rowOffsets:  newRowStore[int](),
		slider:      NewSlider(defaultSlideFPS),
	}
	for _, opt := range opts {
		opt(tv)
	}
	tv.visibility = Seed(tv.table, tv.viewport)
	return tv
}

// Reload rebuilds the layout from the providers.
//
// The new table is committed only if the build succeeds and no newer
// Reload committed meanwhile (a provider may trigger one from inside its
// callbacks). A nested reload that fails does not supersede the outer one.
// On failure the previous table stays in effect and the error is returned.
func (tv *TableView) Reload() error {
	tv.started++
	gen := tv.started

	table, err := Build(tv.content, tv.metrics)
	if err != nil {
		tv.logger.Warn("reload failed", "generation", gen, "err", err)
		return fmt.Errorf("reload %d: %w", gen, err)
	}
	if gen < tv.generation {
		tv.logger.Debug("reload superseded", "generation", gen, "committed", tv.generation)
		return nil
	}

	tv.commit(gen, table)
	return nil
}

func (tv *TableView) commit(gen uint64, table *LayoutTable) {
	tv.table = table
	tv.generation = gen
	tv.visibility = SeedAt(table, tv.offset, tv.viewport)

	tv.rowOffsets.Sweep(gen, table.Contains)
	if tv.slider != nil {
		for row := range tv.slider.rows {
			if !table.Contains(row) {
				tv.slider.Stop(row)
			}
		}
	}
	if row, open := tv.reveal.Revealed(); open && !table.Contains(row) {
		tv.reveal = RevealState{}
	}

	tv.logger.Debug("reload committed",
		"generation", gen,
		"segments", table.Len(),
		"height", table.TotalHeight())
	tv.surface.Place(table.Segments())
}

// Table returns the committed layout.
func (tv *TableView) Table() *LayoutTable { return tv.table }

// Generation returns the generation of the committed layout (0 before the
// first successful reload).
func (tv *TableView) Generation() uint64 { return tv.generation }

// ContentHeight returns the committed layout's total height.
func (tv *TableView) ContentHeight() int { return tv.table.TotalHeight() }

// Offset returns the current scroll offset.
func (tv *TableView) Offset() int { return tv.offset }

// ViewportHeight returns the viewport height.
func (tv *TableView) ViewportHeight() int { return tv.viewport }

// ActionWidth returns the width of the swipe action panel.
func (tv *TableView) ActionWidth() int { return tv.actionWidth }

// MaxOffset returns the largest resting scroll offset.
func (tv *TableView) MaxOffset() int {
	return max(0, tv.table.TotalHeight()-tv.viewport)
}

// Visibility returns the current visibility state.
func (tv *TableView) Visibility() VisibilityState { return tv.visibility }

// SetViewportHeight changes the viewport height. The next scroll update
// measures the bottom edge against it.
func (tv *TableView) SetViewportHeight(h int) {
	tv.viewport = max(0, h)
}

// ScrollTo moves the view to offset and returns the resulting transitions.
// Offsets outside the content are accepted (overscroll); lookups clamp.
func (tv *TableView) ScrollTo(offset int) []Transition {
	tv.offset = offset
	next, events := tv.visibility.Update(tv.table, offset, tv.viewport)
	tv.visibility = next
	if len(events) == 0 {
		return nil
	}
	if tv.logger.Enabled(context.Background(), slog.LevelDebug) {
		for _, ev := range events {
			tv.logger.Debug("segment transition", "kind", ev.Kind, "segment", ev.Segment.Key(), "offset", offset)
		}
	}
	tv.surface.Transitions(events)
	return events
}

// ScrollBy scrolls by delta (positive moves content up).
func (tv *TableView) ScrollBy(delta int) []Transition {
	return tv.ScrollTo(tv.offset + delta)
}

// OffsetOf returns the start offset of a row.
func (tv *TableView) OffsetOf(row IndexPath) (int, bool) {
	i, ok := tv.table.Find(KindCell, row)
	if !ok {
		return 0, false
	}
	seg, _ := tv.table.Segment(i)
	return seg.Start, true
}

// EnsureVisible scrolls the minimum distance that brings row fully into
// the viewport. Rows taller than the viewport align to the top.
func (tv *TableView) EnsureVisible(row IndexPath) []Transition {
	i, ok := tv.table.Find(KindCell, row)
	if !ok {
		return nil
	}
	seg, _ := tv.table.Segment(i)
	w := WindowAt(tv.offset, tv.viewport)
	switch {
	case seg.Start < w.Top || seg.Height >= tv.viewport:
		return tv.ScrollTo(min(seg.Start, tv.MaxOffset()))
	case seg.End() > w.Bottom:
		return tv.ScrollTo(seg.End() - tv.viewport)
	}
	return nil
}

// Visible returns the segments intersecting the viewport.
func (tv *TableView) Visible() []Segment {
	w := WindowAt(tv.offset, tv.viewport)
	return tv.table.Window(w.Top, w.Bottom)
}

// Cell returns the provider's payload for a row of the committed layout.
func (tv *TableView) Cell(row IndexPath) (any, bool) {
	if !tv.table.Contains(row) {
		return nil, false
	}
	return tv.content.Cell(row), true
}

// Title returns the header or footer title of a segment when the content
// provider implements TitleProvider.
func (tv *TableView) Title(seg Segment) string {
	tp, ok := tv.content.(TitleProvider)
	if !ok {
		return ""
	}
	switch seg.Kind {
	case KindHeader:
		return tp.HeaderTitle(seg.Section)
	case KindFooter:
		return tp.FooterTitle(seg.Section)
	}
	return ""
}

// Revealed returns the row whose action panel is open.
func (tv *TableView) Revealed() (IndexPath, bool) {
	return tv.reveal.Revealed()
}

// RowOffset returns a row's current horizontal offset.
func (tv *TableView) RowOffset(row IndexPath) int {
	off, _ := tv.rowOffsets.Lookup(row)
	return off
}

// Drag reports that row is being dragged to a horizontal offset. Any other
// open row is commanded closed first; the returned commands are the ones
// issued. Rows missing from the committed layout are ignored.
func (tv *TableView) Drag(row IndexPath, offset int) []RevealCommand {
	if !tv.live(row, "drag") {
		return nil
	}
	next, cmds := tv.reveal.Drag(row, offset)
	tv.reveal = next
	for _, cmd := range cmds {
		tv.apply(cmd)
	}
	if tv.slider != nil {
		tv.slider.Stop(row)
	}
	tv.setRowOffset(row, clamp(offset, 0, tv.actionWidth))
	return cmds
}

// Release reports that the drag of row ended at offset and returns where
// the row will settle.
func (tv *TableView) Release(row IndexPath, offset int) (RevealCommand, bool) {
	if !tv.live(row, "release") {
		return RevealCommand{}, false
	}
	cmd := tv.reveal.Release(row, offset, tv.actionWidth)
	tv.apply(cmd)
	return cmd, true
}

// Opened reports that row settled fully open. It becomes the revealed row
// and any previously revealed row is commanded closed.
func (tv *TableView) Opened(row IndexPath) {
	if !tv.live(row, "opened") {
		return
	}
	next, cmds := tv.reveal.Opened(row)
	tv.reveal = next
	for _, cmd := range cmds {
		tv.apply(cmd)
	}
}

// Closed reports that row settled at offset 0.
func (tv *TableView) Closed(row IndexPath) {
	if !tv.live(row, "closed") {
		return
	}
	tv.reveal = tv.reveal.Closed(row)
}

// CloseRevealed commands the open row, if any, to close.
func (tv *TableView) CloseRevealed() (RevealCommand, bool) {
	row, open := tv.reveal.Revealed()
	if !open {
		return RevealCommand{}, false
	}
	cmd := RevealCommand{Row: row, Target: 0}
	tv.apply(cmd)
	return cmd, true
}

// Animating reports whether any row is still sliding.
func (tv *TableView) Animating() bool {
	return tv.slider != nil && tv.slider.Active()
}

// Step advances reveal animations by one frame. Surfaces call it once per
// rendered frame while Animating is true.
func (tv *TableView) Step() []SlideFrame {
	if tv.slider == nil {
		return nil
	}
	frames := tv.slider.Step()
	for _, f := range frames {
		tv.setRowOffset(f.Row, f.Offset)
	}
	return frames
}

// apply hands a reveal command to the surface and starts moving the row.
func (tv *TableView) apply(cmd RevealCommand) {
	tv.logger.Debug("reveal command", "row", cmd.Row, "target", cmd.Target)
	tv.surface.Reveal(cmd)
	if tv.slider == nil {
		tv.setRowOffset(cmd.Row, cmd.Target)
		return
	}
	tv.slider.Animate(cmd.Row, tv.RowOffset(cmd.Row), cmd.Target)
}

// setRowOffset records a row's horizontal offset. Reaching either end
// reports the row opened or closed.
func (tv *TableView) setRowOffset(row IndexPath, offset int) {
	tv.rowOffsets.Set(row, offset)
	switch offset {
	case tv.actionWidth:
		tv.Opened(row)
	case 0:
		tv.Closed(row)
	}
}

func (tv *TableView) live(row IndexPath, op string) bool {
	if tv.table.Contains(row) {
		return true
	}
	tv.logger.Debug("ignoring stale row", "op", op, "row", row, "generation", tv.generation)
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package term renders a tableview.TableView in a terminal with Bubble Tea.
//
// One layout unit is one terminal line vertically and one column
// horizontally. The last line of the view is a status line.
package term

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/go-theft-auto/tableview"
)

const (
	// DefaultActionWidth is the revealed panel width in columns.
	DefaultActionWidth = 12

	// ActionLabel is drawn centered on the revealed action panel.
	ActionLabel = "Delete"

	frameRate     = 60
	frameInterval = time.Second / frameRate
	wheelStep     = 3
)

// ActionMsg is sent when the action panel of a revealed row is triggered,
// by Enter on the selected row or by clicking the panel.
type ActionMsg struct {
	Row tableview.IndexPath
}

type animateMsg struct{}

// Option configures a Model.
type Option func(*Model)

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// WithStyles replaces the default styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithTableOptions passes options through to the underlying TableView.
// The Model always installs itself as the surface.
func WithTableOptions(opts ...tableview.Option) Option {
	return func(m *Model) { m.tableOpts = append(m.tableOpts, opts...) }
}

// Model is a Bubble Tea model wrapping a TableView. It is the view's
// Surface: transitions and reveal commands show up in the status line.
type Model struct {
	tv      *tableview.TableView
	gesture *tableview.Gesture
	zones   *zone.Manager
	prefix  string

	keys      KeyMap
	styles    Styles
	tableOpts []tableview.Option

	width, height int

	cursor    tableview.IndexPath
	hasCursor bool

	placed     int
	last       []tableview.Transition
	lastReveal *tableview.RevealCommand
	lastAction *tableview.IndexPath
	err        error
	ticking    bool
}

var (
	_ tea.Model         = (*Model)(nil)
	_ tableview.Surface = (*Model)(nil)
)

// NewModel creates a model over the given providers and runs the first
// reload.
func NewModel(content tableview.ContentProvider, metrics tableview.MetricsProvider, opts ...Option) (*Model, error) {
	m := &Model{
		zones:  zone.New(),
		keys:   DefaultKeyMap(),
		styles: DefaultStyles(),
	}
	m.prefix = m.zones.NewPrefix()
	for _, opt := range opts {
		opt(m)
	}

	tableOpts := append([]tableview.Option{
		tableview.WithActionWidth(DefaultActionWidth),
		tableview.WithAnimation(frameRate),
	}, m.tableOpts...)
	tableOpts = append(tableOpts, tableview.WithSurface(m))

	m.tv = tableview.New(content, metrics, tableOpts...)
	m.gesture = tableview.NewGesture(m.tv, 0)
	m.gesture.Slop = 1

	if err := m.tv.Reload(); err != nil {
		return nil, fmt.Errorf("initial reload: %w", err)
	}
	return m, nil
}

// TableView returns the underlying engine.
func (m *Model) TableView() *tableview.TableView { return m.tv }

// Cursor returns the selected row.
func (m *Model) Cursor() (tableview.IndexPath, bool) { return m.cursor, m.hasCursor }

// LastAction returns the row whose action ran most recently.
func (m *Model) LastAction() (tableview.IndexPath, bool) {
	if m.lastAction == nil {
		return tableview.IndexPath{}, false
	}
	return *m.lastAction, true
}

// Place implements tableview.Surface.
func (m *Model) Place(segments []tableview.Segment) {
	m.placed = len(segments)
	if m.hasCursor && m.tv.Table().Contains(m.cursor) {
		return
	}
	m.hasCursor = false
	for _, seg := range segments {
		if seg.Kind == tableview.KindCell {
			m.cursor, m.hasCursor = seg.Path(), true
			return
		}
	}
}

// Transitions implements tableview.Surface.
func (m *Model) Transitions(events []tableview.Transition) {
	m.last = events
}

// Reveal implements tableview.Surface.
func (m *Model) Reveal(cmd tableview.RevealCommand) {
	m.lastReveal = &cmd
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case animateMsg:
		m.ticking = false
		m.tv.Step()
		return m, m.animate()

	case ActionMsg:
		row := msg.Row
		m.lastAction = &row
		m.tv.CloseRevealed()
		return m, m.animate()

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, tea.Batch(cmd, m.animate())

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, tea.Batch(cmd, m.animate())
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.gesture.Width = float32(width)
	m.tv.SetViewportHeight(max(0, height-1))
	m.tv.ScrollTo(m.clampOffset(m.tv.Offset()))
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	page := max(1, m.tv.ViewportHeight()-1)
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(-page)
	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(page)
	case key.Matches(msg, m.keys.Home):
		m.tv.ScrollTo(0)
	case key.Matches(msg, m.keys.End):
		m.tv.ScrollTo(m.tv.MaxOffset())
	case key.Matches(msg, m.keys.Open):
		if m.hasCursor {
			m.tv.Release(m.cursor, m.tv.ActionWidth())
		}
	case key.Matches(msg, m.keys.Close):
		if m.hasCursor {
			m.tv.Release(m.cursor, 0)
		}
	case key.Matches(msg, m.keys.Action):
		if row, open := m.tv.Revealed(); open && m.hasCursor && row == m.cursor {
			return func() tea.Msg { return ActionMsg{Row: row} }
		}
	case key.Matches(msg, m.keys.Cancel):
		m.tv.CloseRevealed()
	case key.Matches(msg, m.keys.Reload):
		m.err = m.tv.Reload()
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	x, y := float32(msg.X), float32(msg.Y)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollBy(-wheelStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollBy(wheelStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.gesture.Down(x, y) {
			if seg, ok := m.tv.HitTest(x, y, m.gesture.Width); ok && seg.Kind == tableview.KindCell {
				m.cursor, m.hasCursor = seg.Path(), true
			}
		}
	case msg.Action == tea.MouseActionMotion:
		m.gesture.Move(x, y)
	case msg.Action == tea.MouseActionRelease:
		if m.gesture.Up(x, y) != tableview.AxisNone {
			return nil
		}
		if row, open := m.tv.Revealed(); open {
			if z := m.zones.Get(m.actionZone(row)); z != nil && z.InBounds(msg) {
				return func() tea.Msg { return ActionMsg{Row: row} }
			}
		}
	}
	return nil
}

// moveCursor selects the previous (dir < 0) or next row and scrolls it
// into view.
func (m *Model) moveCursor(dir int) {
	table := m.tv.Table()
	if !m.hasCursor {
		return
	}
	i, ok := table.Find(tableview.KindCell, m.cursor)
	if !ok {
		return
	}
	for i += dir; i >= 0 && i < table.Len(); i += dir {
		seg, _ := table.Segment(i)
		if seg.Kind == tableview.KindCell {
			m.cursor = seg.Path()
			m.tv.EnsureVisible(m.cursor)
			return
		}
	}
}

func (m *Model) scrollBy(delta int) {
	m.tv.ScrollTo(m.clampOffset(m.tv.Offset() + delta))
}

func (m *Model) clampOffset(offset int) int {
	return max(0, min(offset, m.tv.MaxOffset()))
}

// animate schedules the next animation frame while rows are sliding.
func (m *Model) animate() tea.Cmd {
	if m.ticking || !m.tv.Animating() {
		return nil
	}
	m.ticking = true
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return animateMsg{} })
}

func (m *Model) actionZone(row tableview.IndexPath) string {
	return m.prefix + "action_" + row.String()
}

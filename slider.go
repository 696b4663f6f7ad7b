package tableview

import (
	"math"
	"slices"

	"github.com/charmbracelet/harmonica"
)

// Spring defaults for row translation. Critically damped so an open row
// never overshoots past its action panel.
const (
	defaultSlideFPS       = 60
	defaultSlideFrequency = 12.0
	defaultSlideDamping   = 1.0

	// settleDistance is how close (in layout units) a row must be to its
	// target, with negligible velocity, before it snaps and settles.
	settleDistance = 0.5
	settleVelocity = 0.5
)

// SlideFrame is a row's horizontal offset after one animation step.
type SlideFrame struct {
	Row     IndexPath
	Offset  int
	Settled bool
}

type slide struct {
	pos    float64
	vel    float64
	target int
}

// Slider animates rows toward their reveal targets with a spring.
// It is driven by Step, once per rendered frame.
type Slider struct {
	spring harmonica.Spring
	rows   map[IndexPath]*slide
}

// NewSlider creates a slider stepping at fps frames per second.
func NewSlider(fps int) *Slider {
	if fps <= 0 {
		fps = defaultSlideFPS
	}
	return &Slider{
		spring: harmonica.NewSpring(harmonica.FPS(fps), defaultSlideFrequency, defaultSlideDamping),
		rows:   make(map[IndexPath]*slide),
	}
}

// Animate starts (or retargets) the animation of row from offset to target.
// A row already in flight keeps its velocity.
func (s *Slider) Animate(row IndexPath, from, target int) {
	if sl, ok := s.rows[row]; ok {
		sl.target = target
		return
	}
	s.rows[row] = &slide{pos: float64(from), target: target}
}

// Stop cancels any animation for row, leaving it where it is.
func (s *Slider) Stop(row IndexPath) {
	delete(s.rows, row)
}

// Animating reports whether row is in flight.
func (s *Slider) Animating(row IndexPath) bool {
	_, ok := s.rows[row]
	return ok
}

// Active reports whether any row is in flight.
func (s *Slider) Active() bool {
	return len(s.rows) > 0
}

// Target returns where row is heading, if it is animating.
func (s *Slider) Target(row IndexPath) (int, bool) {
	sl, ok := s.rows[row]
	if !ok {
		return 0, false
	}
	return sl.target, true
}

// Step advances every animation by one frame. Rows that reach their target
// are reported with Settled set and removed from the slider. Frames are
// ordered by row.
func (s *Slider) Step() []SlideFrame {
	if len(s.rows) == 0 {
		return nil
	}
	rows := make([]IndexPath, 0, len(s.rows))
	for row := range s.rows {
		rows = append(rows, row)
	}
	slices.SortFunc(rows, IndexPath.Compare)

	frames := make([]SlideFrame, 0, len(rows))
	for _, row := range rows {
		sl := s.rows[row]
		target := float64(sl.target)
		sl.pos, sl.vel = s.spring.Update(sl.pos, sl.vel, target)

		if math.Abs(sl.pos-target) < settleDistance && math.Abs(sl.vel) < settleVelocity {
			frames = append(frames, SlideFrame{Row: row, Offset: sl.target, Settled: true})
			delete(s.rows, row)
			continue
		}
		frames = append(frames, SlideFrame{Row: row, Offset: int(math.Round(sl.pos))})
	}
	return frames
}

// Clear drops every animation.
func (s *Slider) Clear() {
	clear(s.rows)
}

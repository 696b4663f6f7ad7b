package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/tableview"
)

// ScrollStep is how far one wheel notch scrolls, in pixels.
const ScrollStep = 40

// GLFWInputAdapter feeds GLFW window input into a TableView: the wheel and
// arrow keys scroll, the left mouse button drives a tableview.Gesture.
type GLFWInputAdapter struct {
	window  *glfw.Window
	tv      *tableview.TableView
	gesture *tableview.Gesture

	// Cursor coordinates are in window units; the renderer works in
	// framebuffer pixels. scale converts between the two on HiDPI screens.
	scaleX, scaleY float32
}

// NewGLFWInputAdapter installs callbacks on window that drive tv.
func NewGLFWInputAdapter(window *glfw.Window, tv *tableview.TableView) *GLFWInputAdapter {
	adapter := &GLFWInputAdapter{
		window: window,
		tv:     tv,
		scaleX: 1,
		scaleY: 1,
	}
	adapter.gesture = tableview.NewGesture(tv, 0)
	adapter.Resize()

	window.SetKeyCallback(adapter.keyCallback)
	window.SetMouseButtonCallback(adapter.mouseButtonCallback)
	window.SetScrollCallback(adapter.scrollCallback)
	window.SetCursorPosCallback(adapter.cursorPosCallback)

	return adapter
}

// Gesture returns the pointer recognizer.
func (a *GLFWInputAdapter) Gesture() *tableview.Gesture {
	return a.gesture
}

// Resize re-reads the window and framebuffer sizes and updates the table's
// viewport. Call it when the framebuffer size changes.
func (a *GLFWInputAdapter) Resize() (width, height int) {
	width, height = a.window.GetFramebufferSize()
	ww, wh := a.window.GetSize()
	if ww > 0 && wh > 0 {
		a.scaleX = float32(width) / float32(ww)
		a.scaleY = float32(height) / float32(wh)
	}
	a.gesture.Width = float32(width)
	a.tv.SetViewportHeight(height)
	return width, height
}

func (a *GLFWInputAdapter) cursor() (float32, float32) {
	x, y := a.window.GetCursorPos()
	return float32(x) * a.scaleX, float32(y) * a.scaleY
}

func (a *GLFWInputAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	if key == glfw.KeyEscape {
		a.tv.CloseRevealed()
		return
	}
	if delta, ok := keyScroll(key, a.tv); ok {
		a.tv.ScrollTo(clampOffset(a.tv.Offset()+delta, a.tv))
	}
}

func (a *GLFWInputAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	x, y := a.cursor()
	switch action {
	case glfw.Press:
		a.gesture.Down(x, y)
	case glfw.Release:
		a.gesture.Up(x, y)
	}
}

func (a *GLFWInputAdapter) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	if a.gesture.Dragging() {
		return
	}
	delta := int(-yoff * ScrollStep)
	a.tv.ScrollTo(clampOffset(a.tv.Offset()+delta, a.tv))
}

func (a *GLFWInputAdapter) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	if !a.gesture.Dragging() {
		return
	}
	a.gesture.Move(float32(xpos)*a.scaleX, float32(ypos)*a.scaleY)
}

// keyScroll maps navigation keys to a scroll delta.
func keyScroll(key glfw.Key, tv *tableview.TableView) (int, bool) {
	page := max(tv.ViewportHeight()-ScrollStep, ScrollStep)
	switch key {
	case glfw.KeyUp:
		return -ScrollStep, true
	case glfw.KeyDown:
		return ScrollStep, true
	case glfw.KeyPageUp:
		return -page, true
	case glfw.KeyPageDown:
		return page, true
	case glfw.KeyHome:
		return -tv.Offset(), true
	case glfw.KeyEnd:
		return tv.MaxOffset() - tv.Offset(), true
	default:
		return 0, false
	}
}

func clampOffset(offset int, tv *tableview.TableView) int {
	return max(0, min(offset, tv.MaxOffset()))
}

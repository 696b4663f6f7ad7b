// Example opens a window listing sample sections with variable-height rows.
// Scroll with the wheel or by dragging vertically; swipe a row left to
// reveal its action panel; Escape closes it.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//	go run ./example/ -v      # log every segment transition
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/tableview"
	"github.com/go-theft-auto/tableview/backend/opengl"
	"github.com/go-theft-auto/tableview/internal/demo"
)

const (
	windowWidth  = 480
	windowHeight = 720
	windowTitle  = "tableview example"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	verbose := flag.Bool("v", false, "log segment transitions and reloads")
	sections := flag.Int("sections", 5, "number of sections")
	rows := flag.Int("rows", 12, "rows per section")
	flag.Parse()

	tableview.SetVerbose(*verbose)
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, *sections, *rows); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// logSurface reports what the engine hands to a surface.
type logSurface struct {
	logger *slog.Logger
}

func (s logSurface) Place(segments []tableview.Segment) {
	s.logger.Info("placed", "segments", len(segments))
}

func (s logSurface) Transitions(events []tableview.Transition) {
	for _, ev := range events {
		s.logger.Debug("transition", "event", ev.String())
	}
}

func (s logSurface) Reveal(cmd tableview.RevealCommand) {
	s.logger.Debug("reveal", "row", cmd.Row.String(), "target", cmd.Target)
}

func run(logger *slog.Logger, sections, rows int) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	fbw, fbh := window.GetFramebufferSize()
	renderer, err := opengl.NewRenderer(fbw, fbh)
	if err != nil {
		return fmt.Errorf("table renderer: %w", err)
	}
	defer renderer.Delete()

	src := demo.New(sections, rows, 1)
	tv := tableview.New(src, src,
		tableview.WithActionWidth(fbw/3),
		tableview.WithSurface(logSurface{logger: logger}),
	)

	input := opengl.NewGLFWInputAdapter(window, tv)
	if err := tv.Reload(); err != nil {
		return fmt.Errorf("reload: %w", err)
	}

	resized := false
	window.SetFramebufferSizeCallback(func(*glfw.Window, int, int) { resized = true })

	pal := tableview.DefaultPalette()
	for !window.ShouldClose() {
		glfw.PollEvents()

		if resized {
			resized = false
			w, h := input.Resize()
			renderer.Resize(w, h)
			tv.ScrollTo(min(tv.Offset(), tv.MaxOffset()))
		}
		if tv.Animating() {
			tv.Step()
		}

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		dl := tableview.AcquireDrawList()
		tv.Draw(dl, float32(w), pal)
		err := renderer.Render(dl)
		tableview.ReleaseDrawList(dl)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}

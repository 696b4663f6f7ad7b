// Command gen renders the sample table in a few states, captures framebuffer
// pixels, and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/tableview"
	"github.com/go-theft-auto/tableview/backend/opengl"
	"github.com/go-theft-auto/tableview/internal/demo"
)

const (
	shotWidth  = 360
	shotHeight = 540
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single table state to capture.
type screenshot struct {
	name  string                     // filename without extension
	setup func(*tableview.TableView) // puts the table into the pictured state
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	// The hidden window stays at 800x600, larger than every screenshot.
	renderer, err := opengl.NewRenderer(shotWidth, shotHeight)
	if err != nil {
		return fmt.Errorf("table renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(renderer, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, shotWidth, shotHeight)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(renderer *opengl.Renderer, s screenshot, outDir string) error {
	// Fresh table per screenshot to avoid state leaking between captures.
	src := demo.New(4, 8, 1)
	tv := tableview.New(src, src,
		tableview.WithViewportHeight(shotHeight),
		tableview.WithActionWidth(shotWidth/3),
		tableview.WithoutAnimation(),
	)
	if err := tv.Reload(); err != nil {
		return err
	}
	s.setup(tv)

	gl.Viewport(0, 0, shotWidth, shotHeight)
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	dl := tableview.AcquireDrawList()
	tv.Draw(dl, shotWidth, tableview.DefaultPalette())
	err := renderer.Render(dl)
	tableview.ReleaseDrawList(dl)
	if err != nil {
		return err
	}

	pixels := make([]byte, shotWidth*shotHeight*4)
	gl.ReadPixels(0, 0, shotWidth, shotHeight, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := shotWidth * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < shotHeight/2; y++ {
		top := y * rowLen
		bot := (shotHeight - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, shotWidth, shotHeight))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// buildScreenshots returns the table states to capture.
func buildScreenshots() []screenshot {
	return []screenshot{
		{name: "top", setup: func(*tableview.TableView) {}},
		{name: "scrolled", setup: func(tv *tableview.TableView) {
			tv.EnsureVisible(tableview.Path(2, 3))
		}},
		{name: "revealed", setup: func(tv *tableview.TableView) {
			row := tableview.Path(0, 1)
			tv.Drag(row, tv.ActionWidth())
		}},
		{name: "swiping", setup: func(tv *tableview.TableView) {
			tv.Drag(tableview.Path(0, 2), tv.ActionWidth()/2)
		}},
		{name: "overscroll", setup: func(tv *tableview.TableView) {
			tv.ScrollTo(-120)
		}},
	}
}

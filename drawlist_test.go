package tableview

import "testing"

func TestDrawListAddRect(t *testing.T) {
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	dl.AddRect(10, 20, 30, 40, ColorRed)
	dl.AddRect(0, 0, 10, 10, ColorTransparent) // skipped
	dl.AddRect(0, 0, 0, 10, ColorRed)          // skipped
	dl.Finalize()

	if dl.RectCount() != 1 {
		t.Fatalf("Expected 1 rect, got %d", dl.RectCount())
	}
	if len(dl.IdxBuffer) != 6 {
		t.Errorf("Expected 6 indices, got %d", len(dl.IdxBuffer))
	}
	if got := dl.VtxBuffer[2].Pos; got != [2]float32{40, 60} {
		t.Errorf("Expected bottom-right corner {40 60}, got %v", got)
	}
	if len(dl.CmdBuffer) != 1 || dl.CmdBuffer[0].ElemCount != 6 {
		t.Errorf("Expected one command of 6 elements, got %+v", dl.CmdBuffer)
	}
}

func TestDrawListClipStack(t *testing.T) {
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	dl.AddRect(0, 0, 5, 5, ColorBlue)
	dl.PushClipRect(0, 0, 100, 50)
	dl.AddRect(0, 0, 5, 5, ColorBlue)
	dl.AddRect(0, 0, 5, 5, ColorBlue)
	if clip := dl.ClipRect(); clip != [4]float32{0, 0, 100, 50} {
		t.Errorf("Expected pushed clip, got %v", clip)
	}
	dl.PopClipRect()
	dl.Finalize()

	if len(dl.CmdBuffer) != 2 {
		t.Fatalf("Expected 2 commands, got %d", len(dl.CmdBuffer))
	}
	if dl.CmdBuffer[0].ElemCount != 6 || dl.CmdBuffer[1].ElemCount != 12 {
		t.Errorf("Expected 6 and 12 elements, got %d and %d", dl.CmdBuffer[0].ElemCount, dl.CmdBuffer[1].ElemCount)
	}
	if dl.CmdBuffer[1].ClipRect != [4]float32{0, 0, 100, 50} {
		t.Errorf("second command should carry the pushed clip, got %v", dl.CmdBuffer[1].ClipRect)
	}
	if dl.CmdBuffer[1].VertexOffset != 4 {
		t.Errorf("Expected vertex offset 4, got %d", dl.CmdBuffer[1].VertexOffset)
	}
}

func TestDrawListOutline(t *testing.T) {
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	dl.AddRectOutline(0, 0, 20, 10, ColorBlack, 1)
	if dl.RectCount() != 4 {
		t.Errorf("Expected 4 edge rects, got %d", dl.RectCount())
	}
}

func TestColorPacking(t *testing.T) {
	c := RGBA(1, 2, 3, 4)
	if c != 0x04030201 {
		t.Errorf("Expected 0x04030201, got %#x", c)
	}
	r, g, b, a := UnpackRGBA(c)
	if r != 1 || g != 2 || b != 3 || a != 4 {
		t.Errorf("Expected 1 2 3 4, got %d %d %d %d", r, g, b, a)
	}
	if r, _, _, _ := UnpackRGBA(ColorRed); r != 0xFF {
		t.Errorf("ColorRed should have a full red channel, got %d", r)
	}
}

func TestDrawVisibleSegments(t *testing.T) {
	tv, _ := newTestView(t, scenarioSource(), WithoutAnimation())
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	// Background, then header, 0:0 and 0:1 each with a separator.
	tv.Draw(dl, testWidth, DefaultPalette())
	dl.Finalize()
	if dl.RectCount() != 7 {
		t.Fatalf("Expected 7 rects, got %d", dl.RectCount())
	}
	if len(dl.CmdBuffer) != 1 || dl.CmdBuffer[0].ClipRect != [4]float32{0, 0, testWidth, 100} {
		t.Errorf("Expected one command clipped to the viewport, got %+v", dl.CmdBuffer)
	}

	tv.Drag(Path(0, 0), 100)
	dl.Clear()
	tv.Draw(dl, testWidth, DefaultPalette())
	if dl.RectCount() != 8 {
		t.Fatalf("Expected the action panel as an extra rect, got %d", dl.RectCount())
	}
	// Rect 3 is the action panel, rect 4 the shifted cell.
	if x := dl.VtxBuffer[3*4].Pos[0]; x != testWidth-100 {
		t.Errorf("Expected action panel at x=%d, got %v", testWidth-100, x)
	}
	if x := dl.VtxBuffer[4*4].Pos[0]; x != -100 {
		t.Errorf("Expected cell shifted to x=-100, got %v", x)
	}
	if c := dl.VtxBuffer[4*4].Color; c != ColorBlue {
		t.Errorf("Expected first cell blue, got %#x", c)
	}
}

func TestHitTest(t *testing.T) {
	tv, _ := newTestView(t, scenarioSource())
	tv.ScrollTo(60)

	seg, ok := tv.HitTest(10, 5, testWidth)
	if !ok || seg.Key() != "c_0_0" {
		t.Errorf("Expected c_0_0 at y=5, got %v (%v)", seg, ok)
	}
	seg, _ = tv.HitTest(10, 65, testWidth)
	if seg.Key() != "f_0_0" {
		t.Errorf("Expected f_0_0 at y=65, got %v", seg)
	}
	if _, ok := tv.HitTest(10, 100, testWidth); ok {
		t.Error("Expected no hit below the viewport")
	}

	r := tv.SegmentRect(seg, testWidth)
	if r.Y != 60 || r.H != 10 || !r.Contains(5, 65) {
		t.Errorf("Expected footer rect at y=60 h=10, got %+v", r)
	}
}

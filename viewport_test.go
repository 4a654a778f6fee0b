package reveal

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func newTestViewport() *Viewport {
	v := NewViewport(800, 600)
	v.ContentHeight = 2000
	return v
}

func TestViewportClamp(t *testing.T) {
	v := newTestViewport()
	if v.MaxScroll() != 1400 {
		t.Fatalf("MaxScroll = %v, want 1400", v.MaxScroll())
	}

	v.ScrollBy(5000)
	if v.ScrollY != 1400 {
		t.Errorf("ScrollY = %v, want 1400", v.ScrollY)
	}
	v.ScrollBy(-9999)
	if v.ScrollY != 0 {
		t.Errorf("ScrollY = %v, want 0", v.ScrollY)
	}
}

func TestViewportShortDocument(t *testing.T) {
	v := NewViewport(800, 600)
	v.ContentHeight = 400
	v.ScrollBy(100)
	if v.ScrollY != 0 || v.MaxScroll() != 0 || v.Progress() != 0 {
		t.Errorf("ScrollY = %v, MaxScroll = %v, Progress = %v", v.ScrollY, v.MaxScroll(), v.Progress())
	}
}

func TestViewportScrollToJump(t *testing.T) {
	v := newTestViewport()
	v.ScrollTo(300, 0, nil)
	if v.ScrollY != 300 || v.Scrolling() {
		t.Errorf("ScrollY = %v, Scrolling = %v", v.ScrollY, v.Scrolling())
	}
	if !approxEqual(v.Progress(), 300.0/1400, 1e-9) {
		t.Errorf("Progress = %v", v.Progress())
	}
}

func TestViewportScrollToTween(t *testing.T) {
	v := newTestViewport()
	v.ScrollTo(1000, 1, ease.Linear)
	if !v.Scrolling() || v.ScrollY != 0 {
		t.Fatalf("Scrolling = %v, ScrollY = %v", v.Scrolling(), v.ScrollY)
	}

	v.update(0.5)
	if !approxEqual(v.ScrollY, 500, 1e-3) {
		t.Errorf("ScrollY at half = %v, want 500", v.ScrollY)
	}
	v.update(0.5)
	if v.ScrollY != 1000 || v.Scrolling() {
		t.Errorf("ScrollY = %v, Scrolling = %v", v.ScrollY, v.Scrolling())
	}
}

func TestViewportScrollToClampsTarget(t *testing.T) {
	v := newTestViewport()
	v.ScrollTo(9000, 0, nil)
	if v.ScrollY != 1400 {
		t.Errorf("ScrollY = %v, want 1400", v.ScrollY)
	}
}

func TestViewportScrollByCancelsTween(t *testing.T) {
	v := newTestViewport()
	v.ScrollTo(1000, 1, ease.Linear)
	v.ScrollBy(50)
	if v.Scrolling() {
		t.Error("ScrollBy should cancel the smooth scroll")
	}
	v.update(0.5)
	if v.ScrollY != 50 {
		t.Errorf("ScrollY = %v, want 50", v.ScrollY)
	}
}

func TestViewportScrollToNode(t *testing.T) {
	v := newTestViewport()
	n := newSection("contact", 900)
	v.ScrollToNode(n, 64, 0, nil)
	if v.ScrollY != 836 {
		t.Errorf("ScrollY = %v, want 836", v.ScrollY)
	}
}

func TestViewportVisibleBoundsAndConversion(t *testing.T) {
	v := newTestViewport()
	v.ScrollBy(250)
	want := Rect{X: 0, Y: 250, Width: 800, Height: 600}
	if got := v.VisibleBounds(); got != want {
		t.Errorf("VisibleBounds = %+v, want %+v", got, want)
	}
	if _, sy := v.PageToScreen(10, 300); sy != 50 {
		t.Errorf("PageToScreen y = %v, want 50", sy)
	}
	if _, py := v.ScreenToPage(10, 50); py != 300 {
		t.Errorf("ScreenToPage y = %v, want 300", py)
	}
}

func TestViewportResizeReclamps(t *testing.T) {
	v := newTestViewport()
	v.ScrollBy(1400)
	v.Resize(800, 1000)
	if v.ScrollY != 1000 {
		t.Errorf("ScrollY = %v, want 1000 after taller viewport", v.ScrollY)
	}
}

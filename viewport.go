package reveal

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Viewport is the window onto the page: a vertical scroll offset over a
// document of ContentHeight, seen through a Width x Height screen.
type Viewport struct {
	// ScrollY is the page-space Y shown at the top of the screen.
	ScrollY float64
	// Width and Height are the screen size in pixels.
	Width, Height float64
	// ContentHeight is the document height. Page refreshes it every frame
	// from the layout of the node tree.
	ContentHeight float64

	scrollTween *gween.Tween
}

// NewViewport creates a viewport of the given screen size scrolled to the top.
func NewViewport(w, h float64) *Viewport {
	return &Viewport{Width: w, Height: h}
}

// MaxScroll returns the largest valid ScrollY.
func (v *Viewport) MaxScroll() float64 {
	return math.Max(0, v.ContentHeight-v.Height)
}

// Progress returns the normalized scroll position in [0, 1].
func (v *Viewport) Progress() float64 {
	return ScrollProgress(v.ScrollY, v.ContentHeight, v.Height)
}

// ScrollBy moves the viewport by dy pixels immediately, cancelling any
// smooth scroll.
func (v *Viewport) ScrollBy(dy float64) {
	v.scrollTween = nil
	v.ScrollY += dy
	v.clamp()
}

// ScrollTo animates ScrollY to y over duration seconds. A non-positive
// duration jumps immediately.
func (v *Viewport) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	y = math.Max(0, math.Min(y, v.MaxScroll()))
	if duration <= 0 {
		v.scrollTween = nil
		v.ScrollY = y
		return
	}
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	v.scrollTween = gween.New(float32(v.ScrollY), float32(y), duration, easeFn)
}

// ScrollToNode animates the viewport so the top of node's layout box sits
// offset pixels below the top of the screen (use a positive offset to clear
// a fixed navigation bar). This is how in-page anchor links behave.
func (v *Viewport) ScrollToNode(node *Node, offset float64, duration float32, easeFn ease.TweenFunc) {
	v.ScrollTo(node.LayoutBounds().Y-offset, duration, easeFn)
}

// Scrolling reports whether a smooth scroll is in progress.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// Resize sets the screen size and re-clamps the scroll offset.
func (v *Viewport) Resize(w, h float64) {
	v.Width = w
	v.Height = h
	v.clamp()
}

// update advances smooth scrolling and clamps. Called from Page.Update.
func (v *Viewport) update(dt float32) {
	if v.scrollTween != nil {
		val, done := v.scrollTween.Update(dt)
		v.ScrollY = float64(val)
		if done {
			v.scrollTween = nil
		}
	}
	v.clamp()
}

// clamp restricts ScrollY to [0, MaxScroll].
func (v *Viewport) clamp() {
	v.ScrollY = math.Max(0, math.Min(v.ScrollY, v.MaxScroll()))
}

// VisibleBounds returns the page-space rectangle currently on screen.
func (v *Viewport) VisibleBounds() Rect {
	return Rect{X: 0, Y: v.ScrollY, Width: v.Width, Height: v.Height}
}

// PageToScreen converts page coordinates to screen coordinates.
func (v *Viewport) PageToScreen(px, py float64) (sx, sy float64) {
	return px, py - v.ScrollY
}

// ScreenToPage converts screen coordinates to page coordinates.
func (v *Viewport) ScreenToPage(sx, sy float64) (px, py float64) {
	return sx, sy + v.ScrollY
}

package reveal

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// minTextAlpha is the world alpha below which text is skipped. The debug
// font has no alpha support, so faded text is either drawn or not.
const minTextAlpha = 0.05

var (
	embedFill   = Color{0.12, 0.12, 0.16, 1}
	embedBorder = Color{0.45, 0.45, 0.55, 1}
)

// Draw renders the page to screen. Scrolling nodes are offset by the viewport
// scroll position and culled against it; Fixed subtrees are drawn in screen
// space on top.
func (p *Page) Draw(screen *ebiten.Image) {
	if p.ClearColor.A > 0 {
		screen.Fill(p.ClearColor.toRGBA(1))
	}
	p.drawNode(screen, p.root, false)
	p.flushScreenshots(screen)
}

func (p *Page) drawNode(screen *ebiten.Image, n *Node, fixed bool) {
	if !n.Visible || n.disposed {
		return
	}
	fixed = fixed || n.Fixed

	if n.Type != NodeTypeContainer && n.worldAlpha > 0 {
		b := n.WorldBounds()
		switch {
		case fixed:
			drawLeaf(screen, n, b)
		case b.Intersects(p.viewport.VisibleBounds()):
			b.X, b.Y = p.viewport.PageToScreen(b.X, b.Y)
			drawLeaf(screen, n, b)
		}
	}

	for _, c := range n.children {
		p.drawNode(screen, c, fixed)
	}
}

// drawLeaf draws a single non-container node into the screen-space box b.
func drawLeaf(screen *ebiten.Image, n *Node, b Rect) {
	switch n.Type {
	case NodeTypeBox:
		fillRect(screen, b, n.Color.toRGBA(n.worldAlpha))
	case NodeTypeText:
		if n.worldAlpha >= minTextAlpha {
			ebitenutil.DebugPrintAt(screen, n.Text, int(b.X), int(b.Y))
		}
	case NodeTypeEmbed:
		fillRect(screen, b, embedFill.toRGBA(n.worldAlpha))
		c := embedBorder.toRGBA(n.worldAlpha)
		x, y, w, h := float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height)
		vector.StrokeRect(screen, x, y, w, h, 1, c, false)
		ebitenutil.DebugPrintAt(screen, "embed: "+n.EmbedURI, int(b.X)+8, int(b.Y)+8)
	}
}

func fillRect(screen *ebiten.Image, b Rect, c color.RGBA) {
	if b.Width <= 0 || b.Height <= 0 || c.A == 0 {
		return
	}
	vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), c, false)
}

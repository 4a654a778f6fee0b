package reveal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
)

const (
	wheelStep         = 48.0 // pixels per wheel notch
	arrowStep         = 48.0 // pixels per arrow key press
	pageFraction      = 0.9  // fraction of the viewport PageUp/PageDown move
	keyScrollDuration = 0.35 // seconds for keyboard smooth scrolls
)

// processInput is called from Page.Update to turn wheel and keyboard input
// into viewport scrolling. Injected events take precedence for the frame.
func (p *Page) processInput() {
	if p.processInjectedInput() {
		return
	}

	v := p.viewport
	if _, dy := ebiten.Wheel(); dy != 0 {
		v.ScrollBy(-dy * wheelStep)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		v.ScrollBy(arrowStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		v.ScrollBy(-arrowStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.ScrollTo(v.ScrollY+v.Height*pageFraction, keyScrollDuration, ease.OutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		v.ScrollTo(v.ScrollY-v.Height*pageFraction, keyScrollDuration, ease.OutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		v.ScrollTo(0, keyScrollDuration, ease.OutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		v.ScrollTo(v.MaxScroll(), keyScrollDuration, ease.OutCubic)
	}
}

package reveal

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	ShowFPS   bool
	Resizable bool
}

// gameShell adapts a Page to the ebiten.Game interface.
type gameShell struct {
	page *Page
}

func (g *gameShell) Update() error {
	if fn := g.page.updateFunc; fn != nil {
		if err := fn(); err != nil {
			return err
		}
	}
	g.page.Update()
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	g.page.Draw(screen)
}

func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.page.Layout(outsideWidth, outsideHeight)
}

// Run opens a window and drives page until the window is closed or the
// update func returns an error. A zero Width or Height uses the page's
// current viewport size.
func Run(page *Page, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = int(page.viewport.Width), int(page.viewport.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(w, h)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.ShowFPS {
		page.root.AddChild(NewStatsWidget(page))
	}
	page.Resize(float64(w), float64(h))
	return ebiten.RunGame(&gameShell{page: page})
}

package reveal

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// NewStatsWidget creates a fixed text node in the top-right corner that shows
// FPS, TPS, scroll progress and the number of armed triggers. The text is
// refreshed every ~0.5 seconds.
func NewStatsWidget(page *Page) *Node {
	node := NewText("stats_widget", "", 150, 64)
	node.Fixed = true

	var lastUpdate float64
	refresh := func() {
		node.X = page.viewport.Width - node.Width - 8
		node.Y = NavOffset + 8
		node.MarkDirty()
		node.Text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nProgress: %s\nTriggers: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			ProgressWidth(page.tracker.Progress()), page.registry.Active())
	}
	refresh()

	node.OnUpdate = func(dt float64) {
		lastUpdate += dt
		if lastUpdate < 0.5 {
			return
		}
		lastUpdate = 0
		refresh()
	}

	return node
}

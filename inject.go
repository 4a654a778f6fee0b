package reveal

type injectKind uint8

const (
	injectScroll injectKind = iota
	injectScrollTo
	injectResize
)

// syntheticEvent represents a single injected scroll or resize. Events are
// consumed one per frame in place of real wheel and keyboard input.
type syntheticEvent struct {
	kind          injectKind
	dy            float64
	y             float64
	width, height float64
}

// InjectScroll queues a relative scroll of dy pixels. The event is consumed
// on the next frame's processInput call.
func (p *Page) InjectScroll(dy float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: injectScroll, dy: dy})
}

// InjectScrollTo queues a jump to the absolute scroll offset y.
func (p *Page) InjectScrollTo(y float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: injectScrollTo, y: y})
}

// InjectResize queues a window resize.
func (p *Page) InjectResize(w, h float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: injectResize, width: w, height: h})
}

// InjectSmoothScroll queues a scroll from the current offset by dy spread
// linearly over frames frames. Minimum frames is 1.
func (p *Page) InjectSmoothScroll(dy float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	step := dy / float64(frames)
	for i := 0; i < frames; i++ {
		p.InjectScroll(step)
	}
}

// processInjectedInput pops one event from the inject queue and applies it.
// Returns true if an event was consumed (real input should be skipped).
func (p *Page) processInjectedInput() bool {
	if len(p.injectQueue) == 0 {
		return false
	}
	evt := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]

	switch evt.kind {
	case injectScroll:
		p.viewport.ScrollBy(evt.dy)
	case injectScrollTo:
		p.viewport.ScrollTo(evt.y, 0, nil)
	case injectResize:
		p.Resize(evt.width, evt.height)
	}
	return true
}

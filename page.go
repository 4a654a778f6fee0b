package reveal

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// EventStore is the interface for optional ECS integration.
// When set on a Page, reveal lifecycle events are forwarded to the store.
type EventStore interface {
	EmitEvent(event RevealEvent)
}

// RevealEvent carries lifecycle data for the ECS bridge.
type RevealEvent struct {
	Type      EventType
	NodeID    uint32
	Name      string
	TriggerID uint32 // EventEnter, EventLeave
	Ratio     float64
	Reversed  bool    // EventRunStart, EventRunComplete
	Width     float64 // EventGateOn, EventGateOff
}

// NavOffset is the height of the fixed navigation bar anchor scrolling clears.
const NavOffset = 64

// anchorScrollDuration is how long Navigate takes to reach its anchor.
const anchorScrollDuration = 0.6

// mount pairs a mounted region with the scope of registrations it made.
type mount struct {
	node  *Node
	scope *Scope
}

// Page is the top-level object that owns the node tree, the viewport, and the
// reveal engine: progress tracker, width media, animator and trigger registry.
type Page struct {
	root  *Node
	store EventStore
	debug bool

	viewport *Viewport
	tracker  *ProgressTracker
	media    *Media
	anim     *Animator
	registry *Registry

	mounts []mount

	// ClearColor fills the screen before the tree is drawn. Zero alpha skips
	// the fill.
	ClearColor Color

	// ScreenshotDir is where Screenshot writes PNGs. Defaults to
	// "screenshots".
	ScreenshotDir string

	updateFunc      func() error
	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	screenshotQueue []string

	// last geometry dispatched to the progress tracker
	lastScroll  float64
	lastHeight  float64
	lastContent float64
	dispatched  bool
}

// NewPage creates a page with a root container and a viewport of the given
// screen size.
func NewPage(width, height float64) *Page {
	p := &Page{
		root:     NewContainer("root"),
		viewport: NewViewport(width, height),
		tracker:  NewProgressTracker(),
		media:    NewMedia(width),
		anim:     NewAnimator(),

		ScreenshotDir: "screenshots",
	}
	p.registry = NewRegistry(p.anim)
	p.anim.emit = p.emitEvent
	p.registry.emit = p.emitEvent
	p.media.emit = p.emitEvent
	return p
}

// Root returns the page's root container node.
func (p *Page) Root() *Node { return p.root }

// Viewport returns the page viewport.
func (p *Page) Viewport() *Viewport { return p.viewport }

// Tracker returns the scroll progress tracker.
func (p *Page) Tracker() *ProgressTracker { return p.tracker }

// Media returns the viewport-width source for responsive gates.
func (p *Page) Media() *Media { return p.media }

// Animator returns the page's timeline scheduler.
func (p *Page) Animator() *Animator { return p.anim }

// Registry returns the page's viewport trigger registry.
func (p *Page) Registry() *Registry { return p.registry }

// Update processes input, advances scrolling, dispatches scroll progress,
// observes triggers and advances animations. Call once per tick.
func (p *Page) Update() {
	p.update(float32(1.0 / float64(ebiten.TPS())))
}

func (p *Page) update(dt float32) {
	var t0 time.Time
	if p.debug {
		t0 = time.Now()
	}

	p.viewport.ContentHeight = contentBottom(p.root)
	if p.testRunner != nil {
		p.testRunner.step(p)
	}
	p.processInput()
	p.viewport.update(dt)
	updateNodes(p.root, float64(dt))

	v := p.viewport
	if !p.dispatched || v.ScrollY != p.lastScroll || v.Height != p.lastHeight || v.ContentHeight != p.lastContent {
		p.tracker.Update(v.ScrollY, v.ContentHeight, v.Height)
		p.lastScroll, p.lastHeight, p.lastContent = v.ScrollY, v.Height, v.ContentHeight
		p.dispatched = true
	}

	p.registry.Observe(v.VisibleBounds())
	p.anim.Update(dt)
	updateWorldTransform(p.root, identityTransform, 1.0, false)

	if p.debug {
		p.debugLog(debugStats{
			updateTime:     time.Since(t0),
			activeTriggers: p.registry.Active(),
			runs:           p.anim.Running(),
			tracks:         p.anim.Tracks(),
			scrollY:        v.ScrollY,
			progress:       p.tracker.Progress(),
		})
	}
}

// Resize applies a new screen size: the viewport is resized and responsive
// gates are re-evaluated against the new width.
func (p *Page) Resize(width, height float64) {
	p.viewport.Resize(width, height)
	p.media.SetWidth(width)
}

// Layout implements the ebiten.Game layout contract by forwarding the
// outside size to Resize.
func (p *Page) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != p.viewport.Width || h != p.viewport.Height {
		p.Resize(w, h)
	}
	return outsideWidth, outsideHeight
}

// --- Mount contract ---

// Mount inserts node under the root (unless it already has a parent) and runs
// setup inside a fresh scope. Registration errors collected with Keep are
// logged; they do not stop other regions from mounting. Mounting a node that
// is already mounted returns its existing scope.
func (p *Page) Mount(node *Node, setup func(s *Scope)) *Scope {
	for _, m := range p.mounts {
		if m.node == node {
			return m.scope
		}
	}
	if node.Parent == nil {
		p.root.AddChild(node)
	}
	s := NewScope()
	if setup != nil {
		setup(s)
	}
	if err := s.Err(); err != nil {
		warnf("mount %q: %v", node.Name, err)
	}
	p.mounts = append(p.mounts, mount{node: node, scope: s})
	debugf("mounted %q with %d handles", node.Name, s.Len())
	return s
}

// Unmount closes node's scope and detaches node from the tree. No-op if node
// is not mounted.
func (p *Page) Unmount(node *Node) {
	for i, m := range p.mounts {
		if m.node != node {
			continue
		}
		copy(p.mounts[i:], p.mounts[i+1:])
		p.mounts[len(p.mounts)-1] = mount{}
		p.mounts = p.mounts[:len(p.mounts)-1]
		m.scope.Close()
		node.RemoveFromParent()
		debugf("unmounted %q", node.Name)
		return
	}
}

// Mounted reports whether node is currently mounted.
func (p *Page) Mounted(node *Node) bool {
	for _, m := range p.mounts {
		if m.node == node {
			return true
		}
	}
	return false
}

// Close unmounts every region, newest first.
func (p *Page) Close() {
	for len(p.mounts) > 0 {
		p.Unmount(p.mounts[len(p.mounts)-1].node)
	}
}

// Navigate smooth-scrolls to the node named anchor (with or without a
// leading '#'), clearing the navigation bar. Reports whether it was found.
func (p *Page) Navigate(anchor string) bool {
	if len(anchor) > 0 && anchor[0] == '#' {
		anchor = anchor[1:]
	}
	target := p.root.SelectFirst("#" + anchor)
	if target == nil {
		return false
	}
	p.viewport.ContentHeight = contentBottom(p.root)
	p.viewport.ScrollToNode(target, NavOffset, anchorScrollDuration, ease.OutCubic)
	return true
}

// --- Configuration ---

// SetEntityStore sets the optional ECS bridge.
func (p *Page) SetEntityStore(store EventStore) {
	p.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, trigger and gate transitions are logged, and per-frame
// stats are printed.
func (p *Page) SetDebugMode(enabled bool) {
	p.debug = enabled
	globalDebug = enabled
}

// SetReducedMotion makes every run settle on the frame it starts.
func (p *Page) SetReducedMotion(enabled bool) {
	p.anim.Instant = enabled
}

// SetUpdateFunc sets a callback run by Run before each Page.Update.
func (p *Page) SetUpdateFunc(fn func() error) {
	p.updateFunc = fn
}

func (p *Page) emitEvent(ev RevealEvent) {
	if p.store != nil {
		p.store.EmitEvent(ev)
	}
}

package reveal

import "fmt"

// Action selects what a trigger does when its region leaves the viewport.
type Action uint8

const (
	// ActionPlay plays on first entry and ignores later crossings. The
	// trigger keeps observing so OnEnter/OnLeave still fire.
	ActionPlay Action = iota
	// ActionReverse plays on entry and reverses when the region drops back
	// below the start line. Scrolling on past the region leaves it revealed,
	// and coming back to it from above does not replay it.
	ActionReverse
	// ActionPlayOnce plays on first entry and then stops observing.
	ActionPlayOnce
)

// Rest selects the state a trigger leaves its elements in when unregistered.
type Rest uint8

const (
	// RestFinish snaps an in-flight run to its end values.
	RestFinish Rest = iota
	// RestRevert restores the values captured at registration, undoing
	// every change the trigger made.
	RestRevert
)

// Window describes the intersection thresholds of a trigger.
type Window struct {
	// Enter is the intersection ratio at or above which the region counts as
	// entered. Zero means "any overlap".
	Enter float64
	// Exit is the ratio below which an entered region counts as left. Zero
	// means "no overlap at all". Must not exceed Enter.
	Exit float64
	// Action chooses the playback policy.
	Action Action
	// BottomInset shrinks the observed viewport from the bottom by this
	// fraction of its height. A start line at 85% of the viewport is
	// BottomInset 0.15.
	BottomInset float64
	// Rest chooses the unregister rest state.
	Rest Rest
	// Lazy leaves the region's values untouched until the first play. By
	// default Register writes each track's from value straight away, so
	// content below the fold stays hidden until it is revealed.
	Lazy bool
}

func (w Window) validate() error {
	switch {
	case w.Enter < 0 || w.Enter > 1:
		return fmt.Errorf("%w: enter %v outside [0, 1]", ErrInvalidWindow, w.Enter)
	case w.Exit < 0 || w.Exit > 1:
		return fmt.Errorf("%w: exit %v outside [0, 1]", ErrInvalidWindow, w.Exit)
	case w.Exit > w.Enter:
		return fmt.Errorf("%w: exit %v above enter %v", ErrInvalidWindow, w.Exit, w.Enter)
	case w.BottomInset < 0 || w.BottomInset >= 1:
		return fmt.Errorf("%w: bottom inset %v outside [0, 1)", ErrInvalidWindow, w.BottomInset)
	case w.Action > ActionPlayOnce:
		return fmt.Errorf("%w: unknown action %d", ErrInvalidWindow, w.Action)
	}
	return nil
}

// reached reports whether ratio satisfies the enter threshold.
func (w Window) reached(ratio float64) bool {
	if w.Enter == 0 {
		return ratio > 0
	}
	return ratio >= w.Enter
}

// left reports whether ratio has dropped below the exit threshold.
func (w Window) left(ratio float64) bool {
	if w.Exit == 0 {
		return ratio <= 0
	}
	return ratio < w.Exit
}

// Region is an ordered set of nodes observed and animated together. Its
// bounds are the union of the nodes' layout boxes.
type Region []*Node

// RegionOf builds a region from nodes in the given order.
func RegionOf(nodes ...*Node) Region {
	return Region(nodes)
}

// Bounds returns the union of the live nodes' layout boxes.
func (rg Region) Bounds() Rect {
	var b Rect
	first := true
	for _, n := range rg {
		if n == nil || n.disposed {
			continue
		}
		if first {
			b = n.LayoutBounds()
			first = false
			continue
		}
		b = b.Union(n.LayoutBounds())
	}
	return b
}

// IntersectionRatio returns the fraction of bounds' area inside visible.
// Zero-area bounds report 1 when they lie inside visible, else 0.
func IntersectionRatio(bounds, visible Rect) float64 {
	if !bounds.Intersects(visible) {
		return 0
	}
	area := bounds.Area()
	if area <= 0 {
		if visible.Contains(bounds.X, bounds.Y) {
			return 1
		}
		return 0
	}
	return clamp01(bounds.Intersection(visible).Area() / area)
}

// Trigger binds a region to a timeline and an intersection window. It is the
// handle returned by Registry.Register.
type Trigger struct {
	ID uint32

	registry *Registry
	region   Region
	timeline *Timeline
	window   Window

	ratio    float64
	entered  bool
	plays    int
	shown    bool
	run      *Playback
	snapshot []savedValue
	released bool

	// OnEnter and OnLeave fire on threshold crossings while the trigger is
	// observing.
	OnEnter func(*Trigger)
	OnLeave func(*Trigger)
}

type savedValue struct {
	node  *Node
	prop  Property
	value float64
}

// Registry observes regions against the viewport and drives their timelines
// through an Animator. Several registries may share one animator.
type Registry struct {
	anim     *Animator
	triggers []*Trigger
	nextID   uint32

	emit func(RevealEvent)
}

// NewRegistry creates a registry that plays timelines on anim.
func NewRegistry(anim *Animator) *Registry {
	return &Registry{anim: anim}
}

// Register starts observing region. The first Observe decides whether the
// region is already inside the viewport. Fails with ErrTargetNotFound when the
// region has no live nodes or a step selector matches nothing, with
// ErrInvalidWindow for bad thresholds, and with ErrInvalidTimelineSpec for a
// nil timeline; the registry is unchanged on failure.
func (r *Registry) Register(region Region, tl *Timeline, win Window) (*Trigger, error) {
	if tl == nil {
		return nil, fmt.Errorf("%w: nil timeline", ErrInvalidTimelineSpec)
	}
	if err := win.validate(); err != nil {
		return nil, err
	}
	if len(region) == 0 {
		return nil, fmt.Errorf("%w: empty region", ErrTargetNotFound)
	}
	for i, n := range region {
		if n == nil {
			return nil, fmt.Errorf("%w: region node %d is nil", ErrTargetNotFound, i)
		}
		if n.disposed {
			return nil, fmt.Errorf("%w: region node %d (%q) is disposed", ErrTargetNotFound, i, n.Name)
		}
	}
	nodes := []*Node(region)
	if sel, missing := tl.unresolved(nodes); missing {
		return nil, fmt.Errorf("%w: selector %q matches nothing in %q", ErrTargetNotFound, sel, region[0].Name)
	}

	r.nextID++
	t := &Trigger{
		ID:       r.nextID,
		registry: r,
		region:   append(Region(nil), region...),
		timeline: tl,
		window:   win,
		snapshot: capture(tl, nodes),
	}
	if !win.Lazy {
		r.prime(tl, nodes)
	}
	r.triggers = append(r.triggers, t)
	debugf("trigger %d registered on %q (%d nodes)", t.ID, region[0].Name, len(region))
	return t, nil
}

// capture records the current value of every property tl writes on every
// node it resolves to.
func capture(tl *Timeline, targets []*Node) []savedValue {
	var out []savedValue
	seen := make(map[claimKey]bool)
	for _, s := range tl.steps {
		for _, n := range resolveTargets(targets, s.Target) {
			for _, p := range sortedPropSet(s.To) {
				k := claimKey{n, p}
				if seen[k] {
					continue
				}
				seen[k] = true
				out = append(out, savedValue{node: n, prop: p, value: n.Property(p)})
			}
		}
	}
	return out
}

// restore writes saved values back to their live nodes.
func restore(saved []savedValue) {
	for _, s := range saved {
		if !s.node.disposed {
			s.node.SetProperty(s.prop, s.value)
		}
	}
}

// prime writes the from value of every track tl would play on targets,
// leaving keys owned by a running run alone. Earliest steps win, as at the
// start of a run.
func (r *Registry) prime(tl *Timeline, targets []*Node) {
	tracks, _ := tl.plan(targets, false)
	for i := len(tracks) - 1; i >= 0; i-- {
		t := tracks[i]
		if r.anim.claims[claimKey{t.node, t.prop}] != nil {
			continue
		}
		t.node.SetProperty(t.prop, t.from)
	}
}

// Unregister stops observing t and settles its playback. Idempotent.
func (r *Registry) Unregister(t *Trigger) {
	t.Release()
}

// Observe updates every observing trigger against the visible page-space
// rectangle and plays or reverses timelines on threshold crossings.
func (r *Registry) Observe(visible Rect) {
	if len(r.triggers) == 0 {
		return
	}
	triggers := make([]*Trigger, len(r.triggers))
	copy(triggers, r.triggers)
	for _, t := range triggers {
		if !t.released {
			t.observe(visible)
		}
	}
}

// Active returns the number of observing triggers.
func (r *Registry) Active() int {
	return len(r.triggers)
}

// Triggers returns the observing triggers. The returned slice MUST NOT be mutated.
func (r *Registry) Triggers() []*Trigger {
	return r.triggers
}

func (r *Registry) remove(t *Trigger) {
	for i, x := range r.triggers {
		if x == t {
			copy(r.triggers[i:], r.triggers[i+1:])
			r.triggers[len(r.triggers)-1] = nil
			r.triggers = r.triggers[:len(r.triggers)-1]
			return
		}
	}
}

// --- Trigger ---

func (t *Trigger) observe(visible Rect) {
	if t.window.BottomInset > 0 {
		visible.Height -= visible.Height * t.window.BottomInset
	}
	bounds := t.region.Bounds()
	t.ratio = IntersectionRatio(bounds, visible)

	switch {
	case !t.entered && t.window.reached(t.ratio):
		t.entered = true
		debugf("trigger %d enter (ratio %.2f)", t.ID, t.ratio)
		t.registry.emitTrigger(EventEnter, t)
		t.fire(t.OnEnter, "trigger OnEnter")
		if t.released {
			return
		}
		switch t.window.Action {
		case ActionReverse:
			if !t.shown {
				t.play(false)
			}
		case ActionPlay:
			if t.plays == 0 {
				t.play(false)
			}
		case ActionPlayOnce:
			t.play(false)
			t.deactivate()
		}

	case t.entered && t.window.left(t.ratio):
		t.entered = false
		debugf("trigger %d leave (ratio %.2f)", t.ID, t.ratio)
		t.registry.emitTrigger(EventLeave, t)
		t.fire(t.OnLeave, "trigger OnLeave")
		if t.released {
			return
		}
		if t.window.Action == ActionReverse && t.shown && belowStart(bounds, visible) {
			t.play(true)
		}
	}
}

func (t *Trigger) play(reverse bool) {
	var (
		run *Playback
		err error
	)
	if reverse {
		run, err = t.registry.anim.Reverse(t.timeline, t.region...)
	} else {
		run, err = t.registry.anim.Play(t.timeline, t.region...)
	}
	if err != nil {
		debugf("trigger %d: %v", t.ID, err)
		return
	}
	t.run = run
	t.shown = !reverse
	if !reverse {
		t.plays++
	}
}

// belowStart reports whether bounds left visible through its bottom edge,
// that is, the page was scrolled back up past the region.
func belowStart(bounds, visible Rect) bool {
	return bounds.Y+bounds.Height/2 > visible.Y+visible.Height/2
}

func (t *Trigger) fire(fn func(*Trigger), context string) {
	if fn == nil {
		return
	}
	defer recoverCallback(context)
	fn(t)
}

// deactivate stops observation without settling the run in flight.
func (t *Trigger) deactivate() {
	t.registry.remove(t)
	debugf("trigger %d deactivated after first play", t.ID)
}

// Release stops observing and settles playback according to Window.Rest.
// Safe to call on a nil, deactivated or already released trigger.
func (t *Trigger) Release() {
	if t == nil || t.released {
		return
	}
	t.released = true
	t.registry.remove(t)
	if t.run != nil {
		t.run.Cancel()
		t.run = nil
	}
	if t.window.Rest == RestRevert {
		restore(t.snapshot)
	}
	debugf("trigger %d released", t.ID)
}

// Ratio returns the intersection ratio from the last observation.
func (t *Trigger) Ratio() float64 {
	return t.ratio
}

// Entered reports whether the region is currently past its enter threshold.
func (t *Trigger) Entered() bool {
	return t.entered
}

// Plays returns the number of forward runs started.
func (t *Trigger) Plays() int {
	return t.plays
}

// Run returns the most recent run, or nil.
func (t *Trigger) Run() *Playback {
	return t.run
}

// Released reports whether Release has been called.
func (t *Trigger) Released() bool {
	return t.released
}

// Region returns the observed nodes.
func (t *Trigger) Region() Region {
	return t.region
}

func (r *Registry) emitTrigger(typ EventType, t *Trigger) {
	if r.emit == nil {
		return
	}
	ev := RevealEvent{Type: typ, TriggerID: t.ID, Ratio: t.ratio}
	if len(t.region) > 0 {
		ev.NodeID = t.region[0].ID
		ev.Name = t.region[0].Name
	}
	r.emit(ev)
}

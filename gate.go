package reveal

import "fmt"

// Condition is a predicate over the viewport width.
type Condition func(width float64) bool

// MinWidth matches widths >= px (a "(min-width: px)" media query).
func MinWidth(px float64) Condition {
	return func(w float64) bool { return w >= px }
}

// MaxWidth matches widths <= px.
func MaxWidth(px float64) Condition {
	return func(w float64) bool { return w <= px }
}

// Between matches min <= width <= max.
func Between(min, max float64) Condition {
	return func(w float64) bool { return w >= min && w <= max }
}

// Media is the viewport-width source responsive gates listen to.
type Media struct {
	width float64
	gates []*Gate

	emit func(RevealEvent)
}

// NewMedia creates a width source with the given initial width.
func NewMedia(width float64) *Media {
	return &Media{width: width}
}

// Width returns the current viewport width.
func (m *Media) Width() float64 {
	return m.width
}

// SetWidth records a new width and re-evaluates every gate, in creation
// order. No-op if the width is unchanged.
func (m *Media) SetWidth(w float64) {
	if w == m.width {
		return
	}
	m.width = w
	gates := make([]*Gate, len(m.gates))
	copy(gates, m.gates)
	for _, g := range gates {
		if !g.released {
			g.evaluate()
		}
	}
}

// Len returns the number of live gates.
func (m *Media) Len() int {
	return len(m.gates)
}

// Guard creates a gate that keeps exactly one handle from factory alive while
// cond holds for the current width, and none while it does not. The
// condition is evaluated immediately.
//
// A factory error is kept on the gate (see Gate.Err) and the gate retries on
// the next width change while the condition still holds.
func (m *Media) Guard(cond Condition, factory func() (Handle, error)) *Gate {
	g := &Gate{media: m, cond: cond, factory: factory}
	m.gates = append(m.gates, g)
	g.evaluate()
	return g
}

// Gate is a condition-guarded registration created by Media.Guard.
type Gate struct {
	media   *Media
	cond    Condition
	factory func() (Handle, error)

	handle   Handle
	built    bool
	active   bool
	released bool
	err      error
	builds   int

	// OnChange is called after the gate switches between active and inactive.
	OnChange func(active bool)
}

func (g *Gate) evaluate() {
	want := g.cond(g.media.width)
	switch {
	case want:
		changed := !g.active
		g.active = true
		if !g.built {
			g.build()
		}
		if changed {
			debugf("gate on at width %.0f", g.media.width)
			g.media.emitGate(EventGateOn)
			g.notify()
		}
	case g.active:
		g.active = false
		g.teardown()
		debugf("gate off at width %.0f", g.media.width)
		g.media.emitGate(EventGateOff)
		g.notify()
	}
}

func (g *Gate) build() {
	h, err := g.callFactory()
	if err != nil {
		g.err = err
		warnf("gate factory: %v", err)
		return
	}
	g.err = nil
	g.handle = h
	g.built = true
	if h != nil {
		g.builds++
	}
}

func (g *Gate) callFactory() (h Handle, err error) {
	defer func() {
		if r := recover(); r != nil {
			h = nil
			err = fmt.Errorf("factory panicked: %v", r)
		}
	}()
	return g.factory()
}

func (g *Gate) teardown() {
	g.built = false
	if g.handle == nil {
		return
	}
	h := g.handle
	g.handle = nil
	releaseQuietly(h)
}

func (g *Gate) notify() {
	if g.OnChange == nil {
		return
	}
	defer recoverCallback("gate OnChange")
	g.OnChange(g.active)
}

// Release removes the gate's width listener and its underlying handle.
// Idempotent.
func (g *Gate) Release() {
	if g == nil || g.released {
		return
	}
	g.released = true
	g.active = false
	g.teardown()
	m := g.media
	for i, x := range m.gates {
		if x == g {
			copy(m.gates[i:], m.gates[i+1:])
			m.gates[len(m.gates)-1] = nil
			m.gates = m.gates[:len(m.gates)-1]
			break
		}
	}
}

// Active reports whether the condition held at the last evaluation.
func (g *Gate) Active() bool {
	return g.active
}

// Handle returns the current underlying handle, or nil.
func (g *Gate) Handle() Handle {
	return g.handle
}

// Err returns the most recent factory error, cleared by a successful build.
func (g *Gate) Err() error {
	return g.err
}

// Builds returns how many handles the factory has produced.
func (g *Gate) Builds() int {
	return g.builds
}

func (m *Media) emitGate(typ EventType) {
	if m.emit != nil {
		m.emit(RevealEvent{Type: typ, Width: m.width})
	}
}

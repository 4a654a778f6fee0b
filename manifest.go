package reveal

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Manifest is a page choreography loaded from YAML: named timelines plus,
// for every mountable region, the triggers and intro runs to register when
// it mounts.
//
//	timelines:
//	  fadeUp:
//	    - target: ".reveal"
//	      from: {opacity: 0, y: 60}
//	      to:   {opacity: 1, y: 0}
//	      duration: 0.8
//	      ease: power2.out
//	      stagger: 0.15
//	regions:
//	  about:
//	    triggers:
//	      - timeline: fadeUp
//	        start: 0.8
//	        action: reverse
type Manifest struct {
	Timelines map[string][]StepSpec `yaml:"timelines"`
	Regions   map[string]RegionSpec `yaml:"regions"`

	compiled map[string]*Timeline
}

// StepSpec is the YAML form of a Step. Property names are those accepted by
// ParseProperty; ease names those accepted by EasingByName.
type StepSpec struct {
	Target   string             `yaml:"target"`
	From     map[string]float64 `yaml:"from"`
	To       map[string]float64 `yaml:"to"`
	Duration float64            `yaml:"duration"`
	Ease     string             `yaml:"ease"`
	Delay    float64            `yaml:"delay"`
	Stagger  float64            `yaml:"stagger"`
}

// RegionSpec lists what a mounted region registers.
type RegionSpec struct {
	// Intro timelines play as soon as the region mounts.
	Intro    []IntroSpec   `yaml:"intro"`
	Triggers []TriggerSpec `yaml:"triggers"`
}

// IntroSpec plays a timeline on mount without waiting for a scroll trigger.
// Unmounting the region restores the values the intro found, unless Rest is
// "finish".
type IntroSpec struct {
	Select   string `yaml:"select"`
	Timeline string `yaml:"timeline"`
	Rest     string `yaml:"rest"` // revert (default), finish
}

// TriggerSpec is the YAML form of a Registry.Register call, optionally
// guarded by a width gate.
type TriggerSpec struct {
	// Select picks the region nodes inside the mounted region; "" means the
	// region node itself.
	Select   string  `yaml:"select"`
	Timeline string  `yaml:"timeline"`
	Enter    float64 `yaml:"enter"`
	Exit     float64 `yaml:"exit"`
	Action   string  `yaml:"action"` // play (default), reverse, once
	Rest     string  `yaml:"rest"`   // finish (default), revert
	// Start is the fraction of the viewport height, measured from the top,
	// where the region starts counting as visible: 0.8 is GSAP's "top 80%".
	// Absent means the bottom edge. It must be in (0, 1].
	Start *float64 `yaml:"start"`
	// Lazy leaves the region untouched until its first play.
	Lazy bool `yaml:"lazy"`
	// MinWidth and MaxWidth guard the trigger with a responsive gate.
	MinWidth float64 `yaml:"minWidth"`
	MaxWidth float64 `yaml:"maxWidth"`
	// Each registers one trigger per selected node instead of one for the
	// whole selection. The i-th trigger's timeline is delayed by
	// i*EachDelay seconds.
	Each      bool    `yaml:"each"`
	EachDelay float64 `yaml:"eachDelay"`
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes and validates manifest YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

// Validate compiles every timeline and checks every reference, window and
// name. Errors wrap ErrInvalidTimelineSpec or ErrInvalidWindow.
func (m *Manifest) Validate() error {
	compiled := make(map[string]*Timeline, len(m.Timelines))
	for _, name := range sortedKeys(m.Timelines) {
		tl, err := compileTimeline(m.Timelines[name])
		if err != nil {
			return fmt.Errorf("timeline %q: %w", name, err)
		}
		compiled[name] = tl
	}

	for _, region := range sortedKeys(m.Regions) {
		spec := m.Regions[region]
		for i, in := range spec.Intro {
			if compiled[in.Timeline] == nil {
				return fmt.Errorf("%w: region %q intro %d: unknown timeline %q", ErrInvalidTimelineSpec, region, i, in.Timeline)
			}
			if in.Rest != "" && in.Rest != "revert" && in.Rest != "finish" {
				return fmt.Errorf("%w: region %q intro %d: unknown rest %q", ErrInvalidWindow, region, i, in.Rest)
			}
		}
		for i, ts := range spec.Triggers {
			if compiled[ts.Timeline] == nil {
				return fmt.Errorf("%w: region %q trigger %d: unknown timeline %q", ErrInvalidTimelineSpec, region, i, ts.Timeline)
			}
			if _, err := ts.window(); err != nil {
				return fmt.Errorf("region %q trigger %d: %w", region, i, err)
			}
			if ts.MinWidth < 0 || ts.MaxWidth < 0 || (ts.MaxWidth > 0 && ts.MaxWidth < ts.MinWidth) {
				return fmt.Errorf("%w: region %q trigger %d: bad width range [%v, %v]", ErrInvalidWindow, region, i, ts.MinWidth, ts.MaxWidth)
			}
			if ts.EachDelay < 0 {
				return fmt.Errorf("%w: region %q trigger %d: eachDelay %v must be >= 0", ErrInvalidTimelineSpec, region, i, ts.EachDelay)
			}
		}
	}
	m.compiled = compiled
	return nil
}

// Timeline returns the compiled timeline called name, or nil. Only valid
// after Validate.
func (m *Manifest) Timeline(name string) *Timeline {
	return m.compiled[name]
}

func compileTimeline(specs []StepSpec) (*Timeline, error) {
	steps := make([]Step, len(specs))
	for i, ss := range specs {
		from, err := parsePropertySet(ss.From)
		if err != nil {
			return nil, fmt.Errorf("step %d from: %w", i, err)
		}
		to, err := parsePropertySet(ss.To)
		if err != nil {
			return nil, fmt.Errorf("step %d to: %w", i, err)
		}
		fn, err := EasingByName(ss.Ease)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps[i] = Step{
			Target:   ss.Target,
			From:     from,
			To:       to,
			Duration: ss.Duration,
			Ease:     fn,
			Delay:    ss.Delay,
			Stagger:  ss.Stagger,
		}
	}
	return NewTimeline(steps...)
}

func parsePropertySet(in map[string]float64) (PropertySet, error) {
	out := make(PropertySet, len(in))
	for name, v := range in {
		p, ok := ParseProperty(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown property %q", ErrInvalidTimelineSpec, name)
		}
		out[p] = v
	}
	return out, nil
}

func (ts TriggerSpec) window() (Window, error) {
	win := Window{Enter: ts.Enter, Exit: ts.Exit, Lazy: ts.Lazy}
	switch ts.Action {
	case "", "play":
		win.Action = ActionPlay
	case "reverse":
		win.Action = ActionReverse
	case "once":
		win.Action = ActionPlayOnce
	default:
		return Window{}, fmt.Errorf("%w: unknown action %q", ErrInvalidWindow, ts.Action)
	}
	switch ts.Rest {
	case "", "finish":
		win.Rest = RestFinish
	case "revert":
		win.Rest = RestRevert
	default:
		return Window{}, fmt.Errorf("%w: unknown rest %q", ErrInvalidWindow, ts.Rest)
	}
	if ts.Start != nil {
		if *ts.Start <= 0 || *ts.Start > 1 {
			return Window{}, fmt.Errorf("%w: start %v outside (0, 1]", ErrInvalidWindow, *ts.Start)
		}
		win.BottomInset = 1 - *ts.Start
	}
	return win, win.validate()
}

func (ts TriggerSpec) condition() Condition {
	switch {
	case ts.MinWidth > 0 && ts.MaxWidth > 0:
		return Between(ts.MinWidth, ts.MaxWidth)
	case ts.MinWidth > 0:
		return MinWidth(ts.MinWidth)
	case ts.MaxWidth > 0:
		return MaxWidth(ts.MaxWidth)
	}
	return nil
}

// Setup returns a mount setup for the region node. It registers the
// triggers and plays the intros listed under node.Name; a node with no entry
// gets an empty setup. Use with Page.Mount:
//
//	page.Mount(section, manifest.Setup(page, section))
func (m *Manifest) Setup(page *Page, node *Node) func(s *Scope) {
	spec, ok := m.Regions[node.Name]
	return func(s *Scope) {
		if !ok {
			return
		}
		for _, ts := range spec.Triggers {
			m.register(s, page, node, ts)
		}
		for _, in := range spec.Intro {
			m.intro(s, page, node, in)
		}
	}
}

// intro plays in on the selected nodes and gives s a handle that cancels the
// run and, by default, restores the values found before it started.
func (m *Manifest) intro(s *Scope, page *Page, node *Node, in IntroSpec) {
	tl := m.compiled[in.Timeline]
	targets := node.Select(in.Select)
	var saved []savedValue
	if in.Rest != "finish" {
		saved = capture(tl, liveNodes(targets))
	}
	run, err := page.Animator().Play(tl, targets...)
	if err != nil {
		s.Fail(err)
		return
	}
	s.Add(HandleFunc(func() {
		run.Cancel()
		restore(saved)
	}))
}

func (m *Manifest) register(s *Scope, page *Page, node *Node, ts TriggerSpec) {
	tl := m.compiled[ts.Timeline]
	win, err := ts.window()
	if err != nil {
		s.Fail(err)
		return
	}
	nodes := node.Select(ts.Select)
	if len(nodes) == 0 {
		s.Fail(fmt.Errorf("%w: %q matches nothing in %q", ErrTargetNotFound, ts.Select, node.Name))
		return
	}

	build := func() (Handle, error) {
		return ts.registerAll(page.Registry(), nodes, tl, win)
	}
	cond := ts.condition()
	if cond == nil {
		s.Keep(build())
		return
	}
	s.Add(page.Media().Guard(cond, build))
}

// registerAll registers the trigger, or one per node when Each is set. The
// per-node triggers are returned together as a Scope.
func (ts TriggerSpec) registerAll(reg *Registry, nodes []*Node, tl *Timeline, win Window) (Handle, error) {
	if !ts.Each {
		t, err := reg.Register(RegionOf(nodes...), tl, win)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	sub := NewScope()
	for i, n := range nodes {
		t, err := reg.Register(RegionOf(n), tl.Delayed(float64(i)*ts.EachDelay), win)
		if err != nil {
			sub.Close()
			return nil, err
		}
		sub.Add(t)
	}
	return sub, nil
}

// Apply mounts every region the manifest names that exists under root, in
// document order. Regions missing from the tree are reported in the returned
// error; the others are still mounted.
func (m *Manifest) Apply(page *Page, root *Node) error {
	if m.compiled == nil {
		if err := m.Validate(); err != nil {
			return err
		}
	}

	var errs []error
	type found struct {
		node *Node
		idx  int
	}
	var nodes []found
	order := make(map[*Node]int)
	i := 0
	walk(root, func(n *Node) {
		order[n] = i
		i++
	})
	for _, name := range sortedKeys(m.Regions) {
		n := root.SelectFirst("#" + name)
		if n == nil {
			errs = append(errs, fmt.Errorf("%w: region %q", ErrTargetNotFound, name))
			continue
		}
		nodes = append(nodes, found{node: n, idx: order[n]})
	}
	sort.Slice(nodes, func(a, b int) bool { return nodes[a].idx < nodes[b].idx })

	for _, f := range nodes {
		if s := page.Mount(f.node, m.Setup(page, f.node)); s.Err() != nil {
			errs = append(errs, fmt.Errorf("region %q: %w", f.node.Name, s.Err()))
		}
	}
	return errors.Join(errs...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

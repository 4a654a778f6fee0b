package reveal

import (
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

// Step is one entry of a Timeline: animate every node matched by Target from
// From to To over Duration seconds, starting Delay seconds after the run
// begins. With Stagger > 0 the i-th matched node (document order) starts at
// Delay + i*Stagger.
type Step struct {
	// Target is a selector resolved against the played targets; "" means the
	// targets themselves. See Node.Select.
	Target   string
	From, To PropertySet
	Duration float64
	Ease     ease.TweenFunc // nil means ease.Linear
	Delay    float64
	Stagger  float64
}

// Timeline is an immutable, validated list of steps. It is reused across
// every forward and reverse run.
type Timeline struct {
	steps []Step
}

// NewTimeline validates steps and returns a Timeline holding private copies
// of them. Errors wrap ErrInvalidTimelineSpec.
func NewTimeline(steps ...Step) (*Timeline, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidTimelineSpec)
	}
	tl := &Timeline{steps: make([]Step, len(steps))}
	for i, s := range steps {
		if err := validateStep(s); err != nil {
			return nil, fmt.Errorf("%w: step %d: %s", ErrInvalidTimelineSpec, i, err)
		}
		s.From = s.From.clone()
		s.To = s.To.clone()
		if s.Ease == nil {
			s.Ease = ease.Linear
		}
		tl.steps[i] = s
	}
	return tl, nil
}

// MustTimeline is like NewTimeline but panics on error. Intended for
// package-level choreography literals.
func MustTimeline(steps ...Step) *Timeline {
	tl, err := NewTimeline(steps...)
	if err != nil {
		panic(err)
	}
	return tl
}

func validateStep(s Step) error {
	if !(s.Duration > 0) {
		return fmt.Errorf("duration %v must be > 0", s.Duration)
	}
	if !(s.Delay >= 0) {
		return fmt.Errorf("delay %v must be >= 0", s.Delay)
	}
	if !(s.Stagger >= 0) {
		return fmt.Errorf("stagger %v must be >= 0", s.Stagger)
	}
	if len(s.To) == 0 {
		return fmt.Errorf("no properties to animate")
	}
	if len(s.From) != len(s.To) {
		return fmt.Errorf("from and to animate different properties")
	}
	for p := range s.To {
		if _, ok := s.From[p]; !ok {
			return fmt.Errorf("property %s has no from value", p)
		}
	}
	return nil
}

// Len returns the number of steps.
func (tl *Timeline) Len() int {
	return len(tl.steps)
}

// Steps returns copies of the timeline's steps.
func (tl *Timeline) Steps() []Step {
	out := make([]Step, len(tl.steps))
	for i, s := range tl.steps {
		s.From = s.From.clone()
		s.To = s.To.clone()
		out[i] = s
	}
	return out
}

// Delayed returns a copy of tl with every step's delay increased by d. A
// non-positive d returns tl itself.
func (tl *Timeline) Delayed(d float64) *Timeline {
	if d <= 0 {
		return tl
	}
	out := &Timeline{steps: tl.Steps()}
	for i := range out.steps {
		out.steps[i].Delay += d
	}
	return out
}

// Properties returns every property the timeline writes, sorted.
func (tl *Timeline) Properties() []Property {
	seen := make(map[Property]bool)
	for _, s := range tl.steps {
		for p := range s.To {
			seen[p] = true
		}
	}
	return sortedProps(seen)
}

// track is one (node, property) interpolation inside a run.
type track struct {
	node     *Node
	prop     Property
	from, to float64
	start    float64
	duration float64
	ease     ease.TweenFunc
}

// plan expands the timeline against targets into tracks. Reverse plans swap
// from/to and mirror every start so the run ends where the forward run
// started: start' = total - (start + duration).
func (tl *Timeline) plan(targets []*Node, reverse bool) ([]track, float64) {
	var tracks []track
	total := 0.0
	for _, s := range tl.steps {
		nodes := resolveTargets(targets, s.Target)
		props := sortedPropSet(s.To)
		for i, n := range nodes {
			start := s.Delay + float64(i)*s.Stagger
			if end := start + s.Duration; end > total {
				total = end
			}
			for _, p := range props {
				tracks = append(tracks, track{
					node:     n,
					prop:     p,
					from:     s.From[p],
					to:       s.To[p],
					start:    start,
					duration: s.Duration,
					ease:     s.Ease,
				})
			}
		}
	}
	if reverse {
		for i := range tracks {
			t := &tracks[i]
			t.from, t.to = t.to, t.from
			t.start = total - (t.start + t.duration)
		}
	}
	sort.SliceStable(tracks, func(i, j int) bool { return tracks[i].start < tracks[j].start })
	return tracks, total
}

// unresolved returns the first step selector that matches nothing under
// targets, and whether one was found.
func (tl *Timeline) unresolved(targets []*Node) (string, bool) {
	for _, s := range tl.steps {
		if len(resolveTargets(targets, s.Target)) == 0 {
			return s.Target, true
		}
	}
	return "", false
}

func sortedPropSet(ps PropertySet) []Property {
	seen := make(map[Property]bool, len(ps))
	for p := range ps {
		seen[p] = true
	}
	return sortedProps(seen)
}

func sortedProps(set map[Property]bool) []Property {
	out := make([]Property, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// --- Easing ---

// easings maps GSAP-style names used by choreography manifests to gween
// easing functions. powerN follows GSAP: power1=quad, power2=cubic,
// power3=quart, power4=quint.
var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"none":         ease.Linear,
	"power1.in":    ease.InQuad,
	"power1.out":   ease.OutQuad,
	"power1.inOut": ease.InOutQuad,
	"power2.in":    ease.InCubic,
	"power2.out":   ease.OutCubic,
	"power2.inOut": ease.InOutCubic,
	"power3.in":    ease.InQuart,
	"power3.out":   ease.OutQuart,
	"power3.inOut": ease.InOutQuart,
	"power4.in":    ease.InQuint,
	"power4.out":   ease.OutQuint,
	"power4.inOut": ease.InOutQuint,
	"sine.in":      ease.InSine,
	"sine.out":     ease.OutSine,
	"sine.inOut":   ease.InOutSine,
	"expo.in":      ease.InExpo,
	"expo.out":     ease.OutExpo,
	"expo.inOut":   ease.InOutExpo,
	"back.in":      ease.InBack,
	"back.out":     ease.OutBack,
	"back.inOut":   ease.InOutBack,
	"bounce.out":   ease.OutBounce,
}

// EasingByName resolves a GSAP-style easing name. The empty name is linear.
// Unknown names return an error wrapping ErrInvalidTimelineSpec.
func EasingByName(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown easing %q", ErrInvalidTimelineSpec, name)
	}
	return fn, nil
}

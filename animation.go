package reveal

import (
	"fmt"

	"github.com/tanema/gween"
)

// claimKey identifies one property of one node. At most one run owns a key
// at any time; starting a run that needs a key takes it from the owner.
type claimKey struct {
	node *Node
	prop Property
}

type runState uint8

const (
	runRunning runState = iota
	runCompleted
	runCanceled
)

// liveTrack is a planned track plus its playback state.
type liveTrack struct {
	track
	tween   *gween.Tween
	handoff bool // begin from the live value instead of from
	stopped bool
	done    bool
}

// Playback is one run of a Timeline against a set of targets. It is returned
// by Animator.Play and Animator.Reverse and advanced by Animator.Update.
type Playback struct {
	anim     *Animator
	timeline *Timeline
	targets  []*Node
	tracks   []*liveTrack
	elapsed  float64
	total    float64
	reverse  bool
	state    runState

	// OnComplete is called once when the run reaches its end. It is not
	// called for canceled or superseded runs.
	OnComplete func()
}

// Animator schedules timeline runs and advances them once per frame. Runs on
// overlapping targets never write the same property in the same frame: the
// newest request always wins.
//
// There is no global animator; a Page owns one, and tests may create as many
// as they like.
type Animator struct {
	runs   []*Playback
	claims map[claimKey]*Playback

	// Instant settles every run on the frame it starts (reduced motion).
	Instant bool

	emit func(RevealEvent)
}

// NewAnimator creates an empty animator.
func NewAnimator() *Animator {
	return &Animator{claims: make(map[claimKey]*Playback)}
}

// Play starts tl forward against targets, superseding any run in flight on
// the same targets or properties.
func (a *Animator) Play(tl *Timeline, targets ...*Node) (*Playback, error) {
	return a.start(tl, targets, false)
}

// Reverse starts tl backward against targets: from and to are swapped and
// the stagger is mirrored, restoring the pre-reveal state in reverse order.
func (a *Animator) Reverse(tl *Timeline, targets ...*Node) (*Playback, error) {
	return a.start(tl, targets, true)
}

func (a *Animator) start(tl *Timeline, targets []*Node, reverse bool) (*Playback, error) {
	if tl == nil {
		return nil, fmt.Errorf("%w: nil timeline", ErrInvalidTimelineSpec)
	}
	live := liveNodes(targets)
	if len(live) == 0 {
		return nil, fmt.Errorf("%w: no live targets", ErrTargetNotFound)
	}

	planned, total := tl.plan(live, reverse)
	r := &Playback{
		anim:     a,
		timeline: tl,
		targets:  live,
		total:    total,
		reverse:  reverse,
		tracks:   make([]*liveTrack, len(planned)),
	}
	for i := range planned {
		r.tracks[i] = &liveTrack{track: planned[i]}
	}

	// Cancel-before-start: runs sharing a target are canceled outright, and
	// any other owner of a needed key loses just that key.
	handed := make(map[claimKey]bool)
	for _, old := range a.runs {
		if old.state == runRunning && sharesTarget(old.targets, live) {
			for _, t := range r.tracks {
				if a.claims[t.key()] == old {
					handed[t.key()] = true
				}
			}
			old.supersede(handed)
		}
	}
	for _, t := range r.tracks {
		k := t.key()
		if owner := a.claims[k]; owner != nil && owner != r {
			handed[k] = true
			owner.release(k)
		}
		a.claims[k] = r
	}

	// A fresh key renders its declared start value immediately; a handed-over
	// key continues from wherever the previous run left it. Iterate in
	// reverse start order so the earliest step's value is the one left.
	for i := len(r.tracks) - 1; i >= 0; i-- {
		t := r.tracks[i]
		if handed[t.key()] {
			t.handoff = true
			continue
		}
		t.node.SetProperty(t.prop, t.from)
	}

	a.runs = append(a.runs, r)
	a.emitRun(EventRunStart, r)
	debugf("run start: %d tracks over %.2fs (reverse=%v)", len(r.tracks), total, reverse)

	if a.Instant {
		r.Finish()
	}
	return r, nil
}

// Update advances all running timelines by dt seconds.
func (a *Animator) Update(dt float32) {
	if len(a.runs) == 0 {
		return
	}
	runs := make([]*Playback, len(a.runs))
	copy(runs, a.runs)
	for _, r := range runs {
		if r.state == runRunning {
			r.advance(float64(dt))
		}
	}
	a.compact()
}

// compact drops runs that are no longer running.
func (a *Animator) compact() {
	n := 0
	for _, r := range a.runs {
		if r.state == runRunning {
			a.runs[n] = r
			n++
		}
	}
	for i := n; i < len(a.runs); i++ {
		a.runs[i] = nil
	}
	a.runs = a.runs[:n]
}

// Running returns the number of runs in flight.
func (a *Animator) Running() int {
	n := 0
	for _, r := range a.runs {
		if r.state == runRunning {
			n++
		}
	}
	return n
}

// Tracks returns the number of unfinished tracks across running runs.
func (a *Animator) Tracks() int {
	n := 0
	for _, r := range a.runs {
		if r.state != runRunning {
			continue
		}
		for _, t := range r.tracks {
			if !t.done && !t.stopped {
				n++
			}
		}
	}
	return n
}

// Owner returns the run currently owning node's property, or nil.
func (a *Animator) Owner(node *Node, prop Property) *Playback {
	return a.claims[claimKey{node, prop}]
}

// Settle finishes every running run, snapping all tracks to their end values.
func (a *Animator) Settle() {
	runs := make([]*Playback, len(a.runs))
	copy(runs, a.runs)
	for _, r := range runs {
		r.Finish()
	}
	a.compact()
}

func (a *Animator) emitRun(typ EventType, r *Playback) {
	if a.emit == nil {
		return
	}
	ev := RevealEvent{Type: typ, Reversed: r.reverse}
	if len(r.targets) > 0 {
		ev.NodeID = r.targets[0].ID
		ev.Name = r.targets[0].Name
	}
	a.emit(ev)
}

// --- Playback ---

func (t *liveTrack) key() claimKey {
	return claimKey{t.node, t.prop}
}

// advance moves the run's clock forward and writes every active track.
func (r *Playback) advance(dt float64) {
	prev := r.elapsed
	r.elapsed += dt
	allDone := true
	for _, t := range r.tracks {
		if t.done || t.stopped {
			continue
		}
		if t.node.disposed {
			t.done = true
			continue
		}
		if r.elapsed < t.start {
			allDone = false
			continue
		}
		step := dt
		if t.tween == nil {
			begin := t.from
			if t.handoff {
				begin = t.node.Property(t.prop)
			}
			t.tween = gween.New(float32(begin), float32(t.to), float32(t.duration), t.ease)
			// First frame covers only the part of dt after the track's start.
			step = r.elapsed - max(prev, t.start)
		}
		val, finished := t.tween.Update(float32(step))
		if finished {
			t.node.SetProperty(t.prop, t.to)
			t.done = true
			continue
		}
		t.node.SetProperty(t.prop, float64(val))
		allDone = false
	}
	if allDone {
		r.complete()
	}
}

// complete marks the run finished, frees its keys and fires OnComplete.
func (r *Playback) complete() {
	if r.state != runRunning {
		return
	}
	r.state = runCompleted
	r.dropClaims()
	r.anim.emitRun(EventRunComplete, r)
	if r.OnComplete != nil {
		defer recoverCallback("run OnComplete")
		r.OnComplete()
	}
}

// Finish snaps every unfinished track to its end value and completes the run.
// No-op if the run already ended.
func (r *Playback) Finish() {
	if r == nil || r.state != runRunning {
		return
	}
	r.snap()
	r.complete()
}

// Cancel stops the run and snaps its unfinished tracks to their end values,
// so nothing is left mid-transition. OnComplete is not called. Idempotent.
func (r *Playback) Cancel() {
	if r == nil || r.state != runRunning {
		return
	}
	r.snap()
	r.state = runCanceled
	r.dropClaims()
}

// Release cancels the run. It lets a Playback be collected by a Scope.
func (r *Playback) Release() {
	r.Cancel()
}

// supersede cancels the run for a newer request. Keys in handed are taken
// over mid-flight and left as they are; every other unfinished track snaps to
// its end value.
func (r *Playback) supersede(handed map[claimKey]bool) {
	for _, t := range r.tracks {
		if handed[t.key()] {
			t.stopped = true
		}
	}
	r.Cancel()
}

// release stops the tracks writing k. A run left with no track to play is
// canceled, not completed.
func (r *Playback) release(k claimKey) {
	pending := false
	for _, t := range r.tracks {
		if t.key() == k {
			t.stopped = true
		}
		if !t.stopped && !t.done {
			pending = true
		}
	}
	if r.anim.claims[k] == r {
		delete(r.anim.claims, k)
	}
	if !pending && r.state == runRunning {
		r.state = runCanceled
		r.dropClaims()
		debugf("run canceled: every track taken over")
	}
}

// snap writes the end value of every track that has not finished, in start
// order so the last step touching a key decides its value.
func (r *Playback) snap() {
	for _, t := range r.tracks {
		if t.done || t.stopped {
			continue
		}
		if !t.node.disposed {
			t.node.SetProperty(t.prop, t.to)
		}
		t.done = true
	}
}

func (r *Playback) dropClaims() {
	for _, t := range r.tracks {
		if r.anim.claims[t.key()] == r {
			delete(r.anim.claims, t.key())
		}
	}
}

// Done reports whether the run has completed or been canceled.
func (r *Playback) Done() bool {
	return r.state != runRunning
}

// Completed reports whether the run reached its end (naturally or via Finish).
func (r *Playback) Completed() bool {
	return r.state == runCompleted
}

// Reversed reports whether this is a reverse run.
func (r *Playback) Reversed() bool {
	return r.reverse
}

// Duration returns the run's total length in seconds.
func (r *Playback) Duration() float64 {
	return r.total
}

// Elapsed returns the time the run has been advanced by.
func (r *Playback) Elapsed() float64 {
	return r.elapsed
}

// --- Helpers ---

func liveNodes(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil && !n.disposed {
			out = append(out, n)
		}
	}
	return out
}

func sharesTarget(a, b []*Node) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

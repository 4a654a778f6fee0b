package reveal

import "strconv"

// ScrollProgress maps a scroll offset to [0, 1]:
// clamp(offset / (documentHeight - viewportHeight), 0, 1).
// A document that fits in the viewport reports 0.
func ScrollProgress(offset, documentHeight, viewportHeight float64) float64 {
	maxScroll := documentHeight - viewportHeight
	if maxScroll <= 0 {
		return 0
	}
	return clamp01(offset / maxScroll)
}

// ProgressWidth formats progress as the width of a progress indicator,
// e.g. 0.25 -> "25%".
func ProgressWidth(progress float64) string {
	return strconv.FormatFloat(clamp01(progress)*100, 'f', -1, 64) + "%"
}

// ProgressTracker converts scroll offsets into a normalized progress value and
// fans it out to subscribers. Callbacks run synchronously in subscription
// order; a panicking callback is logged and does not stop the others.
type ProgressTracker struct {
	subs     []*Subscription
	progress float64
}

// Subscription is the handle returned by ProgressTracker.Subscribe.
type Subscription struct {
	tracker *ProgressTracker
	fn      func(progress float64)
}

// NewProgressTracker creates a tracker reading 0.
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{}
}

// Subscribe registers fn to receive every recomputed progress value.
func (t *ProgressTracker) Subscribe(fn func(progress float64)) *Subscription {
	s := &Subscription{tracker: t, fn: fn}
	t.subs = append(t.subs, s)
	return s
}

// Unsubscribe removes s. Safe to call multiple times.
func (t *ProgressTracker) Unsubscribe(s *Subscription) {
	s.Release()
}

// Release detaches the subscription. Idempotent.
func (s *Subscription) Release() {
	if s == nil || s.tracker == nil {
		return
	}
	t := s.tracker
	s.tracker = nil
	for i, sub := range t.subs {
		if sub == s {
			copy(t.subs[i:], t.subs[i+1:])
			t.subs[len(t.subs)-1] = nil
			t.subs = t.subs[:len(t.subs)-1]
			return
		}
	}
}

// Active reports whether the subscription is still attached.
func (s *Subscription) Active() bool {
	return s != nil && s.tracker != nil
}

// Update recomputes progress from the current scroll geometry and dispatches
// it to every subscriber. Returns the new progress.
func (t *ProgressTracker) Update(offset, documentHeight, viewportHeight float64) float64 {
	t.progress = ScrollProgress(offset, documentHeight, viewportHeight)

	// Iterate a snapshot so callbacks may subscribe or unsubscribe; anything
	// released mid-dispatch is skipped.
	subs := make([]*Subscription, len(t.subs))
	copy(subs, t.subs)
	for _, s := range subs {
		if s.tracker != t {
			continue
		}
		t.call(s)
	}
	return t.progress
}

func (t *ProgressTracker) call(s *Subscription) {
	defer recoverCallback("progress subscriber")
	s.fn(t.progress)
}

// Progress returns the most recently computed value.
func (t *ProgressTracker) Progress() float64 {
	return t.progress
}

// Len returns the number of attached subscriptions.
func (t *ProgressTracker) Len() int {
	return len(t.subs)
}

// BindWidth subscribes a progress-bar node whose Width follows
// progress*fullWidth.
func (t *ProgressTracker) BindWidth(bar *Node, fullWidth float64) *Subscription {
	bar.Width = t.progress * fullWidth
	bar.MarkDirty()
	return t.Subscribe(func(p float64) {
		bar.Width = p * fullWidth
		bar.MarkDirty()
	})
}

package reveal

import "errors"

var (
	// ErrInvalidTimelineSpec reports a malformed step list: no steps, a
	// non-positive duration, a negative delay or stagger, or mismatched
	// from/to property sets.
	ErrInvalidTimelineSpec = errors.New("reveal: invalid timeline spec")

	// ErrTargetNotFound reports a registration or playback against an element
	// set that does not resolve to any live node.
	ErrTargetNotFound = errors.New("reveal: target not found")

	// ErrInvalidWindow reports intersection thresholds outside [0, 1], an exit
	// threshold above the enter threshold, or an out-of-range inset.
	ErrInvalidWindow = errors.New("reveal: invalid intersection window")
)

package reveal

import (
	"fmt"
	"log"
	"time"
)

// globalDebug mirrors the most recently set Page debug flag so that node,
// trigger and gate operations (which lack a Page pointer) can check it
// cheaply. Only valid with a single Page; multiple Pages with differing debug
// modes will reflect whichever called SetDebugMode last.
var globalDebug bool

// debugStats holds per-frame timing and engine counters.
// Only populated when Page.debug is true.
type debugStats struct {
	updateTime     time.Duration
	activeTriggers int
	runs           int
	tracks         int
	scrollY        float64
	progress       float64
}

// debugLog prints per-frame stats.
func (p *Page) debugLog(stats debugStats) {
	if !p.debug {
		return
	}
	log.Printf("[reveal] update: %v | scroll: %.1f | progress: %.3f | triggers: %d | runs: %d | tracks: %d",
		stats.updateTime, stats.scrollY, stats.progress, stats.activeTriggers, stats.runs, stats.tracks)
}

// debugf logs a diagnostic line when debug mode is on.
func debugf(format string, args ...any) {
	if globalDebug {
		log.Printf("[reveal] "+format, args...)
	}
}

// warnf always logs. Used for recovered callback panics and config warnings.
func warnf(format string, args ...any) {
	log.Printf("[reveal] warning: "+format, args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("reveal debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		warnf("tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}

// recoverCallback recovers a panic raised by user code and logs it with the
// given context. Use as a deferred call.
func recoverCallback(context string) {
	if r := recover(); r != nil {
		warnf("%s panicked: %v", context, r)
	}
}

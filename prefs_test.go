package reveal

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openTestManager(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("cannot open gdata manager: %v", err)
	}
	return m
}

func TestPrefsStoreNilManager(t *testing.T) {
	ps := NewPrefsStore(nil)
	if ps.Persistent() {
		t.Error("nil manager should not be persistent")
	}
	if ps.Prefs() != (Prefs{}) {
		t.Errorf("Prefs = %+v, want defaults", ps.Prefs())
	}
	ps.SetReducedMotion(true)
	if err := ps.Save(); err != nil {
		t.Errorf("Save in degraded mode: %v", err)
	}
	if !ps.Prefs().ReducedMotion {
		t.Error("in-memory preference should be kept")
	}
}

func TestPrefsStoreRoundTrip(t *testing.T) {
	m := openTestManager(t, "reveal_prefs_roundtrip")

	ps := NewPrefsStore(m)
	if !ps.Persistent() {
		t.Fatal("store with a manager should be persistent")
	}
	p := newTestPage()
	p.update(frame)
	p.Viewport().ScrollTo(420, 0, nil)
	p.SetReducedMotion(true)
	ps.Capture(p)
	if err := ps.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := NewPrefsStore(m)
	got := reloaded.Prefs()
	if !got.ReducedMotion || got.ScrollY != 420 {
		t.Errorf("reloaded prefs = %+v, want reduced motion at 420", got)
	}
}

func TestPrefsApplyTo(t *testing.T) {
	ps := NewPrefsStore(nil)
	ps.prefs = Prefs{ReducedMotion: true, ScrollY: 5000}
	p := newTestPage()

	ps.ApplyTo(p)

	if !p.Animator().Instant {
		t.Error("ApplyTo should enable reduced motion")
	}
	if p.Viewport().ScrollY != 800 {
		t.Errorf("ScrollY = %v, want 800 (clamped)", p.Viewport().ScrollY)
	}
}

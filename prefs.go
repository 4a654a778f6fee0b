package reveal

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Prefs holds viewer preferences that survive restarts.
type Prefs struct {
	// ReducedMotion settles every run on the frame it starts.
	ReducedMotion bool `yaml:"reducedMotion"`
	// ScrollY is the scroll offset the viewer left the page at.
	ScrollY float64 `yaml:"scrollY"`
}

const (
	prefsObject   = "prefs"
	prefsProperty = "viewer"
)

// PrefsStore loads and saves Prefs through a gdata manager. A nil manager
// runs in memory only: loads return defaults and saves are no-ops.
type PrefsStore struct {
	manager *gdata.Manager
	prefs   Prefs
}

// OpenPrefs opens the gdata store for appName. If the platform store cannot
// be opened the returned PrefsStore works in memory only and the error is
// logged.
func OpenPrefs(appName string) *PrefsStore {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[reveal] warning: open prefs store: %v (preferences will not persist)", err)
		m = nil
	}
	return NewPrefsStore(m)
}

// NewPrefsStore wraps manager, which may be nil, and loads any saved prefs.
// A load failure is logged and leaves the defaults in place.
func NewPrefsStore(manager *gdata.Manager) *PrefsStore {
	ps := &PrefsStore{manager: manager}
	if err := ps.Load(); err != nil {
		log.Printf("[reveal] warning: %v (using defaults)", err)
	}
	return ps
}

// Load reads saved prefs. Missing data is not an error.
func (ps *PrefsStore) Load() error {
	ps.prefs = Prefs{}
	if ps.manager == nil {
		return nil
	}
	if !ps.manager.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}
	data, err := ps.manager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("failed to load prefs: %w", err)
	}
	var loaded Prefs
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal prefs: %w", err)
	}
	ps.prefs = loaded
	return nil
}

// Save writes the current prefs. No-op without a manager.
func (ps *PrefsStore) Save() error {
	if ps.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(ps.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}
	if err := ps.manager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("failed to save prefs: %w", err)
	}
	return nil
}

// Prefs returns the current preferences.
func (ps *PrefsStore) Prefs() Prefs {
	return ps.prefs
}

// SetReducedMotion updates the in-memory preference. Call Save to persist.
func (ps *PrefsStore) SetReducedMotion(enabled bool) {
	ps.prefs.ReducedMotion = enabled
}

// Persistent reports whether prefs are backed by a gdata store.
func (ps *PrefsStore) Persistent() bool {
	return ps.manager != nil
}

// ApplyTo restores the saved preferences onto page: reduced motion and the
// scroll offset (clamped once the page has content).
func (ps *PrefsStore) ApplyTo(page *Page) {
	page.SetReducedMotion(ps.prefs.ReducedMotion)
	if ps.prefs.ScrollY > 0 {
		page.viewport.ContentHeight = contentBottom(page.root)
		page.viewport.ScrollTo(ps.prefs.ScrollY, 0, nil)
	}
}

// Capture records the page's current scroll offset and reduced-motion
// setting so a following Save persists them.
func (ps *PrefsStore) Capture(page *Page) {
	ps.prefs.ScrollY = page.viewport.ScrollY
	ps.prefs.ReducedMotion = page.anim.Instant
}

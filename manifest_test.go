package reveal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testManifest = `
timelines:
  fadeUp:
    - target: ".reveal"
      from: {opacity: 0, y: 60}
      to: {opacity: 1, y: 0}
      duration: 1
      stagger: 0.5
  cardIn:
    - from: {opacity: 0, scale: 0.9}
      to: {opacity: 1, scale: 1}
      duration: 1
regions:
  hero:
    intro:
      - timeline: fadeUp
  about:
    triggers:
      - timeline: fadeUp
        start: 0.75
        action: reverse
  gallery:
    triggers:
      - select: ".card"
        timeline: cardIn
        each: true
        eachDelay: 0.1
        minWidth: 768
`

// newManifestPage builds hero, about and gallery regions at 0, 800 and
// 1600 in an 800x600 page.
func newManifestPage() *Page {
	p := NewPage(800, 600)
	hero := NewContainer("hero")
	hero.AddChild(NewBox("title", 800, 100, ColorWhite, "reveal"))
	about := NewContainer("about")
	about.SetPosition(0, 800)
	about.AddChild(NewBox("p1", 800, 100, ColorWhite, "reveal"))
	about.AddChild(NewBox("p2", 800, 100, ColorWhite, "reveal"))
	gallery := NewContainer("gallery")
	gallery.SetPosition(0, 1600)
	for _, name := range []string{"c1", "c2", "c3"} {
		gallery.AddChild(NewBox(name, 200, 200, ColorWhite, "card"))
	}
	p.Root().AddChild(hero)
	p.Root().AddChild(about)
	p.Root().AddChild(gallery)
	return p
}

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(testManifest))
	if err != nil {
		t.Fatal(err)
	}
	tl := m.Timeline("fadeUp")
	if tl == nil {
		t.Fatal("fadeUp not compiled")
	}
	st := tl.Steps()[0]
	if st.Target != ".reveal" || st.From[TranslateY] != 60 || st.Stagger != 0.5 {
		t.Errorf("step = %+v", st)
	}
	if m.Timeline("missing") != nil {
		t.Error("unknown timeline should be nil")
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"unknown property", `
timelines:
  t: [{from: {wobble: 0}, to: {wobble: 1}, duration: 1}]`, ErrInvalidTimelineSpec},
		{"unknown ease", `
timelines:
  t: [{from: {opacity: 0}, to: {opacity: 1}, duration: 1, ease: bogus}]`, ErrInvalidTimelineSpec},
		{"zero duration", `
timelines:
  t: [{from: {opacity: 0}, to: {opacity: 1}}]`, ErrInvalidTimelineSpec},
		{"unknown timeline", `
regions:
  about:
    triggers: [{timeline: nope}]`, ErrInvalidTimelineSpec},
		{"unknown intro timeline", `
regions:
  hero:
    intro: [{timeline: nope}]`, ErrInvalidTimelineSpec},
		{"exit above enter", `
timelines:
  t: [{from: {opacity: 0}, to: {opacity: 1}, duration: 1}]
regions:
  about:
    triggers: [{timeline: t, enter: 0.2, exit: 0.5}]`, ErrInvalidWindow},
		{"unknown action", `
timelines:
  t: [{from: {opacity: 0}, to: {opacity: 1}, duration: 1}]
regions:
  about:
    triggers: [{timeline: t, action: bounce}]`, ErrInvalidWindow},
		{"start at top edge", `
timelines:
  t: [{from: {opacity: 0}, to: {opacity: 1}, duration: 1}]
regions:
  about:
    triggers: [{timeline: t, start: 0}]`, ErrInvalidWindow},
		{"start above one", `
timelines:
  t: [{from: {opacity: 0}, to: {opacity: 1}, duration: 1}]
regions:
  about:
    triggers: [{timeline: t, start: 1.5}]`, ErrInvalidWindow},
		{"unknown intro rest", `
timelines:
  t: [{from: {opacity: 0}, to: {opacity: 1}, duration: 1}]
regions:
  hero:
    intro: [{timeline: t, rest: bounce}]`, ErrInvalidWindow},
		{"bad width range", `
timelines:
  t: [{from: {opacity: 0}, to: {opacity: 1}, duration: 1}]
regions:
  about:
    triggers: [{timeline: t, minWidth: 1024, maxWidth: 640}]`, ErrInvalidWindow},
	}
	for _, tt := range tests {
		_, err := ParseManifest([]byte(tt.yaml))
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}

	if _, err := ParseManifest([]byte("timelines: [unclosed")); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "choreography.yaml")
	if err := os.WriteFile(path, []byte(testManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadManifest(path); err != nil {
		t.Errorf("LoadManifest: %v", err)
	}
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestManifestApply(t *testing.T) {
	m, err := ParseManifest([]byte(testManifest))
	if err != nil {
		t.Fatal(err)
	}
	p := newManifestPage()

	if err := m.Apply(p, p.Root()); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	for _, name := range []string{"hero", "about", "gallery"} {
		if !p.Mounted(p.Root().SelectFirst("#" + name)) {
			t.Errorf("%s not mounted", name)
		}
	}
	// about: one trigger; gallery: one per card.
	if p.Registry().Active() != 4 {
		t.Errorf("Active = %d, want 4", p.Registry().Active())
	}
	// hero intro is playing.
	if p.Animator().Running() != 1 {
		t.Errorf("Running = %d, want 1", p.Animator().Running())
	}
	title := p.Root().SelectFirst("#title")
	if title.Alpha != 0 {
		t.Errorf("intro should start at its from value, Alpha = %v", title.Alpha)
	}
}

func TestManifestEachDelaysPerNode(t *testing.T) {
	m, _ := ParseManifest([]byte(testManifest))
	p := newManifestPage()
	m.Apply(p, p.Root())

	p.InjectScrollTo(1400)
	p.update(0.15)

	c1 := p.Root().SelectFirst("#c1")
	c2 := p.Root().SelectFirst("#c2")
	c3 := p.Root().SelectFirst("#c3")
	if !(c1.Alpha > c2.Alpha) || c3.Alpha != 0 {
		t.Errorf("alphas = %v %v %v, want c1 > c2 > c3 = 0", c1.Alpha, c2.Alpha, c3.Alpha)
	}
}

func TestManifestWidthGate(t *testing.T) {
	m, _ := ParseManifest([]byte(testManifest))
	p := newManifestPage()
	p.Resize(600, 600)
	m.Apply(p, p.Root())

	if p.Registry().Active() != 1 {
		t.Fatalf("Active = %d, want 1 (gallery gated off)", p.Registry().Active())
	}

	p.Resize(1024, 600)
	if p.Registry().Active() != 4 {
		t.Errorf("Active = %d, want 4 after widening", p.Registry().Active())
	}

	p.Unmount(p.Root().SelectFirst("#gallery"))
	if p.Registry().Active() != 1 || p.Media().Len() != 0 {
		t.Errorf("after unmount: Active = %d, gates = %d", p.Registry().Active(), p.Media().Len())
	}
}

func TestManifestApplyMissingRegion(t *testing.T) {
	m, _ := ParseManifest([]byte(testManifest))
	p := NewPage(800, 600)
	about := NewContainer("about")
	about.AddChild(NewBox("p1", 800, 100, ColorWhite, "reveal"))
	p.Root().AddChild(about)

	err := m.Apply(p, p.Root())

	if !errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("err = %v, want ErrTargetNotFound", err)
	}
	if !strings.Contains(err.Error(), "gallery") || !strings.Contains(err.Error(), "hero") {
		t.Errorf("err = %v, want both missing regions named", err)
	}
	if !p.Mounted(about) || p.Registry().Active() != 1 {
		t.Error("present regions should still mount")
	}
}

func TestManifestSetupUnknownRegion(t *testing.T) {
	m, _ := ParseManifest([]byte(testManifest))
	p := NewPage(800, 600)
	other := NewContainer("other")

	s := p.Mount(other, m.Setup(p, other))

	if s.Len() != 0 || s.Err() != nil {
		t.Errorf("Len = %d, Err = %v", s.Len(), s.Err())
	}
}

func TestTriggerSpecStart(t *testing.T) {
	win, err := TriggerSpec{}.window()
	if err != nil || win.BottomInset != 0 {
		t.Errorf("absent start: BottomInset = %v, err = %v", win.BottomInset, err)
	}
	start := 0.75
	win, err = TriggerSpec{Start: &start, Lazy: true}.window()
	if err != nil || win.BottomInset != 0.25 || !win.Lazy {
		t.Errorf("start 0.75: %+v, err = %v", win, err)
	}
}

func TestManifestIntroRevertsOnUnmount(t *testing.T) {
	m, _ := ParseManifest([]byte(testManifest))
	p := newManifestPage()
	m.Apply(p, p.Root())
	p.update(0.5)

	title := p.Root().SelectFirst("#title")
	p.Unmount(p.Root().SelectFirst("#hero"))

	if title.Alpha != 1 || title.TranslateY != 0 {
		t.Errorf("after unmount: Alpha = %v, TranslateY = %v, want 1 and 0", title.Alpha, title.TranslateY)
	}
	if p.Animator().Running() != 0 {
		t.Errorf("Running = %d, want 0", p.Animator().Running())
	}
}

func TestManifestIntroRestFinish(t *testing.T) {
	m, err := ParseManifest([]byte(`
timelines:
  fade: [{from: {opacity: 0.2}, to: {opacity: 0.9}, duration: 1}]
regions:
  hero:
    intro: [{timeline: fade, rest: finish}]
`))
	if err != nil {
		t.Fatal(err)
	}
	p := NewPage(800, 600)
	hero := NewBox("hero", 800, 600, ColorWhite)
	p.Root().AddChild(hero)
	m.Apply(p, p.Root())
	p.update(0.25)

	p.Unmount(hero)

	if hero.Alpha != 0.9 {
		t.Errorf("Alpha = %v, want 0.9 (snapped to end)", hero.Alpha)
	}
}

func TestManifestTriggersHideBelowTheFold(t *testing.T) {
	m, _ := ParseManifest([]byte(testManifest))
	p := newManifestPage()
	m.Apply(p, p.Root())

	for _, name := range []string{"p1", "p2", "c1", "c3"} {
		if n := p.Root().SelectFirst("#" + name); n.Alpha != 0 {
			t.Errorf("%s Alpha = %v before reveal, want 0", name, n.Alpha)
		}
	}
}

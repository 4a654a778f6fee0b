// BrandCraft is a one-page designer portfolio: a hero with an embedded 3D
// scene, an about section that fades up on scroll, a gated project gallery,
// a call to action and a contact form, all choreographed by
// choreography.yaml. Scroll with the wheel, arrows, PageUp/PageDown or jump
// with the number keys 1-5.
package main

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/reveal"
	"github.com/phanxgames/reveal/ecs"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

//go:embed choreography.yaml
var defaultChoreography []byte

const (
	screenW = 1280
	screenH = 800
	appName = "brandcraft_reveal"
)

var anchors = []string{"#hero", "#about", "#gallery", "#cta", "#contact"}

func main() {
	manifestPath := flag.String("manifest", "", "choreography YAML (default: embedded)")
	scriptPath := flag.String("script", "", "JSON test script to drive scrolling")
	debug := flag.Bool("debug", false, "log trigger, gate and frame diagnostics")
	showFPS := flag.Bool("fps", false, "show the stats overlay")
	flag.Parse()

	manifest, err := loadManifest(*manifestPath)
	if err != nil {
		log.Fatal(err)
	}

	page := reveal.NewPage(screenW, screenH)
	page.ClearColor = colSlate950
	page.SetDebugMode(*debug)

	world := donburi.NewWorld()
	page.SetEntityStore(ecs.NewDonburiStore(world))
	stats := ecs.TrackStats(world)

	site := buildSite(page)
	site.layout(screenW, screenH)
	if err := manifest.Apply(page, page.Root()); err != nil {
		log.Printf("choreography: %v", err)
	}

	prefs := reveal.OpenPrefs(appName)
	prefs.ApplyTo(page)

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("read test script: %v", err)
		}
		runner, err := reveal.LoadTestScript(data)
		if err != nil {
			log.Fatal(err)
		}
		page.SetTestRunner(runner)
	}

	lastW := float64(screenW)
	page.SetUpdateFunc(func() error {
		if w, h := page.Viewport().Width, page.Viewport().Height; w != lastW {
			lastW = w
			site.layout(w, h)
		}
		events.ProcessAllEvents(world)

		for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5} {
			if inpututil.IsKeyJustPressed(key) {
				page.Navigate(anchors[i])
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			reduced := !page.Animator().Instant
			page.SetReducedMotion(reduced)
			log.Printf("reduced motion: %v", reduced)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			st := ecs.Stats.Get(stats)
			log.Printf("reveals: %d enters, %d runs, %d completed", st.Enters, st.Runs, st.Completed)
			prefs.Capture(page)
			if err := prefs.Save(); err != nil {
				log.Printf("save prefs: %v", err)
			}
			page.Close()
			return ebiten.Termination
		}
		return nil
	})

	err = reveal.Run(page, reveal.RunConfig{
		Title:     "BrandCraft Studio",
		Width:     screenW,
		Height:    screenH,
		ShowFPS:   *showFPS,
		Resizable: true,
	})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

func loadManifest(path string) (*reveal.Manifest, error) {
	if path == "" {
		m, err := reveal.ParseManifest(defaultChoreography)
		if err != nil {
			return nil, fmt.Errorf("embedded choreography: %w", err)
		}
		return m, nil
	}
	return reveal.LoadManifest(path)
}

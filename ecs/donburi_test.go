package ecs

import (
	"testing"

	"github.com/phanxgames/reveal"
	"github.com/tanema/gween/ease"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []reveal.RevealEvent
	RevealEventType.Subscribe(world, func(w donburi.World, e reveal.RevealEvent) {
		received = append(received, e)
	})

	store.EmitEvent(reveal.RevealEvent{
		Type:      reveal.EventEnter,
		NodeID:    42,
		Name:      "about",
		TriggerID: 3,
		Ratio:     0.5,
	})
	store.EmitEvent(reveal.RevealEvent{
		Type:  reveal.EventGateOn,
		Width: 1024,
	})

	// Events are queued; process them.
	RevealEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != reveal.EventEnter || e0.NodeID != 42 || e0.TriggerID != 3 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Ratio != 0.5 || e0.Name != "about" {
		t.Errorf("event 0 payload: %+v", e0)
	}

	e1 := received[1]
	if e1.Type != reveal.EventGateOn || e1.Width != 1024 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_ImplementsEventStore(t *testing.T) {
	world := donburi.NewWorld()
	var store reveal.EventStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	RevealEventType.Subscribe(world, func(w donburi.World, e reveal.RevealEvent) {
		count1++
	})
	RevealEventType.Subscribe(world, func(w donburi.World, e reveal.RevealEvent) {
		count2++
	})

	store.EmitEvent(reveal.RevealEvent{Type: reveal.EventLeave})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestTrackStats_CountsPageEvents(t *testing.T) {
	world := donburi.NewWorld()
	entry := TrackStats(world)

	page := reveal.NewPage(800, 600)
	page.SetEntityStore(NewDonburiStore(world))

	section := reveal.NewBox("about", 800, 400, reveal.ColorWhite)
	section.Y = 200
	tl := reveal.MustTimeline(reveal.Step{
		From:     reveal.PropertySet{reveal.Opacity: 0},
		To:       reveal.PropertySet{reveal.Opacity: 1},
		Duration: 0.5,
		Ease:     ease.Linear,
	})
	page.Mount(section, func(s *reveal.Scope) {
		s.Keep(page.Registry().Register(reveal.RegionOf(section), tl, reveal.Window{Enter: 0.1}))
	})

	for i := 0; i < 60; i++ {
		page.Update()
	}
	events.ProcessAllEvents(world)

	st := Stats.Get(entry)
	if st.Enters != 1 {
		t.Errorf("Enters = %d, want 1", st.Enters)
	}
	if st.Runs != 1 || st.Completed != 1 {
		t.Errorf("Runs = %d Completed = %d, want 1 and 1", st.Runs, st.Completed)
	}
	if st.Last.Type != reveal.EventRunComplete {
		t.Errorf("Last = %+v, want run complete", st.Last)
	}
}

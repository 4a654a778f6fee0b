package ecs

import (
	"github.com/phanxgames/reveal"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// RevealEventType is the Donburi event type for reveal lifecycle events.
var RevealEventType = events.NewEventType[reveal.RevealEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Events are published to RevealEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) reveal.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event reveal.RevealEvent) {
	RevealEventType.Publish(s.world, event)
}

// StatsData counts processed reveal events by kind.
type StatsData struct {
	Enters    int
	Leaves    int
	Runs      int
	Completed int
	GateOn    int
	GateOff   int
	// Last is the most recent event processed.
	Last reveal.RevealEvent
}

// Stats is the component TrackStats attaches to its entity.
var Stats = donburi.NewComponentType[StatsData]()

// TrackStats creates an entity carrying a Stats component and subscribes it
// to RevealEventType. Counters advance when the world's events are processed.
func TrackStats(world donburi.World) *donburi.Entry {
	entity := world.Create(Stats)
	entry := world.Entry(entity)
	RevealEventType.Subscribe(world, func(w donburi.World, e reveal.RevealEvent) {
		if !w.Valid(entity) {
			return
		}
		st := Stats.Get(w.Entry(entity))
		switch e.Type {
		case reveal.EventEnter:
			st.Enters++
		case reveal.EventLeave:
			st.Leaves++
		case reveal.EventRunStart:
			st.Runs++
		case reveal.EventRunComplete:
			st.Completed++
		case reveal.EventGateOn:
			st.GateOn++
		case reveal.EventGateOff:
			st.GateOff++
		}
		st.Last = e
	})
	return entry
}

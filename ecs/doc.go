// Package ecs provides ECS adapters for reveal's lifecycle events.
//
// The primary adapter is [NewDonburiStore], which bridges reveal events
// (trigger enter/leave, run start/complete, gate on/off) into a [Donburi]
// world as typed events. Subscribe to [RevealEventType] in your ECS systems
// to receive them, or call [TrackStats] for a ready-made counter entity.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	page.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs

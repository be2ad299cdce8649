// Package ecs feeds starter input into a [Donburi] world.
//
// A [Bridge] drains the queues behind a Keyboard and a Pointer without
// blocking and publishes each record as a typed Donburi event. Call
// [Bridge.Drain] once per frame, before ProcessEvents, from the same
// goroutine that runs the world's systems.
//
// Usage:
//
//	bridge := ecs.NewBridge(world, mode.Keyboard(), mode.Pointer())
//	ecs.KeyEventType.Subscribe(world, onKey)
//	// each frame:
//	bridge.Drain()
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs

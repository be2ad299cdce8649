package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/starter/input"
	"github.com/phanxgames/starter/queue"
)

// KeyEventType carries key transitions drained from a Keyboard.
var KeyEventType = events.NewEventType[input.KeyEvent]()

// PointerEventType carries pointer samples drained from a Pointer, in the
// pointer's logical units.
var PointerEventType = events.NewEventType[input.PointerEvent]()

// Bridge publishes queued input records into a Donburi world.
type Bridge struct {
	world donburi.World
	keys  *queue.Queue[input.KeyEvent]
	ptrs  *queue.Queue[input.PointerEvent]
}

// NewBridge returns a bridge for the given adapters. Either may be nil,
// for modes without a pointer.
func NewBridge(world donburi.World, keys *input.Keyboard, ptr *input.Pointer) *Bridge {
	b := &Bridge{world: world}
	if keys != nil {
		b.keys = keys.Queue()
	}
	if ptr != nil {
		b.ptrs = ptr.Queue()
	}
	return b
}

// Drain publishes every record queued so far, keys first, and returns how
// many were published. It never blocks. Records stay queued as Donburi
// events until the world processes them.
func (b *Bridge) Drain() int {
	n := drain(b.world, b.keys, KeyEventType)
	return n + drain(b.world, b.ptrs, PointerEventType)
}

// Closed reports whether the session behind the bridge has ended. A closed
// bridge has nothing more to publish once Drain returns 0.
func (b *Bridge) Closed() bool {
	return (b.keys == nil || b.keys.Closed()) && (b.ptrs == nil || b.ptrs.Closed())
}

func drain[T any](w donburi.World, q *queue.Queue[T], et *events.EventType[T]) int {
	if q == nil {
		return 0
	}
	n := 0
	for {
		v, ok := q.TryDequeue()
		if !ok {
			return n
		}
		et.Publish(w, v)
		n++
	}
}

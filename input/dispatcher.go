package input

import "sync"

// KeySource delivers raw key events.
type KeySource interface {
	OnKeyDown(fn func(RawKey)) Handle
	OnKeyUp(fn func(RawKey)) Handle
}

// PointerSource delivers raw pointer events and lets a listener capture a
// pointer for the rest of its contact.
type PointerSource interface {
	OnPointerDown(fn func(RawPointer)) Handle
	OnPointerMove(fn func(RawPointer)) Handle
	OnPointerUp(fn func(RawPointer)) Handle
	CapturePointer(pointerID int)
}

type handler[F any] struct {
	id uint32
	fn F
}

// Dispatcher fans raw events out to registered callbacks. It implements
// both KeySource and PointerSource. Callbacks run synchronously on the
// goroutine that calls an Emit method, in registration order, and outside
// the dispatcher's lock so they may register or remove listeners.
//
// Pointer events are filtered by the surface rectangle carried in each
// RawPointer. A contact that begins outside it is ignored. Moves and ends
// outside it are dropped unless the pointer is captured; a captured pointer
// reports everything until its contact ends, which also releases the
// capture.
type Dispatcher struct {
	mu          sync.Mutex
	keyDown     []handler[func(RawKey)]
	keyUp       []handler[func(RawKey)]
	pointerDown []handler[func(RawPointer)]
	pointerMove []handler[func(RawPointer)]
	pointerUp   []handler[func(RawPointer)]
	chars       []handler[func(string)]
	captured    map[int]bool
	nextID      uint32
}

// NewDispatcher returns a dispatcher with no listeners.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{captured: make(map[int]bool)}
}

// Handle allows removing a registered callback.
type Handle struct {
	id    uint32
	d     *Dispatcher
	event EventType
}

// Remove unregisters the callback so it no longer fires. Removing twice,
// or removing the zero Handle, is a no-op.
func (h Handle) Remove() {
	if h.d == nil {
		return
	}
	d := h.d
	d.mu.Lock()
	defer d.mu.Unlock()
	switch h.event {
	case EventKeyDown:
		d.keyDown = removeHandler(d.keyDown, h.id)
	case EventKeyUp:
		d.keyUp = removeHandler(d.keyUp, h.id)
	case EventPointerDown:
		d.pointerDown = removeHandler(d.pointerDown, h.id)
	case EventPointerMove:
		d.pointerMove = removeHandler(d.pointerMove, h.id)
	case EventPointerUp:
		d.pointerUp = removeHandler(d.pointerUp, h.id)
	case EventChars:
		d.chars = removeHandler(d.chars, h.id)
	}
}

// removeHandler returns a new slice so that snapshots taken by in-flight
// emits are never mutated.
func removeHandler[F any](s []handler[F], id uint32) []handler[F] {
	for i := range s {
		if s[i].id == id {
			out := make([]handler[F], 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

func addHandler[F any](d *Dispatcher, s *[]handler[F], fn F, event EventType) Handle {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	next := make([]handler[F], len(*s), len(*s)+1)
	copy(next, *s)
	*s = append(next, handler[F]{id: id, fn: fn})
	return Handle{id: id, d: d, event: event}
}

// OnKeyDown registers a callback for key presses, including auto-repeats.
func (d *Dispatcher) OnKeyDown(fn func(RawKey)) Handle {
	return addHandler(d, &d.keyDown, fn, EventKeyDown)
}

// OnKeyUp registers a callback for key releases.
func (d *Dispatcher) OnKeyUp(fn func(RawKey)) Handle {
	return addHandler(d, &d.keyUp, fn, EventKeyUp)
}

// OnPointerDown registers a callback for the start of a contact.
func (d *Dispatcher) OnPointerDown(fn func(RawPointer)) Handle {
	return addHandler(d, &d.pointerDown, fn, EventPointerDown)
}

// OnPointerMove registers a callback for pointer movement.
func (d *Dispatcher) OnPointerMove(fn func(RawPointer)) Handle {
	return addHandler(d, &d.pointerMove, fn, EventPointerMove)
}

// OnPointerUp registers a callback for the end of a contact.
func (d *Dispatcher) OnPointerUp(fn func(RawPointer)) Handle {
	return addHandler(d, &d.pointerUp, fn, EventPointerUp)
}

// OnChars registers a callback for typed text.
func (d *Dispatcher) OnChars(fn func(string)) Handle {
	return addHandler(d, &d.chars, fn, EventChars)
}

// CapturePointer routes every later move and end of pointerID to the
// listeners, even outside the surface, until the contact ends.
func (d *Dispatcher) CapturePointer(pointerID int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.captured[pointerID] = true
}

// ReleasePointer drops a capture taken with CapturePointer.
func (d *Dispatcher) ReleasePointer(pointerID int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.captured, pointerID)
}

// Captured reports whether pointerID is captured.
func (d *Dispatcher) Captured(pointerID int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.captured[pointerID]
}

// EmitKeyDown delivers a key press.
func (d *Dispatcher) EmitKeyDown(k RawKey) {
	d.mu.Lock()
	hs := d.keyDown
	d.mu.Unlock()
	for _, h := range hs {
		h.fn(k)
	}
}

// EmitKeyUp delivers a key release.
func (d *Dispatcher) EmitKeyUp(k RawKey) {
	d.mu.Lock()
	hs := d.keyUp
	d.mu.Unlock()
	for _, h := range hs {
		h.fn(k)
	}
}

// EmitChars delivers typed text. Empty strings are ignored.
func (d *Dispatcher) EmitChars(s string) {
	if s == "" {
		return
	}
	d.mu.Lock()
	hs := d.chars
	d.mu.Unlock()
	for _, h := range hs {
		h.fn(s)
	}
}

// EmitPointerDown delivers the start of a contact if it lies on the surface.
func (d *Dispatcher) EmitPointerDown(p RawPointer) {
	if !p.Bounds.Contains(p.ClientX, p.ClientY) {
		return
	}
	d.mu.Lock()
	hs := d.pointerDown
	d.mu.Unlock()
	for _, h := range hs {
		h.fn(p)
	}
}

// EmitPointerMove delivers a move if the pointer is captured or on the surface.
func (d *Dispatcher) EmitPointerMove(p RawPointer) {
	d.mu.Lock()
	deliver := d.captured[p.PointerID] || p.Bounds.Contains(p.ClientX, p.ClientY)
	hs := d.pointerMove
	d.mu.Unlock()
	if !deliver {
		return
	}
	for _, h := range hs {
		h.fn(p)
	}
}

// EmitPointerUp delivers the end of a contact if the pointer is captured or
// on the surface, then releases any capture.
func (d *Dispatcher) EmitPointerUp(p RawPointer) {
	d.mu.Lock()
	deliver := d.captured[p.PointerID] || p.Bounds.Contains(p.ClientX, p.ClientY)
	delete(d.captured, p.PointerID)
	hs := d.pointerUp
	d.mu.Unlock()
	if !deliver {
		return
	}
	for _, h := range hs {
		h.fn(p)
	}
}

// Len reports the number of registered callbacks across all event types.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.keyDown) + len(d.keyUp) + len(d.pointerDown) +
		len(d.pointerMove) + len(d.pointerUp) + len(d.chars)
}

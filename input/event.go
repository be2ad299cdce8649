// Package input turns raw device events into typed key and pointer records.
//
// A host (an Ebitengine window, a terminal) feeds raw events into a
// [Dispatcher]. Adapters such as [Keyboard] and [Pointer] register callbacks
// on it, normalize what they receive and push the result into a
// queue.Queue, from which application code pulls with ReadKey and ReadPtr.
// Every registration returns a [Handle]; a session collects its handles in a
// [Listeners] value and releases them all when it ends.
package input

import "errors"

// ErrBadDimensions is returned when a logical surface size is not a finite
// positive number.
var ErrBadDimensions = errors.New("input: bad dimensions")

// KeyEvent is a normalized key transition. KeyCode uses the codes listed in
// keycodes.go.
type KeyEvent struct {
	KeyCode int
	Down    bool
}

// PointerEvent is a normalized pointer sample in logical coordinates.
type PointerEvent struct {
	X, Y float64
	// Down is the contact state after this sample. It stays true while a
	// contact is dragged outside the surface.
	Down bool
	// Click marks the sample that began the contact.
	Click bool
	// Release marks the sample that ended the contact.
	Release bool
	// In reports whether X and Y fall inside [0, width) × [0, height).
	In bool
}

// RawKey is a key event as reported by the host.
type RawKey struct {
	KeyCode int
	// Repeat is set for auto-repeat downs of a key that is already held.
	Repeat bool
	// PreventDefault suppresses the host's own handling of the key. May be nil.
	PreventDefault func()
}

// RawPointer is a pointer event in host (device) coordinates together with
// the rectangle the target surface currently occupies.
type RawPointer struct {
	PointerID        int
	ClientX, ClientY float64
	Bounds           Rect
}

// Rect is an axis-aligned rectangle in host coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the half-open rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return !(r.Width > 0 && r.Height > 0)
}

// EventType identifies a kind of raw event.
type EventType uint8

const (
	EventKeyDown     EventType = iota // a key was pressed or auto-repeated
	EventKeyUp                        // a key was released
	EventPointerDown                  // a contact began
	EventPointerMove                  // a pointer moved, with or without contact
	EventPointerUp                    // a contact ended
	EventChars                        // text was typed
)

func (e EventType) String() string {
	switch e {
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventPointerDown:
		return "pointerdown"
	case EventPointerMove:
		return "pointermove"
	case EventPointerUp:
		return "pointerup"
	case EventChars:
		return "chars"
	}
	return "unknown"
}

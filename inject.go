package starter

import "github.com/phanxgames/starter/input"

type syntheticKind uint8

const (
	synthPointer syntheticKind = iota
	synthKeyDown
	synthKeyUp
	synthRune
)

// syntheticEvent is a single injected input event. Pointer positions are
// screen coordinates, the same space real mouse input arrives in, so they
// go through the same surface mapping.
type syntheticEvent struct {
	kind             syntheticKind
	screenX, screenY float64
	pressed          bool
	code             int
	r                rune
}

func (h *Host) inject(evts ...syntheticEvent) {
	h.mu.Lock()
	h.injectQueue = append(h.injectQueue, evts...)
	h.mu.Unlock()
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next frame instead of real input.
func (h *Host) InjectPress(x, y float64) {
	h.inject(syntheticEvent{kind: synthPointer, screenX: x, screenY: y, pressed: true})
}

// InjectMove queues a pointer move at the given screen coordinates with the
// button held down. Use this between InjectPress and InjectRelease to
// simulate a drag.
func (h *Host) InjectMove(x, y float64) {
	h.inject(syntheticEvent{kind: synthPointer, screenX: x, screenY: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (h *Host) InjectRelease(x, y float64) {
	h.inject(syntheticEvent{kind: synthPointer, screenX: x, screenY: y})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (h *Host) InjectClick(x, y float64) {
	h.InjectPress(x, y)
	h.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (h *Host) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	h.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		h.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	h.InjectRelease(toX, toY)
}

// InjectKeyDown queues a key press.
func (h *Host) InjectKeyDown(code int) {
	h.inject(syntheticEvent{kind: synthKeyDown, code: code})
}

// InjectKeyUp queues a key release.
func (h *Host) InjectKeyUp(code int) {
	h.inject(syntheticEvent{kind: synthKeyUp, code: code})
}

// InjectKey queues a press and release of code. Consumes two frames.
func (h *Host) InjectKey(code int) {
	h.InjectKeyDown(code)
	h.InjectKeyUp(code)
}

// InjectText queues s as typed text, one frame per rune. Each frame
// delivers the rune's key down, the character and the key up.
func (h *Host) InjectText(s string) {
	evts := make([]syntheticEvent, 0, len(s))
	for _, r := range s {
		evts = append(evts, syntheticEvent{kind: synthRune, r: r})
	}
	h.inject(evts...)
}

// pendingInjections returns the number of queued synthetic events.
func (h *Host) pendingInjections() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it to
// the dispatcher. Returns true if an event was consumed (real input should
// be skipped).
func (h *Host) processInjectedInput() bool {
	h.mu.Lock()
	if len(h.injectQueue) == 0 {
		h.mu.Unlock()
		return false
	}
	evt := h.injectQueue[0]
	copy(h.injectQueue, h.injectQueue[1:])
	h.injectQueue = h.injectQueue[:len(h.injectQueue)-1]
	h.mu.Unlock()

	switch evt.kind {
	case synthPointer:
		h.processPointer(0, evt.screenX, evt.screenY, evt.pressed)
	case synthKeyDown:
		h.keyDown(evt.code, false)
	case synthKeyUp:
		h.disp.EmitKeyUp(input.RawKey{KeyCode: evt.code})
	case synthRune:
		code, ok := input.KeyCodeForRune(evt.r)
		if ok {
			h.keyDown(code, false)
		}
		h.disp.EmitChars(string(evt.r))
		if ok {
			h.disp.EmitKeyUp(input.RawKey{KeyCode: code})
		}
	}
	return true
}

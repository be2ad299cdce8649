package input

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/phanxgames/starter/queue"
)

// Pointer turns raw pointer events into PointerEvents in a logical
// coordinate space of width × height units.
//
// Device coordinates are scaled linearly from the surface rectangle to the
// logical box, sampling at the center of each device pixel. The adapter
// captures the pointer when a contact begins, so a drag that leaves the
// surface keeps reporting samples with In set to false.
type Pointer struct {
	q    *queue.Queue[PointerEvent]
	src  PointerSource
	w, h float64

	mu   sync.Mutex
	down bool
}

// NewPointer listens for pointer events on src. It fails with
// ErrBadDimensions unless w and h are finite and positive.
func NewPointer(src PointerSource, ls *Listeners, w, h float64) (*Pointer, error) {
	if !validDimension(w) || !validDimension(h) {
		return nil, fmt.Errorf("%w: pointer surface %vx%v", ErrBadDimensions, w, h)
	}
	p := &Pointer{q: queue.New[PointerEvent](), src: src, w: w, h: h}
	ls.Add(src.OnPointerDown(p.pointerDown))
	ls.Add(src.OnPointerMove(p.pointerMove))
	ls.Add(src.OnPointerUp(p.pointerUp))
	ls.Defer(p.q.Close)
	return p, nil
}

func validDimension(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func (p *Pointer) pointerDown(raw RawPointer) {
	p.src.CapturePointer(raw.PointerID)
	p.enqueue(raw, true, false)
}

func (p *Pointer) pointerMove(raw RawPointer) { p.enqueue(raw, false, false) }

func (p *Pointer) pointerUp(raw RawPointer) { p.enqueue(raw, false, true) }

func (p *Pointer) enqueue(raw RawPointer, click, release bool) {
	x := mapAxis(raw.ClientX, raw.Bounds.X, raw.Bounds.Width, p.w)
	y := mapAxis(raw.ClientY, raw.Bounds.Y, raw.Bounds.Height, p.h)

	p.mu.Lock()
	switch {
	case click:
		p.down = true
	case release:
		p.down = false
	}
	e := PointerEvent{
		X: x, Y: y,
		Down:    p.down,
		Click:   click,
		Release: release,
		In:      0 <= x && x < p.w && 0 <= y && y < p.h,
	}
	// enqueue under the lock so records keep the order of their state changes
	p.q.Enqueue(e)
	p.mu.Unlock()
}

// mapAxis maps a device coordinate to logical units. A degenerate surface
// maps everything to -1, which is never inside.
func mapAxis(client, origin, extent, logical float64) float64 {
	if !(extent > 0) {
		return -1
	}
	return (client - origin + 0.5) * logical / extent
}

// ReadPtr returns the next pointer event, blocking until one arrives, ctx
// ends, or the session closes the queue (queue.ErrClosed).
func (p *Pointer) ReadPtr(ctx context.Context) (PointerEvent, error) {
	return p.q.Dequeue(ctx)
}

// Size returns the logical width and height.
func (p *Pointer) Size() (w, h float64) { return p.w, p.h }

// Queue exposes the underlying queue for non-blocking drains.
func (p *Pointer) Queue() *queue.Queue[PointerEvent] { return p.q }

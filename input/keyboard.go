package input

import (
	"context"

	"github.com/phanxgames/starter/queue"
)

// Keyboard turns raw key events into KeyEvents.
//
// Auto-repeated presses are dropped, so a held key yields one down. Every
// release is delivered, including a release with no matching press.
type Keyboard struct {
	q           *queue.Queue[KeyEvent]
	passThrough int
}

// KeyboardOption configures a Keyboard.
type KeyboardOption func(*Keyboard)

// WithPassThrough sets the one key code whose default host handling is left
// alone. The default is KeyF5.
func WithPassThrough(code int) KeyboardOption {
	return func(k *Keyboard) { k.passThrough = code }
}

// NewKeyboard listens for key events on src. The registrations and the
// queue's Close are recorded in ls.
func NewKeyboard(src KeySource, ls *Listeners, opts ...KeyboardOption) *Keyboard {
	k := &Keyboard{q: queue.New[KeyEvent](), passThrough: KeyF5}
	for _, opt := range opts {
		opt(k)
	}
	ls.Add(src.OnKeyDown(k.keyDown))
	ls.Add(src.OnKeyUp(k.keyUp))
	ls.Defer(k.q.Close)
	return k
}

func (k *Keyboard) keyDown(raw RawKey) {
	if raw.KeyCode != k.passThrough && raw.PreventDefault != nil {
		raw.PreventDefault()
	}
	if raw.Repeat {
		return
	}
	k.q.Enqueue(KeyEvent{KeyCode: raw.KeyCode, Down: true})
}

func (k *Keyboard) keyUp(raw RawKey) {
	k.q.Enqueue(KeyEvent{KeyCode: raw.KeyCode, Down: false})
}

// ReadKey returns the next key event, blocking until one arrives, ctx ends,
// or the session closes the queue (queue.ErrClosed).
func (k *Keyboard) ReadKey(ctx context.Context) (KeyEvent, error) {
	return k.q.Dequeue(ctx)
}

// Queue exposes the underlying queue for non-blocking drains.
func (k *Keyboard) Queue() *queue.Queue[KeyEvent] { return k.q }

package input

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/phanxgames/starter/queue"
)

func drainKeys(k *Keyboard) []KeyEvent {
	var out []KeyEvent
	for {
		e, ok := k.Queue().TryDequeue()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

func TestKeyboardRepeatSuppression(t *testing.T) {
	d := NewDispatcher()
	var ls Listeners
	k := NewKeyboard(d, &ls)

	d.EmitKeyDown(RawKey{KeyCode: KeyA})
	d.EmitKeyDown(RawKey{KeyCode: KeyA, Repeat: true})
	d.EmitKeyDown(RawKey{KeyCode: KeyA, Repeat: true})
	d.EmitKeyUp(RawKey{KeyCode: KeyA})

	got := drainKeys(k)
	want := []KeyEvent{{KeyA, true}, {KeyA, false}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestKeyboardUnmatchedUp(t *testing.T) {
	d := NewDispatcher()
	k := NewKeyboard(d, nil)

	d.EmitKeyUp(RawKey{KeyCode: KeyEscape})
	got := drainKeys(k)
	if len(got) != 1 || got[0] != (KeyEvent{KeyCode: KeyEscape, Down: false}) {
		t.Errorf("got %v, want one up for escape", got)
	}
}

func TestKeyboardPreventDefault(t *testing.T) {
	tests := []struct {
		name        string
		opts        []KeyboardOption
		code        int
		repeat      bool
		wantPrevent bool
	}{
		{"ordinary key", nil, KeyA, false, true},
		{"repeat still prevented", nil, KeyA, true, true},
		{"f5 passes through", nil, KeyF5, false, false},
		{"custom pass-through", []KeyboardOption{WithPassThrough(KeyF12)}, KeyF12, false, false},
		{"f5 prevented with custom pass-through", []KeyboardOption{WithPassThrough(KeyF12)}, KeyF5, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher()
			NewKeyboard(d, nil, tt.opts...)
			var prevented bool
			d.EmitKeyDown(RawKey{KeyCode: tt.code, Repeat: tt.repeat, PreventDefault: func() { prevented = true }})
			if prevented != tt.wantPrevent {
				t.Errorf("prevented = %v, want %v", prevented, tt.wantPrevent)
			}
		})
	}
}

func TestKeyboardReadKeyAfterRemoveAll(t *testing.T) {
	d := NewDispatcher()
	var ls Listeners
	k := NewKeyboard(d, &ls)

	done := make(chan error, 1)
	go func() {
		_, err := k.ReadKey(context.Background())
		done <- err
	}()
	deadline := time.Now().Add(time.Second)
	for k.Queue().Waiting() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("reader never blocked")
		}
		time.Sleep(time.Millisecond)
	}

	ls.RemoveAll()
	select {
	case err := <-done:
		if !errors.Is(err, queue.ErrClosed) {
			t.Errorf("ReadKey err = %v, want queue.ErrClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("ReadKey still blocked after RemoveAll")
	}
	if d.Len() != 0 {
		t.Errorf("dispatcher still has %d callbacks", d.Len())
	}
}

func TestNewPointerBadDimensions(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
	}{
		{"zero width", 0, 10},
		{"negative height", 10, -1},
		{"nan", math.NaN(), 10},
		{"inf", 10, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPointer(NewDispatcher(), nil, tt.w, tt.h)
			if !errors.Is(err, ErrBadDimensions) {
				t.Errorf("err = %v, want ErrBadDimensions", err)
			}
		})
	}
}

// A surface drawn 1:1 at the origin: device pixel i maps to logical i+0.5,
// so client coordinate c-0.5 lands exactly on logical c.
func TestPointerDragOutsideAndRelease(t *testing.T) {
	d := NewDispatcher()
	p, err := NewPointer(d, nil, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	bounds := Rect{Width: 10, Height: 10}

	d.EmitPointerDown(RawPointer{ClientX: 4.5, ClientY: 4.5, Bounds: bounds})
	if !d.Captured(0) {
		t.Fatal("pointer down should capture the pointer")
	}
	d.EmitPointerMove(RawPointer{ClientX: -3.5, ClientY: 4.5, Bounds: bounds})
	d.EmitPointerUp(RawPointer{ClientX: -3.5, ClientY: 4.5, Bounds: bounds})

	want := []PointerEvent{
		{X: 5, Y: 5, Down: true, Click: true, In: true},
		{X: -3, Y: 5, Down: true, In: false},
		{X: -3, Y: 5, Down: false, Release: true, In: false},
	}
	ctx := context.Background()
	for i, w := range want {
		got, err := p.ReadPtr(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Errorf("sample %d = %+v, want %+v", i, got, w)
		}
	}
	if d.Captured(0) {
		t.Error("capture should end with the contact")
	}
	if n := p.Queue().Len(); n != 0 {
		t.Errorf("%d extra samples", n)
	}
}

func TestPointerScaling(t *testing.T) {
	d := NewDispatcher()
	p, err := NewPointer(d, nil, 40, 25)
	if err != nil {
		t.Fatal(err)
	}
	// surface shown at 4x, offset by (100, 50)
	bounds := Rect{X: 100, Y: 50, Width: 160, Height: 100}

	tests := []struct {
		name         string
		cx, cy       float64
		wantX, wantY float64
		wantIn       bool
	}{
		{"origin pixel", 100, 50, 0.125, 0.125, true},
		{"middle", 179.5, 99.5, 20, 12.5, true},
		{"last pixel", 259, 149, 39.875, 24.875, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d.EmitPointerMove(RawPointer{ClientX: tt.cx, ClientY: tt.cy, Bounds: bounds})
			got, ok := p.Queue().TryDequeue()
			if !ok {
				t.Fatal("no sample")
			}
			if got.X != tt.wantX || got.Y != tt.wantY || got.In != tt.wantIn {
				t.Errorf("got (%v, %v, in=%v), want (%v, %v, in=%v)",
					got.X, got.Y, got.In, tt.wantX, tt.wantY, tt.wantIn)
			}
			if got.Down || got.Click || got.Release {
				t.Errorf("hover sample has contact flags: %+v", got)
			}
		})
	}
}

func TestPointerDownPersistsAcrossMoves(t *testing.T) {
	d := NewDispatcher()
	p, _ := NewPointer(d, nil, 10, 10)
	b := Rect{Width: 10, Height: 10}

	d.EmitPointerDown(RawPointer{ClientX: 1, ClientY: 1, Bounds: b})
	for i := 0; i < 3; i++ {
		d.EmitPointerMove(RawPointer{ClientX: float64(2 + i), ClientY: 1, Bounds: b})
	}
	d.EmitPointerUp(RawPointer{ClientX: 5, ClientY: 1, Bounds: b})
	d.EmitPointerMove(RawPointer{ClientX: 6, ClientY: 1, Bounds: b})

	var downs []bool
	for {
		e, ok := p.Queue().TryDequeue()
		if !ok {
			break
		}
		downs = append(downs, e.Down)
	}
	want := []bool{true, true, true, true, false, false}
	if len(downs) != len(want) {
		t.Fatalf("down states %v, want %v", downs, want)
	}
	for i := range want {
		if downs[i] != want[i] {
			t.Errorf("sample %d down = %v, want %v", i, downs[i], want[i])
		}
	}
}

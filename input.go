package starter

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/starter/input"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

type pointerState struct {
	down  bool
	seen  bool
	lastX float64
	lastY float64
}

// ebitenKeyCodes maps physical keys to browser-style key codes. Keys
// without a code are not reported.
var ebitenKeyCodes = map[ebiten.Key]int{
	ebiten.KeyBackspace:    input.KeyBackspace,
	ebiten.KeyTab:          input.KeyTab,
	ebiten.KeyEnter:        input.KeyEnter,
	ebiten.KeyNumpadEnter:  input.KeyEnter,
	ebiten.KeyShiftLeft:    input.KeyShift,
	ebiten.KeyShiftRight:   input.KeyShift,
	ebiten.KeyControlLeft:  input.KeyControl,
	ebiten.KeyControlRight: input.KeyControl,
	ebiten.KeyAltLeft:      input.KeyAlt,
	ebiten.KeyAltRight:     input.KeyAlt,
	ebiten.KeyCapsLock:     input.KeyCapsLock,
	ebiten.KeyEscape:       input.KeyEscape,
	ebiten.KeySpace:        input.KeySpace,
	ebiten.KeyPageUp:       input.KeyPageUp,
	ebiten.KeyPageDown:     input.KeyPageDown,
	ebiten.KeyEnd:          input.KeyEnd,
	ebiten.KeyHome:         input.KeyHome,
	ebiten.KeyArrowLeft:    input.KeyLeft,
	ebiten.KeyArrowUp:      input.KeyUp,
	ebiten.KeyArrowRight:   input.KeyRight,
	ebiten.KeyArrowDown:    input.KeyDown,
	ebiten.KeyInsert:       input.KeyInsert,
	ebiten.KeyDelete:       input.KeyDelete,
	ebiten.KeySemicolon:    input.KeySemicolon,
	ebiten.KeyEqual:        input.KeyEqual,
	ebiten.KeyComma:        input.KeyComma,
	ebiten.KeyMinus:        input.KeyMinus,
	ebiten.KeyPeriod:       input.KeyPeriod,
	ebiten.KeySlash:        input.KeySlash,
	ebiten.KeyBackquote:    input.KeyBackquote,
	ebiten.KeyBracketLeft:  input.KeyBracketLeft,
	ebiten.KeyBackslash:    input.KeyBackslash,
	ebiten.KeyBracketRight: input.KeyBracketRight,
	ebiten.KeyQuote:        input.KeyQuote,
}

func init() {
	digits := []ebiten.Key{
		ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
		ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
	}
	for i, k := range digits {
		ebitenKeyCodes[k] = input.Key0 + i
	}
	letters := []ebiten.Key{
		ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF, ebiten.KeyG, ebiten.KeyH, ebiten.KeyI,
		ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL, ebiten.KeyM, ebiten.KeyN, ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR,
		ebiten.KeyS, ebiten.KeyT, ebiten.KeyU, ebiten.KeyV, ebiten.KeyW, ebiten.KeyX, ebiten.KeyY, ebiten.KeyZ,
	}
	for i, k := range letters {
		ebitenKeyCodes[k] = input.KeyA + i
	}
	fkeys := []ebiten.Key{
		ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4, ebiten.KeyF5, ebiten.KeyF6,
		ebiten.KeyF7, ebiten.KeyF8, ebiten.KeyF9, ebiten.KeyF10, ebiten.KeyF11, ebiten.KeyF12,
	}
	for i, k := range fkeys {
		ebitenKeyCodes[k] = input.KeyF1 + i
	}
}

// isRepeatTick reports whether a key held for d ticks auto-repeats this
// tick. The first repeat comes after delay ticks, then every interval.
func isRepeatTick(d, delay, interval int) bool {
	if interval <= 0 || d <= delay {
		return false
	}
	return (d-delay)%interval == 0
}

// pollInput feeds one tick of real keyboard, text, mouse and touch input
// to the dispatcher.
func (h *Host) pollInput() {
	h.pollKeys()
	h.charBuf = ebiten.AppendInputChars(h.charBuf[:0])
	if len(h.charBuf) > 0 {
		h.disp.EmitChars(string(h.charBuf))
	}
	h.processMousePointer()
	h.processTouchPointers()
}

func (h *Host) pollKeys() {
	h.keyBuf = inpututil.AppendJustPressedKeys(h.keyBuf[:0])
	for _, k := range h.keyBuf {
		if code, ok := ebitenKeyCodes[k]; ok {
			h.keyDown(code, false)
		}
	}
	h.keyBuf = inpututil.AppendPressedKeys(h.keyBuf[:0])
	for _, k := range h.keyBuf {
		code, ok := ebitenKeyCodes[k]
		if ok && isRepeatTick(inpututil.KeyPressDuration(k), h.cfg.KeyRepeatDelay, h.cfg.KeyRepeatInterval) {
			h.keyDown(code, true)
		}
	}
	h.keyBuf = inpututil.AppendJustReleasedKeys(h.keyBuf[:0])
	for _, k := range h.keyBuf {
		if code, ok := ebitenKeyCodes[k]; ok {
			h.disp.EmitKeyUp(input.RawKey{KeyCode: code})
		}
	}
}

// keyDown emits a key down and runs the host's default action for the key
// unless a listener prevented it.
func (h *Host) keyDown(code int, repeat bool) {
	prevented := false
	h.disp.EmitKeyDown(input.RawKey{
		KeyCode:        code,
		Repeat:         repeat,
		PreventDefault: func() { prevented = true },
	})
	if prevented || repeat {
		return
	}
	if fn := h.defaultKeys[code]; fn != nil {
		h.log.Debug().Int("key", code).Str("name", input.KeyName(code)).Log("default key action")
		fn()
	}
}

// processMousePointer handles mouse input (pointer 0).
func (h *Host) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	h.processPointer(0, float64(mx), float64(my), pressed)
}

// processTouchPointers handles touch input (pointers 1-9).
func (h *Host) processTouchPointers() {
	h.touchIDs = ebiten.AppendTouchIDs(h.touchIDs[:0])

	var activeSlots [maxPointers]bool
	for _, tid := range h.touchIDs {
		slot := h.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		h.processPointer(slot, float64(tx), float64(ty), true)
	}

	for i := 1; i < maxPointers; i++ {
		if h.touchUsed[i] && !activeSlots[i] {
			ps := &h.pointers[i]
			if ps.down {
				h.processPointer(i, ps.lastX, ps.lastY, false)
			}
			h.touchUsed[i] = false
			h.touchMap[i] = 0
			*ps = pointerState{}
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (h *Host) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if h.touchUsed[i] && h.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !h.touchUsed[i] {
			h.touchUsed[i] = true
			h.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer turns one pointer's screen position and button state into
// down, move and up events. Moves are reported only when the position
// changes.
func (h *Host) processPointer(id int, x, y float64, pressed bool) {
	ps := &h.pointers[id]
	raw := input.RawPointer{PointerID: id, ClientX: x, ClientY: y, Bounds: h.surfaceRect()}
	moved := !ps.seen || x != ps.lastX || y != ps.lastY
	ps.seen = true
	ps.lastX, ps.lastY = x, y

	switch {
	case pressed && !ps.down:
		ps.down = true
		h.disp.EmitPointerDown(raw)
	case !pressed && ps.down:
		ps.down = false
		h.disp.EmitPointerUp(raw)
	case moved:
		h.disp.EmitPointerMove(raw)
	}
}

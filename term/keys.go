package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/starter/input"
)

var tcellKeyCodes = map[tcell.Key]int{
	tcell.KeyEnter:      input.KeyEnter,
	tcell.KeyBackspace:  input.KeyBackspace,
	tcell.KeyBackspace2: input.KeyBackspace,
	tcell.KeyTab:        input.KeyTab,
	tcell.KeyBacktab:    input.KeyTab,
	tcell.KeyEsc:        input.KeyEscape,
	tcell.KeyUp:         input.KeyUp,
	tcell.KeyDown:       input.KeyDown,
	tcell.KeyLeft:       input.KeyLeft,
	tcell.KeyRight:      input.KeyRight,
	tcell.KeyHome:       input.KeyHome,
	tcell.KeyEnd:        input.KeyEnd,
	tcell.KeyPgUp:       input.KeyPageUp,
	tcell.KeyPgDn:       input.KeyPageDown,
	tcell.KeyInsert:     input.KeyInsert,
	tcell.KeyDelete:     input.KeyDelete,
	tcell.KeyF1:         input.KeyF1,
	tcell.KeyF2:         input.KeyF2,
	tcell.KeyF3:         input.KeyF3,
	tcell.KeyF4:         input.KeyF4,
	tcell.KeyF5:         input.KeyF5,
	tcell.KeyF6:         input.KeyF6,
	tcell.KeyF7:         input.KeyF7,
	tcell.KeyF8:         input.KeyF8,
	tcell.KeyF9:         input.KeyF9,
	tcell.KeyF10:        input.KeyF10,
	tcell.KeyF11:        input.KeyF11,
	tcell.KeyF12:        input.KeyF12,
}

// keyCode returns the input key code for ev and the text it types, if any.
// ok is false for keys with no code; such keys may still type text.
func keyCode(ev *tcell.EventKey) (code int, text string, ok bool) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		code, ok = input.KeyCodeForRune(r)
		return code, string(r), ok
	}
	code, ok = tcellKeyCodes[ev.Key()]
	return code, "", ok
}

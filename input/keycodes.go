package input

// Key codes follow the DOM keyCode values of a US layout, so programs see
// the same numbers whichever host delivers the key.
const (
	KeyBackspace = 8
	KeyTab       = 9
	KeyEnter     = 13
	KeyShift     = 16
	KeyControl   = 17
	KeyAlt       = 18
	KeyCapsLock  = 20
	KeyEscape    = 27
	KeySpace     = 32
	KeyPageUp    = 33
	KeyPageDown  = 34
	KeyEnd       = 35
	KeyHome      = 36
	KeyLeft      = 37
	KeyUp        = 38
	KeyRight     = 39
	KeyDown      = 40
	KeyInsert    = 45
	KeyDelete    = 46

	Key0 = 48
	Key1 = 49
	Key2 = 50
	Key3 = 51
	Key4 = 52
	Key5 = 53
	Key6 = 54
	Key7 = 55
	Key8 = 56
	Key9 = 57

	KeyA = 65
	KeyB = 66
	KeyC = 67
	KeyD = 68
	KeyE = 69
	KeyF = 70
	KeyG = 71
	KeyH = 72
	KeyI = 73
	KeyJ = 74
	KeyK = 75
	KeyL = 76
	KeyM = 77
	KeyN = 78
	KeyO = 79
	KeyP = 80
	KeyQ = 81
	KeyR = 82
	KeyS = 83
	KeyT = 84
	KeyU = 85
	KeyV = 86
	KeyW = 87
	KeyX = 88
	KeyY = 89
	KeyZ = 90

	KeyF1  = 112
	KeyF2  = 113
	KeyF3  = 114
	KeyF4  = 115
	KeyF5  = 116
	KeyF6  = 117
	KeyF7  = 118
	KeyF8  = 119
	KeyF9  = 120
	KeyF10 = 121
	KeyF11 = 122
	KeyF12 = 123

	KeySemicolon    = 186
	KeyEqual        = 187
	KeyComma        = 188
	KeyMinus        = 189
	KeyPeriod       = 190
	KeySlash        = 191
	KeyBackquote    = 192
	KeyBracketLeft  = 219
	KeyBackslash    = 220
	KeyBracketRight = 221
	KeyQuote        = 222
)

// KeyCodeNames maps short key names to codes. Printable keys are named by
// the character they produce unshifted.
var KeyCodeNames = map[string]int{
	"backspace": KeyBackspace, "tab": KeyTab, "enter": KeyEnter,
	"shift": KeyShift, "control": KeyControl, "alt": KeyAlt,
	"capsLock": KeyCapsLock, "escape": KeyEscape, " ": KeySpace,
	"pageUp": KeyPageUp, "pageDown": KeyPageDown, "end": KeyEnd, "home": KeyHome,
	"left": KeyLeft, "up": KeyUp, "right": KeyRight, "down": KeyDown,
	"insert": KeyInsert, "delete": KeyDelete,

	"0": Key0, "1": Key1, "2": Key2, "3": Key3, "4": Key4,
	"5": Key5, "6": Key6, "7": Key7, "8": Key8, "9": Key9,

	"a": KeyA, "b": KeyB, "c": KeyC, "d": KeyD, "e": KeyE, "f": KeyF,
	"g": KeyG, "h": KeyH, "i": KeyI, "j": KeyJ, "k": KeyK, "l": KeyL,
	"m": KeyM, "n": KeyN, "o": KeyO, "p": KeyP, "q": KeyQ, "r": KeyR,
	"s": KeyS, "t": KeyT, "u": KeyU, "v": KeyV, "w": KeyW, "x": KeyX,
	"y": KeyY, "z": KeyZ,

	"f1": KeyF1, "f2": KeyF2, "f3": KeyF3, "f4": KeyF4, "f5": KeyF5, "f6": KeyF6,
	"f7": KeyF7, "f8": KeyF8, "f9": KeyF9, "f10": KeyF10, "f11": KeyF11, "f12": KeyF12,

	";": KeySemicolon, "=": KeyEqual, ",": KeyComma, "-": KeyMinus,
	".": KeyPeriod, "/": KeySlash, "`": KeyBackquote, "[": KeyBracketLeft,
	"\\": KeyBackslash, "]": KeyBracketRight, "'": KeyQuote,
}

var keyNames = func() map[int]string {
	m := make(map[int]string, len(KeyCodeNames))
	for name, code := range KeyCodeNames {
		m[code] = name
	}
	return m
}()

// KeyName returns the name of code from KeyCodeNames, or "" if it has none.
func KeyName(code int) string {
	return keyNames[code]
}

// KeyCodeForRune returns the code of the key that types r on a US layout,
// ignoring shift. ok is false for runes with no such key.
func KeyCodeForRune(r rune) (code int, ok bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + int(r-'a'), true
	case r >= 'A' && r <= 'Z':
		return KeyA + int(r-'A'), true
	}
	if c, ok := KeyCodeNames[string(r)]; ok {
		return c, true
	}
	if c, ok := shiftedRunes[r]; ok {
		return c, true
	}
	return 0, false
}

var shiftedRunes = map[rune]int{
	')': Key0, '!': Key1, '@': Key2, '#': Key3, '$': Key4,
	'%': Key5, '^': Key6, '&': Key7, '*': Key8, '(': Key9,
	':': KeySemicolon, '+': KeyEqual, '<': KeyComma, '_': KeyMinus,
	'>': KeyPeriod, '?': KeySlash, '~': KeyBackquote, '{': KeyBracketLeft,
	'|': KeyBackslash, '}': KeyBracketRight, '"': KeyQuote,
}

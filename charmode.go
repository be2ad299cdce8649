package starter

import (
	"context"
	"fmt"
	"image/color"
	"sync"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/starter/input"
)

// CharPointer is a pointer sample in cell coordinates. Col and Row are
// truncated toward zero and may lie outside the grid while dragging.
type CharPointer struct {
	Col, Row int
	Down     bool
	Click    bool
	Release  bool
	In       bool
}

type charCell struct {
	r     rune
	style Style
}

// CharMode is a fixed grid of styled character cells with key and pointer
// input.
type CharMode struct {
	session
	cols, rows int
	fg         color.NRGBA
	keys       *input.Keyboard
	ptr        *input.Pointer

	mu    sync.Mutex
	cells []charCell
}

// CharMode ends the current mode and shows a grid of cols × rows blank
// cells.
func (h *Host) CharMode(cols, rows int) (*CharMode, error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("%w: char mode %dx%d", ErrBadDimensions, cols, rows)
	}
	m := newCharGrid(cols, rows, h.textColor)
	var err error
	m.session = h.beginSession("char", m, func(ls *input.Listeners) {
		m.keys = input.NewKeyboard(h.disp, ls)
		m.ptr, err = input.NewPointer(h.disp, ls, float64(cols), float64(rows))
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// NewCharMode returns a grid fed by an external key and pointer source,
// such as a terminal. Its pointer surface is cols × rows logical units.
func NewCharMode(src interface {
	input.KeySource
	input.PointerSource
}, ls *input.Listeners, cols, rows int) (*CharMode, error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("%w: char mode %dx%d", ErrBadDimensions, cols, rows)
	}
	m := newCharGrid(cols, rows, color.NRGBA{A: 255})
	m.session = session{ls: ls}
	m.keys = input.NewKeyboard(src, ls)
	ptr, err := input.NewPointer(src, ls, float64(cols), float64(rows))
	if err != nil {
		return nil, err
	}
	m.ptr = ptr
	return m, nil
}

func newCharGrid(cols, rows int, fg color.NRGBA) *CharMode {
	m := &CharMode{cols: cols, rows: rows, fg: fg, cells: make([]charCell, cols*rows)}
	for i := range m.cells {
		m.cells[i].r = blankRune
	}
	return m
}

// Size returns the grid dimensions.
func (m *CharMode) Size() (cols, rows int) { return m.cols, m.rows }

// ReadKey returns the next key press or release.
func (m *CharMode) ReadKey(ctx context.Context) (input.KeyEvent, error) {
	return m.keys.ReadKey(ctx)
}

// ReadPtr returns the next pointer sample in cell coordinates.
func (m *CharMode) ReadPtr(ctx context.Context) (CharPointer, error) {
	e, err := m.ptr.ReadPtr(ctx)
	if err != nil {
		return CharPointer{}, err
	}
	return CharPointer{
		Col:     int(e.X),
		Row:     int(e.Y),
		Down:    e.Down,
		Click:   e.Click,
		Release: e.Release,
		In:      e.In,
	}, nil
}

// Keyboard returns the key adapter feeding ReadKey.
func (m *CharMode) Keyboard() *input.Keyboard { return m.keys }

// Pointer returns the pointer adapter feeding ReadPtr.
func (m *CharMode) Pointer() *input.Pointer { return m.ptr }

func (m *CharMode) index(col, row int) int {
	if col < 0 || col >= m.cols || row < 0 || row >= m.rows {
		return -1
	}
	return row*m.cols + col
}

// WriteChar puts r at (col, row). Runes that are not letters, numbers,
// symbols or punctuation are stored as a blank. Out-of-range cells are
// ignored.
func (m *CharMode) WriteChar(r rune, col, row int) {
	i := m.index(col, row)
	if i < 0 {
		return
	}
	if !printable(r) {
		r = blankRune
	}
	m.mu.Lock()
	m.cells[i].r = r
	m.mu.Unlock()
}

// WriteString writes the runes of s left to right starting at (col, row),
// clipped at the grid edge.
func (m *CharMode) WriteString(s string, col, row int) {
	for _, r := range s {
		m.WriteChar(r, col, row)
		col++
	}
}

// ReadChar returns the rune at (col, row). ok is false outside the grid.
func (m *CharMode) ReadChar(col, row int) (r rune, ok bool) {
	i := m.index(col, row)
	if i < 0 {
		return 0, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cells[i].r, true
}

// SetCharStyle applies opts to the style of (col, row), leaving the other
// fields as they were.
func (m *CharMode) SetCharStyle(col, row int, opts ...StyleOption) {
	i := m.index(col, row)
	if i < 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, opt := range opts {
		opt(&m.cells[i].style)
	}
}

// ResetCharStyle restores the default style of (col, row).
func (m *CharMode) ResetCharStyle(col, row int) {
	i := m.index(col, row)
	if i < 0 {
		return
	}
	m.mu.Lock()
	m.cells[i].style = Style{}
	m.mu.Unlock()
}

// GetCharStyle returns the style of (col, row). ok is false outside the grid.
func (m *CharMode) GetCharStyle(col, row int) (Style, bool) {
	i := m.index(col, row)
	if i < 0 {
		return Style{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cells[i].style, true
}

// Clear blanks every cell and resets its style.
func (m *CharMode) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.cells {
		m.cells[i] = charCell{r: blankRune}
	}
}

// Each calls fn for every cell in row-major order. The grid is locked for
// the duration, so fn must not call back into m.
func (m *CharMode) Each(fn func(col, row int, r rune, st Style)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.cells {
		fn(i%m.cols, i/m.cols, c.r, c.style)
	}
}

func printable(r rune) bool {
	return unicode.In(r, unicode.L, unicode.N, unicode.S, unicode.P)
}

func (m *CharMode) surfaceSize(int, int) (int, int) {
	return m.cols * cellW, m.rows * cellH
}

func (m *CharMode) draw(dst *ebiten.Image) {
	m.Each(func(col, row int, r rune, st Style) {
		drawCell(dst, r, col, row, st, m.fg)
	})
}

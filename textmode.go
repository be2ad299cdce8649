package starter

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"sync"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rivo/uniseg"

	"github.com/phanxgames/starter/input"
	"github.com/phanxgames/starter/queue"
)

// TextMode is a scrolling log of lines above a one-line input prompt.
//
// Typed text edits the input row. Enter submits it to ReadLine and clears
// it, Escape clears it, Backspace removes the last character.
type TextMode struct {
	session
	cols, rows int
	fg         color.NRGBA
	lines      *queue.Queue[string]

	mu    sync.Mutex
	rowsv []string
	input string
}

// TextMode ends the current mode and shows rows lines of cols characters
// above the input row. cols must be at least 2 and rows at least 1.
func (h *Host) TextMode(cols, rows int) (*TextMode, error) {
	if cols < 2 || rows < 1 {
		return nil, fmt.Errorf("%w: text mode %dx%d", ErrBadDimensions, cols, rows)
	}
	t := &TextMode{
		cols:  cols,
		rows:  rows,
		fg:    h.textColor,
		lines: queue.New[string](),
		rowsv: make([]string, rows),
	}
	t.session = h.beginSession("text", t, func(ls *input.Listeners) {
		ls.Add(h.disp.OnChars(t.typeChars))
		ls.Add(h.disp.OnKeyDown(t.keyDown))
		ls.Defer(t.lines.Close)
	})
	return t, nil
}

// Size returns the number of columns and log rows.
func (t *TextMode) Size() (cols, rows int) { return t.cols, t.rows }

// WriteLine appends s at the bottom, scrolling older lines up. Embedded
// newlines start new lines and long lines are broken every cols
// characters, never inside a grapheme cluster.
func (t *TextMode) WriteLine(s string) {
	chunks := breakText(s, t.cols)
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, c := range chunks {
		copy(t.rowsv, t.rowsv[1:])
		t.rowsv[len(t.rowsv)-1] = c
	}
}

// Printf formats and writes a line.
func (t *TextMode) Printf(format string, args ...any) {
	t.WriteLine(fmt.Sprintf(format, args...))
}

// ReadLine returns the next line submitted with Enter.
func (t *TextMode) ReadLine(ctx context.Context) (string, error) {
	return t.lines.Dequeue(ctx)
}

// Lines returns a copy of the visible log, oldest first.
func (t *TextMode) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.rowsv...)
}

// Input returns the text currently being edited.
func (t *TextMode) Input() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.input
}

func (t *TextMode) typeChars(s string) {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsPrint(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return
	}
	t.mu.Lock()
	t.input += b.String()
	t.mu.Unlock()
}

func (t *TextMode) keyDown(k input.RawKey) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch k.KeyCode {
	case input.KeyEnter:
		t.lines.Enqueue(t.input)
		t.input = ""
	case input.KeyEscape:
		t.input = ""
	case input.KeyBackspace:
		t.input = trimLastGrapheme(t.input)
	}
}

func (t *TextMode) surfaceSize(int, int) (int, int) {
	return (t.cols + 2) * cellW, (t.rows + 1) * cellH
}

func (t *TextMode) draw(dst *ebiten.Image) {
	t.mu.Lock()
	rows := append([]string(nil), t.rowsv...)
	in := lastGraphemes(t.input, t.cols-1)
	t.mu.Unlock()

	for i, line := range rows {
		drawString(dst, line, 0, float64(i*cellH), t.fg)
	}
	y := float64(t.rows * cellH)
	drawString(dst, ">", 0, y, t.fg)
	drawString(dst, in+"_", 2*cellW, y, t.fg)
}

// breakText splits s on newlines and breaks each line into chunks of at
// most n grapheme clusters. An empty line yields one empty chunk.
func breakText(s string, n int) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		var b strings.Builder
		count := 0
		g := uniseg.NewGraphemes(line)
		for g.Next() {
			if count == n {
				out = append(out, b.String())
				b.Reset()
				count = 0
			}
			b.WriteString(g.Str())
			count++
		}
		out = append(out, b.String())
	}
	return out
}

func trimLastGrapheme(s string) string {
	last := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		last, _ = g.Positions()
	}
	return s[:last]
}

// lastGraphemes returns the trailing n grapheme clusters of s.
func lastGraphemes(s string, n int) string {
	total := uniseg.GraphemeClusterCount(s)
	if total <= n {
		return s
	}
	skip := total - n
	g := uniseg.NewGraphemes(s)
	for i := 0; g.Next(); i++ {
		if i == skip {
			from, _ := g.Positions()
			return s[from:]
		}
	}
	return ""
}

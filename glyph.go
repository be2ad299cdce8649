package starter

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Character cell metrics shared by text and char modes.
const (
	cellW = 7
	cellH = 14
)

// blankRune fills cells that hold nothing printable, a no-break space.
const blankRune = '\u00a0'

var glyphFace = sync.OnceValue(func() *text.GoXFace {
	return text.NewGoXFace(basicfont.Face7x13)
})

// drawString draws s with its top-left corner at (x, y).
func drawString(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	if s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, glyphFace(), op)
}

// drawCell renders one styled character cell at column col and row row.
func drawCell(dst *ebiten.Image, r rune, col, row int, st Style, fg color.Color) {
	x, y := col*cellW, row*cellH
	if st.Background != nil {
		fillRect(dst, image.Rect(x, y, x+cellW, y+cellH), st.Background)
	}
	clr := fg
	if st.Color != nil {
		clr = st.Color
	}
	if r != blankRune && r != ' ' {
		op := &text.DrawOptions{}
		if st.Italic {
			op.GeoM.Translate(0, -cellH)
			op.GeoM.Skew(-0.2, 0)
			op.GeoM.Translate(0, cellH)
		}
		op.GeoM.Translate(float64(x), float64(y))
		op.ColorScale.ScaleWithColor(clr)
		s := string(r)
		text.Draw(dst, s, glyphFace(), op)
		if st.Bold {
			op.GeoM.Translate(1, 0)
			text.Draw(dst, s, glyphFace(), op)
		}
	}
	if st.Underline {
		fillRect(dst, image.Rect(x, y+cellH-2, x+cellW, y+cellH-1), clr)
	}
}

func fillRect(dst *ebiten.Image, r image.Rectangle, clr color.Color) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	dst.SubImage(r).(*ebiten.Image).Fill(clr)
}

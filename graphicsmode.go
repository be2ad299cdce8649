package starter

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/starter/input"
)

// GraphicsMode is a canvas that always fills the largest rectangle of a
// fixed aspect ratio inside the window. Its pixel size follows the window.
// It reads keys only.
type GraphicsMode struct {
	session
	aspect float64
	keys   *input.Keyboard

	mu     sync.Mutex
	w, h   int
	drawFn func(screen *ebiten.Image)
}

// GraphicsMode ends the current mode and shows a canvas with the given
// width / height ratio.
func (h *Host) GraphicsMode(aspect float64) (*GraphicsMode, error) {
	if !(aspect > 0) || math.IsInf(aspect, 1) {
		return nil, fmt.Errorf("%w: graphics aspect %v", ErrBadDimensions, aspect)
	}
	g := &GraphicsMode{aspect: aspect}
	ow, oh := h.outerSize()
	g.w, g.h = fitAspect(aspect, ow, oh)
	g.session = h.beginSession("graphics", g, func(ls *input.Listeners) {
		g.keys = input.NewKeyboard(h.disp, ls)
	})
	return g, nil
}

// ReadKey returns the next key press or release.
func (g *GraphicsMode) ReadKey(ctx context.Context) (input.KeyEvent, error) {
	return g.keys.ReadKey(ctx)
}

// Keyboard returns the key adapter feeding ReadKey.
func (g *GraphicsMode) Keyboard() *input.Keyboard { return g.keys }

// Width returns the current canvas width in pixels.
func (g *GraphicsMode) Width() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.w
}

// Height returns the current canvas height in pixels.
func (g *GraphicsMode) Height() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.h
}

// Aspect returns the width / height ratio.
func (g *GraphicsMode) Aspect() float64 { return g.aspect }

// Draw sets the function that paints each frame. It runs on the render
// goroutine with a cleared canvas of Width × Height pixels.
func (g *GraphicsMode) Draw(fn func(screen *ebiten.Image)) {
	g.mu.Lock()
	g.drawFn = fn
	g.mu.Unlock()
}

func (g *GraphicsMode) surfaceSize(outerW, outerH int) (int, int) {
	w, h := fitAspect(g.aspect, outerW, outerH)
	g.mu.Lock()
	g.w, g.h = w, h
	g.mu.Unlock()
	return w, h
}

func (g *GraphicsMode) draw(dst *ebiten.Image) {
	g.mu.Lock()
	fn := g.drawFn
	g.mu.Unlock()
	if fn != nil {
		fn(dst)
	}
}

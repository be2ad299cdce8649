package starter

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/phanxgames/starter/input"
)

// PixelPointer is a pointer sample in pixel coordinates, truncated toward
// zero.
type PixelPointer struct {
	X, Y    int
	Down    bool
	Click   bool
	Release bool
	In      bool
}

// PixelMode is a w × h buffer of straight-alpha pixels with key and
// pointer input. Writes replace pixels; nothing is blended.
type PixelMode struct {
	session
	w, h int
	keys *input.Keyboard
	ptr  *input.Pointer

	mu    sync.Mutex
	buf   *image.NRGBA
	dirty bool

	// owned by the draw goroutine
	gpu    *ebiten.Image
	upload *image.RGBA
}

// PixelMode ends the current mode and shows a transparent w × h pixel
// buffer.
func (h *Host) PixelMode(w, hgt int) (*PixelMode, error) {
	if w < 1 || hgt < 1 {
		return nil, fmt.Errorf("%w: pixel mode %dx%d", ErrBadDimensions, w, hgt)
	}
	m := &PixelMode{
		w:     w,
		h:     hgt,
		buf:   image.NewNRGBA(image.Rect(0, 0, w, hgt)),
		dirty: true,
	}
	var err error
	m.session = h.beginSession("pixel", m, func(ls *input.Listeners) {
		m.keys = input.NewKeyboard(h.disp, ls)
		m.ptr, err = input.NewPointer(h.disp, ls, float64(w), float64(hgt))
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Size returns the buffer dimensions.
func (m *PixelMode) Size() (w, h int) { return m.w, m.h }

// ReadKey returns the next key press or release.
func (m *PixelMode) ReadKey(ctx context.Context) (input.KeyEvent, error) {
	return m.keys.ReadKey(ctx)
}

// ReadPtr returns the next pointer sample in pixel coordinates.
func (m *PixelMode) ReadPtr(ctx context.Context) (PixelPointer, error) {
	e, err := m.ptr.ReadPtr(ctx)
	if err != nil {
		return PixelPointer{}, err
	}
	return PixelPointer{
		X:       int(e.X),
		Y:       int(e.Y),
		Down:    e.Down,
		Click:   e.Click,
		Release: e.Release,
		In:      e.In,
	}, nil
}

// Keyboard returns the key adapter feeding ReadKey.
func (m *PixelMode) Keyboard() *input.Keyboard { return m.keys }

// Pointer returns the pointer adapter feeding ReadPtr.
func (m *PixelMode) Pointer() *input.Pointer { return m.ptr }

// WritePixel sets the pixel at (x, y). Out-of-range writes are ignored.
func (m *PixelMode) WritePixel(p Pixel, x, y int) {
	if !image.Pt(x, y).In(m.buf.Rect) {
		return
	}
	m.mu.Lock()
	m.buf.SetNRGBA(x, y, p.nrgba())
	m.dirty = true
	m.mu.Unlock()
}

// ReadPixel returns the pixel at (x, y), or the zero Pixel outside the
// buffer.
func (m *PixelMode) ReadPixel(x, y int) Pixel {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.buf.NRGBAAt(x, y)
	return Pixel{c.R, c.G, c.B, c.A}
}

// WriteImage copies all of img with its top-left corner at (x, y).
func (m *PixelMode) WriteImage(img image.Image, x, y int) {
	m.WriteImageRect(img, x, y, img.Bounds())
}

// WriteImageRect copies the part of img inside src so that src.Min lands
// at (x, y). Pixels falling outside the buffer are dropped.
func (m *PixelMode) WriteImageRect(img image.Image, x, y int, src image.Rectangle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	xdraw.Copy(m.buf, image.Pt(x, y), img, src, xdraw.Src, nil)
	m.dirty = true
}

// ReadImage returns a copy of the pixels inside r. Parts of r outside the
// buffer read as transparent.
func (m *PixelMode) ReadImage(r image.Rectangle) *image.NRGBA {
	r = r.Canon()
	out := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	m.mu.Lock()
	defer m.mu.Unlock()
	xdraw.Copy(out, image.Point{}, m.buf, r, xdraw.Src, nil)
	return out
}

// Fill sets every pixel to p.
func (m *PixelMode) Fill(p Pixel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := p.nrgba()
	for i := 0; i < len(m.buf.Pix); i += 4 {
		m.buf.Pix[i], m.buf.Pix[i+1], m.buf.Pix[i+2], m.buf.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	m.dirty = true
}

func (m *PixelMode) surfaceSize(int, int) (int, int) { return m.w, m.h }

func (m *PixelMode) draw(dst *ebiten.Image) {
	if m.gpu == nil {
		m.gpu = ebiten.NewImage(m.w, m.h)
		m.upload = image.NewRGBA(m.buf.Rect)
	}
	m.mu.Lock()
	dirty := m.dirty
	if dirty {
		// ebiten expects premultiplied alpha
		xdraw.Copy(m.upload, image.Point{}, m.buf, m.buf.Rect, xdraw.Src, nil)
		m.dirty = false
	}
	m.mu.Unlock()
	if dirty {
		m.gpu.WritePixels(m.upload.Pix)
	}
	dst.DrawImage(m.gpu, nil)
}

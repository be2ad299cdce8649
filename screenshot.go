package starter

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"
)

// Screenshot queues a labeled capture of the active mode's surface at its
// own resolution. It is taken at the end of the next Draw and written to
// Config.ScreenshotDir with a timestamped filename. Safe to call from any
// goroutine.
func (h *Host) Screenshot(label string) {
	h.mu.Lock()
	h.shots = append(h.shots, label)
	h.mu.Unlock()
}

// flushScreenshots captures surface for every queued label. Called from
// Draw.
func (h *Host) flushScreenshots(surface *ebiten.Image) {
	h.mu.Lock()
	labels := h.shots
	h.shots = nil
	h.mu.Unlock()
	if len(labels) == 0 {
		return
	}

	b := surface.Bounds()
	premul := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	surface.ReadPixels(premul.Pix)
	img := image.NewNRGBA(premul.Rect)
	xdraw.Copy(img, image.Point{}, premul, premul.Rect, xdraw.Src, nil)

	stamp := time.Now().Format("20060102_150405")
	paths, err := saveScreenshots(h.cfg.ScreenshotDir, stamp, labels, img)
	for _, p := range paths {
		h.log.Info().Str("path", p).Log("screenshot saved")
	}
	if err != nil {
		h.log.Err().Err(err).Log("screenshot failed")
	}
}

// saveScreenshots writes img once per label under dir and returns the
// paths written. It stops at the first failure.
func saveScreenshots(dir, stamp string, labels []string, img image.Image) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("screenshot: mkdir %s: %w", dir, err)
	}
	paths := make([]string, 0, len(labels))
	for _, label := range labels {
		path := filepath.Join(dir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := writePNG(path, img); err != nil {
			return paths, fmt.Errorf("screenshot: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

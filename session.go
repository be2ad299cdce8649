package starter

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/starter/input"
)

// ErrBadDimensions is returned by mode constructors given a degenerate size.
var ErrBadDimensions = input.ErrBadDimensions

// surface is what the host draws for the active mode.
type surface interface {
	// surfaceSize returns the native pixel size of the mode's image for a
	// window of outerW × outerH.
	surfaceSize(outerW, outerH int) (w, h int)
	// draw renders the mode into dst, which is surfaceSize pixels and cleared.
	draw(dst *ebiten.Image)
}

// session ties a mode to the listeners it registered. Ending the session
// removes them and closes the mode's queues, so blocked reads return
// queue.ErrClosed.
type session struct {
	host *Host
	ls   *input.Listeners
}

// Ended reports whether the host has switched away from this mode.
func (s *session) Ended() bool { return s.ls.Released() }

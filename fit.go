package starter

import (
	"math"

	"github.com/phanxgames/starter/input"
)

// fitRect returns the largest rectangle with the surface's aspect ratio that
// fits inside the outer area, centered. The surface may be scaled up or
// down by any factor.
func fitRect(surfaceW, surfaceH, outerW, outerH float64) input.Rect {
	if !(surfaceW > 0 && surfaceH > 0 && outerW > 0 && outerH > 0) {
		return input.Rect{}
	}
	scale := math.Min(outerW/surfaceW, outerH/surfaceH)
	w, h := surfaceW*scale, surfaceH*scale
	return input.Rect{
		X:      (outerW - w) / 2,
		Y:      (outerH - h) / 2,
		Width:  w,
		Height: h,
	}
}

// fitAspect returns the pixel size of the largest canvas with the given
// aspect ratio (width / height) inside the outer area. Both sides are at
// least 1.
func fitAspect(aspect float64, outerW, outerH int) (w, h int) {
	if outerW < 1 || outerH < 1 || !(aspect > 0) {
		return 1, 1
	}
	fw, fh := float64(outerW), float64(outerH)
	if fw/fh < aspect {
		fh = fw / aspect
	} else {
		fw = fh * aspect
	}
	return max(1, int(fw)), max(1, int(fh))
}

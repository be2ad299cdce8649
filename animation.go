package starter

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenTarget is one field animated by a TweenGroup.
type TweenTarget struct {
	Field *float64
	To    float64
}

// TweenGroup animates float64 fields together from their current values.
// Drive it with Update, or with Advance from a frame clock loop.
//
// There is no global animation manager; callers step their own groups.
type TweenGroup struct {
	tweens []*gween.Tween
	fields []*float64
	Done   bool
}

// Tween creates a TweenGroup that moves each target's field to its To value
// over duration seconds using fn.
func Tween(duration float32, fn ease.TweenFunc, targets ...TweenTarget) *TweenGroup {
	g := &TweenGroup{
		tweens: make([]*gween.Tween, len(targets)),
		fields: make([]*float64, len(targets)),
		Done:   len(targets) == 0,
	}
	for i, t := range targets {
		g.tweens[i] = gween.New(float32(*t.Field), float32(t.To), duration, fn)
		g.fields[i] = t.Field
	}
	return g
}

// TweenXY creates a TweenGroup that animates a point to (toX, toY).
func TweenXY(x, y *float64, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return Tween(duration, fn, TweenTarget{x, toX}, TweenTarget{y, toY})
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i, tw := range g.tweens {
		val, finished := tw.Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Advance steps the group by ticks frames of length tick, the values a
// frame clock's Tick reports, and returns true while it is still running.
func (g *TweenGroup) Advance(ticks int, tick time.Duration) bool {
	if ticks > 0 {
		g.Update(float32((time.Duration(ticks) * tick).Seconds()))
	}
	return !g.Done
}

// Reset rewinds every tween to its start and writes the start values.
func (g *TweenGroup) Reset() {
	for i, tw := range g.tweens {
		tw.Reset()
		val, _ := tw.Set(0)
		*g.fields[i] = float64(val)
	}
	g.Done = len(g.tweens) == 0
}

// Package clock paces animation loops in fixed-duration ticks.
//
// A Clock is owned by a single loop. Each call to Tick reports how many ticks
// have passed since the previous boundary and blocks until the next one, so
// a loop that falls behind learns by how much instead of silently drifting:
//
//	c, _ := clock.New(time.Second / 30)
//	for {
//		n, err := c.Tick(ctx)
//		if err != nil {
//			return err
//		}
//		world.Step(n)
//	}
package clock

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrBadDuration is returned when a clock is constructed with a tick
// duration or rate that is not positive.
var ErrBadDuration = errors.New("clock: tick duration must be positive")

// Clock converts wall-clock time into a count of fixed-duration ticks.
// It is not safe for concurrent use.
type Clock struct {
	tick time.Duration
	last time.Time
	src  TimeSource
}

// Option configures a Clock.
type Option func(*Clock)

// WithTimeSource replaces the system clock, typically with a *Manual.
func WithTimeSource(src TimeSource) Option {
	return func(c *Clock) {
		if src != nil {
			c.src = src
		}
	}
}

// New returns a clock whose first boundary is the moment of construction.
func New(tick time.Duration, opts ...Option) (*Clock, error) {
	if tick <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrBadDuration, tick)
	}
	c := &Clock{tick: tick, src: SystemTime{}}
	for _, opt := range opts {
		opt(c)
	}
	c.last = c.src.Now()
	return c, nil
}

// NewRate returns a clock running at hz ticks per second.
func NewRate(hz float64, opts ...Option) (*Clock, error) {
	if !(hz > 0) || math.IsInf(hz, 1) {
		return nil, fmt.Errorf("%w: rate %v", ErrBadDuration, hz)
	}
	return New(time.Duration(float64(time.Second)/hz), opts...)
}

// TickDuration reports the fixed length of one tick.
func (c *Clock) TickDuration() time.Duration { return c.tick }

// Last reports the most recently completed tick boundary.
func (c *Clock) Last() time.Time { return c.last }

// Tick blocks until the next tick boundary and returns the number of ticks
// that boundary is past the previous one. It always returns at least 1, even
// when called immediately after construction; a caller that fell behind gets
// more than 1 and should advance its simulation by that many ticks.
//
// The boundary advances by exactly ticks*TickDuration, never by the raw
// elapsed time. If ctx ends while waiting, Tick returns ctx.Err() and the
// boundary is left unchanged.
func (c *Clock) Tick(ctx context.Context) (int, error) {
	now := c.src.Now()
	elapsed := now.Sub(c.last)

	ticks := 1
	if elapsed > 0 {
		ticks = int(elapsed/c.tick) + 1
	}
	next := c.last.Add(time.Duration(ticks) * c.tick)

	if err := c.src.Sleep(ctx, next.Sub(now)); err != nil {
		return 0, err
	}
	c.last = next
	return ticks, nil
}

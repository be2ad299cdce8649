package clock

import (
	"context"
	"runtime"
	"sync"
	"time"
)

// TimeSource supplies the current time and a way to wait.
type TimeSource interface {
	Now() time.Time
	// Sleep waits for d, returning early with ctx.Err() if ctx ends. A
	// non-positive d still yields before returning.
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemTime is the real monotonic clock.
type SystemTime struct{}

// Now returns time.Now.
func (SystemTime) Now() time.Time { return time.Now() }

// Sleep waits on a timer.
func (SystemTime) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		runtime.Gosched()
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Manual is a TimeSource for tests. Time only moves when Advance is called
// or when Sleep is called, which advances it by the requested duration.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

// NewManual returns a manual source starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves time forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Sleep records d and advances time by it when positive.
func (m *Manual) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slept = append(m.slept, d)
	if d > 0 {
		m.now = m.now.Add(d)
	}
	return nil
}

// Slept returns every duration passed to Sleep, in call order.
func (m *Manual) Slept() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.slept...)
}

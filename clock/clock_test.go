package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 14, 9, 26, 0, 0, time.UTC)

func newManualClock(t *testing.T, tick time.Duration) (*Clock, *Manual) {
	t.Helper()
	src := NewManual(epoch)
	c, err := New(tick, WithTimeSource(src))
	require.NoError(t, err)
	return c, src
}

func TestNew_RejectsNonPositiveDuration(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Millisecond} {
		_, err := New(d)
		assert.ErrorIs(t, err, ErrBadDuration, "duration %v", d)
	}
}

func TestNewRate(t *testing.T) {
	c, err := NewRate(50)
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, c.TickDuration())

	for _, hz := range []float64{0, -1} {
		_, err := NewRate(hz)
		assert.ErrorIs(t, err, ErrBadDuration)
	}
}

func TestTick_ImmediateFirstTick(t *testing.T) {
	c, src := newManualClock(t, 10*time.Millisecond)

	n, err := c.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, epoch.Add(10*time.Millisecond), c.Last())
	assert.Equal(t, []time.Duration{10 * time.Millisecond}, src.Slept())
}

func TestTick_CatchUp(t *testing.T) {
	c, src := newManualClock(t, 10*time.Millisecond)
	src.Advance(35 * time.Millisecond)

	n, err := c.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, epoch.Add(40*time.Millisecond), c.Last(),
		"boundary advances by whole ticks, not by the raw elapsed time")
	assert.Equal(t, []time.Duration{5 * time.Millisecond}, src.Slept())
}

func TestTick_Table(t *testing.T) {
	tests := []struct {
		name      string
		elapsed   time.Duration
		wantTicks int
		wantSleep time.Duration
	}{
		{"zero", 0, 1, 10 * time.Millisecond},
		{"mid tick", 4 * time.Millisecond, 1, 6 * time.Millisecond},
		{"exact boundary", 10 * time.Millisecond, 2, 10 * time.Millisecond},
		{"far behind", 95 * time.Millisecond, 10, 5 * time.Millisecond},
		{"before last boundary", -3 * time.Millisecond, 1, 13 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, src := newManualClock(t, 10*time.Millisecond)
			src.Advance(tt.elapsed)

			n, err := c.Tick(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantTicks, n)
			assert.Equal(t, []time.Duration{tt.wantSleep}, src.Slept())
			assert.Equal(t, epoch.Add(time.Duration(tt.wantTicks)*10*time.Millisecond), c.Last())
		})
	}
}

func TestTick_SteadyLoop(t *testing.T) {
	c, src := newManualClock(t, 10*time.Millisecond)
	ctx := context.Background()

	total := 0
	for i := 0; i < 5; i++ {
		n, err := c.Tick(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		total += n
	}
	src.Advance(25 * time.Millisecond)
	n, err := c.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	total += n

	assert.Equal(t, epoch.Add(time.Duration(total)*10*time.Millisecond), c.Last())
}

func TestTick_ContextCancelled(t *testing.T) {
	c, _ := newManualClock(t, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Tick(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, epoch, c.Last())
}

func TestTick_SystemTime(t *testing.T) {
	c, err := New(5 * time.Millisecond)
	require.NoError(t, err)
	start := c.Last()

	n, err := c.Tick(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)
	assert.Equal(t, start.Add(time.Duration(n)*5*time.Millisecond), c.Last())
	assert.False(t, time.Now().Before(c.Last()), "Tick must not return before the boundary")
}

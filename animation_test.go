package starter

import (
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestTweenXYReachesTarget(t *testing.T) {
	x, y := 10.0, 20.0
	g := TweenXY(&x, &y, 100, 200, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	if g.Done {
		t.Fatal("Done after half the duration")
	}
	if math.Abs(x-55) > 0.5 {
		t.Errorf("x at half = %f, want ~55", x)
	}
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(x-100) > 0.5 || math.Abs(y-200) > 0.5 {
		t.Errorf("position = (%f, %f), want ~(100, 200)", x, y)
	}
}

func TestTweenManyFields(t *testing.T) {
	vals := make([]float64, 6)
	targets := make([]TweenTarget, len(vals))
	for i := range vals {
		targets[i] = TweenTarget{Field: &vals[i], To: float64(i + 1)}
	}
	g := Tween(0.5, ease.Linear, targets...)
	g.Update(0.25)
	g.Update(0.25)
	if !g.Done {
		t.Fatal("expected Done")
	}
	for i, v := range vals {
		if math.Abs(v-float64(i+1)) > 0.01 {
			t.Errorf("vals[%d] = %f, want %d", i, v, i+1)
		}
	}
}

func TestTweenAdvance(t *testing.T) {
	x := 0.0
	g := Tween(1.0, ease.Linear, TweenTarget{Field: &x, To: 10})

	if !g.Advance(0, 20*time.Millisecond) {
		t.Fatal("zero ticks should leave the group running")
	}
	if x != 0 {
		t.Errorf("x moved on zero ticks: %f", x)
	}
	if !g.Advance(25, 20*time.Millisecond) {
		t.Fatal("half the duration should still be running")
	}
	if math.Abs(x-5) > 0.1 {
		t.Errorf("x = %f, want ~5", x)
	}
	if g.Advance(50, 20*time.Millisecond) {
		t.Fatal("expected finished after overshooting the duration")
	}
	if math.Abs(x-10) > 0.01 {
		t.Errorf("x = %f, want 10", x)
	}
	// Further updates are no-ops.
	g.Update(1)
	if math.Abs(x-10) > 0.01 {
		t.Errorf("x changed after Done: %f", x)
	}
}

func TestTweenReset(t *testing.T) {
	x := 3.0
	g := Tween(1.0, ease.Linear, TweenTarget{Field: &x, To: 9})
	g.Update(0.5)
	g.Update(0.5)
	if !g.Done {
		t.Fatal("expected Done")
	}
	g.Reset()
	if g.Done {
		t.Error("Reset should clear Done")
	}
	if math.Abs(x-3) > 0.01 {
		t.Errorf("x after Reset = %f, want 3", x)
	}
}

func TestTweenEmpty(t *testing.T) {
	g := Tween(1.0, ease.Linear)
	if !g.Done {
		t.Error("empty group should be Done")
	}
	if g.Advance(10, time.Second) {
		t.Error("empty group should not report running")
	}
}

package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/config"
)

func testGesture() config.GestureConfig {
	return config.GestureConfig{ForceScale: 2, Threshold: 0.1, ResetDelay: 1}
}

func TestGravityFieldSwipe(t *testing.T) {
	tests := []struct {
		name      string
		move      r3.Vec
		wantForce r3.Vec
		active    bool
	}{
		{"right swipe", r3.Vec{X: 0.2}, r3.Vec{X: 0.4}, true},
		{"upward pointer is inverted", r3.Vec{Y: 0.5}, r3.Vec{Y: -1}, true},
		{"both axes", r3.Vec{X: -0.25, Y: 0.05}, r3.Vec{X: -0.5, Y: -0.1}, true},
		{"below threshold", r3.Vec{X: 0.05, Y: -0.05}, r3.Vec{}, false},
		{"exactly threshold", r3.Vec{X: 0.1}, r3.Vec{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGravityField(testGesture())
			g.PointerDown(r3.Vec{})
			g.PointerMove(tt.move)

			f := g.Force()
			if math.Abs(f.X-tt.wantForce.X) > 1e-9 || math.Abs(f.Y-tt.wantForce.Y) > 1e-9 || f.Z != 0 {
				t.Errorf("Force() = %v, want %v", f, tt.wantForce)
			}
			if g.Active() != tt.active {
				t.Errorf("Active() = %v, want %v", g.Active(), tt.active)
			}
		})
	}
}

func TestGravityFieldMoveIgnoredWhenReleased(t *testing.T) {
	g := NewGravityField(testGesture())
	g.PointerMove(r3.Vec{X: 5})
	if g.Active() {
		t.Error("move without press should not set force")
	}
}

func TestGravityFieldMeasuresFromLastSample(t *testing.T) {
	g := NewGravityField(testGesture())
	g.PointerDown(r3.Vec{})
	// Many small moves never exceed the threshold individually
	for i := 1; i <= 10; i++ {
		g.PointerMove(r3.Vec{X: float64(i) * 0.05})
	}
	if g.Active() {
		t.Errorf("slow drag set force %v", g.Force())
	}
}

func TestGravityFieldResetsAfterDelay(t *testing.T) {
	g := NewGravityField(testGesture())
	g.PointerDown(r3.Vec{})
	g.PointerMove(r3.Vec{X: 0.2})
	g.PointerUp(0)

	timer, ok := g.Pending()
	if !ok || timer.Due != 1 {
		t.Fatalf("Pending() = %v, %v; want due at 1", timer, ok)
	}

	for _, now := range []float64{0.25, 0.5, 0.75} {
		if g.Advance(now) {
			t.Fatalf("reset fired early at %v", now)
		}
		if g.Force().X != 0.4 {
			t.Fatalf("force changed before reset: %v", g.Force())
		}
	}

	if !g.Advance(1) {
		t.Fatal("reset did not fire at due time")
	}
	if g.Force() != (r3.Vec{}) || g.Active() {
		t.Errorf("force not cleared: %v", g.Force())
	}
	if _, ok := g.Pending(); ok {
		t.Error("timer still pending after firing")
	}
}

func TestGravityFieldTapDoesNotScheduleReset(t *testing.T) {
	g := NewGravityField(testGesture())
	g.PointerDown(r3.Vec{})
	g.PointerUp(0)
	if _, ok := g.Pending(); ok {
		t.Error("tap without swipe scheduled a reset")
	}
}

func TestGravityFieldNewGestureCancelsStaleReset(t *testing.T) {
	g := NewGravityField(testGesture())
	g.PointerDown(r3.Vec{})
	g.PointerMove(r3.Vec{X: 0.2})
	g.PointerUp(0)

	// Second gesture begins before the first reset is due and is still held
	g.PointerDown(r3.Vec{X: 1})
	g.PointerMove(r3.Vec{X: 1.5})

	if g.Advance(1) {
		t.Fatal("stale reset cleared the new gesture's force")
	}
	if math.Abs(g.Force().X-1.0) > 1e-9 {
		t.Errorf("Force().X = %v, want 1.0", g.Force().X)
	}

	g.PointerUp(1.5)
	if g.Advance(2.25) {
		t.Fatal("reset fired before its own delay")
	}
	if !g.Advance(2.5) {
		t.Fatal("second reset did not fire")
	}
}

func TestGravityFieldReset(t *testing.T) {
	g := NewGravityField(testGesture())
	g.PointerDown(r3.Vec{})
	g.PointerMove(r3.Vec{X: 1})
	g.PointerUp(0)
	g.Reset()

	if g.Active() || g.Pressed() || g.Force() != (r3.Vec{}) {
		t.Error("Reset left gesture state behind")
	}
	if _, ok := g.Pending(); ok {
		t.Error("Reset left a pending timer")
	}
}

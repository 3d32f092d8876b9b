package systems

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/bloom/components"
)

func TestBlendColors(t *testing.T) {
	fallback, _ := colorful.Hex("#8A2BE2")

	got := BlendColors([]colorful.Color{{R: 1}, {B: 1}}, fallback)
	if got != (colorful.Color{R: 0.5, B: 0.5}) {
		t.Errorf("BlendColors = %v, want half red half blue", got)
	}

	if got := BlendColors(nil, fallback); got != fallback {
		t.Errorf("BlendColors(nil) = %v, want fallback", got.Hex())
	}
}

func TestOpacity(t *testing.T) {
	tests := []struct {
		name string
		life components.Lifetime
		mult float64
		want float64
	}{
		{"newborn", components.Lifetime{Age: 0, Lifespan: 10}, 1, 0},
		{"fading in", components.Lifetime{Age: 0.5, Lifespan: 10}, 1, 0.5},
		{"steady", components.Lifetime{Age: 5, Lifespan: 10}, 1, 1},
		{"fading out", components.Lifetime{Age: 9.75, Lifespan: 10}, 1, 0.25},
		{"cluster body", components.Lifetime{Age: 5, Lifespan: 20}, 0.7, 0.7},
		{"overdue", components.Lifetime{Age: 21, Lifespan: 20}, 0.9, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Opacity(tt.life, 1, tt.mult); got != tt.want {
				t.Errorf("Opacity = %v, want %v", got, tt.want)
			}
		})
	}
}

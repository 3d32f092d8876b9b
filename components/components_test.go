package components

import (
	"math"
	"testing"
)

func TestLifetimeOpacity(t *testing.T) {
	tests := []struct {
		name     string
		age      float64
		lifespan float64
		want     float64
	}{
		{"newborn", 0, 10, 0},
		{"fading in", 0.25, 10, 0.25},
		{"steady", 5, 10, 1},
		{"fading out", 9.5, 10, 0.5},
		{"past lifespan", 11, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lifetime{Age: tt.age, Lifespan: tt.lifespan}.Opacity(1)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Opacity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLifetimeExpired(t *testing.T) {
	if (Lifetime{Age: 9.9, Lifespan: 10}).Expired() {
		t.Error("age below lifespan should be live")
	}
	if !(Lifetime{Age: 10, Lifespan: 10}).Expired() {
		t.Error("age equal to lifespan should be expired")
	}
}

func TestBodyPulsedKeepsBase(t *testing.T) {
	b := Body{Size: 2, Phase: math.Pi / 2}
	got := b.Pulsed(0, 2, 0.05)
	if math.Abs(got-2.1) > 1e-9 {
		t.Errorf("Pulsed = %v, want 2.1", got)
	}
	if b.Size != 2 {
		t.Errorf("base size changed to %v", b.Size)
	}
}

func TestClusterRemoveMember(t *testing.T) {
	c := Cluster{Members: []ParticleID{1, 2, 3}}
	if !c.RemoveMember(2) {
		t.Fatal("RemoveMember(2) = false")
	}
	if c.HasMember(2) || len(c.Members) != 2 || c.Members[0] != 1 || c.Members[1] != 3 {
		t.Errorf("Members = %v, want [1 3]", c.Members)
	}
	if c.RemoveMember(9) {
		t.Error("RemoveMember of absent id should report false")
	}
}

package systems

import (
	"github.com/pthm-cable/bloom/components"
	"github.com/pthm-cable/bloom/config"
)

// Pulse computes the sinusoidal size modulation shown to the renderer.
// Proximity and collapse logic always use the base size instead.
type Pulse struct {
	cfg config.PulseConfig
}

// NewPulse creates a pulse calculator.
func NewPulse(cfg config.PulseConfig) Pulse {
	return Pulse{cfg: cfg}
}

// Particle returns a particle's visual radius at elapsed time t.
func (p Pulse) Particle(b components.Body, t float64) float64 {
	return b.Pulsed(t, p.cfg.ParticleFrequency, p.cfg.ParticleAmplitude)
}

// Cluster returns a cluster's visual radius. Larger clusters pulse harder.
func (p Pulse) Cluster(b components.Body, members int, t float64) float64 {
	amp := p.cfg.ClusterAmplitude + float64(members)*p.cfg.ClusterAmplitudePerMember
	return b.Pulsed(t, p.cfg.ClusterFrequency, amp)
}

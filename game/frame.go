package game

import (
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/components"
	"github.com/pthm-cable/bloom/systems"
)

// ParticleDescriptor is what a renderer needs to draw one free particle.
type ParticleDescriptor struct {
	ID       components.ParticleID
	Position r3.Vec
	Size     float64 // Pulsed radius
	Color    colorful.Color
	Opacity  float64
}

// MiniBubble is a decorative satellite drawn inside a cluster.
type MiniBubble struct {
	Position r3.Vec
	Size     float64
	Color    colorful.Color
	Opacity  float64
}

// ClusterDescriptor is what a renderer needs to draw one cluster.
type ClusterDescriptor struct {
	ID           components.ClusterID
	Position     r3.Vec
	Size         float64 // Pulsed radius
	BlendedColor colorful.Color
	MemberColors []colorful.Color
	MemberCount  int
	Opacity      float64
	MiniBubbles  []MiniBubble
}

// Frame is a read-only view of the scene for one rendered frame.
type Frame struct {
	Tick          int32
	Time          float64
	Gravity       r3.Vec
	GravityActive bool
	Particles     []ParticleDescriptor
	Clusters      []ClusterDescriptor
}

// Snapshot builds the render view. Clustered particles are drawn as part of
// their cluster and are not listed individually.
func (g *Game) Snapshot() Frame {
	now := g.world.Elapsed
	fade := g.cfg.Fade

	f := Frame{
		Tick:          g.tick,
		Time:          now,
		Gravity:       g.gravity.Force(),
		GravityActive: g.gravity.Active(),
	}

	free := g.world.FreeParticles()
	f.Particles = make([]ParticleDescriptor, 0, len(free))
	for _, p := range free {
		life := components.Lifetime{Age: p.Age, Lifespan: p.Lifespan}
		f.Particles = append(f.Particles, ParticleDescriptor{
			ID:       p.ID,
			Position: p.Position,
			Size:     g.pulse.Particle(components.Body{Size: p.Size, Phase: p.Phase}, now),
			Color:    p.Color,
			Opacity:  systems.Opacity(life, fade.Duration, 1),
		})
	}

	clusters := g.world.Clusters()
	f.Clusters = make([]ClusterDescriptor, 0, len(clusters))
	for _, c := range clusters {
		life := components.Lifetime{Age: c.Age, Lifespan: c.Lifespan}
		body := components.Body{Size: c.Size, Phase: c.Phase}

		desc := ClusterDescriptor{
			ID:           c.ID,
			Position:     c.Position,
			Size:         g.pulse.Cluster(body, len(c.Members), now),
			BlendedColor: systems.BlendColors(c.Colors, g.cfg.Derived.DefaultClusterColor),
			MemberColors: c.Colors,
			MemberCount:  len(c.Members),
			Opacity:      systems.Opacity(life, fade.Duration, fade.ClusterBody),
		}
		satOpacity := systems.Opacity(life, fade.Duration, fade.ClusterSatellite)
		for _, s := range c.Satellites {
			desc.MiniBubbles = append(desc.MiniBubbles, MiniBubble{
				Position: r3.Add(c.Position, s.Offset),
				Size:     s.Size,
				Color:    s.Color,
				Opacity:  satOpacity,
			})
		}
		f.Clusters = append(f.Clusters, desc)
	}

	return f
}

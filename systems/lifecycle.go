package systems

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/components"
	"github.com/pthm-cable/bloom/config"
	"github.com/pthm-cable/bloom/world"
)

// maxSatellites bounds the decorative mini bubbles drawn inside a cluster.
const maxSatellites = 10

// CollapseReason records why a cluster burst.
type CollapseReason string

const (
	CollapseExpired  CollapseReason = "expired"
	CollapseOversize CollapseReason = "oversize"
)

// SplashRequest asks the emitter to scatter particles where a cluster burst.
type SplashRequest struct {
	Cluster  components.ClusterID
	Position r3.Vec
	Size     float64
	Colors   []colorful.Color
	Members  int
	Age      float64
	Reason   CollapseReason
}

// Lifecycle forms clusters from proximity groups and collapses them when
// they outlive their lifespan or grow too large.
type Lifecycle struct {
	cfg         config.ClusteringConfig
	maxClusters int
	rng         *rand.Rand
}

// NewLifecycle creates a lifecycle manager.
func NewLifecycle(cfg config.ClusteringConfig, maxClusters int, rng *rand.Rand) *Lifecycle {
	return &Lifecycle{cfg: cfg, maxClusters: maxClusters, rng: rng}
}

// Form turns each group into a cluster until the cluster cap is reached.
// Groups left over stay free and are reconsidered next frame.
func (l *Lifecycle) Form(w *world.World, groups [][]components.ParticleID) []components.ClusterID {
	var formed []components.ClusterID
	for _, group := range groups {
		if w.ClusterCount() >= l.maxClusters {
			break
		}
		spec, ok := l.clusterSpec(w, group)
		if !ok {
			continue
		}
		cid, err := w.SpawnCluster(spec, group)
		if err != nil {
			slog.Warn("cluster_form_failed", "members", len(group), "error", err)
			continue
		}
		slog.Debug("cluster_formed",
			"cluster", uint64(cid),
			"members", len(group),
			"size", spec.Size,
			"lifespan", spec.Lifespan,
		)
		formed = append(formed, cid)
	}
	return formed
}

func (l *Lifecycle) clusterSpec(w *world.World, group []components.ParticleID) (world.ClusterSpec, bool) {
	var sum r3.Vec
	var totalSize float64
	colors := make([]colorful.Color, 0, len(group))
	for _, id := range group {
		p, ok := w.Particle(id)
		if !ok {
			return world.ClusterSpec{}, false
		}
		sum = r3.Add(sum, p.Position)
		totalSize += p.Size
		colors = append(colors, p.Color)
	}

	size := totalSize * l.cfg.SizeScale
	return world.ClusterSpec{
		Position:   r3.Scale(1/float64(len(group)), sum),
		Size:       size,
		Phase:      l.rng.Float64() * 2 * math.Pi,
		Lifespan:   uniform(l.rng, l.cfg.LifespanMin, l.cfg.LifespanMax),
		Colors:     colors,
		Satellites: l.satellites(size, colors),
	}, true
}

// satellites scatters mini bubbles inside a cluster of the given size.
func (l *Lifecycle) satellites(size float64, colors []colorful.Color) []components.Satellite {
	n := min(len(colors), maxSatellites)
	sats := make([]components.Satellite, n)
	for i := range sats {
		sats[i] = components.Satellite{
			Offset: sphericalOffset(l.rng, l.rng.Float64()*size*0.8),
			Size:   uniform(l.rng, 0.2, 0.5),
			Color:  colors[l.rng.Intn(len(colors))],
		}
	}
	return sats
}

// Collapse releases every cluster that has expired or exceeded the member
// limit, in insertion order. Released members return to the free pool.
func (l *Lifecycle) Collapse(w *world.World) []SplashRequest {
	var requests []SplashRequest
	for _, c := range w.Clusters() {
		var reason CollapseReason
		switch {
		case c.Age > c.Lifespan:
			reason = CollapseExpired
		case len(c.Members) > l.cfg.MaxMembers:
			reason = CollapseOversize
		default:
			continue
		}

		view, err := w.ReleaseCluster(c.ID)
		if err != nil {
			slog.Warn("cluster_release_failed", "cluster", uint64(c.ID), "error", err)
			continue
		}
		slog.Debug("cluster_collapsed",
			"cluster", uint64(view.ID),
			"members", len(view.Members),
			"age", view.Age,
			"reason", string(reason),
		)
		requests = append(requests, SplashRequest{
			Cluster:  view.ID,
			Position: view.Position,
			Size:     view.Size,
			Colors:   view.Colors,
			Members:  len(view.Members),
			Age:      view.Age,
			Reason:   reason,
		})
	}
	return requests
}

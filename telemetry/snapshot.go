package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bloom/world"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete simulation state at one tick.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Tick    int32      `json:"tick"`
	SimTime float64    `json:"sim_time"`
	Gravity [3]float64 `json:"gravity"`

	Particles []ParticleState `json:"particles"`
	Clusters  []ClusterState  `json:"clusters"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// ParticleState holds one particle's complete state.
type ParticleState struct {
	ID       uint64     `json:"id"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
	Size     float64    `json:"size"`
	Phase    float64    `json:"phase"`
	Color    string     `json:"color"`
	Age      float64    `json:"age"`
	Lifespan float64    `json:"lifespan"`
	Cluster  uint64     `json:"cluster,omitempty"`
}

// ClusterState holds one cluster's complete state.
type ClusterState struct {
	ID       uint64     `json:"id"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
	Size     float64    `json:"size"`
	Phase    float64    `json:"phase"`
	Age      float64    `json:"age"`
	Lifespan float64    `json:"lifespan"`
	Colors   []string   `json:"colors"`
	Members  []uint64   `json:"members"`
}

func vec3(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// NewSnapshot captures the world in insertion order.
func NewSnapshot(w *world.World, seed int64, tick int32) *Snapshot {
	s := &Snapshot{
		Version: SnapshotVersion,
		RNGSeed: seed,
		Tick:    tick,
		SimTime: w.Elapsed,
		Gravity: vec3(w.Gravity),
	}

	for _, p := range w.Particles() {
		s.Particles = append(s.Particles, ParticleState{
			ID:       uint64(p.ID),
			Position: vec3(p.Position),
			Velocity: vec3(p.Velocity),
			Size:     p.Size,
			Phase:    p.Phase,
			Color:    p.Color.Hex(),
			Age:      p.Age,
			Lifespan: p.Lifespan,
			Cluster:  uint64(p.Cluster),
		})
	}

	for _, c := range w.Clusters() {
		cs := ClusterState{
			ID:       uint64(c.ID),
			Position: vec3(c.Position),
			Velocity: vec3(c.Velocity),
			Size:     c.Size,
			Phase:    c.Phase,
			Age:      c.Age,
			Lifespan: c.Lifespan,
		}
		for _, col := range c.Colors {
			cs.Colors = append(cs.Colors, col.Hex())
		}
		for _, m := range c.Members {
			cs.Members = append(cs.Members, uint64(m))
		}
		s.Clusters = append(s.Clusters, cs)
	}

	return s
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}

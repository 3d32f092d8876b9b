// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// PaletteSize is the number of colors a particle can be tinted with.
const PaletteSize = 8

// Config holds all simulation configuration parameters.
type Config struct {
	Screen              ScreenConfig     `yaml:"screen"`
	Simulation          SimulationConfig `yaml:"simulation"`
	Physics             PhysicsConfig    `yaml:"physics"`
	Clustering          ClusteringConfig `yaml:"clustering"`
	Burst               BurstConfig      `yaml:"burst"`
	Splash              SplashConfig     `yaml:"splash"`
	Gesture             GestureConfig    `yaml:"gesture"`
	Pulse               PulseConfig      `yaml:"pulse"`
	Fade                FadeConfig       `yaml:"fade"`
	Palette             []string         `yaml:"palette"`
	DefaultClusterColor string           `yaml:"default_cluster_color"`
	Camera              CameraConfig     `yaml:"camera"`
	Telemetry           TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Background string `yaml:"background"` // Hex color at the top of the backdrop
}

// SimulationConfig holds population caps and the fixed step used by headless runs.
type SimulationConfig struct {
	DT           float64 `yaml:"dt"`
	MaxParticles int     `yaml:"max_particles"`
	MaxClusters  int     `yaml:"max_clusters"`
}

// PhysicsConfig holds integration parameters.
type PhysicsConfig struct {
	ParticleDamping     float64 `yaml:"particle_damping"`      // Per-frame velocity multiplier for free particles
	ClusterDamping      float64 `yaml:"cluster_damping"`       // Per-frame velocity multiplier for clusters
	ClusterGravityScale float64 `yaml:"cluster_gravity_scale"` // Fraction of the force field applied to clusters
}

// ClusteringConfig holds proximity grouping and cluster lifecycle parameters.
type ClusteringConfig struct {
	ProximityMultiplier float64 `yaml:"proximity_multiplier"` // Adjacent when dist < (ri+rj) * this
	SizeScale           float64 `yaml:"size_scale"`           // Cluster size = sum(member sizes) * this
	MaxMembers          int     `yaml:"max_members"`          // Collapse when member count exceeds this
	LifespanMin         float64 `yaml:"lifespan_min"`
	LifespanMax         float64 `yaml:"lifespan_max"`
	Index               string  `yaml:"index"`          // "pairwise" or "grid"
	GridCellSize        float64 `yaml:"grid_cell_size"` // Only used by the grid index
}

// BurstConfig holds tap emission parameters.
type BurstConfig struct {
	CountMin    int     `yaml:"count_min"` // Inclusive
	CountMax    int     `yaml:"count_max"` // Exclusive
	Jitter      float64 `yaml:"jitter"`    // Per-axis offset in [-jitter, jitter]
	SizeMin     float64 `yaml:"size_min"`
	SizeMax     float64 `yaml:"size_max"`
	Speed       float64 `yaml:"speed"` // Per-axis velocity in [-speed, speed]
	LifespanMin float64 `yaml:"lifespan_min"`
	LifespanMax float64 `yaml:"lifespan_max"`
}

// SplashConfig holds collapse emission parameters.
type SplashConfig struct {
	CountBase    int     `yaml:"count_base"`     // count = floor(size * count_per_size) + count_base
	CountPerSize float64 `yaml:"count_per_size"`
	RadiusScale  float64 `yaml:"radius_scale"`   // Offset radius in [0, size * radius_scale)
	OffsetScale  float64 `yaml:"offset_scale"`   // Spawn position = center + offset * this
	SpeedMin     float64 `yaml:"speed_min"`
	SpeedMax     float64 `yaml:"speed_max"`
	SizeMin      float64 `yaml:"size_min"`
	SizeMax      float64 `yaml:"size_max"`
	LifespanMin  float64 `yaml:"lifespan_min"`
	LifespanMax  float64 `yaml:"lifespan_max"`
}

// GestureConfig holds swipe-to-force parameters.
type GestureConfig struct {
	ForceScale float64 `yaml:"force_scale"`
	Threshold  float64 `yaml:"threshold"`   // Per-axis displacement needed to count as a swipe
	ResetDelay float64 `yaml:"reset_delay"` // Seconds after release before the force clears
}

// PulseConfig holds visual size modulation parameters.
type PulseConfig struct {
	ParticleAmplitude         float64 `yaml:"particle_amplitude"`
	ParticleFrequency         float64 `yaml:"particle_frequency"`
	ClusterAmplitude          float64 `yaml:"cluster_amplitude"`
	ClusterAmplitudePerMember float64 `yaml:"cluster_amplitude_per_member"`
	ClusterFrequency          float64 `yaml:"cluster_frequency"`
}

// FadeConfig holds opacity ramp parameters.
type FadeConfig struct {
	Duration         float64 `yaml:"duration"`          // Seconds for fade in and fade out
	ClusterBody      float64 `yaml:"cluster_body"`      // Opacity multiplier for the cluster body
	ClusterSatellite float64 `yaml:"cluster_satellite"` // Opacity multiplier for mini bubbles
}

// CameraConfig describes the reference perspective camera.
type CameraConfig struct {
	PositionZ float64 `yaml:"position_z"`
	FOV       float64 `yaml:"fov"` // Vertical field of view in degrees
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
	PerfWindow  int     `yaml:"perf_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Palette             []colorful.Color
	DefaultClusterColor colorful.Color
	Background          colorful.Color
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults. Panics if they fail to parse.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validation errors.
var (
	ErrPaletteSize = errors.New("palette must have exactly 8 colors")
	ErrBadRange    = errors.New("range minimum must not exceed maximum")
	ErrBadCap      = errors.New("population caps must be positive")
	ErrBadIndex    = errors.New("clustering index must be \"pairwise\" or \"grid\"")
)

// computeDerived calculates values derived from loaded config and validates it.
func (c *Config) computeDerived() error {
	if len(c.Palette) != PaletteSize {
		return fmt.Errorf("%w: got %d", ErrPaletteSize, len(c.Palette))
	}
	c.Derived.Palette = make([]colorful.Color, len(c.Palette))
	for i, hex := range c.Palette {
		col, err := colorful.Hex(hex)
		if err != nil {
			return fmt.Errorf("palette[%d] %q: %w", i, hex, err)
		}
		c.Derived.Palette[i] = col
	}

	def, err := colorful.Hex(c.DefaultClusterColor)
	if err != nil {
		return fmt.Errorf("default_cluster_color %q: %w", c.DefaultClusterColor, err)
	}
	c.Derived.DefaultClusterColor = def

	bg, err := colorful.Hex(c.Screen.Background)
	if err != nil {
		return fmt.Errorf("screen.background %q: %w", c.Screen.Background, err)
	}
	c.Derived.Background = bg

	if c.Simulation.MaxParticles <= 0 || c.Simulation.MaxClusters <= 0 {
		return ErrBadCap
	}

	ranges := []struct {
		name     string
		min, max float64
	}{
		{"burst.count", float64(c.Burst.CountMin), float64(c.Burst.CountMax)},
		{"burst.size", c.Burst.SizeMin, c.Burst.SizeMax},
		{"burst.lifespan", c.Burst.LifespanMin, c.Burst.LifespanMax},
		{"splash.speed", c.Splash.SpeedMin, c.Splash.SpeedMax},
		{"splash.size", c.Splash.SizeMin, c.Splash.SizeMax},
		{"splash.lifespan", c.Splash.LifespanMin, c.Splash.LifespanMax},
		{"clustering.lifespan", c.Clustering.LifespanMin, c.Clustering.LifespanMax},
	}
	for _, r := range ranges {
		if r.min > r.max {
			return fmt.Errorf("%s: %w", r.name, ErrBadRange)
		}
	}

	switch c.Clustering.Index {
	case "", "pairwise":
		c.Clustering.Index = "pairwise"
	case "grid":
		if c.Clustering.GridCellSize <= 0 {
			return fmt.Errorf("clustering.grid_cell_size must be positive, got %v", c.Clustering.GridCellSize)
		}
	default:
		return fmt.Errorf("%w: got %q", ErrBadIndex, c.Clustering.Index)
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

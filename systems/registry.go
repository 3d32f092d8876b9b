package systems

// SystemInfo describes a simulation system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "input", "physics", "clustering")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the HUD and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems in frame order.
// IDs match the perf phase names in the telemetry package.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: "input", Name: "Input", Description: "Drains queued taps and gestures", Category: "input"})
	r.Register(SystemInfo{ID: "gravity", Name: "Gravity", Description: "Fires the pending force reset", Category: "input"})

	r.Register(SystemInfo{ID: "physics", Name: "Physics", Description: "Integrates particles and clusters", Category: "physics"})

	r.Register(SystemInfo{ID: "proximity", Name: "Proximity", Description: "Finds adjacent free particles", Category: "clustering"})
	r.Register(SystemInfo{ID: "lifecycle", Name: "Lifecycle", Description: "Forms and collapses clusters", Category: "clustering"})

	r.Register(SystemInfo{ID: "emission", Name: "Emission", Description: "Scatters splash particles and enforces the cap", Category: "lifecycle"})
	r.Register(SystemInfo{ID: "cleanup", Name: "Cleanup", Description: "Removes expired particles", Category: "lifecycle"})

	r.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Records window statistics", Category: "internal"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}

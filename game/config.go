package game

// Options configures a Game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	SnapshotDir    string  // Bookmarks save a world snapshot here when set
	OutputDir      string  // CSV logs and config snapshot; empty disables output
}

// DefaultOptions returns options for an interactive run with output disabled.
func DefaultOptions() Options {
	return Options{Seed: 42}
}

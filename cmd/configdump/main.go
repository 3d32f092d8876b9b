// Command configdump writes the effective configuration (embedded defaults
// merged with an optional overlay) as YAML.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/bloom/config"
)

func main() {
	configPath := flag.String("config", "", "Overlay config.yaml (empty = defaults only)")
	out := flag.String("out", "config.yaml", "Output path")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	config.MustInit(*configPath)
	cfg := config.Cfg()
	if err := cfg.WriteYAML(*out); err != nil {
		slog.Error("failed to write config", "error", err)
		os.Exit(1)
	}
	slog.Info("config written", "path", *out, "index", cfg.Clustering.Index)
}

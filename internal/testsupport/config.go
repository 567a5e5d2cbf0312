package testsupport

import (
	"path/filepath"
	"testing"

	"beadcolors/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SourceDir = filepath.Join(base, "colors")
	cfgVal.Paths.OutputFile = filepath.Join(base, "out", "beadColors.ts")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.SnapshotDB = filepath.Join(base, "state", "snapshots.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithBrands restricts the run to the given brand keys.
func WithBrands(keys ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Pipeline.Brands = keys
	}
}

// WithOutputFormat selects the artifact format.
func WithOutputFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.Format = format
		if format == "json" {
			b.cfg.Paths.OutputFile = filepath.Join(b.baseDir, "out", "beadColors.json")
		}
	}
}

// WithoutSnapshots disables the run history database.
func WithoutSnapshots() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.SnapshotDB = ""
	}
}

// WithMetricsTextfile enables the Prometheus textfile export.
func WithMetricsTextfile() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Metrics.Textfile = filepath.Join(b.baseDir, "metrics", "beadcolors.prom")
	}
}

// WithDumps writes dump files into the source directory.
func WithDumps(dumps map[string]string) ConfigOption {
	return func(b *configBuilder) {
		for name, text := range dumps {
			WriteDump(b.t, b.cfg.Paths.SourceDir, name, text)
		}
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.SourceDir)
}

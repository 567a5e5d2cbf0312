package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"beadcolors/internal/config"
	"beadcolors/internal/snapshot"
	"beadcolors/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

// sampleDumps covers every brand except hama, whose source file is missing.
func sampleDumps() map[string]string {
	return map[string]string{
		"perler": testsupport.Dump(
			testsupport.Swatch("Perler", "P01", "#f1f1f1", "ç™½è‰²"),
			testsupport.Swatch("Perler", "P02", "#000000", "Black"),
			testsupport.Swatch("Perler", "P01", "#ABCDEF", "Duplicate"),
		),
		"artkal": testsupport.Dump(
			testsupport.Swatch("Artkal-S", "S01", "#FF0000", "Red"),
			testsupport.Swatch("Artkal-S", "02", "#00FF00", "Green"),
		),
		"mard":  testsupport.Dump(testsupport.Swatch("MARD", "A1", "#FAF4C8", "Cream")),
		"nabbi": testsupport.Dump(testsupport.Swatch("Nabbi", "N1", "#0000FF", "Blue")),
		"ikea":  testsupport.Dump(testsupport.Swatch("Ikea", "01", "#FFFF00", "Yellow")),
	}
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	opts = append([]testsupport.ConfigOption{testsupport.WithDumps(sampleDumps())}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)

	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("BEADCOLORS_SOURCE_DIR", "")
	t.Setenv("BEADCOLORS_OUTPUT_FILE", "")

	configPath := filepath.Join(homeDir, ".config", "beadcolors", "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func openTestStore(t *testing.T, env *cliTestEnv) *snapshot.Store {
	t.Helper()
	store, err := snapshot.Open(t.Context(), env.cfg.Paths.SnapshotDB)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains input, output and state locations. SourceDir and OutputFile
// also accept s3://bucket/prefix URIs.
type Paths struct {
	SourceDir  string `toml:"source_dir"`
	OutputFile string `toml:"output_file"`
	LogDir     string `toml:"log_dir"`
	SnapshotDB string `toml:"snapshot_db"`
}

// Pipeline selects which brands are converted.
type Pipeline struct {
	// Brands restricts the run to these brand keys. Empty means all brands.
	Brands []string `toml:"brands"`
}

// Extract tunes the record scanner.
type Extract struct {
	BoundToNextMarker bool `toml:"bound_to_next_marker"`
}

// Repair selects the name repair chain.
type Repair struct {
	Mode      string `toml:"mode"`
	MaxPasses int    `toml:"max_passes"`
}

// Output controls the generated artifact.
type Output struct {
	Format string `toml:"format"`
}

// Defaults are the canvas defaults embedded in the generated library.
type Defaults struct {
	Width           int  `toml:"width"`
	Height          int  `toml:"height"`
	ColorCount      int  `toml:"color_count"`
	LockAspectRatio bool `toml:"lock_aspect_ratio"`
}

// S3 configures access to s3:// sources and outputs.
type S3 struct {
	Region       string `toml:"region"`
	Endpoint     string `toml:"endpoint"`
	UsePathStyle bool   `toml:"use_path_style"`
}

// Metrics controls the Prometheus textfile export.
type Metrics struct {
	Textfile string `toml:"textfile"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for beadcolors.
//
// Configuration sections by subsystem:
//   - Paths: dump directory, generated file, logs and snapshot database
//   - Pipeline: brand selection
//   - Extract: record scan window
//   - Repair: mojibake repair strategy
//   - Output: artifact format
//   - Defaults: canvas defaults shipped with the library
//   - S3: object storage access
//   - Metrics: Prometheus textfile export
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Pipeline Pipeline `toml:"pipeline"`
	Extract  Extract  `toml:"extract"`
	Repair   Repair   `toml:"repair"`
	Output   Output   `toml:"output"`
	Defaults Defaults `toml:"defaults"`
	S3       S3       `toml:"s3"`
	Metrics  Metrics  `toml:"metrics"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/beadcolors/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/beadcolors/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("beadcolors.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the local directories a run writes into. Remote
// (s3://) locations are left alone.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if !IsRemote(c.Paths.OutputFile) {
		dirs = append(dirs, filepath.Dir(c.Paths.OutputFile))
	}
	if c.Paths.SnapshotDB != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.SnapshotDB))
	}
	if c.Metrics.Textfile != "" {
		dirs = append(dirs, filepath.Dir(c.Metrics.Textfile))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LogFile returns the path of the persistent log file.
func (c *Config) LogFile() string {
	if c.Paths.LogDir == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, "beadcolors.log")
}

// IsRemote reports whether location is an s3:// URI.
func IsRemote(location string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(location)), "s3://")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// expandLocation expands local paths and passes s3:// URIs through.
func expandLocation(location string) (string, error) {
	location = strings.TrimSpace(location)
	if IsRemote(location) {
		return location, nil
	}
	return expandPath(strings.TrimPrefix(location, "file://"))
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

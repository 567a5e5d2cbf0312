package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePipeline()
	c.normalizeRepair()
	c.normalizeOutput()
	c.normalizeS3()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("BEADCOLORS_SOURCE_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.SourceDir = value
	}
	if value, ok := os.LookupEnv("BEADCOLORS_OUTPUT_FILE"); ok && strings.TrimSpace(value) != "" {
		c.Paths.OutputFile = value
	}
	if strings.TrimSpace(c.Paths.SourceDir) == "" {
		c.Paths.SourceDir = defaultSourceDir
	}
	if strings.TrimSpace(c.Paths.OutputFile) == "" {
		c.Paths.OutputFile = defaultOutputFile
	}

	var err error
	if c.Paths.SourceDir, err = expandLocation(c.Paths.SourceDir); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if c.Paths.OutputFile, err = expandLocation(c.Paths.OutputFile); err != nil {
		return fmt.Errorf("paths.output_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	// An empty snapshot_db disables run history.
	if c.Paths.SnapshotDB, err = expandPath(strings.TrimSpace(c.Paths.SnapshotDB)); err != nil {
		return fmt.Errorf("paths.snapshot_db: %w", err)
	}
	if c.Metrics.Textfile, err = expandPath(strings.TrimSpace(c.Metrics.Textfile)); err != nil {
		return fmt.Errorf("metrics.textfile: %w", err)
	}
	return nil
}

func (c *Config) normalizePipeline() {
	if len(c.Pipeline.Brands) == 0 {
		return
	}
	brands := make([]string, 0, len(c.Pipeline.Brands))
	seen := make(map[string]struct{}, len(c.Pipeline.Brands))
	for _, key := range c.Pipeline.Brands {
		normalized := strings.ToLower(strings.TrimSpace(key))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		brands = append(brands, normalized)
	}
	c.Pipeline.Brands = brands
}

func (c *Config) normalizeRepair() {
	c.Repair.Mode = strings.ToLower(strings.TrimSpace(c.Repair.Mode))
	if c.Repair.Mode == "" {
		c.Repair.Mode = defaultRepairMode
	}
	if c.Repair.MaxPasses == 0 {
		c.Repair.MaxPasses = defaultRepairMaxPasses
	}
}

func (c *Config) normalizeOutput() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	switch c.Output.Format {
	case "", "ts":
		c.Output.Format = defaultOutputFormat
	}
}

func (c *Config) normalizeS3() {
	c.S3.Region = strings.TrimSpace(c.S3.Region)
	if c.S3.Region == "" {
		if value, ok := os.LookupEnv("AWS_REGION"); ok {
			c.S3.Region = strings.TrimSpace(value)
		}
	}
	c.S3.Endpoint = strings.TrimSpace(c.S3.Endpoint)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

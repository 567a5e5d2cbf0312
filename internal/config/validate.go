package config

import (
	"errors"
	"fmt"

	"beadcolors/internal/brand"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validateRepair(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateDefaults(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.SourceDir == "" {
		return errors.New("paths.source_dir must be set")
	}
	if c.Paths.OutputFile == "" {
		return errors.New("paths.output_file must be set")
	}
	if IsRemote(c.Paths.SourceDir) || IsRemote(c.Paths.OutputFile) {
		if c.S3.Region == "" && c.S3.Endpoint == "" {
			return errors.New("s3.region (or AWS_REGION) must be set when using s3:// locations")
		}
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if _, err := brand.Select(c.Pipeline.Brands); err != nil {
		return fmt.Errorf("pipeline.brands: %w", err)
	}
	return nil
}

func (c *Config) validateRepair() error {
	switch c.Repair.Mode {
	case "heuristic", "legacy":
	default:
		return fmt.Errorf("repair.mode must be \"heuristic\" or \"legacy\", got %q", c.Repair.Mode)
	}
	if c.Repair.MaxPasses < 0 {
		return errors.New("repair.max_passes must be >= 0")
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Format {
	case "typescript", "json":
		return nil
	default:
		return fmt.Errorf("output.format must be \"typescript\" or \"json\", got %q", c.Output.Format)
	}
}

func (c *Config) validateDefaults() error {
	return ensurePositiveMap(map[string]int{
		"defaults.width":       c.Defaults.Width,
		"defaults.height":      c.Defaults.Height,
		"defaults.color_count": c.Defaults.ColorCount,
	})
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for _, key := range []string{"defaults.width", "defaults.height", "defaults.color_count"} {
		value, ok := values[key]
		if ok && value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"beadcolors/internal/config"
	"beadcolors/internal/logging"
	"beadcolors/internal/pipeline"
	"beadcolors/internal/snapshot"
	"beadcolors/internal/source"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonMode() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}

// buildCatalog runs the extraction without persisting anything. Logs are
// discarded so query commands print only their results.
func (c *commandContext) buildCatalog(ctx context.Context) (*pipeline.Result, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	opts, err := pipeline.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	src, err := source.Open(ctx, cfg.Paths.SourceDir, cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	return pipeline.New(src, opts, logging.NewNop()).Run(ctx)
}

func (c *commandContext) withStore(ctx context.Context, fn func(*snapshot.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if cfg.Paths.SnapshotDB == "" {
		return fmt.Errorf("run history is disabled (paths.snapshot_db is empty)")
	}
	store, err := snapshot.Open(ctx, cfg.Paths.SnapshotDB)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

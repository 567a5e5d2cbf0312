package config

const (
	defaultSourceDir         = "./colors"
	defaultOutputFile        = "./src/data/beadColors.ts"
	defaultLogDir            = "~/.local/share/beadcolors/logs"
	defaultSnapshotDB        = "~/.local/share/beadcolors/snapshots.db"
	defaultRepairMode        = "heuristic"
	defaultRepairMaxPasses   = 4
	defaultOutputFormat      = "typescript"
	defaultCanvasWidth       = 29
	defaultCanvasHeight      = 29
	defaultColorCount        = 16
	defaultLockAspectRatio   = true
	defaultBoundToNextMarker = true
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir:  defaultSourceDir,
			OutputFile: defaultOutputFile,
			LogDir:     defaultLogDir,
			SnapshotDB: defaultSnapshotDB,
		},
		Extract: Extract{
			BoundToNextMarker: defaultBoundToNextMarker,
		},
		Repair: Repair{
			Mode:      defaultRepairMode,
			MaxPasses: defaultRepairMaxPasses,
		},
		Output: Output{
			Format: defaultOutputFormat,
		},
		Defaults: Defaults{
			Width:           defaultCanvasWidth,
			Height:          defaultCanvasHeight,
			ColorCount:      defaultColorCount,
			LockAspectRatio: defaultLockAspectRatio,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

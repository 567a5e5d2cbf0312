// Package pipeline runs the per-brand conversion: read each dump, extract its
// colors, and assemble the catalog. A failing brand yields an empty library
// and a diagnostic; it never stops the batch.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"beadcolors/internal/brand"
	"beadcolors/internal/catalog"
	"beadcolors/internal/config"
	"beadcolors/internal/extract"
	"beadcolors/internal/logging"
	"beadcolors/internal/palette"
	"beadcolors/internal/source"
	"beadcolors/internal/textrepair"
)

// Options configures a Runner.
type Options struct {
	Brands   []brand.Brand
	Extract  extract.Options
	Repairer *textrepair.Repairer
	Settings catalog.Settings
}

// OptionsFromConfig resolves brand selection, repair mode and canvas
// defaults from cfg.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	brands, err := brand.Select(cfg.Pipeline.Brands)
	if err != nil {
		return Options{}, err
	}
	repairer, err := textrepair.ForMode(textrepair.Mode(cfg.Repair.Mode), cfg.Repair.MaxPasses)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Brands:   brands,
		Extract:  extract.Options{BoundToNextMarker: cfg.Extract.BoundToNextMarker},
		Repairer: repairer,
		Settings: catalog.Settings{
			Width:           cfg.Defaults.Width,
			Height:          cfg.Defaults.Height,
			ColorCount:      cfg.Defaults.ColorCount,
			Brand:           brands[0].Key,
			LockAspectRatio: cfg.Defaults.LockAspectRatio,
		},
	}, nil
}

// BrandReport is the per-brand outcome of a run.
type BrandReport struct {
	Brand    string        `json:"brand"`
	Name     string        `json:"name"`
	Colors   int           `json:"colors"`
	Stats    extract.Stats `json:"stats"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// Kind returns the error kind, or "" for a successful brand.
func (r BrandReport) Kind() string {
	if r.Err == nil {
		return ""
	}
	return Classify(r.Err)
}

// Result is the outcome of a whole run.
type Result struct {
	RunID    string
	Catalog  *catalog.Catalog
	Reports  []BrandReport
	Started  time.Time
	Finished time.Time
}

// Failed returns the reports of brands that produced no library because of an error.
func (r *Result) Failed() []BrandReport {
	var failed []BrandReport
	for _, report := range r.Reports {
		if report.Err != nil {
			failed = append(failed, report)
		}
	}
	return failed
}

// Runner executes conversion runs. Brands are processed sequentially in
// table order.
type Runner struct {
	src      source.Source
	opts     Options
	logger   *slog.Logger
	extract  func(text string, b brand.Brand) extract.Result
	now      func() time.Time
	newRunID func() string
}

// New builds a Runner. An empty brand list selects every brand.
func New(src source.Source, opts Options, logger *slog.Logger) *Runner {
	if len(opts.Brands) == 0 {
		opts.Brands = brand.All()
	}
	if opts.Settings == (catalog.Settings{}) {
		opts.Settings = catalog.DefaultSettings(opts.Brands[0].Key)
	}
	extractor := extract.New(opts.Repairer, opts.Extract)
	return &Runner{
		src:      src,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		extract:  extractor.ExtractBrand,
		now:      time.Now,
		newRunID: logging.NewRunID,
	}
}

// Run converts every configured brand. It only returns an error when ctx is
// cancelled; per-brand failures are reported in the result.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{RunID: r.newRunID(), Started: r.now()}
	logger := logging.WithRunID(r.logger, result.RunID)
	logger.Info("conversion started",
		logging.String(logging.FieldEventType, "run_started"),
		logging.String("source", r.src.Location()),
		logging.Int("brands", len(r.opts.Brands)),
	)

	colors := make(map[string][]palette.Color, len(r.opts.Brands))
	for _, b := range r.opts.Brands {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("conversion interrupted: %w", err)
		}
		report, list := r.processBrand(ctx, b, logger)
		colors[b.Key] = list
		result.Reports = append(result.Reports, report)
	}

	result.Catalog = catalog.Assemble(r.opts.Brands, colors).WithSettings(r.opts.Settings)
	result.Finished = r.now()
	logger.Info("conversion finished",
		logging.String(logging.FieldEventType, "run_finished"),
		logging.Int("colors", result.Catalog.Count()),
		logging.Int("failed_brands", len(result.Failed())),
	)
	return result, nil
}

func (r *Runner) processBrand(ctx context.Context, b brand.Brand, logger *slog.Logger) (report BrandReport, colors []palette.Color) {
	started := r.now()
	report = BrandReport{Brand: b.Key, Name: b.DisplayName}
	brandLogger := logger.With(logging.String(logging.FieldBrand, b.Key))

	defer func() {
		if recovered := recover(); recovered != nil {
			colors = nil
			report.Colors = 0
			report.Err = &BrandError{Brand: b.Key, Kind: KindExtraction, Err: fmt.Errorf("panic: %v", recovered)}
		}
		report.Duration = r.now().Sub(started)
		r.logOutcome(brandLogger, report)
	}()

	text, err := r.src.Read(ctx, b.File)
	if err != nil {
		kind := KindExtraction
		if errors.Is(err, source.ErrNotFound) {
			kind = KindNotFound
		}
		report.Err = &BrandError{Brand: b.Key, Kind: kind, Err: err}
		return report, nil
	}

	extracted := r.extract(text, b)
	report.Colors = len(extracted.Colors)
	report.Stats = extracted.Stats
	return report, extracted.Colors
}

func (r *Runner) logOutcome(logger *slog.Logger, report BrandReport) {
	switch report.Kind() {
	case "":
		logger.Info("brand extracted",
			logging.String(logging.FieldEventType, "brand_extracted"),
			logging.Int("colors", report.Colors),
			logging.Int("anchors", report.Stats.Anchors),
			logging.Int("duplicates", report.Stats.Duplicates),
			logging.Int("repaired", report.Stats.Repaired),
		)
	case KindNotFound:
		logging.WarnWithContext(logger, "brand source missing", "source_missing",
			logging.Error(report.Err),
			logging.String(logging.FieldErrorHint, "add the dump file or drop the brand from pipeline.brands"),
			logging.String(logging.FieldImpact, "brand library will be empty"),
		)
	default:
		logging.ErrorWithContext(logger, "brand extraction failed", "extraction_failed",
			logging.Error(report.Err),
			logging.String(logging.FieldImpact, "brand library will be empty"),
		)
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"beadcolors/internal/config"
	"beadcolors/internal/logging"
	"beadcolors/internal/metrics"
	"beadcolors/internal/output"
	"beadcolors/internal/pipeline"
	"beadcolors/internal/render"
	"beadcolors/internal/snapshot"
	"beadcolors/internal/source"
)

type brandSummary struct {
	Brand      string `json:"brand"`
	Name       string `json:"name"`
	Colors     int    `json:"colors"`
	Anchors    int    `json:"anchors"`
	Duplicates int    `json:"duplicates"`
	Repaired   int    `json:"repaired"`
	ErrorKind  string `json:"error_kind,omitempty"`
	Error      string `json:"error,omitempty"`
}

type convertSummary struct {
	RunID       string         `json:"run_id"`
	Source      string         `json:"source"`
	Output      string         `json:"output"`
	Format      string         `json:"format"`
	DryRun      bool           `json:"dry_run"`
	TotalColors int            `json:"total_colors"`
	Brands      []brandSummary `json:"brands"`
	Changes     *snapshot.Diff `json:"changes,omitempty"`
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var brands []string
	var format string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Extract every brand dump and write the color library",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := *base
			if len(brands) > 0 {
				cfg.Pipeline.Brands = brands
			}
			if strings.TrimSpace(format) != "" {
				cfg.Output.Format = format
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			summary, err := runConvert(cmd.Context(), &cfg, logger, dryRun)
			if err != nil {
				return err
			}
			if ctx.jsonMode() {
				return writeJSON(cmd, summary)
			}
			printConvertSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&brands, "brand", "b", nil, "Convert only these brands (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Artifact format: typescript or json")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Extract and report without writing anything")
	return cmd
}

func runConvert(ctx context.Context, cfg *config.Config, logger *slog.Logger, dryRun bool) (*convertSummary, error) {
	format, err := render.ParseFormat(cfg.Output.Format)
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

	result, err := pipeline.New(src, opts, logger).Run(ctx)
	if err != nil {
		return nil, err
	}
	logger = logging.WithRunID(logging.NewComponentLogger(logger, "convert"), result.RunID)

	summary := newConvertSummary(result, src.Location(), cfg.Paths.OutputFile, format, dryRun)
	if dryRun {
		return summary, nil
	}

	data, err := render.Bytes(result.Catalog, format)
	if err != nil {
		return nil, err
	}
	writer, err := output.Open(ctx, cfg.Paths.OutputFile, cfg.S3, format.ContentType())
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}
	if err := writer.Write(ctx, data); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	logger.Info("library written",
		logging.String(logging.FieldEventType, "output_written"),
		logging.String("output", writer.Location()),
		logging.Int("bytes", len(data)),
	)

	if cfg.Paths.SnapshotDB != "" {
		changes, err := recordSnapshot(ctx, cfg.Paths.SnapshotDB, result, summary)
		if err != nil {
			logging.WarnWithContext(logger, "run history not recorded", "snapshot_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check paths.snapshot_db or delete the database"),
				logging.String(logging.FieldImpact, "runs and diffs will miss this conversion"),
			)
		} else {
			summary.Changes = changes
		}
	}

	if cfg.Metrics.Textfile != "" {
		recorder := metrics.NewRecorder()
		recorder.Record(result)
		if err := recorder.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logging.WarnWithContext(logger, "metrics not exported", "metrics_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "dashboards will show stale values"),
			)
		}
	}
	return summary, nil
}

func newConvertSummary(result *pipeline.Result, src, out string, format render.Format, dryRun bool) *convertSummary {
	summary := &convertSummary{
		RunID:       result.RunID,
		Source:      src,
		Output:      out,
		Format:      string(format),
		DryRun:      dryRun,
		TotalColors: result.Catalog.Count(),
	}
	for _, report := range result.Reports {
		bs := brandSummary{
			Brand:      report.Brand,
			Name:       report.Name,
			Colors:     report.Colors,
			Anchors:    report.Stats.Anchors,
			Duplicates: report.Stats.Duplicates,
			Repaired:   report.Stats.Repaired,
			ErrorKind:  report.Kind(),
		}
		if report.Err != nil {
			bs.Error = report.Err.Error()
		}
		summary.Brands = append(summary.Brands, bs)
	}
	return summary
}

func recordSnapshot(ctx context.Context, path string, result *pipeline.Result, summary *convertSummary) (*snapshot.Diff, error) {
	store, err := snapshot.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	run := snapshot.Run{
		ID:           result.RunID,
		StartedAt:    result.Started,
		FinishedAt:   result.Finished,
		Source:       summary.Source,
		Output:       summary.Output,
		Format:       summary.Format,
		TotalColors:  summary.TotalColors,
		FailedBrands: len(result.Failed()),
	}
	for _, bs := range summary.Brands {
		run.Brands = append(run.Brands, snapshot.BrandResult{
			Brand:      bs.Brand,
			Colors:     bs.Colors,
			Anchors:    bs.Anchors,
			Duplicates: bs.Duplicates,
			Repaired:   bs.Repaired,
			ErrorKind:  bs.ErrorKind,
			Error:      bs.Error,
		})
	}
	if err := store.SaveRun(ctx, run, result.Catalog.Libraries()); err != nil {
		return nil, err
	}

	prev, ok, err := store.PreviousRun(ctx, run.ID)
	if err != nil || !ok {
		return nil, err
	}
	diff, err := store.Diff(ctx, prev.ID, run.ID)
	if err != nil {
		return nil, err
	}
	return &diff, nil
}

func printConvertSummary(cmd *cobra.Command, summary *convertSummary) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	var duplicates, repaired int
	rows := make([][]string, 0, len(summary.Brands))
	for _, bs := range summary.Brands {
		duplicates += bs.Duplicates
		repaired += bs.Repaired
		rows = append(rows, []string{
			bs.Brand,
			bs.Name,
			strconv.Itoa(bs.Colors),
			strconv.Itoa(bs.Duplicates),
			strconv.Itoa(bs.Repaired),
			brandStatusLabel(bs.ErrorKind),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]column{leftCol("Brand"), leftCol("Name"), rightCol("Colors"), rightCol("Duplicates"), rightCol("Repaired"), leftCol("Status")},
		rows,
		"", "Total", strconv.Itoa(summary.TotalColors), strconv.Itoa(duplicates), strconv.Itoa(repaired),
	))

	for _, bs := range summary.Brands {
		if bs.ErrorKind != "" {
			fmt.Fprintln(out, renderStatusLine(bs.Name, brandStatusKind(bs.ErrorKind), bs.Error, colorize))
		}
	}

	fmt.Fprintln(out, renderStatusLine("Total", statusInfo, fmt.Sprintf("%d colors", summary.TotalColors), colorize))
	if summary.DryRun {
		fmt.Fprintln(out, renderStatusLine("Output", statusInfo, "dry run, nothing written", colorize))
	} else {
		fmt.Fprintln(out, renderStatusLine("Output", statusOK, summary.Output, colorize))
	}
	if summary.Changes != nil {
		d := summary.Changes
		kind := statusOK
		if !d.Empty() {
			kind = statusWarn
		}
		message := fmt.Sprintf("+%d -%d ~%d since run %s", len(d.Added), len(d.Removed), len(d.Changed), shortID(d.From))
		fmt.Fprintln(out, renderStatusLine("Changes", kind, message, colorize))
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"beadcolors/internal/snapshot"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect the history of conversions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(store *snapshot.Store) error {
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if ctx.jsonMode() {
					if runs == nil {
						runs = []snapshot.Run{}
					}
					return writeJSON(cmd, runs)
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						shortID(run.ID),
						run.StartedAt.Local().Format(time.DateTime),
						run.Format,
						strconv.Itoa(run.TotalColors),
						strconv.Itoa(run.FailedBrands),
						run.Output,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]column{leftCol("Run"), leftCol("Started"), leftCol("Format"), rightCol("Colors"), rightCol("Failed"), leftCol("Output")},
					rows,
				))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")

	cmd.AddCommand(newRunsShowCommand(ctx))
	cmd.AddCommand(newRunsDiffCommand(ctx))
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show per-brand results of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(store *snapshot.Store) error {
				id, err := resolveRunID(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				run, err := store.GetRun(cmd.Context(), id)
				if err != nil {
					return err
				}
				if ctx.jsonMode() {
					return writeJSON(cmd, run)
				}
				printRun(cmd.OutOrStdout(), run)
				return nil
			})
		},
	}
}

func newRunsDiffCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "diff [from] [to]",
		Short: "Compare the colors of two runs",
		Long: "Compare the colors of two runs. Without arguments the latest run is compared\n" +
			"with the one before it; with one argument that run is compared with the latest.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(store *snapshot.Store) error {
				from, to, err := diffEndpoints(cmd.Context(), store, args)
				if err != nil {
					return err
				}
				diff, err := store.Diff(cmd.Context(), from, to)
				if err != nil {
					return err
				}
				if ctx.jsonMode() {
					return writeJSON(cmd, diff)
				}
				printDiff(cmd.OutOrStdout(), diff)
				return nil
			})
		},
	}
}

// resolveRunID accepts a full id or the unique prefix shown by the list view.
func resolveRunID(ctx context.Context, store *snapshot.Store, value string) (string, error) {
	if _, err := store.GetRun(ctx, value); err == nil {
		return value, nil
	} else if !errors.Is(err, snapshot.ErrRunNotFound) {
		return "", err
	}
	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		return "", err
	}
	var match string
	for _, run := range runs {
		if len(run.ID) >= len(value) && run.ID[:len(value)] == value {
			if match != "" {
				return "", fmt.Errorf("run id %q is ambiguous", value)
			}
			match = run.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%s: %w", value, snapshot.ErrRunNotFound)
	}
	return match, nil
}

func diffEndpoints(ctx context.Context, store *snapshot.Store, args []string) (string, string, error) {
	if len(args) == 2 {
		from, err := resolveRunID(ctx, store, args[0])
		if err != nil {
			return "", "", err
		}
		to, err := resolveRunID(ctx, store, args[1])
		return from, to, err
	}

	latest, err := store.ListRuns(ctx, 1)
	if err != nil {
		return "", "", err
	}
	if len(latest) == 0 {
		return "", "", errors.New("no runs recorded")
	}
	to := latest[0].ID

	if len(args) == 1 {
		from, err := resolveRunID(ctx, store, args[0])
		return from, to, err
	}
	prev, ok, err := store.PreviousRun(ctx, to)
	if err != nil {
		return "", "", err
	}
	if !ok {
		return "", "", errors.New("only one run recorded; nothing to compare")
	}
	return prev.ID, to, nil
}

func printRun(out io.Writer, run snapshot.Run) {
	colorize := shouldColorize(out)
	for _, line := range renderSectionHeader("Run "+run.ID, colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Started", statusInfo, run.StartedAt.Local().Format(time.DateTime), colorize))
	fmt.Fprintln(out, renderStatusLine("Duration", statusInfo, run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String(), colorize))
	fmt.Fprintln(out, renderStatusLine("Source", statusInfo, run.Source, colorize))
	fmt.Fprintln(out, renderStatusLine("Output", statusInfo, run.Output+" ("+run.Format+")", colorize))
	if run.FailedBrands > 0 {
		fmt.Fprintln(out, renderStatusLine("Brands", statusWarn, fmt.Sprintf("%d failed", run.FailedBrands), colorize))
	}

	rows := make([][]string, 0, len(run.Brands))
	for _, br := range run.Brands {
		rows = append(rows, []string{
			br.Brand,
			strconv.Itoa(br.Colors),
			strconv.Itoa(br.Anchors),
			strconv.Itoa(br.Duplicates),
			strconv.Itoa(br.Repaired),
			brandStatusLabel(br.ErrorKind),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]column{leftCol("Brand"), rightCol("Colors"), rightCol("Anchors"), rightCol("Duplicates"), rightCol("Repaired"), leftCol("Status")},
		rows,
		"Total", strconv.Itoa(run.TotalColors),
	))
}

func printDiff(out io.Writer, diff snapshot.Diff) {
	if diff.Empty() {
		fmt.Fprintf(out, "No color changes between %s and %s\n", shortID(diff.From), shortID(diff.To))
		return
	}
	rows := make([][]string, 0, len(diff.Added)+len(diff.Removed)+len(diff.Changed))
	for _, c := range diff.Added {
		rows = append(rows, []string{"+", c.Brand, c.Code, "", "#" + c.After.Hex, c.After.Name})
	}
	for _, c := range diff.Removed {
		rows = append(rows, []string{"-", c.Brand, c.Code, "#" + c.Before.Hex, "", c.Before.Name})
	}
	for _, c := range diff.Changed {
		name := c.After.Name
		if c.Before.Name != c.After.Name {
			name = c.Before.Name + " -> " + c.After.Name
		}
		rows = append(rows, []string{"~", c.Brand, c.Code, "#" + c.Before.Hex, "#" + c.After.Hex, name})
	}
	fmt.Fprintln(out, renderTable(
		[]column{leftCol(""), leftCol("Brand"), leftCol("Code"), leftCol("Before"), leftCol("After"), leftCol("Name")},
		rows,
		fmt.Sprintf("+%d -%d ~%d", len(diff.Added), len(diff.Removed), len(diff.Changed)),
	))
}

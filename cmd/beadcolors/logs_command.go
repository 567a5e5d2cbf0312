package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"beadcolors/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var follow bool
	var lines int
	var filter logs.Filter

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Display the conversion log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.LogFile()
			if path == "" {
				return fmt.Errorf("logging to file is disabled (paths.log_dir is empty)")
			}

			filtered := filter != (logs.Filter{})
			opts := logs.TailOptions{Offset: -1, Limit: max(lines, 0)}
			if lines <= 0 || filtered {
				// Filters apply before the line limit, so read everything.
				opts = logs.TailOptions{Offset: 0}
			}

			out := cmd.OutOrStdout()
			result, err := logs.Tail(cmd.Context(), path, opts)
			if err != nil {
				return fmt.Errorf("tail logs: %w", err)
			}
			matched := selectLogLines(result.Lines, filter)
			if lines > 0 && len(matched) > lines {
				matched = matched[len(matched)-lines:]
			}
			printLogLines(out, matched, ctx.jsonMode())
			if !follow {
				if len(matched) == 0 {
					fmt.Fprintln(out, "No log entries available")
				}
				return nil
			}

			offset := result.Offset
			for {
				result, err := logs.Tail(cmd.Context(), path, logs.TailOptions{Offset: offset, Follow: true, Wait: time.Second})
				if err != nil {
					if cmd.Context().Err() != nil {
						return nil
					}
					return fmt.Errorf("tail logs: %w", err)
				}
				printLogLines(out, selectLogLines(result.Lines, filter), ctx.jsonMode())
				offset = result.Offset
			}
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow log output")
	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "Number of lines to show (0 for all)")
	cmd.Flags().StringVar(&filter.RunID, "run", "", "Only show entries of this run (id or prefix)")
	cmd.Flags().StringVarP(&filter.Brand, "brand", "b", "", "Only show entries for this brand")
	return cmd
}

// selectLogLines keeps lines accepted by filter. Lines that are not JSON pass
// only when no filter is set.
func selectLogLines(lines []string, filter logs.Filter) []string {
	var kept []string
	for _, line := range lines {
		entry, ok := logs.ParseEntry(line)
		if !ok {
			if filter == (logs.Filter{}) {
				kept = append(kept, line)
			}
			continue
		}
		if filter.Match(entry) {
			kept = append(kept, line)
		}
	}
	return kept
}

func printLogLines(out io.Writer, lines []string, raw bool) {
	for _, line := range lines {
		if !raw {
			if entry, ok := logs.ParseEntry(line); ok {
				line = entry.Format()
			}
		}
		fmt.Fprintln(out, line)
	}
}

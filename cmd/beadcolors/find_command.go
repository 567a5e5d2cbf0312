package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFindCommand(ctx *commandContext) *cobra.Command {
	var brandKey string

	cmd := &cobra.Command{
		Use:   "find <id>",
		Short: "Look a color up by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ctx.buildCatalog(cmd.Context())
			if err != nil {
				return err
			}
			color, ok := result.Catalog.FindColorByID(args[0], brandKey)
			if !ok {
				if brandKey != "" {
					return fmt.Errorf("color %q not found in %s", args[0], brandKey)
				}
				return fmt.Errorf("color %q not found", args[0])
			}
			if ctx.jsonMode() {
				return writeJSON(cmd, color)
			}
			fmt.Fprintln(cmd.OutOrStdout(), colorTable(colorSlice(color)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&brandKey, "brand", "b", "", "Only search this brand")
	return cmd
}

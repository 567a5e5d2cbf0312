package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"beadcolors/internal/palette"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var brandKey string

	cmd := &cobra.Command{
		Use:   "match <hex>",
		Short: "Find the perceptually closest bead color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := palette.ParseHex(args[0])
			if err != nil {
				return err
			}
			result, err := ctx.buildCatalog(cmd.Context())
			if err != nil {
				return err
			}
			match, err := result.Catalog.Nearest(target, brandKey)
			if err != nil {
				return err
			}
			if ctx.jsonMode() {
				return writeJSON(cmd, match)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]column{leftCol("Brand"), leftCol("ID"), leftCol("Name"), leftCol("Hex"), rightCol("ΔE")},
				[][]string{{
					match.Brand,
					match.Color.ID,
					match.Color.Name,
					formatHex(match.Color),
					strconv.FormatFloat(match.Distance, 'f', 2, 64),
				}},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&brandKey, "brand", "b", "", "Only match within this brand")
	return cmd
}

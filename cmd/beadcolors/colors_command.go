package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"beadcolors/internal/palette"
)

func newColorsCommand(ctx *commandContext) *cobra.Command {
	var brandKey string

	cmd := &cobra.Command{
		Use:   "colors",
		Short: "List the colors of one brand or of every brand",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ctx.buildCatalog(cmd.Context())
			if err != nil {
				return err
			}
			if brandKey != "" {
				if _, ok := result.Catalog.Library(brandKey); !ok {
					return fmt.Errorf("unknown brand %q (available: %s)", brandKey, strings.Join(result.Catalog.Brands(), ", "))
				}
			}
			colors := result.Catalog.AllColors(brandKey)
			if ctx.jsonMode() {
				return writeJSON(cmd, colors)
			}
			fmt.Fprintln(cmd.OutOrStdout(), colorTable(colors))
			return nil
		},
	}

	cmd.Flags().StringVarP(&brandKey, "brand", "b", "", "Only list this brand")
	return cmd
}

func colorTable(colors []palette.Color) string {
	rows := make([][]string, 0, len(colors))
	for _, c := range colors {
		rows = append(rows, []string{c.ID, c.Code, c.Name, formatHex(c), formatRGB(c.RGB())})
	}
	return renderTable(
		[]column{leftCol("ID"), leftCol("Code"), leftCol("Name"), leftCol("Hex"), rightCol("RGB")},
		rows,
	)
}

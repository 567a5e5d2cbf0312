package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// column describes one table column; counts and distances align right.
type column struct {
	header string
	align  columnAlignment
}

func leftCol(header string) column  { return column{header: header, align: alignLeft} }
func rightCol(header string) column { return column{header: header, align: alignRight} }

// renderTable draws rows under columns. Short rows are padded with empty
// cells and an optional footer row (totals) is drawn below the body.
func renderTable(columns []column, rows [][]string, footer ...string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	configs := make([]table.ColumnConfig, len(columns))
	header := make(table.Row, len(columns))
	for i, col := range columns {
		header[i] = col.header
		align := text.AlignLeft
		if col.align == alignRight {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft, AlignFooter: align}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		tw.AppendRow(padRow(row, len(columns)))
	}
	if len(footer) > 0 {
		tw.AppendFooter(padRow(footer, len(columns)))
	}
	return tw.Render()
}

func padRow(cells []string, width int) table.Row {
	row := make(table.Row, width)
	for i := range row {
		row[i] = ""
		if i < len(cells) {
			row[i] = cells[i]
		}
	}
	return row
}

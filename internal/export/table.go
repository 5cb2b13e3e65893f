package export

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// WriteTable renders rows as an aligned terminal table.
func WriteTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewTable(w)

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	table.Header(header...)

	for _, row := range rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}

package reports

import (
	"encoding/csv"
	"strings"
)

// EncodeCSV writes the column row, the data rows, a blank line and the
// summary block. Fields are quoted per RFC 4180 when they contain a comma,
// a quote or a line break.
func EncodeCSV(r *Report) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	records := make([][]string, 0, len(r.Rows)+len(r.Summary)+3)
	records = append(records, r.Columns)
	for _, row := range r.Rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = cell.Value
		}
		records = append(records, record)
	}

	records = append(records, []string{}, []string{"Summary"})
	for _, line := range r.Summary {
		records = append(records, []string{line.Label, line.Value})
	}

	if err := w.WriteAll(records); err != nil {
		return "", err
	}
	return b.String(), nil
}

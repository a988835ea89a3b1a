package reports

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

// RenderXLSX writes the report to a single-sheet workbook: columns in row 1,
// data rows below, then a blank row and the summary block.
func RenderXLSX(r *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := make([]interface{}, len(r.Columns))
	for i, col := range r.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	row := 2
	for _, cells := range r.Rows {
		values := make([]interface{}, len(cells))
		for i, cell := range cells {
			values[i] = cell.Value
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
		row++
	}

	row++
	if err := f.SetCellValue(sheet, mustCell(1, row), "Summary"); err != nil {
		return nil, err
	}
	for _, line := range r.Summary {
		row++
		values := []interface{}{line.Label, line.Value}
		if err := f.SetSheetRow(sheet, mustCell(1, row), &values); err != nil {
			return nil, err
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mustCell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

package parser

import (
	"fmt"

	"github.com/SStyles93/csvxl/pkg/csvxl/model"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook loads an xlsx file into the model, keeping sheet order.
// The first row of each sheet is its header. Cell values go through
// ParseValue; rows shorter than the header are padded with nil, and rows
// wider than it widen the column list with generated names.
func ReadWorkbook(path string) (*model.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb := model.NewWorkbook()
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
		}
		wb.Set(tableFromRows(sheetName, rows))
	}
	return wb, nil
}

// tableFromRows builds a table from raw sheet rows.
func tableFromRows(name string, rows [][]string) *model.Table {
	if len(rows) == 0 {
		return model.NewTable(name, nil)
	}
	width := len(rows[0])
	for _, record := range rows[1:] {
		if len(record) > width {
			width = len(record)
		}
	}
	columns := normalizeColumns(rows[0], width)

	t := model.NewTable(name, columns)
	for _, record := range rows[1:] {
		row := make(model.Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = ParseValue(record[i])
			} else {
				row[col] = nil
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

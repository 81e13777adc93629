// Package output writes csvxl workbooks to xlsx files.
package output

import (
	"fmt"

	"github.com/SStyles93/csvxl/pkg/csvxl/model"
	"github.com/xuri/excelize/v2"
)

// WriteWorkbook writes every sheet of wb to an xlsx file at path, streaming
// rows sheet by sheet. Sheet names must already be valid for Excel; see
// SanitizeSheetName.
func WriteWorkbook(wb *model.Workbook, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetList()[0]
	names := wb.Names()
	for _, name := range names {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
	}
	if len(names) > 0 && !containsName(names, defaultSheet) {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return err
		}
	}

	for _, t := range wb.Tables() {
		if err := writeSheet(f, t); err != nil {
			return fmt.Errorf("sheet %q: %w", t.Name, err)
		}
	}

	if len(names) > 0 {
		if index, err := f.GetSheetIndex(names[0]); err == nil && index >= 0 {
			f.SetActiveSheet(index)
		}
	}
	return f.SaveAs(path)
}

// writeSheet streams the header row and data rows of one table.
func writeSheet(f *excelize.File, t *model.Table) error {
	if len(t.Columns) == 0 {
		return nil
	}
	sw, err := f.NewStreamWriter(t.Name)
	if err != nil {
		return err
	}

	header := make([]interface{}, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for n, row := range t.Rows {
		values := make([]interface{}, len(t.Columns))
		for i, col := range t.Columns {
			values[i] = row[col]
		}
		cell := fmt.Sprintf("A%d", n+2)
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
	}
	return sw.Flush()
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

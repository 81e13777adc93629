package output

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/SStyles93/csvxl/pkg/csvxl/model"
	"github.com/SStyles93/csvxl/pkg/csvxl/parser"
)

func buildWorkbook() *model.Workbook {
	report := model.NewTable("Report", []string{"id", "note", "score"})
	report.Rows = []model.Row{
		{"id": int64(1), "note": "first", "score": 2.5},
		{"id": int64(2), "note": nil, "score": int64(10)},
	}

	data := model.NewTable("Data", []string{"k"})
	data.Rows = []model.Row{{"k": "v"}}

	wb := model.NewWorkbook()
	wb.Set(report)
	wb.Set(data)
	return wb
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := WriteWorkbook(buildWorkbook(), path); err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open written file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Report" || sheets[1] != "Data" {
		t.Fatalf("Expected sheets [Report Data], got %v", sheets)
	}

	rows, err := f.GetRows("Report")
	if err != nil {
		t.Fatalf("Failed to read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "id" || rows[0][1] != "note" || rows[0][2] != "score" {
		t.Errorf("Unexpected header: %v", rows[0])
	}
	if rows[1][0] != "1" || rows[1][1] != "first" || rows[1][2] != "2.5" {
		t.Errorf("Unexpected first row: %v", rows[1])
	}
	// The nil cell in the middle column must stay empty
	if rows[2][1] != "" {
		t.Errorf("Expected empty cell for nil value, got %q", rows[2][1])
	}
}

func TestWriteWorkbook_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.xlsx")
	if err := WriteWorkbook(buildWorkbook(), path); err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}

	wb, err := parser.ReadWorkbook(path)
	if err != nil {
		t.Fatalf("ReadWorkbook failed: %v", err)
	}

	tbl, ok := wb.Get("Report")
	if !ok {
		t.Fatal("Expected Report sheet after round trip")
	}
	if tbl.Rows[0]["id"] != int64(1) {
		t.Errorf("Expected int64(1), got %v (type: %T)", tbl.Rows[0]["id"], tbl.Rows[0]["id"])
	}
	if tbl.Rows[0]["score"] != 2.5 {
		t.Errorf("Expected 2.5, got %v", tbl.Rows[0]["score"])
	}
	if tbl.Rows[1]["note"] != nil {
		t.Errorf("Expected nil note, got %v", tbl.Rows[1]["note"])
	}
}

func TestWriteWorkbook_KeepsMatchingDefaultSheet(t *testing.T) {
	wb := model.NewWorkbook()
	tbl := model.NewTable("Sheet1", []string{"a"})
	tbl.Rows = []model.Row{{"a": int64(1)}}
	wb.Set(tbl)

	path := filepath.Join(t.TempDir(), "default.xlsx")
	if err := WriteWorkbook(wb, path); err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open written file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Sheet1" {
		t.Errorf("Expected single Sheet1, got %v", sheets)
	}
}

func TestWriteWorkbook_EmptyTable(t *testing.T) {
	wb := model.NewWorkbook()
	wb.Set(model.NewTable("Empty", nil))

	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := WriteWorkbook(wb, path); err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open written file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Empty" {
		t.Fatalf("Expected single Empty sheet, got %v", sheets)
	}
	rows, err := f.GetRows("Empty")
	if err != nil {
		t.Fatalf("Failed to read rows: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected no rows, got %v", rows)
	}
}

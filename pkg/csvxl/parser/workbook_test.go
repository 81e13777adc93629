package parser

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadWorkbook(t *testing.T) {
	// Create a temporary Excel file for testing
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "id")
	f.SetCellValue("Sheet1", "B1", "name")
	f.SetCellValue("Sheet1", "C1", "score")
	f.SetCellValue("Sheet1", "A2", 1)
	f.SetCellValue("Sheet1", "B2", "x")
	f.SetCellValue("Sheet1", "C2", 2.5)
	// Second data row only has the first cell
	f.SetCellValue("Sheet1", "A3", 2)

	if _, err := f.NewSheet("Extra"); err != nil {
		t.Fatalf("Failed to create sheet: %v", err)
	}
	f.SetCellValue("Extra", "A1", "k")
	f.SetCellValue("Extra", "A2", "v")

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	wb, err := ReadWorkbook(tmpFile)
	if err != nil {
		t.Fatalf("ReadWorkbook failed: %v", err)
	}

	names := wb.Names()
	if len(names) != 2 || names[0] != "Sheet1" || names[1] != "Extra" {
		t.Fatalf("Expected sheets [Sheet1 Extra], got %v", names)
	}

	tbl, _ := wb.Get("Sheet1")
	if len(tbl.Columns) != 3 {
		t.Fatalf("Expected 3 columns, got %v", tbl.Columns)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(tbl.Rows))
	}
	if tbl.Rows[0]["id"] != int64(1) {
		t.Errorf("Expected int64(1), got %v (type: %T)", tbl.Rows[0]["id"], tbl.Rows[0]["id"])
	}
	if tbl.Rows[0]["score"] != 2.5 {
		t.Errorf("Expected 2.5, got %v", tbl.Rows[0]["score"])
	}
	if v, ok := tbl.Rows[1]["name"]; !ok || v != nil {
		t.Errorf("Expected nil padding for short row, got %v (present: %v)", v, ok)
	}

	extra, _ := wb.Get("Extra")
	if len(extra.Rows) != 1 || extra.Rows[0]["k"] != "v" {
		t.Errorf("Expected single row k=v, got %v", extra.Rows)
	}
}

func TestReadWorkbook_EmptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	tmpFile := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	wb, err := ReadWorkbook(tmpFile)
	if err != nil {
		t.Fatalf("ReadWorkbook failed: %v", err)
	}
	tbl, ok := wb.Get("Sheet1")
	if !ok {
		t.Fatal("Expected empty sheet to be present")
	}
	if len(tbl.Columns) != 0 || len(tbl.Rows) != 0 {
		t.Errorf("Expected empty table, got columns %v rows %v", tbl.Columns, tbl.Rows)
	}
}

func TestReadWorkbook_RowWiderThanHeader(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "a")
	f.SetCellValue("Sheet1", "A2", 1)
	f.SetCellValue("Sheet1", "B2", 2)

	tmpFile := filepath.Join(t.TempDir(), "wide.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	wb, err := ReadWorkbook(tmpFile)
	if err != nil {
		t.Fatalf("ReadWorkbook failed: %v", err)
	}
	tbl, _ := wb.Get("Sheet1")
	if len(tbl.Columns) != 2 || tbl.Columns[1] != "Unnamed: 1" {
		t.Fatalf("Expected generated column for wide row, got %v", tbl.Columns)
	}
	if tbl.Rows[0]["Unnamed: 1"] != int64(2) {
		t.Errorf("Expected int64(2), got %v", tbl.Rows[0]["Unnamed: 1"])
	}
}

func TestReadWorkbook_MissingFile(t *testing.T) {
	if _, err := ReadWorkbook(filepath.Join(t.TempDir(), "absent.xlsx")); err == nil {
		t.Error("Expected error for missing file")
	}
}

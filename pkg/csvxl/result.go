package csvxl

import "fmt"

// Result summarizes a conversion run.
type Result struct {
	// Mode is the conversion strategy that ran.
	Mode Mode
	// OutputFiles lists every workbook written.
	OutputFiles []string
	// SheetsWritten counts sheets across all output files.
	SheetsWritten int
	// FilesProcessed counts the CSV files read.
	FilesProcessed int
	// RowsAdded counts rows accepted across all sheets.
	RowsAdded int
	// DuplicatesSkipped counts rows dropped as already present.
	DuplicatesSkipped int
}

// Summary returns a one-line human-readable account of the run.
func (r *Result) Summary() string {
	switch r.Mode {
	case ModeAppend:
		return fmt.Sprintf("Appended to %s: added %d new rows, skipped %d duplicates",
			r.OutputFiles[0], r.RowsAdded, r.DuplicatesSkipped)
	case ModeSeparate:
		return fmt.Sprintf("Converted %d files into %d workbooks",
			r.FilesProcessed, len(r.OutputFiles))
	default:
		return fmt.Sprintf("Created %s with %d sheets from %d files",
			r.OutputFiles[0], r.SheetsWritten, r.FilesProcessed)
	}
}

package merge

import "github.com/SStyles93/csvxl/pkg/csvxl/model"

// unknownSource back-fills the provenance column on rows that predate it.
const unknownSource = "Unknown"

// SheetBatch carries the candidate tables destined for one sheet, in
// file/group order.
type SheetBatch struct {
	// Sheet is the destination sheet name.
	Sheet string
	// Tables are the candidate tables in merge order.
	Tables []*model.Table
}

// SheetStats describes the merge outcome for one sheet.
type SheetStats struct {
	// Sheet is the destination sheet name.
	Sheet string
	// Existed reports whether the sheet already existed when the batch
	// was merged.
	Existed bool
	// RowsAdded is the number of candidate rows accepted.
	RowsAdded int
	// Duplicates is the number of candidate rows dropped.
	Duplicates int
	// ColumnMismatch reports that at least one candidate table fell back
	// to pass-through because its column set did not match.
	ColumnMismatch bool
}

// MergeStats aggregates the per-sheet outcomes of one merge run.
type MergeStats struct {
	// Sheets holds one entry per non-empty batch, in batch order.
	Sheets []SheetStats
	// RowsAdded is the total number of rows accepted.
	RowsAdded int
	// Duplicates is the total number of rows dropped.
	Duplicates int
}

// Merger folds batches of candidate tables into a workbook.
type Merger struct {
	// Resolver decides which candidate rows are new.
	Resolver Resolver
	// SourceColumn, when set, names a provenance column ensured on every
	// existing destination sheet and excluded from duplicate comparison.
	SourceColumn string
}

// MergeIntoWorkbook merges each batch into a clone of its destination sheet
// and returns a workbook holding only the updated sheets, in batch order.
// existing may be nil. Sheets without a batch are never touched, and an
// empty batch is skipped. Later tables are filtered against rows accepted
// earlier in the run, within a batch and across batches naming the same
// sheet, so a row arriving twice in one run lands once.
func (m Merger) MergeIntoWorkbook(existing *model.Workbook, batches []SheetBatch) (*model.Workbook, MergeStats, error) {
	resolver := m.Resolver
	if m.SourceColumn != "" {
		resolver.IgnoreColumns = append(append([]string{}, resolver.IgnoreColumns...), m.SourceColumn)
	}

	updated := model.NewWorkbook()
	var stats MergeStats
	for _, batch := range batches {
		if len(batch.Tables) == 0 {
			continue
		}
		dest, existed := m.destination(existing, updated, batch)
		ss := SheetStats{Sheet: batch.Sheet, Existed: existed}
		for _, table := range batch.Tables {
			accepted, fs, err := resolver.FilterNew(dest, table)
			if err != nil {
				return nil, stats, err
			}
			appendRows(dest, accepted)
			ss.RowsAdded += fs.NewRows
			ss.Duplicates += fs.Duplicates
			if fs.ColumnMismatch {
				ss.ColumnMismatch = true
			}
		}
		updated.Set(dest)
		stats.Sheets = append(stats.Sheets, ss)
		stats.RowsAdded += ss.RowsAdded
		stats.Duplicates += ss.Duplicates
	}
	return updated, stats, nil
}

// destination returns the working table for the batch's sheet: the table an
// earlier batch of this run already updated, a clone of the existing sheet,
// or a fresh table with the incoming columns.
func (m Merger) destination(existing, updated *model.Workbook, batch SheetBatch) (*model.Table, bool) {
	if t, ok := updated.Get(batch.Sheet); ok {
		return t, true
	}
	if existing != nil {
		if t, ok := existing.Get(batch.Sheet); ok {
			dest := t.Clone()
			m.ensureSourceColumn(dest)
			return dest, true
		}
	}
	return model.NewTable(batch.Sheet, batch.Tables[0].Columns), false
}

// ensureSourceColumn adds the provenance column to a pre-existing table,
// marking rows that predate it.
func (m Merger) ensureSourceColumn(t *model.Table) {
	if m.SourceColumn == "" || t.HasColumn(m.SourceColumn) {
		return
	}
	t.AddColumn(m.SourceColumn)
	for _, row := range t.Rows {
		row[m.SourceColumn] = unknownSource
	}
}

// appendRows appends the accepted rows to dest, widening dest with any
// columns only the accepted table has. Rows are copied, never aliased.
func appendRows(dest, accepted *model.Table) {
	for _, col := range accepted.Columns {
		dest.AddColumn(col)
	}
	for _, row := range accepted.Rows {
		dest.AppendRow(row)
	}
}

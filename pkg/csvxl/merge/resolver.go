package merge

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/SStyles93/csvxl/pkg/csvxl/model"
)

// DuplicateKey is an ordered list of column names identifying a row for
// duplicate comparison. An empty key means whole-row comparison.
type DuplicateKey []string

// FilterStats describes one resolver pass.
type FilterStats struct {
	// CandidateRows is the number of rows offered.
	CandidateRows int
	// NewRows is the number of rows that passed the filter.
	NewRows int
	// Duplicates is the number of rows dropped as already present.
	Duplicates int
	// ColumnMismatch reports the whole-row fallback taken when the two
	// tables do not share one column set: every candidate row passes.
	ColumnMismatch bool
}

// Resolver filters candidate rows against an existing table.
type Resolver struct {
	// Key lists the columns identifying a row. Empty means whole-row
	// comparison.
	Key DuplicateKey
	// IgnoreColumns are excluded from whole-row comparison, typically a
	// provenance column.
	IgnoreColumns []string
}

// FilterNew returns the candidate rows not already present in existing,
// preserving candidate order. Rows repeated inside the candidate itself are
// all kept; the filter only consults the existing table.
func (r Resolver) FilterNew(existing, candidate *model.Table) (*model.Table, FilterStats, error) {
	stats := FilterStats{CandidateRows: len(candidate.Rows)}
	out := model.NewTable(candidate.Name, candidate.Columns)

	var cols []string
	if len(r.Key) > 0 {
		keyCols, err := r.keyColumns(existing, candidate)
		if err != nil {
			return nil, stats, err
		}
		cols = keyCols
	} else {
		shared, ok := r.comparableColumns(existing, candidate)
		if !ok {
			// Different column sets leave no reliable row identity, so
			// every candidate row counts as new.
			stats.ColumnMismatch = true
			for _, row := range candidate.Rows {
				out.AppendRow(row)
			}
			stats.NewRows = len(out.Rows)
			return out, stats, nil
		}
		cols = shared
	}

	seen := tupleSet(existing.Rows, cols)
	for _, row := range candidate.Rows {
		if seen[encodeTuple(row, cols)] {
			stats.Duplicates++
			continue
		}
		out.AppendRow(row)
		stats.NewRows++
	}
	return out, stats, nil
}

// keyColumns validates the key against both tables.
func (r Resolver) keyColumns(existing, candidate *model.Table) ([]string, error) {
	sheet := existing.Name
	if sheet == "" {
		sheet = candidate.Name
	}
	for _, col := range r.Key {
		if !existing.HasColumn(col) || !candidate.HasColumn(col) {
			return nil, &MissingKeyColumnError{Sheet: sheet, Column: col}
		}
	}
	return []string(r.Key), nil
}

// comparableColumns returns the candidate's columns minus the ignored ones,
// or ok=false when existing does not carry the same column set.
func (r Resolver) comparableColumns(existing, candidate *model.Table) ([]string, bool) {
	ignore := make(map[string]bool, len(r.IgnoreColumns))
	for _, col := range r.IgnoreColumns {
		ignore[col] = true
	}
	cols := make([]string, 0, len(candidate.Columns))
	set := make(map[string]bool, len(candidate.Columns))
	for _, col := range candidate.Columns {
		if ignore[col] {
			continue
		}
		cols = append(cols, col)
		set[col] = true
	}
	n := 0
	for _, col := range existing.Columns {
		if ignore[col] {
			continue
		}
		if !set[col] {
			return nil, false
		}
		n++
	}
	if n != len(cols) {
		return nil, false
	}
	return cols, true
}

func tupleSet(rows []model.Row, cols []string) map[string]bool {
	set := make(map[string]bool, len(rows))
	for _, row := range rows {
		set[encodeTuple(row, cols)] = true
	}
	return set
}

// encodeTuple builds a set key from the row's values in the given columns.
// Column values align by name, so tables whose columns agree as sets compare
// the same regardless of column order.
func encodeTuple(row model.Row, cols []string) string {
	var b strings.Builder
	for i, col := range cols {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		b.WriteString(encodeValue(row[col]))
	}
	return b.String()
}

// encodeValue renders one cell for tuple comparison. Values carry a type tag
// so the string "1" never matches the number 1. Integral floats inside
// float64's exact integer range share the integer form because a numeric
// cell round-trips through xlsx as an int. Strings are quoted, which keeps
// the 0x1f field separator unambiguous.
func encodeValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "_"
	case bool:
		if x {
			return "b1"
		}
		return "b0"
	case int64:
		return "n" + strconv.FormatInt(x, 10)
	case float64:
		if x == math.Trunc(x) && math.Abs(x) <= 1<<53 {
			return "n" + strconv.FormatInt(int64(x), 10)
		}
		return "n" + strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return "s" + strconv.Quote(x)
	default:
		return "v" + strconv.Quote(fmt.Sprint(x))
	}
}

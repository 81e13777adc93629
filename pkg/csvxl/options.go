// Package csvxl converts CSV exports into Excel workbooks, merging files
// that belong together and skipping rows a workbook already has.
package csvxl

import (
	"log/slog"
	"strings"
)

// Mode represents the conversion strategy derived from the options.
type Mode string

const (
	// ModeCombine writes every input group as one sheet of a single workbook.
	ModeCombine Mode = "combine"
	// ModeSeparate writes one workbook file per input group.
	ModeSeparate Mode = "separate"
	// ModeAppend merges the inputs into an existing workbook.
	ModeAppend Mode = "append"
)

// DefaultWorkers bounds concurrent CSV reads when Options.Workers is unset.
const DefaultWorkers = 4

// Options configures a conversion run.
type Options struct {
	// Combine selects one combined workbook over per-group files.
	// Ignored in append mode, which always targets a single workbook.
	Combine bool
	// DetectSimilar groups files sharing a derived base name into one
	// sheet. When false, every file is its own group.
	DetectSimilar bool
	// KeyColumns identify a row for duplicate filtering. Empty means
	// whole-row comparison.
	KeyColumns []string
	// SheetNames overrides derived sheet names by group index. Blank
	// entries keep the derived name.
	SheetNames []string
	// SourceColumn, when set, names a provenance column stamped with each
	// row's source file and excluded from duplicate comparison.
	SourceColumn string
	// ExistingPath selects append mode: the workbook to merge into.
	ExistingPath string
	// Override writes the merged workbook back to ExistingPath instead
	// of OutputPath.
	Override bool
	// OutputPath is the output file, or the output directory in separate
	// mode.
	OutputPath string
	// ExtraPatterns are additional trailing-token patterns for base-name
	// derivation, applied after the built-in rules.
	ExtraPatterns []string
	// Workers bounds concurrent CSV reads. Non-positive means
	// DefaultWorkers.
	Workers int
	// OnProgress, when set, receives progress events during conversion.
	OnProgress ProgressFunc
	// Logger receives conversion logs. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns the default conversion options.
func DefaultOptions() Options {
	return Options{
		Combine: true,
	}
}

// Mode returns the conversion strategy the options select.
func (o Options) Mode() Mode {
	if o.ExistingPath != "" {
		return ModeAppend
	}
	if o.Combine {
		return ModeCombine
	}
	return ModeSeparate
}

// workers returns the effective read concurrency.
func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return DefaultWorkers
}

// sheetNameFor returns the configured name for group index i, or "" when
// the derived name should be used.
func (o Options) sheetNameFor(i int) string {
	if i < len(o.SheetNames) {
		return strings.TrimSpace(o.SheetNames[i])
	}
	return ""
}

package csvxl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/SStyles93/csvxl/pkg/csvxl/merge"
	"github.com/SStyles93/csvxl/pkg/csvxl/model"
	"github.com/SStyles93/csvxl/pkg/csvxl/output"
	"github.com/SStyles93/csvxl/pkg/csvxl/parser"
)

// Converter runs CSV to Excel conversions with a fixed set of options.
type Converter struct {
	opts    Options
	log     *slog.Logger
	grouper *merge.Grouper
}

// New creates a converter, compiling any extra grouping patterns and
// validating the option combination.
func New(opts Options) (*Converter, error) {
	grouper, err := merge.NewGrouper(opts.ExtraPatterns...)
	if err != nil {
		return nil, err
	}
	if opts.Mode() == ModeAppend {
		if !opts.Override && opts.OutputPath == "" {
			return nil, fmt.Errorf("append mode needs an output path or override")
		}
	} else if opts.OutputPath == "" {
		return nil, fmt.Errorf("output path not set")
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{opts: opts, log: log, grouper: grouper}, nil
}

// Convert converts the given CSV files and directories. Directories are
// scanned recursively. The context is honored between files and sheets; a
// cancelled context aborts the run with its error.
func (c *Converter) Convert(ctx context.Context, inputs []string) (*Result, error) {
	paths, err := c.expandInputs(inputs)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, ErrNoInput
	}

	groups := c.groupInputs(paths)
	tables, err := c.readSources(ctx, paths)
	if err != nil {
		return nil, err
	}

	switch c.opts.Mode() {
	case ModeAppend:
		return c.convertAppend(ctx, groups, tables, len(paths))
	case ModeSeparate:
		return c.convertSeparate(ctx, groups, tables, len(paths))
	default:
		return c.convertCombine(ctx, groups, tables, len(paths))
	}
}

// expandInputs resolves directories into their CSV files.
func (c *Converter) expandInputs(inputs []string) ([]string, error) {
	var paths []string
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := DiscoverCSVFiles(input)
			if err != nil {
				return nil, err
			}
			c.log.Info("scanned folder", "path", input, "files", len(found))
			paths = append(paths, found...)
			continue
		}
		paths = append(paths, input)
	}
	return paths, nil
}

// groupInputs clusters the inputs by base name, or makes one group per file
// when similar-file detection is off.
func (c *Converter) groupInputs(paths []string) []merge.FileGroup {
	if c.opts.DetectSimilar {
		groups := c.grouper.GroupFiles(paths)
		for _, g := range groups {
			if len(g.Paths) > 1 {
				c.log.Info("grouped similar files", "base", g.BaseName, "files", len(g.Paths))
			}
		}
		return groups
	}
	groups := make([]merge.FileGroup, len(paths))
	for i, p := range paths {
		groups[i] = merge.FileGroup{BaseName: fileStem(p), Paths: []string{p}}
	}
	return groups
}

// readSources reads every source file concurrently, bounded by the
// configured worker count.
func (c *Converter) readSources(ctx context.Context, paths []string) (map[string]*model.Table, error) {
	tables := make([]*model.Table, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.workers())

	var mu sync.Mutex
	done := 0
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := parser.ReadCSV(path, fileStem(path))
			if err != nil {
				return NewConvertError(path, StageRead, err)
			}
			mu.Lock()
			tables[i] = t
			done++
			c.emitProgress(ProgressEvent{Stage: StageRead, Target: path, Done: done, Total: len(paths)})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byPath := make(map[string]*model.Table, len(paths))
	for i, path := range paths {
		byPath[path] = tables[i]
	}
	return byPath, nil
}

func (c *Converter) convertCombine(ctx context.Context, groups []merge.FileGroup, tables map[string]*model.Table, files int) (*Result, error) {
	batches := c.freshBatches(groups, tables)
	updated, stats, err := c.mergeBatches(ctx, nil, batches)
	if err != nil {
		return nil, err
	}
	final := merge.Reconcile(nil, updated)
	if err := c.writeWorkbook(ctx, final, c.opts.OutputPath); err != nil {
		return nil, err
	}
	c.emitProgress(ProgressEvent{Stage: StageWrite, Target: c.opts.OutputPath, Done: 1, Total: 1})
	return &Result{
		Mode:              ModeCombine,
		OutputFiles:       []string{c.opts.OutputPath},
		SheetsWritten:     final.Len(),
		FilesProcessed:    files,
		RowsAdded:         stats.RowsAdded,
		DuplicatesSkipped: stats.Duplicates,
	}, nil
}

func (c *Converter) convertSeparate(ctx context.Context, groups []merge.FileGroup, tables map[string]*model.Table, files int) (*Result, error) {
	if err := os.MkdirAll(c.opts.OutputPath, 0755); err != nil {
		return nil, err
	}
	res := &Result{Mode: ModeSeparate, FilesProcessed: files}
	for i, group := range groups {
		batch := merge.SheetBatch{
			Sheet:  c.sheetName(i, group.BaseName),
			Tables: c.groupTables(group, tables),
		}
		updated, stats, err := c.mergeBatches(ctx, nil, []merge.SheetBatch{batch})
		if err != nil {
			return nil, err
		}
		final := merge.Reconcile(nil, updated)
		path := filepath.Join(c.opts.OutputPath, separateFileName(group))
		if err := c.writeWorkbook(ctx, final, path); err != nil {
			return nil, err
		}
		c.emitProgress(ProgressEvent{Stage: StageWrite, Target: path, Done: i + 1, Total: len(groups)})
		res.OutputFiles = append(res.OutputFiles, path)
		res.SheetsWritten += final.Len()
		res.RowsAdded += stats.RowsAdded
		res.DuplicatesSkipped += stats.Duplicates
	}
	return res, nil
}

func (c *Converter) convertAppend(ctx context.Context, groups []merge.FileGroup, tables map[string]*model.Table, files int) (*Result, error) {
	existing, err := parser.ReadWorkbook(c.opts.ExistingPath)
	if err != nil {
		return nil, NewConvertError(c.opts.ExistingPath, StageRead, err)
	}
	batches := c.appendBatches(groups, tables)
	updated, stats, err := c.mergeBatches(ctx, existing, batches)
	if err != nil {
		return nil, err
	}
	final := merge.Reconcile(existing, updated)

	outPath := c.opts.OutputPath
	if c.opts.Override {
		outPath = c.opts.ExistingPath
	}
	if err := c.writeWorkbook(ctx, final, outPath); err != nil {
		return nil, err
	}
	c.emitProgress(ProgressEvent{Stage: StageWrite, Target: outPath, Done: 1, Total: 1})
	return &Result{
		Mode:              ModeAppend,
		OutputFiles:       []string{outPath},
		SheetsWritten:     final.Len(),
		FilesProcessed:    files,
		RowsAdded:         stats.RowsAdded,
		DuplicatesSkipped: stats.Duplicates,
	}, nil
}

// mergeBatches folds the batches one sheet at a time so cancellation takes
// effect between sheets.
func (c *Converter) mergeBatches(ctx context.Context, existing *model.Workbook, batches []merge.SheetBatch) (*model.Workbook, merge.MergeStats, error) {
	merger := merge.Merger{
		Resolver:     merge.Resolver{Key: merge.DuplicateKey(c.opts.KeyColumns)},
		SourceColumn: c.opts.SourceColumn,
	}
	updated := model.NewWorkbook()
	var stats merge.MergeStats
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		part, ps, err := merger.MergeIntoWorkbook(existing, []merge.SheetBatch{batch})
		if err != nil {
			return nil, stats, NewConvertError(batch.Sheet, StageMerge, err)
		}
		for _, t := range part.Tables() {
			updated.Set(t)
		}
		for _, ss := range ps.Sheets {
			if ss.ColumnMismatch {
				c.log.Warn("column sets differ, keeping all candidate rows", "sheet", ss.Sheet)
			}
			c.log.Debug("merged sheet", "sheet", ss.Sheet, "added", ss.RowsAdded, "duplicates", ss.Duplicates)
		}
		stats.Sheets = append(stats.Sheets, ps.Sheets...)
		stats.RowsAdded += ps.RowsAdded
		stats.Duplicates += ps.Duplicates
		c.emitProgress(ProgressEvent{Stage: StageMerge, Target: batch.Sheet, Done: i + 1, Total: len(batches)})
	}
	return updated, stats, nil
}

// freshBatches assembles one batch per group, uniquifying sanitized sheet
// names so distinct groups never land on one sheet.
func (c *Converter) freshBatches(groups []merge.FileGroup, tables map[string]*model.Table) []merge.SheetBatch {
	batches := make([]merge.SheetBatch, 0, len(groups))
	used := make(map[string]bool, len(groups))
	for i, group := range groups {
		name := output.UniqueSheetName(c.sheetName(i, group.BaseName), used)
		used[name] = true
		batches = append(batches, merge.SheetBatch{
			Sheet:  name,
			Tables: c.groupTables(group, tables),
		})
	}
	return batches
}

// appendBatches assembles batches keyed by target sheet. Groups resolving
// to the same sheet fold into one batch, so their rows still dedup against
// each other.
func (c *Converter) appendBatches(groups []merge.FileGroup, tables map[string]*model.Table) []merge.SheetBatch {
	var batches []merge.SheetBatch
	index := make(map[string]int, len(groups))
	for i, group := range groups {
		name := c.sheetName(i, group.BaseName)
		j, ok := index[name]
		if !ok {
			j = len(batches)
			index[name] = j
			batches = append(batches, merge.SheetBatch{Sheet: name})
		}
		batches[j].Tables = append(batches[j].Tables, c.groupTables(group, tables)...)
	}
	return batches
}

// sheetName resolves the sheet name for group i: the configured override or
// the derived base, sanitized for Excel.
func (c *Converter) sheetName(i int, base string) string {
	name := c.opts.sheetNameFor(i)
	if name == "" {
		name = base
	}
	return output.SanitizeSheetName(name)
}

// groupTables returns the group's tables in file order, stamped with the
// provenance column when configured.
func (c *Converter) groupTables(group merge.FileGroup, tables map[string]*model.Table) []*model.Table {
	out := make([]*model.Table, 0, len(group.Paths))
	for _, path := range group.Paths {
		t := tables[path]
		if c.opts.SourceColumn != "" {
			t = stampSource(t, c.opts.SourceColumn, filepath.Base(path))
		}
		out = append(out, t)
	}
	return out
}

func (c *Converter) writeWorkbook(ctx context.Context, wb *model.Workbook, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := output.WriteWorkbook(wb, path); err != nil {
		return NewConvertError(path, StageWrite, err)
	}
	c.log.Info("wrote workbook", "path", path, "sheets", wb.Len())
	return nil
}

func (c *Converter) emitProgress(ev ProgressEvent) {
	if c.opts.OnProgress != nil {
		c.opts.OnProgress(ev)
	}
}

// stampSource returns a copy of t with the provenance column set to source
// on every row. A table lacking the column gains it in front.
func stampSource(t *model.Table, column, source string) *model.Table {
	stamped := t.Clone()
	if !stamped.HasColumn(column) {
		stamped.Columns = append([]string{column}, stamped.Columns...)
	}
	for _, row := range stamped.Rows {
		row[column] = source
	}
	return stamped
}

// separateFileName names a per-group workbook: groups that merged several
// files get a "_merged" marker, single files keep their stem.
func separateFileName(group merge.FileGroup) string {
	if len(group.Paths) > 1 {
		return group.BaseName + "_merged.xlsx"
	}
	return fileStem(group.Paths[0]) + ".xlsx"
}

// fileStem returns the file name without directory or extension.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

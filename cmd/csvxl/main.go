// Package main provides the CLI entry point for csvxl.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SStyles93/csvxl/pkg/csvxl"
	"github.com/SStyles93/csvxl/pkg/csvxl/config"
)

var (
	outputPath    string
	appendPath    string
	override      bool
	separate      bool
	mergeSimilar  bool
	keyColumns    []string
	sheetNames    []string
	sourceColumn  string
	extraPatterns []string
	configPath    string
	workers       int
	logLevel      string
	jsonOutput    bool
	quiet         bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "csvxl [files or folders...]",
		Short: "Convert CSV files to Excel workbooks",
		Long: `csvxl converts CSV exports into Excel workbooks. Files that belong
together can be merged into one sheet, and rows already present in an
existing workbook are skipped instead of appended twice.`,
		Args:          cobra.MinimumNArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file, or folder in separate mode")
	rootCmd.Flags().StringVarP(&appendPath, "append", "a", "", "Existing workbook to merge into")
	rootCmd.Flags().BoolVar(&override, "override", false, "Write the appended workbook back in place")
	rootCmd.Flags().BoolVar(&separate, "separate", false, "Write one workbook per file group instead of one combined file")
	rootCmd.Flags().BoolVar(&mergeSimilar, "merge-similar", false, "Merge files sharing a base name into one sheet")
	rootCmd.Flags().StringSliceVar(&keyColumns, "key", nil, "Columns identifying a row for duplicate filtering")
	rootCmd.Flags().StringSliceVar(&sheetNames, "sheet-names", nil, "Sheet name overrides by group index")
	rootCmd.Flags().StringVar(&sourceColumn, "source-column", "", "Stamp each row with its source file in this column")
	rootCmd.Flags().StringSliceVar(&extraPatterns, "extra-pattern", nil, "Additional trailing-token patterns for grouping")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Conversion profile (YAML)")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Concurrent CSV reads (default 4)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !jsonOutput {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	start := time.Now()

	opts := csvxl.DefaultOptions()
	level := config.ParseLogLevel(logLevel)
	if configPath != "" {
		profile, err := config.Load(configPath)
		if err != nil {
			return err
		}
		profile.Apply(&opts)
		if profile.LogLevel != "" && !cmd.Flags().Changed("log-level") {
			level = profile.SlogLevel()
		}
	}
	applyFlags(cmd, &opts)

	opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if !quiet {
		opts.OnProgress = printProgress
	}

	conv, err := csvxl.New(opts)
	if err != nil {
		return err
	}
	res, err := conv.Convert(cmd.Context(), args)
	if jsonOutput {
		return emitJSON(res, err, time.Since(start))
	}
	if err != nil {
		return err
	}
	fmt.Println(res.Summary())
	return nil
}

// applyFlags copies explicitly set flags onto opts, overriding any profile
// values.
func applyFlags(cmd *cobra.Command, opts *csvxl.Options) {
	flags := cmd.Flags()
	if flags.Changed("separate") {
		opts.Combine = !separate
	}
	if flags.Changed("merge-similar") {
		opts.DetectSimilar = mergeSimilar
	}
	if flags.Changed("key") {
		opts.KeyColumns = keyColumns
	}
	if flags.Changed("sheet-names") {
		opts.SheetNames = sheetNames
	}
	if flags.Changed("source-column") {
		opts.SourceColumn = sourceColumn
	}
	if flags.Changed("extra-pattern") {
		opts.ExtraPatterns = extraPatterns
	}
	if flags.Changed("workers") {
		opts.Workers = workers
	}
	opts.ExistingPath = appendPath
	opts.Override = override
	opts.OutputPath = outputPath
}

func printProgress(ev csvxl.ProgressEvent) {
	fmt.Fprintf(os.Stderr, "[%s] %d/%d %s\n", ev.Stage, ev.Done, ev.Total, ev.Target)
}

// runSummary is the machine-readable run report.
type runSummary struct {
	Success           bool     `json:"success"`
	Mode              string   `json:"mode,omitempty"`
	OutputFiles       []string `json:"output_files,omitempty"`
	SheetsWritten     int      `json:"sheets_written,omitempty"`
	FilesProcessed    int      `json:"files_processed,omitempty"`
	RowsAdded         int      `json:"rows_added"`
	DuplicatesSkipped int      `json:"duplicates_skipped"`
	Duration          string   `json:"duration"`
	Error             string   `json:"error,omitempty"`
}

func emitJSON(res *csvxl.Result, runErr error, elapsed time.Duration) error {
	summary := runSummary{
		Success:  runErr == nil,
		Duration: elapsed.Round(time.Millisecond).String(),
	}
	if res != nil {
		summary.Mode = string(res.Mode)
		summary.OutputFiles = res.OutputFiles
		summary.SheetsWritten = res.SheetsWritten
		summary.FilesProcessed = res.FilesProcessed
		summary.RowsAdded = res.RowsAdded
		summary.DuplicatesSkipped = res.DuplicatesSkipped
	}
	if runErr != nil {
		summary.Error = runErr.Error()
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return runErr
}

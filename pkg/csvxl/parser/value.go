// Package parser reads CSV files and Excel workbooks into the csvxl model.
package parser

import (
	"fmt"
	"strconv"
)

// ParseValue converts a raw cell string into a typed value.
// Returns int64 for integers, float64 for decimals, bool for true/false
// tokens, nil for an empty cell, or the original string. CSV cells and
// workbook cells go through the same conversion so values from either
// source compare as duplicates.
func ParseValue(s string) interface{} {
	if s == "" {
		return nil
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch s {
	case "true", "True", "TRUE":
		return true
	case "false", "False", "FALSE":
		return false
	}
	// Return as string
	return s
}

// normalizeColumns turns a raw header into a usable column list of the given
// width: blank headers become "Unnamed: <index>" and repeated names get a
// numeric suffix, the way the usual CSV tooling labels them.
func normalizeColumns(header []string, width int) []string {
	if width < len(header) {
		width = len(header)
	}
	columns := make([]string, width)
	used := make(map[string]bool, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if used[name] {
			base := name
			for k := 1; ; k++ {
				name = fmt.Sprintf("%s.%d", base, k)
				if !used[name] {
					break
				}
			}
		}
		used[name] = true
		columns[i] = name
	}
	return columns
}

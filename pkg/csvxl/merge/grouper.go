// Package merge implements the csvxl merge engine: base-name grouping of
// source files, duplicate resolution against existing sheets, per-sheet
// merging, and workbook reconciliation.
package merge

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// defaultPatterns are the trailing tokens stripped from a file stem when
// deriving its group base name. Rules apply in order, each once, so stacked
// suffixes like "_2025_04" collapse over successive rules. Tokens only need
// to look date-like; no calendar validation happens.
var defaultPatterns = []string{
	`_\d{8}$`,
	`_\d{4}-\d{2}-\d{2}$`,
	`_\d{4}_\d{2}_\d{2}$`,
	`_\d{6}$`,
	`_\d{4}$`,
	`-\d{8}$`,
	`-\d{4}-\d{2}-\d{2}$`,
	`-\d{4}_\d{2}_\d{2}$`,
	`-\d{6}$`,
	`-\d{4}$`,
	`\d{8}$`,
	`\d{4}-\d{2}-\d{2}$`,
	`\d{4}_\d{2}_\d{2}$`,
	`\d{6}$`,
	`_\d+$`,
	`-\d+$`,
	`\d+$`,
	`(?i)[_-](january|february|march|april|may|june|july|august|september|october|november|december)$`,
	`(?i)[_-](jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)$`,
}

// trimCutset removes separator leftovers once all rules have run.
const trimCutset = "_- \t"

// FileGroup is an ordered set of paths sharing one derived base name.
type FileGroup struct {
	// BaseName is the derived group name.
	BaseName string
	// Paths lists the member files in input order.
	Paths []string
}

// Grouper derives base names from file paths and clusters paths sharing one.
type Grouper struct {
	rules []*regexp.Regexp
}

func defaultRules() []*regexp.Regexp {
	rules := make([]*regexp.Regexp, len(defaultPatterns))
	for i, p := range defaultPatterns {
		rules[i] = regexp.MustCompile(p)
	}
	return rules
}

var defaultGrouper = &Grouper{rules: defaultRules()}

// NewGrouper creates a grouper using the default rules followed by the given
// extra patterns, applied in order after the defaults.
func NewGrouper(extraPatterns ...string) (*Grouper, error) {
	rules := defaultRules()
	for _, p := range extraPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("grouping pattern %q: %w", p, err)
		}
		rules = append(rules, re)
	}
	return &Grouper{rules: rules}, nil
}

// DeriveBaseName strips trailing date-like and numeric tokens from the
// path's file stem. A stem consumed entirely by the rules falls back to the
// full stem so the group key is never empty.
func (g *Grouper) DeriveBaseName(path string) string {
	s := stem(path)
	base := s
	for _, re := range g.rules {
		base = re.ReplaceAllString(base, "")
	}
	base = strings.TrimRight(base, trimCutset)
	if base == "" {
		return s
	}
	return base
}

// GroupFiles clusters paths by derived base name. Groups appear in
// first-seen order and keep their member paths in input order.
func (g *Grouper) GroupFiles(paths []string) []FileGroup {
	var groups []FileGroup
	index := make(map[string]int)
	for _, p := range paths {
		base := g.DeriveBaseName(p)
		i, ok := index[base]
		if !ok {
			i = len(groups)
			index[base] = i
			groups = append(groups, FileGroup{BaseName: base})
		}
		groups[i].Paths = append(groups[i].Paths, p)
	}
	return groups
}

// DeriveBaseName strips trailing date-like and numeric tokens from the
// path's file stem using the default rules.
func DeriveBaseName(path string) string {
	return defaultGrouper.DeriveBaseName(path)
}

// GroupFiles clusters paths by derived base name using the default rules.
func GroupFiles(paths []string) []FileGroup {
	return defaultGrouper.GroupFiles(paths)
}

// stem returns the file name without directory or extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

package output

import (
	"fmt"
	"strings"
)

// maxSheetNameLength is Excel's hard limit on sheet name length.
const maxSheetNameLength = 31

// invalidSheetNameChars are the characters Excel forbids in sheet names.
const invalidSheetNameChars = `\/?*[]:`

// SanitizeSheetName replaces characters Excel forbids with underscores and
// truncates the result to 31 characters. An empty result becomes "Sheet".
func SanitizeSheetName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if strings.ContainsRune(invalidSheetNameChars, r) {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if runes := []rune(s); len(runes) > maxSheetNameLength {
		s = string(runes[:maxSheetNameLength])
	}
	if s == "" {
		return "Sheet"
	}
	return s
}

// UniqueSheetName returns name if it is not in used, otherwise a variant
// with a numeric suffix, shortened to stay within Excel's length limit.
// The caller records the returned name in used.
func UniqueSheetName(name string, used map[string]bool) string {
	if !used[name] {
		return name
	}
	for i := 2; ; i++ {
		suffix := fmt.Sprintf("_%d", i)
		runes := []rune(name)
		if len(runes)+len(suffix) > maxSheetNameLength {
			runes = runes[:maxSheetNameLength-len(suffix)]
		}
		candidate := string(runes) + suffix
		if !used[candidate] {
			return candidate
		}
	}
}

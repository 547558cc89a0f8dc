// Package strutil provides shared string utilities for table cells and
// figure captions.
package strutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Truncate returns s cut to maxLen runes. If truncated, a "..." suffix
// is appended (included in maxLen). Returns s unchanged if
// utf8.RuneCountInString(s) <= maxLen.
// Safe for maxLen <= 0 (returns empty string).
// This function is rune-aware and never produces invalid UTF-8.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runeCount := utf8.RuneCountInString(s)
	if runeCount <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string([]rune(s)[:maxLen])
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}

// TruncateWidth shortens s until width(s) <= maxWidth, appending "..." when
// anything was cut. width measures rendered text in caller units.
func TruncateWidth(s string, maxWidth float64, width func(string) float64) string {
	if width(s) <= maxWidth {
		return s
	}
	rs := []rune(s)
	// Binary search the longest prefix that fits with the ellipsis.
	lo, hi := 0, len(rs)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if width(string(rs[:mid])+"...") <= maxWidth {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if lo == 0 {
		return Truncate(s, 3)
	}
	return strings.TrimRight(string(rs[:lo]), " ") + "..."
}

var upper = cases.Upper(language.English)

// Caption turns a chart key such as "factor_beta" into the figure label
// "FACTOR BETA". Only underscores separate words; other punctuation is kept.
func Caption(key string) string {
	return upper.String(strings.ReplaceAll(key, "_", " "))
}

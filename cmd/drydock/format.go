package main

import (
	"strconv"
	"strings"
)

// truncate shortens s to maxLen runes, marking the cut with "..." when
// there is room for it.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:max(maxLen, 0)])
	}
	return string(r[:maxLen-3]) + "..."
}

// formatHours prints hours with at most two decimals and no trailing zeros
// (8 -> "8", 7.5 -> "7.5", 7.25 -> "7.25").
func formatHours(h float64) string {
	s := strconv.FormatFloat(h, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// dash substitutes "-" for an empty cell.
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

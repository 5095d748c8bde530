package util

import (
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

var reListSeparators = regexp.MustCompile(`[,;]`)

// SplitList splits a comma or semicolon separated string, trimming entries and
// dropping empty ones.
func SplitList(input string) []string {
	parts := reListSeparators.Split(input, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AppendUnique appends values not already present in dst, keeping first-seen order.
func AppendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if v == "" || slices.Contains(dst, v) {
			continue
		}
		dst = append(dst, v)
	}
	return dst
}

// Fold returns a caseless form of s suitable for substring matching.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether needle occurs in haystack ignoring case.
func ContainsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}

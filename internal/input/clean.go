// Package input shapes user-supplied digit strings before they reach the
// strict codec.
package input

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CleanOptions controls digit string preprocessing.
type CleanOptions struct {
	NormalizeForm   string // "NFKC" (default), "NFC", "NFD", "NFKD", "none" to disable
	StripSeparators bool   // drop whitespace, hyphens and dots between digit groups
	Trim            bool   // trim leading/trailing whitespace
}

// DefaultCleanOptions returns the options used by --normalize.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		NormalizeForm:   "NFKC",
		StripSeparators: true,
		Trim:            true,
	}
}

// Clean applies normalization and separator removal to s. It never rejects
// input; malformed digits are left for the codec to report.
func Clean(s string, opts CleanOptions) string {
	if s == "" {
		return s
	}
	s = normalize(s, opts.NormalizeForm)
	if opts.Trim {
		s = strings.TrimSpace(s)
	}
	if opts.StripSeparators {
		s = stripSeparators(s)
	}
	return s
}

// CleanLines applies Clean to every element and returns a new slice.
func CleanLines(lines []string, opts CleanOptions) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = Clean(l, opts)
	}
	return out
}

func normalize(s, form string) string {
	switch strings.ToUpper(form) {
	case "NFKC", "":
		return norm.NFKC.String(s)
	case "NFC":
		return norm.NFC.String(s)
	case "NFD":
		return norm.NFD.String(s)
	case "NFKD":
		return norm.NFKD.String(s)
	}
	return s
}

func stripSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || isSeparator(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isSeparator(r rune) bool {
	switch r {
	case '-', '.', '_',
		'\u2010', // hyphen
		'\u2011', // non-breaking hyphen
		'\u2013', // en dash
		'\u200B', // zero width space
		'\uFEFF': // BOM
		return true
	}
	return false
}

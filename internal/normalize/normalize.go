// Package normalize cleans raw extracted text: de-hyphenation of
// line-wrapped words, whitespace and blank-line collapsing, bullet
// unification, and quote/dash unification.
package normalize

import (
	"regexp"
	"strings"
)

var (
	// A word broken across a line by PDF extraction: word char, hyphen,
	// newline, word char. Unicode letters included, like the extractors.
	hyphenBreak = regexp.MustCompile(`([\p{L}\p{N}_])-\s*\n\s*([\p{L}\p{N}_])`)

	blankRuns  = regexp.MustCompile("\n{3,}")
	inlineRuns = regexp.MustCompile("[ \t]{2,}")

	// Bullet glyphs seen in the wild. The hyphen is deliberately in the
	// set even though ordinary lines can start with one; the reference
	// corpus depends on that classification.
	leadBullets = regexp.MustCompile(`^[•◦▪‣·●*–—-]+\s*`)

	paraBreak = regexp.MustCompile(`\n\s*\n`)
)

var punct = strings.NewReplacer(
	"’", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", "-",
	"•", "-",
)

// Clean normalizes a raw extracted string. Empty input stays empty.
// The bullet pass must run before punctuation unification: en/em
// dashes are bullet glyphs on a line start but become plain hyphens
// everywhere afterwards.
func Clean(s string) string {
	if s == "" {
		return ""
	}

	s = hyphenBreak.ReplaceAllString(s, "${1}${2}")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	s = inlineRuns.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		l := strings.TrimSpace(line)
		if loc := leadBullets.FindStringIndex(l); loc != nil {
			l = "- " + l[loc[1]:]
		}
		lines[i] = l
	}
	s = strings.Join(lines, "\n")

	s = punct.Replace(s)
	return strings.TrimSpace(s)
}

// SplitParagraphs splits cleaned text on blank-line boundaries,
// dropping whitespace-only paragraphs and trimming the rest.
func SplitParagraphs(s string) []string {
	var out []string
	for _, p := range paraBreak.Split(s, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

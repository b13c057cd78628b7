// Package chunker aggregates paragraphs into bounded-size chunks
// without breaking list structures apart.
package chunker

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxChars is the default character budget per chunk.
const DefaultMaxChars = 1000

// Pack groups paragraphs into chunks of roughly maxChars characters
// using a single greedy forward pass. A run of consecutive bullet
// paragraphs is absorbed into one newline-joined unit and never split
// across chunks. A unit that alone exceeds the budget still lands in
// its own chunk: the budget is a packing target, not a truncation
// limit. Paragraph and chunk order follow document order.
func Pack(paragraphs []string, maxChars int) [][]string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	var chunks [][]string
	var cur []string
	curLen := 0

	i := 0
	for i < len(paragraphs) {
		p := strings.TrimSpace(paragraphs[i])
		if p == "" {
			i++
			continue
		}

		unit := p
		if isBullet(p) {
			// Absorb the whole bullet run into one indivisible unit.
			run := []string{p}
			j := i + 1
			for j < len(paragraphs) && isBullet(paragraphs[j]) {
				run = append(run, strings.TrimSpace(paragraphs[j]))
				j++
			}
			unit = strings.Join(run, "\n")
			i = j
		} else {
			i++
		}

		n := utf8.RuneCountInString(unit)
		if curLen+n+1 > maxChars && len(cur) > 0 {
			chunks = append(chunks, cur)
			cur, curLen = nil, 0
		}
		cur = append(cur, unit)
		curLen += n + 1 // +1 for the joining newline
	}

	if len(cur) > 0 {
		chunks = append(chunks, cur)
	}
	return chunks
}

// isBullet reports whether a paragraph is a normalized bullet line.
func isBullet(p string) bool {
	return strings.HasPrefix(strings.TrimSpace(p), "- ")
}

package record

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Years accepted as references. Anything outside is noise from page
// numbers, dosages, and the like.
const (
	MinYear = 1900
	MaxYear = 2100
)

// Matches bare years and bracketed citation years like [2018] or (2018).
var yearPattern = regexp.MustCompile(`[\[\(]?((19|20)\d{2})[\]\)]?`)

// Meta is the record-level metadata shared by every chunk emitted from
// one input record.
type Meta struct {
	Breadcrumb string
	Section    string
	Refs       []int
}

// ExtractMeta derives the breadcrumb, section string, and reference
// years for an input record. body is the normalized text, which is
// scanned for years alongside the declared refs entries.
func (in Input) ExtractMeta(body string) Meta {
	return Meta{
		Breadcrumb: in.Breadcrumb(),
		Section:    in.Section(),
		Refs:       in.RefYears(body),
	}
}

// Years scans text for 4-digit years in the accepted range, optionally
// wrapped in square or round brackets, and returns them distinct and
// ascending.
func Years(text string) []int {
	if text == "" {
		return nil
	}
	set := make(map[int]bool)
	for _, m := range yearPattern.FindAllStringSubmatch(text, -1) {
		if y, err := strconv.Atoi(m[1]); err == nil && y >= MinYear && y <= MaxYear {
			set[y] = true
		}
	}
	return sortedYears(set)
}

// RefYears unions the years found in body with the record's declared
// references. Reference entries that are neither numbers nor all-digit
// strings are ignored.
func (in Input) RefYears(body string) []int {
	set := make(map[int]bool)
	for _, y := range Years(body) {
		set[y] = true
	}
	for _, r := range in.Refs {
		y, ok := refYear(r)
		if ok && y >= MinYear && y <= MaxYear {
			set[y] = true
		}
	}
	return sortedYears(set)
}

func refYear(r any) (int, bool) {
	switch v := r.(type) {
	case float64:
		// JSON numbers arrive as float64; only whole values are years.
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case string:
		if !allDigits(v) {
			return 0, false
		}
		y, err := strconv.Atoi(v)
		return y, err == nil
	}
	return 0, false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func sortedYears(set map[int]bool) []int {
	if len(set) == 0 {
		return nil
	}
	out := make([]int, 0, len(set))
	for y := range set {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

// Breadcrumb renders the record's location: side labels first as a
// bracketed comma-joined group, then each non-empty section segment,
// all joined by " > ". Empty when the record carries no location info.
func (in Input) Breadcrumb() string {
	var parts []string
	if len(in.SideLabels) > 0 {
		parts = append(parts, "["+strings.Join(in.SideLabels, ",")+"]")
	}
	for _, seg := range in.SectionPath {
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, " > ")
}

// Section renders the section path alone, without side labels.
// Segments are kept as-is, empties included.
func (in Input) Section() string {
	return strings.Join(in.SectionPath, " > ")
}

// idPrefixRunes bounds how much chunk text feeds the identifier.
const idPrefixRunes = 120

// ChunkID derives a stable identifier for a chunk: a UUIDv5 over the
// URL namespace of the breadcrumb, the chunk's index within its record,
// and a prefix of the chunk text. Identical inputs always produce the
// same id.
func ChunkID(breadcrumb string, index int, text string) string {
	if r := []rune(text); len(r) > idPrefixRunes {
		text = string(r[:idPrefixRunes])
	}
	name := fmt.Sprintf("%s::%d::%s", breadcrumb, index, text)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

// NewChunk assembles the output record for one packed chunk.
// Paragraphs are joined by a blank line; highlighted_text mirrors text
// until highlighting markup exists.
func NewChunk(in Input, meta Meta, source string, index int, paragraphs []string) Output {
	text := strings.TrimSpace(strings.Join(paragraphs, "\n\n"))

	labels := in.SideLabels
	if labels == nil {
		labels = []string{}
	}
	refs := meta.Refs
	if refs == nil {
		refs = []int{}
	}

	return Output{
		ID:              ChunkID(meta.Breadcrumb, index, text),
		Source:          source,
		Section:         meta.Section,
		Breadcrumb:      meta.Breadcrumb,
		PageStart:       in.PageStart,
		PageEnd:         in.PageEnd,
		SideLabels:      labels,
		Refs:            refs,
		Text:            text,
		HighlightedText: text,
	}
}

// Package record models the extraction records flowing through the
// preparation pipeline: the loosely typed input objects produced by
// document extraction, and the chunk records written out for embedding.
package record

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Input is one document-extraction record. Upstream extractors disagree
// on key names and on whether fields are scalars or sequences, so Input
// is populated through ordered key fallbacks with every field coerced
// to a neutral default when absent.
type Input struct {
	Text        string   `json:"text"`
	SectionPath []string `json:"section_path,omitempty"`
	SideLabels  []string `json:"side_labels,omitempty"`
	PageStart   *int     `json:"page_start,omitempty"`
	PageEnd     *int     `json:"page_end,omitempty"`
	Refs        []any    `json:"refs,omitempty"`
}

// Output is one chunk record, ready for JSONL emission.
type Output struct {
	ID              string   `json:"id"`
	Source          string   `json:"source"`
	Section         string   `json:"section"`
	Breadcrumb      string   `json:"breadcrumb"`
	PageStart       *int     `json:"page_start"`
	PageEnd         *int     `json:"page_end"`
	SideLabels      []string `json:"side_labels"`
	Refs            []int    `json:"refs"`
	Text            string   `json:"text"`
	HighlightedText string   `json:"highlighted_text"`
}

// UnmarshalJSON decodes an input record best-effort. Each logical field
// has an ordered list of accepted keys; the first present, non-empty
// value wins. Scalar-or-sequence fields are normalized to sequences
// immediately so consumers never branch on shape.
func (in *Input) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	in.Text = firstString(raw, "text", "content")
	in.SectionPath = firstList(raw, "section_path", "section")
	in.SideLabels = firstList(raw, "side_label", "side_labels")
	in.PageStart = firstPage(raw, "page_start", "page", "pageIndex")
	in.PageEnd = firstPage(raw, "page_end", "page", "pageIndex")
	in.Refs = firstSlice(raw, "refs", "references")
	return nil
}

// firstString returns the first non-empty string value among keys.
func firstString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// firstList returns the first key whose value coerces to a non-empty
// string sequence. A scalar becomes a one-element sequence; sequence
// elements are stringified, preserving empties so section joins keep
// their arity.
func firstList(raw map[string]any, keys ...string) []string {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case string:
			if v != "" {
				return []string{v}
			}
		case []any:
			if len(v) == 0 {
				continue
			}
			out := make([]string, 0, len(v))
			for _, e := range v {
				out = append(out, stringify(e))
			}
			return out
		case float64, bool:
			return []string{stringify(v)}
		}
	}
	return nil
}

// firstSlice returns the first present refs-like value as a raw slice,
// wrapping a scalar in a one-element slice.
func firstSlice(raw map[string]any, keys ...string) []any {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case nil:
			continue
		case []any:
			if len(v) > 0 {
				return v
			}
		default:
			return []any{v}
		}
	}
	return nil
}

// firstPage returns the first key carrying a usable page number.
// Pages are 1-based; zero falls through to the next key.
func firstPage(raw map[string]any, keys ...string) *int {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case float64:
			if n := int(v); n != 0 {
				return &n
			}
		case string:
			if n, err := strconv.Atoi(v); err == nil && n != 0 {
				return &n
			}
		}
	}
	return nil
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

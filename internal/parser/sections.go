package parser

import (
	"strings"

	"github.com/dgallion1/ragprep/internal/record"
)

// sections accumulates flat extraction records while a document's
// heading structure is walked. Text buffers under the current heading
// until the next heading (or the end of the walk) flushes it as one
// record whose section path is the heading ancestry, document title
// first.
type sections struct {
	title string
	stack []heading
	buf   strings.Builder
	recs  []record.Input
}

type heading struct {
	name  string
	level int
}

func newSections(title string) *sections {
	return &sections{title: title}
}

// Heading flushes buffered text and makes name the current heading at
// the given level, popping headings at the same or a deeper level first.
func (s *sections) Heading(name string, level int) {
	s.Flush()
	for len(s.stack) > 0 && s.stack[len(s.stack)-1].level >= level {
		s.stack = s.stack[:len(s.stack)-1]
	}
	s.stack = append(s.stack, heading{name: name, level: level})
}

// Text appends a block of text under the current heading.
func (s *sections) Text(t string) {
	t = strings.TrimSpace(t)
	if t == "" {
		return
	}
	if s.buf.Len() > 0 {
		s.buf.WriteString("\n\n")
	}
	s.buf.WriteString(t)
}

// Flush emits any buffered text as one extraction record.
func (s *sections) Flush() {
	t := strings.TrimSpace(s.buf.String())
	s.buf.Reset()
	if t == "" {
		return
	}
	s.recs = append(s.recs, record.Input{
		Text:        t,
		SectionPath: s.path(),
	})
}

// Records returns everything flushed so far.
func (s *sections) Records() []record.Input {
	return s.recs
}

func (s *sections) path() []string {
	out := make([]string, 0, len(s.stack)+1)
	if s.title != "" {
		out = append(out, s.title)
	}
	for _, h := range s.stack {
		out = append(out, h.name)
	}
	return out
}

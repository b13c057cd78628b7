package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/ragprep/internal/record"
)

// TextParser handles plain text files. The whole file becomes one
// extraction record; blank lines delimit paragraphs within it.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]record.Input, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	s := newSections(trimExt(filename))
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				s.Text(current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		s.Text(current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	s.Flush()
	return s.Records(), nil
}

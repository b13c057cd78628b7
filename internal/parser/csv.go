package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/ragprep/internal/record"
)

// CSVParser handles CSV files. Rows are grouped into batches so each
// extraction record stays a manageable size, with the header repeated
// per batch for context.
type CSVParser struct{}

const csvBatchSize = 20

func (p *CSVParser) Parse(r io.Reader, filename string) ([]record.Input, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	title := trimExt(filename)
	headers := rows[0]
	dataRows := rows[1:]

	var recs []record.Input
	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := i + csvBatchSize
		if end > len(dataRows) {
			end = len(dataRows)
		}

		var text strings.Builder
		text.WriteString("Headers: " + strings.Join(headers, ", ") + "\n\n")
		for _, row := range dataRows[i:end] {
			for j, cell := range row {
				if j < len(headers) {
					text.WriteString(headers[j] + ": " + cell)
				} else {
					text.WriteString(cell)
				}
				if j < len(row)-1 {
					text.WriteString(", ")
				}
			}
			text.WriteString("\n")
		}

		recs = append(recs, record.Input{
			Text: text.String(),
			// 1-indexed row span, header row excluded.
			SectionPath: []string{title, fmt.Sprintf("Rows %d-%d", i+2, end+1)},
		})
	}

	return recs, nil
}

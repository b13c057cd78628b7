// Package pipeline drives the preparation run: extraction records in,
// cleaned paragraph-bounded chunk records out, one JSON object per
// line both ways.
package pipeline

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/ragprep/internal/chunker"
	"github.com/dgallion1/ragprep/internal/config"
	"github.com/dgallion1/ragprep/internal/normalize"
	"github.com/dgallion1/ragprep/internal/record"
)

// Stats reports what a run consumed and produced.
type Stats struct {
	RecordsRead   int // input lines parsed successfully
	LinesSkipped  int // non-blank lines that failed to parse
	ChunksWritten int
}

// Prepare turns one extraction record into its output chunk records:
// normalization, metadata extraction, paragraph splitting, packing,
// emission. A record whose text cleans to nothing yields no chunks.
func Prepare(in record.Input, source string, maxChars int) []record.Output {
	body := normalize.Clean(in.Text)
	meta := in.ExtractMeta(body)
	paragraphs := normalize.SplitParagraphs(body)

	var outs []record.Output
	for i, paras := range chunker.Pack(paragraphs, maxChars) {
		outs = append(outs, record.NewChunk(in, meta, source, i, paras))
	}
	return outs
}

// Run processes cfg.Input line by line and writes chunk records to
// cfg.Output in document order. Blank lines are ignored; non-blank
// lines that fail to parse are counted and skipped. Filesystem errors
// abort the run.
func Run(cfg config.Config, log *slog.Logger) (Stats, error) {
	var stats Stats

	fin, err := os.Open(cfg.Input)
	if err != nil {
		return stats, fmt.Errorf("open input: %w", err)
	}
	defer fin.Close()

	fout, err := createOutput(cfg.Output)
	if err != nil {
		return stats, err
	}
	defer fout.Close()

	w := bufio.NewWriter(fout)
	enc := newLineEncoder(w)

	scanner := bufio.NewScanner(fin)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var in record.Input
		if err := json.Unmarshal([]byte(line), &in); err != nil {
			stats.LinesSkipped++
			log.Warn("skipping malformed line", "line", lineNo, "error", err)
			continue
		}
		stats.RecordsRead++

		for _, out := range Prepare(in, cfg.Source, cfg.MaxChars) {
			if err := enc.Encode(out); err != nil {
				return stats, fmt.Errorf("write chunk: %w", err)
			}
			stats.ChunksWritten++
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read input: %w", err)
	}

	if err := w.Flush(); err != nil {
		return stats, fmt.Errorf("flush output: %w", err)
	}
	if err := fout.Close(); err != nil {
		return stats, fmt.Errorf("close output: %w", err)
	}

	log.Info("run complete",
		"records_read", stats.RecordsRead,
		"lines_skipped", stats.LinesSkipped,
		"chunks_written", stats.ChunksWritten)
	return stats, nil
}

// createOutput opens the output file, creating its parent directory
// if absent.
func createOutput(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return f, nil
}

// newLineEncoder returns an encoder that emits one object per line
// with non-ASCII characters written literally.
func newLineEncoder(w *bufio.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

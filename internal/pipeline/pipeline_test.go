package pipeline

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/ragprep/internal/config"
	"github.com/dgallion1/ragprep/internal/record"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeInput(t *testing.T, line string) record.Input {
	t.Helper()
	var in record.Input
	if err := json.Unmarshal([]byte(line), &in); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	return in
}

func TestPrepare_EndToEnd(t *testing.T) {
	in := decodeInput(t, `{"text": "Intro text.\n\n`+"•"+` First point\n`+"•"+` Second point\n\nClosing text.", "section_path": ["Overview"], "side_label": "box1"}`)

	outs := Prepare(in, "adhd_guideline", 1000)
	if len(outs) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(outs))
	}
	out := outs[0]

	if out.Section != "Overview" {
		t.Errorf("expected section %q, got %q", "Overview", out.Section)
	}
	if out.Breadcrumb != "[box1] > Overview" {
		t.Errorf("expected breadcrumb %q, got %q", "[box1] > Overview", out.Breadcrumb)
	}
	want := "Intro text.\n\n- First point\n- Second point\n\nClosing text."
	if out.Text != want {
		t.Errorf("expected text %q, got %q", want, out.Text)
	}
	if out.HighlightedText != out.Text {
		t.Error("expected highlighted_text to mirror text")
	}
	if len(out.Refs) != 0 {
		t.Errorf("expected no refs, got %v", out.Refs)
	}
	if len(out.SideLabels) != 1 || out.SideLabels[0] != "box1" {
		t.Errorf("expected side_labels [box1], got %v", out.SideLabels)
	}
}

func TestPrepare_EmptyTextProducesNothing(t *testing.T) {
	in := decodeInput(t, `{"section_path": ["Overview"]}`)
	if outs := Prepare(in, "src", 1000); len(outs) != 0 {
		t.Errorf("expected no chunks for empty text, got %d", len(outs))
	}
}

func TestPrepare_MultipleChunksKeepOrder(t *testing.T) {
	paras := []string{
		strings.Repeat("a", 400),
		strings.Repeat("b", 400),
		strings.Repeat("c", 400),
	}
	in := record.Input{Text: strings.Join(paras, "\n\n")}

	outs := Prepare(in, "src", 500)
	if len(outs) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(outs))
	}
	for i, want := range []string{"a", "b", "c"} {
		if !strings.HasPrefix(outs[i].Text, want) {
			t.Errorf("chunk %d: expected prefix %q, got %q", i, want, outs[i].Text[:1])
		}
		if outs[i].Text == "" {
			t.Errorf("chunk %d: empty text", i)
		}
	}
	// Ids differ across chunks of one record.
	if outs[0].ID == outs[1].ID || outs[1].ID == outs[2].ID {
		t.Error("expected distinct chunk ids")
	}
}

func TestRun_MalformedLineResilience(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.jsonl")
	output := filepath.Join(dir, "out.jsonl")

	lines := `{"text": "First record."}
{this is not json
{"text": "Second record."}

`
	if err := os.WriteFile(input, []byte(lines), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	cfg := config.Default()
	cfg.Input = input
	cfg.Output = output

	stats, err := Run(cfg, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.RecordsRead != 2 {
		t.Errorf("expected 2 records read, got %d", stats.RecordsRead)
	}
	if stats.LinesSkipped != 1 {
		t.Errorf("expected 1 line skipped, got %d", stats.LinesSkipped)
	}
	if stats.ChunksWritten != 2 {
		t.Errorf("expected 2 chunks written, got %d", stats.ChunksWritten)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	outLines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(outLines) != 2 {
		t.Fatalf("expected 2 output lines, got %d", len(outLines))
	}
	var out record.Output
	if err := json.Unmarshal([]byte(outLines[0]), &out); err != nil {
		t.Fatalf("output line not valid JSON: %v", err)
	}
	if out.Text != "First record." {
		t.Errorf("expected %q, got %q", "First record.", out.Text)
	}
}

func TestRun_Deterministic(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.jsonl")

	line := `{"text": "Some guideline text from 2019.\n\n- point one\n- point two", "section_path": ["Ch", "Sec"], "refs": [2021]}`
	if err := os.WriteFile(input, []byte(line+"\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	runOnce := func(out string) []byte {
		cfg := config.Default()
		cfg.Input = input
		cfg.Output = out
		if _, err := Run(cfg, testLogger()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("read output: %v", err)
		}
		return data
	}

	a := runOnce(filepath.Join(dir, "a.jsonl"))
	b := runOnce(filepath.Join(dir, "b.jsonl"))
	if !bytes.Equal(a, b) {
		t.Error("expected byte-identical output across runs")
	}

	var out record.Output
	if err := json.Unmarshal(bytes.Split(a, []byte("\n"))[0], &out); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(out.Refs) != 2 || out.Refs[0] != 2019 || out.Refs[1] != 2021 {
		t.Errorf("expected refs [2019 2021], got %v", out.Refs)
	}
}

func TestRun_CreatesOutputDir(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.jsonl")
	if err := os.WriteFile(input, []byte(`{"text": "x"}`+"\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	cfg := config.Default()
	cfg.Input = input
	cfg.Output = filepath.Join(dir, "nested", "deeper", "out.jsonl")

	if _, err := Run(cfg, testLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(cfg.Output); err != nil {
		t.Errorf("expected output file created: %v", err)
	}
}

func TestRun_MissingInputFails(t *testing.T) {
	cfg := config.Default()
	cfg.Input = filepath.Join(t.TempDir(), "absent.jsonl")
	cfg.Output = filepath.Join(t.TempDir(), "out.jsonl")

	if _, err := Run(cfg, testLogger()); err == nil {
		t.Error("expected error for missing input file")
	}
}

func TestRun_NonASCIIEmittedLiterally(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.jsonl")
	output := filepath.Join(dir, "out.jsonl")

	line := `{"text": "na` + "ï" + `ve patients <18 years"}`
	if err := os.WriteFile(input, []byte(line+"\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	cfg := config.Default()
	cfg.Input = input
	cfg.Output = output
	if _, err := Run(cfg, testLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Contains(data, []byte("naïve")) {
		t.Error("expected non-ASCII emitted literally, not escaped")
	}
	if !bytes.Contains(data, []byte("<18")) {
		t.Error("expected < emitted literally, not HTML-escaped")
	}
}

func TestConvert_TextFile(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "notes.txt")
	output := filepath.Join(dir, "records.jsonl")

	content := "First paragraph.\n\nSecond paragraph.\n"
	if err := os.WriteFile(doc, []byte(content), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}

	stats, err := Convert([]string{doc}, output, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.FilesParsed != 1 || stats.RecordsWritten != 1 {
		t.Fatalf("expected 1 file / 1 record, got %+v", stats)
	}

	// The conversion output feeds straight into a preparation run.
	cfg := config.Default()
	cfg.Input = output
	cfg.Output = filepath.Join(dir, "chunks.jsonl")
	runStats, err := Run(cfg, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runStats.RecordsRead != 1 || runStats.ChunksWritten != 1 {
		t.Fatalf("expected 1 record / 1 chunk, got %+v", runStats)
	}

	data, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatalf("read chunks: %v", err)
	}
	var out record.Output
	if err := json.Unmarshal(bytes.Split(data, []byte("\n"))[0], &out); err != nil {
		t.Fatalf("decode chunk: %v", err)
	}
	if out.Section != "notes" {
		t.Errorf("expected section %q, got %q", "notes", out.Section)
	}
	if out.Text != "First paragraph.\n\nSecond paragraph." {
		t.Errorf("unexpected chunk text %q", out.Text)
	}
}

func TestConvert_MarkdownExtensionAlias(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "guide.markdown")
	if err := os.WriteFile(doc, []byte("# Title\n\nBody text.\n"), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}

	stats, err := Convert([]string{doc}, filepath.Join(dir, "out.jsonl"), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.FilesParsed != 1 || stats.FilesSkipped != 0 {
		t.Errorf("expected .markdown file parsed, got %+v", stats)
	}
	if stats.RecordsWritten != 1 {
		t.Errorf("expected 1 record, got %d", stats.RecordsWritten)
	}
}

func TestConvert_SkipsUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "image.png")
	if err := os.WriteFile(doc, []byte("not a document"), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}

	stats, err := Convert([]string{doc}, filepath.Join(dir, "out.jsonl"), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.FilesSkipped != 1 || stats.FilesParsed != 0 {
		t.Errorf("expected unsupported file skipped, got %+v", stats)
	}
}

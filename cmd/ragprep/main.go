package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/ragprep/internal/config"
	"github.com/dgallion1/ragprep/internal/pipeline"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "ragprep",
		Short: "Prepare document-extraction JSONL for vector indexing",
		Long: `Ragprep cleans and structures loosely typed document-extraction
records into paragraph-bounded chunks ready for embedding.

It normalizes extracted text (de-hyphenation, bullet and punctuation
unification), derives breadcrumbs and reference years, and packs
paragraphs into bounded-size chunks without splitting lists.`,
		Version: version,
	}

	rootCmd.AddCommand(prepCmd())
	rootCmd.AddCommand(convertCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

func prepCmd() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "prep",
		Short: "Clean and chunk extraction records into embedding-ready JSONL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			stats, err := pipeline.Run(cfg, newLogger())
			if err != nil {
				return err
			}
			fmt.Printf("Done. read_items=%d, wrote_chunks=%d, out=%s\n",
				stats.RecordsRead, stats.ChunksWritten, cfg.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfg.Input, "input", "i", "", "input JSONL path")
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", "", "output JSONL path")
	cmd.Flags().IntVar(&cfg.MaxChars, "max-chars", cfg.MaxChars, "maximum characters per chunk")
	cmd.Flags().StringVar(&cfg.Source, "source", cfg.Source, "source label stamped on output records")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")

	return cmd
}

func convertCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert <files...>",
		Short: "Parse raw documents (txt, md, html, csv, pdf, docx) into extraction records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := pipeline.Convert(args, output, newLogger())
			if err != nil {
				return err
			}
			fmt.Printf("Done. files=%d, skipped=%d, wrote_records=%d, out=%s\n",
				stats.FilesParsed, stats.FilesSkipped, stats.RecordsWritten, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output JSONL path")
	cmd.MarkFlagRequired("output")

	return cmd
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"booktrans/internal/ai"
	"booktrans/internal/document"
	"booktrans/internal/pipeline"
	"booktrans/internal/segment"
)

const progressLog = "translation_progress.log"

func rootCmd() *cobra.Command {
	var (
		input    string
		mode     string
		action   string
		lang     string
		index    int
		start    int
		end      int
		key      string
		model    string
		glossary string
	)

	cmd := &cobra.Command{
		Use:   "booktrans",
		Short: "Slice, extract and translate large documents with Gemini",
		Long: `booktrans breaks a PDF (or plain text file) into segments by bookmark
outline, detected chapter headings, or as a single whole, extracts each
segment's text for manual cleanup, and translates the cleaned text with
Gemini. Every stage skips work whose output already exists, so interrupted
runs resume where they left off.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := segment.ParseMode(mode)
			if err != nil {
				return err
			}
			a, err := pipeline.ParseAction(action)
			if err != nil {
				return err
			}

			opts := pipeline.Options{
				Mode:    m,
				Action:  a,
				Lang:    lang,
				Sel:     pipeline.Selection{Index: index, Start: start, End: end},
				LogPath: progressLog,
			}

			if a == pipeline.ActionTranslate || a == pipeline.ActionAll {
				if lang == "" {
					return fmt.Errorf("--lang is required for action %s", a)
				}
				if key == "" {
					key = os.Getenv("GEMINI_API_KEY")
				}
				g, err := ai.NewGemini(cmd.Context(), key, model)
				if err != nil {
					return err
				}
				g.LoadGlossary(glossary)
				opts.Backend = g
			}

			doc, err := document.Open(input)
			if err != nil {
				return err
			}
			defer doc.Close()

			rep, err := pipeline.Run(cmd.Context(), doc, opts)
			if err != nil {
				return err
			}

			b, _ := json.MarshalIndent(rep, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			if len(rep.Failures) > 0 {
				// Partial success still exits zero; failed segments are
				// reattempted on the next run.
				fmt.Fprintf(cmd.OutOrStdout(), "%d segment(s) failed; re-run to retry them\n", len(rep.Failures))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "path to the source PDF or TXT file")
	cmd.Flags().StringVar(&mode, "mode", "bookmark", "chunking strategy: bookmark|chapter|full")
	cmd.Flags().StringVar(&action, "action", "", "slice|extract|translate|prepare (slice+extract)|all")
	cmd.Flags().StringVar(&lang, "lang", "Persian", "target language for translation")
	cmd.Flags().IntVar(&index, "index", 0, "limit the action to a single segment ordinal (wins over --start/--end)")
	cmd.Flags().IntVar(&start, "start", 0, "start ordinal for range processing (inclusive)")
	cmd.Flags().IntVar(&end, "end", 0, "end ordinal for range processing (inclusive)")
	cmd.Flags().StringVar(&key, "key", "", "Gemini API key (defaults to GEMINI_API_KEY)")
	cmd.Flags().StringVar(&model, "model", ai.DefaultModel, "Gemini model name")
	cmd.Flags().StringVar(&glossary, "glossary", "glossary.txt", "optional terminology file folded into every prompt")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("action")

	return cmd
}

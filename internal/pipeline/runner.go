package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"booktrans/internal/ai"
	"booktrans/internal/document"
	"booktrans/internal/layout"
	"booktrans/internal/segment"
)

// Action is the CLI-level verb. prepare is slice+extract; all adds translate.
type Action string

const (
	ActionSlice     Action = "slice"
	ActionExtract   Action = "extract"
	ActionTranslate Action = "translate"
	ActionPrepare   Action = "prepare"
	ActionAll       Action = "all"
)

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionSlice, ActionExtract, ActionTranslate, ActionPrepare, ActionAll:
		return Action(s), nil
	}
	return "", fmt.Errorf("unknown action %q (want slice, extract, translate, prepare or all)", s)
}

func (a Action) slices() bool { return a == ActionSlice || a == ActionPrepare || a == ActionAll }

func (a Action) extracts() bool { return a == ActionExtract || a == ActionPrepare || a == ActionAll }

func (a Action) translates() bool { return a == ActionTranslate || a == ActionAll }

// Options configures one run.
type Options struct {
	Mode    segment.Mode
	Action  Action
	Lang    string
	Sel     Selection
	Backend ai.Translator
	Timeout time.Duration
	LogPath string // progress log file; empty disables it
}

// Failure records one segment whose translation did not complete. Failures
// never abort the batch; a re-run reattempts only these segments because
// their artifacts were never written.
type Failure struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Error string `json:"error"`
}

// Report summarizes a run for the caller.
type Report struct {
	Input            string    `json:"input"`
	Mode             string    `json:"mode"`
	Segments         int       `json:"segments"`
	Selected         int       `json:"selected"`
	Translated       int       `json:"translated,omitempty"`
	Skipped          int       `json:"skipped"`
	EmptyExtractions []int     `json:"empty_extractions,omitempty"`
	Failures         []Failure `json:"failures,omitempty"`
}

// Run executes the requested action over the selected segments, strictly in
// ascending ordinal order, one segment fully processed before the next.
func Run(ctx context.Context, doc *document.Document, opts Options) (Report, error) {
	rep := Report{Input: doc.Path, Mode: string(opts.Mode)}

	if opts.Action.translates() && opts.Backend == nil {
		return rep, fmt.Errorf("action %s needs a translation backend", opts.Action)
	}

	segs, err := segment.Identify(doc, opts.Mode)
	if err != nil {
		return rep, err
	}
	rep.Segments = len(segs)

	// Selection is validated before anything touches the filesystem.
	selected, err := Resolve(segs, opts.Sel)
	if err != nil {
		return rep, err
	}
	rep.Selected = len(selected)

	lay := layout.New(doc.Path)
	if err := lay.EnsureDirs(); err != nil {
		return rep, err
	}

	prev, ok, err := segment.LoadManifest(lay.SectionsDir)
	if err != nil {
		return rep, err
	}
	if ok {
		if err := segment.CheckManifest(prev, opts.Mode, doc.PageCount(), segs); err != nil {
			return rep, err
		}
	} else {
		m := segment.Manifest{Source: doc.Path, Mode: opts.Mode, Pages: doc.PageCount(), Segments: segs}
		if err := segment.WriteManifest(lay.SectionsDir, m); err != nil {
			return rep, err
		}
	}

	logger := newProgressLogger(opts.LogPath)

	orch := &Orchestrator{Backend: opts.Backend, Lang: opts.Lang, Timeout: opts.Timeout}

	for _, seg := range selected {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		if opts.Action.slices() {
			path, skipped, err := Slice(doc, seg, lay)
			switch {
			case err != nil:
				return rep, fmt.Errorf("segment %d: %w", seg.Index, err)
			case skipped && path == "":
				fmt.Printf("notice: slicing skipped for %s input\n", doc.Kind)
			case skipped:
				rep.Skipped++
				fmt.Printf("segment %d already sliced, skipping\n", seg.Index)
			default:
				fmt.Printf("sliced segment %d (pages %d-%d) -> %s\n", seg.Index, seg.Start, seg.End, path)
				logger.Printf("sliced segment %d: %s", seg.Index, path)
			}
		}

		if opts.Action.extracts() {
			path, empty, skipped, err := Extract(doc, seg, lay)
			switch {
			case err != nil:
				return rep, fmt.Errorf("segment %d: %w", seg.Index, err)
			case skipped:
				rep.Skipped++
				fmt.Printf("segment %d already extracted, skipping\n", seg.Index)
			default:
				fmt.Printf("extracted segment %d -> %s\n", seg.Index, path)
				logger.Printf("extracted segment %d: %s", seg.Index, path)
				if empty {
					rep.EmptyExtractions = append(rep.EmptyExtractions, seg.Index)
					fmt.Printf("WARNING: segment %d produced no text (image-only pages?); refine %s by hand before translating\n", seg.Index, path)
					logger.Printf("WARNING: empty extraction for segment %d", seg.Index)
				}
			}
		}

		if opts.Action.translates() {
			path, skipped, err := orch.Translate(ctx, doc, seg, lay)
			switch {
			case err != nil:
				// One segment's backend failure must not stop the rest of
				// the batch.
				rep.Failures = append(rep.Failures, Failure{Index: seg.Index, Title: seg.Title, Error: err.Error()})
				fmt.Printf("ERROR: segment %d (%s): %v\n", seg.Index, seg.Title, err)
				logger.Printf("ERROR: segment %d (%s): %v", seg.Index, seg.Title, err)
			case skipped:
				rep.Skipped++
				fmt.Printf("segment %d already translated, skipping\n", seg.Index)
			default:
				rep.Translated++
				fmt.Printf("translated segment %d (%s) -> %s\n", seg.Index, seg.Title, path)
				logger.Printf("translated segment %d: %s", seg.Index, path)
			}
		}
	}

	return rep, nil
}

// newProgressLogger appends to the progress log file; logging must never be
// the reason a run fails, so open errors degrade to a discarding logger.
func newProgressLogger(path string) *log.Logger {
	if path == "" {
		return log.New(io.Discard, "", 0)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard, "", 0)
	}
	return log.New(f, "", log.LstdFlags)
}

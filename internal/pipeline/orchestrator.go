package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"booktrans/internal/ai"
	"booktrans/internal/layout"
	"booktrans/internal/segment"
)

// DefaultCallTimeout bounds a single backend call. Generous on purpose: a
// full chapter can take minutes, but an indefinite hang must not stall the
// rest of the batch.
const DefaultCallTimeout = 5 * time.Minute

// Orchestrator runs the translation stage for one segment at a time.
type Orchestrator struct {
	Backend ai.Translator
	Lang    string
	Timeout time.Duration
}

// Translate resolves the best text source for the segment (refined beats raw
// extraction, extracting on the fly when neither exists), consults the skip
// gate on the translated artifact, and persists the backend output verbatim.
func (o *Orchestrator) Translate(ctx context.Context, src PageSource, seg segment.Segment, lay layout.Layout) (path string, skipped bool, err error) {
	path = lay.ArtifactPath(seg, layout.StageTranslated)
	if ShouldSkip(path) {
		return path, true, nil
	}

	text, err := o.resolveSource(src, seg, lay)
	if err != nil {
		return "", false, err
	}
	if strings.TrimSpace(text) == "" {
		return "", false, fmt.Errorf("no text to translate (extraction was empty; refine %s by hand first)", lay.ArtifactPath(seg, layout.StageExtracted))
	}

	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := o.Backend.Translate(callCtx, text, o.Lang)
	if err != nil {
		return "", false, err
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return "", false, err
	}
	return path, false, nil
}

// resolveSource prefers the manually refined artifact, then the raw
// extraction, then extracts on the fly.
func (o *Orchestrator) resolveSource(src PageSource, seg segment.Segment, lay layout.Layout) (string, error) {
	refined := lay.ArtifactPath(seg, layout.StageRefined)
	if ShouldSkip(refined) {
		b, err := os.ReadFile(refined)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	extracted := lay.ArtifactPath(seg, layout.StageExtracted)
	if !ShouldSkip(extracted) {
		if _, _, _, err := Extract(src, seg, lay); err != nil {
			return "", err
		}
	}
	b, err := os.ReadFile(extracted)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

package pipeline

import (
	"fmt"
	"os"
	"strings"

	"booktrans/internal/layout"
	"booktrans/internal/segment"
)

// PageSource provides per-page text; document.Document satisfies it.
type PageSource interface {
	PageCount() int
	PageText(page int) (string, error)
}

// Extract writes the segment's raw text artifact: per-page text in page
// order, one blank line between pages, UTF-8. A segment with no extractable
// text yields an empty file, a deliberate signal that manual refinement or
// external OCR has to fill the gap, and empty=true so callers can warn.
func Extract(src PageSource, seg segment.Segment, lay layout.Layout) (path string, empty, skipped bool, err error) {
	path = lay.ArtifactPath(seg, layout.StageExtracted)
	if ShouldSkip(path) {
		return path, false, true, nil
	}
	start, end := clampRange(seg.Start, seg.End, src.PageCount())
	var pages []string
	for p := start; p <= end; p++ {
		text, err := src.PageText(p)
		if err != nil {
			return "", false, false, fmt.Errorf("extracting page %d: %w", p, err)
		}
		pages = append(pages, strings.TrimRight(text, "\n"))
	}
	content := strings.Join(pages, "\n\n")
	if strings.TrimSpace(content) == "" {
		// Joining blank pages still emits separators; a no-text segment must
		// produce a truly empty file or the resume gate would treat the
		// hollow artifact as satisfied.
		content = ""
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", false, false, err
	}
	return path, content == "", false, nil
}

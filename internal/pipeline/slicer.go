package pipeline

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"booktrans/internal/document"
	"booktrans/internal/layout"
	"booktrans/internal/segment"
)

// Slice materializes one segment's page range as a standalone PDF at the
// layout's sliced-artifact path. Out-of-bounds ranges are clamped rather
// than rejected. Plain-text inputs have nothing to slice; skipped=true with
// an empty path signals that.
func Slice(doc *document.Document, seg segment.Segment, lay layout.Layout) (path string, skipped bool, err error) {
	if doc.Kind != document.KindPDF {
		return "", true, nil
	}
	path = lay.ArtifactPath(seg, layout.StageSliced)
	if ShouldSkip(path) {
		return path, true, nil
	}
	start, end := clampRange(seg.Start, seg.End, doc.Pages)
	sel := []string{fmt.Sprintf("%d-%d", start, end)}
	if err := api.TrimFile(doc.Path, path, sel, nil); err != nil {
		return "", false, fmt.Errorf("slicing pages %d-%d: %w", start, end, err)
	}
	return path, false, nil
}

func clampRange(start, end, pages int) (int, int) {
	if start < 1 {
		start = 1
	}
	if end > pages {
		end = pages
	}
	if end < start {
		end = start
	}
	return start, end
}

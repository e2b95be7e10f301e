// Package segment partitions a document into ordered, non-overlapping page
// ranges. Segment ordinals are re-derived identically on every run for the
// same document and mode; they are what the artifact filenames encode.
package segment

import (
	"errors"
	"fmt"

	"booktrans/internal/document"
)

// Mode selects the partition strategy.
type Mode string

const (
	ModeBookmark Mode = "bookmark"
	ModeChapter  Mode = "chapter"
	ModeFull     Mode = "full"
)

// ParseMode validates a mode string from the CLI.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBookmark, ModeChapter, ModeFull:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (want bookmark, chapter or full)", s)
}

// ErrNoBookmarks is returned when bookmark mode is requested on a document
// without an outline.
var ErrNoBookmarks = errors.New("document has no bookmark outline; retry with --mode chapter or --mode full")

// Segment is one translation unit: a contiguous page range with a stable
// 1-based ordinal and a derived title.
type Segment struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Start int    `json:"start"` // 1-based, inclusive
	End   int    `json:"end"`   // 1-based, inclusive, >= Start
}

// Source is the document capability set Identify needs. document.Document
// satisfies it; tests substitute fakes.
type Source interface {
	PageCount() int
	Outline() ([]document.OutlineEntry, error)
	PageText(page int) (string, error)
}

// Identify computes the ordered segment list for the given mode. Calls with
// identical inputs yield identical lists.
func Identify(src Source, mode Mode) ([]Segment, error) {
	switch mode {
	case ModeBookmark:
		return identifyByBookmarks(src)
	case ModeChapter:
		return identifyByChapters(src)
	case ModeFull:
		return fullSegment(src.PageCount()), nil
	}
	return nil, fmt.Errorf("unknown mode %q", mode)
}

func fullSegment(pages int) []Segment {
	if pages < 1 {
		pages = 1
	}
	return []Segment{{Index: 1, Title: "Full Document", Start: 1, End: pages}}
}

func identifyByBookmarks(src Source) ([]Segment, error) {
	outline, err := src.Outline()
	if err != nil {
		return nil, err
	}
	var tops []document.OutlineEntry
	for _, e := range outline {
		if e.Depth != 1 || e.Page < 1 {
			continue
		}
		// Boundaries must strictly ascend; a second bookmark on the same
		// page would make two segments claim it.
		if n := len(tops); n > 0 && e.Page <= tops[n-1].Page {
			continue
		}
		tops = append(tops, e)
	}
	if len(tops) == 0 {
		return nil, ErrNoBookmarks
	}
	return segmentsFromBoundaries(tops, src.PageCount()), nil
}

// segmentsFromBoundaries turns ordered boundary entries into segments. Each
// segment ends on the page before the next boundary; the last runs to the
// final page. A first boundary past page 1 gets a synthesized front-matter
// segment so every page belongs to exactly one segment.
func segmentsFromBoundaries(boundaries []document.OutlineEntry, pages int) []Segment {
	var segs []Segment
	if boundaries[0].Page > 1 {
		segs = append(segs, Segment{Title: "Front Matter", Start: 1, End: boundaries[0].Page - 1})
	}
	for i, b := range boundaries {
		end := pages
		if i+1 < len(boundaries) {
			end = boundaries[i+1].Page - 1
		}
		if end < b.Page {
			end = b.Page
		}
		title := b.Title
		if title == "" {
			title = fmt.Sprintf("Section %d", i+1)
		}
		segs = append(segs, Segment{Title: title, Start: b.Page, End: end})
	}
	for i := range segs {
		segs[i].Index = i + 1
	}
	return segs
}

func identifyByChapters(src Source) ([]Segment, error) {
	pages := src.PageCount()
	var boundaries []document.OutlineEntry
	for p := 1; p <= pages; p++ {
		text, err := src.PageText(p)
		if err != nil {
			return nil, err
		}
		if title, ok := detectChapterHeading(text); ok {
			boundaries = append(boundaries, document.OutlineEntry{Title: title, Page: p, Depth: 1})
		}
	}
	if len(boundaries) == 0 {
		// Absence of detectable chapters is a valid outcome; degrade to a
		// single whole-document segment.
		return fullSegment(pages), nil
	}
	return segmentsFromBoundaries(boundaries, pages), nil
}

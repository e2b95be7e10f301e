// Package layout derives the canonical artifact paths for each segment and
// pipeline stage. The naming scheme (sections_<base>/NNN_<slug>.pdf|.txt,
// translations_<base>/NNN_<slug>.txt) is the interface manual refinement and
// external tooling rely on; it must stay stable across versions.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"booktrans/internal/segment"
)

// Stage names one pipeline step's output for a segment.
type Stage string

const (
	StageSliced     Stage = "sliced"
	StageExtracted  Stage = "extracted"
	StageRefined    Stage = "refined"
	StageTranslated Stage = "translated"
)

// Layout holds the two sibling artifact roots keyed by the input filename.
type Layout struct {
	SectionsDir     string
	TranslationsDir string
}

// New derives the roots next to the input file.
func New(inputPath string) Layout {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = Sanitize(base)
	dir := filepath.Dir(inputPath)
	return Layout{
		SectionsDir:     filepath.Join(dir, "sections_"+base),
		TranslationsDir: filepath.Join(dir, "translations_"+base),
	}
}

var unsafeChars = regexp.MustCompile(`[^\w\s-]`)
var spaces = regexp.MustCompile(`\s+`)

// Sanitize makes a string safe for cross-platform filenames: characters
// outside [word, space, hyphen] are dropped and runs of spaces become a
// single underscore.
func Sanitize(s string) string {
	s = unsafeChars.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = spaces.ReplaceAllString(s, "_")
	if s == "" {
		s = "untitled"
	}
	return s
}

// EnsureDirs creates both roots; it never errors on pre-existing directories.
func (l Layout) EnsureDirs() error {
	if err := os.MkdirAll(l.SectionsDir, 0o755); err != nil {
		return err
	}
	return os.MkdirAll(l.TranslationsDir, 0o755)
}

// ArtifactPath returns the canonical path of one segment's artifact for the
// given stage.
func (l Layout) ArtifactPath(seg segment.Segment, stage Stage) string {
	name := fmt.Sprintf("%03d_%s", seg.Index, Sanitize(seg.Title))
	switch stage {
	case StageSliced:
		return filepath.Join(l.SectionsDir, name+".pdf")
	case StageExtracted:
		return filepath.Join(l.SectionsDir, name+".txt")
	case StageRefined:
		return filepath.Join(l.SectionsDir, name+".refined.txt")
	case StageTranslated:
		return filepath.Join(l.TranslationsDir, name+".txt")
	}
	return filepath.Join(l.SectionsDir, name)
}

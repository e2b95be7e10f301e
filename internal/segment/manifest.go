package segment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the sidecar file recording the segment list in the
// sections root. It pins the ordinal-to-page-range mapping so a later mode
// change or document edit cannot silently desynchronize artifact numbering.
const ManifestName = "segments.json"

type Manifest struct {
	Source   string    `json:"source"`
	Mode     Mode      `json:"mode"`
	Pages    int       `json:"pages"`
	Segments []Segment `json:"segments"`
}

// WriteManifest persists the manifest into dir, overwriting any previous one.
func WriteManifest(dir string, m Manifest) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ManifestName), append(b, '\n'), 0o644)
}

// LoadManifest reads the manifest from dir. ok is false when none exists.
func LoadManifest(dir string) (Manifest, bool, error) {
	b, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, false, nil
		}
		return Manifest{}, false, err
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return Manifest{}, false, fmt.Errorf("corrupt %s: %w", ManifestName, err)
	}
	return m, true, nil
}

// CheckManifest verifies that a previously recorded manifest is compatible
// with the segments derived on this run. Existing artifacts are numbered by
// the recorded segmentation; diverging from it would attach old artifacts to
// the wrong pages.
func CheckManifest(prev Manifest, mode Mode, pages int, segs []Segment) error {
	if prev.Mode != mode {
		return fmt.Errorf("sections were created with --mode %s, refusing to continue with --mode %s (delete the sections and translations directories to restart)", prev.Mode, mode)
	}
	if prev.Pages != pages {
		return fmt.Errorf("document page count changed from %d to %d since sections were created (delete the sections and translations directories to restart)", prev.Pages, pages)
	}
	if len(prev.Segments) != len(segs) {
		return fmt.Errorf("segment count changed from %d to %d since sections were created (delete the sections and translations directories to restart)", len(prev.Segments), len(segs))
	}
	for i, s := range segs {
		p := prev.Segments[i]
		if p.Index != s.Index || p.Start != s.Start || p.End != s.End {
			return fmt.Errorf("segment %d boundaries changed from %d-%d to %d-%d since sections were created", s.Index, p.Start, p.End, s.Start, s.End)
		}
	}
	return nil
}

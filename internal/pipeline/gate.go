package pipeline

import "os"

// ShouldSkip is the resume gate shared by every mutating stage: a stage is
// satisfied iff its target artifact exists and is non-empty. Forcing a redo
// means deleting the artifact; there is no force flag.
func ShouldSkip(artifactPath string) bool {
	fi, err := os.Stat(artifactPath)
	return err == nil && fi.Size() > 0
}

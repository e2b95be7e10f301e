package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldSkip(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.txt")
	assert.False(t, ShouldSkip(missing), "absent artifact must be redone")

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	assert.False(t, ShouldSkip(empty), "empty artifact must be redone")

	full := filepath.Join(dir, "full.txt")
	require.NoError(t, os.WriteFile(full, []byte("done"), 0o644))
	assert.True(t, ShouldSkip(full))
}

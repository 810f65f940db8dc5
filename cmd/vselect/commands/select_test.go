package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFile = `
candidates:
  - group: org.example
    name: lib
    version: "1.3"
    status: milestone
    attributes:
      color: red
  - group: org.example
    name: lib
    version: "2.0"
`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candidates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCandidates(t *testing.T) {
	path := writeSample(t, sampleFile)

	candidates, err := loadCandidates(path)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "org.example:lib:1.3", candidates[0].ID().String())
	desc, ok := candidates[0].PeekDescriptor()
	require.True(t, ok)
	assert.Equal(t, "milestone", desc.Status)
	assert.Equal(t, "red", desc.Attributes["color"])

	// Status defaults to release when omitted.
	desc, ok = candidates[1].PeekDescriptor()
	require.True(t, ok)
	assert.Equal(t, "release", desc.Status)
}

func TestLoadCandidatesErrors(t *testing.T) {
	if _, err := loadCandidates(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should error")
	}

	empty := writeSample(t, "candidates: []")
	if _, err := loadCandidates(empty); err == nil {
		t.Error("empty candidate list should error")
	}

	noVersion := writeSample(t, "candidates:\n  - name: lib\n")
	if _, err := loadCandidates(noVersion); err == nil {
		t.Error("candidate without version should error")
	}
}

func TestParseAttrFlags(t *testing.T) {
	attrs, err := parseAttrFlags([]string{"color=red", "shape=round"})
	require.NoError(t, err)
	assert.Equal(t, "red", attrs["color"])
	assert.Equal(t, "round", attrs["shape"])

	attrs, err = parseAttrFlags(nil)
	require.NoError(t, err)
	assert.Nil(t, attrs)

	_, err = parseAttrFlags([]string{"colorred"})
	assert.Error(t, err)

	_, err = parseAttrFlags([]string{"=red"})
	assert.Error(t, err)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukisch/DokuReader/internal/capability"
)

var mergeCaps = capability.Set{MergeEngine: true}

// makePDF writes a valid PDF with the given number of pages.
func makePDF(t *testing.T, dir, name string, pages int) string {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	for i := 0; i < pages; i++ {
		pdf.AddPage()
		pdf.Text(100, 100, fmt.Sprintf("%s page %d", name, i+1))
	}
	path := filepath.Join(dir, name)
	require.NoError(t, pdf.OutputFileAndClose(path))
	return path
}

func TestMergePreservesInputsAndCounts(t *testing.T) {
	dir := t.TempDir()
	// Deliberately not in alphabetical order; the list order is authoritative.
	inputs := []string{
		makePDF(t, dir, "zz.pdf", 1),
		makePDF(t, dir, "aa.pdf", 2),
		makePDF(t, dir, "mm.pdf", 1),
	}
	out := filepath.Join(dir, "out", "collection.pdf")
	require.NoError(t, os.MkdirAll(filepath.Dir(out), 0o755))

	res, err := New(mergeCaps, nil).Merge(inputs, out)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Merged)
	assert.Equal(t, 3, res.Attempted)

	n, err := PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestMergeSkipsUnreadableInput(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(broken, []byte("not a pdf"), 0o644))

	inputs := []string{
		makePDF(t, dir, "a.pdf", 1),
		broken,
		makePDF(t, dir, "b.pdf", 1),
	}
	out := filepath.Join(dir, "collection.pdf")

	var log bytes.Buffer
	res, err := New(mergeCaps, &log).Merge(inputs, out)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Merged)
	assert.Equal(t, 3, res.Attempted)
	assert.Contains(t, log.String(), "broken.pdf")

	n, err := PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMergeAllUnreadable(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(broken, []byte("junk"), 0o644))
	out := filepath.Join(dir, "collection.pdf")

	_, err := New(mergeCaps, nil).Merge([]string{broken}, out)
	require.ErrorIs(t, err, ErrNothingToMerge)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output file may be created")
}

func TestMergeEngineUnavailable(t *testing.T) {
	dir := t.TempDir()
	in := makePDF(t, dir, "a.pdf", 1)
	out := filepath.Join(dir, "collection.pdf")

	_, err := New(capability.Set{}, nil).Merge([]string{in}, out)
	require.ErrorIs(t, err, ErrEngineUnavailable)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMergeLeavesNoScratchFiles(t *testing.T) {
	dir := t.TempDir()
	in := makePDF(t, dir, "a.pdf", 1)
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	out := filepath.Join(outDir, "collection.pdf")

	_, err := New(mergeCaps, nil).Merge([]string{in}, out)
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "collection.pdf", entries[0].Name())
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package office

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukisch/DokuReader/internal/capability"
)

// mockExecutor records invocations and optionally simulates the engine by
// dropping the expected output file, returning the configured error.
type mockExecutor struct {
	calls     [][]string
	createOut string
	err       error
}

func (m *mockExecutor) Run(_ context.Context, name string, args ...string) error {
	m.calls = append(m.calls, append([]string{name}, args...))
	if m.createOut != "" {
		if err := os.WriteFile(m.createOut, []byte("%PDF-1.4"), 0o644); err != nil {
			return err
		}
	}
	return m.err
}

func officeCaps() capability.Set {
	return capability.Set{OfficeEngine: true, OfficePath: "/usr/bin/soffice"}
}

func TestConvertHeadlessSuccess(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "letter.docx")
	want := filepath.Join(dir, "letter.pdf")

	exec := &mockExecutor{createOut: want}
	c := &Converter{caps: officeCaps(), exec: exec, timeout: time.Minute}

	out, err := c.ConvertToPDF(context.Background(), src, dir)
	require.NoError(t, err)
	assert.Equal(t, want, out)

	require.Len(t, exec.calls, 1)
	assert.Equal(t, []string{
		"/usr/bin/soffice", "--headless", "--convert-to", "pdf", "--outdir", dir, src,
	}, exec.calls[0])
}

func TestConvertIgnoresEngineExitStatus(t *testing.T) {
	// The engine's exit code is unreliable; the output file existing is the
	// only success criterion.
	dir := t.TempDir()
	src := filepath.Join(dir, "report.odt")
	want := filepath.Join(dir, "report.pdf")

	exec := &mockExecutor{createOut: want, err: errors.New("exit status 1")}
	c := &Converter{caps: officeCaps(), exec: exec, timeout: time.Minute}

	out, err := c.ConvertToPDF(context.Background(), src, dir)
	require.NoError(t, err)
	assert.Equal(t, want, out)
}

func TestConvertEngineProducedNothing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "letter.doc")

	exec := &mockExecutor{}
	c := &Converter{caps: officeCaps(), exec: exec, timeout: time.Minute}

	_, err := c.ConvertToPDF(context.Background(), src, dir)
	require.ErrorIs(t, err, capability.ErrUnavailable)
	assert.Len(t, exec.calls, 1)
}

func TestConvertNoEngineInstalled(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "letter.rtf")

	exec := &mockExecutor{}
	c := &Converter{caps: capability.Set{}, exec: exec, timeout: time.Minute}

	_, err := c.ConvertToPDF(context.Background(), src, dir)
	require.ErrorIs(t, err, capability.ErrUnavailable)
	assert.Empty(t, exec.calls, "no engine should be invoked when none is installed")
}

func TestStrategyOrder(t *testing.T) {
	// The headless suite is the primary engine; automation is the fallback.
	require.Len(t, strategies, 2)
	assert.Equal(t, "headless office suite", strategies[0].name)
	assert.Equal(t, "word-processor automation", strategies[1].name)
}

func TestNewAppliesDefaultTimeout(t *testing.T) {
	c := New(capability.Set{}, 0)
	assert.Equal(t, DefaultTimeout, c.timeout)

	c = New(capability.Set{}, 10*time.Second)
	assert.Equal(t, 10*time.Second, c.timeout)
}

func TestExpectedOutput(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"/in/letter.docx", "letter.pdf"},
		{"/in/archive.tar.odt", "archive.tar.pdf"},
		{"plain", "plain.pdf"},
	}
	for _, tt := range tests {
		got := expectedOutput(tt.src, "/work")
		assert.Equal(t, filepath.Join("/work", tt.want), got)
	}
}

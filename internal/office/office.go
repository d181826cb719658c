// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package office converts word-processor documents (doc, docx, odt, rtf)
// into PDFs by driving an external engine. Two strategies are tried in fixed
// order: the headless office suite found on PATH, then the platform
// word-processor automation bridge (Windows only).
package office

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/lukisch/DokuReader/internal/capability"
)

// DefaultTimeout bounds one external engine invocation.
const DefaultTimeout = 3 * time.Minute

// executor abstracts external command execution for testing.
type executor interface {
	Run(ctx context.Context, name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Converter turns one word-processor document into a temporary PDF.
type Converter struct {
	caps    capability.Set
	exec    executor
	timeout time.Duration
}

// strategy is one candidate engine for converting an office document.
type strategy struct {
	name      string
	available func(c *Converter) bool
	convert   func(c *Converter, ctx context.Context, src, workDir, out string) (string, bool)
}

var strategies = []strategy{
	{
		name:      "headless office suite",
		available: func(c *Converter) bool { return c.caps.OfficeEngine },
		convert: func(c *Converter, ctx context.Context, src, workDir, out string) (string, bool) {
			return c.headlessConvert(ctx, src, workDir, out)
		},
	},
	{
		name:      "word-processor automation",
		available: func(c *Converter) bool { return wordAutomationSupported },
		convert: func(c *Converter, ctx context.Context, src, _, out string) (string, bool) {
			return c.wordAutomation(ctx, src, out)
		},
	},
}

// New returns a Converter bound to the given capability set. A zero or
// negative timeout selects DefaultTimeout.
func New(caps capability.Set, timeout time.Duration) *Converter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Converter{caps: caps, exec: osExecutor{}, timeout: timeout}
}

// ConvertToPDF converts the document at sourcePath into workDir/<stem>.pdf,
// trying the headless engine first and the word-processor bridge second,
// stopping at the first success. When both strategies are unavailable or
// fail it returns capability.ErrUnavailable; the caller never retries
// beyond this fixed sequence.
func (c *Converter) ConvertToPDF(ctx context.Context, sourcePath, workDir string) (string, error) {
	out := expectedOutput(sourcePath, workDir)

	for _, s := range strategies {
		if !s.available(c) {
			continue
		}
		if path, ok := s.convert(c, ctx, sourcePath, workDir, out); ok {
			return path, nil
		}
	}
	return "", capability.ErrUnavailable
}

// headlessConvert invokes the office suite in batch mode. The engine's exit
// status is unreliable, so success is judged solely by the expected output
// file existing afterward.
func (c *Converter) headlessConvert(ctx context.Context, src, workDir, out string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_ = c.exec.Run(ctx, c.caps.OfficePath,
		"--headless", "--convert-to", "pdf", "--outdir", workDir, src)

	if _, err := os.Stat(out); err == nil {
		return out, true
	}
	return "", false
}

// expectedOutput is the output path the engine derives from the source name.
func expectedOutput(src, workDir string) string {
	base := filepath.Base(src)
	return filepath.Join(workDir, strings.TrimSuffix(base, filepath.Ext(base))+".pdf")
}

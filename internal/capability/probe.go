// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package capability detects which optional conversion engines are usable in
// the current environment. Detection runs once per process; absence of a
// capability is a normal state, never an error.
package capability

import (
	"errors"
	"os/exec"
	"sync"
)

// ErrUnavailable reports that no tool for a requested conversion is usable.
// Converters return it (wrapped or bare) so callers can tell an uninstalled
// engine apart from a genuine conversion failure.
var ErrUnavailable = errors.New("conversion tool unavailable")

// officeBinaries lists the headless office-suite executables probed on PATH,
// in preference order.
var officeBinaries = []string{"soffice", "libreoffice"}

// Set records which optional conversion engines this process can use.
// Components receive a Set by value instead of re-probing per file.
type Set struct {
	// ImageCodec reports whether raster images (JPEG, GIF, PNG) can be decoded.
	ImageCodec bool

	// VectorWriter reports whether the vector PDF writer is linked.
	VectorWriter bool

	// OfficeEngine reports whether a headless office suite was found on PATH.
	OfficeEngine bool

	// MergeEngine reports whether the PDF merge library is linked.
	MergeEngine bool

	// OfficePath is the resolved office-suite binary; empty when OfficeEngine
	// is false.
	OfficePath string
}

// executor abstracts binary lookup for testing.
type executor interface {
	LookPath(file string) (string, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

var (
	detectOnce sync.Once
	detected   Set
)

// Detect probes the environment on first call and returns the cached Set on
// every call after that.
func Detect() Set {
	detectOnce.Do(func() { detected = detect(osExecutor{}) })
	return detected
}

func detect(exec executor) Set {
	s := Set{
		// gofpdf, pdfcpu and the image decoders are linked at build time,
		// so these probes hold whenever this binary runs at all.
		ImageCodec:   true,
		VectorWriter: true,
		MergeEngine:  true,
	}
	for _, bin := range officeBinaries {
		if path, err := exec.LookPath(bin); err == nil {
			s.OfficeEngine = true
			s.OfficePath = path
			break
		}
	}
	return s
}

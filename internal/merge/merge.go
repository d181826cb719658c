// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge concatenates ordered PDFs into one output document.
package merge

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/lukisch/DokuReader/internal/capability"
)

var (
	// ErrEngineUnavailable reports that the PDF merge library is not usable.
	ErrEngineUnavailable = errors.New("pdf merge engine unavailable")

	// ErrNothingToMerge reports that no input survived validation.
	ErrNothingToMerge = errors.New("no mergeable inputs")
)

// Result summarizes one merge call.
type Result struct {
	OutputPath string

	// Merged counts inputs whose pages made it into the output.
	Merged int

	// Attempted counts inputs handed to Merge.
	Attempted int
}

// Merger appends PDFs in list order into a single output document.
type Merger struct {
	caps capability.Set
	w    io.Writer
}

// New returns a Merger bound to the capability set. Notices about skipped
// unreadable inputs go to w.
func New(caps capability.Set, w io.Writer) *Merger {
	if w == nil {
		w = io.Discard
	}
	return &Merger{caps: caps, w: w}
}

// Merge appends every readable input's pages, in list order, into one
// document at outputPath. An input that cannot be parsed is skipped with a
// notice instead of aborting the whole merge. The output is assembled in a
// scratch file and moved into place afterward, so a mid-merge failure never
// leaves a truncated file at outputPath.
func (m *Merger) Merge(orderedPaths []string, outputPath string) (Result, error) {
	res := Result{OutputPath: outputPath, Attempted: len(orderedPaths)}
	if !m.caps.MergeEngine {
		return res, ErrEngineUnavailable
	}

	readable := make([]string, 0, len(orderedPaths))
	for _, p := range orderedPaths {
		if _, err := api.PageCountFile(p); err != nil {
			fmt.Fprintf(m.w, "merge: skipping unreadable input %s: %v\n", p, err)
			continue
		}
		readable = append(readable, p)
	}
	if len(readable) == 0 {
		return res, ErrNothingToMerge
	}

	scratch, err := os.CreateTemp(filepath.Dir(outputPath), ".merge-*.pdf")
	if err != nil {
		return res, fmt.Errorf("creating merge scratch file: %w", err)
	}
	scratchPath := scratch.Name()
	scratch.Close()
	defer os.Remove(scratchPath)

	if err := api.MergeCreateFile(readable, scratchPath, false, nil); err != nil {
		return res, fmt.Errorf("merging %d documents: %w", len(readable), err)
	}
	if err := os.Rename(scratchPath, outputPath); err != nil {
		return res, fmt.Errorf("moving merged output into place: %w", err)
	}

	res.Merged = len(readable)
	return res, nil
}

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	return api.PageCountFile(path)
}

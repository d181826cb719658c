// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collate drives one collection-PDF export end to end: classify each
// document, convert or pass through, then merge everything in input order.
package collate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lukisch/DokuReader/internal/capability"
	"github.com/lukisch/DokuReader/internal/merge"
	"github.com/lukisch/DokuReader/pkg/types"
)

// Status classifies the outcome for one source document.
type Status string

const (
	StatusMerged             Status = "merged"
	StatusSkippedUnsupported Status = "skipped-unsupported"
	StatusSkippedNoTool      Status = "skipped-no-tool"
	StatusFailed             Status = "failed"
)

// Outcome records what happened to one source document during a run.
// The ordered outcome list is the job's sole audit trail.
type Outcome struct {
	Path   string
	Status Status
	Detail string
}

// Line renders the outcome as one human-readable audit line.
func (o Outcome) Line() string {
	switch o.Status {
	case StatusMerged:
		return fmt.Sprintf("OK: %s: %s", o.Detail, o.Path)
	case StatusSkippedUnsupported:
		return fmt.Sprintf("Skipped: unsupported format: %s", o.Path)
	case StatusSkippedNoTool:
		return fmt.Sprintf("Skipped: %s: %s", o.Detail, o.Path)
	default:
		return fmt.Sprintf("Error: %s: %s", o.Detail, o.Path)
	}
}

// ResultKind is the job-level verdict of one pipeline run.
type ResultKind string

const (
	ResultSuccess        ResultKind = "success"
	ResultNoInput        ResultKind = "no-input"
	ResultNothingToMerge ResultKind = "nothing-to-merge"
	ResultMergeFailed    ResultKind = "merge-failed"
)

// Result is the terminal summary of one export job. Per-document problems
// never surface here; only an empty input list, an empty merge list, or a
// failed merge decide the Kind.
type Result struct {
	Kind       ResultKind
	OutputPath string
	Log        []Outcome

	// Merged and Attempted count documents, not pages.
	Merged    int
	Attempted int

	// Err carries the cause for ResultMergeFailed.
	Err error
}

// Renderer turns one text or image file into a standalone PDF.
type Renderer interface {
	RenderToPDF(sourcePath, workDir string) (string, error)
}

// OfficeConverter turns one word-processor document into a standalone PDF.
type OfficeConverter interface {
	ConvertToPDF(ctx context.Context, sourcePath, workDir string) (string, error)
}

// Merger concatenates ordered PDFs into one output document.
type Merger interface {
	Merge(orderedPaths []string, outputPath string) (merge.Result, error)
}

// Pipeline orchestrates one export job. It is stateless between runs and
// safe to run off the interactive thread; concurrent runs must not share an
// output path.
type Pipeline struct {
	render Renderer
	office OfficeConverter
	merger Merger
	w      io.Writer
}

// New wires a Pipeline from its three delegates. Per-item progress lines go
// to w.
func New(render Renderer, office OfficeConverter, merger Merger, w io.Writer) *Pipeline {
	if w == nil {
		w = io.Discard
	}
	return &Pipeline{render: render, office: office, merger: merger, w: w}
}

// Run processes docs strictly in input order and merges every produced PDF
// into outputPath. Documents are never mutated and source files never
// touched. The scoped working directory is removed on every exit path.
func (p *Pipeline) Run(ctx context.Context, docs []types.DocumentRef, outputPath string) Result {
	if len(docs) == 0 {
		return Result{Kind: ResultNoInput}
	}

	workDir, err := os.MkdirTemp("", "dokureader-export-*")
	if err != nil {
		return Result{Kind: ResultMergeFailed, Err: fmt.Errorf("creating work directory: %w", err)}
	}
	defer os.RemoveAll(workDir)

	var (
		log       []Outcome
		mergeList []string
	)
	for i, d := range docs {
		outcome, pdfPath := p.processOne(ctx, d, filepath.Join(workDir, fmt.Sprintf("%04d", i)))
		log = append(log, outcome)
		fmt.Fprintln(p.w, outcome.Line())
		if pdfPath != "" {
			mergeList = append(mergeList, pdfPath)
		}
	}

	res := Result{Log: log, Attempted: len(docs)}
	if len(mergeList) == 0 {
		res.Kind = ResultNothingToMerge
		return res
	}

	mres, err := p.merger.Merge(mergeList, outputPath)
	if err != nil {
		res.Kind = ResultMergeFailed
		res.Err = err
		return res
	}
	res.Kind = ResultSuccess
	res.OutputPath = mres.OutputPath
	res.Merged = mres.Merged
	return res
}

// processOne converts a single document into its own subdirectory of the
// job's work directory, so equal base names from different source
// directories cannot overwrite each other's temporary PDFs. Failures,
// including a vanished file and a panicking delegate, are contained at the
// document boundary so the batch always continues.
func (p *Pipeline) processOne(ctx context.Context, d types.DocumentRef, itemDir string) (out Outcome, pdfPath string) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Path: d.Path, Status: StatusFailed, Detail: fmt.Sprintf("converter panic: %v", r)}
			pdfPath = ""
		}
	}()

	if _, err := os.Stat(d.Path); err != nil {
		return Outcome{Path: d.Path, Status: StatusFailed, Detail: err.Error()}, ""
	}
	if err := os.MkdirAll(itemDir, 0o755); err != nil {
		return Outcome{Path: d.Path, Status: StatusFailed, Detail: err.Error()}, ""
	}

	switch types.Classify(d.Path) {
	case types.FormatPDF:
		return Outcome{Path: d.Path, Status: StatusMerged, Detail: "PDF taken as-is"}, d.Path
	case types.FormatText:
		return p.outcomeOf(d.Path, "text rendered to PDF", func() (string, error) {
			return p.render.RenderToPDF(d.Path, itemDir)
		})
	case types.FormatImage:
		return p.outcomeOf(d.Path, "image rendered to PDF", func() (string, error) {
			return p.render.RenderToPDF(d.Path, itemDir)
		})
	case types.FormatOffice:
		return p.outcomeOf(d.Path, "office document converted to PDF", func() (string, error) {
			return p.office.ConvertToPDF(ctx, d.Path, itemDir)
		})
	default:
		return Outcome{Path: d.Path, Status: StatusSkippedUnsupported}, ""
	}
}

// outcomeOf maps a delegate call onto the outcome taxonomy: tool absence
// becomes a skip, anything else a contained failure.
func (p *Pipeline) outcomeOf(path, okDetail string, fn func() (string, error)) (Outcome, string) {
	pdfPath, err := fn()
	if err != nil {
		if errors.Is(err, capability.ErrUnavailable) {
			return Outcome{Path: path, Status: StatusSkippedNoTool, Detail: err.Error()}, ""
		}
		return Outcome{Path: path, Status: StatusFailed, Detail: err.Error()}, ""
	}
	return Outcome{Path: path, Status: StatusMerged, Detail: okDetail}, pdfPath
}

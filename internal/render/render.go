// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render converts single text or image files into standalone
// one-document PDFs. Each format class has an ordered chain of candidate
// strategies; the first usable strategy that succeeds wins.
package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/text/encoding/charmap"

	"github.com/lukisch/DokuReader/internal/capability"
	"github.com/lukisch/DokuReader/pkg/types"
)

// Page geometry: ISO A4 in points, 2 cm margins, 11 pt monospace text at a
// 12 pt line height.
const (
	pageWidth  = 595.28
	pageHeight = 841.89
	margin     = 56.69
	fontSize   = 11
	lineHeight = 12
)

// strategy is one candidate method for turning a source file into a PDF.
type strategy struct {
	name      string
	available func(capability.Set) bool
	convert   func(src, workDir string) (string, error)
}

var textStrategies = []strategy{
	{
		name:      "vector writer",
		available: func(c capability.Set) bool { return c.VectorWriter },
		convert:   textToPDF,
	},
}

var imageStrategies = []strategy{
	{
		name:      "vector writer",
		available: func(c capability.Set) bool { return c.VectorWriter },
		convert:   imageToPDF,
	},
	{
		name:      "image codec",
		available: func(c capability.Set) bool { return c.ImageCodec },
		convert:   imageImport,
	},
}

// Renderer converts non-PDF, non-office sources using the best available
// strategy for their format.
type Renderer struct {
	caps capability.Set
}

// New returns a Renderer bound to the given capability set.
func New(caps capability.Set) *Renderer {
	return &Renderer{caps: caps}
}

// RenderToPDF converts the file at sourcePath into a new PDF inside workDir
// and returns its path. It returns capability.ErrUnavailable when no strategy
// for the format is usable, and the last strategy error when every usable
// strategy failed. A failed strategy never leaves partial output behind.
func (r *Renderer) RenderToPDF(sourcePath, workDir string) (string, error) {
	var chain []strategy
	switch types.Classify(sourcePath) {
	case types.FormatText:
		chain = textStrategies
	case types.FormatImage:
		chain = imageStrategies
	default:
		return "", fmt.Errorf("no renderer for %s: %w", sourcePath, capability.ErrUnavailable)
	}

	var lastErr error
	usable := 0
	for _, s := range chain {
		if !s.available(r.caps) {
			continue
		}
		usable++
		out, err := s.convert(sourcePath, workDir)
		if err == nil {
			return out, nil
		}
		lastErr = fmt.Errorf("%s: %w", s.name, err)
	}
	if usable == 0 {
		return "", capability.ErrUnavailable
	}
	return "", lastErr
}

// textToPDF paginates a plain-text file onto A4 pages. Lines are greedily
// wrapped at a fixed character count derived from the printable width;
// exact glyph metrics are not required. Even an empty source yields one page.
func textToPDF(src, workDir string) (out string, err error) {
	out = filepath.Join(workDir, stem(src)+"_txt.pdf")
	defer func() {
		if err != nil {
			os.Remove(out)
			out = ""
		}
	}()

	text, err := readText(src)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetFont("Courier", "", fontSize)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Courier at 11 pt advances 0.6 em per glyph.
	usableWidth := float64(pageWidth - 2*margin)
	maxChars := int(usableWidth / (fontSize * 0.6))

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		for {
			part := line
			if runes := []rune(line); len(runes) > maxChars {
				part = string(runes[:maxChars])
				line = string(runes[maxChars:])
			} else {
				line = ""
			}
			pdf.CellFormat(0, lineHeight, tr(part), "", 1, "L", false, 0, "")
			if line == "" {
				break
			}
		}
	}

	if err := pdf.OutputFileAndClose(out); err != nil {
		return "", fmt.Errorf("writing text PDF: %w", err)
	}
	return out, nil
}

// imageToPDF places the image on a single A4 page, scaled uniformly to fit
// the printable area and centered.
func imageToPDF(src, workDir string) (out string, err error) {
	out = filepath.Join(workDir, stem(src)+"_img.pdf")
	defer func() {
		if err != nil {
			os.Remove(out)
			out = ""
		}
	}()

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: ""}
	info := pdf.RegisterImageOptions(src, opts)
	if pdf.Err() {
		return "", fmt.Errorf("decoding %s: %v", src, pdf.Error())
	}

	iw, ih := info.Extent()
	if iw <= 0 || ih <= 0 {
		return "", fmt.Errorf("image %s has no extent", src)
	}
	scale := math.Min((pageWidth-2*margin)/iw, (pageHeight-2*margin)/ih)
	w, h := iw*scale, ih*scale
	x := (pageWidth - w) / 2
	y := (pageHeight - h) / 2

	pdf.ImageOptions(src, x, y, w, h, false, opts, 0, "")
	if err := pdf.OutputFileAndClose(out); err != nil {
		return "", fmt.Errorf("writing image PDF: %w", err)
	}
	return out, nil
}

// imageImport is the codec fallback: a direct single-page image-to-PDF
// import at the codec's default resolution handling.
func imageImport(src, workDir string) (out string, err error) {
	out = filepath.Join(workDir, stem(src)+"_img.pdf")
	defer func() {
		if err != nil {
			os.Remove(out)
			out = ""
		}
	}()

	if err := api.ImportImagesFile([]string{src}, out, nil, nil); err != nil {
		return "", fmt.Errorf("importing %s: %w", src, err)
	}
	return out, nil
}

// readText loads the whole file as UTF-8, falling back to Latin-1 when the
// content is not valid UTF-8. Decoding is lossy and never a hard failure.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// Latin-1 maps every byte; this is unreachable in practice, but a
		// raw conversion still beats failing the document.
		return string(data), nil
	}
	return string(decoded), nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for the document library:
// document references, format classification, read filters, and
// configuration structs.
package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DocumentRef is a stored reference to a document: a filesystem path plus a
// read flag. The library never copies, moves, or deletes the underlying file.
type DocumentRef struct {
	// Path is the path of the referenced file. It identifies the document
	// within its topic (case-sensitive).
	Path string `json:"path" yaml:"path"`

	// Read marks the document as read.
	Read bool `json:"read" yaml:"read"`
}

// FormatClass groups file extensions by conversion strategy.
type FormatClass string

const (
	FormatPDF         FormatClass = "pdf"
	FormatText        FormatClass = "text"
	FormatImage       FormatClass = "image"
	FormatOffice      FormatClass = "office"
	FormatUnsupported FormatClass = "unsupported"
)

// extClasses maps lowercased file extensions to their format class.
var extClasses = map[string]FormatClass{
	".pdf":  FormatPDF,
	".txt":  FormatText,
	".jpg":  FormatImage,
	".jpeg": FormatImage,
	".gif":  FormatImage,
	".png":  FormatImage,
	".doc":  FormatOffice,
	".docx": FormatOffice,
	".odt":  FormatOffice,
	".rtf":  FormatOffice,
}

// Classify returns the format class for path based on its extension.
func Classify(path string) FormatClass {
	if c, ok := extClasses[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}
	return FormatUnsupported
}

// Supported reports whether path has an extension the library accepts.
func Supported(path string) bool {
	return Classify(path) != FormatUnsupported
}

// ReadFilter selects which documents of a topic take part in an export.
type ReadFilter string

const (
	FilterAll    ReadFilter = "all"
	FilterRead   ReadFilter = "read"
	FilterUnread ReadFilter = "unread"
)

// ParseReadFilter validates a filter name from user input.
func ParseReadFilter(s string) (ReadFilter, error) {
	switch f := ReadFilter(s); f {
	case FilterAll, FilterRead, FilterUnread:
		return f, nil
	}
	return "", fmt.Errorf("unknown filter %q: want all, read, or unread", s)
}

// Matches reports whether the document passes the filter.
func (f ReadFilter) Matches(d DocumentRef) bool {
	switch f {
	case FilterRead:
		return d.Read
	case FilterUnread:
		return !d.Read
	default:
		return true
	}
}

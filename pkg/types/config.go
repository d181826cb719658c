// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// LibraryConfig holds settings for the catalog store.
type LibraryConfig struct {
	// LibraryDir is the directory holding the catalog database
	// (default ~/.dokureader).
	LibraryDir string `json:"library_dir" yaml:"library_dir"`
}

// ExportConfig holds settings for collection-PDF exports.
type ExportConfig struct {
	// OutputDir is the directory merged PDFs are written to
	// (default: Desktop, falling back to the home directory).
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// OfficeTimeout bounds one external office-engine invocation (default 3m).
	OfficeTimeout time.Duration `json:"office_timeout" yaml:"office_timeout"`
}

// Config groups all settings for the CLI.
type Config struct {
	Library LibraryConfig `json:"library" yaml:"library"`
	Export  ExportConfig  `json:"export" yaml:"export"`
}

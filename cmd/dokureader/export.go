// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lukisch/DokuReader/internal/capability"
	"github.com/lukisch/DokuReader/internal/collate"
	"github.com/lukisch/DokuReader/internal/merge"
	"github.com/lukisch/DokuReader/internal/office"
	"github.com/lukisch/DokuReader/internal/render"
	"github.com/lukisch/DokuReader/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export [topic]",
	Short: "Collate a topic's documents into one merged PDF",
	Long: `Export converts a topic's documents (all, read, or unread) to PDF and
merges them, in library order, into a single collection file. PDFs pass
through untouched; text and images are rendered; word-processor documents
go through an installed office engine. Files that cannot be converted are
skipped and listed in the outcome log.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("filter", "all", "which documents to include: all, read, or unread")
	exportCmd.Flags().String("output", "", "output PDF path (default: <topic>_<filter>.pdf in the export directory)")
	exportCmd.Flags().Duration("timeout", office.DefaultTimeout, "per-document office engine timeout")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	topic := args[0]

	filterFlag, _ := cmd.Flags().GetString("filter")
	filter, err := types.ParseReadFilter(filterFlag)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	timeout := cfg.Export.OfficeTimeout
	if cmd.Flags().Changed("timeout") {
		timeout, _ = cmd.Flags().GetDuration("timeout")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	docs, err := store.FilteredDocuments(cmd.Context(), topic, filter)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		outPath = filepath.Join(exportDir(cfg.Export), fmt.Sprintf("%s_%s.pdf", topic, filter))
	}

	caps := capability.Detect()
	pipeline := collate.New(
		render.New(caps),
		office.New(caps, timeout),
		merge.New(caps, os.Stderr),
		os.Stderr,
	)

	res := pipeline.Run(cmd.Context(), docs, outPath)
	switch res.Kind {
	case collate.ResultNoInput:
		fmt.Println("No documents match the selected filter.")
		return nil
	case collate.ResultNothingToMerge:
		fmt.Println("No documents could be converted to PDF; nothing to merge.")
		return nil
	case collate.ResultMergeFailed:
		return fmt.Errorf("could not create collection PDF: %w", res.Err)
	}

	fmt.Printf("Collection PDF created: %s (%d of %d documents)\n",
		res.OutputPath, res.Merged, res.Attempted)
	return nil
}

// exportDir picks the destination for collection PDFs: the configured
// directory, else the Desktop, else the home directory.
func exportDir(cfg types.ExportConfig) string {
	if cfg.OutputDir != "" {
		return cfg.OutputDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	desktop := filepath.Join(home, "Desktop")
	if fi, err := os.Stat(desktop); err == nil && fi.IsDir() {
		return desktop
	}
	return home
}

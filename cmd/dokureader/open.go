// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/lukisch/DokuReader/internal/library"
)

var openCmd = &cobra.Command{
	Use:   "open [topic] [document]",
	Short: "Open a document in the OS default handler",
	Long: `Open launches the referenced file with the platform's default handler.
The document may be given as its stored path or just its file name.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		path, err := resolveDoc(cmd, store, args[0], args[1])
		if err != nil {
			return err
		}
		return openDefault(path)
	},
}

// resolveDoc finds a stored reference by full path or base name.
func resolveDoc(cmd *cobra.Command, store *library.Store, topic, nameOrPath string) (string, error) {
	docs, err := store.Documents(cmd.Context(), topic)
	if err != nil {
		return "", err
	}
	for _, d := range docs {
		if d.Path == nameOrPath || filepath.Base(d.Path) == nameOrPath {
			return d.Path, nil
		}
	}
	if abs, err := filepath.Abs(nameOrPath); err == nil {
		for _, d := range docs {
			if d.Path == abs {
				return d.Path, nil
			}
		}
	}
	return "", fmt.Errorf("document %s not found in topic %s", nameOrPath, topic)
}

// openDefault hands the file to the platform's default handler.
func openDefault(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(openCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Manage a topic's document references",
}

var docAddCmd = &cobra.Command{
	Use:   "add [topic] [files...]",
	Short: "Add document references to a topic",
	Long: `Add stores references to the given files under a topic. Supported are
pdf, txt, doc, docx, odt, rtf, jpg, jpeg, gif, and png. Unsupported,
missing, and already-referenced files are skipped.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		paths := make([]string, 0, len(args)-1)
		for _, p := range args[1:] {
			abs, err := filepath.Abs(p)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", p, err)
			}
			paths = append(paths, abs)
		}

		added, err := store.AddDocuments(cmd.Context(), args[0], paths)
		if err != nil {
			return err
		}
		if added == 0 {
			fmt.Println("No new supported files added.")
			return nil
		}
		fmt.Printf("Added %d document(s) to %s\n", added, args[0])
		return nil
	},
}

var docRemoveCmd = &cobra.Command{
	Use:   "remove [topic] [path]",
	Short: "Remove a reference from a topic (the file stays untouched)",
	Args:  cobra.ExactArgs(2),
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
		if err := store.RemoveDocument(cmd.Context(), args[0], path); err != nil {
			return err
		}
		fmt.Printf("Removed %s from %s\n", path, args[0])
		return nil
	},
}

var docListCmd = &cobra.Command{
	Use:   "list [topic]",
	Short: "List a topic's documents in library order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		docs, err := store.Documents(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, d := range docs {
			mark := " "
			if d.Read {
				mark = "✓"
			}
			size := "?"
			if fi, err := os.Stat(d.Path); err == nil {
				size = humanSize(fi.Size())
			}
			ext := strings.TrimPrefix(strings.ToUpper(filepath.Ext(d.Path)), ".")
			fmt.Printf("%s %-6s %8s  %s\n", mark, ext, size, d.Path)
		}
		return nil
	},
}

var docMarkCmd = &cobra.Command{
	Use:   "mark [topic] [path]",
	Short: "Mark a document as read",
	Args:  cobra.ExactArgs(2),
	RunE:  func(cmd *cobra.Command, args []string) error { return setRead(cmd, args, true) },
}

var docUnmarkCmd = &cobra.Command{
	Use:   "unmark [topic] [path]",
	Short: "Remove the read mark from a document",
	Args:  cobra.ExactArgs(2),
	RunE:  func(cmd *cobra.Command, args []string) error { return setRead(cmd, args, false) },
}

func setRead(cmd *cobra.Command, args []string, read bool) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	path, err := resolveDoc(cmd, store, args[0], args[1])
	if err != nil {
		return err
	}
	if err := store.SetRead(cmd.Context(), args[0], path, read); err != nil {
		return err
	}
	state := "read"
	if !read {
		state = "unread"
	}
	fmt.Printf("Marked %s as %s\n", path, state)
	return nil
}

// humanSize renders a byte count the way the document list shows it.
func humanSize(n int64) string {
	size := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}

func init() {
	docCmd.AddCommand(docAddCmd, docRemoveCmd, docListCmd, docMarkCmd, docUnmarkCmd)
	rootCmd.AddCommand(docCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var topicCmd = &cobra.Command{
	Use:   "topic",
	Short: "Manage topics (add, rename, remove, list, backup)",
}

var topicAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a new topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.CreateTopic(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Created topic %s\n", args[0])
		return nil
	},
}

var topicRenameCmd = &cobra.Command{
	Use:   "rename [old] [new]",
	Short: "Rename a topic",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.RenameTopic(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Renamed topic %s to %s\n", args[0], args[1])
		return nil
	},
}

var topicRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a topic and its references (files stay untouched)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.DeleteTopic(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed topic %s\n", args[0])
		return nil
	},
}

var topicListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all topics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		topics, err := store.Topics(cmd.Context())
		if err != nil {
			return err
		}
		for _, t := range topics {
			fmt.Println(t)
		}
		return nil
	},
}

var topicExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the whole catalog as YAML to stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.ExportYAML(cmd.Context(), os.Stdout)
	},
}

var topicImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Merge a YAML catalog backup into the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening backup %s: %w", args[0], err)
		}
		defer f.Close()

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.ImportYAML(cmd.Context(), f); err != nil {
			return err
		}
		fmt.Println("Catalog imported.")
		return nil
	},
}

func init() {
	topicCmd.AddCommand(topicAddCmd, topicRenameCmd, topicRemoveCmd, topicListCmd, topicExportCmd, topicImportCmd)
	rootCmd.AddCommand(topicCmd)
}

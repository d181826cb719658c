// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dokureader CLI, a personal
// document library: topics, per-topic document references with read flags,
// and collection-PDF export.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	_ "go.uber.org/automaxprocs"

	"github.com/lukisch/DokuReader/internal/library"
	"github.com/lukisch/DokuReader/internal/office"
	"github.com/lukisch/DokuReader/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the dokureader CLI.
var rootCmd = &cobra.Command{
	Use:   "dokureader",
	Short: "Personal document library with collection-PDF export",
	Long: `dokureader manages a personal library of document references grouped by
topic. Documents keep a read/unread flag, and a topic's documents (all,
read, or unread) can be collated into one merged PDF. Only references are
stored; the files themselves stay where they are.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dokureader.yaml or ~/.config/dokureader/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dokureader")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dokureader"))
		}
	}

	viper.SetEnvPrefix("DOKUREADER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the CLI settings from the configuration file and
// environment, filling in defaults for anything left unset.
func loadConfig() types.Config {
	cfg := types.Config{
		Library: types.LibraryConfig{
			LibraryDir: viper.GetString("library.library_dir"),
		},
		Export: types.ExportConfig{
			OutputDir:     viper.GetString("export.output_dir"),
			OfficeTimeout: viper.GetDuration("export.office_timeout"),
		},
	}
	if cfg.Library.LibraryDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Library.LibraryDir = filepath.Join(home, ".dokureader")
		}
	}
	if cfg.Export.OfficeTimeout <= 0 {
		cfg.Export.OfficeTimeout = office.DefaultTimeout
	}
	return cfg
}

// openStore opens the catalog at the configured library directory.
func openStore() (*library.Store, error) {
	cfg := loadConfig()
	if cfg.Library.LibraryDir == "" {
		return nil, fmt.Errorf("resolving library directory: no home directory available")
	}
	return library.Open(cfg.Library)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_shingle_similarity/internal/config"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var verboseFlag bool

	rootCmd := &cobra.Command{
		Use:           "shinglesim",
		Short:         "Detect near-duplicate documents by shingle overlap",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose logging to stderr")

	rootCmd.AddCommand(newScanCommand(&configFlag, &verboseFlag))
	rootCmd.AddCommand(newCompareCommand(&verboseFlag))

	return rootCmd
}

// resolveConfig loads the config file when one was named, defaults otherwise.
// Flag overrides are applied by the callers before validation.
func resolveConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

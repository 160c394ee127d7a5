package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_shingle_similarity/internal/adapters/corpus"
	"github.com/baditaflorin/go_shingle_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_shingle_similarity/internal/ports"
	"github.com/baditaflorin/go_shingle_similarity/pkg/shingle"
)

func newScanCommand(configFlag *string, verboseFlag *bool) *cobra.Command {
	var (
		shingleSize int
		threshold   float64
		maxResults  int
		workers     int
		recursive   bool
		extensions  []string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Rank similar document pairs under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(*configFlag)
			if err != nil {
				return err
			}

			// Flags beat the config file when set explicitly.
			if cmd.Flags().Changed("shingle-size") {
				cfg.ShingleSize = shingleSize
			}
			if cmd.Flags().Changed("threshold") {
				cfg.Threshold = threshold
			}
			if cmd.Flags().Changed("max-results") {
				cfg.MaxResults = maxResults
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			if cmd.Flags().Changed("recursive") {
				cfg.Recursive = recursive
			}
			if cmd.Flags().Changed("ext") {
				cfg.Extensions = extensions
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			lg, err := newCLILogger(*verboseFlag)
			if err != nil {
				return err
			}
			defer lg.Close()

			var loader ports.CorpusLoader = corpus.NewFSLoader(args[0], logger.FromExisting(lg),
				corpus.WithRecursive(cfg.Recursive),
				corpus.WithExtensions(cfg.Extensions),
				corpus.WithConcurrency(cfg.Workers),
			)

			similarity, err := shingle.New(
				shingle.WithLogger(lg),
				shingle.WithShingleSize(cfg.ShingleSize),
				shingle.WithThreshold(cfg.Threshold),
				shingle.WithMaxResults(cfg.MaxResults),
				shingle.WithWorkers(cfg.Workers),
				shingle.WithOptimizedNormalizer(),
			)
			if err != nil {
				return err
			}

			sources, skips, err := loader.Load(cmd.Context())
			if err != nil {
				return err
			}

			report, err := similarity.Rank(cmd.Context(), sources)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, scanPayload{
					Results:    report.Results,
					Degenerate: report.Degenerate,
					Skipped:    skipIDs(skips),
				})
			}

			renderReport(cmd, report)

			for _, id := range report.Degenerate {
				fmt.Fprintf(cmd.ErrOrStderr(), "too short to compare: %s\n", id)
			}
			for _, skip := range skips {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %v\n", skip.Err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&shingleSize, "shingle-size", "n", shingle.DefaultShingleSize, "Tokens per shingle")
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", shingle.DefaultThreshold, "Minimum similarity a pair must exceed")
	cmd.Flags().IntVar(&maxResults, "max-results", 0, "Cap the report (0 = uncapped)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Comparison workers (0 = all CPUs)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Descend into subdirectories")
	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "Only scan files with these extensions (e.g. .txt)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")

	return cmd
}


package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_shingle_similarity/internal/core/domain"
	"github.com/baditaflorin/go_shingle_similarity/pkg/shingle"
)

func newCompareCommand(verboseFlag *bool) *cobra.Command {
	var (
		shingleSize int
		streaming   bool
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "compare <file-a> <file-b>",
		Short: "Compare two files by shingle overlap",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lg, err := newCLILogger(*verboseFlag)
			if err != nil {
				return err
			}
			defer lg.Close()

			similarity, err := shingle.New(
				shingle.WithLogger(lg),
				shingle.WithShingleSize(shingleSize),
			)
			if err != nil {
				return err
			}

			var a, b domain.Document
			if streaming {
				a, err = buildStreamed(cmd, similarity, args[0])
				if err != nil {
					return err
				}
				b, err = buildStreamed(cmd, similarity, args[1])
				if err != nil {
					return err
				}
			} else {
				a, err = buildInMemory(similarity, args[0])
				if err != nil {
					return err
				}
				b, err = buildInMemory(similarity, args[1])
				if err != nil {
					return err
				}
			}

			cmp, err := similarity.Compare(cmd.Context(), a, b)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, cmp)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s <> %s\n", cmp.IDs[0], cmp.IDs[1])
			fmt.Fprintf(cmd.OutOrStdout(), "overlap:    %d\n", cmp.Overlap)
			fmt.Fprintf(cmd.OutOrStdout(), "similarity: %.3f\n", cmp.Similarity)
			return nil
		},
	}

	cmd.Flags().IntVarP(&shingleSize, "shingle-size", "n", shingle.DefaultShingleSize, "Tokens per shingle")
	cmd.Flags().BoolVar(&streaming, "streaming", false, "Read files as streams (for large inputs)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")

	return cmd
}

func buildInMemory(s *shingle.Similarity, path string) (domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, &domain.SourceUnavailableError{ID: path, Err: err}
	}
	return s.BuildDocument(path, string(data)), nil
}

func buildStreamed(cmd *cobra.Command, s *shingle.Similarity, path string) (domain.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Document{}, &domain.SourceUnavailableError{ID: path, Err: err}
	}
	defer f.Close()
	return s.BuildDocumentFromReader(cmd.Context(), path, f)
}

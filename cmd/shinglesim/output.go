package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_shingle_similarity/internal/core/domain"
)

// scanPayload is the JSON shape of a scan run.
type scanPayload struct {
	Results    []domain.Comparison `json:"results"`
	Degenerate []string            `json:"degenerate,omitempty"`
	Skipped    []string            `json:"skipped,omitempty"`
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// skipIDs extracts the identifiers from skip records.
func skipIDs(skips []domain.Skip) []string {
	ids := make([]string, 0, len(skips))
	for _, s := range skips {
		ids = append(ids, s.ID)
	}
	return ids
}

// renderReport prints the ranked pairs as a justified table on terminals and
// as tab-separated values when piped.
func renderReport(cmd *cobra.Command, report domain.Report) {
	headers := []string{"Document A", "Document B", "Overlap", "Similarity"}
	rows := make([][]string, 0, len(report.Results))
	for _, r := range report.Results {
		rows = append(rows, []string{
			r.IDs[0],
			r.IDs[1],
			strconv.Itoa(r.Overlap),
			fmt.Sprintf("%.3f", r.Similarity),
		})
	}

	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no pairs above threshold")
		return
	}

	if stdoutIsTerminal() {
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, []columnAlignment{
			alignLeft, alignLeft, alignRight, alignRight,
		}))
		return
	}

	for _, row := range rows {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", row[0], row[1], row[2], row[3])
	}
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

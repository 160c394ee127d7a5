// Package shinglesimilarity detects near-duplicate content across plaintext
// documents by comparing shared word-sequences ("shingles") instead of exact
// text. Each document is tokenized, shingled into a set of n-token windows,
// and compared pairwise; pairs whose overlap similarity exceeds a threshold
// are reported in ranked order.
//
// The package-level functions cover the common defaults; pkg/shingle exposes
// the configurable pipeline behind them.
package shinglesimilarity

import (
	"context"

	"github.com/baditaflorin/go_shingle_similarity/internal/core/domain"
	"github.com/baditaflorin/go_shingle_similarity/pkg/shingle"
)

// Re-exported result and input types.
type (
	// Document bundles a source identifier with its shingle set.
	Document = domain.Document
	// Comparison holds the overlap count and similarity of one pair.
	Comparison = domain.Comparison
	// Source is an (identifier, raw text) input pair.
	Source = domain.Source
	// Skip records a source that could not be read.
	Skip = domain.Skip
	// Report is the ranked outcome of a run.
	Report = domain.Report
)

// CompareWithDefaults builds two documents with the default shingle size and
// compares them. It returns a DegenerateDocumentError if either text is too
// short to produce a shingle.
func CompareWithDefaults(original, candidate string) (Comparison, error) {
	s, err := newDefault()
	if err != nil {
		return Comparison{}, err
	}
	return s.CompareTexts(context.Background(), "original", original, "candidate", candidate)
}

// RankWithDefaults ranks all unordered source pairs with the default shingle
// size and threshold.
func RankWithDefaults(sources []Source) (Report, error) {
	s, err := newDefault()
	if err != nil {
		return Report{}, err
	}
	return s.Rank(context.Background(), sources)
}

func newDefault() (*shingle.Similarity, error) {
	lg, err := defaultLogger()
	if err != nil {
		return nil, err
	}
	return shingle.New(shingle.WithLogger(lg))
}

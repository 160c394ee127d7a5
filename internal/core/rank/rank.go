// Package rank enumerates unordered document pairs, filters them by
// similarity, and produces a deterministic ordered report.
package rank

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/baditaflorin/go_shingle_similarity/internal/core/domain"
	"github.com/baditaflorin/go_shingle_similarity/internal/ports"
)

// MaxJobQueueSize limits the number of pending pair comparisons.
const MaxJobQueueSize = 64

// Config holds configuration for the ranker.
type Config struct {
	// Threshold is the minimum similarity a pair must exceed to be kept.
	// The filter is strict: a pair passes when similarity > Threshold.
	Threshold float64
	// MaxResults caps the report after filtering and sorting.
	// Zero means uncapped.
	MaxResults int
	// Workers is the number of concurrent comparison workers.
	// Zero means runtime.NumCPU().
	Workers int
}

// DefaultConfig returns a default ranker configuration.
func DefaultConfig() Config {
	return Config{
		Threshold:  0.5,
		MaxResults: 0,
		Workers:    0,
	}
}

// Validate checks if the configuration is valid. Validation failures are
// fatal for a run and reported before any comparison work begins.
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return &domain.InvalidParameterError{
			Param:  "threshold",
			Reason: "must be between 0 and 1",
		}
	}
	if c.MaxResults < 0 {
		return &domain.InvalidParameterError{
			Param:  "max_results",
			Reason: "must not be negative",
		}
	}
	if c.Workers < 0 {
		return &domain.InvalidParameterError{
			Param:  "workers",
			Reason: "must not be negative",
		}
	}
	return nil
}

// Ranker produces a filtered, ordered report from a collection of documents.
type Ranker struct {
	config     Config
	comparator ports.PairComparator
	logger     ports.Logger
}

// NewRanker creates a new ranker. The configuration is validated here so an
// invalid run never starts.
func NewRanker(config Config, comparator ports.PairComparator, logger ports.Logger) (*Ranker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Ranker{
		config:     config,
		comparator: comparator,
		logger:     logger,
	}, nil
}

// Rank compares every unordered pair of distinct non-degenerate documents
// exactly once, keeps pairs whose similarity exceeds the threshold, and
// returns them ordered by similarity descending, overlap descending, then
// canonical pair identifiers ascending. Degenerate documents are excluded
// from comparison and listed separately in the report.
//
// The ordering is deterministic: identical documents and parameters always
// yield a byte-identical report.
func (r *Ranker) Rank(ctx context.Context, docs []domain.Document) (domain.Report, error) {
	kept, degenerate := partition(docs)

	r.logger.Debug("Starting ranking run",
		"documents", len(docs),
		"comparable", len(kept),
		"degenerate", len(degenerate),
		"threshold", r.config.Threshold,
	)

	passing, err := r.compareAll(ctx, kept)
	if err != nil {
		return domain.Report{}, err
	}

	sortComparisons(passing)

	if r.config.MaxResults > 0 && len(passing) > r.config.MaxResults {
		passing = passing[:r.config.MaxResults]
	}

	r.logger.Info("Ranking run complete",
		"pairs_compared", len(kept)*(len(kept)-1)/2,
		"pairs_passing", len(passing),
		"degenerate", len(degenerate),
	)

	return domain.Report{
		Results:    passing,
		Degenerate: degenerate,
	}, nil
}

// compareAll fans the pair comparisons out over a worker pool. Each
// comparison reads two immutable documents, so workers share no mutable
// state; the single final sort in Rank is the only global step.
func (r *Ranker) compareAll(ctx context.Context, docs []domain.Document) ([]domain.Comparison, error) {
	workers := r.config.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan [2]int, MaxJobQueueSize)
	results := make(chan domain.Comparison, MaxJobQueueSize)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				cmp, err := r.comparator.Compare(ctx, docs[p[0]], docs[p[1]])
				if err != nil {
					// Degenerates never reach the pool; this is
					// cancellation, and the producer drains on it.
					continue
				}
				if cmp.Similarity > r.config.Threshold {
					results <- cmp
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < len(docs); i++ {
			for j := i + 1; j < len(docs); j++ {
				select {
				case jobs <- [2]int{i, j}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	passing := make([]domain.Comparison, 0)
	for cmp := range results {
		passing = append(passing, cmp)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return passing, nil
}

// partition splits documents into comparable ones and the identifiers of
// degenerate ones, the latter sorted ascending for stable reporting.
func partition(docs []domain.Document) ([]domain.Document, []string) {
	kept := make([]domain.Document, 0, len(docs))
	var degenerate []string
	for _, d := range docs {
		if d.Degenerate() {
			degenerate = append(degenerate, d.ID)
			continue
		}
		kept = append(kept, d)
	}
	sort.Strings(degenerate)
	return kept, degenerate
}

// sortComparisons orders results by similarity descending, overlap
// descending, then canonical pair identifiers ascending.
func sortComparisons(cs []domain.Comparison) {
	sort.Slice(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		if a.Overlap != b.Overlap {
			return a.Overlap > b.Overlap
		}
		if a.IDs[0] != b.IDs[0] {
			return a.IDs[0] < b.IDs[0]
		}
		return a.IDs[1] < b.IDs[1]
	})
}

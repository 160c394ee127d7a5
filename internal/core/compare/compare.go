// Package compare implements the pairwise shingle-set comparison.
package compare

import (
	"context"

	"github.com/baditaflorin/go_shingle_similarity/internal/core/domain"
	"github.com/baditaflorin/go_shingle_similarity/internal/ports"
)

// Comparator computes the overlap count and normalized similarity for a pair
// of documents. Compare is a pure function of its two inputs and is
// symmetric: swapping the arguments yields the identical result.
type Comparator struct {
	logger ports.Logger
}

// NewComparator creates a new pairwise comparator.
func NewComparator(logger ports.Logger) *Comparator {
	return &Comparator{logger: logger}
}

// Compare computes the intersection size of the two shingle sets and the
// similarity overlap/min(|A|,|B|). It returns a DegenerateDocumentError when
// either document produced zero shingles; the denominator is never zero.
func (c *Comparator) Compare(ctx context.Context, a, b domain.Document) (domain.Comparison, error) {
	if a.Degenerate() {
		return domain.Comparison{}, &domain.DegenerateDocumentError{ID: a.ID}
	}
	if b.Degenerate() {
		return domain.Comparison{}, &domain.DegenerateDocumentError{ID: b.ID}
	}

	select {
	case <-ctx.Done():
		return domain.Comparison{}, ctx.Err()
	default:
	}

	// Iterate the smaller set against the larger one.
	small, large := a.Shingles, b.Shingles
	if len(small) > len(large) {
		small, large = large, small
	}

	overlap := 0
	for shingle := range small {
		if large.Contains(shingle) {
			overlap++
		}
	}

	similarity := float64(overlap) / float64(len(small))

	c.logger.Debug("Compared documents",
		"a", a.ID,
		"b", b.ID,
		"overlap", overlap,
		"similarity", similarity,
	)

	return domain.Comparison{
		IDs:        CanonicalPair(a.ID, b.ID),
		Overlap:    overlap,
		Similarity: similarity,
	}, nil
}

// CanonicalPair orders two identifiers so the lexically smaller one comes
// first, making the pair identity independent of argument order.
func CanonicalPair(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

package ports

import (
	"context"

	"github.com/baditaflorin/go_shingle_similarity/internal/core/domain"
)

// PairComparator defines the interface for computing the overlap between two
// documents' shingle sets.
type PairComparator interface {
	Compare(ctx context.Context, a, b domain.Document) (domain.Comparison, error)
}

// Ranker defines the interface for producing a filtered, ordered report from
// a collection of documents.
type Ranker interface {
	Rank(ctx context.Context, docs []domain.Document) (domain.Report, error)
}

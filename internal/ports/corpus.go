package ports

import (
	"context"

	"github.com/baditaflorin/go_shingle_similarity/internal/core/domain"
)

// CorpusLoader defines the interface for supplying the sources of a
// comparison run. Sources that cannot be read are returned as skips rather
// than failing the load.
type CorpusLoader interface {
	Load(ctx context.Context) ([]domain.Source, []domain.Skip, error)
}

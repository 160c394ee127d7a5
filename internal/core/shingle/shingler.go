// Package shingle builds fixed-length overlapping word-sequence sets from
// token sequences. The shingle set is the atomic unit of overlap comparison.
package shingle

import (
	"github.com/baditaflorin/go_shingle_similarity/internal/core/domain"
	"github.com/baditaflorin/go_shingle_similarity/internal/pool"
)

// Shingler turns a token sequence into the set of shingles of a fixed size.
type Shingler struct {
	n        int
	builders *pool.BuilderPool
}

// NewShingler creates a shingler for windows of exactly n tokens.
func NewShingler(n int) (*Shingler, error) {
	if n < 1 {
		return nil, &domain.InvalidParameterError{
			Param:  "shingle_size",
			Reason: "must be at least 1",
		}
	}
	return &Shingler{
		n:        n,
		builders: pool.NewBuilderPool(),
	}, nil
}

// Size returns the configured shingle size.
func (s *Shingler) Size() int {
	return s.n
}

// Build produces the shingle set for a token sequence. Each window covers
// the half-open range [i, i+n), exactly n tokens, joined by a single space.
// Duplicate windows collapse. A sequence shorter than n yields an empty set.
func (s *Shingler) Build(tokens []string) domain.ShingleSet {
	count := len(tokens) - s.n + 1
	if count < 1 {
		return domain.ShingleSet{}
	}

	set := make(domain.ShingleSet, count)
	sb := s.builders.Get()
	defer s.builders.Put(sb)

	for i := 0; i < count; i++ {
		sb.Reset()
		for j, tok := range tokens[i : i+s.n] {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(tok)
		}
		set[sb.String()] = struct{}{}
	}
	return set
}

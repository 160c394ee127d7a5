package shingle

import (
	"context"
	"io"

	"github.com/baditaflorin/go_shingle_similarity/internal/core/domain"
	"github.com/baditaflorin/go_shingle_similarity/internal/ports"
)

// DocumentBuilder composes a tokenizer and a shingler into document
// construction. Documents are immutable once built.
type DocumentBuilder struct {
	tokenizer ports.Tokenizer
	streamer  ports.StreamTokenizer
	shingler  *Shingler
	logger    ports.Logger
}

// NewDocumentBuilder creates a builder producing documents with the given
// shingler. The stream tokenizer may be nil if reader-based construction is
// not needed.
func NewDocumentBuilder(tokenizer ports.Tokenizer, streamer ports.StreamTokenizer, shingler *Shingler, logger ports.Logger) *DocumentBuilder {
	return &DocumentBuilder{
		tokenizer: tokenizer,
		streamer:  streamer,
		shingler:  shingler,
		logger:    logger,
	}
}

// Build constructs a document from raw text. Construction is pure: it reads
// nothing but its arguments and produces no side effects.
func (b *DocumentBuilder) Build(id, text string) domain.Document {
	tokens := b.tokenizer.Tokenize(text)
	set := b.shingler.Build(tokens)

	b.logger.Debug("Built document",
		"id", id,
		"tokens", len(tokens),
		"shingles", len(set),
	)

	return domain.Document{
		ID:       id,
		Shingles: set,
		Tokens:   len(tokens),
	}
}

// BuildFromReader constructs a document from a stream, for sources too large
// to hold in memory as one string. A read failure is reported as a
// SourceUnavailableError for the given identifier.
func (b *DocumentBuilder) BuildFromReader(ctx context.Context, id string, r io.Reader) (domain.Document, error) {
	tokens, err := b.streamer.TokenizeStream(ctx, r)
	if err != nil {
		return domain.Document{}, &domain.SourceUnavailableError{ID: id, Err: err}
	}
	set := b.shingler.Build(tokens)

	b.logger.Debug("Built document from stream",
		"id", id,
		"tokens", len(tokens),
		"shingles", len(set),
	)

	return domain.Document{
		ID:       id,
		Shingles: set,
		Tokens:   len(tokens),
	}, nil
}

// Package stream provides reader-based tokenization for sources too large to
// hold in memory as a single string.
package stream

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/baditaflorin/go_shingle_similarity/internal/core/token"
	"github.com/baditaflorin/go_shingle_similarity/internal/ports"
)

const (
	// DefaultBufferSize is the initial scanner buffer size.
	DefaultBufferSize = 64 * 1024
	// MaxLineSize bounds a single line; longer lines fail the read.
	MaxLineSize = 4 * 1024 * 1024
)

// LineTokenizer tokenizes a stream line by line. Newlines are whitespace, so
// the resulting token sequence is identical to tokenizing the whole text at
// once.
type LineTokenizer struct {
	normalizer ports.Normalizer
	logger     ports.Logger
}

// NewLineTokenizer creates a stream tokenizer backed by the given normalizer.
func NewLineTokenizer(normalizer ports.Normalizer, logger ports.Logger) *LineTokenizer {
	return &LineTokenizer{
		normalizer: normalizer,
		logger:     logger,
	}
}

// TokenizeStream reads the stream to the end and returns the normalized
// token sequence. Malformed byte sequences are repaired by substitution, as
// with in-memory tokenization. Cancellation is checked between lines.
func (t *LineTokenizer) TokenizeStream(ctx context.Context, r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, DefaultBufferSize), MaxLineSize)

	var tokens []string
	var lines int
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line := token.Repair(scanner.Text())
		tokens = append(tokens, strings.Fields(t.normalizer.Normalize(line))...)
		lines++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	t.logger.Debug("Tokenized stream",
		"lines", lines,
		"tokens", len(tokens),
	)

	return tokens, nil
}

package ports

import (
	"context"
	"io"
)

// Tokenizer defines the interface for turning raw text into a normalized
// ordered sequence of words.
type Tokenizer interface {
	Tokenize(text string) []string
}

// StreamTokenizer defines the interface for tokenizing text read from a
// stream, for inputs too large to hold in memory as a single string.
type StreamTokenizer interface {
	TokenizeStream(ctx context.Context, r io.Reader) ([]string, error)
}

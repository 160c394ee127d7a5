package stream

import (
	"bufio"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/baditaflorin/go_shingle_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_shingle_similarity/internal/adapters/normalizer"
)

func newTestTokenizer() *LineTokenizer {
	return NewLineTokenizer(normalizer.NewDefaultNormalizer(), logger.NewNoopLogger())
}

func TestTokenizeStream(t *testing.T) {
	tok := newTestTokenizer()

	tokens, err := tok.TokenizeStream(context.Background(),
		strings.NewReader("First line here.\nSecond, line!\n\nfourth line\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"first", "line", "here", "second", "line", "fourth", "line"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("expected tokens %v, got %v", want, tokens)
	}
}

func TestTokenizeStreamOversizedLine(t *testing.T) {
	tok := newTestTokenizer()

	// A single line beyond MaxLineSize must fail the read rather than
	// silently truncate the token sequence.
	line := strings.Repeat("a", MaxLineSize+1)
	_, err := tok.TokenizeStream(context.Background(), strings.NewReader(line))
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Fatalf("expected bufio.ErrTooLong, got %v", err)
	}
}

func TestTokenizeStreamCancelled(t *testing.T) {
	tok := newTestTokenizer()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tok.TokenizeStream(ctx, strings.NewReader("one line\nanother line\n"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

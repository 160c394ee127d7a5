package shingle

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/baditaflorin/go_shingle_similarity/internal/core/domain"
)

func TestNewShinglerRejectsInvalidSize(t *testing.T) {
	_, err := NewShingler(0)
	var invalid *domain.InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
	if invalid.Param != "shingle_size" {
		t.Errorf("expected parameter shingle_size, got %s", invalid.Param)
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		tokens   []string
		expected []string
	}{
		{
			name:   "Bigrams with repeated first word",
			n:      2,
			tokens: []string{"the", "cat", "sat", "on", "the", "mat"},
			expected: []string{
				"the cat", "cat sat", "sat on", "on the", "the mat",
			},
		},
		{
			name:     "Unigrams collapse duplicates",
			n:        1,
			tokens:   []string{"a", "b", "a"},
			expected: []string{"a", "b"},
		},
		{
			name:     "Window equal to token count",
			n:        3,
			tokens:   []string{"x", "y", "z"},
			expected: []string{"x y z"},
		},
		{
			name:     "Too short for window",
			n:        4,
			tokens:   []string{"x", "y", "z"},
			expected: []string{},
		},
		{
			name:     "Empty token sequence",
			n:        2,
			tokens:   nil,
			expected: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewShingler(tc.n)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			set := s.Build(tc.tokens)
			got := make([]string, 0, len(set))
			for shingle := range set {
				got = append(got, shingle)
			}
			sort.Strings(got)

			want := append([]string(nil), tc.expected...)
			sort.Strings(want)
			if len(got) == 0 && len(want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("expected shingles %v, got %v", want, got)
			}
		})
	}
}

func TestBuildWindowsAreExact(t *testing.T) {
	// Every shingle must contain exactly n tokens; a window that silently
	// drops the last token would surface here.
	s, err := NewShingler(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	set := s.Build([]string{"one", "two", "three", "four", "five"})
	if !set.Contains("three four five") {
		t.Error("expected the final window to include the last token")
	}
	for shingle := range set {
		words := 1
		for _, r := range shingle {
			if r == ' ' {
				words++
			}
		}
		if words != 3 {
			t.Errorf("shingle %q has %d tokens, expected 3", shingle, words)
		}
	}
}

func TestBuildCountBound(t *testing.T) {
	// |shingles| <= max(0, t-n+1).
	s, err := NewShingler(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tokens := []string{"a", "b", "a", "b", "a"}
	set := s.Build(tokens)
	if limit := len(tokens) - 2 + 1; len(set) > limit {
		t.Errorf("shingle count %d exceeds bound %d", len(set), limit)
	}
}

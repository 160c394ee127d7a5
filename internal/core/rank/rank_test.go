package rank

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/baditaflorin/go_shingle_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_shingle_similarity/internal/core/compare"
	"github.com/baditaflorin/go_shingle_similarity/internal/core/domain"
)

func doc(id string, shingles ...string) domain.Document {
	set := make(domain.ShingleSet, len(shingles))
	for _, s := range shingles {
		set[s] = struct{}{}
	}
	return domain.Document{ID: id, Shingles: set}
}

func newTestRanker(t *testing.T, config Config) *Ranker {
	t.Helper()
	lg := logger.NewNoopLogger()
	r, err := NewRanker(config, compare.NewComparator(lg), lg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		param  string
	}{
		{"Negative threshold", Config{Threshold: -0.1}, "threshold"},
		{"Threshold above one", Config{Threshold: 1.5}, "threshold"},
		{"Negative max results", Config{Threshold: 0.5, MaxResults: -1}, "max_results"},
		{"Negative workers", Config{Threshold: 0.5, Workers: -2}, "workers"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			var invalid *domain.InvalidParameterError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidParameterError, got %v", err)
			}
			if invalid.Param != tc.param {
				t.Errorf("expected parameter %s, got %s", tc.param, invalid.Param)
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestRankPairEnumeration(t *testing.T) {
	// Identical documents give similarity 1 for every pair, so the report
	// holds exactly m*(m-1)/2 entries: no self-pairs, no duplicates.
	docs := []domain.Document{
		doc("a", "s t", "t u"),
		doc("b", "s t", "t u"),
		doc("c", "s t", "t u"),
		doc("d", "s t", "t u"),
	}

	r := newTestRanker(t, Config{Threshold: 0.5, Workers: 2})
	report, err := r.Rank(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := len(docs)
	if want := m * (m - 1) / 2; len(report.Results) != want {
		t.Fatalf("expected %d pairs, got %d", want, len(report.Results))
	}

	seen := make(map[[2]string]bool)
	for _, res := range report.Results {
		if res.IDs[0] == res.IDs[1] {
			t.Errorf("self-pair in report: %v", res.IDs)
		}
		if res.IDs[0] > res.IDs[1] {
			t.Errorf("pair not in canonical order: %v", res.IDs)
		}
		if seen[res.IDs] {
			t.Errorf("duplicate pair in report: %v", res.IDs)
		}
		seen[res.IDs] = true
	}
}

func TestRankDeterminism(t *testing.T) {
	docs := []domain.Document{
		doc("w", "a b", "b c", "c d"),
		doc("x", "b c", "c d", "d e"),
		doc("y", "c d", "d e", "e f"),
		doc("z", "a b", "d e", "f g"),
	}

	r := newTestRanker(t, Config{Threshold: 0, Workers: 4})

	first, err := r.Rank(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := r.Rank(context.Background(), docs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("ranking is not deterministic:\nfirst: %+v\nagain: %+v", first, again)
		}
	}
}

func TestRankThresholdMonotonicity(t *testing.T) {
	docs := []domain.Document{
		doc("a", "a b", "b c", "c d", "d e"),
		doc("b", "b c", "c d", "x y", "y z"),
		doc("c", "c d", "p q", "q r", "r s"),
		doc("d", "m n", "n o", "o p", "p q"),
	}

	prev := -1
	for _, th := range []float64{0, 0.2, 0.4, 0.6, 0.8, 1} {
		r := newTestRanker(t, Config{Threshold: th})
		report, err := r.Rank(context.Background(), docs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if prev >= 0 && len(report.Results) > prev {
			t.Errorf("raising threshold to %v grew the result set: %d > %d",
				th, len(report.Results), prev)
		}
		prev = len(report.Results)
	}
}

func TestRankMaxResults(t *testing.T) {
	docs := []domain.Document{
		doc("a", "s t"),
		doc("b", "s t"),
		doc("c", "s t"),
		doc("d", "s t"),
	}

	// Six pairs pass; the cap keeps the top two after sorting.
	r := newTestRanker(t, Config{Threshold: 0.5, MaxResults: 2})
	report, err := r.Rank(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	// With all similarities tied, identifier order breaks the tie.
	if report.Results[0].IDs != [2]string{"a", "b"} {
		t.Errorf("expected first pair [a b], got %v", report.Results[0].IDs)
	}
	if report.Results[1].IDs != [2]string{"a", "c"} {
		t.Errorf("expected second pair [a c], got %v", report.Results[1].IDs)
	}

	// A cap larger than the passing set leaves it untouched.
	r = newTestRanker(t, Config{Threshold: 0.5, MaxResults: 100})
	report, err = r.Rank(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Results) != 6 {
		t.Errorf("expected 6 results, got %d", len(report.Results))
	}
}

func TestRankOrdering(t *testing.T) {
	// Pair (a,b) shares 2 of 2, (a,c) and (b,c) share 1 of 2.
	docs := []domain.Document{
		doc("a", "s t", "u v"),
		doc("b", "s t", "u v"),
		doc("c", "s t", "x y"),
	}

	r := newTestRanker(t, Config{Threshold: 0})
	report, err := r.Rank(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(report.Results))
	}

	if report.Results[0].IDs != [2]string{"a", "b"} {
		t.Errorf("expected most similar pair [a b] first, got %v", report.Results[0].IDs)
	}
	for i := 1; i < len(report.Results); i++ {
		if report.Results[i].Similarity > report.Results[i-1].Similarity {
			t.Errorf("results are not in descending similarity order")
		}
	}
	// Equal similarity and overlap: identifier order decides.
	if report.Results[1].IDs != [2]string{"a", "c"} || report.Results[2].IDs != [2]string{"b", "c"} {
		t.Errorf("tie-break by pair identifiers failed: %v, %v",
			report.Results[1].IDs, report.Results[2].IDs)
	}
}

func TestRankExcludesDegenerate(t *testing.T) {
	docs := []domain.Document{
		doc("tiny"),
		doc("small"),
		doc("a", "s t"),
		doc("b", "s t"),
	}

	r := newTestRanker(t, Config{Threshold: 0.5})
	report, err := r.Rank(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(report.Degenerate, []string{"small", "tiny"}) {
		t.Errorf("expected degenerate [small tiny], got %v", report.Degenerate)
	}
	if len(report.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(report.Results))
	}
	if report.Results[0].IDs != [2]string{"a", "b"} {
		t.Errorf("expected pair [a b], got %v", report.Results[0].IDs)
	}
}

func TestRankSinglePassingPair(t *testing.T) {
	// Only (a,b) exceeds the threshold.
	docs := []domain.Document{
		doc("a", "a b", "b c", "c d"),
		doc("b", "a b", "b c", "x y"),
		doc("c", "p q", "q r", "r s"),
	}

	r := newTestRanker(t, Config{Threshold: 0.5})
	report, err := r.Rank(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Results) != 1 {
		t.Fatalf("expected exactly one result, got %d", len(report.Results))
	}
	if report.Results[0].IDs != [2]string{"a", "b"} {
		t.Errorf("expected pair [a b], got %v", report.Results[0].IDs)
	}
}

func TestRankCancelled(t *testing.T) {
	docs := make([]domain.Document, 0, 50)
	for i := 0; i < 50; i++ {
		docs = append(docs, doc(string(rune('a'+i%26))+string(rune('0'+i/26)), "s t", "u v"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newTestRanker(t, Config{Threshold: 0})
	if _, err := r.Rank(ctx, docs); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

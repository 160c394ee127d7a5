package main

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_shingle_similarity/internal/core/domain"
)

func quietLogger(t *testing.T) l.Logger {
	t.Helper()
	lg, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:     io.Discard,
		JsonFormat: false,
		AsyncWrite: false,
	})
	if err != nil {
		t.Fatalf("create logger: %v", err)
	}
	return lg
}

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }

func TestRankRequestFieldPresence(t *testing.T) {
	var req RankRequest
	if err := json.Unmarshal([]byte(`{"max_results": 3}`), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.ShingleSize != nil || req.Threshold != nil {
		t.Errorf("absent fields must stay unset, got size=%v threshold=%v",
			req.ShingleSize, req.Threshold)
	}
	if req.MaxResults == nil || *req.MaxResults != 3 {
		t.Errorf("expected max_results 3, got %v", req.MaxResults)
	}

	if err := json.Unmarshal([]byte(`{"threshold": 0}`), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Threshold == nil || *req.Threshold != 0 {
		t.Errorf("an explicit zero threshold must be set, got %v", req.Threshold)
	}
}

func TestBuildPipelineKeepsServerBaseline(t *testing.T) {
	// Only max_results is in the request; the server's startup shingle size
	// and threshold must carry over unchanged.
	similarity, err := buildPipeline(quietLogger(t), 5, 0.2, RankRequest{
		MaxResults: intPtr(3),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Four-token documents cannot form a single 5-token shingle. If the
	// pipeline silently fell back to the default size of 3 they would
	// compare normally instead of being reported as too short.
	report, err := similarity.Rank(context.Background(), []domain.Source{
		{ID: "a", Text: "only four words here"},
		{ID: "b", Text: "only four words too"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Results) != 0 {
		t.Errorf("expected no comparable pairs at shingle size 5, got %+v", report.Results)
	}
	if len(report.Degenerate) != 2 {
		t.Errorf("expected both documents reported as degenerate, got %v", report.Degenerate)
	}
}

func TestBuildPipelineRequestOverrides(t *testing.T) {
	// The request lowers the shingle size; the same four-token documents
	// must now compare.
	similarity, err := buildPipeline(quietLogger(t), 5, 0.2, RankRequest{
		ShingleSize: intPtr(2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := similarity.Rank(context.Background(), []domain.Source{
		{ID: "a", Text: "only four words here"},
		{ID: "b", Text: "only four words too"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Results) != 1 {
		t.Fatalf("expected one comparable pair at shingle size 2, got %+v", report.Results)
	}
	if len(report.Degenerate) != 0 {
		t.Errorf("expected no degenerate documents, got %v", report.Degenerate)
	}
}

func TestBuildPipelineExplicitZeroThreshold(t *testing.T) {
	// An explicit zero threshold must override a strict server baseline.
	similarity, err := buildPipeline(quietLogger(t), 2, 0.9, RankRequest{
		Threshold: floatPtr(0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Shingle sets {a b, b c, c d} and {b c, c d, d e} overlap at 2/3,
	// below the 0.9 baseline but above zero.
	report, err := similarity.Rank(context.Background(), []domain.Source{
		{ID: "a", Text: "a b c d"},
		{ID: "b", Text: "b c d e"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Results) != 1 {
		t.Fatalf("expected the pair to pass a zero threshold, got %+v", report.Results)
	}
}

func TestBuildPipelineInvalidRequestParameter(t *testing.T) {
	_, err := buildPipeline(quietLogger(t), 3, 0.5, RankRequest{
		Threshold: floatPtr(1.5),
	})
	if err == nil {
		t.Fatal("expected an invalid parameter error")
	}
}

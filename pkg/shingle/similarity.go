// Package shingle exposes the shingle-overlap similarity pipeline: raw text
// is tokenized, shingled into fixed-length word-sequence sets, compared
// pairwise, and ranked into a filtered report.
package shingle

import (
	"context"
	"io"

	"github.com/baditaflorin/go_shingle_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_shingle_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_shingle_similarity/internal/adapters/stream"
	"github.com/baditaflorin/go_shingle_similarity/internal/core/compare"
	"github.com/baditaflorin/go_shingle_similarity/internal/core/domain"
	"github.com/baditaflorin/go_shingle_similarity/internal/core/rank"
	"github.com/baditaflorin/go_shingle_similarity/internal/core/shingle"
	"github.com/baditaflorin/go_shingle_similarity/internal/core/token"
	"github.com/baditaflorin/go_shingle_similarity/internal/ports"
	"github.com/baditaflorin/go_shingle_similarity/internal/warmup"
	"github.com/baditaflorin/l"
)

// Default run parameters.
const (
	DefaultShingleSize = 3
	DefaultThreshold   = 0.5
)

// Similarity provides document construction, pairwise comparison, and
// ranking with a fixed set of run parameters.
type Similarity struct {
	builder    *shingle.DocumentBuilder
	comparator ports.PairComparator
	ranker     ports.Ranker
	logger     ports.Logger
	normalizer ports.Normalizer
	warmed     bool
}

// Option defines a functional option for configuring Similarity.
type Option func(*similarityConfig)

type similarityConfig struct {
	ShingleSize  int
	Threshold    float64
	MaxResults   int
	Workers      int
	Logger       ports.Logger
	Normalizer   ports.Normalizer
	WarmUp       bool
	WarmUpConfig warmup.Config
}

// WithShingleSize sets the number of tokens per shingle.
func WithShingleSize(n int) Option {
	return func(cfg *similarityConfig) {
		cfg.ShingleSize = n
	}
}

// WithThreshold sets the similarity filter threshold. Pairs are kept when
// their similarity strictly exceeds it.
func WithThreshold(th float64) Option {
	return func(cfg *similarityConfig) {
		cfg.Threshold = th
	}
}

// WithMaxResults caps the ranked report. Zero means uncapped.
func WithMaxResults(n int) Option {
	return func(cfg *similarityConfig) {
		cfg.MaxResults = n
	}
}

// WithWorkers sets the comparison worker count. Zero means all CPUs.
func WithWorkers(n int) Option {
	return func(cfg *similarityConfig) {
		cfg.Workers = n
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *similarityConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *similarityConfig) {
		cfg.Normalizer = n
	}
}

// WithOptimizedNormalizer selects the pooled ASCII-table normalizer.
func WithOptimizedNormalizer() Option {
	return func(cfg *similarityConfig) {
		factory := normalizer.NewNormalizerFactory()
		cfg.Normalizer = factory.CreateNormalizer(normalizer.OptimizedNormalizerType)
	}
}

// WithWarmUp enables component warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *similarityConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration and enables warm-up.
func WithWarmUpConfig(config warmup.Config) Option {
	return func(cfg *similarityConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New creates a new Similarity instance. Parameters are validated here, so
// an invalid run never starts.
func New(opts ...Option) (*Similarity, error) {
	config := &similarityConfig{
		ShingleSize:  DefaultShingleSize,
		Threshold:    DefaultThreshold,
		WarmUpConfig: warmup.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		lg, err := logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
		config.Logger = lg
	}
	if config.Normalizer == nil {
		config.Normalizer = normalizer.NewDefaultNormalizer()
	}

	shingler, err := shingle.NewShingler(config.ShingleSize)
	if err != nil {
		return nil, err
	}

	tokenizer := token.NewTokenizer(config.Normalizer)
	streamer := stream.NewLineTokenizer(config.Normalizer, config.Logger)
	builder := shingle.NewDocumentBuilder(tokenizer, streamer, shingler, config.Logger)
	comparator := compare.NewComparator(config.Logger)

	ranker, err := rank.NewRanker(rank.Config{
		Threshold:  config.Threshold,
		MaxResults: config.MaxResults,
		Workers:    config.Workers,
	}, comparator, config.Logger)
	if err != nil {
		return nil, err
	}

	s := &Similarity{
		builder:    builder,
		comparator: comparator,
		ranker:     ranker,
		logger:     config.Logger,
		normalizer: config.Normalizer,
	}

	if config.WarmUp {
		s.WarmUp(context.Background(), config.WarmUpConfig)
	}

	return s, nil
}

// BuildDocument constructs an immutable document from raw text. Malformed
// byte sequences in the text are repaired by substitution.
func (s *Similarity) BuildDocument(id, text string) domain.Document {
	return s.builder.Build(id, text)
}

// BuildDocumentFromReader constructs a document from a stream.
func (s *Similarity) BuildDocumentFromReader(ctx context.Context, id string, r io.Reader) (domain.Document, error) {
	return s.builder.BuildFromReader(ctx, id, r)
}

// Compare computes overlap count and similarity for two documents. It
// returns a DegenerateDocumentError if either document has no shingles.
func (s *Similarity) Compare(ctx context.Context, a, b domain.Document) (domain.Comparison, error) {
	return s.comparator.Compare(ctx, a, b)
}

// CompareTexts builds two documents from raw text and compares them.
func (s *Similarity) CompareTexts(ctx context.Context, idA, textA, idB, textB string) (domain.Comparison, error) {
	a := s.builder.Build(idA, textA)
	b := s.builder.Build(idB, textB)
	return s.comparator.Compare(ctx, a, b)
}

// Rank builds documents for all sources and ranks every unordered pair.
func (s *Similarity) Rank(ctx context.Context, sources []domain.Source) (domain.Report, error) {
	docs := make([]domain.Document, 0, len(sources))
	for _, src := range sources {
		docs = append(docs, s.builder.Build(src.ID, src.Text))
	}
	return s.ranker.Rank(ctx, docs)
}

// RankDocuments ranks every unordered pair of the given documents.
func (s *Similarity) RankDocuments(ctx context.Context, docs []domain.Document) (domain.Report, error) {
	return s.ranker.Rank(ctx, docs)
}

// WarmUp pre-exercises the pipeline components.
func (s *Similarity) WarmUp(ctx context.Context, config warmup.Config) {
	if s.warmed {
		s.logger.Debug("System already warmed up, skipping")
		return
	}

	mgr := warmup.NewManager(s.logger, config)
	mgr.RegisterBuilder(s.builder)
	mgr.RegisterComparator(s.comparator)
	mgr.RegisterNormalizer(s.normalizer)

	mgr.WarmUp(ctx)
	s.warmed = true
}

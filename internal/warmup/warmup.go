// Package warmup pre-exercises pooled components so the first real
// comparison does not pay allocation and scheduling costs.
package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_shingle_similarity/internal/core/domain"
	"github.com/baditaflorin/go_shingle_similarity/internal/ports"
)

// Config defines configuration for warming up the system.
type Config struct {
	// Concurrency is the number of concurrent warmup routines.
	Concurrency int
	// Iterations per routine.
	Iterations int
	// SampleTextSize is the word count of the synthetic warmup text.
	SampleTextSize int
	// Duration bounds the warmup (0 means no time limit).
	Duration time.Duration
	// ForceGC runs a garbage collection after warmup.
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency:    runtime.NumCPU(),
		Iterations:     200,
		SampleTextSize: 500,
		Duration:       2 * time.Second,
		ForceGC:        true,
	}
}

// DocumentBuilder is the subset of document construction warmup exercises.
type DocumentBuilder interface {
	Build(id, text string) domain.Document
}

// Manager handles warmup of registered components.
type Manager struct {
	logger      ports.Logger
	builders    []DocumentBuilder
	comparators []ports.PairComparator
	normalizers []ports.Normalizer
	config      Config
}

// NewManager creates a new warmup manager.
func NewManager(logger ports.Logger, config Config) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterBuilder adds a document builder to be warmed up.
func (m *Manager) RegisterBuilder(b DocumentBuilder) {
	m.builders = append(m.builders, b)
}

// RegisterComparator adds a comparator to be warmed up.
func (m *Manager) RegisterComparator(c ports.PairComparator) {
	m.comparators = append(m.comparators, c)
}

// RegisterNormalizer adds a normalizer to be warmed up.
func (m *Manager) RegisterNormalizer(n ports.Normalizer) {
	m.normalizers = append(m.normalizers, n)
}

// WarmUp runs the warmup process for all registered components.
func (m *Manager) WarmUp(ctx context.Context) {
	start := time.Now()
	m.logger.Info("Starting warmup",
		"components", len(m.builders)+len(m.comparators)+len(m.normalizers),
		"concurrency", m.config.Concurrency,
		"iterations", m.config.Iterations,
	)

	if m.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.Duration)
		defer cancel()
	}

	sample := sampleText(m.config.SampleTextSize)
	variant := sampleText(m.config.SampleTextSize/2) + " " + sample[:len(sample)/2]

	var wg sync.WaitGroup
	for i := 0; i < m.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for iter := 0; iter < m.config.Iterations; iter++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				for _, n := range m.normalizers {
					n.Normalize(sample)
				}
				var a, b domain.Document
				for _, builder := range m.builders {
					a = builder.Build("warmup-a", sample)
					b = builder.Build("warmup-b", variant)
				}
				if len(a.Shingles) == 0 || len(b.Shingles) == 0 {
					continue
				}
				for _, c := range m.comparators {
					_, _ = c.Compare(ctx, a, b)
				}
			}
		}()
	}
	wg.Wait()

	if m.config.ForceGC {
		runtime.GC()
	}

	m.logger.Info("Warmup complete", "duration", time.Since(start))
}

// sampleText builds a deterministic synthetic text of the given word count.
func sampleText(words int) string {
	vocab := []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
		"golf", "hotel", "india", "juliet", "kilo", "lima",
	}
	var sb strings.Builder
	for i := 0; i < words; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(vocab[i%len(vocab)])
	}
	return sb.String()
}

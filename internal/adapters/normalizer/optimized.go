package normalizer

import (
	"unicode"

	"github.com/baditaflorin/go_shingle_similarity/internal/pool"
	"github.com/baditaflorin/go_shingle_similarity/internal/ports"
)

// OptimizedNormalizer implements the same normalization contract as
// DefaultNormalizer with a precomputed ASCII decision table and buffer
// pooling, for corpora dominated by ASCII text.
type OptimizedNormalizer struct {
	// Decision table for ASCII characters (0-127):
	// 0 = keep, 1 = replace with space, 2 = lowercase.
	asciiTable [128]byte

	bytePool *pool.BufferPool
}

// NewOptimizedNormalizer creates a new optimized normalizer.
func NewOptimizedNormalizer() ports.Normalizer {
	n := &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(8192),
	}

	for i := 0; i < 128; i++ {
		r := rune(i)
		switch {
		case unicode.IsPunct(r):
			n.asciiTable[i] = 1
		case unicode.IsUpper(r):
			n.asciiTable[i] = 2
		default:
			n.asciiTable[i] = 0
		}
	}

	return n
}

// Normalize converts the input text to lower case and replaces punctuation
// with spaces. Output is field-equivalent to DefaultNormalizer: the token
// sequence after whitespace splitting is identical.
func (n *OptimizedNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	asciiOnly := true
	for i := 0; i < len(text); i++ {
		if text[i] >= 128 {
			asciiOnly = false
			break
		}
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)
	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}

	if asciiOnly {
		for i := 0; i < len(text); i++ {
			b := text[i]
			switch n.asciiTable[b] {
			case 0:
				*buffer = append(*buffer, b)
			case 1:
				*buffer = append(*buffer, ' ')
			case 2:
				*buffer = append(*buffer, b+('a'-'A'))
			}
		}
		return string(*buffer)
	}

	for _, r := range text {
		if r < 128 {
			switch n.asciiTable[r] {
			case 0:
				*buffer = append(*buffer, byte(r))
			case 1:
				*buffer = append(*buffer, ' ')
			case 2:
				*buffer = append(*buffer, byte(r)+('a'-'A'))
			}
			continue
		}
		if unicode.IsPunct(r) {
			*buffer = append(*buffer, ' ')
		} else {
			*buffer = append(*buffer, []byte(string(unicode.ToLower(r)))...)
		}
	}

	return string(*buffer)
}

// NormalizerType selects a normalization strategy.
type NormalizerType int

const (
	// DefaultNormalizerType is the rune-by-rune normalizer.
	DefaultNormalizerType NormalizerType = iota
	// OptimizedNormalizerType uses the ASCII decision table with buffer pooling.
	OptimizedNormalizerType
)

// NormalizerFactory creates normalizers by type.
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory.
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// CreateNormalizer creates a normalizer of the specified type.
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case OptimizedNormalizerType:
		return NewOptimizedNormalizer()
	default:
		return NewDefaultNormalizer()
	}
}

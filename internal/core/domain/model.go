package domain

// ShingleSet is a deduplicated collection of shingles. Order and multiplicity
// are discarded once the set is built.
type ShingleSet map[string]struct{}

// Contains reports whether the set holds the given shingle.
func (s ShingleSet) Contains(shingle string) bool {
	_, ok := s[shingle]
	return ok
}

// Document bundles a source identifier with its shingle set.
// Immutable after construction.
type Document struct {
	// ID identifies the source, typically a file path.
	ID string
	// Shingles is the set of n-token shingles extracted from the source.
	Shingles ShingleSet
	// Tokens is the token count of the source after normalization.
	Tokens int
}

// Degenerate reports whether the document produced zero shingles for the
// configured shingle size and therefore cannot be compared.
func (d Document) Degenerate() bool {
	return len(d.Shingles) == 0
}

// Comparison holds the outcome of comparing two documents.
// Read-only after creation.
type Comparison struct {
	// IDs is the canonical unordered pair: the lexically smaller
	// identifier always comes first.
	IDs [2]string `json:"ids"`
	// Overlap is the size of the intersection of the two shingle sets.
	Overlap int `json:"overlap"`
	// Similarity is Overlap divided by the smaller of the two set sizes,
	// a value in [0, 1].
	Similarity float64 `json:"similarity"`
}

// Source is an already-resolved input to a comparison run: an identifier
// plus the raw text it named at discovery time.
type Source struct {
	ID   string
	Text string
}

// Skip records a source that could not be read and was dropped from the run.
type Skip struct {
	ID  string
	Err error
}

// Report is the full outcome of a ranking run.
type Report struct {
	// Results are the comparisons that passed the similarity filter,
	// in ranked order.
	Results []Comparison
	// Degenerate lists identifiers of documents that were too short to
	// compare for the configured shingle size, in ascending order.
	Degenerate []string
}

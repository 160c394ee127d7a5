// Package corpus discovers and reads the sources of a comparison run from
// the filesystem. The core never touches the filesystem itself; it consumes
// the already-resolved sources this loader yields.
package corpus

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_shingle_similarity/internal/core/domain"
	"github.com/baditaflorin/go_shingle_similarity/internal/ports"
)

// FSLoader walks a root path and yields one source per readable regular
// file. Unreadable entries become skip records; they never abort the load.
type FSLoader struct {
	root        string
	recursive   bool
	extensions  map[string]struct{}
	concurrency int
	logger      ports.Logger
}

// FSOption defines a functional option for configuring the loader.
type FSOption func(*FSLoader)

// WithRecursive enables descending into subdirectories.
func WithRecursive(recursive bool) FSOption {
	return func(l *FSLoader) {
		l.recursive = recursive
	}
}

// WithExtensions restricts discovery to files with one of the given
// extensions (e.g. ".txt"). Empty means all files.
func WithExtensions(exts []string) FSOption {
	return func(l *FSLoader) {
		if len(exts) == 0 {
			return
		}
		l.extensions = make(map[string]struct{}, len(exts))
		for _, e := range exts {
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			l.extensions[strings.ToLower(e)] = struct{}{}
		}
	}
}

// WithConcurrency bounds the number of files read at once.
// Zero means runtime.NumCPU().
func WithConcurrency(n int) FSOption {
	return func(l *FSLoader) {
		l.concurrency = n
	}
}

// NewFSLoader creates a loader rooted at the given path.
func NewFSLoader(root string, logger ports.Logger, opts ...FSOption) *FSLoader {
	l := &FSLoader{
		root:   root,
		logger: logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load discovers and reads all sources under the root. Sources are returned
// sorted by identifier so a run over the same tree is deterministic. Skips
// carry a SourceUnavailableError per affected entry; entries that are
// neither file nor directory, such as broken symlinks, are wrapped around
// the distinct ErrNotFileOrDir sentinel.
func (l *FSLoader) Load(ctx context.Context) ([]domain.Source, []domain.Skip, error) {
	paths, skips, err := l.discover()
	if err != nil {
		return nil, nil, err
	}

	sources := make([]domain.Source, len(paths))
	read := make([]bool, len(paths))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	concurrency := l.concurrency
	if concurrency == 0 {
		concurrency = runtime.NumCPU()
	}
	g.SetLimit(concurrency)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				l.logger.Warn("Skipping unreadable source", "id", path, "error", err)
				mu.Lock()
				skips = append(skips, domain.Skip{
					ID:  path,
					Err: &domain.SourceUnavailableError{ID: path, Err: err},
				})
				mu.Unlock()
				return nil
			}
			sources[i] = domain.Source{ID: path, Text: string(data)}
			read[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	loaded := make([]domain.Source, 0, len(sources))
	for i, s := range sources {
		if read[i] {
			loaded = append(loaded, s)
		}
	}

	sort.Slice(loaded, func(i, j int) bool { return loaded[i].ID < loaded[j].ID })
	sort.Slice(skips, func(i, j int) bool { return skips[i].ID < skips[j].ID })

	l.logger.Info("Corpus loaded",
		"root", l.root,
		"sources", len(loaded),
		"skipped", len(skips),
	)

	return loaded, skips, nil
}

// discover walks the root and collects candidate file paths plus skip
// records for entries that cannot be classified.
func (l *FSLoader) discover() ([]string, []domain.Skip, error) {
	info, err := os.Stat(l.root)
	if err != nil {
		if _, lerr := os.Lstat(l.root); lerr == nil {
			// The path exists but points nowhere: a broken symlink.
			return nil, []domain.Skip{{
				ID:  l.root,
				Err: &domain.SourceUnavailableError{ID: l.root, Err: domain.ErrNotFileOrDir},
			}}, nil
		}
		return nil, nil, &domain.SourceUnavailableError{ID: l.root, Err: err}
	}

	if !info.IsDir() {
		return []string{l.root}, nil, nil
	}

	var paths []string
	var skips []domain.Skip

	err = filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			skips = append(skips, domain.Skip{
				ID:  path,
				Err: &domain.SourceUnavailableError{ID: path, Err: err},
			})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != l.root && !l.recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			target, serr := os.Stat(path)
			if serr != nil {
				skips = append(skips, domain.Skip{
					ID:  path,
					Err: &domain.SourceUnavailableError{ID: path, Err: domain.ErrNotFileOrDir},
				})
				return nil
			}
			if target.IsDir() {
				// Symlinked directories are not followed.
				return nil
			}
		} else if !d.Type().IsRegular() {
			skips = append(skips, domain.Skip{
				ID:  path,
				Err: &domain.SourceUnavailableError{ID: path, Err: domain.ErrNotFileOrDir},
			})
			return nil
		}
		if l.wantFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return paths, skips, nil
}

func (l *FSLoader) wantFile(path string) bool {
	if l.extensions == nil {
		return true
	}
	_, ok := l.extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

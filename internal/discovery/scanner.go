// Package discovery finds the templates of an application and reads the
// directives its views declare.
//
// A Scanner walks a template root for the configured extensions and builds
// a template.Template for every match, in lexical path order. Spark views
// are tokenized for their directives. Parsed directives are cached by path,
// size and modification time so that repeated scans of an unchanged tree do
// not re-read every view.
package discovery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/vk/viewbind/internal/ctxlog"
	"github.com/vk/viewbind/internal/fsutil"
	"github.com/vk/viewbind/internal/template"
)

// DefaultExtensions are the file extensions scanned when none are configured.
var DefaultExtensions = []string{template.SparkExtension, template.XMLExtension}

// DefaultCacheSize bounds the number of cached directive sets.
const DefaultCacheSize = 4096

// Option configures a Scanner.
type Option func(*Scanner)

// WithExtensions sets the file extensions to discover.
func WithExtensions(exts ...string) Option {
	return func(s *Scanner) {
		if len(exts) > 0 {
			s.extensions = exts
		}
	}
}

// WithSkipDirs sets directory names that are not descended into.
func WithSkipDirs(names ...string) Option {
	return func(s *Scanner) {
		s.skipDirs = names
	}
}

// WithCacheSize sets the directive cache size. Zero disables the bound.
func WithCacheSize(n int) Option {
	return func(s *Scanner) {
		s.cache = lru.New(n)
	}
}

// Scanner discovers templates. It is safe for concurrent use.
type Scanner struct {
	extensions []string
	skipDirs   []string

	mu    sync.Mutex
	cache *lru.Cache
}

// NewScanner returns a Scanner configured by opts.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		extensions: DefaultExtensions,
		cache:      lru.New(DefaultCacheSize),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set is the outcome of a scan.
type Set struct {
	Root      string
	Templates []*template.Template

	directives map[string]Directives
}

// Directives returns the directives of t, or the zero value for templates
// that are not views or declare nothing.
func (s *Set) Directives(t *template.Template) Directives {
	return s.directives[t.Path]
}

// Views returns the templates currently carrying a view descriptor.
func (s *Set) Views() []*template.Template {
	var views []*template.Template
	for _, t := range s.Templates {
		if template.IsView(t) {
			views = append(views, t)
		}
	}
	return views
}

type cacheKey struct {
	path    string
	size    int64
	modTime int64
}

// Scan discovers every template under root.
func (s *Scanner) Scan(ctx context.Context, root string) (*Set, error) {
	logger := ctxlog.FromContext(ctx)
	root = filepath.Clean(root)
	logger.Debug("Template discovery started.", "root", root, "extensions", s.extensions)

	paths, err := fsutil.FindFiles(root, s.extensions, s.skipDirs)
	if err != nil {
		return nil, fmt.Errorf("failed to discover templates under %s: %w", root, err)
	}

	set := &Set{
		Root:       root,
		Templates:  make([]*template.Template, 0, len(paths)),
		directives: make(map[string]Directives),
	}
	parsed := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := template.New(path, root)
		set.Templates = append(set.Templates, t)
		if !t.IsSparkView() {
			continue
		}

		d, fresh, err := s.directivesFor(t.Path)
		if err != nil {
			return nil, err
		}
		if fresh {
			parsed++
		}
		set.directives[t.Path] = d
	}

	logger.Debug("Template discovery finished.", "templates", len(set.Templates), "parsed", parsed, "cached", len(set.directives)-parsed)
	return set, nil
}

func (s *Scanner) directivesFor(path string) (Directives, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Directives{}, false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	key := cacheKey{path: path, size: info.Size(), modTime: info.ModTime().UnixNano()}

	s.mu.Lock()
	cached, ok := s.cache.Get(key)
	s.mu.Unlock()
	if ok {
		return cached.(Directives), false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Directives{}, false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	d, err := ParseDirectives(f)
	if err != nil {
		return Directives{}, false, fmt.Errorf("%s: %w", path, err)
	}

	s.mu.Lock()
	s.cache.Add(key, d)
	s.mu.Unlock()
	return d, true, nil
}

// CachedEntries returns the number of directive sets currently cached.
func (s *Scanner) CachedEntries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

package schema

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"github.com/iancoleman/orderedmap"
)

// Source supplies raw schema document bytes for a logical relative path.
// Paths are slash-separated regardless of platform.
type Source interface {
	Open(path string) ([]byte, error)
}

// DirSource reads documents from an extracted schema archive on disk.
type DirSource struct {
	Root string
}

// Open implements Source.
func (d DirSource) Open(path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(d.Root, filepath.FromSlash(path)))
}

// MapSource serves documents from memory. Tests supply MapSource while
// production code uses DirSource.
type MapSource map[string][]byte

// Open implements Source.
func (m MapSource) Open(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

// Store loads and caches parsed schema documents by logical path. Each
// document is parsed at most once per run. A Store is created at run
// start and discarded at run end; it is never shared across runs.
type Store struct {
	source Source

	mu   sync.Mutex
	docs map[string]*Node
}

// NewStore creates a Store backed by the given source.
func NewStore(source Source) *Store {
	return &Store{
		source: source,
		docs:   make(map[string]*Node),
	}
}

// Parse decodes one schema document into its root node, preserving
// property order from the source text.
func Parse(data []byte) (*Node, error) {
	root := orderedmap.New()
	if err := json.Unmarshal(data, root); err != nil {
		return nil, err
	}
	return &Node{om: *root}, nil
}

// Load returns the parsed root node of the document at path. The result
// is memoized: the same path always yields the same node within a run.
// Failures are marked with ErrSchemaNotFound or ErrSchemaParse.
func (s *Store) Load(path string) (*Node, error) {
	s.mu.Lock()
	if node, ok := s.docs[path]; ok {
		s.mu.Unlock()
		return node, nil
	}
	s.mu.Unlock()

	data, err := s.source.Open(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "open schema %q", path), ErrSchemaNotFound)
	}

	node, err := Parse(data)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "parse schema %q", path), ErrSchemaParse)
	}

	// The cache is append-only for the run: a concurrent loader may have
	// raced us here, in which case its node wins and both callers see the
	// identical document.
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.docs[path]; ok {
		return existing, nil
	}
	s.docs[path] = node
	return node, nil
}

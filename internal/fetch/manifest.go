package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
)

// ManifestVersion is bumped when the cache layout changes. A mismatch
// forces a refetch, so binary upgrades never serve stale corpora.
const ManifestVersion = 1

const manifestName = ".schemats-manifest"

// Manifest records what was true when a corpus was last fetched
// successfully into a cache entry.
type Manifest struct {
	V        int    `json:"v"`
	Source   string `json:"source"`
	Revision string `json:"revision"`
}

func manifestPath(dir string) string {
	return filepath.Join(dir, manifestName)
}

// loadManifest reads a cache entry's manifest. Any failure (missing
// file, unreadable, invalid JSON) is a cache miss, reported as nil.
func loadManifest(dir string) *Manifest {
	data, err := os.ReadFile(manifestPath(dir))
	if err != nil {
		return nil
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return &m
}

// saveManifest writes the manifest atomically (write to temp, rename).
func saveManifest(dir string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal manifest")
	}
	path := manifestPath(dir)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "write manifest temp file")
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "rename manifest")
	}
	return nil
}

// Valid reports whether the cache entry can be trusted for the given
// source and revision. An unpinned revision is never trusted, because
// the remote may have moved.
func (m *Manifest) Valid(source, revision string) bool {
	if m == nil {
		return false
	}
	if m.V != ManifestVersion {
		return false
	}
	return m.Source == source && m.Revision == revision && revision != ""
}

// cacheKey derives a stable directory name for a (source, revision)
// pair.
func cacheKey(source, revision string) string {
	h := sha256.Sum256([]byte(source + "@" + revision))
	return hex.EncodeToString(h[:])[:16]
}

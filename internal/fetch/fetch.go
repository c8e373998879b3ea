// Package fetch resolves the schema corpus onto the local disk.
//
// It uses hashicorp/go-getter for source handling (local directories,
// git URLs, archives with auto-extraction) and keeps fetched corpora in
// a content-keyed cache so a pinned revision is downloaded at most
// once. Retry policy lives here, never in the compiler core.
package fetch

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-getter"
	"go.uber.org/zap"
)

// Result is a resolved corpus location on the local filesystem.
type Result struct {
	// Dir is the directory containing the schema documents.
	Dir string
	// Fetched reports whether the corpus was downloaded this run (as
	// opposed to a local directory or a cache hit).
	Fetched bool
}

// Resolve makes the corpus at source available locally and returns its
// directory. Local directories are used in place; remote sources are
// fetched into cacheDir under a key derived from (source, revision).
func Resolve(ctx context.Context, source, revision, cacheDir string, logger *zap.SugaredLogger) (*Result, error) {
	if source == "" {
		return nil, errors.New("empty schema source")
	}

	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}

	detected, err := getter.Detect(source, pwd, getter.Detectors)
	if err != nil {
		return nil, errors.Wrapf(err, "detect source type for %q", source)
	}
	logger.Debugw("detected schema source",
		"source", source,
		"detected", detected,
	)

	parsed, err := url.Parse(detected)
	if err != nil {
		return nil, errors.Wrapf(err, "parse detected source %q", detected)
	}

	if parsed.Scheme == "file" || parsed.Scheme == "" {
		dir := source
		if parsed.Scheme == "file" {
			dir = parsed.Path
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(pwd, dir)
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return nil, errors.Newf("schema source is not a directory: %s", dir)
		}
		return &Result{Dir: dir}, nil
	}

	return fetchRemote(ctx, source, detected, revision, cacheDir, logger)
}

// fetchRemote downloads a remote corpus into the cache, honoring a
// previously fetched entry for the same pinned revision.
func fetchRemote(ctx context.Context, source, detected, revision, cacheDir string, logger *zap.SugaredLogger) (*Result, error) {
	dst := filepath.Join(cacheDir, cacheKey(source, revision))

	if loadManifest(dst).Valid(source, revision) {
		logger.Debugw("schema corpus cache hit",
			"source", source,
			"revision", revision,
			"dir", dst,
		)
		return &Result{Dir: dst}, nil
	}

	// Stale or partial entries are removed wholesale; there is no
	// incremental update of a cache entry.
	if err := os.RemoveAll(dst); err != nil {
		return nil, errors.Wrapf(err, "clear cache entry %s", dst)
	}

	src := detected
	if revision != "" {
		separator := "?"
		if strings.Contains(src, "?") {
			separator = "&"
		}
		src += separator + "ref=" + revision
	}

	logger.Infow("fetching schema corpus",
		"source", source,
		"revision", revision,
		"destination", dst,
	)

	client := &getter.Client{
		Ctx:     ctx,
		Src:     src,
		Dst:     dst,
		Mode:    getter.ClientModeDir,
		Getters: getter.Getters,
	}
	if err := client.Get(); err != nil {
		os.RemoveAll(dst)
		return nil, errors.Wrapf(err, "fetch schema corpus %q", source)
	}

	if err := saveManifest(dst, &Manifest{V: ManifestVersion, Source: source, Revision: revision}); err != nil {
		return nil, err
	}

	logger.Infow("fetch completed", "dir", dst)
	return &Result{Dir: dst, Fetched: true}, nil
}

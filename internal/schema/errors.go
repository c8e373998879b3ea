package schema

import "github.com/cockroachdb/errors"

// Sentinel errors for document loading. Check with errors.Is.
var (
	// ErrSchemaNotFound marks a logical path with no backing document.
	ErrSchemaNotFound = errors.New("schema document not found")

	// ErrSchemaParse marks a document whose content is not well-formed.
	// There is no partial or best-effort parse; a corrupt document aborts
	// the run.
	ErrSchemaParse = errors.New("schema document is not well-formed")
)

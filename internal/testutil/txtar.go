// Package testutil provides helpers shared by compiler tests.
package testutil

import (
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/schemats/schemats/internal/schema"
)

// SourceFromTxtar unpacks an inline txtar archive into an in-memory
// schema source. Each txtar file name is a logical document path.
func SourceFromTxtar(t *testing.T, archive string) schema.MapSource {
	t.Helper()
	ar := txtar.Parse([]byte(archive))
	if len(ar.Files) == 0 {
		t.Fatal("txtar archive has no files")
	}
	source := make(schema.MapSource, len(ar.Files))
	for _, file := range ar.Files {
		source[file.Name] = file.Data
	}
	return source
}

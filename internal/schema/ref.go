package schema

import (
	"path"
	"strings"

	"github.com/cockroachdb/errors"
)

// Context pairs a document's root node with the logical path the
// document was loaded from. Reference resolution is path-relative, so
// two structurally identical documents at different paths are different
// contexts.
type Context struct {
	Node *Node
	Path string
}

// Resolved is the outcome of dereferencing: the target node plus the
// context of the document that owns it. Subsequent same-document
// pointers inside the target resolve against Doc.
type Resolved struct {
	Node *Node
	Doc  Context
}

// Resolver dereferences $ref strings against a document store.
type Resolver struct {
	store *Store
}

// NewResolver creates a Resolver backed by store.
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve dereferences ref in the given document context.
//
//   - "#/..."  same-document pointer, applied to ctx's root node; the
//     result inherits ctx's path.
//   - "#"      the document root itself.
//   - otherwise "path#fragment" (fragment optional). The path is joined
//     against the directory of ctx's own path and normalized, so
//     equivalent relative prefixes from different documents land on the
//     same store cache entry.
//
// ok is false when the reference does not resolve; that is not fatal
// and degrades to an unknown type downstream. A non-nil error is
// reserved for corrupt documents, which abort the run.
func (r *Resolver) Resolve(ref string, ctx Context) (Resolved, bool, error) {
	if ref == "" || ctx.Node == nil {
		return Resolved{}, false, nil
	}
	if ref == "#" {
		return Resolved{Node: ctx.Node, Doc: ctx}, true, nil
	}
	if strings.HasPrefix(ref, "#") {
		node, ok := ByPointer(ctx.Node, ref)
		if !ok {
			return Resolved{}, false, nil
		}
		return Resolved{Node: node, Doc: ctx}, true, nil
	}

	relPath, fragment, _ := strings.Cut(ref, "#")
	target := path.Join(path.Dir(ctx.Path), relPath)
	doc, err := r.store.Load(target)
	if err != nil {
		if errors.Is(err, ErrSchemaParse) {
			return Resolved{}, false, err
		}
		// A missing target document degrades this one reference only.
		return Resolved{}, false, nil
	}

	resolved := Resolved{Node: doc, Doc: Context{Node: doc, Path: target}}
	if strings.HasPrefix(fragment, "/") {
		node, ok := ByPointer(doc, "#"+fragment)
		if !ok {
			return Resolved{}, false, nil
		}
		resolved.Node = node
	}
	return resolved, true, nil
}

package typegen

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/schemats/schemats/internal/diagnostic"
	"github.com/schemats/schemats/internal/schema"
)

// Result carries the rendered artifact and the components it declares.
type Result struct {
	Output     string
	Components []Component
}

// Compile loads the root schema document, synthesizes one type per
// top-level property, and renders the declaration artifact.
//
// A failed root load aborts compilation; reference-level failures only
// degrade the affected subtree to "unknown" and surface through diags.
func Compile(store *schema.Store, rootPath string, prov Provenance, diags *diagnostic.Collector) (*Result, error) {
	root, err := store.Load(rootPath)
	if err != nil {
		return nil, errors.Wrapf(err, "root schema %q", rootPath)
	}

	synth := NewSynthesizer(schema.NewResolver(store), diags)
	rootCtx := schema.Context{Node: root, Path: rootPath}

	props := root.Properties()
	components := make([]Component, 0, len(props))
	for _, prop := range props {
		expr, err := synth.Synthesize(prop.Schema, rootCtx)
		if err != nil {
			return nil, errors.Wrapf(err, "component %q", prop.Name)
		}
		if expr == typeUnknown {
			// Degraded output is not an error, but a component with no
			// type information at all is worth telling the user about.
			diags.Warn(diagnostic.CategoryComponentEmpty, rootPath,
				fmt.Sprintf("component %q carries no type information", prop.Name))
		}
		docs := ExtractDocs(prop.Schema)
		components = append(components, Component{
			Key:         prop.Name,
			Name:        TypeName(prop.Name),
			Type:        expr,
			Title:       docs.Title,
			Description: docs.Description,
		})
	}

	return &Result{
		Output:     Render(components, prov),
		Components: components,
	}, nil
}

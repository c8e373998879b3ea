package typegen

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Component is one top-level named schema property exported as a
// standalone type declaration. Created once per run, never mutated.
type Component struct {
	Key         string // original schema property key
	Name        string // derived declaration identifier
	Type        string // synthesized type expression
	Title       string
	Description string
}

// Provenance identifies the schema corpus an artifact was compiled from.
// The emitted header is a pure function of these fields, never of
// wall-clock time, so output stays byte-identical for a fixed input.
type Provenance struct {
	Source     string
	Revision   string
	RootSchema string
}

var (
	wordSplit  = regexp.MustCompile(`[^A-Za-z0-9]+`)
	titleCaser = cases.Title(language.Und, cases.NoLower)
)

// TypeName derives a declaration identifier from a schema property key.
// Non-alphanumeric runs separate words; each word is capitalized and the
// words are concatenated without separators.
func TypeName(key string) string {
	var b strings.Builder
	for _, word := range wordSplit.Split(key, -1) {
		if word == "" {
			continue
		}
		b.WriteString(titleCaser.String(word))
	}
	if b.Len() == 0 {
		return "Component"
	}
	return b.String()
}

// Render assembles the final declaration text: provenance header, one
// named type per component in input order, and the aggregate Components
// interface listing every component key exactly once.
func Render(components []Component, prov Provenance) string {
	var b strings.Builder

	b.WriteString("// Code generated by schemats; DO NOT EDIT.\n")
	fmt.Fprintf(&b, "// Source: %s\n", prov.Source)
	if prov.Revision != "" {
		fmt.Fprintf(&b, "// Revision: %s\n", prov.Revision)
	}
	fmt.Fprintf(&b, "// Root schema: %s\n\n", prov.RootSchema)

	for _, c := range components {
		docs := Docs{Title: c.Title, Description: c.Description}
		if comment := docs.Comment(""); comment != "" {
			b.WriteString(comment)
		}
		fmt.Fprintf(&b, "export type %s = %s;\n\n", c.Name, c.Type)
	}

	b.WriteString("export interface Components {\n")
	for _, c := range components {
		fmt.Fprintf(&b, "%s%q?: %s;\n", indentUnit, c.Key, c.Name)
	}
	b.WriteString(indentUnit + "[component: string]: unknown;\n")
	b.WriteString("}\n")
	return b.String()
}

// Package typegen converts resolved schema nodes into TypeScript type
// expressions and assembles them into declaration text.
package typegen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	jsonv2 "github.com/go-json-experiment/json"

	"github.com/schemats/schemats/internal/diagnostic"
	"github.com/schemats/schemats/internal/schema"
)

const (
	// maxDepth is a circuit-breaker against pathological recursive
	// schemas. Exceeding it yields "unknown", not an error.
	maxDepth = 20

	typeUnknown = "unknown"
	openMapType = "{ [key: string]: unknown }"
	indentUnit  = "  "
)

var identPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// refKey identifies one $ref occurrence for cycle detection. The set is
// scoped to a single resolution chain, never shared across components.
type refKey struct {
	doc string
	ref string
}

// Synthesizer converts schema nodes into type expressions. It owns no
// state beyond its collaborators; synthesis is a pure function of
// (node, context, depth) plus the transient visited set.
type Synthesizer struct {
	resolver *schema.Resolver
	diags    *diagnostic.Collector
}

// NewSynthesizer creates a Synthesizer using resolver for $ref lookups.
func NewSynthesizer(resolver *schema.Resolver, diags *diagnostic.Collector) *Synthesizer {
	return &Synthesizer{resolver: resolver, diags: diags}
}

// Synthesize converts one schema node into a TypeScript type expression.
// ctx is the context of the document the node lives in.
func (s *Synthesizer) Synthesize(n *schema.Node, ctx schema.Context) (string, error) {
	return s.synth(n, ctx, 0, 0, make(map[refKey]bool))
}

// synth dispatches on schema shape. The order of the rules is
// load-bearing: some corpus schemas set several of these fields at once
// and the first rule must win.
func (s *Synthesizer) synth(n *schema.Node, ctx schema.Context, depth, indent int, visited map[refKey]bool) (string, error) {
	if n == nil || depth > maxDepth {
		return typeUnknown, nil
	}

	// 1. $ref: pure indirection, nothing else on the node counts.
	if ref := n.Ref(); ref != "" {
		key := refKey{doc: ctx.Path, ref: ref}
		if visited[key] {
			s.diags.Warn(diagnostic.CategoryRefCycle, ctx.Path,
				fmt.Sprintf("cyclic $ref %q", ref))
			return typeUnknown, nil
		}
		visited[key] = true
		defer delete(visited, key)

		resolved, ok, err := s.resolver.Resolve(ref, ctx)
		if err != nil {
			return "", err
		}
		if !ok {
			s.diags.Warn(diagnostic.CategoryRefUnresolved, ctx.Path,
				fmt.Sprintf("unresolved $ref %q", ref))
			return typeUnknown, nil
		}
		return s.synth(resolved.Node, resolved.Doc, depth+1, indent, visited)
	}

	// 2. oneOf/anyOf: union of branches, oneOf preferred when both appear.
	branches := n.OneOf()
	if len(branches) == 0 {
		branches = n.AnyOf()
	}
	if len(branches) > 0 {
		parts := make([]string, 0, len(branches))
		for _, branch := range branches {
			part, err := s.synth(branch, ctx, depth+1, indent, visited)
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return buildUnion(parts), nil
	}

	// 3. allOf: intersection of branches.
	if all := n.AllOf(); len(all) > 0 {
		parts := make([]string, 0, len(all))
		for _, branch := range all {
			part, err := s.synth(branch, ctx, depth+1, indent, visited)
			if err != nil {
				return "", err
			}
			if part == "" {
				continue
			}
			if strings.Contains(part, " | ") {
				part = "(" + part + ")"
			}
			parts = append(parts, part)
		}
		if len(parts) == 0 {
			return typeUnknown, nil
		}
		return strings.Join(parts, " & "), nil
	}

	// 4. enum: union of literal types.
	if values, ok := n.Enum(); ok {
		parts := make([]string, 0, len(values))
		for _, v := range values {
			parts = append(parts, renderLiteral(v))
		}
		return buildUnion(parts), nil
	}

	// 5. const: a single literal type.
	if v, ok := n.Const(); ok {
		return renderLiteral(v), nil
	}

	// 6–9. plain "type" dispatch.
	names := n.TypeNames()
	switch {
	case len(names) > 1:
		parts := make([]string, 0, len(names))
		for _, name := range names {
			part, err := s.synthSingleType(name, n, ctx, depth+1, indent, visited)
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return buildUnion(parts), nil
	case len(names) == 1:
		return s.synthSingleType(names[0], n, ctx, depth, indent, visited)
	default:
		if n.HasProperties() {
			return s.synthRecord(n, ctx, depth, indent, visited)
		}
		return typeUnknown, nil
	}
}

// synthSingleType maps one primitive type name, consulting the node's
// items/properties for the array and object cases.
func (s *Synthesizer) synthSingleType(name string, n *schema.Node, ctx schema.Context, depth, indent int, visited map[refKey]bool) (string, error) {
	switch name {
	case "string":
		return "string", nil
	case "number", "integer":
		return "number", nil
	case "boolean":
		return "boolean", nil
	case "null":
		return "null", nil
	case "array":
		return s.synthArray(n, ctx, depth, indent, visited)
	case "object":
		_, _, addPresent := n.AdditionalProperties()
		if n.HasProperties() || addPresent {
			return s.synthRecord(n, ctx, depth, indent, visited)
		}
		return openMapType, nil
	default:
		return typeUnknown, nil
	}
}

func (s *Synthesizer) synthArray(n *schema.Node, ctx schema.Context, depth, indent int, visited map[refKey]bool) (string, error) {
	single, tuple, ok := n.Items()
	if !ok {
		return "unknown[]", nil
	}
	if tuple != nil {
		slots := make([]string, len(tuple))
		for i, slot := range tuple {
			part, err := s.synth(slot, ctx, depth+1, indent, visited)
			if err != nil {
				return "", err
			}
			slots[i] = part
		}
		return "[" + strings.Join(slots, ", ") + "]", nil
	}
	elem, err := s.synth(single, ctx, depth+1, indent, visited)
	if err != nil {
		return "", err
	}
	if strings.ContainsAny(elem, " \n") {
		elem = "(" + elem + ")"
	}
	return elem + "[]", nil
}

// synthRecord renders a structural record: one field per property in
// document order, optional unless required, plus an index signature when
// additionalProperties allows extra keys.
func (s *Synthesizer) synthRecord(n *schema.Node, ctx schema.Context, depth, indent int, visited map[refKey]bool) (string, error) {
	pad := strings.Repeat(indentUnit, indent+1)
	closePad := strings.Repeat(indentUnit, indent)
	required := n.RequiredSet()

	var b strings.Builder
	b.WriteString("{\n")
	members := 0

	for _, prop := range n.Properties() {
		fieldType, err := s.synth(prop.Schema, ctx, depth+1, indent+1, visited)
		if err != nil {
			return "", err
		}
		if comment := ExtractDocs(prop.Schema).Comment(pad); comment != "" {
			b.WriteString(comment)
		}
		name := prop.Name
		if !identPattern.MatchString(name) {
			name = strconv.Quote(name)
		}
		optional := "?"
		if required[prop.Name] {
			optional = ""
		}
		fmt.Fprintf(&b, "%s%s%s: %s;\n", pad, name, optional, fieldType)
		members++
	}

	if addSchema, _, addPresent := n.AdditionalProperties(); addPresent {
		valueType := typeUnknown
		if addSchema != nil {
			var err error
			valueType, err = s.synth(addSchema, ctx, depth+1, indent+1, visited)
			if err != nil {
				return "", err
			}
		}
		fmt.Fprintf(&b, "%s[key: string]: %s;\n", pad, valueType)
		members++
	}

	if members == 0 {
		return openMapType, nil
	}
	b.WriteString(closePad + "}")
	return b.String(), nil
}

// buildUnion combines alternatives, dropping empties, de-duplicating by
// exact text equality, and collapsing a single survivor to itself.
func buildUnion(parts []string) string {
	seen := make(map[string]bool, len(parts))
	alts := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		alts = append(alts, part)
	}
	switch len(alts) {
	case 0:
		return typeUnknown
	case 1:
		return alts[0]
	default:
		return strings.Join(alts, " | ")
	}
}

// renderLiteral renders a decoded JSON value as its literal source form.
// Map keys are sorted by the encoder so output is deterministic.
func renderLiteral(v any) string {
	data, err := jsonv2.Marshal(v, jsonv2.Deterministic(true))
	if err != nil {
		return typeUnknown
	}
	return string(data)
}

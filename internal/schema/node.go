// Package schema loads JSON Schema documents and resolves references
// between them. Documents are decoded with order-preserving maps so that
// property enumeration order always matches the source text.
package schema

import (
	"github.com/iancoleman/orderedmap"
)

// Node is an immutable view over one schema value inside a parsed document.
// Nothing is ever written back through a Node; accessors return copies or
// derived views only.
type Node struct {
	om orderedmap.OrderedMap
}

// Property pairs a property name with its schema, in document order.
type Property struct {
	Name   string
	Schema *Node
}

// nodeFromValue wraps a decoded JSON value as a Node when the value is an
// object. Anything else (scalars, arrays, booleans) is not a schema node.
func nodeFromValue(v any) (*Node, bool) {
	switch m := v.(type) {
	case orderedmap.OrderedMap:
		return &Node{om: m}, true
	case *orderedmap.OrderedMap:
		return &Node{om: *m}, true
	default:
		return nil, false
	}
}

func (n *Node) get(key string) (any, bool) {
	if n == nil {
		return nil, false
	}
	return n.om.Get(key)
}

func (n *Node) stringField(key string) string {
	v, ok := n.get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (n *Node) nodeList(key string) []*Node {
	v, ok := n.get(key)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]*Node, 0, len(items))
	for _, item := range items {
		node, ok := nodeFromValue(item)
		if !ok {
			// Non-object branch entries carry no shape information.
			out = append(out, nil)
			continue
		}
		out = append(out, node)
	}
	return out
}

// Ref returns the $ref string, or "" when the node is not a reference.
// A node with $ref set is a pure indirection; callers must resolve it
// before inspecting any other field.
func (n *Node) Ref() string {
	return n.stringField("$ref")
}

// TypeNames returns the declared primitive type names. A scalar "type"
// yields one entry; a list yields its string members in order.
func (n *Node) TypeNames() []string {
	v, ok := n.get("type")
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		names := make([]string, 0, len(t))
		for _, entry := range t {
			if s, ok := entry.(string); ok {
				names = append(names, s)
			}
		}
		return names
	default:
		return nil
	}
}

// Properties returns the object properties in document order.
func (n *Node) Properties() []Property {
	v, ok := n.get("properties")
	if !ok {
		return nil
	}
	props, ok := v.(orderedmap.OrderedMap)
	if !ok {
		return nil
	}
	out := make([]Property, 0, len(props.Keys()))
	for _, name := range props.Keys() {
		value, _ := props.Get(name)
		node, ok := nodeFromValue(value)
		if !ok {
			continue
		}
		out = append(out, Property{Name: name, Schema: node})
	}
	return out
}

// HasProperties reports whether the node declares a properties object.
func (n *Node) HasProperties() bool {
	_, ok := n.get("properties")
	return ok
}

// RequiredSet returns the property names listed in "required".
func (n *Node) RequiredSet() map[string]bool {
	v, ok := n.get("required")
	if !ok {
		return nil
	}
	names, ok := v.([]any)
	if !ok {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, entry := range names {
		if s, ok := entry.(string); ok {
			set[s] = true
		}
	}
	return set
}

// Items returns the array item schema. A single schema comes back in
// single; a tuple form comes back in tuple with one entry per slot
// (nil for slots that carry no object schema).
func (n *Node) Items() (single *Node, tuple []*Node, ok bool) {
	v, present := n.get("items")
	if !present {
		return nil, nil, false
	}
	if node, isNode := nodeFromValue(v); isNode {
		return node, nil, true
	}
	if slots, isList := v.([]any); isList {
		tuple = make([]*Node, len(slots))
		for i, slot := range slots {
			node, isNode := nodeFromValue(slot)
			if isNode {
				tuple[i] = node
			}
		}
		return nil, tuple, true
	}
	return nil, nil, false
}

// OneOf returns the oneOf branches, in order.
func (n *Node) OneOf() []*Node { return n.nodeList("oneOf") }

// AnyOf returns the anyOf branches, in order.
func (n *Node) AnyOf() []*Node { return n.nodeList("anyOf") }

// AllOf returns the allOf branches, in order.
func (n *Node) AllOf() []*Node { return n.nodeList("allOf") }

// Enum returns the enum literal values and whether enum is present.
func (n *Node) Enum() ([]any, bool) {
	v, ok := n.get("enum")
	if !ok {
		return nil, false
	}
	values, ok := v.([]any)
	if !ok {
		return nil, false
	}
	return values, true
}

// Const returns the const literal value and whether const is present.
// Presence matters: a const of JSON null is still a const.
func (n *Node) Const() (any, bool) {
	return n.get("const")
}

// AdditionalProperties reports the additionalProperties field. When it is
// a schema, schema is non-nil; when it is boolean true, open is true.
// present is false when the field is absent or boolean false.
func (n *Node) AdditionalProperties() (schema *Node, open bool, present bool) {
	v, ok := n.get("additionalProperties")
	if !ok {
		return nil, false, false
	}
	switch t := v.(type) {
	case bool:
		return nil, t, t
	default:
		node, isNode := nodeFromValue(t)
		if !isNode {
			return nil, false, false
		}
		return node, false, true
	}
}

// Title returns the title annotation.
func (n *Node) Title() string { return n.stringField("title") }

// Description returns the description annotation.
func (n *Node) Description() string { return n.stringField("description") }

// Default returns the default value and whether one is declared.
func (n *Node) Default() (any, bool) {
	return n.get("default")
}

// Examples returns the examples list, or nil.
func (n *Node) Examples() []any {
	v, ok := n.get("examples")
	if !ok {
		return nil
	}
	values, _ := v.([]any)
	return values
}

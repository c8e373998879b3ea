package schema

import (
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// ByPointer resolves a JSON Pointer of the form "#/a/b/c" against root.
// A pointer equal to "#", or one that does not start with "#/", returns
// the root unchanged. That convenience rule is deliberate and relied on
// by reference resolution; it is not strict RFC 6901 behavior.
//
// Traversal fails softly: the first missing segment, out-of-range index,
// or non-traversable value yields (nil, false).
func ByPointer(root *Node, pointer string) (*Node, bool) {
	if root == nil {
		return nil, false
	}
	if pointer == "#" || !strings.HasPrefix(pointer, "#/") {
		return root, true
	}

	var current any = root.om
	for _, raw := range strings.Split(pointer[2:], "/") {
		segment := unescapeSegment(raw)
		switch v := current.(type) {
		case orderedmap.OrderedMap:
			next, ok := v.Get(segment)
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(v) {
				return nil, false
			}
			current = v[index]
		default:
			return nil, false
		}
	}
	return nodeFromValue(current)
}

// unescapeSegment decodes one pointer segment. Beyond the RFC 6901 pairs
// (~1 then ~0), %3A decodes to ":" because the schema corpus escapes
// colons in key names. No other percent sequences are decoded.
func unescapeSegment(segment string) string {
	segment = strings.ReplaceAll(segment, "~1", "/")
	segment = strings.ReplaceAll(segment, "~0", "~")
	segment = strings.ReplaceAll(segment, "%3A", ":")
	return segment
}

package typegen

import (
	"strings"

	"github.com/schemats/schemats/internal/schema"
)

// Docs holds the human-readable annotations attached to one field.
type Docs struct {
	Title       string
	Description string
	Default     any
	HasDefault  bool
	Example     any
	HasExample  bool
}

// ExtractDocs projects a node's documentation fields. The title is
// suppressed when identical to the description, and only the first
// example is surfaced. Reference nodes carry no documentation of their
// own; their annotations live on the resolved target.
func ExtractDocs(n *schema.Node) Docs {
	if n == nil || n.Ref() != "" {
		return Docs{}
	}
	d := Docs{
		Title:       n.Title(),
		Description: n.Description(),
	}
	if d.Title == d.Description {
		d.Title = ""
	}
	if v, ok := n.Default(); ok {
		d.Default = v
		d.HasDefault = true
	}
	if examples := n.Examples(); len(examples) > 0 {
		d.Example = examples[0]
		d.HasExample = true
	}
	return d
}

// Empty reports whether there is nothing to render.
func (d Docs) Empty() bool {
	return d.Title == "" && d.Description == "" && !d.HasDefault && !d.HasExample
}

// Comment renders the annotations as a JSDoc block at the given
// indentation, or "" when there is nothing to say.
func (d Docs) Comment(pad string) string {
	if d.Empty() {
		return ""
	}
	var b strings.Builder
	b.WriteString(pad + "/**\n")
	if d.Title != "" {
		b.WriteString(pad + " * " + d.Title + "\n")
	}
	if d.Description != "" {
		for _, line := range strings.Split(d.Description, "\n") {
			b.WriteString(pad + " * " + line + "\n")
		}
	}
	if d.HasDefault {
		b.WriteString(pad + " * @default " + renderLiteral(d.Default) + "\n")
	}
	if d.HasExample {
		b.WriteString(pad + " * @example " + renderLiteral(d.Example) + "\n")
	}
	b.WriteString(pad + " */\n")
	return b.String()
}

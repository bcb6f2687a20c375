package docs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-modelkit/pkg/schema"
	"github.com/goliatone/go-modelkit/pkg/spec"
)

// itemView is the template-facing projection of one documentation record.
// Schema constraints are preformatted so templates only loop and print.
type itemView struct {
	Name        string
	Heading     string
	Doc         string
	Singleton   bool
	Required    int
	MaxItems    string
	UIDRequired bool
	Schema      []string
	Properties  []itemView
}

type docView struct {
	Title    string
	Features []itemView
}

func buildView(title string, records []spec.DocRecord) docView {
	view := docView{Title: title}
	for _, record := range records {
		view.Features = append(view.Features, buildItemView("Feature", record))
	}
	return view
}

func buildItemView(label string, record spec.DocRecord) itemView {
	view := itemView{
		Name:        record.Name,
		Heading:     fmt.Sprintf("%s: %s", label, record.Name),
		Doc:         record.Doc,
		Singleton:   record.Singleton,
		Required:    record.Required,
		MaxItems:    maxItemsLabel(record.MaxItems),
		UIDRequired: record.UIDRequired,
	}
	if record.Schema != nil {
		view.Schema = schemaLines(*record.Schema)
	}
	for _, sub := range record.Sub {
		property := buildItemView("Property", sub)
		property.Heading = fmt.Sprintf("%s [%s]", property.Heading, record.Name)
		view.Properties = append(view.Properties, property)
	}
	return view
}

func maxItemsLabel(n int) string {
	if n == spec.Unbounded {
		return "unbounded"
	}
	return fmt.Sprintf("%d", n)
}

// schemaLines flattens a descriptor into one human-readable line per field
// constraint, fields sorted by name for stable output.
func schemaLines(d schema.Descriptor) []string {
	d = d.Normalize()
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		constraint := d.Fields[name]
		parts := []string{string(constraint.Type)}
		if constraint.Minimum != nil {
			op := ">="
			if constraint.ExclusiveMinimum {
				op = ">"
			}
			parts = append(parts, fmt.Sprintf("%s %v", op, *constraint.Minimum))
		}
		if constraint.Maximum != nil {
			op := "<="
			if constraint.ExclusiveMaximum {
				op = "<"
			}
			parts = append(parts, fmt.Sprintf("%s %v", op, *constraint.Maximum))
		}
		if constraint.MinLength != nil {
			parts = append(parts, fmt.Sprintf("min length %d", *constraint.MinLength))
		}
		if constraint.MaxLength != nil {
			parts = append(parts, fmt.Sprintf("max length %d", *constraint.MaxLength))
		}
		if constraint.Pattern != "" {
			parts = append(parts, fmt.Sprintf("pattern %q", constraint.Pattern))
		}
		if constraint.Expr != "" {
			parts = append(parts, fmt.Sprintf("satisfies %q", constraint.Expr))
		}
		if d.Wrapped {
			lines = append(lines, strings.Join(parts, ", "))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", name, strings.Join(parts, ", ")))
	}
	return lines
}

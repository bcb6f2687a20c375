// Package export converts authored specifications into OpenAPI documents so
// external tooling can consume the schema of a model's plain-data form.
package export

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-modelkit/pkg/schema"
	"github.com/goliatone/go-modelkit/pkg/spec"
)

// exprExtension carries predicate constraints that have no OpenAPI analog.
const exprExtension = "x-modelkit-expr"

// OpenAPIDocument wraps the model schema into a minimal OpenAPI 3 document
// with one named component per feature.
func OpenAPIDocument(ms *spec.ModelSpec, title, version string) (*openapi3.T, error) {
	root, err := ModelSchema(ms)
	if err != nil {
		return nil, err
	}
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"Model": openapi3.NewSchemaRef("", root),
			},
		},
	}
	return doc, nil
}

// ModelSchema converts a model specification into an object schema: one
// property per feature, arrays for multi-valued features.
func ModelSchema(ms *spec.ModelSpec) (*openapi3.Schema, error) {
	return registrySchema(ms.Registry())
}

// FeatureSchema converts a feature specification into an object schema.
func FeatureSchema(fs *spec.FeatureSpec) (*openapi3.Schema, error) {
	return registrySchema(fs.Registry())
}

func registrySchema(reg *spec.Registry) (*openapi3.Schema, error) {
	out := &openapi3.Schema{
		Type:       &openapi3.Types{openapi3.TypeObject},
		Properties: openapi3.Schemas{},
	}
	for _, name := range reg.Keys() {
		entry, _ := reg.Entry(name)
		item, err := entrySchema(name, entry)
		if err != nil {
			return nil, err
		}
		item.Description = entry.Doc
		out.Properties[name] = openapi3.NewSchemaRef("", wrapCardinality(entry, item))
		if entry.Required > 0 {
			out.Required = append(out.Required, name)
		}
	}
	sort.Strings(out.Required)
	return out, nil
}

func entrySchema(name string, entry spec.Entry) (*openapi3.Schema, error) {
	switch entry.Schema.Kind {
	case spec.ItemSchemaDescriptor:
		return descriptorSchema(entry.Schema.Descriptor), nil
	case spec.ItemSchemaRegistry:
		return registrySchema(entry.Schema.Sub)
	default:
		return nil, fmt.Errorf("export: item %q has unknown schema kind %q", name, entry.Schema.Kind)
	}
}

// wrapCardinality turns multi-valued entries into array schemas carrying the
// entry's bounds; singleton entries pass through.
func wrapCardinality(entry spec.Entry, item *openapi3.Schema) *openapi3.Schema {
	if entry.Singleton {
		return item
	}
	array := &openapi3.Schema{
		Type:  &openapi3.Types{openapi3.TypeArray},
		Items: openapi3.NewSchemaRef("", item),
	}
	if entry.Required > 0 {
		array.MinItems = uint64(entry.Required)
	}
	if entry.Bounded() {
		maxItems := uint64(entry.MaxItems)
		array.MaxItems = &maxItems
	}
	return array
}

func descriptorSchema(d schema.Descriptor) *openapi3.Schema {
	d = d.Normalize()
	if d.Wrapped {
		return constraintSchema(d.Fields[schema.WrappedField])
	}
	out := &openapi3.Schema{
		Type:       &openapi3.Types{openapi3.TypeObject},
		Properties: openapi3.Schemas{},
	}
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out.Properties[name] = openapi3.NewSchemaRef("", constraintSchema(d.Fields[name]))
	}
	return out
}

func constraintSchema(c schema.Constraint) *openapi3.Schema {
	out := &openapi3.Schema{
		Type: &openapi3.Types{string(c.Type)},
	}
	if c.Minimum != nil {
		out.Min = c.Minimum
		out.ExclusiveMin = c.ExclusiveMinimum
	}
	if c.Maximum != nil {
		out.Max = c.Maximum
		out.ExclusiveMax = c.ExclusiveMaximum
	}
	if c.MinLength != nil {
		out.MinLength = uint64(*c.MinLength)
	}
	if c.MaxLength != nil {
		maxLength := uint64(*c.MaxLength)
		out.MaxLength = &maxLength
	}
	if c.Pattern != "" {
		out.Pattern = c.Pattern
	}
	if c.Expr != "" {
		out.Extensions = map[string]any{exprExtension: c.Expr}
	}
	return out
}

package export

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelkit/pkg/schema"
	"github.com/goliatone/go-modelkit/pkg/spec"
)

func buildAircraftSpec(t *testing.T) *spec.ModelSpec {
	t.Helper()

	min := 0.0
	wing := spec.NewFeatureSpec()
	if err := wing.AddProperty("span", schema.Constrained(schema.Constraint{Type: schema.TypeNumber, Minimum: &min, ExclusiveMinimum: true}), spec.Required(1), spec.WithDoc("Wing span in meters.")); err != nil {
		t.Fatalf("add span: %v", err)
	}
	if err := wing.AddProperty("segments", schema.Composite(map[string]schema.Constraint{
		"root":  {Type: schema.TypeNumber},
		"tip":   {Type: schema.TypeNumber},
		"label": {Type: schema.TypeString, Expr: `len(value) > 0`},
	}), spec.NonSingleton(), spec.MaxItems(8)); err != nil {
		t.Fatalf("add segments: %v", err)
	}

	ms := spec.NewModelSpec()
	if err := ms.AddFeature("wing", wing, spec.Required(1)); err != nil {
		t.Fatalf("add wing: %v", err)
	}
	if err := ms.AddFeature("engine", spec.NewFeatureSpec(), spec.NonSingleton(), spec.Required(1), spec.MaxItems(4)); err != nil {
		t.Fatalf("add engine: %v", err)
	}
	return ms
}

func TestModelSchemaShape(t *testing.T) {
	root, err := ModelSchema(buildAircraftSpec(t))
	if err != nil {
		t.Fatalf("model schema: %v", err)
	}

	if !root.Type.Is(openapi3.TypeObject) {
		t.Fatalf("expected an object schema, got %v", root.Type)
	}
	if diff := cmp.Diff([]string{"engine", "wing"}, root.Required); diff != "" {
		t.Fatalf("required list mismatch (-want +got):\n%s", diff)
	}

	wing := root.Properties["wing"].Value
	if !wing.Type.Is(openapi3.TypeObject) {
		t.Fatalf("singleton feature must stay an object, got %v", wing.Type)
	}

	span := wing.Properties["span"].Value
	if !span.Type.Is(openapi3.TypeNumber) {
		t.Fatalf("wrapped constraint must collapse to its scalar type, got %v", span.Type)
	}
	if span.Min == nil || *span.Min != 0 || !span.ExclusiveMin {
		t.Fatalf("span bounds not carried: min=%v exclusive=%v", span.Min, span.ExclusiveMin)
	}
	if span.Description != "Wing span in meters." {
		t.Fatalf("doc string not carried: %q", span.Description)
	}
}

func TestMultiValuedEntriesBecomeArrays(t *testing.T) {
	root, err := ModelSchema(buildAircraftSpec(t))
	if err != nil {
		t.Fatalf("model schema: %v", err)
	}

	engines := root.Properties["engine"].Value
	if !engines.Type.Is(openapi3.TypeArray) {
		t.Fatalf("multi-valued feature must become an array, got %v", engines.Type)
	}
	if engines.MinItems != 1 {
		t.Fatalf("required count must map to minItems, got %d", engines.MinItems)
	}
	if engines.MaxItems == nil || *engines.MaxItems != 4 {
		t.Fatalf("max items not carried: %v", engines.MaxItems)
	}

	segments := root.Properties["wing"].Value.Properties["segments"].Value
	if !segments.Type.Is(openapi3.TypeArray) {
		t.Fatalf("multi-valued property must become an array, got %v", segments.Type)
	}
	item := segments.Items.Value
	if !item.Type.Is(openapi3.TypeObject) {
		t.Fatalf("composite descriptor must map to an object, got %v", item.Type)
	}
	label := item.Properties["label"].Value
	if got := label.Extensions[exprExtension]; got != `len(value) > 0` {
		t.Fatalf("expr constraint must survive as an extension, got %v", got)
	}
}

func TestOpenAPIDocumentValidates(t *testing.T) {
	doc, err := OpenAPIDocument(buildAircraftSpec(t), "Aircraft Model", "1.0.0")
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if doc.Info.Title != "Aircraft Model" || doc.Info.Version != "1.0.0" {
		t.Fatalf("info not carried: %+v", doc.Info)
	}
	if _, ok := doc.Components.Schemas["Model"]; !ok {
		t.Fatalf("missing Model component")
	}

	// The produced document must satisfy kin-openapi's own validator.
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("openapi validation: %v", err)
	}
}

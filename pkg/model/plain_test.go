package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelkit/pkg/schema"
	"github.com/goliatone/go-modelkit/pkg/spec"
	"github.com/goliatone/go-modelkit/pkg/validation"
)

func newPlainModelSpec(t *testing.T) *spec.ModelSpec {
	t.Helper()

	wing := spec.NewFeatureSpec()
	mustRegister(t, wing.AddProperty("span", schema.Primitive(schema.TypeNumber)))
	mustRegister(t, wing.AddProperty("stations", schema.Primitive(schema.TypeNumber), spec.NonSingleton()))

	engine := spec.NewFeatureSpec()
	mustRegister(t, engine.AddProperty("thrust", schema.Primitive(schema.TypeNumber)))

	ms := spec.NewModelSpec()
	mustRegister(t, ms.AddFeature("wing", wing))
	mustRegister(t, ms.AddFeature("engine", engine, spec.NonSingleton()))
	return ms
}

func newPopulatedModel(t *testing.T) *Model {
	t.Helper()
	m := New(newPlainModelSpec(t))

	wing, err := m.SetFeature("wing")
	if err != nil {
		t.Fatalf("set wing: %v", err)
	}
	if err := wing.Set("span", 17.5); err != nil {
		t.Fatalf("set span: %v", err)
	}
	if err := wing.AddMany("stations", 0.0, 0.5, 1.0); err != nil {
		t.Fatalf("add stations: %v", err)
	}

	left, err := m.AddFeatureUID("engine", "engine-left")
	if err != nil {
		t.Fatalf("add engine: %v", err)
	}
	if err := left.Set("thrust", 120.0); err != nil {
		t.Fatalf("set thrust: %v", err)
	}
	right, err := m.AddFeatureUID("engine", "engine-right")
	if err != nil {
		t.Fatalf("add engine: %v", err)
	}
	if err := right.Set("thrust", 121.0); err != nil {
		t.Fatalf("set thrust: %v", err)
	}
	return m
}

func TestToPlainShape(t *testing.T) {
	m := newPopulatedModel(t)
	plain := m.ToPlain()

	if plain[PlainKindKey] != "model" {
		t.Fatalf("expected model kind, got %v", plain[PlainKindKey])
	}
	if plain[PlainIDKey] == "" {
		t.Fatalf("expected an id")
	}

	engines, ok := plain["engine"].([]any)
	if !ok || len(engines) != 2 {
		t.Fatalf("expected two engine nodes, got %v", plain["engine"])
	}
	node, ok := engines[0].(map[string]any)
	if !ok {
		t.Fatalf("expected a mapping node, got %T", engines[0])
	}
	if node[PlainKindKey] != "feature" {
		t.Fatalf("expected feature kind, got %v", node[PlainKindKey])
	}
	if diff := cmp.Diff([]any{120.0}, node["thrust"]); diff != "" {
		t.Fatalf("thrust mismatch (-want +got):\n%s", diff)
	}

	uids, ok := plain[PlainUIDsKey].(map[string]any)
	if !ok {
		t.Fatalf("expected uid bindings, got %v", plain[PlainUIDsKey])
	}
	want := map[string]any{"engine-left": 0, "engine-right": 1}
	if diff := cmp.Diff(want, uids["engine"]); diff != "" {
		t.Fatalf("engine uid bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestPlainRoundTrip(t *testing.T) {
	src := newPopulatedModel(t)
	plain := src.ToPlain()

	dst := New(newPlainModelSpec(t))
	if err := dst.FromPlain(plain); err != nil {
		t.Fatalf("from plain: %v", err)
	}

	wing, err := dst.Feature("wing")
	if err != nil || wing == nil {
		t.Fatalf("wing missing after round trip: %v", err)
	}
	if got, _ := wing.Get("span"); got != 17.5 {
		t.Fatalf("span mismatch: %v", got)
	}
	stations, _ := wing.Get("stations")
	if diff := cmp.Diff([]any{0.0, 0.5, 1.0}, stations); diff != "" {
		t.Fatalf("stations mismatch (-want +got):\n%s", diff)
	}

	left, err := dst.FeatureByUID("engine", "engine-left")
	if err != nil {
		t.Fatalf("engine-left missing after round trip: %v", err)
	}
	if got, _ := left.Get("thrust"); got != 120.0 {
		t.Fatalf("thrust mismatch: %v", got)
	}
	right, err := dst.FeatureByUID("engine", "engine-right")
	if err != nil {
		t.Fatalf("engine-right missing after round trip: %v", err)
	}
	if got, _ := right.Get("thrust"); got != 121.0 {
		t.Fatalf("thrust mismatch: %v", got)
	}

	// The re-populated node flattens back to the same shape, ids aside.
	ignoreIDs := cmp.FilterPath(func(p cmp.Path) bool {
		idx, ok := p.Last().(cmp.MapIndex)
		return ok && idx.Key().String() == PlainIDKey
	}, cmp.Ignore())
	if diff := cmp.Diff(plain, dst.ToPlain(), ignoreIDs); diff != "" {
		t.Fatalf("round-tripped shape mismatch (-want +got):\n%s", diff)
	}
}

func TestFromPlainRejectsUndeclaredKeys(t *testing.T) {
	m := New(newPlainModelSpec(t))
	err := m.FromPlain(map[string]any{
		PlainKindKey: "model",
		"fuselage":   []any{},
	})
	var unknown *UnknownKeyError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownKeyError, got %v", err)
	}
	if unknown.Name != "fuselage" {
		t.Fatalf("expected fuselage, got %q", unknown.Name)
	}
}

func TestFromPlainValidatesReplayedValues(t *testing.T) {
	fs := spec.NewFeatureSpec()
	mustRegister(t, fs.AddProperty("span", schema.Primitive(schema.TypeNumber)))

	f := NewFeature(fs)
	err := f.FromPlain(map[string]any{"span": []any{"wide"}})
	var violation *validation.SchemaViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("expected SchemaViolationError, got %v", err)
	}
}

func TestFromPlainDecodedOrdinalShapes(t *testing.T) {
	fs := spec.NewFeatureSpec()
	mustRegister(t, fs.AddProperty("c", schema.Primitive(schema.TypeString), spec.NonSingleton()))

	// JSON decoding turns ordinals into float64; YAML into int.
	for _, ordinal := range []any{float64(1), int(1), int64(1), uint64(1)} {
		f := NewFeature(fs)
		err := f.FromPlain(map[string]any{
			"c":          []any{"a", "b"},
			PlainUIDsKey: map[string]any{"c": map[string]any{"second": ordinal}},
		})
		if err != nil {
			t.Fatalf("ordinal %T: %v", ordinal, err)
		}
		got, err := f.GetByUID("c", "second")
		if err != nil || got != "b" {
			t.Fatalf("ordinal %T: uid lookup got %v, %v", ordinal, got, err)
		}
	}

	f := NewFeature(fs)
	err := f.FromPlain(map[string]any{
		"c":          []any{"a"},
		PlainUIDsKey: map[string]any{"c": map[string]any{"bad": 0.5}},
	})
	if err == nil {
		t.Fatalf("fractional ordinal must be rejected")
	}
}

func TestFromPlainMalformedNodes(t *testing.T) {
	m := New(newPlainModelSpec(t))

	if err := m.FromPlain(map[string]any{"engine": "not a sequence"}); err == nil {
		t.Fatalf("scalar where a sequence is expected must fail")
	}
	if err := m.FromPlain(map[string]any{"engine": []any{"not a mapping"}}); err == nil {
		t.Fatalf("scalar where a feature node is expected must fail")
	}
	if err := m.FromPlain(map[string]any{PlainUIDsKey: "not a mapping"}); err == nil {
		t.Fatalf("malformed uid bindings must fail")
	}
}

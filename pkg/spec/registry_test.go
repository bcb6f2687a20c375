package spec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelkit/pkg/ident"
	"github.com/goliatone/go-modelkit/pkg/schema"
)

func TestAddPropertyRejectsDuplicates(t *testing.T) {
	fs := NewFeatureSpec()
	if err := fs.AddProperty("A", schema.Primitive(schema.TypeInteger)); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	err := fs.AddProperty("A", schema.Primitive(schema.TypeString))
	var dup *DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateKeyError, got %v", err)
	}
	if dup.Name != "A" {
		t.Fatalf("expected offending name A, got %q", dup.Name)
	}
}

func TestKeysPreserveRegistrationOrder(t *testing.T) {
	fs := NewFeatureSpec()
	names := []string{"zulu", "alpha", "mike", "bravo"}
	for _, name := range names {
		if err := fs.AddProperty(name, schema.Primitive(schema.TypeInteger)); err != nil {
			t.Fatalf("register %q: %v", name, err)
		}
	}
	if diff := cmp.Diff(names, fs.Registry().Keys()); diff != "" {
		t.Fatalf("keys out of order (-want +got):\n%s", diff)
	}
}

func TestAddPropertyArgumentValidation(t *testing.T) {
	cases := []struct {
		name    string
		key     string
		options []ItemOption
	}{
		{"empty name", "", nil},
		{"whitespace name", "  ", nil},
		{"sentinel prefix", "$kind", nil},
		{"negative required", "a", []ItemOption{Required(-2)}},
		{"zero max items", "b", []ItemOption{MaxItems(-1)}},
		{"uid on singleton", "c", []ItemOption{UIDRequired()}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fs := NewFeatureSpec()
			err := fs.AddProperty(tc.key, schema.Primitive(schema.TypeInteger), tc.options...)
			var invalid *InvalidArgumentError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidArgumentError, got %v", err)
			}
		})
	}
}

func TestAddPropertyRejectsMalformedSchema(t *testing.T) {
	fs := NewFeatureSpec()
	err := fs.AddProperty("x", schema.Primitive(schema.Type("blob")))
	var invalid *InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}
}

func TestEntryNormalizesPrimitiveSchema(t *testing.T) {
	fs := NewFeatureSpec()
	if err := fs.AddProperty("a", schema.Primitive(schema.TypeBoolean)); err != nil {
		t.Fatalf("register: %v", err)
	}
	entry, ok := fs.Registry().Entry("a")
	if !ok {
		t.Fatalf("entry not found")
	}
	d := entry.Schema.Descriptor
	if d.Kind != schema.KindComposite || !d.Wrapped {
		t.Fatalf("expected a wrapped composite, got %+v", d)
	}
}

func TestEntryDefaults(t *testing.T) {
	fs := NewFeatureSpec()
	if err := fs.AddProperty("a", schema.Primitive(schema.TypeInteger)); err != nil {
		t.Fatalf("register: %v", err)
	}
	entry, _ := fs.Registry().Entry("a")
	if !entry.Singleton || entry.Required != 0 || entry.Bounded() || entry.UIDRequired {
		t.Fatalf("unexpected defaults: %+v", entry)
	}
}

// The registry does not reject required counts above max items; such an
// entry simply never satisfies its required-check.
func TestUnsatisfiableEntryIsAccepted(t *testing.T) {
	fs := NewFeatureSpec()
	err := fs.AddProperty("a", schema.Primitive(schema.TypeInteger),
		NonSingleton(), Required(5), MaxItems(3))
	if err != nil {
		t.Fatalf("expected permissive registration, got %v", err)
	}
}

func TestRegistryIDUsesInjectedGenerator(t *testing.T) {
	fs := NewFeatureSpec(WithIDGenerator(ident.Sequential("reg")))
	if got := fs.Registry().ID(); got != "reg-0" {
		t.Fatalf("expected deterministic id reg-0, got %q", got)
	}
}

func TestAddFeatureRejectsNilSpec(t *testing.T) {
	ms := NewModelSpec()
	var invalid *InvalidArgumentError
	if err := ms.AddFeature("wing", nil); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}
}

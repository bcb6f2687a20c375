package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the closed set of primitive value kinds a property may hold.
type Type string

const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Valid reports whether t is one of the recognized primitive type tags.
func (t Type) Valid() bool {
	switch t {
	case TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeArray, TypeObject:
		return true
	}
	return false
}

// Kind discriminates the descriptor variants. After normalization every
// descriptor consumed by the validator is a composite.
type Kind string

const (
	KindPrimitive Kind = "primitive"
	KindComposite Kind = "composite"
)

// WrappedField is the synthetic field name used when a bare primitive tag is
// normalized into a trivial one-field composite.
const WrappedField = "value"

// Constraint restricts a single composite field: a type tag plus optional
// numeric bounds, length bounds, a regexp pattern and an expression
// predicate evaluated with the candidate bound to "value".
type Constraint struct {
	Type             Type     `json:"type" yaml:"type"`
	Minimum          *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMinimum bool     `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum bool     `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty"`
	MinLength        *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength        *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern          string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Expr             string   `json:"expr,omitempty" yaml:"expr,omitempty"`
}

// Descriptor describes one acceptable value shape. It is immutable once
// attached to a spec entry.
type Descriptor struct {
	Kind      Kind                  `json:"kind" yaml:"kind"`
	Primitive Type                  `json:"primitive,omitempty" yaml:"primitive,omitempty"`
	Fields    map[string]Constraint `json:"fields,omitempty" yaml:"fields,omitempty"`
	// Wrapped marks a composite produced by normalizing a bare primitive
	// tag; validators unwrap the candidate under WrappedField.
	Wrapped bool `json:"wrapped,omitempty" yaml:"wrapped,omitempty"`
}

// Primitive builds a descriptor for a bare type tag.
func Primitive(t Type) Descriptor {
	return Descriptor{Kind: KindPrimitive, Primitive: t}
}

// Composite builds a descriptor from named field constraints.
func Composite(fields map[string]Constraint) Descriptor {
	return Descriptor{Kind: KindComposite, Fields: fields}
}

// Constrained builds a descriptor for a bare value governed by a single
// constraint: the trivial composite shape a primitive tag normalizes to,
// with bounds attached.
func Constrained(c Constraint) Descriptor {
	return Descriptor{
		Kind:    KindComposite,
		Fields:  map[string]Constraint{WrappedField: c},
		Wrapped: true,
	}
}

// Field is shorthand for a single constraint carrying only a type tag.
func Field(t Type) Constraint {
	return Constraint{Type: t}
}

// Normalize resolves the descriptor into the composite shape downstream
// validation expects. A primitive tag becomes a trivial one-field composite
// keyed by WrappedField; composites pass through unchanged.
func (d Descriptor) Normalize() Descriptor {
	if d.Kind != KindPrimitive {
		return d
	}
	return Descriptor{
		Kind:    KindComposite,
		Fields:  map[string]Constraint{WrappedField: {Type: d.Primitive}},
		Wrapped: true,
	}
}

// Validate checks the descriptor is well formed: a recognized variant, a
// recognized type tag on every constraint, and coherent bounds.
func (d Descriptor) Validate() error {
	switch d.Kind {
	case KindPrimitive:
		if !d.Primitive.Valid() {
			return fmt.Errorf("schema: unknown primitive type tag %q", d.Primitive)
		}
		return nil
	case KindComposite:
		if len(d.Fields) == 0 {
			return fmt.Errorf("schema: composite descriptor has no fields")
		}
		for _, name := range sortedFieldNames(d.Fields) {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("schema: composite field name is empty")
			}
			if err := d.Fields[name].validate(); err != nil {
				return fmt.Errorf("schema: field %q: %w", name, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("schema: unknown descriptor kind %q", d.Kind)
	}
}

func (c Constraint) validate() error {
	if !c.Type.Valid() {
		return fmt.Errorf("unknown type tag %q", c.Type)
	}
	if c.Minimum != nil && c.Maximum != nil && *c.Minimum > *c.Maximum {
		return fmt.Errorf("minimum %v exceeds maximum %v", *c.Minimum, *c.Maximum)
	}
	if c.MinLength != nil && *c.MinLength < 0 {
		return fmt.Errorf("minLength must not be negative")
	}
	if c.MaxLength != nil && *c.MaxLength < 0 {
		return fmt.Errorf("maxLength must not be negative")
	}
	if c.MinLength != nil && c.MaxLength != nil && *c.MinLength > *c.MaxLength {
		return fmt.Errorf("minLength %d exceeds maxLength %d", *c.MinLength, *c.MaxLength)
	}
	return nil
}

func sortedFieldNames(fields map[string]Constraint) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

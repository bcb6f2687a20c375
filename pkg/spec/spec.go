package spec

import "github.com/goliatone/go-modelkit/pkg/schema"

// FeatureSpec declares the properties of one feature: each registered item is
// a leaf value governed by a schema descriptor.
type FeatureSpec struct {
	reg *Registry
}

// NewFeatureSpec constructs an empty feature specification.
func NewFeatureSpec(options ...Option) *FeatureSpec {
	return &FeatureSpec{reg: NewRegistry(options...)}
}

// AddProperty registers a property specification. The descriptor may be a
// bare primitive tag (normalized into a trivial composite) or a composite
// constraint map.
func (f *FeatureSpec) AddProperty(name string, d schema.Descriptor, options ...ItemOption) error {
	return f.reg.add(name, ItemSchema{Kind: ItemSchemaDescriptor, Descriptor: d}, options...)
}

// Registry exposes the underlying read-only registry.
func (f *FeatureSpec) Registry() *Registry {
	return f.reg
}

// Docs returns the documentation records for every declared property.
func (f *FeatureSpec) Docs() []DocRecord {
	return f.reg.Docs()
}

// ModelSpec declares the features of one model: each registered item is a
// nested FeatureSpec. A ModelSpec may additionally declare a parallel results
// specification, instantiated by the model's prepare step.
type ModelSpec struct {
	reg     *Registry
	results *ModelSpec
}

// NewModelSpec constructs an empty model specification.
func NewModelSpec(options ...Option) *ModelSpec {
	return &ModelSpec{reg: NewRegistry(options...)}
}

// AddFeature registers a feature specification under name.
func (m *ModelSpec) AddFeature(name string, fs *FeatureSpec, options ...ItemOption) error {
	if fs == nil {
		return invalidArgf("feature spec", "must not be nil")
	}
	return m.reg.add(name, ItemSchema{Kind: ItemSchemaRegistry, Sub: fs.reg}, options...)
}

// SetResults declares the specification the model's results container is
// bound to. Passing nil clears the declaration.
func (m *ModelSpec) SetResults(results *ModelSpec) {
	m.results = results
}

// Results returns the declared results specification, or nil.
func (m *ModelSpec) Results() *ModelSpec {
	return m.results
}

// Registry exposes the underlying read-only registry.
func (m *ModelSpec) Registry() *Registry {
	return m.reg
}

// Docs returns the documentation records for every declared feature,
// recursing into each feature's property records.
func (m *ModelSpec) Docs() []DocRecord {
	return m.reg.Docs()
}

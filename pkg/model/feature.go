package model

import "github.com/goliatone/go-modelkit/pkg/spec"

// Feature is a container of leaf property values bound to a FeatureSpec.
// Features are normally constructed through Model.SetFeature/AddFeature;
// NewFeature exists for specifications used standalone.
type Feature struct {
	container
}

// NewFeature constructs an empty feature bound to fs.
func NewFeature(fs *spec.FeatureSpec, options ...Option) *Feature {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return newFeature(fs.Registry(), cfg)
}

func newFeature(reg *spec.Registry, cfg config) *Feature {
	return &Feature{container: newContainer(reg, cfg)}
}

// Set stores the value of a singleton property, replacing any prior value.
// The value is validated against the property's schema first.
func (f *Feature) Set(name string, value any) error {
	return f.setValue(name, value, true)
}

// Add appends a value to a multi-valued property.
func (f *Feature) Add(name string, value any) error {
	return f.addValue(name, value, "", true)
}

// AddUID appends a value to a multi-valued property and binds uid to it for
// direct lookup via GetByUID.
func (f *Feature) AddUID(name, uid string, value any) error {
	return f.addValue(name, value, uid, true)
}

// AddMany appends values in order, stopping at the first failure. Values
// added before the failure stay in place; callers needing atomicity must
// pre-validate.
func (f *Feature) AddMany(name string, values ...any) error {
	for _, value := range values {
		if err := f.Add(name, value); err != nil {
			return err
		}
	}
	return nil
}

// checkRequired walks every property specification and verifies the stored
// count meets the declared minimum. parent qualifies error names.
func (f *Feature) checkRequired(parent string) error {
	for _, name := range f.reg.Keys() {
		entry, _ := f.reg.Entry(name)
		if entry.Required <= 0 {
			continue
		}
		if count := f.store.Count(name); count < entry.Required {
			qualified := name
			if parent != "" {
				qualified = parent + "." + name
			}
			return &RequirementNotMetError{Name: qualified, Expected: entry.Required, Actual: count}
		}
	}
	return nil
}

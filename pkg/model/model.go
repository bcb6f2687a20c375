package model

import (
	"fmt"

	"github.com/goliatone/go-modelkit/pkg/spec"
)

// Model is a container of Feature containers bound to a ModelSpec. Features
// are constructed lazily on the first SetFeature/AddFeature call for a name
// and handed back to the caller for population.
type Model struct {
	container

	mspec   *spec.ModelSpec
	cfg     config
	results *Model
}

// New constructs an empty model bound to ms.
func New(ms *spec.ModelSpec, options ...Option) *Model {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Model{
		container: newContainer(ms.Registry(), cfg),
		mspec:     ms,
		cfg:       cfg,
	}
}

func (m *Model) newSubFeature(name string) (*Feature, error) {
	entry, err := m.entry(name)
	if err != nil {
		return nil, err
	}
	if entry.Schema.Kind != spec.ItemSchemaRegistry {
		return nil, fmt.Errorf("model: item %q does not declare a feature", name)
	}
	return newFeature(entry.Schema.Sub, m.cfg), nil
}

// SetFeature constructs a fresh feature for a singleton entry, stores it in
// place of any prior instance, and returns it for population.
func (m *Model) SetFeature(name string) (*Feature, error) {
	feature, err := m.newSubFeature(name)
	if err != nil {
		return nil, err
	}
	if err := m.setValue(name, feature, false); err != nil {
		return nil, err
	}
	return feature, nil
}

// AddFeature constructs a fresh feature for a multi-valued entry, appends it,
// and returns it for population.
func (m *Model) AddFeature(name string) (*Feature, error) {
	return m.addFeature(name, "")
}

// AddFeatureUID behaves like AddFeature and binds uid to the new instance.
func (m *Model) AddFeatureUID(name, uid string) (*Feature, error) {
	return m.addFeature(name, uid)
}

func (m *Model) addFeature(name, uid string) (*Feature, error) {
	feature, err := m.newSubFeature(name)
	if err != nil {
		return nil, err
	}
	if err := m.addValue(name, feature, uid, false); err != nil {
		return nil, err
	}
	return feature, nil
}

// Feature returns the stored instance of a singleton feature entry, or nil
// when none was set.
func (m *Model) Feature(name string) (*Feature, error) {
	entry, err := m.entry(name)
	if err != nil {
		return nil, err
	}
	if !entry.Singleton {
		return nil, &CardinalityError{Name: name, Op: "Feature", Hint: "Features"}
	}
	if m.store.Count(name) == 0 {
		return nil, nil
	}
	return m.store.Values(name)[0].(*Feature), nil
}

// Features returns every stored instance of a multi-valued feature entry in
// insertion order.
func (m *Model) Features(name string) ([]*Feature, error) {
	entry, err := m.entry(name)
	if err != nil {
		return nil, err
	}
	if entry.Singleton {
		return nil, &CardinalityError{Name: name, Op: "Features", Hint: "Feature"}
	}
	values := m.store.Values(name)
	out := make([]*Feature, len(values))
	for i, value := range values {
		out[i] = value.(*Feature)
	}
	return out, nil
}

// FeatureByUID returns the feature instance bound to uid.
func (m *Model) FeatureByUID(name, uid string) (*Feature, error) {
	value, err := m.GetByUID(name, uid)
	if err != nil {
		return nil, err
	}
	return value.(*Feature), nil
}

// Prepare runs the shared pre-compute phase: the required-items check over
// the whole model, then lazy allocation of the results container when the
// specification declares one. Hosts must call Prepare before their own
// compute step; it is not run on every mutation, so partially populated
// models are fine while under construction.
func (m *Model) Prepare() error {
	if err := m.checkRequired(); err != nil {
		return err
	}
	if rs := m.mspec.Results(); rs != nil && m.results == nil {
		m.results = New(rs, WithIDGenerator(m.cfg.idgen), WithChecker(m.cfg.checker))
	}
	return nil
}

// Run is a convenience wrapper for the two-phase protocol: Prepare, then the
// caller-supplied compute step.
func (m *Model) Run(compute func(*Model) error) error {
	if err := m.Prepare(); err != nil {
		return err
	}
	if compute == nil {
		return nil
	}
	return compute(m)
}

// Results returns the results container allocated by Prepare, or nil when
// the specification declares none or Prepare has not run yet.
func (m *Model) Results() *Model {
	return m.results
}

// checkRequired verifies the stored feature counts against the model
// specification, then recurses one level into every stored feature.
func (m *Model) checkRequired() error {
	for _, name := range m.reg.Keys() {
		entry, _ := m.reg.Entry(name)
		count := m.store.Count(name)
		if entry.Required > 0 && count < entry.Required {
			return &RequirementNotMetError{Name: name, Expected: entry.Required, Actual: count}
		}
		for _, item := range m.store.Items(name) {
			feature, ok := item.Value.(*Feature)
			if !ok {
				continue
			}
			if err := feature.checkRequired(name); err != nil {
				return err
			}
		}
	}
	return nil
}

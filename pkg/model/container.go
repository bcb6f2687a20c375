// Package model hosts the runtime side of the engine: containers bound to an
// authored specification. A Model holds Feature containers; a Feature holds
// leaf property values. Every mutation is validated against the bound
// registry before it reaches the store.
package model

import (
	"iter"
	"strconv"

	"github.com/goliatone/go-modelkit/internal/store"
	"github.com/goliatone/go-modelkit/pkg/spec"
	"github.com/goliatone/go-modelkit/pkg/validation"
)

// container binds one item store to one read-only registry. The registry is
// shared across every container built from it and outlives them all.
type container struct {
	id      string
	reg     *spec.Registry
	store   *store.Store
	checker validation.Checker
}

func newContainer(reg *spec.Registry, cfg config) container {
	return container{
		id:      cfg.idgen.NewID(),
		reg:     reg,
		store:   store.New(),
		checker: cfg.checker,
	}
}

// ID returns the container's own identifier, independent from the registry's.
func (c *container) ID() string {
	return c.id
}

// Registry returns the specification the container is bound to.
func (c *container) Registry() *spec.Registry {
	return c.reg
}

// Keys returns the registered item names in registration order.
func (c *container) Keys() []string {
	return c.reg.Keys()
}

func (c *container) entry(name string) (spec.Entry, error) {
	entry, ok := c.reg.Entry(name)
	if !ok {
		return spec.Entry{}, &UnknownKeyError{Name: name}
	}
	return entry, nil
}

// Singleton reports whether name is declared single-valued.
func (c *container) Singleton(name string) (bool, error) {
	entry, err := c.entry(name)
	if err != nil {
		return false, err
	}
	return entry.Singleton, nil
}

// Len returns the number of values currently stored under name.
func (c *container) Len(name string) (int, error) {
	if _, err := c.entry(name); err != nil {
		return 0, err
	}
	return c.store.Count(name), nil
}

// Get returns the stored content for name: the sole value of a singleton
// item, or the full ordered sequence of a multi-valued item. With nothing
// stored it returns nil.
func (c *container) Get(name string) (any, error) {
	entry, err := c.entry(name)
	if err != nil {
		return nil, err
	}
	if c.store.Count(name) == 0 {
		return nil, nil
	}
	if entry.Singleton {
		return c.store.Values(name)[0], nil
	}
	return c.store.Values(name), nil
}

// GetDefault behaves like Get but substitutes def when nothing is stored.
func (c *container) GetDefault(name string, def any) (any, error) {
	value, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return def, nil
	}
	return value, nil
}

// GetByUID returns the value bound to uid for a multi-valued item.
func (c *container) GetByUID(name, uid string) (any, error) {
	if _, err := c.entry(name); err != nil {
		return nil, err
	}
	return c.store.GetByUID(name, uid)
}

// Iterate yields the stored values for a multi-valued item in insertion
// order. The sequence is restartable; singleton items must use Get.
func (c *container) Iterate(name string) (iter.Seq[any], error) {
	entry, err := c.entry(name)
	if err != nil {
		return nil, err
	}
	if entry.Singleton {
		return nil, &CardinalityError{Name: name, Op: "Iterate", Hint: "Get"}
	}
	return func(yield func(any) bool) {
		for _, item := range c.store.Items(name) {
			if !yield(item.Value) {
				return
			}
		}
	}, nil
}

// Items yields (key, value) pairs for a multi-valued item in insertion
// order. The key is the assigned UID when one exists, the decimal ordinal
// otherwise.
func (c *container) Items(name string) (iter.Seq2[string, any], error) {
	entry, err := c.entry(name)
	if err != nil {
		return nil, err
	}
	if entry.Singleton {
		return nil, &CardinalityError{Name: name, Op: "Items", Hint: "Get"}
	}
	return func(yield func(string, any) bool) {
		for _, item := range c.store.Items(name) {
			key := item.UID
			if key == "" {
				key = strconv.Itoa(item.Ordinal)
			}
			if !yield(key, item.Value) {
				return
			}
		}
	}, nil
}

// setValue implements singleton overwrite semantics after cardinality and
// schema checks. validate is skipped for construct-then-store callers.
func (c *container) setValue(name string, value any, validate bool) error {
	entry, err := c.entry(name)
	if err != nil {
		return err
	}
	if !entry.Singleton {
		return &CardinalityError{Name: name, Op: "Set", Hint: "Add"}
	}
	if validate {
		if err := c.checker.Check(name, entry.Schema.Descriptor, value); err != nil {
			return err
		}
	}
	c.store.Overwrite(name, value)
	return nil
}

// addValue implements append semantics: uid policy, schema check, max-items
// check, append, then uid binding.
func (c *container) addValue(name string, value any, uid string, validate bool) error {
	entry, err := c.entry(name)
	if err != nil {
		return err
	}
	if entry.Singleton {
		return &CardinalityError{Name: name, Op: "Add", Hint: "Set"}
	}
	if entry.UIDRequired && uid == "" {
		return &MissingUIDError{Name: name}
	}
	if uid != "" && c.store.HasUID(name, uid) {
		return &store.DuplicateUIDError{Name: name, UID: uid}
	}
	if validate {
		if err := c.checker.Check(name, entry.Schema.Descriptor, value); err != nil {
			return err
		}
	}
	if entry.Bounded() && c.store.Count(name)+1 > entry.MaxItems {
		return &CardinalityExceededError{Name: name, MaxItems: entry.MaxItems}
	}
	ordinal := c.store.Append(name, value)
	if uid != "" {
		if err := c.store.AssignUID(name, uid, ordinal); err != nil {
			return err
		}
	}
	return nil
}

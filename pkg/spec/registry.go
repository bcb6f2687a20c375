package spec

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-modelkit/pkg/ident"
)

// Registry is an ordered, write-once mapping from item name to Entry. It is
// authored once, then shared read-only by every container built from it; the
// registry outlives those containers. Registered names cannot be redefined.
type Registry struct {
	id      string
	names   []string
	entries map[string]Entry
}

// Option configures registry construction.
type Option func(*config)

type config struct {
	idgen ident.Generator
}

// WithIDGenerator injects the identifier source used for the registry id.
// Defaults to ident.Random().
func WithIDGenerator(gen ident.Generator) Option {
	return func(cfg *config) {
		if gen != nil {
			cfg.idgen = gen
		}
	}
}

// NewRegistry constructs an empty registry with a process-unique identifier.
func NewRegistry(options ...Option) *Registry {
	cfg := config{idgen: ident.Random()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Registry{
		id:      cfg.idgen.NewID(),
		entries: make(map[string]Entry),
	}
}

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// add registers a new entry under name. The schema variant must already be
// resolved by the calling wrapper (FeatureSpec or ModelSpec).
func (r *Registry) add(name string, s ItemSchema, options ...ItemOption) error {
	if strings.TrimSpace(name) == "" {
		return invalidArgf("name", "must be a non-empty string")
	}
	if !namePattern.MatchString(name) {
		return invalidArgf("name", "%q is not identifier-like", name)
	}
	if _, exists := r.entries[name]; exists {
		return &DuplicateKeyError{Name: name}
	}

	entry := Entry{
		Schema:    s,
		Singleton: true,
		MaxItems:  Unbounded,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&entry)
		}
	}

	if entry.Required < 0 {
		return invalidArgf("required", "must not be negative, got %d", entry.Required)
	}
	if entry.MaxItems != Unbounded && entry.MaxItems < 1 {
		return invalidArgf("max items", "must be at least 1, got %d", entry.MaxItems)
	}
	if entry.UIDRequired && entry.Singleton {
		return invalidArgf("uid required", "does not apply to singleton item %q", name)
	}

	switch s.Kind {
	case ItemSchemaDescriptor:
		if err := s.Descriptor.Validate(); err != nil {
			return invalidArgf("schema", "%v", err)
		}
		entry.Schema.Descriptor = s.Descriptor.Normalize()
	case ItemSchemaRegistry:
		if s.Sub == nil {
			return invalidArgf("schema", "nested registry is nil")
		}
	default:
		return invalidArgf("schema", "unknown schema kind %q", s.Kind)
	}

	r.names = append(r.names, name)
	r.entries[name] = entry
	return nil
}

// ID returns the registry's process-unique identifier.
func (r *Registry) ID() string {
	return r.id
}

// Keys returns the registered names in registration order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Entry looks up the specification registered under name.
func (r *Registry) Entry(name string) (Entry, bool) {
	entry, ok := r.entries[name]
	return entry, ok
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	return len(r.names)
}

// Docs produces one documentation record per registered entry, in
// registration order, recursing into nested registries.
func (r *Registry) Docs() []DocRecord {
	records := make([]DocRecord, 0, len(r.names))
	for _, name := range r.names {
		entry := r.entries[name]
		record := DocRecord{
			Name:        name,
			Doc:         entry.Doc,
			Singleton:   entry.Singleton,
			Required:    entry.Required,
			MaxItems:    entry.MaxItems,
			UIDRequired: entry.UIDRequired,
		}
		switch entry.Schema.Kind {
		case ItemSchemaDescriptor:
			d := entry.Schema.Descriptor
			record.Schema = &d
		case ItemSchemaRegistry:
			record.Sub = entry.Schema.Sub.Docs()
		}
		records = append(records, record)
	}
	return records
}

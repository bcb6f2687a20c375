package spec

import "github.com/goliatone/go-modelkit/pkg/schema"

// ItemSchemaKind discriminates what an entry's schema points at: a value
// descriptor for leaf properties, or a nested registry for features.
type ItemSchemaKind string

const (
	ItemSchemaDescriptor ItemSchemaKind = "descriptor"
	ItemSchemaRegistry   ItemSchemaKind = "registry"
)

// ItemSchema is the closed schema variant attached to an entry, resolved once
// at registration time.
type ItemSchema struct {
	Kind       ItemSchemaKind
	Descriptor schema.Descriptor
	Sub        *Registry
}

// Unbounded is the MaxItems value of entries without an item limit.
const Unbounded = 0

// Entry is one immutable item specification: the schema, cardinality flags,
// the required count, the item limit, documentation, and whether multi-valued
// additions must carry a caller-supplied UID.
type Entry struct {
	Schema      ItemSchema
	Singleton   bool
	Required    int
	MaxItems    int
	Doc         string
	UIDRequired bool
}

// Bounded reports whether the entry caps the number of stored items.
func (e Entry) Bounded() bool {
	return e.MaxItems != Unbounded
}

// ItemOption adjusts a single item specification at registration time.
type ItemOption func(*Entry)

// NonSingleton marks the item as multi-valued: values accumulate through add
// semantics instead of overwriting.
func NonSingleton() ItemOption {
	return func(e *Entry) { e.Singleton = false }
}

// Required sets the minimum number of stored values the required-check
// demands before a compute step may run.
func Required(n int) ItemOption {
	return func(e *Entry) { e.Required = n }
}

// MaxItems caps the number of stored values; add calls beyond the cap fail.
func MaxItems(n int) ItemOption {
	return func(e *Entry) { e.MaxItems = n }
}

// WithDoc attaches a human-readable description surfaced by Docs().
func WithDoc(doc string) ItemOption {
	return func(e *Entry) { e.Doc = doc }
}

// UIDRequired forces every added value to carry a caller-supplied UID. Only
// meaningful for multi-valued items.
func UIDRequired() ItemOption {
	return func(e *Entry) { e.UIDRequired = true }
}

package spec

import "github.com/goliatone/go-modelkit/pkg/schema"

// DocRecord is the serializable documentation record emitted by
// Registry.Docs for one registered item. Sub carries the recursive records
// of a nested registry and is nil for leaf properties; Schema is nil for
// nested entries.
type DocRecord struct {
	Name        string             `json:"name" yaml:"name"`
	Doc         string             `json:"doc,omitempty" yaml:"doc,omitempty"`
	Schema      *schema.Descriptor `json:"schema,omitempty" yaml:"schema,omitempty"`
	Singleton   bool               `json:"singleton" yaml:"singleton"`
	Required    int                `json:"required" yaml:"required"`
	MaxItems    int                `json:"maxItems" yaml:"maxItems"`
	UIDRequired bool               `json:"uidRequired,omitempty" yaml:"uidRequired,omitempty"`
	Sub         []DocRecord        `json:"sub,omitempty" yaml:"sub,omitempty"`
}

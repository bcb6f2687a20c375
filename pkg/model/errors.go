package model

import (
	"fmt"

	"github.com/goliatone/go-modelkit/internal/store"
)

// DuplicateUIDError re-exports the store error raised when a UID is bound
// twice for the same item name.
type DuplicateUIDError = store.DuplicateUIDError

// UnknownUIDError re-exports the store error raised when a UID was never
// assigned for the given item name.
type UnknownUIDError = store.UnknownUIDError

// UnknownKeyError reports a read or write against a name the bound registry
// does not declare.
type UnknownKeyError struct {
	Name string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("model: item %q is not in the specification", e.Name)
}

// CardinalityError reports a singleton operation applied to a multi-valued
// item or the reverse. Hint names the operation the caller should have used.
type CardinalityError struct {
	Name string
	Op   string
	Hint string
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("model: %s does not apply to %q, use %s", e.Op, e.Name, e.Hint)
}

// CardinalityExceededError reports an add that would push the stored count
// for an item past its declared maximum.
type CardinalityExceededError struct {
	Name     string
	MaxItems int
}

func (e *CardinalityExceededError) Error() string {
	return fmt.Sprintf("model: item %q holds its maximum of %d values", e.Name, e.MaxItems)
}

// MissingUIDError reports an add without a UID against an item whose
// specification demands one.
type MissingUIDError struct {
	Name string
}

func (e *MissingUIDError) Error() string {
	return fmt.Sprintf("model: item %q requires a uid on every added value", e.Name)
}

// RequirementNotMetError reports a required-check failure. Name is the
// offending item, dotted with its parent feature for property violations.
type RequirementNotMetError struct {
	Name     string
	Expected int
	Actual   int
}

func (e *RequirementNotMetError) Error() string {
	return fmt.Sprintf("model: item %q requires at least %d value(s), found %d", e.Name, e.Expected, e.Actual)
}

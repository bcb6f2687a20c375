package spec

import "fmt"

// DuplicateKeyError reports an attempt to register an item name that the
// registry already holds. Registered names cannot be redefined or deleted.
type DuplicateKeyError struct {
	Name string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("spec: item %q already defined", e.Name)
}

// InvalidArgumentError reports a malformed specification argument supplied at
// authoring time: a bad name, a negative count, an illegal flag combination
// or an unrecognized schema shape.
type InvalidArgumentError struct {
	Argument string
	Reason   string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("spec: invalid %s: %s", e.Argument, e.Reason)
}

func invalidArgf(argument, format string, args ...any) *InvalidArgumentError {
	return &InvalidArgumentError{Argument: argument, Reason: fmt.Sprintf(format, args...)}
}

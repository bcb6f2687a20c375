// Package validation checks candidate values against schema descriptors. It
// is the collaborator containers delegate to on every set/add; the engine
// itself only decides which descriptor applies.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/goliatone/go-modelkit/pkg/schema"
)

// Issue represents a single validation failure with optional field metadata.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures the outcome of validating one value.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// SchemaViolationError reports that a value failed validation against the
// descriptor registered for Name.
type SchemaViolationError struct {
	Name   string
	Issues []Issue
}

func (e *SchemaViolationError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("validation: value for %q violates schema", e.Name)
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Field != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
			continue
		}
		parts = append(parts, issue.Message)
	}
	return fmt.Sprintf("validation: value for %q violates schema: %s", e.Name, strings.Join(parts, "; "))
}

// Checker validates a candidate value against a descriptor. Containers hold a
// Checker so embedders can swap the validator without touching the engine.
type Checker interface {
	Check(name string, d schema.Descriptor, value any) error
}

// Default returns the built-in Checker.
func Default() Checker {
	return defaultChecker{}
}

type defaultChecker struct{}

func (defaultChecker) Check(name string, d schema.Descriptor, value any) error {
	result := Validate(d, value)
	if result.Valid {
		return nil
	}
	return &SchemaViolationError{Name: name, Issues: result.Issues}
}

// Validate checks value against the descriptor and reports every issue
// found. Descriptors are normalized first, so bare primitive tags and
// wrapped composites behave identically.
func Validate(d schema.Descriptor, value any) Result {
	d = d.Normalize()

	var issues []Issue
	if d.Wrapped {
		issues = checkConstraint("", d.Fields[schema.WrappedField], value)
		return toResult(issues)
	}

	fields, ok := value.(map[string]any)
	if !ok {
		return toResult([]Issue{{Message: fmt.Sprintf("expected an object value, got %T", value)}})
	}

	for _, name := range sortedKeys(fields) {
		constraint, declared := d.Fields[name]
		if !declared {
			issues = append(issues, Issue{Field: name, Message: "field is not declared in the schema"})
			continue
		}
		issues = append(issues, checkConstraint(name, constraint, fields[name])...)
	}
	return toResult(issues)
}

func toResult(issues []Issue) Result {
	return Result{Valid: len(issues) == 0, Issues: issues}
}

func checkConstraint(field string, c schema.Constraint, value any) []Issue {
	var issues []Issue
	fail := func(format string, args ...any) {
		issues = append(issues, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if !typeMatches(c.Type, value) {
		fail("expected %s, got %T", c.Type, value)
		return issues
	}

	if number, ok := asFloat(value); ok {
		if c.Minimum != nil {
			if c.ExclusiveMinimum && number <= *c.Minimum {
				fail("must be greater than %v", *c.Minimum)
			} else if !c.ExclusiveMinimum && number < *c.Minimum {
				fail("must be at least %v", *c.Minimum)
			}
		}
		if c.Maximum != nil {
			if c.ExclusiveMaximum && number >= *c.Maximum {
				fail("must be less than %v", *c.Maximum)
			} else if !c.ExclusiveMaximum && number > *c.Maximum {
				fail("must be at most %v", *c.Maximum)
			}
		}
	}

	if length, ok := lengthOf(value); ok {
		if c.MinLength != nil && length < *c.MinLength {
			fail("length must be at least %d, got %d", *c.MinLength, length)
		}
		if c.MaxLength != nil && length > *c.MaxLength {
			fail("length must be at most %d, got %d", *c.MaxLength, length)
		}
	}

	if c.Pattern != "" {
		if text, ok := value.(string); ok {
			re, err := regexp.Compile(c.Pattern)
			if err != nil {
				fail("invalid pattern %q: %v", c.Pattern, err)
			} else if !re.MatchString(text) {
				fail("must match pattern %q", c.Pattern)
			}
		}
	}

	if c.Expr != "" {
		out, err := expr.Eval(c.Expr, map[string]any{"value": value})
		if err != nil {
			fail("predicate %q failed: %v", c.Expr, err)
		} else if pass, ok := out.(bool); !ok {
			fail("predicate %q did not produce a boolean", c.Expr)
		} else if !pass {
			fail("must satisfy %q", c.Expr)
		}
	}

	return issues
}

// typeMatches maps Go runtime types onto the schema type tags. Integral
// floats count as integers so values survive an encoding/json round trip.
func typeMatches(t schema.Type, value any) bool {
	switch t {
	case schema.TypeString:
		_, ok := value.(string)
		return ok
	case schema.TypeBoolean:
		_, ok := value.(bool)
		return ok
	case schema.TypeInteger:
		switch n := value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		case float64:
			return n == math.Trunc(n)
		case float32:
			return float64(n) == math.Trunc(float64(n))
		}
		return false
	case schema.TypeNumber:
		_, ok := asFloat(value)
		return ok
	case schema.TypeArray:
		_, ok := value.([]any)
		return ok
	case schema.TypeObject:
		_, ok := value.(map[string]any)
		return ok
	}
	return false
}

func asFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func lengthOf(value any) (int, bool) {
	switch v := value.(type) {
	case string:
		return len(v), true
	case []any:
		return len(v), true
	case map[string]any:
		return len(v), true
	}
	return 0, false
}

func sortedKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

package model

import (
	"github.com/goliatone/go-modelkit/pkg/ident"
	"github.com/goliatone/go-modelkit/pkg/validation"
)

// Option configures container construction. Options set on a Model propagate
// to the features and the results model it constructs.
type Option func(*config)

type config struct {
	idgen   ident.Generator
	checker validation.Checker
}

func defaultConfig() config {
	return config{
		idgen:   ident.Random(),
		checker: validation.Default(),
	}
}

// WithIDGenerator injects the identifier source used for container ids.
func WithIDGenerator(gen ident.Generator) Option {
	return func(cfg *config) {
		if gen != nil {
			cfg.idgen = gen
		}
	}
}

// WithChecker swaps the value validator consulted on every set/add.
func WithChecker(checker validation.Checker) Option {
	return func(cfg *config) {
		if checker != nil {
			cfg.checker = checker
		}
	}
}

// Package docs renders human-readable documentation from the records a spec
// registry emits. It is a pure consumer: it never touches a registry or a
// container beyond the Docs() output handed to it.
package docs

import (
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-modelkit/pkg/spec"
)

// Format selects the documentation output flavor.
type Format string

const (
	FormatRST      Format = "rst"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Valid reports whether f names a supported output format.
func (f Format) Valid() bool {
	switch f {
	case FormatRST, FormatMarkdown, FormatHTML:
		return true
	}
	return false
}

// Option configures a Generator before construction.
type Option func(*config)

type config struct {
	policy *bluemonday.Policy
}

// WithPolicy overrides the sanitizer applied to HTML output. Defaults to
// bluemonday's UGC policy.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// Generator renders documentation records through the embedded template set.
type Generator struct {
	set    *pongo2.TemplateSet
	policy *bluemonday.Policy

	mu        sync.Mutex
	templates map[string]*pongo2.Template
}

// NewGenerator constructs a Generator backed by the embedded templates.
func NewGenerator(options ...Option) *Generator {
	cfg := config{policy: bluemonday.UGCPolicy()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	registerFilters()
	return &Generator{
		set:       pongo2.NewSet("modelkit-docs", pongo2.NewFSLoader(embeddedTemplates)),
		policy:    cfg.policy,
		templates: make(map[string]*pongo2.Template),
	}
}

// Render produces documentation for the given records in the requested
// format. HTML output is sanitized before it is returned.
func (g *Generator) Render(format Format, title string, records []spec.DocRecord) (string, error) {
	if !format.Valid() {
		return "", fmt.Errorf("docs: unknown format %q", format)
	}

	tmpl, err := g.template(fmt.Sprintf("templates/%s.tpl", format))
	if err != nil {
		return "", err
	}

	view := buildView(title, records)
	out, err := tmpl.Execute(pongo2.Context{
		"title":    view.Title,
		"features": view.Features,
	})
	if err != nil {
		return "", fmt.Errorf("docs: execute %s template: %w", format, err)
	}

	if format == FormatHTML {
		out = g.policy.Sanitize(out)
	}
	return out, nil
}

func (g *Generator) template(path string) (*pongo2.Template, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if tmpl, ok := g.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := g.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("docs: load template %q: %w", path, err)
	}
	g.templates[path] = tmpl
	return tmpl, nil
}

var filtersOnce sync.Once

func registerFilters() {
	filtersOnce.Do(func() {
		// underline repeats the parameter rune to the input's length, for
		// RST-style section headers.
		pongo2.RegisterFilter("underline", func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			ch := param.String()
			if ch == "" {
				ch = "="
			}
			return pongo2.AsValue(strings.Repeat(ch, len(in.String()))), nil
		})
		pongo2.RegisterFilter("yesno_word", func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			if in.Bool() {
				return pongo2.AsValue("yes"), nil
			}
			return pongo2.AsValue("no"), nil
		})
	})
}

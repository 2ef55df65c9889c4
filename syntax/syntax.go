// Package syntax defines the optional collaborator that turns buffer
// bytes into display property spans for syntax highlighting. The core
// runs with zero providers registered; syntax/treesitter supplies one
// concrete implementation.
package syntax

import "github.com/inkwell-editor/inkwell/display"

// Provider annotates source bytes in one language with property spans.
// Annotate is called once per display snapshot, not per keystroke.
type Provider interface {
	Language() string
	Annotate(src []byte) ([]display.PropertySpan, error)
}

// Registry maps a language name to the Provider that handles it. The
// zero value is ready to use and holds no providers.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds p under p.Language(), replacing any provider already
// registered for that language.
func (r *Registry) Register(p Provider) {
	if r.providers == nil {
		r.providers = make(map[string]Provider)
	}
	r.providers[p.Language()] = p
}

// Lookup returns the provider registered for language, if any.
func (r *Registry) Lookup(language string) (Provider, bool) {
	p, ok := r.providers[language]
	return p, ok
}

// Annotate finds the provider for language and runs it over src. It
// returns (nil, false, nil) when no provider is registered — not an
// error, since syntax annotation is always optional.
func (r *Registry) Annotate(language string, src []byte) ([]display.PropertySpan, bool, error) {
	p, ok := r.Lookup(language)
	if !ok {
		return nil, false, nil
	}
	spans, err := p.Annotate(src)
	if err != nil {
		return nil, true, err
	}
	return spans, true, nil
}

package rtlweaver

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Provider is the single capability the engine consumes: one blocking
// completion call. Retries, timeouts and authentication are the adapter's
// responsibility; the engine adds none of its own.
type Provider interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ProviderConfig carries the knobs common to the bundled adapters. Adapters
// ignore fields they have no use for.
type ProviderConfig struct {
	Model   string
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// ProviderFactory builds a Provider from a config.
type ProviderFactory func(cfg ProviderConfig) (Provider, error)

// ProviderRegistry maps provider names to factories. The caller resolves a
// name to an adapter exactly once, at engine construction — never mid-run
// from ambient state.
type ProviderRegistry struct {
	byName map[string]ProviderFactory
}

// NewProviderRegistry creates an empty registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{byName: map[string]ProviderFactory{}}
}

// Register adds a factory under a case-insensitive name.
func (r *ProviderRegistry) Register(name string, f ProviderFactory) {
	r.byName[strings.ToLower(name)] = f
}

// New builds the named provider.
func (r *ProviderRegistry) New(name string, cfg ProviderConfig) (Provider, error) {
	f, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (known: %s)", name, strings.Join(r.Names(), ", "))
	}
	return f(cfg)
}

// Names lists the registered provider names, sorted.
func (r *ProviderRegistry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

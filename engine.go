// Package rtlweaver fills named, explicitly marked @LLM_EDIT regions of an
// HDL template with provider-generated code, guaranteeing that every byte
// outside the marked regions survives unchanged.
package rtlweaver

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Engine owns the scan → context → provider → validate → apply pipeline.
// It holds no mutable state across Apply calls; concurrent use is safe as
// long as the injected provider tolerates concurrent Complete calls.
type Engine struct {
	provider  Provider
	denylist  TokenDenylist
	extra     []Validator
	coverage  CoveragePolicy
	logger    *zap.Logger
	lookahead int
}

// New builds an engine around an explicitly injected provider.
func New(provider Provider, opts ...Option) *Engine {
	e := &Engine{
		provider:  provider,
		denylist:  TokenDenylist{Tokens: DefaultForbiddenTokens},
		coverage:  CoveragePartial,
		logger:    zap.NewNop(),
		lookahead: DefaultLookaheadWindow,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithForbiddenTokens replaces the default token denylist.
func WithForbiddenTokens(tokens ...string) Option {
	return func(e *Engine) { e.denylist = TokenDenylist{Tokens: tokens} }
}

// WithValidators appends extra patch validators after the denylist.
func WithValidators(vs ...Validator) Option {
	return func(e *Engine) { e.extra = append(e.extra, vs...) }
}

// WithCoverage sets the unfilled-region policy.
func WithCoverage(p CoveragePolicy) Option {
	return func(e *Engine) { e.coverage = p }
}

// WithLogger sets the engine's logger (zap.NewNop by default).
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithLookaheadWindow bounds, in bytes, the filler span a single-line marker
// may consume below itself.
func WithLookaheadWindow(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.lookahead = n
		}
	}
}

// ApplyOption configures a single Apply call.
type ApplyOption func(*applyConfig)

type applyConfig struct {
	extraTasks []string
	clockNS    float64
}

// WithExtraTasks appends caller task lines to the provider payload.
func WithExtraTasks(tasks ...string) ApplyOption {
	return func(c *applyConfig) { c.extraTasks = append(c.extraTasks, tasks...) }
}

// WithClockPeriodNS overrides the clock period instead of deriving it from
// the spec's clock frequency.
func WithClockPeriodNS(ns float64) ApplyOption {
	return func(c *applyConfig) { c.clockNS = ns }
}

// Apply fills the template's @LLM_EDIT regions and returns the patched text.
// A template without markers is returned unchanged with no provider call.
// On any error the original template is untouched — there is no partial
// merge and no retry; failures propagate as the typed errors in errors.go.
func (e *Engine) Apply(ctx context.Context, template string, spec *Spec, opts ...ApplyOption) (string, error) {
	var cfg applyConfig
	for _, o := range opts {
		o(&cfg)
	}

	regions, err := scanRegions(template, e.lookahead)
	if err != nil {
		return "", err
	}
	if len(regions) == 0 {
		e.logger.Debug("no @LLM_EDIT regions; template returned unchanged")
		return template, nil
	}
	e.logger.Info("scanned edit regions", zap.Int("count", len(regions)))

	specCtx := BuildContext(spec, cfg.clockNS)
	user, err := buildUserPrompt(template, regions, specCtx, cfg.extraTasks)
	if err != nil {
		return "", fmt.Errorf("compose prompt: %w", err)
	}

	raw, err := e.provider.Complete(ctx, systemPrompt, user)
	if err != nil {
		return "", fmt.Errorf("provider: %w", err)
	}

	patches, err := ParsePatchSet(raw)
	if err != nil {
		return "", err
	}
	if err := ValidatePatches(regions, patches, e.validators()); err != nil {
		return "", err
	}

	if e.coverage == CoverageStrict {
		var missing []string
		for _, r := range regions {
			if _, ok := patches[r.Name]; !ok {
				missing = append(missing, r.Name)
			}
		}
		if len(missing) > 0 {
			return "", &IncompleteCoverageError{Missing: missing}
		}
	}

	e.logger.Info("applying patches",
		zap.Int("patched", len(patches)),
		zap.Int("regions", len(regions)))
	return ApplyPatches(template, regions, patches), nil
}

// Regions exposes the scanner with this engine's look-ahead window, for
// callers that want to inspect a template without patching it.
func (e *Engine) Regions(template string) ([]EditRegion, error) {
	return scanRegions(template, e.lookahead)
}

func (e *Engine) validators() []Validator {
	vs := make([]Validator, 0, 1+len(e.extra))
	vs = append(vs, e.denylist)
	vs = append(vs, e.extra...)
	return vs
}

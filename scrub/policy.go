package scrub

import (
	"fmt"

	"github.com/tkingovr/param-guard/api"
)

// Policy is the immutable filtering configuration. Build one with
// NewPolicy at configuration load; it is read-only afterwards and safe
// to share across concurrent filtering calls without synchronization.
type Policy struct {
	mode      api.Mode
	keys      map[string]struct{}
	predicate KeyPredicate
	sentinel  string
	maxDepth  int
}

// PolicyOption configures a Policy under construction.
type PolicyOption func(*Policy)

// WithKeys sets the denylist key set. Matching is exact and
// case-sensitive; the slice is copied, not retained.
func WithKeys(keys []string) PolicyOption {
	return func(p *Policy) {
		p.keys = make(map[string]struct{}, len(keys))
		for _, k := range keys {
			p.keys[k] = struct{}{}
		}
	}
}

// WithPredicate sets the allowlist predicate.
func WithPredicate(pred KeyPredicate) PolicyOption {
	return func(p *Policy) {
		p.predicate = pred
	}
}

// WithSentinel overrides the replacement token. Default is
// api.DefaultSentinel.
func WithSentinel(s string) PolicyOption {
	return func(p *Policy) {
		p.sentinel = s
	}
}

// WithMaxDepth overrides the traversal depth bound. Default is
// api.DefaultMaxDepth.
func WithMaxDepth(n int) PolicyOption {
	return func(p *Policy) {
		p.maxDepth = n
	}
}

// NewPolicy creates and validates a Policy for the given mode.
func NewPolicy(mode api.Mode, opts ...PolicyOption) (*Policy, error) {
	p := &Policy{
		mode:     mode,
		sentinel: api.DefaultSentinel,
		maxDepth: api.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Policy) validate() error {
	switch p.mode {
	case api.ModeDisabled, api.ModeFilterAll:
		// Key set and predicate are ignored in these modes.
	case api.ModeDenylist:
		if len(p.keys) == 0 {
			return fmt.Errorf("%w: denylist mode requires at least one key", ErrInvalidPolicy)
		}
	case api.ModeAllowlist:
		if p.predicate == nil {
			return fmt.Errorf("%w: allowlist mode requires a predicate", ErrInvalidPolicy)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidPolicy, p.mode)
	}
	if p.sentinel == "" {
		return fmt.Errorf("%w: sentinel must not be empty", ErrInvalidPolicy)
	}
	if p.maxDepth <= 0 {
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidPolicy, p.maxDepth)
	}
	return nil
}

// Mode returns the policy mode.
func (p *Policy) Mode() api.Mode { return p.mode }

// Sentinel returns the replacement token.
func (p *Policy) Sentinel() string { return p.sentinel }

// MaxDepth returns the traversal depth bound.
func (p *Policy) MaxDepth() int { return p.maxDepth }

// Matches reports whether the value under key must be redacted. Keys
// match independent of nesting depth: a key three levels down is
// judged by the same rule as a top-level one.
func (p *Policy) Matches(key string) bool {
	switch p.mode {
	case api.ModeDenylist:
		_, ok := p.keys[key]
		return ok
	case api.ModeAllowlist:
		return !p.predicate.Allowed(key)
	case api.ModeFilterAll:
		return true
	default:
		return false
	}
}

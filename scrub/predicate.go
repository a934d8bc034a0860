package scrub

import (
	"fmt"
	"regexp"
)

// KeyPredicate reports which keys are exempt from redaction in
// allowlist mode: every key it does not allow is redacted.
// Implementations must be deterministic and free of side effects so
// filtering stays reproducible for a given payload.
type KeyPredicate interface {
	Allowed(key string) bool
}

// PredicateFunc adapts a plain function to a KeyPredicate.
type PredicateFunc func(key string) bool

func (f PredicateFunc) Allowed(key string) bool { return f(key) }

// RegexpPredicate allows keys matching a regular expression.
type RegexpPredicate struct {
	re *regexp.Regexp
}

// NewRegexpPredicate compiles expr up front so an invalid pattern
// fails at configuration time, not per key.
func NewRegexpPredicate(expr string) (*RegexpPredicate, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling allowlist pattern: %w", err)
	}
	return &RegexpPredicate{re: re}, nil
}

func (p *RegexpPredicate) Allowed(key string) bool {
	return p.re.MatchString(key)
}

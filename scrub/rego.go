package scrub

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/ast"
	"github.com/open-policy-agent/opa/rego"
)

// RegoPredicate is a KeyPredicate backed by an embedded Rego module,
// for deployments that already express policy in Rego. The module must
// define a boolean `allow` in package paramguard; the key under test
// is available as input.key.
//
// Example:
//
//	package paramguard
//
//	import rego.v1
//
//	allow if input.key in {"id", "action", "controller"}
type RegoPredicate struct {
	query rego.PreparedEvalQuery
}

// NewRegoPredicate compiles source and prepares the allow query.
// Compilation failures surface here, so a broken module never reaches
// the filtering path.
func NewRegoPredicate(source string) (*RegoPredicate, error) {
	if _, err := ast.ParseModuleWithOpts("predicate.rego", source, ast.ParserOptions{RegoVersion: ast.RegoV1}); err != nil {
		return nil, fmt.Errorf("parsing Rego predicate: %w", err)
	}

	r := rego.New(
		rego.Query("data.paramguard.allow"),
		rego.Module("predicate.rego", source),
	)
	query, err := r.PrepareForEval(context.Background())
	if err != nil {
		return nil, fmt.Errorf("preparing Rego predicate: %w", err)
	}
	return &RegoPredicate{query: query}, nil
}

// Allowed reports whether the module allows key. Evaluation errors and
// undefined results count as not allowed: a failing predicate redacts
// rather than leaks.
func (p *RegoPredicate) Allowed(key string) bool {
	rs, err := p.query.Eval(context.Background(), rego.EvalInput(map[string]any{"key": key}))
	if err != nil || len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return false
	}
	allowed, ok := rs[0].Expressions[0].Value.(bool)
	return ok && allowed
}

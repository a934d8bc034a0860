package scrub

import (
	"fmt"
	"reflect"
)

// walker carries per-call traversal state. A fresh walker is created
// for every Apply, so concurrent calls share nothing but the immutable
// policy.
type walker struct {
	policy *Policy

	// active holds the identities of maps and slices on the current
	// ancestor path. Re-entering one means the payload is cyclic.
	// Shared (DAG-shaped) substructure between siblings is legal.
	active map[uintptr]struct{}

	redacted int
	deepest  int
}

func newWalker(p *Policy) *walker {
	return &walker{
		policy: p,
		active: make(map[uintptr]struct{}),
	}
}

// walk returns a filtered copy of node. The input is never mutated and
// no reference to it is retained past the call.
func (w *walker) walk(node any, depth int) (any, error) {
	if depth > w.policy.maxDepth {
		return nil, fmt.Errorf("%w: nesting exceeds max depth %d", ErrMalformedPayload, w.policy.maxDepth)
	}
	if depth > w.deepest {
		w.deepest = depth
	}

	switch n := node.(type) {
	case map[string]any:
		return w.walkMap(n, depth)
	case []any:
		return w.walkSlice(n, depth)
	default:
		// Scalars, and any type outside the tree model, pass through
		// untouched. Only key-triggered redaction occurs.
		return node, nil
	}
}

func (w *walker) walkMap(m map[string]any, depth int) (any, error) {
	if len(m) == 0 {
		if m == nil {
			return m, nil
		}
		return map[string]any{}, nil
	}

	id := reflect.ValueOf(m).Pointer()
	if _, ok := w.active[id]; ok {
		return nil, fmt.Errorf("%w: cyclic reference in mapping", ErrMalformedPayload)
	}
	w.active[id] = struct{}{}
	defer delete(w.active, id)

	out := make(map[string]any, len(m))
	for k, v := range m {
		if w.policy.Matches(k) {
			out[k] = redactValue(v, w.policy.sentinel)
			w.redacted++
			continue
		}
		fv, err := w.walk(v, depth+1)
		if err != nil {
			return nil, err
		}
		out[k] = fv
	}
	return out, nil
}

func (w *walker) walkSlice(s []any, depth int) (any, error) {
	if len(s) == 0 {
		if s == nil {
			return s, nil
		}
		return []any{}, nil
	}

	id := reflect.ValueOf(s).Pointer()
	if _, ok := w.active[id]; ok {
		return nil, fmt.Errorf("%w: cyclic reference in sequence", ErrMalformedPayload)
	}
	w.active[id] = struct{}{}
	defer delete(w.active, id)

	out := make([]any, len(s))
	for i, v := range s {
		fv, err := w.walk(v, depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = fv
	}
	return out, nil
}

// Package scrub filters sensitive data out of telemetry payloads
// before transmission. A Policy names the keys to redact (denylist),
// the keys to spare (allowlist predicate), or replaces the payload
// wholesale (filter_all); Apply produces a filtered copy of any
// map/slice/scalar tree without mutating the input.
package scrub

import (
	"sync"

	"github.com/tkingovr/param-guard/api"
)

// Apply returns a filtered copy of payload according to policy p.
// Payloads are trees of map[string]any, []any and scalars, as produced
// by JSON decoding. The input is never mutated.
func Apply(p *Policy, payload any) (any, error) {
	out, _, err := apply(p, payload)
	return out, err
}

// ApplyWithReport is Apply plus a summary of what was redacted.
func ApplyWithReport(p *Policy, payload any) (any, *api.ScrubReport, error) {
	return apply(p, payload)
}

func apply(p *Policy, payload any) (any, *api.ScrubReport, error) {
	switch p.mode {
	case api.ModeDisabled:
		return payload, &api.ScrubReport{Mode: p.mode}, nil
	case api.ModeFilterAll:
		// The whole payload becomes the sentinel; no partial structure
		// is preserved or transmitted.
		return p.sentinel, &api.ScrubReport{Mode: p.mode}, nil
	}

	w := newWalker(p)
	out, err := w.walk(payload, 0)
	if err != nil {
		return nil, nil, err
	}
	return out, &api.ScrubReport{
		Mode:         p.mode,
		RedactedKeys: w.redacted,
		Depth:        w.deepest,
	}, nil
}

// Scrubber holds the live policy for processes that reconfigure at
// runtime. Reads snapshot the policy under a read lock, so in-flight
// filtering calls always see a consistent policy even across a Reload.
type Scrubber struct {
	mu     sync.RWMutex
	policy *Policy
}

// NewScrubber creates a Scrubber with an initial policy.
func NewScrubber(p *Policy) *Scrubber {
	return &Scrubber{policy: p}
}

// Policy returns the current policy.
func (s *Scrubber) Policy() *Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy
}

// Reload swaps the live policy. Calls already filtering continue with
// the policy they started with.
func (s *Scrubber) Reload(p *Policy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy = p
}

// Apply filters payload with the current policy.
func (s *Scrubber) Apply(payload any) (any, error) {
	return Apply(s.Policy(), payload)
}

// ApplyJSON filters a raw JSON document with the current policy.
func (s *Scrubber) ApplyJSON(data []byte) ([]byte, error) {
	return ApplyJSON(s.Policy(), data)
}

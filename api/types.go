package api

import (
	"encoding/json"
	"fmt"
)

// Mode selects how payload keys are matched for redaction.
type Mode string

const (
	// ModeDisabled passes payloads through untouched.
	ModeDisabled Mode = "disabled"

	// ModeDenylist redacts values under an explicit set of key names.
	ModeDenylist Mode = "denylist"

	// ModeAllowlist redacts values under every key a predicate does not allow.
	ModeAllowlist Mode = "allowlist"

	// ModeFilterAll replaces the entire payload with the sentinel.
	ModeFilterAll Mode = "filter_all"
)

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDisabled, ModeDenylist, ModeAllowlist, ModeFilterAll:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown scrub mode %q", s)
}

const (
	// DefaultSentinel is the replacement token for redacted values.
	DefaultSentinel = "[FILTERED]"

	// DefaultMaxDepth bounds payload traversal depth.
	DefaultMaxDepth = 100
)

// ScrubReport summarizes a single filtering pass. It carries counts
// only, never payload content.
type ScrubReport struct {
	Mode Mode `json:"mode"`

	// RedactedKeys counts mapping entries whose values were replaced by
	// the sentinel. filter_all replaces the payload wholesale and
	// reports zero.
	RedactedKeys int `json:"redacted_keys"`

	// Depth is the deepest nesting level the walker reached.
	Depth int `json:"depth"`
}

// ScrubResponse is the output of the CLI `scrub` command.
type ScrubResponse struct {
	Payload json.RawMessage `json:"payload"`
	Report  *ScrubReport    `json:"report"`
}

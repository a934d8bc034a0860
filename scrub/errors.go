package scrub

import "errors"

var (
	// ErrInvalidPolicy is returned by NewPolicy when the mode and its
	// inputs do not form a usable policy. Construction fails fast; no
	// policy with an ambiguous mode is ever produced.
	ErrInvalidPolicy = errors.New("invalid scrub policy")

	// ErrMalformedPayload is returned when traversal detects a cyclic
	// reference, exceeds the policy's maximum depth, or is handed a
	// JSON document that does not parse. Callers must treat the event
	// as unfiltered and never transmit it as if filtering succeeded.
	ErrMalformedPayload = errors.New("malformed payload")
)

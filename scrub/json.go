package scrub

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// ApplyJSON filters a raw JSON document. Instrumentation hooks often
// capture parameters already serialized; this keeps the decode/encode
// round-trip inside the engine. Documents that do not parse are
// rejected as malformed rather than passed through, so unfiltered data
// can never masquerade as filtered output.
func ApplyJSON(p *Policy, data []byte) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON document", ErrMalformedPayload)
	}
	payload := gjson.ParseBytes(data).Value()

	out, err := Apply(p, payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

package scrub

import (
	"reflect"
	"testing"

	"github.com/tkingovr/param-guard/api"
)

func denylistPolicy(t *testing.T, keys ...string) *Policy {
	t.Helper()
	p, err := NewPolicy(api.ModeDenylist, WithKeys(keys))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestApply_DenylistNested(t *testing.T) {
	p := denylistPolicy(t, "password")

	payload := map[string]any{
		"password": "abc",
		"user": map[string]any{
			"password": "xyz",
			"name":     "bob",
		},
	}

	got, err := Apply(p, payload)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]any{
		"password": "[FILTERED]",
		"user": map[string]any{
			"password": "[FILTERED]",
			"name":     "bob",
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestApply_AllowlistPredicate(t *testing.T) {
	pred, err := NewRegexpPredicate(`^(ids?|action|controller)$`)
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewPolicy(api.ModeAllowlist, WithPredicate(pred))
	if err != nil {
		t.Fatal(err)
	}

	got, err := Apply(p, map[string]any{"id": 5, "secret": "abc"})
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]any{"id": 5, "secret": "[FILTERED]"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestApply_FilterAll(t *testing.T) {
	p, err := NewPolicy(api.ModeFilterAll)
	if err != nil {
		t.Fatal(err)
	}

	payloads := []any{
		map[string]any{"password": "abc", "user": "bob"},
		[]any{1, 2, 3},
		"scalar",
		nil,
	}
	for _, payload := range payloads {
		got, err := Apply(p, payload)
		if err != nil {
			t.Fatal(err)
		}
		if got != "[FILTERED]" {
			t.Errorf("filter_all: got %#v, want %q", got, "[FILTERED]")
		}
	}
}

func TestApply_Disabled(t *testing.T) {
	p, err := NewPolicy(api.ModeDisabled)
	if err != nil {
		t.Fatal(err)
	}

	payload := map[string]any{
		"password": "abc",
		"nested":   map[string]any{"token": "xyz"},
		"list":     []any{map[string]any{"secret": 1}},
	}

	got, err := Apply(p, payload)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, payload) {
		t.Errorf("disabled mode altered the payload: %#v", got)
	}
}

func TestApply_NestedInArray(t *testing.T) {
	p := denylistPolicy(t, "password")

	payload := map[string]any{
		"users": []any{
			map[string]any{"password": "a"},
			map[string]any{"password": "b"},
		},
	}

	got, err := Apply(p, payload)
	if err != nil {
		t.Fatal(err)
	}

	users, ok := got.(map[string]any)["users"].([]any)
	if !ok {
		t.Fatalf("users is not a sequence: %#v", got)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(users))
	}
	for i, u := range users {
		if u.(map[string]any)["password"] != "[FILTERED]" {
			t.Errorf("element %d not redacted: %#v", i, u)
		}
	}
}

func TestApply_Idempotent(t *testing.T) {
	p := denylistPolicy(t, "password", "token")

	payload := map[string]any{
		"password": "abc",
		"token":    42,
		"user": map[string]any{
			"password": map[string]any{"inner": "x"},
			"name":     "bob",
		},
		"list": []any{map[string]any{"token": true}, "plain"},
	}

	once, err := Apply(p, payload)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := Apply(p, once)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("re-filtering changed the payload:\nonce:  %#v\ntwice: %#v", once, twice)
	}
}

func TestApply_StructurePreserved(t *testing.T) {
	p := denylistPolicy(t, "secret")

	payload := map[string]any{
		"secret": "x",
		"a":      []any{1, "two", map[string]any{"secret": "y", "b": nil}},
		"c":      map[string]any{"d": []any{[]any{"deep"}}},
	}

	got, err := Apply(p, payload)
	if err != nil {
		t.Fatal(err)
	}

	checkShape(t, payload, got)
}

// checkShape verifies key sets and sequence lengths match between the
// original and filtered trees.
func checkShape(t *testing.T, orig, filtered any) {
	t.Helper()
	switch o := orig.(type) {
	case map[string]any:
		f, ok := filtered.(map[string]any)
		if !ok {
			t.Fatalf("mapping became %T", filtered)
		}
		if len(f) != len(o) {
			t.Fatalf("key count changed: %d -> %d", len(o), len(f))
		}
		for k, ov := range o {
			fv, ok := f[k]
			if !ok {
				t.Fatalf("key %q dropped", k)
			}
			if fv == "[FILTERED]" {
				continue
			}
			checkShape(t, ov, fv)
		}
	case []any:
		f, ok := filtered.([]any)
		if !ok {
			t.Fatalf("sequence became %T", filtered)
		}
		if len(f) != len(o) {
			t.Fatalf("sequence length changed: %d -> %d", len(o), len(f))
		}
		for i := range o {
			checkShape(t, o[i], f[i])
		}
	}
}

func TestApply_CompositeUnderMatchedKey(t *testing.T) {
	// A matched key's value is replaced wholesale, even when it is a
	// nested structure. This is a policy choice, not a recursion bug:
	// nothing beneath a matched key survives.
	p := denylistPolicy(t, "credentials")

	payload := map[string]any{
		"credentials": map[string]any{"user": "u", "pass": "p"},
		"items":       []any{1, 2},
	}

	got, err := Apply(p, payload)
	if err != nil {
		t.Fatal(err)
	}
	if got.(map[string]any)["credentials"] != "[FILTERED]" {
		t.Errorf("composite value not replaced wholesale: %#v", got)
	}
}

func TestApply_NonStringScalarsCoerced(t *testing.T) {
	p := denylistPolicy(t, "pin", "active", "ref")

	payload := map[string]any{
		"pin":    12345,
		"active": true,
		"ref":    nil,
		"name":   "bob",
	}

	got, err := Apply(p, payload)
	if err != nil {
		t.Fatal(err)
	}

	m := got.(map[string]any)
	for _, k := range []string{"pin", "active", "ref"} {
		if m[k] != "[FILTERED]" {
			t.Errorf("key %q: got %#v, want sentinel string", k, m[k])
		}
	}
	if m["name"] != "bob" {
		t.Errorf("unmatched key altered: %#v", m["name"])
	}
}

func TestApply_TopLevelScalarUnchanged(t *testing.T) {
	p := denylistPolicy(t, "password")

	for _, payload := range []any{"password", 42, true, nil} {
		got, err := Apply(p, payload)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, payload) {
			t.Errorf("scalar %#v altered to %#v", payload, got)
		}
	}
}

func TestApply_InputNotMutated(t *testing.T) {
	p := denylistPolicy(t, "password")

	payload := map[string]any{
		"password": "abc",
		"users":    []any{map[string]any{"password": "xyz"}},
	}

	if _, err := Apply(p, payload); err != nil {
		t.Fatal(err)
	}

	if payload["password"] != "abc" {
		t.Error("input mapping was mutated")
	}
	inner := payload["users"].([]any)[0].(map[string]any)
	if inner["password"] != "xyz" {
		t.Error("nested input mapping was mutated")
	}
}

func TestApply_CustomSentinel(t *testing.T) {
	p, err := NewPolicy(api.ModeDenylist, WithKeys([]string{"password"}), WithSentinel("***"))
	if err != nil {
		t.Fatal(err)
	}

	got, err := Apply(p, map[string]any{"password": "abc"})
	if err != nil {
		t.Fatal(err)
	}
	if got.(map[string]any)["password"] != "***" {
		t.Errorf("custom sentinel not applied: %#v", got)
	}
}

func TestApplyWithReport(t *testing.T) {
	p := denylistPolicy(t, "password")

	payload := map[string]any{
		"password": "abc",
		"user": map[string]any{
			"password": "xyz",
			"name":     "bob",
		},
	}

	_, report, err := ApplyWithReport(p, payload)
	if err != nil {
		t.Fatal(err)
	}
	if report.RedactedKeys != 2 {
		t.Errorf("expected 2 redacted keys, got %d", report.RedactedKeys)
	}
	if report.Mode != api.ModeDenylist {
		t.Errorf("expected mode denylist, got %s", report.Mode)
	}
	if report.Depth < 1 {
		t.Errorf("expected depth >= 1, got %d", report.Depth)
	}
}

func TestScrubber_Reload(t *testing.T) {
	disabled, err := NewPolicy(api.ModeDisabled)
	if err != nil {
		t.Fatal(err)
	}
	s := NewScrubber(disabled)

	payload := map[string]any{"password": "abc"}

	got, err := s.Apply(payload)
	if err != nil {
		t.Fatal(err)
	}
	if got.(map[string]any)["password"] != "abc" {
		t.Errorf("disabled scrubber altered payload: %#v", got)
	}

	s.Reload(denylistPolicy(t, "password"))

	got, err = s.Apply(payload)
	if err != nil {
		t.Fatal(err)
	}
	if got.(map[string]any)["password"] != "[FILTERED]" {
		t.Errorf("reloaded policy not applied: %#v", got)
	}
}

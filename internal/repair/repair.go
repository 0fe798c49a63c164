// Package repair turns near-JSON model output into decodable JSON.
//
// Repairs are ordered lists of pure string rewrites. Rules run in list order
// and each rule leaves already repaired text unchanged.
package repair

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"curriculum-forge/internal/domain"
)

// Rule is a named text rewrite.
type Rule struct {
	Name  string
	Apply func(string) string
}

// Rules is the standard repair chain applied after span extraction.
var Rules = []Rule{
	{Name: "strip-code-fences", Apply: stripCodeFences},
	{Name: "remove-trailing-commas", Apply: removeTrailingCommas},
	{Name: "strip-control-chars", Apply: stripControlChars},
	{Name: "balance-closers", Apply: balanceClosers},
}

// DeepRules is the aggressive chain tried once when the standard result does not decode.
var DeepRules = []Rule{
	{Name: "wrap-array", Apply: wrapArray},
	{Name: "quote-bare-keys", Apply: quoteBareKeys},
	{Name: "balance-braces", Apply: balanceBraces},
	{Name: "comma-between-objects", Apply: commaBetweenObjects},
}

// maxPasses bounds the extract/repair fixpoint loop. Each rule settles in one
// pass on its own; further passes only catch input one rule exposes to an
// earlier one, such as commas separated by control characters.
const maxPasses = 4

var errNoJSON = errors.New("no JSON array or object in model response")

// Extract returns the span from the first opener to the last closer of the
// same kind. The kind whose opener appears first wins; the other kind is the
// fallback. An opener without any closer yields the tail so balancing can
// close it. Text without an opener yields "[]".
func Extract(raw string) string {
	arr, arrOK := span(raw, '[', ']')
	obj, objOK := span(raw, '{', '}')

	objFirst := objOK && (!arrOK || strings.IndexByte(raw, '{') < strings.IndexByte(raw, '['))
	switch {
	case objFirst:
		return obj
	case arrOK:
		return arr
	}
	return "[]"
}

func span(raw string, open, close byte) (string, bool) {
	start := strings.IndexByte(raw, open)
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(raw, close)
	if end < start {
		return raw[start:], true
	}
	return raw[start : end+1], true
}

// Apply runs rules over text in order.
func Apply(text string, rules []Rule) string {
	for _, rule := range rules {
		text = rule.Apply(text)
	}
	return text
}

// Repair extracts the JSON span from raw and applies Rules.
// Repair(Repair(x)) == Repair(x).
func Repair(raw string) string {
	out := Apply(Extract(raw), Rules)
	for i := 1; i < maxPasses; i++ {
		next := Apply(Extract(out), Rules)
		if next == out {
			break
		}
		out = next
	}
	return out
}

// DeepRepair applies DeepRules to already repaired text.
func DeepRepair(text string) string {
	return Apply(text, DeepRules)
}

// Parse repairs raw and decodes it into a list of objects. A single decoded
// object is a one element list unless it only wraps one array of objects, as
// in {"modules": [...]}, which is unwrapped. DeepRepair is tried once when the
// standard repair does not decode.
func Parse(raw string) ([]map[string]any, error) {
	if !strings.ContainsAny(raw, "[{") {
		return nil, domain.NewRepairFailureError(errNoJSON)
	}

	repaired := Repair(raw)
	items, err := decode(repaired)
	if err == nil {
		return items, nil
	}

	items, deepErr := decode(DeepRepair(repaired))
	if deepErr == nil {
		return items, nil
	}
	return nil, domain.NewRepairFailureError(fmt.Errorf("decode: %w; after deep repair: %v", err, deepErr))
}

func decode(text string) ([]map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}

	switch t := v.(type) {
	case []any:
		return objects(t), nil
	case map[string]any:
		if inner, ok := wrappedArray(t); ok {
			return objects(inner), nil
		}
		return []map[string]any{t}, nil
	}
	return nil, fmt.Errorf("unexpected JSON value of type %T", v)
}

// objects keeps the object elements of a list.
func objects(list []any) []map[string]any {
	items := make([]map[string]any, 0, len(list))
	for _, el := range list {
		if obj, ok := el.(map[string]any); ok {
			items = append(items, obj)
		}
	}
	return items
}

func wrappedArray(obj map[string]any) ([]any, bool) {
	if len(obj) != 1 {
		return nil, false
	}
	for _, v := range obj {
		list, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range list {
			if _, ok := el.(map[string]any); !ok {
				return nil, false
			}
		}
		return list, true
	}
	return nil, false
}

// Package consensus reconciles a set of participant responses into a
// single accept/reject decision under a configurable agreement
// threshold.
package consensus

import (
	"encoding/json"
	"fmt"
)

// Decision is the outcome of reconciling a response set. It is derived
// fresh on every call and never persisted.
type Decision struct {
	Reached bool
	Winner  string // comparison key of the most frequent result
	Count   int    // responses agreeing on the winner
	Total   int
	Ratio   float64
	Message string
}

// Decide reconciles responses under the given agreement threshold.
//
// Every response must be a mapping carrying a "result" key; if any
// response lacks one the whole decision fails (the strict
// comparison-key policy). Result values are compared for equality,
// with non-string values canonicalized through their JSON form. Ties
// are broken deterministically: the first value to reach the maximum
// count in input order wins. The threshold boundary is inclusive.
//
// A single response reaches consensus automatically: a lone respondent
// cannot be outvoted. An empty or non-list input never reaches
// consensus regardless of threshold.
func Decide(responses any, threshold float64) Decision {
	list, ok := asList(responses)
	if !ok {
		return Decision{Message: "responses must be a list"}
	}

	total := len(list)
	if total == 0 {
		return Decision{Message: "responses list is empty"}
	}

	keys := make([]string, total)
	for i, r := range list {
		m, ok := r.(map[string]any)
		if !ok {
			return Decision{Total: total, Message: fmt.Sprintf("response %d is not a mapping", i)}
		}
		result, present := m["result"]
		if !present {
			return Decision{Total: total, Message: fmt.Sprintf(`response %d is missing the "result" key`, i)}
		}
		keys[i] = comparisonKey(result)
	}

	if total == 1 {
		return Decision{
			Reached: true,
			Winner:  keys[0],
			Count:   1,
			Total:   1,
			Ratio:   1.0,
			Message: "single response: consensus by default",
		}
	}

	// Counting in input order with a strictly-greater comparison makes
	// the first value to reach the maximum count win ties.
	counts := make(map[string]int, total)
	winner := ""
	max := 0
	for _, k := range keys {
		counts[k]++
		if counts[k] > max {
			max = counts[k]
			winner = k
		}
	}

	ratio := float64(max) / float64(total)
	d := Decision{
		Reached: ratio >= threshold,
		Winner:  winner,
		Count:   max,
		Total:   total,
		Ratio:   ratio,
	}
	if d.Reached {
		d.Message = fmt.Sprintf("consensus reached: %d/%d for %q meets threshold %.2f", max, total, winner, threshold)
	} else {
		d.Message = fmt.Sprintf("consensus not reached: %d/%d for %q (ratio %.2f) below threshold %.2f",
			max, total, winner, ratio, threshold)
	}
	return d
}

// asList accepts the slice shapes responses arrive in: []any from JSON
// decoding, []map[string]any from in-process callers.
func asList(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []map[string]any:
		out := make([]any, len(s))
		for i, m := range s {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

// comparisonKey renders a result value as a comparable string. Strings
// pass through untouched; anything else is canonicalized through JSON
// so equal values compare equal regardless of decoder quirks.
func comparisonKey(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

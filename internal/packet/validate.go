// Package packet validates inbound request payloads against the fixed
// wire schema. Malformed input is an ordinary rejection outcome, never
// an error or a panic.
package packet

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/vkessler/tribunal/internal/model"
)

// Rule identifies which validation rule rejected a packet.
type Rule string

const (
	RuleMapping     Rule = "mapping"
	RuleRequired    Rule = "required_keys"
	RuleSource      Rule = "source"
	RuleAction      Rule = "action"
	RuleData        Rule = "data"
	RuleConsensus   Rule = "consensus"
	RuleVotes       Rule = "consensus_votes"
	RuleUnknownKeys Rule = "unknown_keys"
)

// Rejection describes why a packet failed validation.
type Rejection struct {
	Rule    Rule
	Message string
}

func (r *Rejection) Error() string { return r.Message }

// recognizedKeys is the complete set of keys a packet may carry.
var recognizedKeys = map[string]bool{
	"source":    true,
	"action":    true,
	"data":      true,
	"timestamp": true,
	"metadata":  true,
	"consensus": true,
}

// requiredKeys must all be present; data may be null but the key
// itself is mandatory.
var requiredKeys = []string{"source", "action", "data"}

// Validate checks a decoded packet against the wire schema. Rules run
// in order and short-circuit on the first failure; missing required
// keys are reported as a set. The data value must be a mapping or null
// (the strict variant; any other non-null value is rejected).
// Returns nil when the packet is valid.
func Validate(v any) *Rejection {
	m, ok := v.(map[string]any)
	if !ok {
		return &Rejection{Rule: RuleMapping, Message: "packet must be a mapping"}
	}

	var missing []string
	for _, key := range requiredKeys {
		if _, present := m[key]; !present {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &Rejection{
			Rule:    RuleRequired,
			Message: "missing required keys: " + strings.Join(missing, ", "),
		}
	}

	if s, ok := m["source"].(string); !ok || s == "" {
		return &Rejection{Rule: RuleSource, Message: `key "source" must be a non-empty string`}
	}
	if s, ok := m["action"].(string); !ok || s == "" {
		return &Rejection{Rule: RuleAction, Message: `key "action" must be a non-empty string`}
	}

	if model.ClassifyData(m["data"]) == model.DataOther {
		return &Rejection{Rule: RuleData, Message: `key "data" must be a mapping or null`}
	}

	if c, present := m["consensus"]; present {
		cm, ok := c.(map[string]any)
		if !ok {
			return &Rejection{Rule: RuleConsensus, Message: `key "consensus" must be a mapping`}
		}
		if votes, present := cm["votes"]; present && !isNumeric(votes) {
			return &Rejection{Rule: RuleVotes, Message: `key "consensus.votes" must be numeric`}
		}
	}

	var unknown []string
	for key := range m {
		if !recognizedKeys[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &Rejection{
			Rule:    RuleUnknownKeys,
			Message: "unrecognized keys: " + strings.Join(unknown, ", "),
		}
	}

	return nil
}

// isNumeric accepts any Go numeric type plus json.Number, which is how
// numbers arrive from decoders configured with UseNumber.
func isNumeric(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return true
	}
	return false
}

package tribunal

import "github.com/vkessler/tribunal/internal/model"

// Directive names an enforcement check.
type Directive string

const (
	Sanctuary Directive = Directive(model.Sanctuary)
	Synthesis Directive = Directive(model.Synthesis)
	Logic     Directive = Directive(model.Logic)
)

// Check is the outcome of one directive.
type Check struct {
	Directive Directive
	Passed    bool
	// Fault is true when the denial came from an internal failure
	// rather than a policy decision. A faulted check still denies.
	Fault   bool
	Message string
}

func fromResult(r model.CheckResult) Check {
	return Check{
		Directive: Directive(r.Directive),
		Passed:    r.Passed(),
		Fault:     r.Faulted(),
		Message:   r.Message,
	}
}

// Request is one inbound request to gate.
type Request struct {
	Source string
	Action string
	// Data may be nil; the assembled packet then carries an explicit
	// null data value, which the schema permits.
	Data map[string]any
	// Responses, when non-empty, enables the logic directive after the
	// action runs.
	Responses []map[string]any
}

// Response statuses reported by HandleRequest.
const (
	StatusSuccess     = "success"
	StatusDenied      = "denied"
	StatusInvalid     = "invalid"
	StatusNoConsensus = "no_consensus"
	StatusError       = "error"
)

// Response reports the outcome of a gated request.
type Response struct {
	Status string
	// Directive names the check that failed, when one did.
	Directive Directive
	Error     string
	Result    any
	Passed    []Directive
}

package tribunal

import (
	"context"
	"fmt"
)

// ActionFunc executes the application's business logic once the
// request has cleared sanctuary and synthesis.
type ActionFunc func(ctx context.Context, action string, data map[string]any) (any, error)

// HandleRequest runs the full enforcement pipeline around fn:
// sanctuary on the source, synthesis on the assembled packet, fn
// itself, then logic over req.Responses when present. The first
// failing directive short-circuits the rest. A nil fn skips the
// business step and carries a nil result.
func (c *Client) HandleRequest(ctx context.Context, req Request, fn ActionFunc) Response {
	if r := c.CheckSanctuary(req.Source); !r.Passed {
		return Response{Status: StatusDenied, Directive: Sanctuary, Error: r.Message}
	}

	// Assemble the packet the way wire callers would; a nil Data map
	// becomes an explicit null data value.
	var data any
	if req.Data != nil {
		data = req.Data
	}
	packet := map[string]any{
		"source": req.Source,
		"action": req.Action,
		"data":   data,
	}
	if r := c.CheckSynthesis(packet); !r.Passed {
		return Response{Status: StatusInvalid, Directive: Synthesis, Error: r.Message}
	}

	var result any
	if fn != nil {
		var err error
		result, err = fn(ctx, req.Action, req.Data)
		if err != nil {
			return Response{Status: StatusError, Error: fmt.Sprintf("processing failed: %v", err)}
		}
	}

	passed := []Directive{Sanctuary, Synthesis}
	if len(req.Responses) > 0 {
		if r := c.CheckLogic(req.Responses); !r.Passed {
			return Response{Status: StatusNoConsensus, Directive: Logic, Error: r.Message}
		}
		passed = append(passed, Logic)
	}

	return Response{Status: StatusSuccess, Result: result, Passed: passed}
}

// Package tribunal provides in-process, fail-closed enforcement for
// multi-agent request handling. Every request is gated through three
// independent directives: sanctuary (source authorization against a
// boundary-checked allowlist), synthesis (packet structure
// validation), and logic (quorum agreement across participant
// responses).
//
// Usage:
//
//	tb, err := tribunal.New(
//	    tribunal.WithBaseDir("/srv/app"),
//	    tribunal.WithAllowlistPath("config/sanctuary.conf"),
//	)
//	resp := tb.HandleRequest(ctx, tribunal.Request{
//	    Source: "node-alpha",
//	    Action: "process_data",
//	    Data:   map[string]any{"key": "value"},
//	}, myAction)
//
// Every ambiguity, error, or internal fault denies. The SDK links
// directly against the internal engine for zero-subprocess overhead.
// External users import github.com/vkessler/tribunal/sdk/go/tribunal.
package tribunal

package model

import (
	"crypto/sha256"
	"encoding/hex"
)

// Directive names one of the three enforcement checks.
type Directive string

const (
	// Sanctuary gates on source identity against the allowlist.
	Sanctuary Directive = "sanctuary"
	// Synthesis validates packet structural integrity.
	Synthesis Directive = "synthesis"
	// Logic reconciles multiple responses into one quorum decision.
	Logic Directive = "logic"
)

func (d Directive) String() string { return string(d) }

// Outcome distinguishes why a check passed or failed. A fault is still
// deny-shaped: Passed is false for both OutcomeDenied and OutcomeFault,
// but callers that log outcomes can tell a policy denial apart from an
// internal failure.
type Outcome string

const (
	OutcomePass   Outcome = "pass"
	OutcomeDenied Outcome = "denied"
	OutcomeFault  Outcome = "fault"
)

// CheckResult is the outcome of a single directive check. Checks never
// return errors or panic; every failure mode is a CheckResult.
type CheckResult struct {
	Directive Directive `json:"directive"`
	Outcome   Outcome   `json:"outcome"`
	Message   string    `json:"message"`
}

// Passed reports whether the check permits the request to proceed.
func (r CheckResult) Passed() bool { return r.Outcome == OutcomePass }

// Faulted reports whether the denial came from an internal failure
// rather than policy.
func (r CheckResult) Faulted() bool { return r.Outcome == OutcomeFault }

// SourceDigest returns the first 8 hex characters of the SHA-256 of a
// source identifier. Raw identifiers never appear in messages or status
// output; only this digest does.
func SourceDigest(id string) string {
	h := sha256.Sum256([]byte(id))
	return hex.EncodeToString(h[:])[:8]
}

// Package engine composes the allowlist store, packet validator, and
// consensus engine into a single configured enforcement object.
//
// Construction is fail-fast: an invalid configuration is operator
// error and aborts immediately. Everything after construction is
// fail-closed: a check never returns an error and never panics; any
// internal fault becomes a deny-shaped result.
package engine

import (
	"fmt"
	"os"

	"github.com/vkessler/tribunal/internal/allowlist"
	"github.com/vkessler/tribunal/internal/consensus"
	"github.com/vkessler/tribunal/internal/model"
	"github.com/vkessler/tribunal/internal/packet"
)

// Config fixes the engine's behavior at construction time. It is never
// mutated afterwards.
type Config struct {
	// BaseDir is the security boundary: an existing directory the
	// allowlist path must resolve inside.
	BaseDir string
	// AllowlistPath is resolved against BaseDir.
	AllowlistPath string
	// Threshold is the consensus agreement ratio in [0.0, 1.0].
	Threshold float64
}

// ConfigError is a fatal construction-time misconfiguration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid engine config: %s: %s", e.Field, e.Reason)
}

// Engine runs the three enforcement directives against one fixed
// configuration. Construct once and share; all methods are safe for
// concurrent use.
type Engine struct {
	cfg   Config
	store *allowlist.Store
}

// New validates cfg and builds the engine. The base directory must
// exist and be a directory, the threshold must be in [0, 1], and the
// allowlist path must resolve inside the boundary.
func New(cfg Config) (*Engine, error) {
	if cfg.BaseDir == "" {
		return nil, &ConfigError{Field: "base_dir", Reason: "must be a non-empty path"}
	}
	info, err := os.Stat(cfg.BaseDir)
	if err != nil || !info.IsDir() {
		return nil, &ConfigError{Field: "base_dir", Reason: fmt.Sprintf("%q must be an existing directory", cfg.BaseDir)}
	}
	if cfg.AllowlistPath == "" {
		return nil, &ConfigError{Field: "allowlist_path", Reason: "must be a non-empty path"}
	}
	if cfg.Threshold < 0.0 || cfg.Threshold > 1.0 {
		return nil, &ConfigError{Field: "consensus_threshold", Reason: fmt.Sprintf("%v outside [0.0, 1.0]", cfg.Threshold)}
	}

	store, err := allowlist.New(cfg.BaseDir, cfg.AllowlistPath)
	if err != nil {
		return nil, &ConfigError{Field: "allowlist_path", Reason: err.Error()}
	}

	return &Engine{cfg: cfg, store: store}, nil
}

// CheckSanctuary gates on source identity. The result message refers
// to the source only by digest, never verbatim.
func (e *Engine) CheckSanctuary(source string) (result model.CheckResult) {
	defer recoverTo(model.Sanctuary, &result)

	if source == "" {
		return deny(model.Sanctuary, "source identifier must be a non-empty string")
	}

	if e.store.Lookup(source) {
		return pass(model.Sanctuary, fmt.Sprintf("source %s authorized", model.SourceDigest(source)))
	}

	if err := e.store.LoadErr(); err != nil {
		// The unreadable file degraded the allowlist to empty. Still a
		// denial, but surfaced as a fault so operators can tell it
		// apart from a policy decision.
		return model.CheckResult{
			Directive: model.Sanctuary,
			Outcome:   model.OutcomeFault,
			Message:   fmt.Sprintf("source %s denied: allowlist unreadable", model.SourceDigest(source)),
		}
	}

	return deny(model.Sanctuary, fmt.Sprintf("source %s not on allowlist", model.SourceDigest(source)))
}

// CheckSynthesis validates packet structure against the wire schema.
func (e *Engine) CheckSynthesis(pkt any) (result model.CheckResult) {
	defer recoverTo(model.Synthesis, &result)

	if rej := packet.Validate(pkt); rej != nil {
		return deny(model.Synthesis, rej.Message)
	}
	return pass(model.Synthesis, "packet structure valid")
}

// CheckLogic reconciles a response set under the configured threshold.
func (e *Engine) CheckLogic(responses any) (result model.CheckResult) {
	defer recoverTo(model.Logic, &result)

	d := consensus.Decide(responses, e.cfg.Threshold)
	if d.Reached {
		return pass(model.Logic, d.Message)
	}
	return deny(model.Logic, d.Message)
}

// Status is a logging-safe snapshot of the engine configuration. It
// never contains raw allowlist entries or packet contents.
type Status struct {
	BaseDir             string  `json:"base_dir"`
	AllowlistPath       string  `json:"allowlist_path"`
	AllowlistSize       int     `json:"allowlist_size"`
	AllowlistFileExists bool    `json:"allowlist_file_exists"`
	ConsensusThreshold  float64 `json:"consensus_threshold"`
}

// Status reports the engine's configuration and allowlist state.
func (e *Engine) Status() Status {
	return Status{
		BaseDir:             e.store.Base(),
		AllowlistPath:       e.store.Path(),
		AllowlistSize:       e.store.Size(),
		AllowlistFileExists: e.store.FileExists(),
		ConsensusThreshold:  e.cfg.Threshold,
	}
}

// ResetAllowlist clears the allowlist cache; the next sanctuary check
// re-reads the file.
func (e *Engine) ResetAllowlist() {
	e.store.Reset()
}

// AllowlistPath returns the canonical allowlist file path, for
// watchers and diagnostics.
func (e *Engine) AllowlistPath() string {
	return e.store.Path()
}

// Threshold returns the configured consensus threshold.
func (e *Engine) Threshold() float64 {
	return e.cfg.Threshold
}

func pass(d model.Directive, msg string) model.CheckResult {
	return model.CheckResult{Directive: d, Outcome: model.OutcomePass, Message: msg}
}

func deny(d model.Directive, msg string) model.CheckResult {
	return model.CheckResult{Directive: d, Outcome: model.OutcomeDenied, Message: msg}
}

// recoverTo converts a panic inside a check into a fault result so no
// internal error ever escapes to the caller.
func recoverTo(d model.Directive, result *model.CheckResult) {
	if r := recover(); r != nil {
		*result = model.CheckResult{
			Directive: d,
			Outcome:   model.OutcomeFault,
			Message:   fmt.Sprintf("%s check failed internally: %v", d, r),
		}
	}
}

package tribunal

import (
	"fmt"

	"github.com/vkessler/tribunal/internal/config"
	"github.com/vkessler/tribunal/internal/engine"
	"github.com/vkessler/tribunal/internal/gateway"
)

// Client wraps a configured enforcement engine. Safe for concurrent
// use; construct once per process and share.
type Client struct {
	eng *engine.Engine
}

// New creates a Client. Configuration sources compose in increasing
// precedence: built-in defaults, the config file, the environment
// (only with FromEnv), then explicit options.
func New(opts ...Option) (*Client, error) {
	var cc clientConfig
	for _, o := range opts {
		o(&cc)
	}

	cfg, err := config.Load(cc.configFile)
	if err != nil {
		return nil, fmt.Errorf("tribunal: failed to load config: %w", err)
	}
	if cc.fromEnv {
		if err := gateway.ApplyEnv(cfg); err != nil {
			return nil, fmt.Errorf("tribunal: %w", err)
		}
	}
	if cc.baseDir != "" {
		cfg.BaseDir = cc.baseDir
	}
	if cc.allowlistPath != "" {
		cfg.AllowlistPath = cc.allowlistPath
	}
	if cc.threshold != nil {
		cfg.ConsensusThreshold = *cc.threshold
	}

	eng, err := engine.New(cfg.ToEngine())
	if err != nil {
		return nil, fmt.Errorf("tribunal: %w", err)
	}
	return &Client{eng: eng}, nil
}

// CheckSanctuary gates on source identity.
func (c *Client) CheckSanctuary(source string) Check {
	return fromResult(c.eng.CheckSanctuary(source))
}

// CheckSynthesis validates a decoded packet against the wire schema.
func (c *Client) CheckSynthesis(packet any) Check {
	return fromResult(c.eng.CheckSynthesis(packet))
}

// CheckLogic reconciles a response set under the configured threshold.
func (c *Client) CheckLogic(responses any) Check {
	return fromResult(c.eng.CheckLogic(responses))
}

// Status returns a logging-safe snapshot of the engine configuration.
func (c *Client) Status() engine.Status {
	return c.eng.Status()
}

// ResetAllowlist clears the allowlist cache; the next sanctuary check
// re-reads the file.
func (c *Client) ResetAllowlist() {
	c.eng.ResetAllowlist()
}

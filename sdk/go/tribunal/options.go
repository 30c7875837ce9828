package tribunal

// Option configures a Client at creation time.
type Option func(*clientConfig)

type clientConfig struct {
	configFile    string
	fromEnv       bool
	baseDir       string
	allowlistPath string
	threshold     *float64
}

// WithConfigFile sets the path to a config YAML file. Without it the
// default ~/.tribunal/config.yaml is consulted when present.
func WithConfigFile(path string) Option {
	return func(c *clientConfig) { c.configFile = path }
}

// FromEnv overlays the TRIBUNAL_* environment variables onto the
// loaded configuration before explicit options are applied.
func FromEnv() Option {
	return func(c *clientConfig) { c.fromEnv = true }
}

// WithBaseDir sets the boundary directory.
func WithBaseDir(dir string) Option {
	return func(c *clientConfig) { c.baseDir = dir }
}

// WithAllowlistPath sets the allowlist path relative to the boundary.
func WithAllowlistPath(path string) Option {
	return func(c *clientConfig) { c.allowlistPath = path }
}

// WithThreshold sets the consensus agreement threshold.
func WithThreshold(threshold float64) Option {
	return func(c *clientConfig) { c.threshold = &threshold }
}

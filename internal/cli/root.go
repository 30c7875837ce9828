package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vkessler/tribunal/internal/config"
	"github.com/vkessler/tribunal/internal/engine"
	"github.com/vkessler/tribunal/internal/gateway"
)

var rootCmd = &cobra.Command{
	Use:   "tribunal",
	Short: "Fail-closed enforcement gate for multi-agent requests",
	Long: "Gates actions through three independent directives: source\n" +
		"authorization (sanctuary), payload validation (synthesis), and\n" +
		"quorum agreement (logic). Every ambiguity, error, or missing\n" +
		"input denies.",
}

var (
	flagConfig    string
	flagBaseDir   string
	flagAllowlist string
	flagThreshold float64
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML (default ~/.tribunal/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagBaseDir, "base-dir", "", "Boundary directory (overrides config and environment)")
	rootCmd.PersistentFlags().StringVar(&flagAllowlist, "allowlist", "", "Allowlist path relative to the boundary (overrides config and environment)")
	rootCmd.PersistentFlags().Float64Var(&flagThreshold, "threshold", -1, "Consensus threshold 0.0-1.0 (overrides config and environment)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildEngine assembles an engine from the config file, environment,
// and flags, in increasing precedence.
func buildEngine() (*engine.Engine, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if err := gateway.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if flagBaseDir != "" {
		cfg.BaseDir = flagBaseDir
	}
	if flagAllowlist != "" {
		cfg.AllowlistPath = flagAllowlist
	}
	if flagThreshold >= 0 {
		cfg.ConsensusThreshold = flagThreshold
	}
	return engine.New(cfg.ToEngine())
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing config files")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap tribunal configuration",
	Long: "Creates ~/.tribunal with a starter config.yaml and an example\n" +
		"sanctuary.conf allowlist. Existing files are left alone unless\n" +
		"--force is given.",
	RunE: runInit,
}

const exampleAllowlist = `# sanctuary allowlist: one source identifier per line.
# Blank lines and lines starting with # are ignored.
# Identifiers are compared byte for byte; uncomment or add your own.
#node-alpha
#node-beta
`

func runInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot determine home directory: %w", err)
	}
	configDir := filepath.Join(home, ".tribunal")

	if err := os.MkdirAll(filepath.Join(configDir, "config"), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var created []string

	// The starter config pins the boundary to the config directory so
	// the example allowlist resolves inside it out of the box.
	cfgYAML := fmt.Sprintf(`# tribunal configuration.
#
# base_dir is the security boundary: the allowlist path must resolve
# to a location inside it.
base_dir: %s
allowlist_path: config/sanctuary.conf

# Agreement ratio in [0.0, 1.0] a winning result must reach (inclusive).
consensus_threshold: 0.66
`, configDir)

	cfgPath := filepath.Join(configDir, "config.yaml")
	if wrote, err := writeIfMissing(cfgPath, cfgYAML); err != nil {
		return err
	} else if wrote {
		created = append(created, cfgPath)
	}

	allowPath := filepath.Join(configDir, "config", "sanctuary.conf")
	if wrote, err := writeIfMissing(allowPath, exampleAllowlist); err != nil {
		return err
	} else if wrote {
		created = append(created, allowPath)
	}

	if len(created) == 0 {
		fmt.Println("already initialized; use --force to overwrite")
		return nil
	}
	for _, path := range created {
		fmt.Printf("created %s\n", path)
	}
	return nil
}

func writeIfMissing(path, content string) (bool, error) {
	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statusFormat string

func init() {
	statusCmd.Flags().StringVarP(&statusFormat, "format", "f", "text", "Output format (text|json)")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print engine configuration status",
	Long: "Prints the boundary path, allowlist size, and consensus\n" +
		"threshold. Raw allowlist entries are never printed.",
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	eng, err := buildEngine()
	if err != nil {
		return err
	}
	st := eng.Status()

	if statusFormat == "json" {
		out, _ := json.MarshalIndent(st, "", "  ")
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("boundary:   %s\n", st.BaseDir)
	fmt.Printf("allowlist:  %s (exists=%t, entries=%d)\n",
		st.AllowlistPath, st.AllowlistFileExists, st.AllowlistSize)
	fmt.Printf("threshold:  %.2f\n", st.ConsensusThreshold)
	return nil
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vkessler/tribunal/internal/selftest"
)

var selftestVerbose bool

func init() {
	selftestCmd.Flags().BoolVarP(&selftestVerbose, "verbose", "v", false, "Print the message behind each check")
	rootCmd.AddCommand(selftestCmd)
}

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Verify the enforcement engine against known-answer checks",
	Long: "Builds a throwaway fixture in a temp directory and runs every\n" +
		"directive through its known-answer cases. Exit code 0 only if\n" +
		"all checks pass. Safe to run repeatedly.",
	RunE: runSelftest,
}

func runSelftest(cmd *cobra.Command, args []string) error {
	results, err := selftest.Run()
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		mark := "ok"
		if !r.OK {
			mark = "FAIL"
			failed++
		}
		fmt.Printf("[%-4s] %s\n", mark, r.Label)
		if selftestVerbose || !r.OK {
			fmt.Printf("       %s\n", r.Detail)
		}
	}

	fmt.Printf("\n%d checks, %d failed\n", len(results), failed)
	if failed > 0 {
		os.Exit(1)
	}
	return nil
}

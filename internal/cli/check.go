package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vkessler/tribunal/internal/model"
)

var (
	checkPacket    string
	checkResponses string
	checkFormat    string
)

func init() {
	checkCmd.Flags().StringVar(&checkPacket, "packet", "", "Path to packet JSON file (required)")
	checkCmd.Flags().StringVar(&checkResponses, "responses", "", "Path to responses JSON file (enables the logic directive)")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format (text|json)")
	checkCmd.MarkFlagRequired("packet")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a request through the enforcement directives",
	Long: "Reads a packet JSON file, runs sanctuary on its source and\n" +
		"synthesis on its structure, and, when --responses is given,\n" +
		"logic over the response set.\n\n" +
		"Exit code 0 if every directive passes, 1 otherwise.",
	RunE: runCheckDirectives,
}

func runCheckDirectives(cmd *cobra.Command, args []string) error {
	eng, err := buildEngine()
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(checkPacket)
	if err != nil {
		return fmt.Errorf("read packet: %w", err)
	}
	var pkt any
	if err := json.Unmarshal(raw, &pkt); err != nil {
		return fmt.Errorf("parse packet: %w", err)
	}

	// The source for sanctuary comes from the packet itself; a packet
	// without one simply fails sanctuary with an empty source.
	source := ""
	if m, ok := pkt.(map[string]any); ok {
		source, _ = m["source"].(string)
	}

	results := []model.CheckResult{
		eng.CheckSanctuary(source),
		eng.CheckSynthesis(pkt),
	}

	if checkResponses != "" {
		raw, err := os.ReadFile(checkResponses)
		if err != nil {
			return fmt.Errorf("read responses: %w", err)
		}
		var responses any
		if err := json.Unmarshal(raw, &responses); err != nil {
			return fmt.Errorf("parse responses: %w", err)
		}
		results = append(results, eng.CheckLogic(responses))
	}

	allPassed := true
	for _, r := range results {
		if !r.Passed() {
			allPassed = false
		}
	}

	switch checkFormat {
	case "json":
		out, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(out))
	default:
		for _, r := range results {
			mark := "PASS"
			if !r.Passed() {
				mark = "DENY"
			}
			fmt.Printf("%-4s %-9s %s\n", mark, r.Directive, r.Message)
		}
	}

	if !allPassed {
		os.Exit(1)
	}
	return nil
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vector index and chunking statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Show the active behavioural policy",
	Args:  cobra.NoArgs,
	RunE:  runPolicy,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(policyCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}
	if statsService == nil {
		return errors.New("stats service not configured")
	}

	stats, err := statsService.ChunkingStats(cmd.Context())
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println("[Index]")
	cmd.Printf("  Vectors:    %d\n", stats.Index.TotalVectors)
	cmd.Printf("  Dimensions: %d\n", stats.Index.Dimensions)
	cmd.Printf("  Metric:     %s\n", stats.Index.Metric)
	for _, ns := range sortedKeys(stats.Index.Namespaces) {
		cmd.Printf("  Namespace %s: %d\n", ns, stats.Index.Namespaces[ns])
	}
	cmd.Println()

	cmd.Println("[Strategies]")
	for _, tag := range domain.AllStrategies() {
		if desc, ok := stats.Strategies[tag]; ok {
			cmd.Printf("  %-14s %s\n", tag, desc)
		}
	}
	cmd.Println()

	cmd.Println("[File Types]")
	for _, ft := range sortedKeys(stats.SupportedTypes) {
		cmd.Printf("  %-14s %s\n", ft, stats.SupportedTypes[ft])
	}
	return nil
}

func runPolicy(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}
	if policyService == nil {
		return errors.New("policy service not configured")
	}

	status, err := policyService.VerifyPolicy(cmd.Context())
	if err != nil {
		return fmt.Errorf("policy check failed: %w", err)
	}

	cmd.Printf("System prompt active:    %s\n", yesNo(status.SystemPromptActive))
	cmd.Printf("Reality filter enforced: %s\n", yesNo(status.RealityFilterEnforced))
	cmd.Printf("PDF-first mode:          %s\n", yesNo(status.PDFFirstMode))
	if len(status.ReferenceDocuments) > 0 {
		cmd.Println("Reference documents:")
		for _, doc := range status.ReferenceDocuments {
			cmd.Printf("  - %s\n", doc)
		}
	}
	if status.Directive != "" {
		cmd.Printf("Directive: %s\n", status.Directive)
	}
	return nil
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

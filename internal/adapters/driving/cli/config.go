package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ocean48/oceanbot/internal/adapters/driven/ai"
	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change settings stored in ~/.oceanbot/config.toml.

Environment variables override the file. Each key can be set with
OCEANBOT_<KEY>, e.g. OCEANBOT_LLM_MODEL for llm.model. OPENAI_API_KEY,
ANTHROPIC_API_KEY, OLLAMA_HOST and REDIS_ADDR are honoured as well.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved settings and where each value came from",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting",
	Long: `Set a setting in the config file.

List values such as server.allowed_origins are comma separated.
Durations use Go syntax, e.g. 60s or 1m30s.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetSecretCmd = &cobra.Command{
	Use:   "set-secret <key>",
	Short: "Set a secret setting without echoing it",
	Long:  `Prompt for the value of a secret such as llm.api_key so that it does not end up in shell history.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetSecret,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys and their environment variables",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the embedding provider, LLM and vector index are reachable",
	Args:  cobra.NoArgs,
	RunE:  runConfigCheck,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetSecretCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := loadSettings(); err != nil {
		return err
	}
	values, err := settingsService.Describe()
	if err != nil {
		return fmt.Errorf("failed to resolve settings: %w", err)
	}

	section := ""
	for _, v := range values {
		group, name, _ := strings.Cut(v.Key, ".")
		if group != section {
			if section != "" {
				cmd.Println()
			}
			cmd.Printf("[%s]\n", group)
			section = group
		}

		display := v.Display()
		if display == "" {
			display = "(not set)"
		}
		switch v.Source {
		case domain.SourceEnv:
			cmd.Printf("  %-20s %s  (env %s)\n", name, display, v.EnvVar)
		case domain.SourceConfig:
			cmd.Printf("  %-20s %s  (config)\n", name, display)
		default:
			cmd.Printf("  %-20s %s\n", name, display)
		}
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := loadSettings(); err != nil {
		return err
	}
	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("%s updated\n", key)
	return nil
}

func runConfigSetSecret(cmd *cobra.Command, args []string) error {
	if err := loadSettings(); err != nil {
		return err
	}
	key := args[0]

	cmd.Printf("Enter value for %s: ", key)
	value := readPassword(cmd.InOrStdin())
	cmd.Println()
	if value == "" {
		return errors.New("no value entered")
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("%s updated\n", key)
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	if err := loadSettings(); err != nil {
		return err
	}
	values, err := settingsService.Describe()
	if err != nil {
		return fmt.Errorf("failed to resolve settings: %w", err)
	}
	for _, v := range values {
		secret := ""
		if v.Secret {
			secret = "  (secret)"
		}
		cmd.Printf("%-28s %s%s\n", v.Key, services.EnvName(v.Key), secret)
	}
	return nil
}

func runConfigCheck(cmd *cobra.Command, _ []string) error {
	if err := loadSettings(); err != nil {
		return err
	}
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	failed := false
	report := func(name string, err error) {
		if err != nil {
			failed = true
			cmd.Printf("  %-10s FAILED: %v\n", name, err)
			return
		}
		cmd.Printf("  %-10s ok\n", name)
	}

	report("embedding", ai.ValidateEmbeddingConfig(ctx, &settings.Embedding, settings.Index.Dimensions))
	report("llm", ai.ValidateLLMConfig(ctx, &settings.LLM))

	index, err := openIndex(ctx, &settings.Index)
	if err == nil {
		_ = index.Close()
	}
	report("index", err)

	if failed {
		return errors.New("configuration check failed")
	}
	return nil
}

// readPassword reads a line without echo when in is a terminal.
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(in)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

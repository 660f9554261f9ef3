package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

var askPrefix string

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question and stream the answer",
	Long: `Answer a single question from the indexed documents.

The answer is streamed to stdout as it is generated. Use --prefix to add
extra instructions after the policy, e.g. "Answer in French."`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askPrefix, "prefix", "", "instructions appended to the policy")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("%w: question is required", domain.ErrValidation)
	}

	stream, err := chatService.Answer(cmd.Context(), askPrefix, domain.WithUserMessage(nil, question))
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}
	defer stream.Close()

	out := cmd.OutOrStdout()
	for {
		fragment, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			fmt.Fprintln(out)
			return fmt.Errorf("answer interrupted: %w", err)
		}
		fmt.Fprint(out, fragment)
	}
}

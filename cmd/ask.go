package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/interviewdigest/config"
	"github.com/gaurav-prasanna/interviewdigest/core/chat"
	"github.com/gaurav-prasanna/interviewdigest/core/embed"
	"github.com/gaurav-prasanna/interviewdigest/core/vectorstore"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Chat with an indexed batch",
	Long: `Ask answers questions from the chunks indexed by the index command. With a
question argument it answers once; otherwise it reads questions from stdin
until exit, quit or bye.

Examples:
  interviewdigest ask "What was asked in round 2?"
  interviewdigest ask --collection amazon`,
	Args: cobra.ArbitraryArgs,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&flagCollection, "collection", "", "Qdrant collection (default from config)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	if !cfg.HasLLM() {
		return fmt.Errorf("%w: an API key is required to answer questions", config.ErrInvalidConfig)
	}
	assistant := chat.New(
		embed.NewOllama(cfg.Embed.BaseURL, cfg.Embed.Model),
		vectorstore.NewQdrant(cfg.Qdrant.URL),
		newLLM(),
		collectionName(),
		cfg.Qdrant.TopK,
	)

	if len(args) > 0 {
		answer, err := assistant.Ask(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), answer)
		return nil
	}
	return chatLoop(cmd, assistant, cmd.InOrStdin())
}

// chatLoop answers one question per line until an exit word or EOF. A failed
// answer is reported and the loop continues.
func chatLoop(cmd *cobra.Command, assistant *chat.Assistant, in io.Reader) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := scanner.Text()
		if chat.IsExit(line) {
			fmt.Fprintln(out, "Session ended.")
			return nil
		}
		answer, err := assistant.Ask(cmd.Context(), line)
		switch {
		case errors.Is(err, chat.ErrEmptyQuestion):
			continue
		case err != nil:
			if cmd.Context().Err() != nil {
				return cmd.Context().Err()
			}
			fmt.Fprintf(os.Stderr, "✗ Error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "%s\n\n", answer)
	}
}

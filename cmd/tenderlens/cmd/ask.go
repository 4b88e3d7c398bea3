package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/mfenderov/tenderlens/internal/answer"
	"github.com/spf13/cobra"
)

var (
	askTenderID string
	askFormat   string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about a tender",
	Long: `Ask a one-shot question about a stored tender from the terminal.

Examples:
  # Ask about qualification criteria
  tenderlens ask --tender-id TN-2024-0042 "What is the minimum annual turnover?"

  # JSON output for scripting
  tenderlens ask --tender-id TN-2024-0042 "What is the EMD amount?" --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askTenderID, "tender-id", "", "Tender ID to query (required)")
	askCmd.Flags().StringVar(&askFormat, "format", "text", "Output format: text or json")
	askCmd.MarkFlagRequired("tender-id")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	question := args[0]
	cfg := GetConfig()

	svc, _, err := buildService(cfg)
	if err != nil {
		return err
	}

	ans, err := svc.Ask(ctx, askTenderID, question)
	if err != nil {
		ans = answer.Fallback(askTenderID, err)
	}

	if askFormat == "json" {
		out, err := json.Marshal(map[string]string{"answer": ans})
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println(ans)
	return nil
}

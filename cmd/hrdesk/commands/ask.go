package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hrdesk/hrdesk-go/internal/assistant"
	"github.com/hrdesk/hrdesk-go/internal/logging"
)

// NewAskCmd constructs the `hrdesk ask` command, which answers a single HR
// question on the command line and prints the full response envelope.
func NewAskCmd() *cobra.Command {
	var dataset string
	var topK int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the HR desk a question",
		Long: `Ask a single HR question against the configured FAQ dataset and print
the answer with its confidence score and follow-up suggestions.

Examples:
  hrdesk ask "how many vacation days do I get?"
  hrdesk ask --json "what is the maternity leave policy?"
  hrdesk ask --dataset ./data/hr_faq.csv "how do I claim expenses?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.NewFromEnv()
			ctx = logging.WithLogger(ctx, log)

			index, _, closeIndex, err := buildIndex(ctx, log)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v (vector search unavailable)\n", err)
				index = nil
			}
			defer closeIndex()

			src := buildSource(dataset)
			hrAssistant, err := assistant.New(ctx, &assistant.Config{
				Source: src,
				Index:  index,
				TopK:   topK,
			})
			if err != nil {
				return fmt.Errorf("ask: failed to load dataset %s: %w", src.Path(), err)
			}

			question := strings.Join(args, " ")
			resp := hrAssistant.Search(ctx, question, topK)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(resp) //nolint:wrapcheck // CLI entry point — error goes directly to cobra
			}

			printEnvelope(resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "Path to the FAQ CSV dataset (default: $DATASET_PATH)")
	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "Number of vector candidates to consider")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw response envelope as JSON")

	return cmd
}

// printEnvelope renders a response envelope for terminal consumption.
func printEnvelope(resp *assistant.Response) {
	fmt.Println(resp.Answer)
	fmt.Println()
	fmt.Printf("confidence: %.2f (%s, via %s)\n",
		resp.ConfidenceScore, resp.ConfidenceMessage, resp.RetrievalMethod)

	if len(resp.Sources) > 0 {
		fmt.Println("sources:")
		for _, src := range resp.Sources {
			fmt.Printf("  - %s (%.2f)\n", src.Text, src.Similarity)
		}
	}
	if len(resp.Suggestions) > 0 {
		fmt.Println("you could also ask:")
		for _, s := range resp.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
	if resp.ShowTicketButton {
		fmt.Println("\nNot what you were looking for? Raise an HR ticket with 'hrdesk serve' and the web UI.")
	}
}

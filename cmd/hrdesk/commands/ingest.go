package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hrdesk/hrdesk-go/internal/assistant"
	"github.com/hrdesk/hrdesk-go/internal/logging"
)

// NewIngestCmd constructs the `hrdesk ingest` command, which loads the FAQ
// dataset and builds the similarity index ahead of serving.
func NewIngestCmd() *cobra.Command {
	var dataset string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load the FAQ dataset and build the similarity index",
		Long: `Load the FAQ CSV dataset, validate its rows, and build the configured
similarity index.

With a persistent index (CHROMEM_PATH set, or INDEX_PROVIDER=qdrant) the
built index survives the process, so a later 'hrdesk serve' starts warm.
With the default in-memory index this command is a dataset validation run:
it reports how many rows load cleanly and how many are dropped.

Examples:
  hrdesk ingest
  hrdesk ingest --dataset ./data/hr_faq.csv
  INDEX_PROVIDER=qdrant hrdesk ingest`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.NewFromEnv()
			ctx = logging.WithLogger(ctx, log)

			index, _, closeIndex, err := buildIndex(ctx, log)
			if err != nil {
				return fmt.Errorf("ingest: %w", err)
			}
			defer closeIndex()

			src := buildSource(dataset)
			log.Info("ingest starting", slog.String("dataset", src.Path()))

			hrAssistant, err := assistant.New(ctx, &assistant.Config{
				Source: src,
				Index:  index,
			})
			if err != nil {
				return fmt.Errorf("ingest: failed to load dataset %s: %w", src.Path(), err)
			}

			records := hrAssistant.CorpusSize()
			dropped := hrAssistant.DroppedRecords()
			log.Info("ingest complete",
				slog.Int("records", records),
				slog.Int("dropped", dropped),
			)

			fmt.Printf("loaded %d records from %s", records, src.Path())
			if dropped > 0 {
				fmt.Printf(" (%d malformed rows dropped)", dropped)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "Path to the FAQ CSV dataset (default: $DATASET_PATH)")

	return cmd
}

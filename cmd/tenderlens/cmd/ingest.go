package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/mfenderov/tenderlens/internal/elasticsearch"
	"github.com/mfenderov/tenderlens/internal/ingestion"
	"github.com/mfenderov/tenderlens/internal/storage"
	"github.com/spf13/cobra"
)

var ingestTenderID string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load extracted tender texts from S3 into Elasticsearch",
	Long: `Load a tender's extracted document texts from S3 into Elasticsearch.

The upstream extraction pipeline writes plain-text files to
  tenders/<tender_id>/files/<filename>
with an optional manifest.json alongside. This command assembles those files
into one tender record and indexes it.

Examples:
  tenderlens ingest --tender-id TN-2024-0042`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestTenderID, "tender-id", "", "Tender ID to ingest (required)")
	ingestCmd.MarkFlagRequired("tender-id")
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := GetConfig()
	slog.Debug("ingest command starting", "tender_id", ingestTenderID)

	if cfg.Storage.Endpoint == "" {
		return fmt.Errorf("storage not configured - check config file")
	}

	// Create storage client
	storageClient, err := storage.New(storage.Config{
		Endpoint:        cfg.Storage.Endpoint,
		Bucket:          cfg.Storage.Bucket,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		UseSSL:          cfg.Storage.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	// Create ES client
	esClient, err := elasticsearch.New(elasticsearch.Config{
		Addresses: cfg.Elasticsearch.Addresses,
		Index:     cfg.Elasticsearch.Index,
		Username:  cfg.Elasticsearch.Username,
		Password:  cfg.Elasticsearch.Password,
	})
	if err != nil {
		return fmt.Errorf("failed to create ES client: %w", err)
	}

	engine := ingestion.New(storageClient, esClient)

	fmt.Printf("Ingesting tender: %s\n", ingestTenderID)

	result, err := engine.Ingest(ctx, ingestTenderID)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("\nIngestion complete:\n")
	fmt.Printf("  Files loaded: %d\n", result.FilesLoaded)
	fmt.Printf("  Total chars:  %d\n", result.TotalChars)
	fmt.Printf("  Duration:     %v\n", result.Duration)

	if len(result.Errors) > 0 {
		fmt.Printf("  Warnings: %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("    - %s\n", e)
		}
	}

	return nil
}

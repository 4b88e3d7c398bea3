package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mfenderov/tenderlens/internal/api"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the tender question-answering HTTP API.

Endpoints:
  POST /ask     {"tender_id": "...", "question": "..."} -> {"answer": "..."}
  GET  /health  liveness check
  GET  /        API information

Example:
  tenderlens serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := GetConfig()

	slog.Info("starting tenderlens",
		"addr", cfg.Server.Addr,
		"es_index", cfg.Elasticsearch.Index,
		"llm_model", cfg.LLM.Model,
		"max_files_to_process", cfg.Tender.MaxFilesToProcess,
		"top_files_to_use", cfg.Tender.TopFilesToUse)

	svc, esClient, err := buildService(cfg)
	if err != nil {
		return err
	}

	// Startup is not aborted on a failed ping: ES may still be coming up.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if esClient.Ping(pingCtx) {
		slog.Info("connected to Elasticsearch", "addresses", cfg.Elasticsearch.Addresses)
	} else {
		slog.Warn("Elasticsearch not reachable at startup", "addresses", cfg.Elasticsearch.Addresses)
	}
	cancel()

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.New(svc).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP API listening", "addr", cfg.Server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mfenderov/tenderlens/internal/elasticsearch"
	"github.com/mfenderov/tenderlens/internal/storage"
	"github.com/mfenderov/tenderlens/pkg/models"
)

// Result holds ingestion execution results.
type Result struct {
	TenderID    string
	FilesLoaded int
	TotalChars  int
	Duration    time.Duration
	Errors      []string
}

// Engine loads already-extracted tender text files from S3 and indexes the
// assembled tender record into Elasticsearch. It does not extract text from
// source documents; that happens upstream.
type Engine struct {
	storage  *storage.Client
	esClient *elasticsearch.Client
}

// New creates a new ingestion engine.
func New(storageClient *storage.Client, esClient *elasticsearch.Client) *Engine {
	return &Engine{
		storage:  storageClient,
		esClient: esClient,
	}
}

// Ingest reads all extracted texts of one tender and indexes them.
func (e *Engine) Ingest(ctx context.Context, tenderID string) (*Result, error) {
	start := time.Now()
	result := &Result{TenderID: tenderID}

	slog.Info("starting ingestion", "tender_id", tenderID)

	// Ensure ES index exists
	if err := e.esClient.CreateIndex(ctx); err != nil {
		return nil, err
	}

	// The manifest is optional: older extraction runs only wrote files.
	var title string
	manifest, err := e.storage.GetManifest(ctx, tenderID)
	if err != nil {
		slog.Warn("no manifest for tender, continuing with file listing", "tender_id", tenderID, "error", err)
	} else {
		title = manifest.Title
	}

	files, err := e.storage.ListTextFiles(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no extracted files found for tender %s", tenderID)
	}

	slog.Info("found files to ingest", "tender_id", tenderID, "count", len(files))

	fileTexts := make(map[string]string, len(files))
	for _, filename := range files {
		if ctx.Err() != nil {
			result.Errors = append(result.Errors, "context cancelled")
			break
		}

		content, err := e.storage.GetTextFile(ctx, tenderID, filename)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		fileTexts[filename] = content
		result.FilesLoaded++
		result.TotalChars += len(content)
	}

	if len(fileTexts) == 0 {
		return nil, fmt.Errorf("all %d files failed to load for tender %s", len(files), tenderID)
	}

	tender := models.Tender{
		TenderID:  tenderID,
		Title:     title,
		FileTexts: models.FileTexts{Files: fileTexts},
		IndexedAt: time.Now(),
	}

	slog.Debug("indexing tender", "tender_id", tenderID, "files", len(fileTexts))
	if err := e.esClient.IndexTender(ctx, tender); err != nil {
		return nil, err
	}

	// Refresh so the tender is queryable immediately
	e.esClient.Refresh(ctx)

	result.Duration = time.Since(start)
	slog.Info("ingestion complete",
		"tender_id", tenderID,
		"files_loaded", result.FilesLoaded,
		"total_chars", result.TotalChars,
		"duration", result.Duration,
		"errors", len(result.Errors))

	return result, nil
}

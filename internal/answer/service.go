// Package answer orchestrates a tender question: look up the tender's
// extracted documents, select and combine the relevant passages, and ask the
// LLM for an answer.
package answer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mfenderov/tenderlens/internal/selector"
	"github.com/mfenderov/tenderlens/pkg/models"
)

// Sentinel errors for the two empty-result cases callers must distinguish.
var (
	ErrTenderNotFound = errors.New("tender not found")
	ErrNoDocuments    = errors.New("tender has no extracted documents")
)

// Store looks tenders up by ID. Returns (nil, nil) when no tender exists.
type Store interface {
	GetTender(ctx context.Context, tenderID string) (*models.Tender, error)
}

// Generator produces an answer from a system instruction and a user prompt.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config holds the selection limits and prompt for the service.
type Config struct {
	MaxFilesToProcess int
	TopFilesToUse     int
	ContextSize       int
	SystemPrompt      string
}

// Service answers questions about stored tenders.
type Service struct {
	store Store
	llm   Generator
	cfg   Config
}

// NewService creates an answer service with explicit collaborators.
func NewService(store Store, llm Generator, cfg Config) *Service {
	return &Service{store: store, llm: llm, cfg: cfg}
}

// Ask answers a question about one tender. It returns ErrTenderNotFound or
// ErrNoDocuments for the two empty-result cases; any other error is an
// upstream failure the transport should map to a fallback message.
func (s *Service) Ask(ctx context.Context, tenderID, question string) (string, error) {
	tenderID = strings.TrimSpace(tenderID)
	question = strings.TrimSpace(question)
	if tenderID == "" {
		return "", fmt.Errorf("tender ID is required")
	}
	if question == "" {
		return "", fmt.Errorf("question is required")
	}

	slog.Info("answering question", "tender_id", tenderID, "question_chars", len(question))

	tender, err := s.store.GetTender(ctx, tenderID)
	if err != nil {
		return "", fmt.Errorf("tender lookup failed: %w", err)
	}
	if tender == nil {
		return "", fmt.Errorf("%w: %s", ErrTenderNotFound, tenderID)
	}
	if tender.FileTexts.IsEmpty() {
		return "", fmt.Errorf("%w: %s", ErrNoDocuments, tenderID)
	}

	combined := s.combine(tender.FileTexts)
	slog.Debug("combined context assembled", "tender_id", tenderID, "combined_chars", len(combined))

	userPrompt := fmt.Sprintf("Here is the tender document with ID %s:\n\n%s\n\nQuestion: %s",
		tenderID, combined, question)

	response, err := s.llm.Generate(ctx, s.cfg.SystemPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("llm generation failed: %w", err)
	}

	return response, nil
}

// combine resolves the dual storage shape at the boundary: pre-joined text is
// returned unchanged, a per-file mapping goes through the selector.
func (s *Service) combine(ft models.FileTexts) string {
	if ft.Files == nil {
		return ft.Combined
	}
	return selector.Combine(ft.Files, selector.Config{
		MaxFilesToProcess: s.cfg.MaxFilesToProcess,
		TopFilesToUse:     s.cfg.TopFilesToUse,
		ContextSize:       s.cfg.ContextSize,
	})
}

// Fallback maps an Ask error to the user-facing answer text. Upstream
// failures deliberately surface as a fixed apology instead of an error code:
// availability over transparency.
func Fallback(tenderID string, err error) string {
	switch {
	case errors.Is(err, ErrTenderNotFound):
		return fmt.Sprintf("No tender found with ID: %s. Please check the tender ID and try again.", tenderID)
	case errors.Is(err, ErrNoDocuments):
		return "No file texts found for this tender. The document may be empty or not properly processed."
	default:
		return "I'm sorry, I encountered an error while processing your question. Please try again later or with a more specific question."
	}
}

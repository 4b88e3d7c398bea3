package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mfenderov/tenderlens/internal/answer"
	"github.com/mfenderov/tenderlens/pkg/models"
)

// Config holds MCP server configuration.
type Config struct {
	Name    string
	Version string
}

// Asker answers questions about stored tenders.
type Asker interface {
	Ask(ctx context.Context, tenderID, question string) (string, error)
}

// TenderStore looks tenders up by ID.
type TenderStore interface {
	GetTender(ctx context.Context, tenderID string) (*models.Tender, error)
}

// Server wraps the MCP server with the tender Q&A tools.
type Server struct {
	mcpServer *server.MCPServer
	svc       Asker
	store     TenderStore
}

// tenderSummary is the get_tender tool result.
type tenderSummary struct {
	TenderID  string         `json:"tender_id"`
	Title     string         `json:"title,omitempty"`
	FileCount int            `json:"file_count"`
	FileSizes map[string]int `json:"file_sizes,omitempty"`
	Combined  bool           `json:"combined"` // true when stored as one pre-joined string
	TotalSize int            `json:"total_size"`
}

// NewServer creates a new MCP server with the tender tools.
func NewServer(config Config, svc Asker, store TenderStore) (*Server, error) {
	if svc == nil || store == nil {
		return nil, fmt.Errorf("answer service and tender store are required")
	}

	mcpServer := server.NewMCPServer(
		config.Name,
		config.Version,
		server.WithToolCapabilities(true),
	)

	s := &Server{
		mcpServer: mcpServer,
		svc:       svc,
		store:     store,
	}

	// Register ask_tender tool
	askTool := mcp.NewTool("ask_tender",
		mcp.WithDescription("Ask a natural-language question about a tender's documents. Returns an LLM-generated answer grounded in the tender's extracted text."),
		mcp.WithString("tender_id",
			mcp.Required(),
			mcp.Description("ID of the tender to query"),
		),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("Question about the tender"),
		),
	)
	mcpServer.AddTool(askTool, s.askHandler)

	// Register get_tender tool
	getTool := mcp.NewTool("get_tender",
		mcp.WithDescription("Get metadata about a stored tender: its documents and their sizes."),
		mcp.WithString("tender_id",
			mcp.Required(),
			mcp.Description("ID of the tender to look up"),
		),
	)
	mcpServer.AddTool(getTool, s.getTenderHandler)

	return s, nil
}

// askHandler handles the ask_tender tool call.
func (s *Server) askHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tenderID, err := req.RequireString("tender_id")
	if err != nil {
		return mcp.NewToolResultError("tender_id parameter is required"), nil
	}
	question, err := req.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question parameter is required"), nil
	}

	return mcp.NewToolResultText(s.handleAsk(ctx, tenderID, question)), nil
}

// handleAsk answers a question, mapping failures to the same availability
// first messages as the HTTP transport.
func (s *Server) handleAsk(ctx context.Context, tenderID, question string) string {
	ans, err := s.svc.Ask(ctx, tenderID, question)
	if err != nil {
		return answer.Fallback(tenderID, err)
	}
	return ans
}

// getTenderHandler handles the get_tender tool call.
func (s *Server) getTenderHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tenderID, err := req.RequireString("tender_id")
	if err != nil {
		return mcp.NewToolResultError("tender_id parameter is required"), nil
	}

	summary, err := s.handleGetTender(ctx, tenderID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := json.Marshal(summary)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal tender summary: %v", err)), nil
	}

	return mcp.NewToolResultText(string(result)), nil
}

// handleGetTender builds the metadata summary for a stored tender.
func (s *Server) handleGetTender(ctx context.Context, tenderID string) (*tenderSummary, error) {
	tender, err := s.store.GetTender(ctx, tenderID)
	if err != nil {
		return nil, fmt.Errorf("tender lookup failed: %w", err)
	}
	if tender == nil {
		return nil, fmt.Errorf("tender not found: %s", tenderID)
	}

	summary := &tenderSummary{
		TenderID:  tender.TenderID,
		Title:     tender.Title,
		FileCount: tender.FileTexts.FileCount(),
		Combined:  tender.FileTexts.Files == nil && tender.FileTexts.Combined != "",
		TotalSize: tender.FileTexts.TotalLength(),
	}
	if tender.FileTexts.Files != nil {
		summary.FileSizes = make(map[string]int, len(tender.FileTexts.Files))
		for name, text := range tender.FileTexts.Files {
			summary.FileSizes[name] = len(text)
		}
	}

	return summary, nil
}

// ServeStdio starts the MCP server using stdio transport.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

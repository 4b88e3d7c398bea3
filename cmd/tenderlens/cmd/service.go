package cmd

import (
	"fmt"

	"github.com/mfenderov/tenderlens/internal/answer"
	"github.com/mfenderov/tenderlens/internal/config"
	"github.com/mfenderov/tenderlens/internal/elasticsearch"
	"github.com/mfenderov/tenderlens/internal/llm"
)

// buildService wires the tender store, Gemini client, and answer service
// from the loaded configuration. Shared by the serve, mcp, and ask commands.
func buildService(cfg config.Config) (*answer.Service, *elasticsearch.Client, error) {
	esClient, err := elasticsearch.New(elasticsearch.Config{
		Addresses: cfg.Elasticsearch.Addresses,
		Index:     cfg.Elasticsearch.Index,
		Username:  cfg.Elasticsearch.Username,
		Password:  cfg.Elasticsearch.Password,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create ES client: %w", err)
	}

	llmClient, err := llm.New(llm.Config{
		APIKey:          cfg.LLM.APIKey,
		Model:           cfg.LLM.Model,
		BaseURL:         cfg.LLM.BaseURL,
		Temperature:     cfg.LLM.Temperature,
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		Timeout:         cfg.LLM.Timeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	svc := answer.NewService(esClient, llmClient, answer.Config{
		MaxFilesToProcess: cfg.Tender.MaxFilesToProcess,
		TopFilesToUse:     cfg.Tender.TopFilesToUse,
		ContextSize:       cfg.Tender.ContextSize,
		SystemPrompt:      cfg.Tender.SystemPrompt,
	})
	return svc, esClient, nil
}

package config

import "time"

// DefaultSystemPrompt instructs the model how to answer tender questions.
const DefaultSystemPrompt = `You are an expert tender document analyzer. Your role is to carefully analyze tender documents and provide accurate, detailed answers to questions about them.


Remember: Accuracy is crucial and answer should be short and summarised as these documents contain important business information.`

// Config holds all application configuration.
type Config struct {
	Elasticsearch Elasticsearch `mapstructure:"elasticsearch"`
	LLM           LLM           `mapstructure:"llm"`
	Tender        Tender        `mapstructure:"tender"`
	Server        Server        `mapstructure:"server"`
	Storage       Storage       `mapstructure:"storage"`
	MCP           MCP           `mapstructure:"mcp"`
}

// Elasticsearch holds ES connection configuration.
type Elasticsearch struct {
	Addresses []string `mapstructure:"addresses"`
	Index     string   `mapstructure:"index"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
}

// LLM holds Gemini API configuration.
type LLM struct {
	APIKey          string        `mapstructure:"api_key"`
	Model           string        `mapstructure:"model"`
	BaseURL         string        `mapstructure:"base_url"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxOutputTokens int           `mapstructure:"max_output_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// Tender holds the document selection tuning parameters.
type Tender struct {
	// MaxFilesToProcess is the file count above which only the largest
	// files are used in the whole-file fallback.
	MaxFilesToProcess int `mapstructure:"max_files_to_process"`
	// TopFilesToUse is the number of largest files (and the relevant-chunk
	// threshold) used when combining.
	TopFilesToUse int `mapstructure:"top_files_to_use"`
	// ContextSize is the number of characters kept before and after a
	// matched keyword when extracting criteria excerpts.
	ContextSize  int    `mapstructure:"context_size"`
	SystemPrompt string `mapstructure:"system_prompt"`
}

// Server holds HTTP API configuration.
type Server struct {
	Addr string `mapstructure:"addr"`
}

// Storage holds S3/MinIO configuration for extracted tender texts.
type Storage struct {
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// MCP holds MCP server configuration.
type MCP struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Elasticsearch: Elasticsearch{
			Addresses: []string{"http://localhost:9200"},
			Index:     "tenders",
		},
		LLM: LLM{
			Model:           "gemini-2.0-flash",
			Temperature:     0.7,
			MaxOutputTokens: 50000,
			Timeout:         2 * time.Minute,
		},
		Tender: Tender{
			MaxFilesToProcess: 5,
			TopFilesToUse:     5,
			ContextSize:       500,
			SystemPrompt:      DefaultSystemPrompt,
		},
		Server: Server{
			Addr: ":8000",
		},
		Storage: Storage{
			Endpoint:        "localhost:9000",
			Bucket:          "tenderlens",
			AccessKeyID:     "minioadmin",
			SecretAccessKey: "minioadmin",
			UseSSL:          false,
		},
		MCP: MCP{
			Name:    "tenderlens",
			Version: "1.0.0",
		},
	}
}

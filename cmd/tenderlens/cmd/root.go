package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/mfenderov/tenderlens/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	cfg     config.Config
)

// GetConfig returns the loaded configuration.
func GetConfig() config.Config {
	return cfg
}

var rootCmd = &cobra.Command{
	Use:   "tenderlens",
	Short: "tenderlens: question answering over tender documents",
	Long: `tenderlens answers natural-language questions about tender (procurement
bid) documents. Extracted document text is stored in Elasticsearch; the most
relevant passages are selected by qualification criteria and forwarded to the
Gemini API together with the question.

Commands:
  serve   Start the HTTP API
  mcp     Start the MCP server for tool-based access
  ask     Ask a one-shot question from the terminal
  ingest  Load extracted tender texts from S3 into Elasticsearch`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func initConfig() {
	// Start with defaults
	cfg = config.Defaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/tenderlens")
		viper.AddConfigPath(".")
	}

	// Environment variable overrides
	// TENDERLENS_ELASTICSEARCH_ADDRESSES -> elasticsearch.addresses
	viper.SetEnvPrefix("TENDERLENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Explicitly bind nested env vars
	viper.BindEnv("elasticsearch.addresses", "TENDERLENS_ELASTICSEARCH_ADDRESSES")
	viper.BindEnv("elasticsearch.index", "TENDERLENS_ELASTICSEARCH_INDEX")
	viper.BindEnv("elasticsearch.username", "TENDERLENS_ELASTICSEARCH_USERNAME")
	viper.BindEnv("elasticsearch.password", "TENDERLENS_ELASTICSEARCH_PASSWORD")
	viper.BindEnv("llm.api_key", "TENDERLENS_LLM_API_KEY")
	viper.BindEnv("llm.model", "TENDERLENS_LLM_MODEL")
	viper.BindEnv("llm.base_url", "TENDERLENS_LLM_BASE_URL")
	viper.BindEnv("llm.temperature", "TENDERLENS_LLM_TEMPERATURE")
	viper.BindEnv("llm.max_output_tokens", "TENDERLENS_LLM_MAX_OUTPUT_TOKENS")
	viper.BindEnv("tender.max_files_to_process", "TENDERLENS_TENDER_MAX_FILES_TO_PROCESS")
	viper.BindEnv("tender.top_files_to_use", "TENDERLENS_TENDER_TOP_FILES_TO_USE")
	viper.BindEnv("tender.context_size", "TENDERLENS_TENDER_CONTEXT_SIZE")
	viper.BindEnv("server.addr", "TENDERLENS_SERVER_ADDR")
	viper.BindEnv("storage.endpoint", "TENDERLENS_STORAGE_ENDPOINT")
	viper.BindEnv("storage.bucket", "TENDERLENS_STORAGE_BUCKET")
	viper.BindEnv("storage.access_key_id", "TENDERLENS_STORAGE_ACCESS_KEY_ID")
	viper.BindEnv("storage.secret_access_key", "TENDERLENS_STORAGE_SECRET_ACCESS_KEY")
	viper.BindEnv("mcp.name", "TENDERLENS_MCP_NAME")
	viper.BindEnv("mcp.version", "TENDERLENS_MCP_VERSION")

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("config file error", "error", err)
		}
		// No config file - use defaults + env vars
	}

	// Unmarshal into struct (merges config file with defaults)
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Warn("failed to parse config", "error", err)
	}

	// Handle special case: addresses as comma-separated string from env
	if addrs := os.Getenv("TENDERLENS_ELASTICSEARCH_ADDRESSES"); addrs != "" {
		cfg.Elasticsearch.Addresses = strings.Split(addrs, ",")
	}
}

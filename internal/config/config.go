// internal/config/config.go
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"arena/internal/debate"
	"arena/internal/knowledge"
	"arena/internal/models"
)

// EnvPrefix namespaces environment overrides, e.g. ARENA_DEBATE_ROUNDS
const EnvPrefix = "ARENA"

// Config is the complete arena configuration
type Config struct {
	Debate    DebateConfig    `mapstructure:"debate"`
	Models    ModelsConfig    `mapstructure:"models"`
	Ollama    OllamaConfig    `mapstructure:"ollama"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
	Budgets   BudgetsConfig   `mapstructure:"budgets"`
	Timeouts  TimeoutsConfig  `mapstructure:"timeouts"`
	Retry     RetryConfig     `mapstructure:"retry"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Webhook   WebhookConfig   `mapstructure:"webhook"`
	Server    ServerConfig    `mapstructure:"server"`
	Prompts   PromptsConfig   `mapstructure:"prompts"`
}

// DebateConfig sets the motion and shape of a run
type DebateConfig struct {
	Topic     string `mapstructure:"topic"`
	Rounds    int    `mapstructure:"rounds"`
	EnableRAG bool   `mapstructure:"enable_rag"`
}

// ModelsConfig chooses the backend and model per participant.
// Model identifiers may carry a backend prefix ("openai:gpt-4o-mini").
type ModelsConfig struct {
	// Backend serves model identifiers without a prefix: "ollama" or "openai"
	Backend string `mapstructure:"backend"`
	Default string `mapstructure:"default"`
	Summary string `mapstructure:"summary"`
	Judge   string `mapstructure:"judge"`
}

type OllamaConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

type OpenAIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// RetrievalConfig locates the knowledge base and tunes indexing
type RetrievalConfig struct {
	KBDirectory     string `mapstructure:"kb_directory"`
	VectorStorePath string `mapstructure:"vector_store_path"`
	EmbeddingModel  string `mapstructure:"embedding_model"`
	ChunkSize       int    `mapstructure:"chunk_size"`
	ChunkOverlap    int    `mapstructure:"chunk_overlap"`
	K               int    `mapstructure:"k"`
}

// BudgetsConfig caps output tokens per stage; 0 means unbounded
type BudgetsConfig struct {
	Opening  int `mapstructure:"opening"`
	Rebuttal int `mapstructure:"rebuttal"`
	Closing  int `mapstructure:"closing"`
	Judge    int `mapstructure:"judge"`
	Summary  int `mapstructure:"summary"`
}

type TimeoutsConfig struct {
	// TurnSeconds bounds each generation call (0 = no limit)
	TurnSeconds int `mapstructure:"turn_seconds"`
}

type RetryConfig struct {
	Attempts int `mapstructure:"attempts"`
	DelayMs  int `mapstructure:"delay_ms"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	// File receives JSON log lines; empty means stderr
	File string `mapstructure:"file"`
}

type WebhookConfig struct {
	URL string `mapstructure:"url"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type PromptsConfig struct {
	// File is an optional YAML prompt pack overriding the stock prompts
	File string `mapstructure:"file"`
}

// Default returns the stock configuration
func Default() *Config {
	settings := debate.DefaultSettings()
	return &Config{
		Debate: DebateConfig{
			Topic:     "Should nations prioritize sustainable use over economic exploitation of natural resources?",
			Rounds:    2,
			EnableRAG: true,
		},
		Models: ModelsConfig{
			Backend: BackendOllama,
			Default: "dolphin-phi:latest",
			Summary: "dolphin-phi:latest",
			Judge:   "dolphin-phi:latest",
		},
		Ollama: OllamaConfig{Endpoint: models.DefaultOllamaEndpoint},
		OpenAI: OpenAIConfig{BaseURL: models.DefaultOpenAIBaseURL},
		Retrieval: RetrievalConfig{
			KBDirectory:     "./knowledge",
			VectorStorePath: "./chroma_db",
			EmbeddingModel:  knowledge.DefaultEmbeddingModel,
			ChunkSize:       knowledge.DefaultChunkSize,
			ChunkOverlap:    knowledge.DefaultChunkOverlap,
			K:               knowledge.DefaultTopK,
		},
		Budgets: BudgetsConfig{
			Opening:  settings.Budgets.Opening,
			Rebuttal: settings.Budgets.Rebuttal,
			Closing:  settings.Budgets.Closing,
			Judge:    settings.Budgets.Judge,
			Summary:  settings.SummaryBudget,
		},
		Timeouts: TimeoutsConfig{TurnSeconds: 120},
		Retry:    RetryConfig{Attempts: 3, DelayMs: 1000},
		Logging:  LoggingConfig{Level: "info"},
		Server:   ServerConfig{Addr: ":3000"},
	}
}

// SetDefaults registers every key with viper so env overrides and
// Unmarshal see the full key set even without a config file
func SetDefaults() {
	d := Default()

	viper.SetDefault("debate.topic", d.Debate.Topic)
	viper.SetDefault("debate.rounds", d.Debate.Rounds)
	viper.SetDefault("debate.enable_rag", d.Debate.EnableRAG)

	viper.SetDefault("models.backend", d.Models.Backend)
	viper.SetDefault("models.default", d.Models.Default)
	viper.SetDefault("models.summary", d.Models.Summary)
	viper.SetDefault("models.judge", d.Models.Judge)

	viper.SetDefault("ollama.endpoint", d.Ollama.Endpoint)
	viper.SetDefault("openai.base_url", d.OpenAI.BaseURL)
	viper.SetDefault("openai.api_key", d.OpenAI.APIKey)

	viper.SetDefault("retrieval.kb_directory", d.Retrieval.KBDirectory)
	viper.SetDefault("retrieval.vector_store_path", d.Retrieval.VectorStorePath)
	viper.SetDefault("retrieval.embedding_model", d.Retrieval.EmbeddingModel)
	viper.SetDefault("retrieval.chunk_size", d.Retrieval.ChunkSize)
	viper.SetDefault("retrieval.chunk_overlap", d.Retrieval.ChunkOverlap)
	viper.SetDefault("retrieval.k", d.Retrieval.K)

	viper.SetDefault("budgets.opening", d.Budgets.Opening)
	viper.SetDefault("budgets.rebuttal", d.Budgets.Rebuttal)
	viper.SetDefault("budgets.closing", d.Budgets.Closing)
	viper.SetDefault("budgets.judge", d.Budgets.Judge)
	viper.SetDefault("budgets.summary", d.Budgets.Summary)

	viper.SetDefault("timeouts.turn_seconds", d.Timeouts.TurnSeconds)
	viper.SetDefault("retry.attempts", d.Retry.Attempts)
	viper.SetDefault("retry.delay_ms", d.Retry.DelayMs)

	viper.SetDefault("logging.level", d.Logging.Level)
	viper.SetDefault("logging.file", d.Logging.File)

	viper.SetDefault("webhook.url", d.Webhook.URL)
	viper.SetDefault("server.addr", d.Server.Addr)
	viper.SetDefault("prompts.file", d.Prompts.File)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// The conventional variable works too when no ARENA_ key is set
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "arena")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".arena"
	}
	return filepath.Join(home, ".config", "arena")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// TurnTimeout returns the per-call deadline
func (c *TimeoutsConfig) TurnTimeout() time.Duration {
	return time.Duration(c.TurnSeconds) * time.Second
}

// RetryPolicy converts the retry settings for the HTTP clients
func (c *RetryConfig) RetryPolicy() models.RetryConfig {
	policy := models.DefaultRetryConfig()
	policy.MaxAttempts = c.Attempts
	policy.BaseDelay = time.Duration(c.DelayMs) * time.Millisecond
	return policy
}

// IndexOptions converts the retrieval settings for the knowledge pipeline
func (c *RetrievalConfig) IndexOptions() knowledge.Options {
	return knowledge.Options{
		KBDirectory:    c.KBDirectory,
		StorePath:      c.VectorStorePath,
		EmbeddingModel: c.EmbeddingModel,
		ChunkSize:      c.ChunkSize,
		ChunkOverlap:   c.ChunkOverlap,
		K:              c.K,
	}
}

// Settings builds the debate settings from the stock prompts, the
// configured budgets, and an optional prompt pack
func (c *Config) Settings(pack *PromptPack) (*debate.Settings, error) {
	s := debate.DefaultSettings()
	s.Budgets = debate.StageBudgets{
		Opening:  c.Budgets.Opening,
		Rebuttal: c.Budgets.Rebuttal,
		Closing:  c.Budgets.Closing,
		Judge:    c.Budgets.Judge,
	}
	s.SummaryBudget = c.Budgets.Summary
	s.MaxEvidence = c.Retrieval.K

	pack.Apply(s)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

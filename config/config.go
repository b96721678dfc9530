package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Guest response specifics
	Qdrant    QdrantConfig
	Embedding EmbeddingConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Agent     AgentConfig
	Guardrail GuardrailConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Public API surface
	API APIConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type QdrantConfig struct {
	URL            string
	CollectionName string
	VectorSize     int
}

type EmbeddingConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type PostgresConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

// AgentConfig tunes the response pipeline.
type AgentConfig struct {
	RetrievalTopK                int
	RetrievalSimilarityThreshold float64
	DirectSubstitutionEnabled    bool
	DirectSubstitutionThreshold  float64
	EmbeddingCacheSize           int
	EmbeddingCacheTTLSeconds     int
	Temperature                  float64
	MaxTokens                    int
}

// GuardrailConfig controls PII and topic filtering behaviour.
type GuardrailConfig struct {
	// FailOpen allows requests through when the topic classifier is
	// unreachable. Blocking PII entities are never subject to this.
	FailOpen bool
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"` // Global timeout for entire fallback chain
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

type APIConfig struct {
	Keys               []string
	RateLimitPerMinute int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	// Scripts point at an explicit file.
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		viper.SetConfigFile(path)
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Qdrant
	cfg.Qdrant.URL = viper.GetString("qdrant.url")
	cfg.Qdrant.CollectionName = viper.GetString("qdrant.collection_name")
	cfg.Qdrant.VectorSize = viper.GetInt("qdrant.vector_size")
	if qdrantURL := viper.GetString("qdrant_url"); qdrantURL != "" {
		cfg.Qdrant.URL = qdrantURL
	}

	// Embeddings
	cfg.Embedding.APIKey = viper.GetString("embedding.api_key")
	cfg.Embedding.Model = viper.GetString("embedding.model")
	cfg.Embedding.BaseURL = viper.GetString("embedding.base_url")
	if embKey := viper.GetString("openai_api_key"); embKey != "" && cfg.Embedding.APIKey == "" {
		cfg.Embedding.APIKey = embKey
	}

	// Postgres
	cfg.Postgres.DSN = viper.GetString("postgres.dsn")
	if dsn := viper.GetString("postgres_dsn"); dsn != "" {
		cfg.Postgres.DSN = dsn
	}

	// Redis
	cfg.Redis.Addr = viper.GetString("redis.addr")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")
	cfg.Redis.TTLSeconds = viper.GetInt("redis.ttl_seconds")
	if addr := viper.GetString("redis_addr"); addr != "" {
		cfg.Redis.Addr = addr
	}

	// Agent tuning
	cfg.Agent.RetrievalTopK = viper.GetInt("agent.retrieval_top_k")
	cfg.Agent.RetrievalSimilarityThreshold = viper.GetFloat64("agent.retrieval_similarity_threshold")
	cfg.Agent.DirectSubstitutionEnabled = viper.GetBool("agent.direct_substitution_enabled")
	cfg.Agent.DirectSubstitutionThreshold = viper.GetFloat64("agent.direct_substitution_threshold")
	cfg.Agent.EmbeddingCacheSize = viper.GetInt("agent.embedding_cache_size")
	cfg.Agent.EmbeddingCacheTTLSeconds = viper.GetInt("agent.embedding_cache_ttl_seconds")
	cfg.Agent.Temperature = viper.GetFloat64("agent.temperature")
	cfg.Agent.MaxTokens = viper.GetInt("agent.max_tokens")

	// Guardrails
	cfg.Guardrail.FailOpen = viper.GetBool("guardrail.fail_open")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	// Load provider configurations
	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// Validate LLM config
	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, fmt.Errorf("invalid llm config: %w", err)
	}

	// Public API
	cfg.API.RateLimitPerMinute = viper.GetInt("api.rate_limit_per_minute")
	var keys []string
	if rawKeys := viper.GetString("api.keys"); rawKeys != "" {
		for _, k := range strings.Split(rawKeys, ",") {
			k = strings.TrimSpace(k)
			if k != "" {
				keys = append(keys, k)
			}
		}
	}
	cfg.API.Keys = keys

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("qdrant.collection_name", "templates")
	viper.SetDefault("qdrant.vector_size", 1536)
	viper.SetDefault("embedding.model", "text-embedding-3-small")
	viper.SetDefault("postgres.dsn", "postgres://localhost:5432/guest_response?sslmode=disable")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.ttl_seconds", 300)
	viper.SetDefault("api.rate_limit_per_minute", 60)

	// Agent defaults
	viper.SetDefault("agent.retrieval_top_k", 3)
	viper.SetDefault("agent.retrieval_similarity_threshold", 0.70)
	viper.SetDefault("agent.direct_substitution_enabled", true)
	viper.SetDefault("agent.direct_substitution_threshold", 0.85)
	viper.SetDefault("agent.embedding_cache_size", 1000)
	viper.SetDefault("agent.embedding_cache_ttl_seconds", 300)
	viper.SetDefault("agent.temperature", 0.7)
	viper.SetDefault("agent.max_tokens", 1000)

	// Guardrail defaults
	viper.SetDefault("guardrail.fail_open", true)

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	// Check if value is in format ${VAR_NAME}
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		// Try lowercase version
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		// Try direct os.Getenv as last resort
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		// Check required fields
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			// Check priority is valid
			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}

			// Check for duplicate priorities
			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true

			// Check API key is set (warning only)
			if provider.APIKey == "" {
				fmt.Printf("Warning: provider %s has no API key configured\n", provider.Name)
			}
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}

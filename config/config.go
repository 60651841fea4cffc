// Package config builds the explicit configuration handed to the parsers and
// the service. Values come from an optional YAML file, then .env, then the
// process environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Defaults for the model request settings
const (
	DefaultOpenAIBaseURL  = "https://api.openai.com/v1"
	DefaultTemperature    = 0.0
	DefaultSeed           = 42
	DefaultTimeoutSeconds = 120
)

// Provider identifies where the model is served from
type Provider string

// Known providers
const (
	ProviderLocal  Provider = "local"
	ProviderHosted Provider = "hosted"
)

// ModelConfig selects and configures the model endpoint.
// It is read once and never mutated after the parsers are built.
type ModelConfig struct {
	Provider       Provider `yaml:"provider"`
	Name           string   `yaml:"name"`
	BaseURL        string   `yaml:"base_url"`
	APIKey         string   `yaml:"api_key"`
	Temperature    float64  `yaml:"temperature"`
	Seed           int      `yaml:"seed"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// Timeout returns the HTTP timeout for one model call
func (m ModelConfig) Timeout() time.Duration {
	if m.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// Validate checks the model settings are usable
func (m ModelConfig) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("model name is required for the %s provider", m.Provider)
	}
	if m.BaseURL == "" {
		return fmt.Errorf("model base URL is required for the %s provider", m.Provider)
	}
	if m.Provider == ProviderHosted && m.APIKey == "" {
		return fmt.Errorf("API key is required for the hosted provider")
	}
	return nil
}

// KafkaConfig configures the optional event processor
type KafkaConfig struct {
	Brokers     []string `yaml:"brokers"`
	APIKey      string   `yaml:"api_key"`
	APISecret   string   `yaml:"api_secret"`
	InputTopic  string   `yaml:"input_topic"`
	OutputTopic string   `yaml:"output_topic"`
	GroupID     string   `yaml:"group_id"`
}

// Enabled reports whether brokers were configured
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// Config is the full service configuration
type Config struct {
	Model ModelConfig `yaml:"model"`
	Kafka KafkaConfig `yaml:"kafka"`
	Port  string      `yaml:"port"`
}

// GetEnvDefault is a convenience function for handling env vars
func GetEnvDefault(key, defVal string) string {
	val, ex := os.LookupEnv(key) // get the env var
	if !ex {                     // not found return default
		return defVal
	}
	return val // return value for env var
}

// GetEnvOrDefault returns environment variable value or default.
// Unlike GetEnvDefault an empty value counts as unset.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load reads the YAML file at path (if non-empty), loads .env if present and
// applies environment overrides.
func Load(path string) (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Config{
		Model: ModelConfig{
			Temperature:    DefaultTemperature,
			Seed:           DefaultSeed,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Kafka: KafkaConfig{
			InputTopic:  "vulnerability-summaries",
			OutputTopic: "vulnerability-extractions",
			GroupID:     "pdvd-llm-parser-worker",
		},
		Port: "3000",
	}

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// FromEnv is Load without a config file
func FromEnv() (Config, error) {
	return Load(GetEnvDefault("PARSER_CONFIG", ""))
}

func applyEnv(cfg *Config) {
	m := &cfg.Model

	// A local model wins when both its name and endpoint are known
	ollamaName := os.Getenv("OLLAMA_MODEL_NAME")
	ollamaURL := os.Getenv("OLLAMA_BASE_URL")
	switch {
	case ollamaName != "" && ollamaURL != "":
		m.Provider = ProviderLocal
		m.Name = ollamaName
		m.BaseURL = ollamaURL
		m.APIKey = GetEnvOrDefault("OLLAMA_API_KEY", m.APIKey)
	case m.Provider == ProviderLocal && m.Name != "" && m.BaseURL != "":
		// configured by file
	default:
		m.Provider = ProviderHosted
		m.Name = GetEnvOrDefault("OPENAI_MODEL_NAME", m.Name)
		m.APIKey = GetEnvOrDefault("OPENAI_API_KEY", m.APIKey)
		m.BaseURL = GetEnvOrDefault("OPENAI_BASE_URL", m.BaseURL)
		if m.BaseURL == "" {
			m.BaseURL = DefaultOpenAIBaseURL
		}
	}

	if v, err := strconv.Atoi(os.Getenv("LLM_TIMEOUT_SECONDS")); err == nil && v > 0 {
		m.TimeoutSeconds = v
	}

	cfg.Port = GetEnvOrDefault("MS_PORT", cfg.Port)

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = splitList(brokers)
	}
	cfg.Kafka.APIKey = GetEnvOrDefault("KAFKA_API_KEY", cfg.Kafka.APIKey)
	cfg.Kafka.APISecret = GetEnvOrDefault("KAFKA_API_SECRET", cfg.Kafka.APISecret)
	cfg.Kafka.InputTopic = GetEnvOrDefault("KAFKA_INPUT_TOPIC", cfg.Kafka.InputTopic)
	cfg.Kafka.OutputTopic = GetEnvOrDefault("KAFKA_OUTPUT_TOPIC", cfg.Kafka.OutputTopic)
	cfg.Kafka.GroupID = GetEnvOrDefault("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

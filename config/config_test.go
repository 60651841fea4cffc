package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearModelEnv(t *testing.T) {
	for _, key := range []string{
		"OLLAMA_MODEL_NAME", "OLLAMA_BASE_URL", "OLLAMA_API_KEY",
		"OPENAI_API_KEY", "OPENAI_MODEL_NAME", "OPENAI_BASE_URL",
		"LLM_TIMEOUT_SECONDS", "MS_PORT", "KAFKA_BROKERS",
		"KAFKA_API_KEY", "KAFKA_API_SECRET", "KAFKA_INPUT_TOPIC", "KAFKA_OUTPUT_TOPIC",
		"KAFKA_GROUP_ID",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadLocalModel(t *testing.T) {
	clearModelEnv(t)
	t.Setenv("OLLAMA_MODEL_NAME", "llama3")
	t.Setenv("OLLAMA_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("OPENAI_API_KEY", "sk-ignored")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ProviderLocal, cfg.Model.Provider)
	assert.Equal(t, "llama3", cfg.Model.Name)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Model.BaseURL)
	assert.Empty(t, cfg.Model.APIKey)
	assert.NoError(t, cfg.Model.Validate())
}

func TestLoadHostedModel(t *testing.T) {
	clearModelEnv(t)
	t.Setenv("OLLAMA_MODEL_NAME", "llama3") // no base URL, so not local
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL_NAME", "gpt-4o-mini")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ProviderHosted, cfg.Model.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model.Name)
	assert.Equal(t, DefaultOpenAIBaseURL, cfg.Model.BaseURL)
	assert.Equal(t, "sk-test", cfg.Model.APIKey)
	assert.Equal(t, 0.0, cfg.Model.Temperature)
	assert.Equal(t, 42, cfg.Model.Seed)
	assert.Equal(t, "3000", cfg.Port)
	assert.False(t, cfg.Kafka.Enabled())
	assert.NoError(t, cfg.Model.Validate())
}

func TestHostedRequiresKey(t *testing.T) {
	clearModelEnv(t)
	t.Setenv("OPENAI_MODEL_NAME", "gpt-4o-mini")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Error(t, cfg.Model.Validate())
}

func TestLoadFile(t *testing.T) {
	clearModelEnv(t)
	t.Setenv("MS_PORT", "8081")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
model:
  provider: local
  name: mistral
  base_url: http://ollama:11434/v1
  seed: 7
  timeout_seconds: 30
kafka:
  input_topic: summaries
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ProviderLocal, cfg.Model.Provider)
	assert.Equal(t, "mistral", cfg.Model.Name)
	assert.Equal(t, 7, cfg.Model.Seed)
	assert.Equal(t, 30*time.Second, cfg.Model.Timeout())
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "summaries", cfg.Kafka.InputTopic)
	assert.Equal(t, "vulnerability-extractions", cfg.Kafka.OutputTopic)
	assert.True(t, cfg.Kafka.Enabled())
}

func TestLoadMissingFile(t *testing.T) {
	clearModelEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTimeoutOverride(t *testing.T) {
	clearModelEnv(t)
	t.Setenv("LLM_TIMEOUT_SECONDS", "15")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.Model.Timeout())
}

func TestKafkaEnvOverrides(t *testing.T) {
	clearModelEnv(t)
	t.Setenv("KAFKA_INPUT_TOPIC", "in")
	t.Setenv("KAFKA_OUTPUT_TOPIC", "out")
	t.Setenv("KAFKA_GROUP_ID", "parser-blue")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "in", cfg.Kafka.InputTopic)
	assert.Equal(t, "out", cfg.Kafka.OutputTopic)
	assert.Equal(t, "parser-blue", cfg.Kafka.GroupID)

	t.Setenv("KAFKA_GROUP_ID", "")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "pdvd-llm-parser-worker", cfg.Kafka.GroupID)
}

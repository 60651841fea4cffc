package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ortelius/pdvd-llm-parser/config"
	"go.uber.org/zap"
)

// Client implements Model against an OpenAI compatible endpoint
type Client struct {
	cfg        config.ModelConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the given model configuration
func NewClient(cfg config.ModelConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		logger: logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	Seed           int            `json:"seed"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + path
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}
}

// Complete sends the system and user messages and returns the model's answer.
// The call is made once; failures are returned to the caller as-is.
func (c *Client) Complete(ctx context.Context, r Request) (string, error) {
	body := chatRequest{
		Model: c.cfg.Name,
		Messages: []chatMessage{
			{Role: "system", Content: r.SystemPrompt},
			{Role: "user", Content: r.Prompt},
		},
		Temperature:    c.cfg.Temperature,
		Seed:           c.cfg.Seed,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/chat/completions"), bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request to %s model %s: %w", c.cfg.Provider, c.cfg.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("model API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	c.logger.Debug("model call completed",
		zap.String("provider", string(c.cfg.Provider)),
		zap.String("model", response.Model))

	return response.Choices[0].Message.Content, nil
}

// Ping checks the endpoint is reachable by listing its models
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/models"), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("model endpoint %s unreachable: %w", c.cfg.BaseURL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model endpoint %s returned status %d", c.cfg.BaseURL, resp.StatusCode)
	}
	return nil
}

var _ Model = (*Client)(nil)

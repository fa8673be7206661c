package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OllamaProvider calls a self-hosted Ollama server through its
// non-streaming generate endpoint.
type OllamaProvider struct {
	URL    string
	Model  string
	client *http.Client
}

// NewOllamaProvider creates a provider for the Ollama server at url.
func NewOllamaProvider(url, model string) *OllamaProvider {
	return &OllamaProvider{
		URL:   url,
		Model: model,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Name returns the provider name used in log messages.
func (p *OllamaProvider) Name() string { return "ollama" }

// ollamaRequest is the body for the /api/generate endpoint.
type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

// ollamaOptions holds the generation parameters.
type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens"`
}

// ollamaResponse is the non-streaming response body.
type ollamaResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Generate asks the Ollama server for fashion advice and trims the
// answer to end on a complete sentence.
func (p *OllamaProvider) Generate(question, context string) (string, error) {
	prompt := fmt.Sprintf(
		"You are a fashion expert. Based on the fashion information provided, answer the user's question about fashion trends and styling.\n\nFashion Information:\n%s\n\nQuestion: %s\n\nAnswer:",
		clipRunes(context, 600), question)

	reqBody := ollamaRequest{
		Model:  p.Model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: 0.7,
			TopP:        0.9,
			MaxTokens:   600,
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimRight(p.URL, "/") + "/api/generate"
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama error (HTTP %d): %s", resp.StatusCode, string(respBody))
	}

	var result ollamaResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("ollama error: %s", result.Error)
	}

	return ensureCompleteResponse(strings.TrimSpace(result.Response), maxResponseRunes), nil
}

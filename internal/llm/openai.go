package llm

import (
	"fmt"
	"net/http"
	"time"
)

// OpenAIProvider calls any OpenAI-compatible chat completion endpoint
// (OpenRouter, Together, a self-hosted gateway). Endpoint and model come
// from configuration.
type OpenAIProvider struct {
	APIKey   string
	Endpoint string
	Model    string
	client   *http.Client
}

// NewOpenAIProvider creates a provider for an OpenAI-compatible endpoint.
func NewOpenAIProvider(apiKey, endpoint, model string) *OpenAIProvider {
	return &OpenAIProvider{
		APIKey:   apiKey,
		Endpoint: endpoint,
		Model:    model,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Name returns the provider name used in log messages.
func (p *OpenAIProvider) Name() string { return "openai-compatible" }

// Generate asks the configured endpoint for fashion advice and trims
// the answer to end on a complete sentence.
func (p *OpenAIProvider) Generate(question, context string) (string, error) {
	reqBody := chatRequest{
		Model: p.Model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a helpful fashion expert assistant. Provide concise, practical fashion advice based on the given context.",
			},
			{
				Role: "user",
				Content: fmt.Sprintf(
					"Fashion Context: %s\n\nQuestion: %s\n\nProvide helpful fashion advice:",
					clipRunes(context, 600), question),
			},
		},
		MaxTokens:   700,
		Temperature: 0.7,
	}

	text, err := postChat(p.client, p.Endpoint, p.APIKey, reqBody)
	if err != nil {
		return "", err
	}
	return ensureCompleteResponse(text, maxResponseRunes), nil
}

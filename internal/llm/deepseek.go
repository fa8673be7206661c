package llm

import (
	"fmt"
	"net/http"
	"time"
)

const (
	deepSeekEndpoint = "https://api.deepseek.com/v1/chat/completions"
	deepSeekModel    = "deepseek-chat"
)

// DeepSeekProvider calls the DeepSeek chat completion API. The system
// prompt carries a response format instruction chosen from the question
// so answers come back in a fixed sectioned structure, and the output
// is run through format validation before being returned.
type DeepSeekProvider struct {
	APIKey   string
	Endpoint string
	client   *http.Client
}

// NewDeepSeekProvider creates a DeepSeek provider with the given API key.
func NewDeepSeekProvider(apiKey string) *DeepSeekProvider {
	return &DeepSeekProvider{
		APIKey:   apiKey,
		Endpoint: deepSeekEndpoint,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Name returns the provider name used in log messages.
func (p *DeepSeekProvider) Name() string { return "deepseek" }

// Generate asks DeepSeek for a sectioned stylist answer.
func (p *DeepSeekProvider) Generate(question, context string) (string, error) {
	reqBody := chatRequest{
		Model: deepSeekModel,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a professional fashion expert assistant. " + responseFormat(question),
			},
			{
				Role: "user",
				Content: fmt.Sprintf(
					"Based on this fashion information: %s\n\nQuestion: %s\n\nProvide fashion advice following the exact format specified:",
					clipRunes(context, 800), question),
			},
		},
		MaxTokens:   800,
		Temperature: 0.7,
		TopP:        0.9,
		// Cut generation before the model drifts into extra sections.
		Stop: []string{"**Additional", "**Note:", "**Remember:", "\n\n---", "User:"},
	}

	text, err := postChat(p.client, p.Endpoint, p.APIKey, reqBody)
	if err != nil {
		return "", err
	}
	return validateResponseFormat(text), nil
}

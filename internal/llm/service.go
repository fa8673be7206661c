// Package llm generates stylist answers for user questions. A chain of
// hosted model providers is tried in priority order, and a built-in
// fashion knowledge base serves as the final fallback so the chain
// always produces a response.
package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"fashionrag/internal/config"
	"fashionrag/internal/errlog"
)

// minResponseRunes is the length below which a provider response is
// treated as a failure and the next provider is tried.
const minResponseRunes = 20

// Service defines the interface for generating a stylist answer from a
// user question and retrieved context.
type Service interface {
	Generate(question, context string) (string, error)
}

// Provider is a single LLM backend in the fallback chain.
type Provider interface {
	Name() string
	Generate(question, context string) (string, error)
}

// Chain tries each configured provider in order and falls back to the
// built-in knowledge base when none of them yields a usable answer.
type Chain struct {
	providers []Provider
}

// NewChain builds the provider chain from configuration. Providers
// without credentials (or, for Ollama, without a server URL) are left
// out entirely.
func NewChain(cfg config.LLMConfig) *Chain {
	var providers []Provider
	if cfg.DeepSeek.APIKey != "" {
		providers = append(providers, NewDeepSeekProvider(cfg.DeepSeek.APIKey))
	}
	if cfg.HuggingFace.APIKey != "" {
		providers = append(providers, NewHuggingFaceProvider(cfg.HuggingFace.APIKey))
	}
	if cfg.OpenAI.APIKey != "" {
		providers = append(providers, NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Endpoint, cfg.OpenAI.Model))
	}
	if cfg.Ollama.URL != "" {
		providers = append(providers, NewOllamaProvider(cfg.Ollama.URL, cfg.Ollama.Model))
	}
	return &Chain{providers: providers}
}

// Generate walks the provider chain. A provider error or a response of
// minResponseRunes or fewer characters moves on to the next provider.
// The knowledge base answers when every provider has been exhausted, so
// the returned error is always nil.
func (c *Chain) Generate(question, context string) (string, error) {
	for _, p := range c.providers {
		answer, err := p.Generate(question, context)
		if err != nil {
			log.Printf("[LLM] Provider %s failed: %v", p.Name(), err)
			errlog.Logf("[LLM] Provider %s failed: %v", p.Name(), err)
			continue
		}
		if utf8.RuneCountInString(strings.TrimSpace(answer)) <= minResponseRunes {
			continue
		}
		log.Printf("[LLM] Response generated by %s", p.Name())
		return answer, nil
	}

	log.Printf("[LLM] Using built-in stylist knowledge")
	return knowledgeResponse(question, context), nil
}

// chatRequest is the request body for OpenAI-compatible chat completion
// APIs. TopP and Stop are omitted when unset so the same type serves
// providers with different parameter surfaces.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
}

// chatMessage represents a single message in a chat completion request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the response body from a chat completion API.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

// chatChoice represents a single choice in the chat completion response.
type chatChoice struct {
	Message chatMessage `json:"message"`
}

// apiError represents an error returned by the API.
type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// postChat sends a chat completion request to url and returns the text
// of the first choice.
func postChat(client *http.Client, url, apiKey string, reqBody chatRequest) (string, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp chatResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != nil {
			return "", fmt.Errorf("chat API error (HTTP %d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return "", fmt.Errorf("chat API error (HTTP %d): %s", resp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("chat API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("chat API returned no choices")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

// clipRunes returns s truncated to at most n runes.
func clipRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

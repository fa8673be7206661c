package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

const hfInferenceBaseURL = "https://api-inference.huggingface.co/models/"

// hfCandidateModels are tried in order until one produces a usable
// generation. All of them sit on the free inference tier.
var hfCandidateModels = []string{
	"microsoft/DialoGPT-medium",
	"google/flan-t5-base",
	"facebook/blenderbot-400M-distill",
}

// hfPromptMarker closes the prompt; models that echo the prompt back
// have everything up to the marker stripped from the generation.
const hfPromptMarker = "Fashion Expert Response:"

// HuggingFaceProvider calls the Hugging Face Inference API, trying a
// list of candidate models in order.
type HuggingFaceProvider struct {
	APIKey  string
	BaseURL string
	Models  []string
	client  *http.Client
}

// NewHuggingFaceProvider creates a Hugging Face provider with the given API key.
func NewHuggingFaceProvider(apiKey string) *HuggingFaceProvider {
	return &HuggingFaceProvider{
		APIKey:  apiKey,
		BaseURL: hfInferenceBaseURL,
		Models:  hfCandidateModels,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the provider name used in log messages.
func (p *HuggingFaceProvider) Name() string { return "huggingface" }

// hfRequest is the Inference API request body.
type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

// hfParameters holds the text generation parameters.
type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	DoSample       bool    `json:"do_sample"`
	ReturnFullText bool    `json:"return_full_text"`
}

// hfGeneration is one element of the Inference API response array.
type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

// Generate tries each candidate model until one returns a usable
// generation. Model failures are logged and skipped.
func (p *HuggingFaceProvider) Generate(question, context string) (string, error) {
	prompt := fmt.Sprintf(
		"You are a fashion expert. Based on the following fashion information, provide helpful advice about the user's question.\n\nFashion Context:\n%s\n\nUser Question: %s\n\n%s",
		clipRunes(context, 800), question, hfPromptMarker)

	var lastErr error
	for _, model := range p.Models {
		text, err := p.queryModel(model, prompt)
		if err != nil {
			log.Printf("[LLM] Hugging Face model %s failed: %v", model, err)
			lastErr = err
			continue
		}
		if utf8.RuneCountInString(text) <= minResponseRunes {
			continue
		}
		// Some models echo the prompt before the generation.
		if idx := strings.LastIndex(text, hfPromptMarker); idx >= 0 {
			text = strings.TrimSpace(text[idx+len(hfPromptMarker):])
		}
		return text, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("all Hugging Face models failed: %w", lastErr)
	}
	return "", fmt.Errorf("no Hugging Face model produced a usable response")
}

// queryModel sends the prompt to a single hosted model.
func (p *HuggingFaceProvider) queryModel(model, prompt string) (string, error) {
	reqBody := hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens:   400,
			Temperature:    0.7,
			DoSample:       true,
			ReturnFullText: false,
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, p.BaseURL+model, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference API error (HTTP %d): %s", resp.StatusCode, string(respBody))
	}

	var generations []hfGeneration
	if err := json.Unmarshal(respBody, &generations); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(generations) == 0 {
		return "", fmt.Errorf("inference API returned no generations")
	}

	return strings.TrimSpace(generations[0].GeneratedText), nil
}

package llm

import (
	"errors"
	"strings"
	"testing"

	"fashionrag/internal/config"
)

// stubProvider is a chain test double with a fixed answer or error.
type stubProvider struct {
	name   string
	answer string
	err    error
	calls  int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Generate(question, context string) (string, error) {
	s.calls++
	return s.answer, s.err
}

func TestChain_FirstProviderWins(t *testing.T) {
	first := &stubProvider{name: "first", answer: "A complete answer with plenty of detail."}
	second := &stubProvider{name: "second", answer: "should never be reached"}
	chain := &Chain{providers: []Provider{first, second}}

	answer, err := chain.Generate("q", "ctx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != first.answer {
		t.Errorf("expected first provider answer, got %q", answer)
	}
	if second.calls != 0 {
		t.Errorf("second provider should not be called, got %d calls", second.calls)
	}
}

func TestChain_SkipsFailingProvider(t *testing.T) {
	first := &stubProvider{name: "first", err: errors.New("api down")}
	second := &stubProvider{name: "second", answer: "Fallback provider delivered this detailed answer."}
	chain := &Chain{providers: []Provider{first, second}}

	answer, err := chain.Generate("q", "ctx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != second.answer {
		t.Errorf("expected second provider answer, got %q", answer)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Errorf("expected one call each, got %d and %d", first.calls, second.calls)
	}
}

func TestChain_SkipsShortResponse(t *testing.T) {
	// Exactly 20 runes is still too short; 21 is usable.
	first := &stubProvider{name: "first", answer: strings.Repeat("a", 20)}
	second := &stubProvider{name: "second", answer: strings.Repeat("b", 21)}
	chain := &Chain{providers: []Provider{first, second}}

	answer, err := chain.Generate("q", "ctx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != second.answer {
		t.Errorf("expected second provider answer, got %q", answer)
	}
}

func TestChain_ShortAfterTrimIsSkipped(t *testing.T) {
	padded := &stubProvider{name: "padded", answer: "   " + strings.Repeat("x", 20) + "  \n"}
	chain := &Chain{providers: []Provider{padded}}

	answer, err := chain.Generate("what should I wear in winter", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(answer, "**Winter Style Essentials:**") {
		t.Errorf("expected knowledge fallback, got %q", answer)
	}
}

func TestChain_FallsBackToKnowledge(t *testing.T) {
	broken := &stubProvider{name: "broken", err: errors.New("no quota")}
	chain := &Chain{providers: []Provider{broken}}

	answer, err := chain.Generate("what should I wear in winter", "")
	if err != nil {
		t.Fatalf("knowledge fallback should not fail: %v", err)
	}
	if !strings.Contains(answer, "**Winter Style Essentials:**") {
		t.Errorf("expected winter knowledge section, got %q", answer)
	}
}

func TestChain_EmptyChainStillAnswers(t *testing.T) {
	chain := NewChain(config.LLMConfig{})

	answer, err := chain.Generate("how do I coordinate colors", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(answer) == "" {
		t.Fatal("expected a non-empty answer from the knowledge base")
	}
	if !strings.Contains(answer, "**Color Theory Made Simple:**") {
		t.Errorf("expected color coordination section, got %q", answer)
	}
}

func TestNewChain_ProviderSelection(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LLMConfig
		want []string
	}{
		{
			name: "no providers configured",
			cfg:  config.LLMConfig{},
			want: nil,
		},
		{
			name: "deepseek only",
			cfg: config.LLMConfig{
				DeepSeek: config.DeepSeekConfig{APIKey: "ds"},
			},
			want: []string{"deepseek"},
		},
		{
			name: "all providers in priority order",
			cfg: config.LLMConfig{
				DeepSeek:    config.DeepSeekConfig{APIKey: "ds"},
				HuggingFace: config.HuggingFaceConfig{APIKey: "hf"},
				OpenAI:      config.OpenAIConfig{APIKey: "oa", Endpoint: "https://example.com/v1/chat/completions", Model: "gpt-3.5-turbo"},
				Ollama:      config.OllamaConfig{URL: "http://localhost:11434", Model: "llama2:7b-chat"},
			},
			want: []string{"deepseek", "huggingface", "openai-compatible", "ollama"},
		},
		{
			name: "ollama without url is left out",
			cfg: config.LLMConfig{
				DeepSeek: config.DeepSeekConfig{APIKey: "ds"},
				Ollama:   config.OllamaConfig{Model: "llama2:7b-chat"},
			},
			want: []string{"deepseek"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := NewChain(tt.cfg)
			var got []string
			for _, p := range chain.providers {
				got = append(got, p.Name())
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected providers %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("provider %d: expected %s, got %s", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestClipRunes(t *testing.T) {
	if got := clipRunes("hello", 10); got != "hello" {
		t.Errorf("expected hello, got %q", got)
	}
	if got := clipRunes("hello", 3); got != "hel" {
		t.Errorf("expected hel, got %q", got)
	}
	if got := clipRunes("héllo", 2); got != "hé" {
		t.Errorf("expected hé, got %q", got)
	}
}

package query

import (
	"fmt"
	"strings"
	"testing"

	"fashionrag/internal/vectorstore"
)

// --- Mock implementations ---

type mockSearcher struct {
	queryFn func(text string, k int) ([]vectorstore.QueryResult, error)
}

func (m *mockSearcher) Query(text string, k int) ([]vectorstore.QueryResult, error) {
	return m.queryFn(text, k)
}

type mockLLMService struct {
	calls      int
	generateFn func(question, context string) (string, error)
}

func (m *mockLLMService) Generate(question, context string) (string, error) {
	m.calls++
	return m.generateFn(question, context)
}

// --- Tests ---

func TestAnswer_JoinsTopTwoDocuments(t *testing.T) {
	vs := &mockSearcher{
		queryFn: func(text string, k int) ([]vectorstore.QueryResult, error) {
			return []vectorstore.QueryResult{
				{Document: "Blazers anchor a capsule wardrobe."},
				{Document: "Neutral tones mix without effort."},
				{Document: "Boots carry an outfit through winter."},
			}, nil
		},
	}
	var capturedQuestion, capturedContext string
	ls := &mockLLMService{
		generateFn: func(question, context string) (string, error) {
			capturedQuestion = question
			capturedContext = context
			return "Start with a structured blazer.", nil
		},
	}

	qe := NewQueryEngine(vs, ls)
	answer, err := qe.Answer("What should I wear to work?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if answer != "Start with a structured blazer." {
		t.Errorf("unexpected answer: %q", answer)
	}
	if capturedQuestion != "What should I wear to work?" {
		t.Errorf("unexpected question passed to LLM: %q", capturedQuestion)
	}
	want := "Blazers anchor a capsule wardrobe.\nNeutral tones mix without effort."
	if capturedContext != want {
		t.Errorf("expected context %q, got %q", want, capturedContext)
	}
}

func TestAnswer_SingleDocumentContext(t *testing.T) {
	vs := &mockSearcher{
		queryFn: func(text string, k int) ([]vectorstore.QueryResult, error) {
			return []vectorstore.QueryResult{
				{Document: "Layer knits over collared shirts."},
			}, nil
		},
	}
	var capturedContext string
	ls := &mockLLMService{
		generateFn: func(question, context string) (string, error) {
			capturedContext = context
			return "Layering works well in autumn.", nil
		},
	}

	qe := NewQueryEngine(vs, ls)
	if _, err := qe.Answer("autumn layering"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if capturedContext != "Layer knits over collared shirts." {
		t.Errorf("unexpected context: %q", capturedContext)
	}
}

func TestAnswer_GeneralAdviceWhenStoreEmpty(t *testing.T) {
	vs := &mockSearcher{
		queryFn: func(text string, k int) ([]vectorstore.QueryResult, error) {
			return nil, nil
		},
	}
	var capturedContext string
	ls := &mockLLMService{
		generateFn: func(question, context string) (string, error) {
			capturedContext = context
			return "Invest in timeless staples.", nil
		},
	}

	qe := NewQueryEngine(vs, ls)
	answer, err := qe.Answer("capsule wardrobe basics")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if answer != "Invest in timeless staples." {
		t.Errorf("unexpected answer: %q", answer)
	}
	want := "General fashion advice: Focus on timeless pieces, proper fit, and personal style."
	if capturedContext != want {
		t.Errorf("expected general advice context %q, got %q", want, capturedContext)
	}
}

func TestAnswer_GeneralAdviceOnRetrievalError(t *testing.T) {
	vs := &mockSearcher{
		queryFn: func(text string, k int) ([]vectorstore.QueryResult, error) {
			return nil, fmt.Errorf("index unavailable")
		},
	}
	var capturedContext string
	ls := &mockLLMService{
		generateFn: func(question, context string) (string, error) {
			capturedContext = context
			return "Fit matters more than labels.", nil
		},
	}

	qe := NewQueryEngine(vs, ls)
	answer, err := qe.Answer("denim fit guide")
	if err != nil {
		t.Fatalf("expected retrieval errors to be absorbed, got: %v", err)
	}

	if answer != "Fit matters more than labels." {
		t.Errorf("unexpected answer: %q", answer)
	}
	if capturedContext != generalAdviceContext {
		t.Errorf("expected general advice context, got %q", capturedContext)
	}
}

func TestAnswer_EmptyQuestion(t *testing.T) {
	vs := &mockSearcher{
		queryFn: func(text string, k int) ([]vectorstore.QueryResult, error) {
			t.Fatal("store should not be queried for an empty question")
			return nil, nil
		},
	}
	ls := &mockLLMService{
		generateFn: func(question, context string) (string, error) {
			return "answer", nil
		},
	}

	qe := NewQueryEngine(vs, ls)
	_, err := qe.Answer("   ")
	if err == nil {
		t.Fatal("expected error for blank question")
	}
	if ls.calls != 0 {
		t.Errorf("expected no LLM calls, got %d", ls.calls)
	}
}

func TestAnswer_TrimsQuestion(t *testing.T) {
	vs := &mockSearcher{
		queryFn: func(text string, k int) ([]vectorstore.QueryResult, error) {
			if text != "What goes with white sneakers?" {
				t.Errorf("expected trimmed question in store query, got %q", text)
			}
			return nil, nil
		},
	}
	var capturedQuestion string
	ls := &mockLLMService{
		generateFn: func(question, context string) (string, error) {
			capturedQuestion = question
			return "Almost everything casual.", nil
		},
	}

	qe := NewQueryEngine(vs, ls)
	if _, err := qe.Answer("  What goes with white sneakers?  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if capturedQuestion != "What goes with white sneakers?" {
		t.Errorf("expected trimmed question, got %q", capturedQuestion)
	}
}

func TestAnswer_RequestsThreeMatches(t *testing.T) {
	var capturedK int
	vs := &mockSearcher{
		queryFn: func(text string, k int) ([]vectorstore.QueryResult, error) {
			capturedK = k
			return nil, nil
		},
	}
	ls := &mockLLMService{
		generateFn: func(question, context string) (string, error) {
			return "answer", nil
		},
	}

	qe := NewQueryEngine(vs, ls)
	if _, err := qe.Answer("test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if capturedK != 3 {
		t.Errorf("expected 3 matches requested, got %d", capturedK)
	}
}

func TestAnswer_LLMError(t *testing.T) {
	vs := &mockSearcher{
		queryFn: func(text string, k int) ([]vectorstore.QueryResult, error) {
			return []vectorstore.QueryResult{{Document: "some text"}}, nil
		},
	}
	ls := &mockLLMService{
		generateFn: func(question, context string) (string, error) {
			return "", fmt.Errorf("LLM unavailable")
		},
	}

	qe := NewQueryEngine(vs, ls)
	_, err := qe.Answer("test")
	if err == nil {
		t.Fatal("expected error from LLM failure")
	}
	if !strings.Contains(err.Error(), "generate answer") {
		t.Errorf("expected LLM error, got: %v", err)
	}
}

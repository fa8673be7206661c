// Package query implements the RAG query engine that coordinates
// document retrieval and LLM response generation.
package query

import (
	"fmt"
	"log"
	"strings"

	"fashionrag/internal/llm"
	"fashionrag/internal/vectorstore"
)

const (
	// retrieveK is how many matches are requested from the store per question.
	retrieveK = 3
	// contextDocs is how many of those matches are joined into the LLM context.
	contextDocs = 2
)

// generalAdviceContext substitutes for retrieved context when the store
// has nothing relevant, so the chain always has material to work from.
const generalAdviceContext = "General fashion advice: Focus on timeless pieces, proper fit, and personal style."

// DocumentSearcher is the slice of the document store the engine depends on.
type DocumentSearcher interface {
	Query(text string, k int) ([]vectorstore.QueryResult, error)
}

// QueryEngine orchestrates the RAG query flow: retrieve matching
// documents, assemble context, generate an answer through the LLM chain.
type QueryEngine struct {
	store      DocumentSearcher
	llmService llm.Service
}

// NewQueryEngine creates a new QueryEngine with the given dependencies.
func NewQueryEngine(store DocumentSearcher, llmService llm.Service) *QueryEngine {
	return &QueryEngine{
		store:      store,
		llmService: llmService,
	}
}

// Answer executes the full RAG pipeline for one question:
// 1. Search the document store for relevant articles
// 2. Join the best matches into a context block
// 3. Call the LLM chain to generate a stylist answer
func (qe *QueryEngine) Answer(question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("question is empty")
	}

	context := qe.buildContext(question)

	answer, err := qe.llmService.Generate(question, context)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}
	return answer, nil
}

// buildContext retrieves the closest documents and joins the top two with
// a newline, keeping the context small enough for provider token limits.
// Retrieval trouble and an empty store both fall back to canned general
// advice so an answer can still be generated.
func (qe *QueryEngine) buildContext(question string) string {
	results, err := qe.store.Query(question, retrieveK)
	if err != nil {
		log.Printf("[Query] retrieval failed: %v", err)
		return generalAdviceContext
	}
	if len(results) == 0 {
		log.Printf("[Query] no matching documents, using general advice context")
		return generalAdviceContext
	}
	log.Printf("[Query] retrieval k=%d results=%d", retrieveK, len(results))

	n := contextDocs
	if len(results) < n {
		n = len(results)
	}
	docs := make([]string, 0, n)
	for _, r := range results[:n] {
		docs = append(docs, r.Document)
	}
	return strings.Join(docs, "\n")
}

// Package handler provides the App struct that serves as the API facade
// for the fashion RAG service, delegating to internal service components.
package handler

import (
	"fashionrag/internal/query"
	"fashionrag/internal/ratelimit"
	"fashionrag/internal/vectorstore"
)

// App binds the backend services the HTTP handlers work against.
type App struct {
	store       *vectorstore.DocumentStore
	queryEngine *query.QueryEngine
	limiter     *ratelimit.Limiter
}

// NewApp creates a new App with all service dependencies injected.
func NewApp(store *vectorstore.DocumentStore, qe *query.QueryEngine, rl *ratelimit.Limiter) *App {
	return &App{
		store:       store,
		queryEngine: qe,
		limiter:     rl,
	}
}

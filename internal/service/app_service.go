// Package service provides the application service layer that encapsulates
// initialization and lifecycle management for the fashion RAG service.
// The console entrypoint wires components itself; this layer exists so the
// Windows service wrapper can initialize, run, and stop the application
// through one object.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fashionrag/internal/config"
	"fashionrag/internal/db"
	"fashionrag/internal/embedding"
	"fashionrag/internal/errlog"
	"fashionrag/internal/llm"
	"fashionrag/internal/query"
	"fashionrag/internal/ratelimit"
	"fashionrag/internal/vectorstore"
)

// AppService encapsulates the entire application initialization and lifecycle.
type AppService struct {
	server        *http.Server
	configManager *config.ConfigManager
	database      *sql.DB
	store         *vectorstore.DocumentStore
	queryEngine   *query.QueryEngine
	limiter       *ratelimit.Limiter
	cfg           *config.Config
	dataDir       string
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// Initialize sets up all services and prepares the application for running.
// The dataDir parameter specifies the root data directory.
func (as *AppService) Initialize(dataDir string) error {
	as.dataDir = dataDir

	// 1. Ensure data directory exists
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// 2. Initialize ConfigManager and load config
	configPath := filepath.Join(dataDir, "config.json")
	cm, err := config.NewConfigManager(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config manager: %w", err)
	}
	if err := cm.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	as.configManager = cm
	as.cfg = cm.Get()

	// 3. Error log
	if err := errlog.Init(); err != nil {
		log.Printf("[Service] error log unavailable: %v", err)
	}

	// 4. Initialize database
	database, err := db.InitDB(ResolveDataPath(dataDir, as.cfg.DB.Path))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	as.database = database

	// 5. Document store with the configured encoder (restores the snapshot)
	snapshotPath := ResolveDataPath(dataDir, as.cfg.Store.BackupPath)
	as.store = vectorstore.NewDocumentStore(NewEncoder(as.cfg), snapshotPath, as.cfg.Store.MaxDocuments)

	// 6. Query pipeline and rate limiter
	as.limiter = ratelimit.NewLimiter(database, as.cfg.RateLimit.MaxQueries,
		time.Duration(as.cfg.RateLimit.WindowHours)*time.Hour)
	as.queryEngine = query.NewQueryEngine(as.store, llm.NewChain(as.cfg.LLM))

	// 7. Create HTTP server
	as.server = &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", as.cfg.Server.Port),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return nil
}

// NewEncoder selects the embedding service for the configured deployment.
// A configured endpoint selects the remote API encoder; otherwise the
// built-in lexical encoder keeps the service fully offline.
func NewEncoder(cfg *config.Config) embedding.EmbeddingService {
	if cfg.Embedding.Endpoint != "" {
		log.Printf("[Service] Using API embedding service: %s", cfg.Embedding.Endpoint)
		return embedding.NewAPIEmbeddingService(cfg.Embedding.Endpoint, cfg.Embedding.APIKey,
			cfg.Embedding.ModelName, cfg.Embedding.Dimension)
	}
	log.Printf("[Service] Using built-in lexical encoder")
	return embedding.NewLexicalEncoder()
}

// ResolveDataPath maps a configured path onto the active data directory.
// Configured paths default to the ./data layout; when the service runs with
// a different data root the same file names are rebased onto it.
func ResolveDataPath(dataDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	rel := filepath.ToSlash(p)
	rel = strings.TrimPrefix(rel, "./")
	rel = strings.TrimPrefix(rel, "data/")
	return filepath.Join(dataDir, filepath.FromSlash(rel))
}

// Run starts the HTTP server and blocks until the context is cancelled.
// Implements graceful shutdown when ctx is done.
func (as *AppService) Run(ctx context.Context) error {
	if as.server == nil {
		return fmt.Errorf("server not initialized - call Initialize first")
	}

	// Start periodic rate limit cleanup
	as.cleanupStop = make(chan struct{})
	go as.runRateLimitCleanup(ctx)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Fashion RAG API starting on http://%s", as.server.Addr)
		errCh <- as.server.ListenAndServe()
	}()

	// Wait for context cancellation or server error
	select {
	case <-ctx.Done():
		log.Println("Received shutdown signal, shutting down gracefully...")
		return as.Shutdown(10 * time.Second)
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}

// runRateLimitCleanup removes stale rate limit rows once a day.
func (as *AppService) runRateLimitCleanup(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-as.cleanupStop:
			return
		case <-ticker.C:
			if n, err := as.limiter.Cleanup(); err == nil && n > 0 {
				log.Printf("Cleaned %d stale rate limit entries", n)
			}
		}
	}
}

// Shutdown gracefully shuts down the HTTP server and cleans up resources.
func (as *AppService) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop rate limit cleanup. The service control path and Run's context
	// path can both land here, so the close must only happen once.
	if as.cleanupStop != nil {
		as.stopOnce.Do(func() { close(as.cleanupStop) })
	}

	// Shutdown HTTP server
	if as.server != nil {
		if err := as.server.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}

	// Close database
	if as.database != nil {
		if err := as.database.Close(); err != nil {
			log.Printf("Database close error: %v", err)
		}
	}

	errlog.Close()
	log.Println("Server stopped")
	return nil
}

// GetServer returns the HTTP server instance for handler registration.
func (as *AppService) GetServer() *http.Server {
	return as.server
}

// GetDatabase returns the database connection.
func (as *AppService) GetDatabase() *sql.DB {
	return as.database
}

// GetConfigManager returns the configuration manager.
func (as *AppService) GetConfigManager() *config.ConfigManager {
	return as.configManager
}

// GetConfig returns the current configuration.
func (as *AppService) GetConfig() *config.Config {
	return as.cfg
}

// GetDataDir returns the data directory path.
func (as *AppService) GetDataDir() string {
	return as.dataDir
}

// GetStore returns the document store.
func (as *AppService) GetStore() *vectorstore.DocumentStore {
	return as.store
}

// GetQueryEngine returns the query engine.
func (as *AppService) GetQueryEngine() *query.QueryEngine {
	return as.queryEngine
}

// GetLimiter returns the query quota limiter.
func (as *AppService) GetLimiter() *ratelimit.Limiter {
	return as.limiter
}

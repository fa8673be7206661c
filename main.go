package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fashionrag/internal/backup"
	"fashionrag/internal/config"
	"fashionrag/internal/crawler"
	"fashionrag/internal/db"
	"fashionrag/internal/errlog"
	"fashionrag/internal/handler"
	"fashionrag/internal/llm"
	"fashionrag/internal/query"
	"fashionrag/internal/ratelimit"
	"fashionrag/internal/router"
	"fashionrag/internal/service"
	"fashionrag/internal/vectorstore"
)

// Windows service identity
const (
	serviceName = "FashionRAG"
	displayName = "Fashion RAG API Service"
	description = "Retrieval-augmented fashion advice API with a bounded document store"
)

func main() {
	// .env is optional; real deployments set variables directly
	_ = godotenv.Load()

	dataDir := parseDataDirFlag()

	// Windows service verbs and service mode (stubs on other platforms)
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "install":
			handleInstall(os.Args[2:])
			return
		case "remove":
			handleRemove()
			return
		case "start":
			handleStart()
			return
		case "stop":
			handleStop()
			return
		}
	}
	if isWindowsService() {
		runAsService(dataDir)
		return
	}

	// 1. Ensure data directory exists
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 2. Initialize ConfigManager and load config
	cm, err := config.NewConfigManager(filepath.Join(dataDir, "config.json"))
	if err != nil {
		log.Fatalf("Failed to create config manager: %v", err)
	}
	if err := cm.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := cm.Get()

	// 3. Error log
	if err := errlog.Init(); err != nil {
		log.Printf("Error log unavailable: %v", err)
	}
	defer errlog.Close()

	// 4. Initialize database
	database, err := db.InitDB(service.ResolveDataPath(dataDir, cfg.DB.Path))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// 5. Document store (restores the snapshot from the previous run)
	snapshotPath := service.ResolveDataPath(dataDir, cfg.Store.BackupPath)
	store := vectorstore.NewDocumentStore(service.NewEncoder(cfg), snapshotPath, cfg.Store.MaxDocuments)

	// Check for CLI subcommands
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "crawl":
			runCrawl(os.Args[2:], dataDir, cfg, database, store)
			return
		case "reindex":
			runReindex(database, store)
			return
		case "stats":
			runStats(store, database)
			return
		case "backup":
			runBackup(os.Args[2:], database, dataDir)
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "config":
			runConfig(os.Args[2:], cm)
			return
		case "help", "-h", "--help":
			printUsage()
			return
		}
	}

	// 6. Query pipeline and rate limiter
	engine := query.NewQueryEngine(store, llm.NewChain(cfg.LLM))
	limiter := ratelimit.NewLimiter(database, cfg.RateLimit.MaxQueries,
		time.Duration(cfg.RateLimit.WindowHours)*time.Hour)

	// 7. Create App and register HTTP API handlers
	app := handler.NewApp(store, engine, limiter)
	cleanup := router.Register(app, cfg.Server.FrontendURL)
	defer cleanup()

	// 8. Periodic rate limit cleanup
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := limiter.Cleanup(); err == nil && n > 0 {
				log.Printf("Cleaned %d stale rate limit entries", n)
			}
		}
	}()

	// 9. Start HTTP server with graceful shutdown
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Graceful shutdown error: %v", err)
		}
	}()

	fmt.Printf("Fashion RAG API starting on http://%s\n", addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("HTTP server error: %v", err)
	}
	log.Println("Server stopped")
}

// parseDataDirFlag extracts --datadir from the command line. The flag is
// shared by console and service modes, so it is parsed by hand instead of
// through the flag package (which would reject the service verbs).
func parseDataDirFlag() string {
	for i, arg := range os.Args[1:] {
		if strings.HasPrefix(arg, "--datadir=") {
			return strings.TrimPrefix(arg, "--datadir=")
		}
		if arg == "--datadir" && i+2 < len(os.Args) {
			return os.Args[i+2]
		}
	}
	return "./data"
}

// printUsage prints CLI usage information.
func printUsage() {
	fmt.Println(`Usage:
  fashionrag                          start the HTTP API (default port 8000)
  fashionrag crawl [--max <n>]        collect fashion articles and load the store
  fashionrag reindex                  rebuild the store from the article archive
  fashionrag stats                    print store and archive statistics
  fashionrag backup [--output <dir>]  archive the data directory as tar.gz
  fashionrag restore [--target <dir>] <archive>
                                      restore the data directory from a backup
  fashionrag config show              print the active configuration
  fashionrag config set <key> <value> update one configuration value
  fashionrag help                     show this help

Windows service:
  fashionrag install [--datadir <dir>]   install as a Windows service
  fashionrag remove                      remove the service
  fashionrag start                       start the service
  fashionrag stop                        stop the service

crawl:
  Fetches built-in stylist articles, Wikipedia fashion summaries, and the
  sources configured in sources.yaml, archives every article in SQLite,
  and loads the collected content into the document store.

  Examples:
    fashionrag crawl
    fashionrag crawl --max 20

reindex:
  Replays the SQLite article archive through the document store without
  touching the network. Useful after changing the embedding configuration
  or raising store.max_documents.

backup:
  Archive naming: fashionrag_<hostname>_<date-time>.tar.gz
  The manifest is embedded in the archive and saved alongside it.

  Examples:
    fashionrag backup
    fashionrag backup --output ./backups

config:
  Keys use dotted paths matching the config file layout.

  Examples:
    fashionrag config show
    fashionrag config set ratelimit.max_queries 50
    fashionrag config set llm.openai.api_key sk-...`)
}

// runCrawl collects articles from the configured sources and loads them
// into the document store.
func runCrawl(args []string, dataDir string, cfg *config.Config, database *sql.DB, store *vectorstore.DocumentStore) {
	maxArticles := crawler.DefaultMaxArticles
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--max", "-n":
			if i+1 >= len(args) {
				fmt.Println("Error: --max requires a number")
				os.Exit(1)
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 1 {
				fmt.Printf("Error: invalid --max value %q\n", args[i+1])
				os.Exit(1)
			}
			maxArticles = n
			i++
		default:
			fmt.Printf("Unknown argument: %s\n", args[i])
			fmt.Println("Usage: fashionrag crawl [--max <n>]")
			os.Exit(1)
		}
	}

	sources, err := crawler.LoadSources(service.ResolveDataPath(dataDir, cfg.Crawler.SourcesPath))
	if err != nil {
		fmt.Printf("Failed to load crawl sources: %v\n", err)
		os.Exit(1)
	}

	c := crawler.New(sources, crawler.NewArchive(database))
	fmt.Printf("Crawling up to %d articles from %d sources...\n", maxArticles, len(sources))
	articles := c.Crawl(maxArticles)
	if len(articles) == 0 {
		fmt.Println("No articles collected")
		return
	}

	result, err := crawler.Populate(store, articles)
	if err != nil {
		fmt.Printf("Failed to load articles into the store: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Crawl complete: %d collected, %d inserted, %d duplicates\n",
		len(articles), result.InsertedCount, result.DuplicateCount)
}

// runReindex rebuilds the document store from the article archive.
func runReindex(database *sql.DB, store *vectorstore.DocumentStore) {
	articles, err := crawler.NewArchive(database).All()
	if err != nil {
		fmt.Printf("Failed to read the article archive: %v\n", err)
		os.Exit(1)
	}
	if len(articles) == 0 {
		fmt.Println("Article archive is empty; run crawl first")
		return
	}

	result, err := crawler.Populate(store, articles)
	if err != nil {
		fmt.Printf("Failed to load articles into the store: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Reindex complete: %d archived articles, %d inserted, %d already present\n",
		len(articles), result.InsertedCount, result.DuplicateCount)
}

// runStats prints store and archive statistics.
func runStats(store *vectorstore.DocumentStore, database *sql.DB) {
	stats := store.Stats()
	fmt.Printf("Documents:         %d / %d\n", stats.DocumentCount, stats.MaxDocuments)
	fmt.Printf("Snapshot size:     %.2f KB\n", stats.BackupFileSizeKB)
	fmt.Printf("Memory usage:      %s\n", stats.MemoryUsage)
	if n, err := crawler.NewArchive(database).Count(); err == nil {
		fmt.Printf("Archived articles: %d\n", n)
	}
}

// runBackup archives the data directory.
func runBackup(args []string, database *sql.DB, dataDir string) {
	opts := backup.Options{DataDir: dataDir}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--output", "-o":
			if i+1 >= len(args) {
				fmt.Println("Error: --output requires a directory")
				os.Exit(1)
			}
			opts.OutputDir = args[i+1]
			i++
		default:
			fmt.Printf("Unknown argument: %s\n", args[i])
			fmt.Println("Usage: fashionrag backup [--output <dir>]")
			os.Exit(1)
		}
	}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			fmt.Printf("Failed to create output directory: %v\n", err)
			os.Exit(1)
		}
	}

	result, err := backup.Run(database, opts)
	if err != nil {
		fmt.Printf("Backup failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Backup complete:")
	fmt.Printf("  Archive:  %s\n", result.ArchivePath)
	fmt.Printf("  Manifest: %s\n", result.ManifestPath)
	fmt.Printf("  Files: %d, size: %.2f MB\n", result.FilesWritten, float64(result.BytesWritten)/(1024*1024))
}

// runRestore restores the data directory from a backup archive.
func runRestore(args []string) {
	targetDir := "./data"
	var archivePath string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--target", "-t":
			if i+1 >= len(args) {
				fmt.Println("Error: --target requires a directory")
				os.Exit(1)
			}
			targetDir = args[i+1]
			i++
		default:
			if archivePath != "" {
				fmt.Printf("Unknown argument: %s\n", args[i])
				os.Exit(1)
			}
			archivePath = args[i]
		}
	}

	if archivePath == "" {
		fmt.Println("Error: backup archive path is required")
		fmt.Println("Usage: fashionrag restore [--target <dir>] <archive>")
		os.Exit(1)
	}

	fmt.Printf("Restoring %s to %s ...\n", archivePath, targetDir)
	if err := backup.Restore(archivePath, targetDir); err != nil {
		fmt.Printf("Restore failed: %v\n", err)
		os.Exit(1)
	}
}

// runConfig shows or updates configuration values. Keys are dotted paths,
// e.g. "ratelimit.max_queries".
func runConfig(args []string, cm *config.ConfigManager) {
	if len(args) == 0 {
		fmt.Println("Usage: fashionrag config show | config set <key> <value>")
		os.Exit(1)
	}

	switch args[0] {
	case "show":
		printConfig(cm.Get())
	case "set":
		if len(args) != 3 {
			fmt.Println("Usage: fashionrag config set <key> <value>")
			os.Exit(1)
		}
		// Numeric values arrive as strings from the command line
		var value interface{} = args[2]
		if n, err := strconv.Atoi(args[2]); err == nil {
			value = n
		}
		if err := cm.Update(map[string]interface{}{args[1]: value}); err != nil {
			fmt.Printf("Failed to update config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated %s\n", args[1])
	default:
		fmt.Printf("Unknown config command: %s\n", args[0])
		fmt.Println("Usage: fashionrag config show | config set <key> <value>")
		os.Exit(1)
	}
}

// printConfig prints the active configuration with API keys masked.
func printConfig(cfg *config.Config) {
	masked := *cfg
	masked.Embedding.APIKey = maskKey(masked.Embedding.APIKey)
	masked.LLM.DeepSeek.APIKey = maskKey(masked.LLM.DeepSeek.APIKey)
	masked.LLM.HuggingFace.APIKey = maskKey(masked.LLM.HuggingFace.APIKey)
	masked.LLM.OpenAI.APIKey = maskKey(masked.LLM.OpenAI.APIKey)

	data, err := json.MarshalIndent(masked, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render config: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

// maskKey hides all but the last four characters of an API key.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

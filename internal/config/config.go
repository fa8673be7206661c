// Package config provides configuration management with encrypted API key storage.
// It supports loading, saving, and hot-reloading of system configuration.
package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// encryptionKeyEnvVar is the environment variable name for the AES encryption key.
const encryptionKeyEnvVar = "FASHIONRAG_ENCRYPTION_KEY"

// encryptedPrefix marks a value as AES-encrypted in the config file.
const encryptedPrefix = "enc:"

// Config holds all system configuration.
type Config struct {
	Server    ServerConfig    `json:"server"`
	Store     StoreConfig     `json:"store"`
	Embedding EmbeddingConfig `json:"embedding"`
	LLM       LLMConfig       `json:"llm"`
	RateLimit RateLimitConfig `json:"ratelimit"`
	Crawler   CrawlerConfig   `json:"crawler"`
	DB        DBConfig        `json:"db"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        int    `json:"port"`
	FrontendURL string `json:"frontend_url"`
}

// StoreConfig holds document store configuration.
type StoreConfig struct {
	MaxDocuments int    `json:"max_documents"`
	BackupPath   string `json:"backup_path"`
}

// EmbeddingConfig holds the optional remote embedding service configuration.
// An empty endpoint selects the built-in lexical encoder. Dimension is the
// vector length the remote model produces.
type EmbeddingConfig struct {
	Endpoint  string `json:"endpoint"`
	APIKey    string `json:"api_key"`
	ModelName string `json:"model_name"`
	Dimension int    `json:"dimension"`
}

// LLMConfig holds per-provider LLM configuration for the fallback chain.
type LLMConfig struct {
	DeepSeek    DeepSeekConfig    `json:"deepseek"`
	HuggingFace HuggingFaceConfig `json:"huggingface"`
	OpenAI      OpenAIConfig      `json:"openai"`
	Ollama      OllamaConfig      `json:"ollama"`
}

// DeepSeekConfig holds DeepSeek API configuration.
type DeepSeekConfig struct {
	APIKey string `json:"api_key"`
}

// HuggingFaceConfig holds Hugging Face Inference API configuration.
type HuggingFaceConfig struct {
	APIKey string `json:"api_key"`
}

// OpenAIConfig holds configuration for a generic OpenAI-compatible endpoint.
type OpenAIConfig struct {
	APIKey   string `json:"api_key"`
	Endpoint string `json:"endpoint"`
	Model    string `json:"model"`
}

// OllamaConfig holds local Ollama configuration.
type OllamaConfig struct {
	URL   string `json:"url"`
	Model string `json:"model"`
}

// RateLimitConfig holds the anonymous query quota configuration.
type RateLimitConfig struct {
	MaxQueries  int `json:"max_queries"`
	WindowHours int `json:"window_hours"`
}

// CrawlerConfig holds content crawler configuration.
type CrawlerConfig struct {
	SourcesPath string `json:"sources_path"`
}

// DBConfig holds SQLite database configuration.
type DBConfig struct {
	Path string `json:"path"`
}

// ConfigManager manages loading, saving, and updating configuration.
type ConfigManager struct {
	configPath    string
	config        *Config
	mu            sync.RWMutex
	encryptionKey []byte // 32-byte AES-256 key
}

// NewConfigManager creates a new ConfigManager for the given config file path.
// The AES encryption key is read from the FASHIONRAG_ENCRYPTION_KEY environment
// variable. If the env var is not set, a persisted random 32-byte key is used.
func NewConfigManager(configPath string) (*ConfigManager, error) {
	key, err := getOrCreateEncryptionKey()
	if err != nil {
		return nil, fmt.Errorf("encryption key error: %w", err)
	}
	return &ConfigManager{
		configPath:    configPath,
		encryptionKey: key,
	}, nil
}

// NewConfigManagerWithKey creates a ConfigManager with an explicit encryption key (for testing).
func NewConfigManagerWithKey(configPath string, key []byte) (*ConfigManager, error) {
	if len(key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes for AES-256")
	}
	return &ConfigManager{
		configPath:    configPath,
		encryptionKey: key,
	}, nil
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8000,
			FrontendURL: "http://localhost:3000",
		},
		Store: StoreConfig{
			MaxDocuments: 200,
			BackupPath:   "./data/fashion_backup.json",
		},
		Embedding: EmbeddingConfig{
			Endpoint:  "",
			ModelName: "",
		},
		LLM: LLMConfig{
			OpenAI: OpenAIConfig{
				Endpoint: "https://api.openai.com/v1/chat/completions",
				Model:    "gpt-3.5-turbo",
			},
			Ollama: OllamaConfig{
				// URL stays empty until the operator points at a server;
				// an empty URL disables the Ollama provider.
				Model: "llama2:7b-chat",
			},
		},
		RateLimit: RateLimitConfig{
			MaxQueries:  20,
			WindowHours: 5,
		},
		Crawler: CrawlerConfig{
			SourcesPath: "./data/sources.yaml",
		},
		DB: DBConfig{
			Path: "./data/fashionrag.db",
		},
	}
}

// Load reads the config file from disk and decrypts API keys.
// If the file does not exist, it initializes with default values and saves.
// Environment variables override file values for deployment knobs.
func (cm *ConfigManager) Load() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cm.config = DefaultConfig()
			applyEnvOverrides(cm.config)
			return cm.saveLocked()
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	// Decrypt API keys
	if cfg.Embedding.APIKey, err = cm.decryptIfNeeded(cfg.Embedding.APIKey); err != nil {
		return fmt.Errorf("decrypt embedding API key: %w", err)
	}
	if cfg.LLM.DeepSeek.APIKey, err = cm.decryptIfNeeded(cfg.LLM.DeepSeek.APIKey); err != nil {
		return fmt.Errorf("decrypt DeepSeek API key: %w", err)
	}
	if cfg.LLM.HuggingFace.APIKey, err = cm.decryptIfNeeded(cfg.LLM.HuggingFace.APIKey); err != nil {
		return fmt.Errorf("decrypt Hugging Face API key: %w", err)
	}
	if cfg.LLM.OpenAI.APIKey, err = cm.decryptIfNeeded(cfg.LLM.OpenAI.APIKey); err != nil {
		return fmt.Errorf("decrypt OpenAI API key: %w", err)
	}

	cm.applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	cm.config = &cfg
	return nil
}

// Save writes the current config to disk with API keys encrypted.
func (cm *ConfigManager) Save() error {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.saveLocked()
}

// saveLocked writes config to disk. Caller must hold at least a read lock.
func (cm *ConfigManager) saveLocked() error {
	if cm.config == nil {
		return errors.New("no config loaded")
	}

	// Create a copy for serialization with encrypted keys
	out := *cm.config
	out.Embedding.APIKey = cm.encryptIfNeeded(cm.config.Embedding.APIKey)
	out.LLM.DeepSeek.APIKey = cm.encryptIfNeeded(cm.config.LLM.DeepSeek.APIKey)
	out.LLM.HuggingFace.APIKey = cm.encryptIfNeeded(cm.config.LLM.HuggingFace.APIKey)
	out.LLM.OpenAI.APIKey = cm.encryptIfNeeded(cm.config.LLM.OpenAI.APIKey)

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Get returns a copy of the current configuration.
func (cm *ConfigManager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	if cm.config == nil {
		return nil
	}
	c := *cm.config
	return &c
}

// Update applies partial updates to the configuration and saves to disk.
// Supported keys: "server.port", "server.frontend_url", "store.max_documents",
// "store.backup_path", "embedding.endpoint", "embedding.api_key",
// "embedding.model_name", "embedding.dimension", "llm.deepseek.api_key",
// "llm.huggingface.api_key",
// "llm.openai.api_key", "llm.openai.endpoint", "llm.openai.model",
// "llm.ollama.url", "llm.ollama.model", "ratelimit.max_queries",
// "ratelimit.window_hours", "crawler.sources_path", "db.path".
func (cm *ConfigManager) Update(updates map[string]interface{}) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.config == nil {
		cm.config = DefaultConfig()
	}

	for key, val := range updates {
		if err := cm.applyUpdate(key, val); err != nil {
			return fmt.Errorf("update key %q: %w", key, err)
		}
	}

	return cm.saveLocked()
}

func (cm *ConfigManager) applyUpdate(key string, val interface{}) error {
	switch key {
	// Server fields
	case "server.port":
		n, err := toInt(val)
		if err != nil {
			return err
		}
		if n < 1 || n > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cm.config.Server.Port = n
	case "server.frontend_url":
		s, ok := val.(string)
		if !ok {
			return errors.New("expected string")
		}
		cm.config.Server.FrontendURL = s

	// Store fields
	case "store.max_documents":
		n, err := toInt(val)
		if err != nil {
			return err
		}
		if n < 1 {
			return errors.New("max_documents must be at least 1")
		}
		cm.config.Store.MaxDocuments = n
	case "store.backup_path":
		s, ok := val.(string)
		if !ok {
			return errors.New("expected string")
		}
		cm.config.Store.BackupPath = s

	// Embedding fields
	case "embedding.endpoint":
		s, ok := val.(string)
		if !ok {
			return errors.New("expected string")
		}
		cm.config.Embedding.Endpoint = s
	case "embedding.api_key":
		s, ok := val.(string)
		if !ok {
			return errors.New("expected string")
		}
		cm.config.Embedding.APIKey = s
	case "embedding.model_name":
		s, ok := val.(string)
		if !ok {
			return errors.New("expected string")
		}
		cm.config.Embedding.ModelName = s
	case "embedding.dimension":
		n, err := toInt(val)
		if err != nil {
			return err
		}
		if n < 0 {
			return errors.New("dimension must not be negative")
		}
		cm.config.Embedding.Dimension = n

	// LLM provider fields
	case "llm.deepseek.api_key":
		s, ok := val.(string)
		if !ok {
			return errors.New("expected string")
		}
		cm.config.LLM.DeepSeek.APIKey = s
	case "llm.huggingface.api_key":
		s, ok := val.(string)
		if !ok {
			return errors.New("expected string")
		}
		cm.config.LLM.HuggingFace.APIKey = s
	case "llm.openai.api_key":
		s, ok := val.(string)
		if !ok {
			return errors.New("expected string")
		}
		cm.config.LLM.OpenAI.APIKey = s
	case "llm.openai.endpoint":
		s, ok := val.(string)
		if !ok {
			return errors.New("expected string")
		}
		cm.config.LLM.OpenAI.Endpoint = s
	case "llm.openai.model":
		s, ok := val.(string)
		if !ok {
			return errors.New("expected string")
		}
		cm.config.LLM.OpenAI.Model = s
	case "llm.ollama.url":
		s, ok := val.(string)
		if !ok {
			return errors.New("expected string")
		}
		cm.config.LLM.Ollama.URL = s
	case "llm.ollama.model":
		s, ok := val.(string)
		if !ok {
			return errors.New("expected string")
		}
		cm.config.LLM.Ollama.Model = s

	// Rate limit fields
	case "ratelimit.max_queries":
		n, err := toInt(val)
		if err != nil {
			return err
		}
		if n < 1 {
			return errors.New("max_queries must be at least 1")
		}
		cm.config.RateLimit.MaxQueries = n
	case "ratelimit.window_hours":
		n, err := toInt(val)
		if err != nil {
			return err
		}
		if n < 1 {
			return errors.New("window_hours must be at least 1")
		}
		cm.config.RateLimit.WindowHours = n

	// Crawler fields
	case "crawler.sources_path":
		s, ok := val.(string)
		if !ok {
			return errors.New("expected string")
		}
		cm.config.Crawler.SourcesPath = s

	// Database fields
	case "db.path":
		s, ok := val.(string)
		if !ok {
			return errors.New("expected string")
		}
		cm.config.DB.Path = s

	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// applyDefaults fills in zero-value fields with defaults.
func (cm *ConfigManager) applyDefaults(cfg *Config) {
	defaults := DefaultConfig()
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaults.Server.Port
	}
	if cfg.Server.FrontendURL == "" {
		cfg.Server.FrontendURL = defaults.Server.FrontendURL
	}
	if cfg.Store.MaxDocuments == 0 {
		cfg.Store.MaxDocuments = defaults.Store.MaxDocuments
	}
	if cfg.Store.BackupPath == "" {
		cfg.Store.BackupPath = defaults.Store.BackupPath
	}
	if cfg.LLM.OpenAI.Endpoint == "" {
		cfg.LLM.OpenAI.Endpoint = defaults.LLM.OpenAI.Endpoint
	}
	if cfg.LLM.OpenAI.Model == "" {
		cfg.LLM.OpenAI.Model = defaults.LLM.OpenAI.Model
	}
	if cfg.LLM.Ollama.Model == "" {
		cfg.LLM.Ollama.Model = defaults.LLM.Ollama.Model
	}
	if cfg.RateLimit.MaxQueries == 0 {
		cfg.RateLimit.MaxQueries = defaults.RateLimit.MaxQueries
	}
	if cfg.RateLimit.WindowHours == 0 {
		cfg.RateLimit.WindowHours = defaults.RateLimit.WindowHours
	}
	if cfg.Crawler.SourcesPath == "" {
		cfg.Crawler.SourcesPath = defaults.Crawler.SourcesPath
	}
	if cfg.DB.Path == "" {
		cfg.DB.Path = defaults.DB.Path
	}
}

// applyEnvOverrides lets deployment environment variables override file values.
// Invalid values are ignored so a bad env var cannot prevent startup.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 65535 {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		cfg.Server.FrontendURL = v
	}
	if v := os.Getenv("DEEPSEEK_API_KEY"); v != "" {
		cfg.LLM.DeepSeek.APIKey = v
	}
	if v := os.Getenv("HUGGINGFACE_API_KEY"); v != "" {
		cfg.LLM.HuggingFace.APIKey = v
	}
	if v := os.Getenv("OPENAI_COMPATIBLE_API_KEY"); v != "" {
		cfg.LLM.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_COMPATIBLE_URL"); v != "" {
		cfg.LLM.OpenAI.Endpoint = v
	}
	if v := os.Getenv("OPENAI_COMPATIBLE_MODEL"); v != "" {
		cfg.LLM.OpenAI.Model = v
	}
	if v := os.Getenv("OLLAMA_URL"); v != "" {
		cfg.LLM.Ollama.URL = v
	}
}

// --- AES-GCM encryption helpers ---

// encrypt encrypts plaintext using AES-256-GCM.
func (cm *ConfigManager) encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	block, err := aes.NewCipher(cm.encryptionKey)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(ciphertext), nil
}

// decrypt decrypts AES-256-GCM encrypted hex string.
func (cm *ConfigManager) decrypt(ciphertextHex string) (string, error) {
	if ciphertextHex == "" {
		return "", nil
	}
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", fmt.Errorf("hex decode: %w", err)
	}
	block, err := aes.NewCipher(cm.encryptionKey)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", errors.New("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// encryptIfNeeded encrypts a value and adds the "enc:" prefix.
// Empty strings are returned as-is.
func (cm *ConfigManager) encryptIfNeeded(value string) string {
	if value == "" {
		return ""
	}
	encrypted, err := cm.encrypt(value)
	if err != nil {
		// Fallback: return as-is (should not happen with valid key)
		return value
	}
	return encryptedPrefix + encrypted
}

// decryptIfNeeded decrypts a value if it has the "enc:" prefix.
func (cm *ConfigManager) decryptIfNeeded(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if len(value) > len(encryptedPrefix) && value[:len(encryptedPrefix)] == encryptedPrefix {
		return cm.decrypt(value[len(encryptedPrefix):])
	}
	// Not encrypted (e.g., manually edited config) — return as-is
	return value, nil
}

// --- Encryption key management ---

func getOrCreateEncryptionKey() ([]byte, error) {
	// 1. Check environment variable first
	keyHex := os.Getenv(encryptionKeyEnvVar)
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil {
			return nil, fmt.Errorf("invalid encryption key hex: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
		}
		return key, nil
	}

	// 2. Try to read from persistent key file
	keyFile := "./data/encryption.key"
	if data, err := os.ReadFile(keyFile); err == nil {
		keyHex = strings.TrimSpace(string(data))
		if key, err := hex.DecodeString(keyHex); err == nil && len(key) == 32 {
			return key, nil
		}
	}

	// 3. Generate a new random key and persist it
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate encryption key: %w", err)
	}
	keyHex = hex.EncodeToString(key)
	os.MkdirAll("./data", 0755)
	if err := os.WriteFile(keyFile, []byte(keyHex+"\n"), 0600); err != nil {
		return nil, fmt.Errorf("save encryption key: %w", err)
	}
	return key, nil
}

// --- Type conversion helpers ---

func toInt(val interface{}) (int, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case float32:
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, err
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected numeric value, got %T", val)
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	Index         IndexConfig
	Database      DatabaseConfig
	Providers     ProvidersConfig
	Reranker      RerankerConfig
	Retrieval     RetrievalConfig
	Observability ObservabilityConfig
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// IndexConfig selects and configures the vector index backend.
// Backend is one of "memory", "qdrant", "pgvector".
type IndexConfig struct {
	Backend    string
	Collection string
	VectorSize int
	Qdrant     QdrantConfig
}

// QdrantConfig holds Qdrant gRPC connection configuration
type QdrantConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds PostgreSQL configuration for the pgvector backend
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ProvidersConfig holds model provider configurations
type ProvidersConfig struct {
	// Generation and Embedding name the provider used for each concern
	// ("openai" or "ollama").
	Generation string
	Embedding  string
	OpenAI     OpenAIConfig
	Ollama     OllamaConfig
}

// OpenAIConfig holds OpenAI provider configuration
type OpenAIConfig struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	SelectorModel  string
	EmbeddingModel string
	Timeout        time.Duration
}

// OllamaConfig holds Ollama provider configuration
type OllamaConfig struct {
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
}

// RerankerConfig holds cross-encoder scoring service configuration
type RerankerConfig struct {
	Endpoint string
	Model    string
	Timeout  time.Duration
}

// RetrievalConfig holds the retrieval pipeline bounds
type RetrievalConfig struct {
	DefaultK       int
	MaxK           int
	MaxContextDocs int
	MemoryTurns    int
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string // json or text
}

// New creates a new Config instance by loading environment variables
func New() (*Config, error) {
	// Load .env if present (no-op otherwise)
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Index: IndexConfig{
			Backend:    getEnv("INDEX_BACKEND", "memory"),
			Collection: getEnv("INDEX_COLLECTION", "game_descriptions"),
			VectorSize: getEnvAsInt("INDEX_VECTOR_SIZE", 1536),
			Qdrant: QdrantConfig{
				Host: getEnv("QDRANT_HOST", "localhost"),
				Port: getEnvAsInt("QDRANT_PORT", 6334),
			},
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "steamlens"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "steamlens"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Providers: ProvidersConfig{
			Generation: getEnv("GENERATION_PROVIDER", "openai"),
			Embedding:  getEnv("EMBEDDING_PROVIDER", "openai"),
			OpenAI: OpenAIConfig{
				APIKey:         getEnv("OPENAI_API_KEY", ""),
				BaseURL:        getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
				ChatModel:      getEnv("OPENAI_CHAT_MODEL", "gpt-4o"),
				SelectorModel:  getEnv("OPENAI_SELECTOR_MODEL", "gpt-4o-mini"),
				EmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
				Timeout:        getEnvAsDuration("OPENAI_TIMEOUT", 60*time.Second),
			},
			Ollama: OllamaConfig{
				BaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
				ChatModel:      getEnv("OLLAMA_CHAT_MODEL", "llama3"),
				EmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "llama3"),
				Timeout:        getEnvAsDuration("OLLAMA_TIMEOUT", 5*time.Minute),
			},
		},
		Reranker: RerankerConfig{
			Endpoint: getEnv("RERANKER_ENDPOINT", "http://localhost:8501/v1/rerank"),
			Model:    getEnv("RERANKER_MODEL", "cross-encoder/ms-marco-MiniLM-L-6-v2"),
			Timeout:  getEnvAsDuration("RERANKER_TIMEOUT", 30*time.Second),
		},
		Retrieval: RetrievalConfig{
			DefaultK:       getEnvAsInt("RETRIEVAL_DEFAULT_K", 5),
			MaxK:           getEnvAsInt("RETRIEVAL_MAX_K", 50),
			MaxContextDocs: getEnvAsInt("RETRIEVAL_MAX_CONTEXT_DOCS", 20),
			MemoryTurns:    getEnvAsInt("MEMORY_MAX_TURNS", 5),
		},
		Observability: ObservabilityConfig{
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			LogFormat: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	switch c.Index.Backend {
	case "memory", "qdrant", "pgvector":
	default:
		return fmt.Errorf("unknown index backend %q", c.Index.Backend)
	}

	if c.Index.Backend == "pgvector" {
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required for the pgvector backend")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required for the pgvector backend")
		}
	}

	switch c.Providers.Generation {
	case "openai", "ollama":
	default:
		return fmt.Errorf("unknown generation provider %q", c.Providers.Generation)
	}
	switch c.Providers.Embedding {
	case "openai", "ollama":
	default:
		return fmt.Errorf("unknown embedding provider %q", c.Providers.Embedding)
	}

	if c.IsProduction() {
		if c.Providers.Generation == "openai" && c.Providers.OpenAI.APIKey == "" {
			return fmt.Errorf("OpenAI API key is required in production")
		}
	}

	if c.Retrieval.DefaultK < 1 {
		return fmt.Errorf("default k must be positive")
	}
	if c.Retrieval.MaxK < c.Retrieval.DefaultK {
		return fmt.Errorf("max k must be >= default k")
	}
	if c.Retrieval.MaxContextDocs < 1 {
		return fmt.Errorf("max context docs must be positive")
	}
	if c.Retrieval.MemoryTurns < 1 {
		return fmt.Errorf("memory turns must be positive")
	}

	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// LogString returns a safe string for logging (no password)
func (c *DatabaseConfig) LogString() string {
	return fmt.Sprintf("host=%s port=%d database=%s", c.Host, c.Port, c.Database)
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Address returns the Qdrant gRPC address
func (c *QdrantConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

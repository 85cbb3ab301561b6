package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Seo       SeoConfig
	Knowledge KnowledgeConfig
	Topics    TopicConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider   string // "ollama" or "openai"
	LLMModel      string // e.g. "llama3", "gpt-4o-mini"
	OllamaBaseURL string
	OpenAIBaseURL string
	OpenAIAPIKey  string
	ToolTimeout   int // seconds per tool call
}

// SeoConfig carries the external SEO data provider endpoints.
type SeoConfig struct {
	KeywordAPIBaseURL  string
	KeywordAPIKey      string
	SerpAPIBaseURL     string
	SerpAPIKey         string
	AuditAPIBaseURL    string
	AuditAPIKey        string
	BacklinkAPIBaseURL string
	BacklinkAPIKey     string
}

type KnowledgeConfig struct {
	Dir             string
	MaxExcerptChars int
	MaxChunkBytes   int
}

type TopicConfig struct {
	KeywordEnrichment string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			ToolTimeout:   getEnvAsInt("TOOL_TIMEOUT_SECONDS", 30),
		},
		Seo: SeoConfig{
			KeywordAPIBaseURL:  getEnv("KEYWORD_API_BASE_URL", ""),
			KeywordAPIKey:      getEnv("KEYWORD_API_KEY", ""),
			SerpAPIBaseURL:     getEnv("SERP_API_BASE_URL", ""),
			SerpAPIKey:         getEnv("SERP_API_KEY", ""),
			AuditAPIBaseURL:    getEnv("AUDIT_API_BASE_URL", ""),
			AuditAPIKey:        getEnv("AUDIT_API_KEY", ""),
			BacklinkAPIBaseURL: getEnv("BACKLINK_API_BASE_URL", ""),
			BacklinkAPIKey:     getEnv("BACKLINK_API_KEY", ""),
		},
		Knowledge: KnowledgeConfig{
			Dir:             getEnv("KNOWLEDGE_DIR", "knowledge"),
			MaxExcerptChars: getEnvAsInt("KNOWLEDGE_MAX_EXCERPT_CHARS", 15000),
			MaxChunkBytes:   getEnvAsInt("KNOWLEDGE_MAX_CHUNK_BYTES", 102400),
		},
		Topics: TopicConfig{
			KeywordEnrichment: getEnv("KEYWORD_ENRICHMENT_TOPIC_NAME", "ENRICH_TRACKED_KEYWORD"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

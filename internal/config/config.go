package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig      `toml:"app"`
	Gemini   GeminiConfig   `toml:"gemini"`
	Mongo    MongoConfig    `toml:"mongo"`
	Redis    RedisConfig    `toml:"redis"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	CORS     CORSConfig     `toml:"cors"`
}

type AppConfig struct {
	Name          string `toml:"name"`
	Env           string `toml:"env"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	GinMode       string `toml:"gin_mode"`
	DefaultUserID string `toml:"default_user_id"`
}

type GeminiConfig struct {
	BaseURL         string `toml:"base_url"`
	APIKey          string `toml:"api_key"`
	EmbeddingModel  string `toml:"embedding_model"`
	GenerationModel string `toml:"generation_model"`
}

type MongoConfig struct {
	URI        string `toml:"uri"`
	DB         string `toml:"db"`
	Collection string `toml:"collection"`
	// VectorIndex names the Atlas vector search index over content_embedding.
	// The index itself is provisioned outside this code.
	VectorIndex string `toml:"vector_index"`
}

// RedisConfig configures the optional query-embedding cache.
// An empty Addr disables it.
type RedisConfig struct {
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	QueryTTLSeconds int    `toml:"query_ttl_seconds"`
}

// RabbitMQConfig configures the optional link-created event publisher.
// An empty URL disables it.
type RabbitMQConfig struct {
	URL              string `toml:"url"`
	LinkCreatedQueue string `toml:"link_created_queue"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

func Load() (*Config, error) {
	// A local .env file seeds the environment; real environment variables win.
	_ = godotenv.Load()

	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:          "knowledgelink",
			Env:           "dev",
			Host:          "0.0.0.0",
			Port:          8080,
			GinMode:       "debug",
			DefaultUserID: "mock_user_123",
		},
		Gemini: GeminiConfig{
			BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
			APIKey:          "",
			EmbeddingModel:  "text-embedding-004",
			GenerationModel: "gemini-1.5-flash-latest",
		},
		Mongo: MongoConfig{
			URI:         "mongodb://127.0.0.1:27017",
			DB:          "knowledge_link",
			Collection:  "links",
			VectorIndex: "vector_index",
		},
		Redis: RedisConfig{
			Addr:            "",
			Password:        "",
			DB:              0,
			QueryTTLSeconds: 600,
		},
		RabbitMQ: RabbitMQConfig{
			URL:              "",
			LinkCreatedQueue: "links.created",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)
	cfg.App.DefaultUserID = getEnv("APP_DEFAULT_USER_ID", cfg.App.DefaultUserID)

	cfg.Gemini.BaseURL = getEnv("GEMINI_BASE_URL", cfg.Gemini.BaseURL)
	cfg.Gemini.APIKey = getEnv("GEMINI_API_KEY", cfg.Gemini.APIKey)
	cfg.Gemini.EmbeddingModel = getEnv("GEMINI_EMBEDDING_MODEL", cfg.Gemini.EmbeddingModel)
	cfg.Gemini.GenerationModel = getEnv("GEMINI_GENERATION_MODEL", cfg.Gemini.GenerationModel)

	cfg.Mongo.URI = getEnv("MONGO_URI", cfg.Mongo.URI)
	cfg.Mongo.DB = getEnv("MONGO_DB", cfg.Mongo.DB)
	cfg.Mongo.Collection = getEnv("MONGO_COLLECTION", cfg.Mongo.Collection)
	cfg.Mongo.VectorIndex = getEnv("MONGO_VECTOR_INDEX", cfg.Mongo.VectorIndex)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.QueryTTLSeconds = getEnvAsInt("REDIS_QUERY_TTL_SECONDS", cfg.Redis.QueryTTLSeconds)

	cfg.RabbitMQ.URL = getEnv("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.RabbitMQ.LinkCreatedQueue = getEnv("RABBITMQ_LINK_CREATED_QUEUE", cfg.RabbitMQ.LinkCreatedQueue)

	if raw, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS"); ok && raw != "" {
		origins := strings.Split(raw, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORS.AllowedOrigins = origins
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

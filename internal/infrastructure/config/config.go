package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Gemini GeminiConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=fashio"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// GeminiConfig selects the backend models. APIKey missing is not fatal at
// startup; every AI operation fails until it is provided.
type GeminiConfig struct {
	APIKey     string `env:"GEMINI_API_KEY"`
	TextModel  string `env:"GEMINI_TEXT_MODEL,  default=gemini-2.5-flash"`
	ImageModel string `env:"GEMINI_IMAGE_MODEL, default=imagen-4.0-generate-001"`
	EditModel  string `env:"GEMINI_EDIT_MODEL,  default=gemini-2.5-flash-image-preview"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

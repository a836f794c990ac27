package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	// JWTSecret signs all internally issued tokens.
	JWTSecret string `env:"JWT_SECRET"`
	// ExternalJWTSecret verifies tokens minted by the external identity
	// provider. Empty disables the external verification path.
	ExternalJWTSecret string `env:"EXTERNAL_JWT_SECRET"`
	JWTAlgorithm      string `env:"JWT_ALGORITHM, default=HS256"`
	AccessTokenTTLMin int    `env:"ACCESS_TOKEN_TTL_MIN, default=60"`
	// DevAPIKey, when set, is accepted unconditionally and mapped to a fixed
	// admin identity. Local development only; the empty default disables it.
	DevAPIKey string `env:"DEV_API_KEY"`
}

// AccessTokenTTL returns the configured access token lifetime.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMin) * time.Minute
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=coaching_api"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// IsProduction reports whether the process runs with production hardening:
// diagnostics decoding off, dev key expected to be unset.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the full server configuration.
type Config struct {
	Addr string

	MongoURI string
	MongoDB  string

	OpenAIKey        string
	Model            string
	RiskModel        string
	InferenceTimeout time.Duration

	JWTSecret string
	TokenTTL  time.Duration
}

// Load reads configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		Addr:             getenv("SERENE_ADDR", ":8080"),
		MongoURI:         getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getenv("MONGO_DB", "serene"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		Model:            getenv("SERENE_MODEL", "gpt-5-mini"),
		RiskModel:        getenv("SERENE_RISK_MODEL", ""),
		InferenceTimeout: getenvDuration("SERENE_INFERENCE_TIMEOUT", 30*time.Second),
		JWTSecret:        os.Getenv("SERENE_JWT_SECRET"),
		TokenTTL:         getenvDuration("SERENE_TOKEN_TTL", 24*time.Hour),
	}
}

// Validate checks that the configuration can actually run a server.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: missing listen address")
	}
	if c.MongoURI == "" {
		return errors.New("config: missing MONGO_URI")
	}
	if c.OpenAIKey == "" {
		return errors.New("config: missing OPENAI_API_KEY")
	}
	if c.JWTSecret == "" {
		return errors.New("config: missing SERENE_JWT_SECRET")
	}
	if c.InferenceTimeout <= 0 {
		return fmt.Errorf("config: inference timeout must be positive, got %s", c.InferenceTimeout)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

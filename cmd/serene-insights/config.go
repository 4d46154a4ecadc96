package main

import (
	"errors"
	"flag"
	"fmt"
	"time"
)

// Config holds the flag-driven settings for one batch run.
type Config struct {
	MongoURI  string
	MongoDB   string
	UserID    string
	Days      int
	OutDir    string
	APIKey    string
	Model     string
	Timeout   time.Duration
	StatsOnly bool
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.MongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	fs.StringVar(&cfg.MongoDB, "db", "serene", "database name")
	fs.StringVar(&cfg.UserID, "user", "", "user id to aggregate (required)")
	fs.IntVar(&cfg.Days, "days", 7, "window size in days")
	fs.StringVar(&cfg.OutDir, "out", "insights-out", "directory for JSON artifacts")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (defaults to OPENAI_API_KEY)")
	fs.StringVar(&cfg.Model, "model", "gpt-5-mini", "model for theme extraction")
	fs.DurationVar(&cfg.Timeout, "timeout", 60*time.Second, "per-call inference timeout")
	fs.BoolVar(&cfg.StatsOnly, "stats-only", false, "skip theme extraction, statistics only")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the parsed flags before any work starts.
func (c Config) Validate() error {
	if c.UserID == "" {
		return errors.New("missing -user")
	}
	if c.Days < 1 || c.Days > 365 {
		return fmt.Errorf("-days must be in [1, 365], got %d", c.Days)
	}
	if c.OutDir == "" {
		return errors.New("missing -out")
	}
	if c.MongoURI == "" {
		return errors.New("missing -mongo-uri")
	}
	if !c.StatsOnly && c.Model == "" {
		return errors.New("missing -model")
	}
	return nil
}

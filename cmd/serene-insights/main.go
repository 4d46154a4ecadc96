// Command serene-insights computes a user's weekly insight summary offline
// and writes it as a JSON artifact.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/serenelabs/serene/internal/inference"
	"github.com/serenelabs/serene/internal/insights"
	"github.com/serenelabs/serene/internal/store"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if !cfg.StatsOnly && apiKey == "" {
		fmt.Fprintln(os.Stderr, "missing OPENAI_API_KEY (or pass -api-key, or use -stats-only)")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger: "+err.Error())
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(ctx, cfg, apiKey, log); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, apiKey string, log *zap.Logger) error {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("mkdir -out: %w", err)
	}

	client, err := store.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()
	st := store.NewMongoStore(client, cfg.MongoDB)

	var capability inference.Capability = unavailableCapability{}
	if !cfg.StatsOnly {
		capability, err = inference.NewOpenAICapability(inference.OpenAIConfig{
			APIKey:  apiKey,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return err
		}
	}

	aggregator := insights.NewAggregator(st, capability, log)
	summary, err := aggregator.WeeklyInsights(ctx, cfg.UserID, store.LastDays(cfg.Days))
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	outPath := filepath.Join(cfg.OutDir, cfg.UserID+".insights.json")
	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Println(outPath)
	return nil
}

// unavailableCapability makes every theme-extraction attempt degrade, leaving
// a statistics-only summary.
type unavailableCapability struct{}

func (unavailableCapability) Invoke(_ context.Context, task inference.Task, _ string) (string, error) {
	return "", inference.NewError(task, inference.KindUnavailable, errors.New("stats-only run"))
}

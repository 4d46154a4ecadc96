// Command serene-server runs the wellness companion HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/serenelabs/serene/internal/analysis"
	"github.com/serenelabs/serene/internal/api"
	"github.com/serenelabs/serene/internal/auth"
	"github.com/serenelabs/serene/internal/config"
	"github.com/serenelabs/serene/internal/conversation"
	"github.com/serenelabs/serene/internal/inference"
	"github.com/serenelabs/serene/internal/insights"
	"github.com/serenelabs/serene/internal/mindfulness"
	"github.com/serenelabs/serene/internal/safety"
	"github.com/serenelabs/serene/internal/store"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	log, err := zap.NewProduction()
	if err != nil {
		os.Stderr.WriteString("init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := store.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Warn("mongo disconnect", zap.Error(err))
		}
	}()
	st := store.NewMongoStore(client, cfg.MongoDB)

	taskModels := map[inference.Task]string{}
	if cfg.RiskModel != "" {
		taskModels[inference.TaskRiskAssessment] = cfg.RiskModel
	}
	capability, err := inference.NewOpenAICapability(inference.OpenAIConfig{
		APIKey:     cfg.OpenAIKey,
		Model:      cfg.Model,
		TaskModels: taskModels,
		Timeout:    cfg.InferenceTimeout,
	})
	if err != nil {
		return err
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	gate := safety.NewGate(capability)
	pipeline := analysis.NewPipeline(capability, log)
	controller := conversation.NewController(gate, pipeline, st, log)
	aggregator := insights.NewAggregator(st, capability, log)
	tracker := mindfulness.NewTracker(st)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(st, tokens, controller, pipeline, aggregator, tracker, log).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
